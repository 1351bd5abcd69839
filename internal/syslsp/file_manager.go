// Copyright 2024-2026 The Syster Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file tracks which documents the client currently has open, mapping
// LSP document URIs to the plain file paths the semantic workspace indexes
// files by.

package syslsp

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// openDoc is one document the client has open, independent of whether the
// workspace has populated it yet.
type openDoc struct {
	path    string
	version int32
}

// fileManager bridges DidOpen/DidChange/DidClose notifications to
// workspace.Workspace's AddFile/UpdateFile/RemoveFile calls. It owns no
// parsing logic itself — parse is supplied by the caller, since the
// grammar-driven parser is an external collaborator this package never
// implements.
type fileManager struct {
	ws    *workspace.Workspace
	docs  *docStore
	parse ParseFunc
}

// ParseFunc turns a document's text into an ast.File, or reports a parse
// diagnostic. internal/syslsp does not implement a parser; the caller
// wiring together cmd/syster-lsp supplies one.
type ParseFunc func(path, text string) (ast.File, error)

func newFileManager(ws *workspace.Workspace, parse ParseFunc) *fileManager {
	return &fileManager{ws: ws, docs: newDocStore(), parse: parse}
}

// open registers uri as open at the given version and text, parsing it into
// the workspace. Returns the parse error, if any, so the caller can surface
// it as a diagnostic rather than silently losing the file's content.
func (fm *fileManager) open(_ context.Context, uri protocol.URI, version int32, text string) error {
	path := uriToFilePath(uri)
	fm.docs.put(string(uri), &openDoc{path: path, version: version})

	file, err := fm.parse(path, text)
	if err != nil {
		return err
	}
	fm.ws.AddFile(path, file)
	return nil
}

// update re-parses uri's new text and pushes it into the workspace via
// UpdateFile, which invalidates whatever the previous population recorded.
func (fm *fileManager) update(_ context.Context, uri protocol.URI, version int32, text string) error {
	path := uriToFilePath(uri)
	fm.docs.put(string(uri), &openDoc{path: path, version: version})

	file, err := fm.parse(path, text)
	if err != nil {
		return err
	}
	fm.ws.UpdateFile(path, file)
	return nil
}

// close marks uri no longer open. The file's last-populated state stays in
// the workspace: an editor closing a tab doesn't mean the project no longer
// contains that file, so close does not call RemoveFile.
func (fm *fileManager) close(_ context.Context, uri protocol.URI) {
	fm.docs.delete(string(uri))
}

// path resolves uri to the workspace file path, if the client has it open.
func (fm *fileManager) path(uri protocol.URI) (string, bool) {
	d, ok := fm.docs.get(string(uri))
	if !ok {
		return "", false
	}
	return d.path, true
}
