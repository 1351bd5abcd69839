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

package syslsp

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// filePathToURI converts a workspace file path to the URI form the LSP
// wire protocol uses.
func filePathToURI(path string) protocol.URI {
	return protocol.URI(uri.File(path))
}

// uriToFilePath converts a client-supplied document URI back to the plain
// file path the semantic workspace indexes files by.
func uriToFilePath(u protocol.URI) string {
	return u.Filename()
}
