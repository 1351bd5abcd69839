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

// Package syslsp translates jsonrpc2/protocol.Server calls into calls
// against the semantic workspace and its query package. It owns no
// analysis logic of its own: every handler here is a thin adapter from LSP
// wire types to the pure reads in internal/semantic/query and the
// lifecycle calls on workspace.Workspace.
package syslsp

import (
	"context"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/kerml-tools/syster/internal/semantic/query"
	"github.com/kerml-tools/syster/internal/semantic/source"
	"github.com/kerml-tools/syster/internal/semantic/workspace"
)

// server is the protocol.Server implementation this package exposes over a
// jsonrpc2 connection. Every method this type does not define itself falls
// back to nopServer's "not implemented" stub, so adding a new handler is a
// matter of adding a method here rather than touching an interface
// boilerplate file.
type server struct {
	nopServer

	conn   jsonrpc2.Conn
	logger *zap.Logger
	cfg    Config
	ws     *workspace.Workspace
	files  *fileManager
}

// NewServer assembles a protocol.Server backed by a fresh workspace. parse
// is supplied by the caller: this package has no grammar of its own.
func NewServer(conn jsonrpc2.Conn, logger *zap.Logger, cfg Config, parse ParseFunc) protocol.Server {
	ws := workspace.New()
	ws.Resolver().SetRecursiveImportLimit(cfg.RecursiveImportLimit)
	return &server{
		conn:   conn,
		logger: logger,
		cfg:    cfg,
		ws:     ws,
		files:  newFileManager(ws, parse),
	}
}

// -- File synchronization methods.

func (s *server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	err := s.files.open(ctx, params.TextDocument.URI, params.TextDocument.Version, params.TextDocument.Text)
	if err != nil {
		s.logger.Warn("parsing opened document", zap.String("uri", string(params.TextDocument.URI)), zap.Error(err))
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// TextDocumentSyncKindFull means the whole document is always the last
	// entry's Text; there is never a range-based incremental edit to apply.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	err := s.files.update(ctx, params.TextDocument.URI, params.TextDocument.Version, text)
	if err != nil {
		s.logger.Warn("parsing changed document", zap.String("uri", string(params.TextDocument.URI)), zap.Error(err))
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

func (s *server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.files.close(ctx, params.TextDocument.URI)
	return nil
}

// publishDiagnostics re-collects diagnostics for every file currently in the
// workspace and fans them out via publishAll. A single edited file can
// change resolution outcomes anywhere else in the workspace (a rename
// fixes an undefined reference three files over), so the whole workspace
// is republished rather than just the edited file.
func (s *server) publishDiagnostics(ctx context.Context, changed protocol.URI) {
	path, ok := s.files.path(changed)
	if !ok {
		return
	}

	p := newProgress(s.conn)
	p.begin(ctx, "Analyzing")

	diags, err := s.ws.PopulateAffected(ctx, path)
	if err != nil {
		s.logger.Warn("populating workspace", zap.String("path", path), zap.Error(err))
		p.done(ctx)
		return
	}

	for file, found := range s.ws.Validate(ctx) {
		diags[file] = append(diags[file], found...)
	}
	// Files whose problems were all fixed need an explicit empty publish,
	// or the client keeps showing the stale squiggles forever.
	for _, file := range s.ws.FilePaths() {
		if _, ok := diags[file]; !ok {
			diags[file] = nil
		}
	}

	if err := publishAll(ctx, s.conn, s.logger, s.cfg, diags); err != nil {
		s.logger.Warn("publishing diagnostics", zap.Error(err))
	}
	p.done(ctx)
}

// -- Language functionality methods.

func (s *server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	result, ok := query.Hover(s.ws, path, positionFromProtocol(params.Position))
	if !ok {
		return nil, nil
	}
	r := rangeFromSpan(result.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: result.Contents},
		Range:    &r,
	}, nil
}

func (s *server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	loc, ok := query.Definition(s.ws, path, positionFromProtocol(params.Position))
	if !ok {
		return nil, nil
	}
	return []protocol.Location{locationToProtocol(loc)}, nil
}

func (s *server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	locs := query.References(s.ws, path, positionFromProtocol(params.Position), params.Context.IncludeDeclaration)
	out := make([]protocol.Location, len(locs))
	for i, loc := range locs {
		out[i] = locationToProtocol(loc)
	}
	return out, nil
}

func (s *server) DocumentLink(ctx context.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	links := query.DocumentLinks(s.ws, path)
	out := make([]protocol.DocumentLink, len(links))
	for i, l := range links {
		out[i] = protocol.DocumentLink{
			Range:  rangeFromSpan(l.Source.Span),
			Target: protocol.DocumentURI(filePathToURI(l.Target.File)),
		}
	}
	return out, nil
}

func (s *server) CodeLens(ctx context.Context, params *protocol.CodeLensParams) ([]protocol.CodeLens, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	lenses := query.CodeLenses(s.ws, path)
	out := make([]protocol.CodeLens, len(lenses))
	for i, l := range lenses {
		out[i] = protocol.CodeLens{
			Range: rangeFromSpan(l.Span),
			Command: &protocol.Command{
				Title: l.Title,
			},
		}
	}
	return out, nil
}

func (s *server) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	ranges := query.FoldingRanges(s.ws, path)
	out := make([]protocol.FoldingRange, len(ranges))
	for i, fr := range ranges {
		out[i] = protocol.FoldingRange{
			StartLine:      fr.Span.Start.Line,
			StartCharacter: fr.Span.Start.Column,
			EndLine:        fr.Span.End.Line,
			EndCharacter:   fr.Span.End.Column,
			Kind:           foldingKindToProtocol(fr.Kind),
		}
	}
	return out, nil
}

// -- Call hierarchy methods. Type hierarchy has no counterpart in this
// transport's protocol.Server interface, so query.PrepareTypeHierarchy,
// Supertypes, and Subtypes stay reachable only from direct callers and
// tests rather than over the wire.

func (s *server) PrepareCallHierarchy(ctx context.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	path, ok := s.files.path(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	item, ok := query.PrepareCallHierarchy(s.ws, path, positionFromProtocol(params.Position))
	if !ok {
		return nil, nil
	}
	return []protocol.CallHierarchyItem{hierarchyItemToProtocol(item)}, nil
}

func (s *server) IncomingCalls(ctx context.Context, params *protocol.CallHierarchyIncomingCallsParams) ([]protocol.CallHierarchyIncomingCall, error) {
	item := hierarchyItemFromProtocol(params.Item)
	calls := query.IncomingCalls(s.ws, item)
	out := make([]protocol.CallHierarchyIncomingCall, len(calls))
	for i, c := range calls {
		out[i] = protocol.CallHierarchyIncomingCall{From: hierarchyItemToProtocol(c)}
	}
	return out, nil
}

func (s *server) OutgoingCalls(ctx context.Context, params *protocol.CallHierarchyOutgoingCallsParams) ([]protocol.CallHierarchyOutgoingCall, error) {
	item := hierarchyItemFromProtocol(params.Item)
	calls := query.OutgoingCalls(s.ws, item)
	out := make([]protocol.CallHierarchyOutgoingCall, len(calls))
	for i, c := range calls {
		out[i] = protocol.CallHierarchyOutgoingCall{To: hierarchyItemToProtocol(c)}
	}
	return out, nil
}

func positionFromProtocol(p protocol.Position) source.Position {
	return source.Position{Line: uint32(p.Line), Column: uint32(p.Character)}
}

func rangeFromSpan(span source.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: span.Start.Line, Character: span.Start.Column},
		End:   protocol.Position{Line: span.End.Line, Character: span.End.Column},
	}
}

func locationToProtocol(loc query.Location) protocol.Location {
	return protocol.Location{URI: filePathToURI(loc.File), Range: rangeFromSpan(loc.Span)}
}

func foldingKindToProtocol(k query.FoldingKind) protocol.FoldingRangeKind {
	switch k {
	case query.FoldingImports:
		return protocol.ImportsFoldingRange
	case query.FoldingComment:
		return protocol.CommentFoldingRange
	default:
		return protocol.RegionFoldingRange
	}
}

func hierarchyItemToProtocol(item query.HierarchyItem) protocol.CallHierarchyItem {
	return protocol.CallHierarchyItem{
		Name:           item.QualifiedName,
		Detail:         item.Kind,
		URI:            protocol.DocumentURI(filePathToURI(item.Location.File)),
		Range:          rangeFromSpan(item.Location.Span),
		SelectionRange: rangeFromSpan(item.Location.Span),
	}
}

func hierarchyItemFromProtocol(item protocol.CallHierarchyItem) query.HierarchyItem {
	return query.HierarchyItem{
		QualifiedName: item.Name,
		Kind:          item.Detail,
		Location:      query.Location{File: uriToFilePath(protocol.URI(item.URI)), Span: rangeToSpan(item.Range)},
	}
}

func rangeToSpan(r protocol.Range) source.Span {
	return source.NewSpan(
		source.Position{Line: r.Start.Line, Column: r.Start.Character},
		source.Position{Line: r.End.Line, Column: r.End.Character},
	)
}
