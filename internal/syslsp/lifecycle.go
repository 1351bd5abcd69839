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

// This file defines the lifecycle message handlers: Initialize through Exit.

package syslsp

import (
	"context"
	"runtime/debug"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

const serverName = "syster-lsp"

var serverInfo = makeServerInfo()

func makeServerInfo() protocol.ServerInfo {
	info := protocol.ServerInfo{Name: serverName}
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.Version = buildInfo.Main.Version
	}
	return info
}

// Initialize is the first message the client sends. There is no project
// discovery or persisted state on our side — its only job is to advertise
// capabilities.
func (s *server) Initialize(
	ctx context.Context,
	params *protocol.InitializeParams,
) (*protocol.InitializeResult, error) {
	s.logger.Info("initializing", zap.Int32("pid", params.ProcessID))

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			HoverProvider:         true,
			DefinitionProvider:    true,
			ReferencesProvider:    true,
			DocumentLinkProvider:  &protocol.DocumentLinkOptions{},
			CodeLensProvider:      &protocol.CodeLensOptions{},
			FoldingRangeProvider:  true,
			CallHierarchyProvider: true,
		},
		ServerInfo: &serverInfo,
	}, nil
}

func (s *server) Initialized(context.Context, *protocol.InitializedParams) error {
	return nil
}

func (s *server) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error {
	return nil
}

// Shutdown is sent when the client wants the server to stop, ahead of Exit.
func (s *server) Shutdown(context.Context) error {
	return nil
}

// Exit closes the connection, letting the process exit once the reply to
// this notification has been flushed.
func (s *server) Exit(context.Context) error {
	return s.conn.Close()
}
