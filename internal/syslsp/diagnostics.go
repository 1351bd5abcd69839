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

// This file bridges the semantic core's error taxonomy to LSP diagnostics.

package syslsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kerml-tools/syster/internal/semantic/diag"
)

// maxConcurrentPublishes bounds the fan-out in publishAll: one goroutine per
// file notification, capped so a workspace-wide re-populate of thousands of
// files doesn't open thousands of concurrent jsonrpc2 calls at once.
const maxConcurrentPublishes = 8

// kindSeverity is the built-in default mapping from diag.Kind to LSP
// severity, overridden per-kind by Config.Severity.
var kindSeverity = map[diag.Kind]protocol.DiagnosticSeverity{
	diag.ParseError:         protocol.DiagnosticSeverityError,
	diag.DuplicateSymbol:    protocol.DiagnosticSeverityError,
	diag.UndefinedReference: protocol.DiagnosticSeverityWarning,
	diag.InvalidType:        protocol.DiagnosticSeverityError,
	diag.Cycle:              protocol.DiagnosticSeverityError,
}

var stringToSeverity = map[string]protocol.DiagnosticSeverity{
	"error":       protocol.DiagnosticSeverityError,
	"warning":     protocol.DiagnosticSeverityWarning,
	"information": protocol.DiagnosticSeverityInformation,
	"hint":        protocol.DiagnosticSeverityHint,
}

// severityFor resolves kind's LSP severity, applying cfg's override if one
// is configured for it.
func severityFor(cfg Config, kind diag.Kind) protocol.DiagnosticSeverity {
	if s, ok := cfg.severityOverride(kind); ok {
		if sev, ok := stringToSeverity[s]; ok {
			return sev
		}
	}
	return kindSeverity[kind]
}

// toProtocolDiagnostic converts one core diagnostic to its LSP wire form.
func toProtocolDiagnostic(cfg Config, d diag.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: d.Span.Start.Line, Character: d.Span.Start.Column},
			End:   protocol.Position{Line: d.Span.End.Line, Character: d.Span.End.Column},
		},
		Severity: severityFor(cfg, d.Kind),
		Source:   serverName,
		Message:  d.Message,
	}
}

// publishAll sends a textDocument/publishDiagnostics notification for every
// entry in perFile, fanning the notifications out across a bounded pool of
// goroutines with errgroup. Population itself (internal/semantic/workspace)
// stays single-threaded because every file's adapter shares one symbol
// table's scope cursor — but by the time publishAll runs, population has
// already finished and each notification is an independent write to the
// client connection, so this is the one point in the populate-then-publish
// pipeline where fanning out is actually safe.
func publishAll(ctx context.Context, conn notifier, logger *zap.Logger, cfg Config, perFile map[string][]diag.Diagnostic) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPublishes)

	for path, diags := range perFile {
		path, diags := path, diags
		g.Go(func() error {
			protoDiags := make([]protocol.Diagnostic, len(diags))
			for i, d := range diags {
				protoDiags[i] = toProtocolDiagnostic(cfg, d)
			}
			err := conn.Notify(ctx, "textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
				URI:         filePathToURI(path),
				Diagnostics: protoDiags,
			})
			if err != nil {
				logger.Warn("publishing diagnostics", zap.String("path", path), zap.Error(err))
			}
			return err
		})
	}

	return g.Wait()
}

// notifier is the subset of jsonrpc2.Conn publishAll needs, narrowed so it
// can be exercised with a fake in tests.
type notifier interface {
	Notify(ctx context.Context, method string, params interface{}) error
}
