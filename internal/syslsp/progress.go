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

// This file implements server-initiated $/progress reporting, used around
// the workspace-wide repopulate a large edit can trigger so a client with a
// progress UI has something to show during it.

package syslsp

import (
	"context"

	"github.com/google/uuid"
	"go.lsp.dev/protocol"
)

// progress tracks one server-initiated $/progress sequence. Every instance
// gets its own token so overlapping populates on a busy client don't get
// their begin/report/end notifications interleaved under the same token.
type progress struct {
	conn  notifier
	token string
}

// newProgress mints a fresh progress sequence, identified by a uuid rather
// than a counter or random int so the token is collision-free across
// restarts without the server having to track what it has already handed
// out.
func newProgress(conn notifier) *progress {
	return &progress{conn: conn, token: uuid.NewString()}
}

func (p *progress) begin(ctx context.Context, title string) {
	if p == nil {
		return
	}
	_ = p.conn.Notify(ctx, "$/progress", &protocol.ProgressParams{
		Token: *protocol.NewProgressToken(p.token),
		Value: &protocol.WorkDoneProgressBegin{
			Kind:  protocol.WorkDoneProgressKindBegin,
			Title: title,
		},
	})
}

func (p *progress) report(ctx context.Context, message string, percent float64) {
	if p == nil {
		return
	}
	_ = p.conn.Notify(ctx, "$/progress", &protocol.ProgressParams{
		Token: *protocol.NewProgressToken(p.token),
		Value: &protocol.WorkDoneProgressReport{
			Kind:       protocol.WorkDoneProgressKindReport,
			Message:    message,
			Percentage: uint32(percent * 100),
		},
	})
}

func (p *progress) done(ctx context.Context) {
	if p == nil {
		return
	}
	_ = p.conn.Notify(ctx, "$/progress", &protocol.ProgressParams{
		Token: *protocol.NewProgressToken(p.token),
		Value: &protocol.WorkDoneProgressEnd{Kind: protocol.WorkDoneProgressKindEnd},
	})
}
