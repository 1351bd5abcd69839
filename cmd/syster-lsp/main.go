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

// Command syster-lsp runs the KerML/SysML language server.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/kerml-tools/syster/internal/semantic/ast"
	"github.com/kerml-tools/syster/internal/syslsp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "syster-lsp",
		Short: "Language server for KerML and SysML v2",
	}
	root.AddCommand(newServeCommand())
	return root
}

type serveFlags struct {
	pipePath string
	logLevel string
	watch    string
}

func newServeCommand() *cobra.Command {
	flags := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the language server and speak LSP over stdio or a pipe",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.pipePath, "pipe", "", "path to a UNIX socket to connect to; uses stdio if not specified")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&flags.watch, "watch", "", "optional directory to watch for external edits to .kerml/.sysml files")
	return cmd
}

func runServe(ctx context.Context, flags *serveFlags) error {
	logger, err := syslsp.NewLogger(os.Stderr, flags.logLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	transport, err := dial(flags.pipePath)
	if err != nil {
		return err
	}

	cfg, err := syslsp.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("loading syster.yaml: %w", err)
	}

	stream := jsonrpc2.NewStream(transport)
	conn := jsonrpc2.NewConn(stream)

	srv := syslsp.NewServer(conn, logger, cfg, notImplementedParser)

	if flags.watch != "" {
		stop, err := watchExternalEdits(flags.watch, logger)
		if err != nil {
			return fmt.Errorf("starting file watch on %q: %w", flags.watch, err)
		}
		defer stop()
	}

	conn.Go(ctx, protocol.ServerHandler(srv, jsonrpc2.MethodNotFoundHandler))
	<-conn.Done()
	return conn.Err()
}

// dial opens the transport the server will speak jsonrpc2 over: a UNIX
// socket if pipePath is set (what VS Code's LSP client expects when it
// spawns a pipe-mode server), stdio otherwise.
func dial(pipePath string) (io.ReadWriteCloser, error) {
	if pipePath == "" {
		return stdioReadWriteCloser{}, nil
	}
	conn, err := net.Dial("unix", pipePath)
	if err != nil {
		return nil, fmt.Errorf("could not open IPC socket %q: %w", pipePath, err)
	}
	return conn, nil
}

// stdioReadWriteCloser adapts os.Stdin/os.Stdout to io.ReadWriteCloser.
// Closing it never closes the underlying stdio handles: Exit already calls
// conn.Close() once the client's reply has flushed, and closing os.Stdout
// out from under a still-running process is never correct.
type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return nil }

// notImplementedParser is wired in until a real KerML/SysML grammar is
// plugged in; the semantic core never parses source text itself; see
// internal/semantic/ast's package doc.
func notImplementedParser(path, text string) (ast.File, error) {
	return ast.File{}, errors.New("syster-lsp: no parser wired in for " + path)
}

// watchExternalEdits starts an fsnotify watcher over root so edits made
// outside the editor (a git checkout, a generator run) get logged even
// though this server has no open-document version to attribute them to.
// It is a CLI-level convenience, not a workspace invalidation path: turning
// a raw filesystem write into a validated AddFile/UpdateFile call needs the
// same parser notImplementedParser stands in for, so today this only logs.
func watchExternalEdits(root string, logger *zap.Logger) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(root); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !isSourceFile(event.Name) {
					continue
				}
				logger.Info("external edit detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("file watch error", zap.Error(err))
			}
		}
	}()

	return func() {
		watcher.Close() //nolint:errcheck
		<-done
	}, nil
}

func isSourceFile(name string) bool {
	for _, suffix := range []string{".kerml", ".sysml"} {
		if len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix {
			return true
		}
	}
	return false
}
