package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/eventloop"
	"github.com/harunnryd/notedesk/internal/render"
	"github.com/harunnryd/notedesk/internal/store"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/spf13/cobra"
)

// App is an opened profile: its locked store and the workspace on top.
type App struct {
	cfg  *config.Config
	kv   *store.File
	ws   *workspace.Workspace
	loop *eventloop.Loop
}

type appKey struct{}

func withApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

func appFrom(ctx context.Context) *App {
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(appKey{}).(*App)
	return app
}

// openApp locks the configured profile and hydrates its workspace. With
// a loop, recomputes are debounced onto it.
func openApp(c *config.Config, loop *eventloop.Loop, sink workspace.Sink) (*App, error) {
	kv, err := store.OpenFile(c.Store.Profile, c.Store.Path, store.FileLockConfigFrom(c.Store))
	if err != nil {
		return nil, err
	}

	opts := workspace.Options{
		Notes:         c.Notes,
		QuickSchedule: c.Callbacks.QuickSchedule,
		Sink:          sink,
	}
	if loop != nil {
		opts.Post = loop.Post
	}

	ws, err := workspace.Open(kv, opts)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return &App{cfg: c, kv: kv, ws: ws, loop: loop}, nil
}

func (a *App) Close() error {
	a.ws.Close()
	return a.kv.Close()
}

func currentConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	return config.Load(cmd)
}

// withWorkspace runs fn against the workspace of the current profile.
// Inside the shell fn runs on the shell's event loop; otherwise the
// profile is opened for the duration of fn.
func withWorkspace(cmd *cobra.Command, fn func(*workspace.Workspace) error) error {
	if app := appFrom(cmd.Context()); app != nil {
		var runErr error
		if err := app.loop.Do(cmd.Context(), func() { runErr = fn(app.ws) }); err != nil {
			return err
		}
		return runErr
	}

	c, err := currentConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app, err := openApp(c, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to open profile %s: %w", c.Store.Profile, err)
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			slog.Warn("Failed to close profile", "profile", c.Store.Profile, "error", cerr)
		}
	}()

	return fn(app.ws)
}

// parseIndex turns a 1-based position typed by the user into a slice
// index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errors.InvalidInput(fmt.Sprintf("invalid position %q", s))
	}
	return n - 1, nil
}

func reportChange(w io.Writer, changed bool, done, unchanged string) {
	if changed {
		fmt.Fprintln(w, "✓ "+done)
		return
	}
	fmt.Fprintln(w, unchanged)
}

func formatterFor(cmd *cobra.Command, ws *workspace.Workspace) (render.Formatter, error) {
	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat == "" {
		outputFormat = string(render.OutputFormatTable)
	}
	format, err := render.ParseOutputFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return render.NewFormatterFactory(ws.Theme()).Create(format)
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", string(render.OutputFormatTable), "output format (table, json, yaml)")
}
