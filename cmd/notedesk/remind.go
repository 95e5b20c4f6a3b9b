package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/eventloop"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/spf13/cobra"
)

const pollerStopTimeout = 5 * time.Second

// loopSweeper runs the reminder sweep on the event loop that owns the
// workspace.
type loopSweeper struct {
	ctx  context.Context
	loop *eventloop.Loop
	ws   *workspace.Workspace
}

func (s loopSweeper) SweepReminders(now time.Time) []callback.Reminder {
	var due []callback.Reminder
	if err := s.loop.Do(s.ctx, func() { due = s.ws.SweepReminders(now) }); err != nil {
		slog.Debug("Reminder sweep skipped", "error", err)
	}
	return due
}

// reminderPrinter writes reminders to the terminal, with the bell when
// sound is on.
type reminderPrinter struct {
	out   io.Writer
	sound func() bool
}

func (p reminderPrinter) Notify(ctx context.Context, r callback.Reminder) error {
	bell := ""
	if p.sound != nil && p.sound() {
		bell = "\a"
	}
	_, err := fmt.Fprintf(p.out, "%s🔔 %s (%s at %s)\n", bell, r.Message, r.CallBack.Date, r.CallBack.TimeDisplay())
	return err
}

// syncWriter serialises writes from the loop, the poller and the prompt.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// newReminderPoller wires the reminder poller to an app running on a loop.
func newReminderPoller(ctx context.Context, app *App, out io.Writer) (*callback.Poller, error) {
	sweeper := loopSweeper{ctx: ctx, loop: app.loop, ws: app.ws}
	printer := reminderPrinter{
		out: out,
		sound: func() bool {
			var on bool
			_ = app.loop.Do(ctx, func() { on = app.ws.Settings().SoundEnabled })
			return on
		},
	}
	return callback.NewPoller(sweeper, printer, app.cfg.Callbacks, nil)
}

func stopPoller(p *callback.Poller) {
	ctx, cancel := context.WithTimeout(context.Background(), pollerStopTimeout)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		slog.Warn("Failed to stop reminder poller", "error", err)
	}
}

func newRemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Watch for call backs that are about to be due",
		Long: `Sweep the call back tracker on the configured schedule and print a reminder
for each pending call back starting within the reminder lead time. The profile
stays open while watching; the shell runs the same reminders alongside editing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			once, _ := cmd.Flags().GetBool("once")
			c, err := currentConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			sig := NewSignalHandler(cmd.Context())
			sig.Start()
			defer sig.Stop()
			ctx := sig.Context()

			loop := eventloop.New(c.Loop.InboxSize)
			loop.Start()
			defer loop.Stop()

			app, err := openApp(c, loop, nil)
			if err != nil {
				return fmt.Errorf("failed to open profile %s: %w", c.Store.Profile, err)
			}
			defer app.Close()

			out := &syncWriter{w: cmd.OutOrStdout()}
			poller, err := newReminderPoller(ctx, app, out)
			if err != nil {
				return err
			}

			if once {
				n := poller.RunOnce(ctx)
				fmt.Fprintf(out, "%d reminders delivered\n", n)
				return nil
			}

			if err := poller.Init(ctx); err != nil {
				return err
			}
			if err := poller.Start(ctx); err != nil {
				return err
			}
			defer stopPoller(poller)

			poller.RunOnce(ctx)
			fmt.Fprintln(out, "Watching for due call backs. Press Ctrl+C to stop.")
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().Bool("once", false, "sweep once and exit")
	return cmd
}
