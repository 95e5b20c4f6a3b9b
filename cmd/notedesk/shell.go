package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/eventloop"
	"github.com/harunnryd/notedesk/internal/logger"
	"github.com/harunnryd/notedesk/internal/notes"
	"github.com/harunnryd/notedesk/internal/render"

	"github.com/google/shlex"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

// statusSink prints a short line whenever a rendered text changes.
type statusSink struct {
	out     io.Writer
	palette render.Palette
	quiet   bool
}

func (s *statusSink) CaseNotesChanged(text string) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.out, "· case notes updated (%d chars)\n", len([]rune(text)))
}

func (s *statusSink) SpinsChanged(text string, budget notes.Budget) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.out, "· SPINS %s\n", render.BudgetBar(budget, render.DefaultBarWidth, s.palette))
}

// Shell keeps one profile open on an event loop and runs CLI commands
// against it line by line.
type Shell struct {
	app    *App
	loop   *eventloop.Loop
	poller *callback.Poller
	out    io.Writer
	in     io.Reader
}

func NewShell(ctx context.Context, c *config.Config, in io.Reader, out io.Writer, quiet bool) (*Shell, error) {
	w := &syncWriter{w: out}
	sink := &statusSink{out: w, quiet: quiet}

	loop := eventloop.New(c.Loop.InboxSize)
	loop.Start()

	app, err := openApp(c, loop, sink)
	if err != nil {
		loop.Stop()
		return nil, fmt.Errorf("failed to open profile %s: %w", c.Store.Profile, err)
	}
	sink.palette = render.PaletteFor(app.ws.Theme())

	s := &Shell{app: app, loop: loop, out: w, in: in}

	poller, err := newReminderPoller(ctx, app, w)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := poller.Init(ctx); err != nil {
		s.Close()
		return nil, err
	}
	if err := poller.Start(ctx); err != nil {
		s.Close()
		return nil, err
	}
	s.poller = poller
	return s, nil
}

// Run reads commands until exit, end of input or cancellation.
func (s *Shell) Run(ctx context.Context) error {
	slog.Debug("Shell started", "profile", logger.GetProfile(ctx), "session", logger.GetSessionID(ctx))
	fmt.Fprintf(s.out, "notedesk shell (profile %s). Type 'help' for commands, 'exit' to quit.\n", s.app.cfg.Store.Profile)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		r := bufio.NewReader(s.in)
		for {
			line, err := r.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		fmt.Fprint(s.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case err := <-readErr:
			if err == io.EOF {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		case line := <-lines:
			if s.Exec(ctx, line) {
				return nil
			}
		}
	}
}

// Exec runs one input line. It reports true when the user asked to leave.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	args, err := shlex.Split(line)
	if err != nil {
		args = strings.Fields(line)
	}
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "exit", "quit":
		return true
	}

	root := &cobra.Command{
		Use:           "notedesk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addCommands(root)
	root.SetArgs(args)
	root.SetOut(s.out)
	root.SetErr(s.out)
	root.SetIn(strings.NewReader(""))

	_ = execute(withApp(ctx, s.app), root)
	return false
}

// Close stops the reminder poller and the loop, then releases the profile.
func (s *Shell) Close() error {
	if s.poller != nil {
		stopPoller(s.poller)
	}
	_ = s.loop.Do(context.Background(), func() { s.app.ws.Flush() })
	s.loop.Stop()
	return s.app.Close()
}

func newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Work a case interactively",
		Long: `Open the profile once and run notedesk commands against it line by line.
Texts are recomputed in the background as fields change and call back
reminders are printed while the shell is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quiet, _ := cmd.Flags().GetBool("quiet")
			c, err := currentConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			sig := NewSignalHandler(cmd.Context())
			sig.Start()
			defer sig.Stop()

			ctx := logger.WithProfile(sig.Context(), c.Store.Profile)
			ctx = logger.WithSessionID(ctx, ulid.Make().String())

			sh, err := NewShell(ctx, c, cmd.InOrStdin(), cmd.OutOrStdout(), quiet)
			if err != nil {
				return err
			}
			defer sh.Close()

			return sh.Run(ctx)
		},
	}
	cmd.Flags().BoolP("quiet", "q", false, "do not print status lines when texts change")
	return cmd
}
