package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/harunnryd/notedesk/internal/config"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "notedesk",
	Short: "Case notes and call back desk",
	Long: `notedesk keeps the case notes and SPINS texts of the case you are working
on up to date, and tracks the call backs you book for customers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cmd)
		if err != nil {
			return err
		}

		logger.Setup(cfg.Log.Level)
		return nil
	},
}

func Execute() {
	if err := execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

// execute runs root and prints what went wrong. A duplicate is only a
// warning and comes back as nil.
func execute(ctx context.Context, root *cobra.Command) error {
	return reportError(root.ErrOrStderr(), root.ExecuteContext(ctx))
}

func reportError(w io.Writer, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.IsCategory(err, errors.ErrDuplicate):
		fmt.Fprintf(w, "⚠ %s\n", errors.Message(err))
		return nil
	case errors.IsUserFacing(err):
		fmt.Fprintf(w, "✗ %s\n", errors.Message(err))
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return err
}

// addCommands attaches the case commands to parent. The shell builds a
// fresh tree per input line so flag values never leak between lines.
func addCommands(parent *cobra.Command) {
	parent.AddCommand(
		newNotesCmd(),
		newStepsCmd(),
		newSpinsCmd(),
		newCallbackCmd(),
		newSettingsCmd(),
	)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.notedesk/config.yaml)")
	rootCmd.PersistentFlags().String("log.level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("store.profile", config.DefaultStoreProfile, "profile whose state is used")
	rootCmd.PersistentFlags().String("store.path", "", "profile root directory (default is $HOME/.notedesk/profiles)")

	addCommands(rootCmd)
	rootCmd.AddCommand(configCmd, profileCmd, newShellCmd(), newRemindCmd())
}
