package main

import (
	"fmt"
	"strings"

	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Notification settings, feature flags and theme",
	}
	cmd.AddCommand(newNotificationsCmd(), newFlagCmd(), newThemeCmd())
	return cmd
}

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show or change call back reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				s := ws.Settings()
				changed := false
				if flags.Changed("enabled") {
					s.Enabled, _ = flags.GetBool("enabled")
					changed = true
				}
				if flags.Changed("minutes") {
					minutes, _ := flags.GetInt("minutes")
					if minutes < 1 {
						return errors.InvalidInput("reminder lead time must be at least one minute")
					}
					s.ReminderTime = minutes
					changed = true
				}
				if flags.Changed("sound") {
					s.SoundEnabled, _ = flags.GetBool("sound")
					changed = true
				}
				if flags.Changed("desktop") {
					s.BrowserNotificationsEnabled, _ = flags.GetBool("desktop")
					changed = true
				}
				if changed {
					ws.SetSettings(s)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Reminders:  %s\n", onOff(s.Enabled))
				fmt.Fprintf(out, "Lead time:  %d minutes\n", s.ReminderTime)
				fmt.Fprintf(out, "Sound:      %s\n", onOff(s.SoundEnabled))
				fmt.Fprintf(out, "Desktop:    %s\n", onOff(s.BrowserNotificationsEnabled))
				return nil
			})
		},
	}
	cmd.Flags().Bool("enabled", true, "remind about upcoming call backs")
	cmd.Flags().Int("minutes", 5, "minutes before a call back to remind")
	cmd.Flags().Bool("sound", true, "ring the terminal bell with a reminder")
	cmd.Flags().Bool("desktop", false, "also raise desktop notifications")
	return cmd
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, errors.InvalidInput(fmt.Sprintf("expected on or off, got %q", s))
}

func newFlagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flag [name] [on|off]",
		Short: "Show or toggle feature flags",
		Long: `Show every feature flag, or turn one on or off.

Flags: ` + strings.Join(workspace.Flags(), ", "),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				out := cmd.OutOrStdout()
				switch len(args) {
				case 0:
					for _, name := range workspace.Flags() {
						fmt.Fprintf(out, "%-32s %s\n", name, onOff(ws.Flag(name)))
					}
					return nil
				case 1:
					fmt.Fprintln(out, onOff(ws.Flag(args[0])))
					return nil
				}

				enabled, err := parseOnOff(args[1])
				if err != nil {
					return err
				}
				if err := ws.SetFlag(args[0], enabled); err != nil {
					return err
				}
				fmt.Fprintf(out, "✓ %s %s\n", args[0], onOff(enabled))
				return nil
			})
		},
	}
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the colour theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				if len(args) == 1 {
					if err := ws.SetTheme(strings.ToLower(args[0])); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), ws.Theme())
				return nil
			})
		},
	}
}
