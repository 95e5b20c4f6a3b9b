package main

import (
	"fmt"
	"strconv"

	"github.com/harunnryd/notedesk/internal/callback"
	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/render"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/spf13/cobra"
)

func newCallbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "callback",
		Aliases: []string{"cb"},
		Short:   "Schedule and track call backs",
	}
	cmd.AddCommand(
		newCallbackDraftCmd(),
		newCallbackQuickCmd(),
		newCallbackScheduleCmd(),
		newCallbackListCmd(),
		newCallbackCompleteCmd(),
		newCallbackEditCmd(),
		newCallbackDeleteCmd(),
		newCallbackClearCmd(),
		newCallbackStatsCmd(),
		newCallbackSessionCmd(),
	)
	return cmd
}

func printDraft(cmd *cobra.Command, d callback.Draft) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reason:   %s\n", d.Reason)
	fmt.Fprintf(out, "Case:     %s\n", d.CaseNumber)
	fmt.Fprintf(out, "Date:     %s\n", d.Date)
	fmt.Fprintf(out, "Slot:     %s\n", d.Time)
	fmt.Fprintf(out, "Time:     %s\n", d.SpecificTime)
}

func newCallbackDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Show or fill in the call back draft",
		Long: `Show the call back draft, or change the fields given as flags. Choosing a
slot fills in its default time; giving a time clears the slot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			reason, _ := flags.GetString("reason")
			caseNumber, _ := flags.GetString("case")
			date, _ := flags.GetString("date")
			slot, _ := flags.GetString("slot")
			at, _ := flags.GetString("time")

			if flags.Changed("slot") && !callback.Slot(slot).Valid() {
				return errors.InvalidInput("slot must be morning, afternoon or evening")
			}
			if flags.Changed("date") && date != "" {
				if err := callback.ValidateDate(date); err != nil {
					return err
				}
			}

			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				ws.EditDraft(func(d *callback.Draft) {
					if flags.Changed("reason") {
						d.Reason = reason
					}
					if flags.Changed("case") {
						d.CaseNumber = caseNumber
					}
					if flags.Changed("date") {
						d.Date = date
					}
					if flags.Changed("slot") {
						d.SelectSlot(callback.Slot(slot))
					}
					if flags.Changed("time") {
						d.SetSpecificTime(at)
					}
				})
				printDraft(cmd, ws.Draft())
				return nil
			})
		},
	}
	cmd.Flags().String("reason", "", "reason for the call back")
	cmd.Flags().String("case", "", "case number")
	cmd.Flags().String("date", "", "date as YYYY-MM-DD")
	cmd.Flags().String("slot", "", "morning, afternoon or evening")
	cmd.Flags().String("time", "", "explicit time as HH:MM")
	return cmd
}

func newCallbackQuickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quick <hours>",
		Short: "Fill the draft for a call back some hours from now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[0], 64)
			if err != nil || hours <= 0 {
				return errors.InvalidInput(fmt.Sprintf("invalid hours %q", args[0]))
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				ws.QuickSchedule(hours)
				printDraft(cmd, ws.Draft())
				return nil
			})
		},
	}
}

func newCallbackScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Book the drafted call back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				cb, err := ws.ScheduleCallback()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Call back %s booked for %s at %s\n",
					cb.ID, callback.FormatLong(cb.Date), cb.TimeDisplay())
				return nil
			})
		},
	}
}

func newCallbackListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List call backs, today's first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			window, _ := cmd.Flags().GetString("window")
			if !callback.StatusFilter(status).Valid() {
				return errors.InvalidInput("status must be all, pending or completed")
			}
			if !callback.DateWindow(window).Valid() {
				return errors.InvalidInput("window must be all, today, tomorrow or week")
			}

			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				f, err := formatterFor(cmd, ws)
				if err != nil {
					return err
				}
				items := ws.Tracker().Filter(callback.StatusFilter(status), callback.DateWindow(window))

				outputFormat, _ := cmd.Flags().GetString("output")
				out := cmd.OutOrStdout()
				if outputFormat != string(render.OutputFormatTable) {
					text, err := f.FormatCallbacks(items)
					if err != nil {
						return fmt.Errorf("failed to format output: %w", err)
					}
					fmt.Fprintln(out, text)
					return nil
				}

				today, others := callback.SplitToday(items, ws.Tracker().Today())
				palette := render.PaletteFor(ws.Theme())
				for _, section := range []struct {
					title string
					items []callback.CallBack
				}{{"Today", today}, {"Upcoming and past", others}} {
					text, err := f.FormatCallbacks(section.items)
					if err != nil {
						return fmt.Errorf("failed to format output: %w", err)
					}
					fmt.Fprintln(out, render.Heading(section.title, palette))
					fmt.Fprintln(out, text)
				}
				fmt.Fprintln(out, render.Stats(ws.Tracker().Stats()))
				return nil
			})
		},
	}
	cmd.Flags().String("status", string(callback.FilterAll), "all, pending or completed")
	cmd.Flags().String("window", string(callback.WindowAll), "all, today, tomorrow or week")
	addOutputFlag(cmd)
	return cmd
}

func newCallbackCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a call back as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				reportChange(cmd.OutOrStdout(), ws.CompleteCallback(args[0]), "Call back completed", "No pending call back with that id.")
				return nil
			})
		},
	}
}

func newCallbackEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change reason, case number, date or time of a call back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				cb, ok := ws.Tracker().Get(args[0])
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No call back with that id.")
					return nil
				}

				e := callback.Edit{
					Reason:       cb.Reason,
					CaseNumber:   cb.CaseNumber,
					Date:         cb.Date,
					SpecificTime: cb.SpecificTime,
				}
				flags := cmd.Flags()
				if flags.Changed("reason") {
					e.Reason, _ = flags.GetString("reason")
				}
				if flags.Changed("case") {
					e.CaseNumber, _ = flags.GetString("case")
				}
				if flags.Changed("date") {
					e.Date, _ = flags.GetString("date")
				}
				if flags.Changed("time") {
					e.SpecificTime, _ = flags.GetString("time")
				}

				ok, err := ws.UpdateCallback(args[0], e)
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), ok, "Call back updated", "No call back with that id.")
				return nil
			})
		},
	}
	cmd.Flags().String("reason", "", "reason for the call back")
	cmd.Flags().String("case", "", "case number")
	cmd.Flags().String("date", "", "date as YYYY-MM-DD")
	cmd.Flags().String("time", "", "time as HH:MM")
	return cmd
}

func newCallbackDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a call back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				reportChange(cmd.OutOrStdout(), ws.DeleteCallback(args[0]), "Call back deleted", "No call back with that id.")
				return nil
			})
		},
	}
}

func newCallbackClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete completed call backs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			yes, _ := cmd.Flags().GetBool("yes")
			if all && !yes {
				return errors.InvalidInput("clearing every call back needs --yes")
			}

			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				var n int
				if all {
					n = ws.ClearAllCallbacks()
				} else {
					n = ws.ClearCompletedCallbacks()
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d call backs\n", n)
				return nil
			})
		},
	}
	cmd.Flags().Bool("all", false, "delete every call back, pending ones included")
	cmd.Flags().Bool("yes", false, "confirm --all")
	return cmd
}

func newCallbackStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count today's, pending and completed call backs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				fmt.Fprintln(cmd.OutOrStdout(), render.Stats(ws.Tracker().Stats()))
				return nil
			})
		},
	}
}

func newCallbackSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Call backs booked during this case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				out := cmd.OutOrStdout()
				session := ws.Tracker().Session()
				if len(session) == 0 {
					fmt.Fprintln(out, "No call backs booked for this case.")
					return nil
				}
				for _, cb := range session {
					fmt.Fprintf(out, "%s  %s - %s at %s\n", cb.ID, cb.Reason, cb.Date, cb.TimeDisplay())
				}
				return nil
			})
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "edit <id>",
			Short: "Move a booked call back back into the draft",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, func(ws *workspace.Workspace) error {
					if !ws.EditSessionCallback(args[0]) {
						fmt.Fprintln(cmd.OutOrStdout(), "No session call back with that id.")
						return nil
					}
					printDraft(cmd, ws.Draft())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Drop a call back from the case notes without deleting it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, func(ws *workspace.Workspace) error {
					reportChange(cmd.OutOrStdout(), ws.RemoveSessionCallback(args[0]), "Removed from this case", "No session call back with that id.")
					return nil
				})
			},
		},
	)
	return cmd
}
