package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/harunnryd/notedesk/internal/catalog"
	"github.com/harunnryd/notedesk/internal/steps"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

func newStepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Manage troubleshooting steps",
		Long: `Manage the troubleshooting steps of the case, the saved custom steps and
the usage rankings behind the quick picks.`,
	}
	cmd.AddCommand(
		newStepsListCmd(),
		newStepsAddCmd(),
		newStepsPickCmd(),
		newStepsRemoveCmd(),
		newStepsMoveCmd(),
		newStepsEditCmd(),
		newStepsSearchCmd(),
		newStepsRankCmd(),
		newStepsLibraryCmd(),
	)
	return cmd
}

func newStepsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the steps of the case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				out := cmd.OutOrStdout()
				items := ws.Steps()
				if len(items) == 0 {
					fmt.Fprintln(out, "No troubleshooting steps yet.")
					return nil
				}
				for i, s := range items {
					suffix := ""
					if s.IsAuto() {
						suffix = " (auto)"
					}
					fmt.Fprintf(out, "%d. %s%s\n", i+1, s.Text, suffix)
				}
				return nil
			})
		},
	}
}

func newStepsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a step as typed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed := ws.EditSteps(func(l *steps.List) bool { return l.Add(args[0]) })
				reportChange(cmd.OutOrStdout(), changed, "Step added", "Nothing added (empty step).")
				return nil
			})
		},
	}
}

func newStepsPickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick <text>",
		Short: "Add a step from the quick picks and count its use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed := ws.EditSteps(func(l *steps.List) bool { return l.AddFromQuickPick(args[0]) })
				reportChange(cmd.OutOrStdout(), changed, "Step added", "Nothing added (empty step).")
				return nil
			})
		},
	}
}

func newStepsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <position>",
		Short: "Remove a step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed := ws.EditSteps(func(l *steps.List) bool { return l.RemoveAt(i) })
				reportChange(cmd.OutOrStdout(), changed, "Step removed", "No step at that position.")
				return nil
			})
		},
	}
}

func newStepsMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <position> <up|down|position>",
		Short: "Reorder a step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMove(args[0], args[1])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed := ws.EditSteps(func(l *steps.List) bool { return m.apply(l) })
				reportChange(cmd.OutOrStdout(), changed, "Step moved", "Nothing moved.")
				return nil
			})
		},
	}
}

func newStepsEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <position> <text>",
		Short: "Rewrite a step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed := ws.EditSteps(func(l *steps.List) bool { return l.ReplaceAt(i, args[1]) })
				reportChange(cmd.OutOrStdout(), changed, "Step updated", "Edit cancelled.")
				return nil
			})
		},
	}
}

func newStepsSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search catalogue and custom steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				f, err := formatterFor(cmd, ws)
				if err != nil {
					return err
				}
				out, err := f.FormatMatches(ws.SearchSteps(args[0]))
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	addOutputFlag(cmd)
	return cmd
}

func newStepsRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Show how often each step was picked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryFlag, _ := cmd.Flags().GetString("category")
			top, _ := cmd.Flags().GetInt("top")
			category, err := catalog.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}

			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				f, err := formatterFor(cmd, ws)
				if err != nil {
					return err
				}
				ranked := ws.Rankings(category)
				if top > 0 && len(ranked) > top {
					ranked = ranked[:top]
				}
				out, err := f.FormatRankings(ranked)
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)

				distinct, total := ws.RankingTotals()
				fmt.Fprintf(cmd.OutOrStdout(), "\nSteps used: %d  Total uses: %d\n", distinct, total)
				return nil
			})
		},
	}
	cmd.Flags().String("category", "", "filter by category (internet, tv, shawid, other, custom)")
	cmd.Flags().Int("top", 0, "show only the top N steps")
	addOutputFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget all usage counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				reportChange(cmd.OutOrStdout(), ws.ResetRankings(), "Rankings reset", "No rankings to reset.")
				return nil
			})
		},
	})
	return cmd
}

func newStepsLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage saved custom steps",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved custom steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				f, err := formatterFor(cmd, ws)
				if err != nil {
					return err
				}
				out, err := f.FormatCustomSteps(ws.CustomSteps())
				if err != nil {
					return fmt.Errorf("failed to format output: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	addOutputFlag(list)

	add := &cobra.Command{
		Use:   "add <text>",
		Short: "Save a custom step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				s, err := ws.AddCustomStep(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", s.ID)
				return nil
			})
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Rewrite a custom step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				ok, err := ws.EditCustomStep(args[0], args[1])
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), ok, "Custom step updated", "No custom step with that id.")
				return nil
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				reportChange(cmd.OutOrStdout(), ws.DeleteCustomStep(args[0]), "Custom step deleted", "No custom step with that id.")
				return nil
			})
		},
	}

	export := &cobra.Command{
		Use:   "export [file]",
		Short: "Export custom steps as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				data, err := ws.ExportCustomSteps()
				if err != nil {
					return err
				}
				if len(args) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
					return nil
				}
				if err := atomic.WriteFile(args[0], bytes.NewReader(data)); err != nil {
					return fmt.Errorf("failed to write %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d steps to %s\n", len(ws.CustomSteps()), args[0])
				return nil
			})
		},
	}

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge custom steps from an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				added, err := ws.ImportCustomSteps(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d new steps\n", added)
				return nil
			})
		},
	}

	cmd.AddCommand(list, add, edit, del, export, imp)
	return cmd
}
