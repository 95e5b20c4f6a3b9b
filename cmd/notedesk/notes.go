package main

import (
	"fmt"
	"strings"

	"github.com/harunnryd/notedesk/internal/errors"
	"github.com/harunnryd/notedesk/internal/notes"
	"github.com/harunnryd/notedesk/internal/selection"
	"github.com/harunnryd/notedesk/internal/taglist"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/spf13/cobra"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Edit and print the case notes",
		Long:  `Fill in the case form, manage its lists and print the case notes text.`,
	}
	cmd.AddCommand(
		newNotesShowCmd(),
		newNotesSetCmd(),
		newNotesListsCmd(),
		newNotesAddCmd(),
		newNotesRemoveCmd(),
		newNotesMoveCmd(),
		newNotesEditCmd(),
		newSelectionCmd("reason", "Toggle reasons of the call", workspace.SelectionReasons),
		newNotesResetCmd(),
	)
	return cmd
}

func newNotesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the case notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				text := ws.CaseNotes()
				if text == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "Case notes are empty.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	}
}

func newNotesSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> [value]",
		Short: "Set a case form field",
		Long: `Set a case form field. Leave the value out to clear it.

Fields: ` + strings.Join(workspace.Fields(workspace.FormCaseNotes), ", "),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setField(cmd, workspace.FormCaseNotes, args)
		},
	}
}

func setField(cmd *cobra.Command, form workspace.Form, args []string) error {
	value := ""
	if len(args) == 2 {
		value = args[1]
	}
	return withWorkspace(cmd, func(ws *workspace.Workspace) error {
		if err := ws.SetField(form, args[0], value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s updated\n", args[0])
		return nil
	})
}

func parseList(name string) (workspace.ListName, error) {
	for _, l := range workspace.Lists() {
		if strings.EqualFold(string(l), name) {
			return l, nil
		}
	}
	names := make([]string, 0, len(workspace.Lists()))
	for _, l := range workspace.Lists() {
		names = append(names, string(l))
	}
	return "", errors.InvalidInput(fmt.Sprintf("unknown list %q (lists: %s)", name, strings.Join(names, ", ")))
}

// listLabel is how an entry shows in listings. Flows and summaries are
// long, so only their name or opening words are shown.
func listLabel(name workspace.ListName, item string) string {
	switch name {
	case workspace.ListFlowParagraphs:
		return notes.FlowName(item)
	case workspace.ListAgentAssistSummaries:
		return notes.SummaryPreview(item)
	}
	return item
}

func newNotesListsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lists [list]",
		Short: "Show list entries with their positions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := workspace.Lists()
			if len(args) == 1 {
				name, err := parseList(args[0])
				if err != nil {
					return err
				}
				names = []workspace.ListName{name}
			}

			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				out := cmd.OutOrStdout()
				for _, name := range names {
					items, err := ws.List(name)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "%s (%d)\n", name, len(items))
					for i, item := range items {
						fmt.Fprintf(out, "  %d. %s\n", i+1, listLabel(name, item))
					}
				}
				return nil
			})
		},
	}
}

func newNotesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <list> <value>",
		Short: "Append a value to a case list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(args[0])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed, err := ws.EditList(name, func(l *taglist.Strings) bool { return l.Add(args[1]) })
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), changed, "added to "+string(name), "Nothing added (empty or already listed).")
				return nil
			})
		},
	}
}

func newNotesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list> <position>",
		Short: "Remove an entry from a case list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed, err := ws.EditList(name, func(l *taglist.Strings) bool { return l.RemoveAt(i) })
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), changed, "removed", "No entry at that position.")
				return nil
			})
		},
	}
}

type reorderable interface {
	MoveAdjacent(i int, dir taglist.Direction) bool
	MoveToPosition(from, to int) bool
}

// move is a parsed "<position> <up|down|position>" pair.
type move struct {
	from     int
	to       int
	dir      taglist.Direction
	adjacent bool
}

func parseMove(fromArg, where string) (move, error) {
	from, err := parseIndex(fromArg)
	if err != nil {
		return move{}, err
	}
	switch strings.ToLower(where) {
	case "up":
		return move{from: from, dir: taglist.Up, adjacent: true}, nil
	case "down":
		return move{from: from, dir: taglist.Down, adjacent: true}, nil
	}
	to, err := parseIndex(where)
	if err != nil {
		return move{}, err
	}
	return move{from: from, to: to}, nil
}

func (m move) apply(r reorderable) bool {
	if m.adjacent {
		return r.MoveAdjacent(m.from, m.dir)
	}
	return r.MoveToPosition(m.from, m.to)
}

func newNotesMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <list> <position> <up|down|position>",
		Short: "Reorder an entry of a case list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(args[0])
			if err != nil {
				return err
			}
			m, err := parseMove(args[1], args[2])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed, err := ws.EditList(name, func(l *taglist.Strings) bool { return m.apply(l) })
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), changed, "moved", "Nothing moved.")
				return nil
			})
		},
	}
}

func newNotesEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <list> <position> <value>",
		Short: "Replace an entry of a case list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := parseList(args[0])
			if err != nil {
				return err
			}
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed, err := ws.EditList(name, func(l *taglist.Strings) bool { return l.ReplaceAt(i, args[2]) })
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), changed, "updated", "Edit cancelled.")
				return nil
			})
		},
	}
}

// newSelectionCmd manages a selection set: list tokens, toggle one, set
// the free-text entry or clear it all.
func newSelectionCmd(use, short string, name workspace.SelectionName) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				set, err := ws.Selection(name)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, g := range set.Groups() {
					fmt.Fprintln(out, g.Name)
					for _, token := range g.Tokens {
						mark := " "
						if set.IsSelected(token) {
							mark = "x"
						}
						fmt.Fprintf(out, "  [%s] %s\n", mark, token)
					}
				}
				if set.Custom() != "" {
					fmt.Fprintf(out, "custom: %s\n", set.Custom())
				}
				fmt.Fprintf(out, "\n%s\n", set.DisplayText())
				return nil
			})
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle <token>",
		Short: "Select or unselect a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed, err := ws.EditSelection(name, func(s *selection.Set) bool { return s.Toggle(args[0]) })
				if err != nil {
					return err
				}
				if !changed {
					return errors.InvalidInput(fmt.Sprintf("unknown token %q", args[0]))
				}
				set, _ := ws.Selection(name)
				fmt.Fprintln(cmd.OutOrStdout(), set.DisplayText())
				return nil
			})
		},
	}

	custom := &cobra.Command{
		Use:   "custom [text]",
		Short: "Set the free-text entry (empty clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := ""
			if len(args) == 1 {
				text = args[0]
			}
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				if _, err := ws.EditSelection(name, func(s *selection.Set) bool { return s.SetCustom(text) }); err != nil {
					return err
				}
				set, _ := ws.Selection(name)
				fmt.Fprintln(cmd.OutOrStdout(), set.DisplayText())
				return nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Unselect everything, custom entry included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				changed, err := ws.EditSelection(name, (*selection.Set).Clear)
				if err != nil {
					return err
				}
				reportChange(cmd.OutOrStdout(), changed, use+" cleared", "Nothing selected.")
				return nil
			})
		},
	}

	cmd.AddCommand(toggle, custom, clearCmd)
	return cmd
}

func newNotesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Start a new case",
		Long: `Clear the case form, SPINS form, lists, steps, selections, session call backs
and the scheduler draft. Booked call backs, custom steps and rankings stay.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				ws.Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "✓ Form reset")
				return nil
			})
		},
	}
}
