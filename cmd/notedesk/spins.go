package main

import (
	"fmt"
	"strings"

	"github.com/harunnryd/notedesk/internal/render"
	"github.com/harunnryd/notedesk/internal/workspace"

	"github.com/spf13/cobra"
)

func newSpinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spins",
		Short: "Edit and print the SPINS text",
		Long:  `Fill in the SPINS form and print the SPINS text with its character budget.`,
	}
	cmd.AddCommand(
		newSpinsShowCmd(),
		&cobra.Command{
			Use:   "set <field> [value]",
			Short: "Set a SPINS form field",
			Long: `Set a SPINS form field. Leave the value out to clear it.

Fields: ` + strings.Join(workspace.Fields(workspace.FormSpins), ", "),
			Args: cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return setField(cmd, workspace.FormSpins, args)
			},
		},
		newSelectionCmd("issues", "Toggle reported issues", workspace.SelectionIssues),
		newSelectionCmd("instructions", "Toggle technician instructions", workspace.SelectionInstructions),
		&cobra.Command{
			Use:   "populate",
			Short: "Copy customer details from the case form",
			Long: `Copy spoken-to, phone, serial numbers and models from the case form into the
SPINS form. Does nothing once the SPINS form was edited by hand.`,
			Args: cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, func(ws *workspace.Workspace) error {
					reportChange(cmd.OutOrStdout(), ws.AutoPopulateSpins(), "SPINS populated", "SPINS left as is.")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty the SPINS form, issues and instructions",
			Long:  `Empty the SPINS form and its selections. The case form is kept.`,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withWorkspace(cmd, func(ws *workspace.Workspace) error {
					reportChange(cmd.OutOrStdout(), ws.ClearSpins(), "SPINS cleared", "SPINS is already empty.")
					return nil
				})
			},
		},
	)
	return cmd
}

func newSpinsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the SPINS text and its budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			populate, _ := cmd.Flags().GetBool("populate")
			return withWorkspace(cmd, func(ws *workspace.Workspace) error {
				if populate {
					ws.AutoPopulateSpins()
				}
				out := cmd.OutOrStdout()
				text := ws.Spins()
				if text == "" {
					fmt.Fprintln(out, "SPINS is empty.")
				} else {
					fmt.Fprintln(out, text)
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, render.BudgetBar(ws.SpinsBudget(), render.DefaultBarWidth, render.PaletteFor(ws.Theme())))
				return nil
			})
		},
	}
	cmd.Flags().Bool("populate", true, "copy customer details from the case form first")
	return cmd
}
