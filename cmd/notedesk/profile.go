package main

import (
	"fmt"
	"time"

	"github.com/harunnryd/notedesk/internal/store"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and repair the active profile",
}

var profilePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the profile directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := currentConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		dir, err := store.GetProfilePath(c.Store.Profile, c.Store.Path)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var profileUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Remove a stale profile lock",
	Long: `Remove the profile lock left behind by a crashed process. Locks younger than
--max-age are kept; without --force a stale lock is only reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		maxAge, _ := cmd.Flags().GetDuration("max-age")

		c, err := currentConfig(cmd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		dir, err := store.GetProfilePath(c.Store.Profile, c.Store.Path)
		if err != nil {
			return err
		}

		removed, err := store.CleanupStaleLocks(dir, maxAge, force)
		if err != nil {
			return fmt.Errorf("failed to clean up lock: %w", err)
		}
		if removed {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed stale lock of profile %s\n", c.Store.Profile)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No lock removed. Use --force to remove a stale lock.")
		return nil
	},
}

func init() {
	profileUnlockCmd.Flags().Bool("force", false, "remove the lock when it is stale")
	profileUnlockCmd.Flags().Duration("max-age", time.Hour, "age after which a lock counts as stale")
	profileCmd.AddCommand(profilePathCmd, profileUnlockCmd)
}
