package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/patchplan/pkg/audit"
	"github.com/newtron-network/patchplan/pkg/auth"
	"github.com/newtron-network/patchplan/pkg/cli"
)

var revisionCmd = &cobra.Command{
	Use:   "revision",
	Short: "Manage saved plan revisions",
	Long: `Manage plan revisions saved to the revision store.

Examples:
  patchplan revision list
  patchplan revision show 8f3c2a1d
  patchplan revision delete 8f3c2a1d`,
}

var revisionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved revisions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newRevStore()
		defer store.Close()

		hashes, err := store.List()
		if err != nil {
			return fmt.Errorf("listing revisions: %w", err)
		}

		if app.jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(hashes)
		}

		if len(hashes) == 0 {
			fmt.Println("No saved revisions")
			return nil
		}

		t := cli.NewTable("PROJECT_HASH")
		for _, h := range hashes {
			t.Row(h)
		}
		t.Flush()
		return nil
	},
}

var revisionShowCmd = &cobra.Command{
	Use:   "show <hash>",
	Short: "Show a saved revision's summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newRevStore()
		defer store.Close()

		rev, err := store.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading revision %s: %w", args[0], err)
		}

		if app.jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(rev)
		}

		fmt.Printf("%s %s\n", bold("Project hash:"), rev.ProjectHash)
		fmt.Printf("%s %s\n", bold("Saved by:"), rev.SavedBy)
		fmt.Printf("%s %s\n\n", bold("Saved at:"), rev.SavedAt.Format(time.RFC3339))
		printPlanSummary(rev.Result, rev.ProjectHash)
		return nil
	},
}

var revisionDeleteCmd = &cobra.Command{
	Use:   "delete <hash>",
	Short: "Delete a saved revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		hash := args[0]
		user := app.permChecker.CurrentUser()

		if err := app.permChecker.Check(auth.PermRevisionDelete, auth.NewContext().WithRevision(hash)); err != nil {
			audit.Log(audit.NewEvent(user, hash, string(audit.EventTypeRevisionDelete)).
				WithError(err).WithDuration(time.Since(start)))
			return err
		}

		store := newRevStore()
		defer store.Close()

		const lockTTLSeconds = 30
		if err := store.AcquireLock(hash, user, lockTTLSeconds); err != nil {
			return fmt.Errorf("acquiring revision lock: %w", err)
		}
		defer store.ReleaseLock(hash, user)

		event := audit.NewEvent(user, hash, string(audit.EventTypeRevisionDelete)).
			WithRevision(hash).WithDuration(time.Since(start))
		if err := store.Delete(hash); err != nil {
			audit.Log(event.WithError(err))
			return fmt.Errorf("deleting revision %s: %w", hash, err)
		}
		audit.Log(event.WithSuccess())

		fmt.Printf("Revision %s deleted.\n", hash)
		return nil
	},
}

func init() {
	revisionCmd.AddCommand(revisionListCmd)
	revisionCmd.AddCommand(revisionShowCmd)
	revisionCmd.AddCommand(revisionDeleteCmd)
}
