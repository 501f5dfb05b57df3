package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/patchplan/pkg/alloc"
	"github.com/newtron-network/patchplan/pkg/audit"
	"github.com/newtron-network/patchplan/pkg/auth"
	"github.com/newtron-network/patchplan/pkg/cli"
	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/planspec"
	"github.com/newtron-network/patchplan/pkg/revstore"
)

var (
	planSave bool
	planUser string
)

var planCmd = &cobra.Command{
	Use:   "plan <project-file>",
	Short: "Compute a patch plan from a project file",
	Long: `Compute a patch plan from a project YAML file (racks + demands) and print
a summary of the panels, modules, cables, and sessions allocated.

By default the result is not persisted. Pass --save to store it in the
revision store, keyed by the project's content hash.

Examples:
  patchplan plan rack-fabric-03.yaml
  patchplan plan rack-fabric-03.yaml --save`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planSave, "save", false, "Persist the computed plan to the revision store")
	planCmd.Flags().StringVar(&planUser, "user", "", "Attribute this invocation to a specific user (defaults to the OS user)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	start := time.Now()
	projectPath := args[0]

	if planUser != "" {
		app.permChecker.SetUser(planUser)
	}
	user := app.permChecker.CurrentUser()

	if !cmd.Flags().Changed("save") && app.settings != nil && app.settings.SaveByDefault {
		planSave = true
	}

	result, hash, err := computePlan(projectPath)
	if err != nil {
		audit.Log(audit.NewEvent(user, projectPath, string(audit.EventTypePlan)).
			WithError(err).WithDuration(time.Since(start)))
		return err
	}

	event := audit.NewEvent(user, projectPath, string(audit.EventTypePlan)).
		WithSessionCount(len(result.Sessions)).
		WithDryRun(!planSave)

	if planSave {
		if err := app.permChecker.Check(auth.PermRevisionSave, auth.NewContext().WithRevision(hash)); err != nil {
			audit.Log(event.WithError(err).WithDuration(time.Since(start)))
			return err
		}
		if err := saveRevision(hash, &result, user); err != nil {
			audit.Log(event.WithError(err).WithDuration(time.Since(start)))
			return err
		}
	}

	audit.Log(event.WithRevision(hash).WithSuccess().WithDuration(time.Since(start)))

	printPlanSummary(result, hash)
	if !planSave {
		printDryRunNotice()
	}
	return nil
}

// computePlan loads, validates, and allocates the project at path,
// returning the result and its revision-store hash.
func computePlan(path string) (model.AllocationResult, string, error) {
	pf, err := planspec.Load(path)
	if err != nil {
		return model.AllocationResult{}, "", err
	}

	project, err := planspec.Validate(pf)
	if err != nil {
		return model.AllocationResult{}, "", err
	}

	hash, err := revstore.ProjectHash(pf)
	if err != nil {
		return model.AllocationResult{}, "", fmt.Errorf("hashing project: %w", err)
	}

	result := alloc.AllocateProject(*project)
	return result, hash, nil
}

// saveRevision acquires the advisory lock for hash, saves the revision,
// and releases the lock even on a save error.
func saveRevision(hash string, result *model.AllocationResult, user string) error {
	store := revstore.NewStore(app.revStoreAddr)
	defer store.Close()

	const lockTTLSeconds = 30
	if err := store.AcquireLock(hash, user, lockTTLSeconds); err != nil {
		return fmt.Errorf("acquiring revision lock: %w", err)
	}
	defer store.ReleaseLock(hash, user)

	return store.Save(&revstore.Revision{
		ProjectHash: hash,
		Result:      *result,
		SavedAt:     time.Now().UTC(),
		SavedBy:     user,
	})
}

func printPlanSummary(result model.AllocationResult, hash string) {
	fmt.Printf("%s %s\n\n", bold("Revision:"), hash)

	t := cli.NewTable("METRIC", "COUNT")
	t.Row("Panels", fmt.Sprintf("%d", len(result.Panels)))
	t.Row("Modules", fmt.Sprintf("%d", len(result.Modules)))
	t.Row("Cables", fmt.Sprintf("%d", len(result.Cables)))
	t.Row("Sessions", fmt.Sprintf("%d", len(result.Sessions)))
	t.Flush()

	byMedia := map[model.Media]int{}
	for _, s := range result.Sessions {
		byMedia[s.Media]++
	}
	if len(byMedia) > 0 {
		fmt.Println()
		mt := cli.NewTable("MEDIA", "SESSIONS")
		for _, media := range []model.Media{model.MediaMMFLCDuplex, model.MediaSMFLCDuplex, model.MediaMPO12, model.MediaUTPRJ45} {
			if n, ok := byMedia[media]; ok {
				mt.Row(string(media), fmt.Sprintf("%d", n))
			}
		}
		mt.Flush()
	}
}
