// Patchplan - Deterministic Rack-to-Rack Patch Cabling Planner
//
// A CLI tool for generating physical-termination patch plans from a
// declarative project description of racks and inter-rack demands:
//   - Deterministic allocation of patch panels, modules, cables, and
//     sessions (same project always yields the same plan)
//   - CSV/JSON/SVG rendering of a computed or saved plan
//   - Redis-backed revision persistence, keyed by project content hash
//   - Audit logging of every plan/render/save invocation
//   - Permission-based access control for saving/deleting revisions
//
// Noun-group CLI Pattern:
//
//	patchplan <noun> <verb> [args] [flags]
//
// Examples:
//
//	patchplan plan rack-fabric-03.yaml                  # compute and print a summary
//	patchplan plan rack-fabric-03.yaml --save           # compute and persist a revision
//	patchplan render rack-fabric-03.yaml --format csv   # emit CSV to stdout
//	patchplan render --revision 8f3c2a1d --format svg --view topology
//	patchplan revision list                             # saved revisions
//	patchplan settings show                             # no project needed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/newtron-network/patchplan/pkg/audit"
	"github.com/newtron-network/patchplan/pkg/auth"
	"github.com/newtron-network/patchplan/pkg/cli"
	"github.com/newtron-network/patchplan/pkg/settings"
	"github.com/newtron-network/patchplan/pkg/util"
	"github.com/newtron-network/patchplan/pkg/version"
)

// App holds CLI state shared across all commands.
type App struct {
	// Option flags
	projectDir   string
	revStoreAddr string
	verbose      bool
	jsonOutput   bool

	// Initialized state (set in PersistentPreRunE)
	settings    *settings.Settings
	permChecker *auth.Checker
}

var app = &App{}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "patchplan",
	Short:             "Deterministic rack-to-rack patch cabling planner",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Patchplan computes deterministic physical-termination patch plans for
rack-to-rack cabling from a declarative project description.

  patchplan <noun> <verb> [args] [flags]

  patchplan plan rack-fabric-03.yaml
  patchplan plan rack-fabric-03.yaml --save
  patchplan render rack-fabric-03.yaml --format csv
  patchplan revision list
  patchplan settings show                          # no project needed`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		app.settings, err = settings.Load()
		if err != nil {
			util.Logger.Warnf("Could not load settings: %v", err)
			app.settings = &settings.Settings{}
		}

		if app.projectDir == "" {
			app.projectDir = app.settings.GetProjectDir()
		}
		if app.revStoreAddr == "" {
			app.revStoreAddr = app.settings.GetRevisionStoreAddr()
		}

		if app.verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		authzPath := app.projectDir + "/authz.yaml"
		authzConfig, err := auth.LoadAuthzConfig(authzPath)
		if err != nil {
			authzConfig = &auth.AuthzConfig{}
		}
		app.permChecker = auth.NewChecker(authzConfig)

		auditPath := app.settings.GetAuditLogPath(app.projectDir)
		auditLogger, err := audit.NewFileLogger(auditPath, audit.RotationConfig{
			MaxSize:    int64(app.settings.GetAuditMaxSizeMB()) * 1024 * 1024,
			MaxBackups: app.settings.GetAuditMaxBackups(),
		})
		if err != nil {
			util.Logger.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&app.projectDir, "project-dir", "p", "", "Project topology directory")
	rootCmd.PersistentFlags().StringVar(&app.revStoreAddr, "revision-store", "", "Revision store (Redis) address")
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "JSON output")

	rootCmd.AddGroup(
		&cobra.Group{ID: "plan", Title: "Planning Commands:"},
		&cobra.Group{ID: "meta", Title: "Configuration & Meta:"},
	)

	for _, cmd := range []*cobra.Command{planCmd, renderCmd, revisionCmd} {
		cmd.GroupID = "plan"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{settingsCmd, auditCmd, authCmd, versionCmd} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("patchplan dev build (set version info with -ldflags at build time)")
		} else {
			fmt.Printf("patchplan %s (%s)\n", version.Version, version.GitCommit)
		}
	},
}

// isSettingsOrHelp checks whether cmd (or any ancestor) is a settings,
// help, or version command — none of those need a project directory,
// revision store, or audit log configured.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "version", "settings":
			return true
		}
	}
	return false
}

// Color helpers — delegate to pkg/cli.
func green(s string) string  { return cli.Green(s) }
func yellow(s string) string { return cli.Yellow(s) }
func red(s string) string    { return cli.Red(s) }
func bold(s string) string   { return cli.Bold(s) }

// printDryRunNotice prints a reminder that a plan was not persisted.
func printDryRunNotice() {
	fmt.Println("\n" + yellow("Not saved. Use --save to persist this revision."))
}
