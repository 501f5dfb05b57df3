package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/newtron-network/patchplan/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.patchplan/settings.json.

Settings provide defaults for context flags:
  - project_dir:      Used when -p is not specified
  - revision_store:    Used when --revision-store is not specified
  - save_by_default:   Makes 'plan' persist without --save

Examples:
  patchplan settings show
  patchplan settings set project_dir /etc/patchplan
  patchplan settings set revision_store redis.internal:6379
  patchplan settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SETTING\tVALUE")
		fmt.Fprintln(w, "-------\t-----")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(w, "%s\t%s\n", name, value)
		}

		printSetting("default_project", s.DefaultProject)
		printSetting("default_revision", s.DefaultRevision)
		printSetting("last_revision", s.LastRevision)
		printSetting("project_dir", s.ProjectDir)
		printSetting("revision_store", s.RevisionStoreAddr)
		printSetting("output_dir", s.OutputDir)
		printSetting("save_by_default", strconv.FormatBool(s.SaveByDefault))
		printSetting("audit_log_path", s.AuditLogPath)

		w.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  project         - Default project name (default_project)
  revision        - Default revision id (default_revision)
  project_dir     - Project topology directory (-p flag default)
  revision_store  - Revision store (Redis) address
  output_dir      - Render output directory (stored only; render uses --out)
  save_by_default - "true"/"false": persist plans without --save
  audit_log_path  - Audit log file path

Examples:
  patchplan settings set project_dir /etc/patchplan
  patchplan settings set revision_store redis.internal:6379
  patchplan settings set save_by_default true`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "project":
			s.DefaultProject = value
		case "revision":
			s.DefaultRevision = value
		case "project_dir":
			s.ProjectDir = value
		case "revision_store":
			s.RevisionStoreAddr = value
		case "output_dir":
			s.OutputDir = value
		case "save_by_default":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("save_by_default must be true or false, got %q", value)
			}
			s.SaveByDefault = b
		case "audit_log_path":
			s.AuditLogPath = value
		default:
			return fmt.Errorf("unknown setting: %s (valid: project, revision, project_dir, revision_store, output_dir, save_by_default, audit_log_path)", setting)
		}

		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Printf("%s set to: %s\n", setting, value)
		return nil
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &settings.Settings{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
		fmt.Println("All settings cleared.")
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show settings file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settings.DefaultSettingsPath())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsClearCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
