// Package settings manages persistent user settings for the patchplan CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultProjectDir is the default project directory used when no override is configured.
const DefaultProjectDir = "/etc/patchplan"

// DefaultRevisionStoreAddr is the default Redis address for the revision store.
const DefaultRevisionStoreAddr = "localhost:6379"

// Settings holds persistent user preferences.
type Settings struct {
	// DefaultProject is a stored default project name (settings key
	// "project"). No command reads it; -p sets the project directory, which
	// falls back to ProjectDir.
	DefaultProject string `json:"default_project,omitempty"`

	// DefaultRevision is a stored default revision id (settings key
	// "revision"). No command reads it.
	DefaultRevision string `json:"default_revision,omitempty"`

	// LastRevision is a stored revision id shown by `settings show`. No
	// command writes it.
	LastRevision string `json:"last_revision,omitempty"`

	// ProjectDir overrides the default project topology directory.
	ProjectDir string `json:"project_dir,omitempty"`

	// RevisionStoreAddr overrides the default revision store (Redis) address.
	RevisionStoreAddr string `json:"revision_store_addr,omitempty"`

	// OutputDir is a stored render output directory. `patchplan render`
	// does not read it; it writes to --out or to stdout.
	OutputDir string `json:"output_dir,omitempty"`

	// SaveByDefault makes `patchplan plan` persist to the revision store
	// without requiring --save; an explicit --save=false still overrides it.
	SaveByDefault bool `json:"save_by_default,omitempty"`

	// AuditLogPath overrides the default audit log path.
	AuditLogPath string `json:"audit_log_path,omitempty"`

	// AuditMaxSizeMB is the max audit log size in MB before rotation (default: 10).
	AuditMaxSizeMB int `json:"audit_max_size_mb,omitempty"`

	// AuditMaxBackups is the max number of rotated audit log files (default: 10).
	AuditMaxBackups int `json:"audit_max_backups,omitempty"`
}

const (
	// DefaultAuditMaxSizeMB is the default maximum audit log size in megabytes.
	DefaultAuditMaxSizeMB = 10

	// DefaultAuditMaxBackups is the default maximum number of rotated audit log files.
	DefaultAuditMaxBackups = 10
)

// DefaultSettingsPath returns the default path for the settings file.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "patchplan_settings.json"
	}
	return filepath.Join(home, ".patchplan", "settings.json")
}

// Load reads settings from the default location.
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location.
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path.
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetProject sets the default project.
func (s *Settings) SetProject(project string) {
	s.DefaultProject = project
}

// SetRevision sets the default revision.
func (s *Settings) SetRevision(revision string) {
	s.DefaultRevision = revision
}

// SetProjectDir sets the project topology directory.
func (s *Settings) SetProjectDir(dir string) {
	s.ProjectDir = dir
}

// GetProjectDir returns the project directory (with fallback).
func (s *Settings) GetProjectDir() string {
	if s.ProjectDir != "" {
		return s.ProjectDir
	}
	return DefaultProjectDir
}

// GetRevisionStoreAddr returns the revision store address (with fallback).
func (s *Settings) GetRevisionStoreAddr() string {
	if s.RevisionStoreAddr != "" {
		return s.RevisionStoreAddr
	}
	return DefaultRevisionStoreAddr
}

// GetAuditLogPath returns the audit log path with a fallback default.
// The default depends on projectDir: if non-empty, uses projectDir/audit.log;
// otherwise uses /var/log/patchplan/audit.log.
func (s *Settings) GetAuditLogPath(projectDir string) string {
	if s.AuditLogPath != "" {
		return s.AuditLogPath
	}
	if projectDir != "" {
		return projectDir + "/audit.log"
	}
	return "/var/log/patchplan/audit.log"
}

// GetAuditMaxSizeMB returns the audit max size in MB with a default of 10.
func (s *Settings) GetAuditMaxSizeMB() int {
	if s.AuditMaxSizeMB > 0 {
		return s.AuditMaxSizeMB
	}
	return DefaultAuditMaxSizeMB
}

// GetAuditMaxBackups returns the audit max backups with a default of 10.
func (s *Settings) GetAuditMaxBackups() int {
	if s.AuditMaxBackups > 0 {
		return s.AuditMaxBackups
	}
	return DefaultAuditMaxBackups
}

// Clear resets all settings to defaults.
func (s *Settings) Clear() {
	*s = Settings{}
}
