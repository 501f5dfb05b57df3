package auth

import (
	"os"

	"gopkg.in/yaml.v3"
)

// AuthzConfig declares which users and groups hold which permissions, in
// the same declarative-YAML style planspec uses for topology (spec's
// ambient stack carries this pattern through every config surface).
type AuthzConfig struct {
	SuperUsers  []string                     `yaml:"super_users"`
	Permissions map[string][]string          `yaml:"permissions"`
	UserGroups  map[string][]string          `yaml:"user_groups"`
	Revisions   map[string]*RevisionAuthzSpec `yaml:"revisions,omitempty"`
}

// RevisionAuthzSpec grants extra permissions for one named revision. The
// checker consults it before the global permissions, but a user it does
// not grant still falls back to the global grants, so it cannot narrow
// access below what the global permissions allow.
type RevisionAuthzSpec struct {
	Permissions map[string][]string `yaml:"permissions"`
}

// LoadAuthzConfig reads and parses an AuthzConfig from a YAML file.
func LoadAuthzConfig(path string) (*AuthzConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &AuthzConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
