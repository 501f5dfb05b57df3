package planspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a project YAML file from path. It does not
// validate — call Validate on the result before handing it to
// pkg/alloc.AllocateProject.
func Load(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("planspec: read project file: %w", err)
	}
	return Parse(data)
}

// Parse parses project YAML from an in-memory buffer.
func Parse(data []byte) (*ProjectFile, error) {
	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("planspec: parse project YAML: %w", err)
	}
	return &pf, nil
}
