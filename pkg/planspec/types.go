// Package planspec loads and validates the declarative project description
// consumed by pkg/alloc: a set of racks and an aggregated set of inter-rack
// connectivity demands (spec §6). It is an external collaborator of the
// allocation engine — input parsing and schema validation are explicitly
// out of the core's scope (spec §1) — but it is the thing that produces
// the validated pkg/alloc.Project the core accepts.
package planspec

// RackSpec declares one rack participating in the project.
type RackSpec struct {
	ID string `yaml:"id"`
}

// DemandSpec declares one raw connectivity demand between two racks before
// normalization. EndpointType is the wire-format name for a model.Media
// value.
type DemandSpec struct {
	ID           string `yaml:"id"`
	Src          string `yaml:"src"`
	Dst          string `yaml:"dst"`
	EndpointType string `yaml:"endpoint_type"`
	Count        int    `yaml:"count"`
}

// ProjectFile is the on-disk (YAML) representation of a project.
type ProjectFile struct {
	Racks   []RackSpec   `yaml:"racks"`
	Demands []DemandSpec `yaml:"demands"`
}

// knownEndpointTypes is the closed set of media tokens the validator
// accepts (spec §7).
var knownEndpointTypes = map[string]bool{
	"mmf_lc_duplex": true,
	"smf_lc_duplex": true,
	"mpo12":         true,
	"utp_rj45":      true,
}
