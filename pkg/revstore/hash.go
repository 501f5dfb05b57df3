package revstore

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/newtron-network/patchplan/pkg/canonid"
	"github.com/newtron-network/patchplan/pkg/planspec"
)

// ProjectHash derives the revision-store key for pf: the canonical ID
// hasher (pkg/canonid) applied to a re-marshaled, field-sorted copy of pf's
// YAML. Sorting racks and demands first means two YAML files that declare
// the same project in a different order hash identically, matching the
// allocator's own insensitivity to input ordering (spec §8).
func ProjectHash(pf *planspec.ProjectFile) (string, error) {
	canonical := canonicalize(pf)

	data, err := yaml.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("revstore: marshal canonical project: %w", err)
	}
	return canonid.From(string(data)), nil
}

// canonicalize returns a copy of pf with racks sorted by id and demands
// sorted by (src, dst, endpoint_type, id).
func canonicalize(pf *planspec.ProjectFile) *planspec.ProjectFile {
	racks := make([]planspec.RackSpec, len(pf.Racks))
	copy(racks, pf.Racks)
	sort.Slice(racks, func(i, j int) bool { return racks[i].ID < racks[j].ID })

	demands := make([]planspec.DemandSpec, len(pf.Demands))
	copy(demands, pf.Demands)
	sort.Slice(demands, func(i, j int) bool {
		a, b := demands[i], demands[j]
		if a.Src != b.Src {
			return a.Src < b.Src
		}
		if a.Dst != b.Dst {
			return a.Dst < b.Dst
		}
		if a.EndpointType != b.EndpointType {
			return a.EndpointType < b.EndpointType
		}
		return a.ID < b.ID
	})

	return &planspec.ProjectFile{Racks: racks, Demands: demands}
}
