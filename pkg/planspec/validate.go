package planspec

import (
	"fmt"

	"github.com/newtron-network/patchplan/pkg/alloc"
	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/util"
)

// Validate checks pf against the schema rules in spec §7 and returns an
// *alloc.Project ready for pkg/alloc.AllocateProject, or a
// *util.ValidationError listing every violation found (not just the
// first). The allocator's demand normalizer still merges these per
// unordered rack pair and media (spec §2 item 3) before allocating — that
// is the allocator's own first step, not the validator's.
func Validate(pf *ProjectFile) (*alloc.Project, error) {
	vb := &util.ValidationBuilder{}

	rackIDs := make(map[string]bool, len(pf.Racks))
	for i, r := range pf.Racks {
		if r.ID == "" {
			vb.AddErrorf("racks[%d]: missing required field 'id'", i)
			continue
		}
		if rackIDs[r.ID] {
			vb.AddErrorf("racks[%d]: duplicate rack id %q", i, r.ID)
			continue
		}
		rackIDs[r.ID] = true
	}

	var demands []model.Demand
	for i, d := range pf.Demands {
		label := fmt.Sprintf("demands[%d]", i)
		if d.ID != "" {
			label = fmt.Sprintf("demands[%d] (id=%s)", i, d.ID)
		}

		valid := true
		if d.Src == "" || d.Dst == "" {
			vb.AddErrorf("%s: missing required field 'src' or 'dst'", label)
			valid = false
		}
		if valid && !rackIDs[d.Src] {
			vb.AddErrorf("%s: unresolved rack reference src=%q", label, d.Src)
			valid = false
		}
		if valid && !rackIDs[d.Dst] {
			vb.AddErrorf("%s: unresolved rack reference dst=%q", label, d.Dst)
			valid = false
		}
		if valid && d.Src == d.Dst {
			vb.AddErrorf("%s: src and dst must differ, got %q", label, d.Src)
			valid = false
		}
		if !knownEndpointTypes[d.EndpointType] {
			vb.AddErrorf("%s: unknown endpoint_type %q", label, d.EndpointType)
			valid = false
		}
		if d.Count <= 0 {
			vb.AddErrorf("%s: count must be positive, got %d", label, d.Count)
			valid = false
		}

		if !valid {
			continue
		}
		demands = append(demands, model.Demand{
			Src:   d.Src,
			Dst:   d.Dst,
			Media: model.Media(d.EndpointType),
			Count: d.Count,
		})
	}

	if vb.HasErrors() {
		return nil, vb.Build()
	}

	racks := make([]model.Rack, 0, len(pf.Racks))
	for _, r := range pf.Racks {
		racks = append(racks, model.Rack{ID: r.ID})
	}

	return &alloc.Project{Racks: racks, Demands: demands}, nil
}
