// Package alloc implements the deterministic physical-termination
// allocation engine (spec §2-§5): the pure function that turns a validated
// project into a complete AllocationResult of panels, modules, cables, and
// sessions.
//
// The engine is single-threaded and synchronous (spec §5): each call to
// AllocateProject owns its own slot-reserver state and shares nothing with
// any other call, so concurrent invocations over independent projects are
// always safe.
package alloc

import "github.com/newtron-network/patchplan/pkg/model"

// Project is the validated input to AllocateProject: a set of racks and an
// already schema-checked (but not yet normalized) set of demands. Producing
// one is the job of pkg/planspec; normalizing demands per unordered rack
// pair and media (spec §2 item 3) is the allocator's own first step.
type Project struct {
	Racks   []model.Rack
	Demands []model.Demand
}
