package alloc

import (
	"sort"

	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/natural"
)

// AllocateProject is the allocation engine's single entry point (spec §6).
// It is a pure function: given the same Project, it always returns a
// byte-for-byte identical AllocationResult, including every derived ID
// (spec §8 property 1). It has no runtime failure modes (spec §4.8) —
// the caller is expected to have validated the project already (see
// pkg/planspec).
//
// Processing order is total and deterministic (spec §5): MPO E2E, then LC
// MMF, then LC SMF, then UTP; within each category, rack pairs in natural
// order of (rack_lo, rack_hi); within a pair, module/slot indices and
// ports ascending.
func AllocateProject(project Project) model.AllocationResult {
	merged := normalizeDemands(project.Demands)
	rs := newRackSlotReservers()

	var modules []model.Module
	var cables []model.Cable
	var sessions []model.Session

	mm, mc, ms := allocateMPOE2E(rs, merged)
	modules, cables, sessions = append(modules, mm...), append(cables, mc...), append(sessions, ms...)

	lm, lc, ls := allocateLCBreakout(rs, merged, model.FiberMMF)
	modules, cables, sessions = append(modules, lm...), append(cables, lc...), append(sessions, ls...)

	sm, sc, ss := allocateLCBreakout(rs, merged, model.FiberSMF)
	modules, cables, sessions = append(modules, sm...), append(cables, sc...), append(sessions, ss...)

	um, uc, us := allocateUTP(rs, merged)
	modules, cables, sessions = append(modules, um...), append(cables, uc...), append(sessions, us...)

	panels := collectPanels(rs, project.Racks)

	sortPanels(panels)
	sortModules(modules)
	sortCables(cables)
	sortSessions(sessions)

	return model.AllocationResult{
		Panels:   panels,
		Modules:  modules,
		Cables:   cables,
		Sessions: sessions,
	}
}

// collectPanels gathers every panel created across every rack named in
// the project, in project-declaration order (sorting happens afterward).
func collectPanels(rs *rackSlotReservers, racks []model.Rack) []model.Panel {
	var panels []model.Panel
	for _, r := range racks {
		panels = append(panels, rs.panelsByRack(r.ID)...)
	}
	return panels
}

func sortPanels(panels []model.Panel) {
	sort.Slice(panels, func(i, j int) bool { return panelLess(panels[i], panels[j]) })
}

func panelLess(a, b model.Panel) bool {
	if a.RackID != b.RackID {
		return natural.Less(a.RackID, b.RackID)
	}
	return a.U < b.U
}

func sortModules(modules []model.Module) {
	sort.Slice(modules, func(i, j int) bool { return moduleLess(modules[i], modules[j]) })
}

func moduleLess(a, b model.Module) bool {
	if a.RackID != b.RackID {
		return natural.Less(a.RackID, b.RackID)
	}
	if a.PanelU != b.PanelU {
		return a.PanelU < b.PanelU
	}
	return a.Slot < b.Slot
}

func sortCables(cables []model.Cable) {
	sort.Slice(cables, func(i, j int) bool { return cables[i].CableID < cables[j].CableID })
}

func sortSessions(sessions []model.Session) {
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].SessionID < sessions[j].SessionID })
}
