package alloc

import "github.com/newtron-network/patchplan/pkg/model"

// slotReserver is a per-rack, call-local ledger of the next free (U, slot)
// position and the panels created so far. It fills top-down: slot 1→4
// within a U, then U+1 (spec §4.3, invariant 5).
//
// No category is stored in a slot. Categories are enforced purely by the
// order in which allocators call reserve() — this is what realizes the
// "mixed-in-U" policy (spec §4.3): when one category finishes mid-U, the
// next category seamlessly fills the remaining slots of that U.
type slotReserver struct {
	panels     []model.Panel
	currentU   int
	nextSlot   int // 1-based slot to hand out next within currentU
}

// newSlotReserver returns a reserver with no panels created yet.
func newSlotReserver() *slotReserver {
	return &slotReserver{currentU: 0, nextSlot: model.SlotsPerU + 1}
}

// reserve returns the next (u, slot) position, creating a new panel if the
// current U is full or none exists yet.
func (r *slotReserver) reserve(rackID string) (u, slot int) {
	if r.nextSlot > model.SlotsPerU {
		r.currentU++
		r.nextSlot = 1
		r.panels = append(r.panels, model.Panel{
			RackID:    rackID,
			U:         r.currentU,
			SlotsPerU: model.SlotsPerU,
		})
	}
	u = r.currentU
	slot = r.nextSlot
	r.nextSlot++
	return u, slot
}

// newPanels returns the panels created by this reserver so far, in
// creation order (which is also U order, since panels are only ever
// appended).
func (r *slotReserver) newPanels() []model.Panel {
	return r.panels
}

// rackSlotReservers tracks one slotReserver per rack, created lazily on
// first use. Exclusively owned by a single AllocateProject call (spec §5,
// §9): never shared across calls, never a process-wide singleton.
type rackSlotReservers struct {
	byRack map[string]*slotReserver
}

func newRackSlotReservers() *rackSlotReservers {
	return &rackSlotReservers{byRack: make(map[string]*slotReserver)}
}

func (rs *rackSlotReservers) forRack(rackID string) *slotReserver {
	sr, ok := rs.byRack[rackID]
	if !ok {
		sr = newSlotReserver()
		rs.byRack[rackID] = sr
	}
	return sr
}

// reserve is a convenience wrapper reserving a slot on the named rack.
func (rs *rackSlotReservers) reserve(rackID string) (u, slot int) {
	return rs.forRack(rackID).reserve(rackID)
}

// panelsByRack returns the panels created on one rack, in U order (nil if
// the rack never reserved a slot). Gathering panels across racks and
// sorting them by rack natural order is done by the caller, since this
// type has no natural-order dependency of its own.
func (rs *rackSlotReservers) panelsByRack(rackID string) []model.Panel {
	sr, ok := rs.byRack[rackID]
	if !ok {
		return nil
	}
	return sr.newPanels()
}
