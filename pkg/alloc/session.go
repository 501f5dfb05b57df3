package alloc

import (
	"fmt"
	"strconv"

	"github.com/newtron-network/patchplan/pkg/canonid"
	"github.com/newtron-network/patchplan/pkg/model"
)

// label formats an endpoint per spec §4.7: "{rack_id}U{u}S{slot}P{port}".
func label(e model.Endpoint) string {
	return fmt.Sprintf("%sU%dS%dP%d", e.Rack, e.U, e.Slot, e.Port)
}

// newSession builds a Session from two already-canonically-ordered
// endpoints (a's rack must be the natural-order-lower of the pair — every
// caller in this package already works with racks in (lo, hi) order, so
// a is always src and b is always dst; spec §4.7).
//
// fiberA/fiberB are 0 when not applicable (MPO E2E and UTP sessions);
// non-zero fiber indices are appended to the canonical ID string for LC
// sessions (spec §4.2).
func newSession(media model.Media, adapterType model.ModuleType, cableID string, a, b model.Endpoint, fiberA, fiberB int) model.Session {
	fields := []string{
		string(media),
		a.Rack, strconv.Itoa(a.U), strconv.Itoa(a.Slot), strconv.Itoa(a.Port),
		b.Rack, strconv.Itoa(b.U), strconv.Itoa(b.Slot), strconv.Itoa(b.Port),
		cableID,
	}
	if fiberA != 0 || fiberB != 0 {
		fields = append(fields, strconv.Itoa(fiberA), strconv.Itoa(fiberB))
	}

	s := model.Session{
		SessionID:   canonid.From(fields...),
		Media:       media,
		CableID:     cableID,
		AdapterType: adapterType,
		LabelA:      label(a),
		LabelB:      label(b),
		A:           a,
		B:           b,
	}
	if fiberA != 0 {
		s.FiberA = fiberA
	}
	if fiberB != 0 {
		s.FiberB = fiberB
	}
	return s
}
