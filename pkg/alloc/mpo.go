package alloc

import (
	"strconv"

	"github.com/newtron-network/patchplan/pkg/canonid"
	"github.com/newtron-network/patchplan/pkg/model"
)

// allocateMPOE2E is the first category to allocate (highest slot-category
// priority, spec §5 item 1): one dedicated mpo12_pass_through_12port
// module pair per ceil(N/12) slot-pair, one MPO-12 trunk cable (polarity
// B) per used pass-through port (spec §4.4).
func allocateMPOE2E(rs *rackSlotReservers, merged map[pairKey]int) (modules []model.Module, cables []model.Cable, sessions []model.Session) {
	for _, pk := range sortedPairs(merged, model.MediaMPO12) {
		n := merged[pk]
		a, b := pk.lo, pk.hi
		slotPairs := ceilDiv(n, model.MPO12PortsPerPassThrough)

		for i := 1; i <= slotPairs; i++ {
			uA, sA := rs.reserve(a)
			uB, sB := rs.reserve(b)

			modules = append(modules, model.Module{
				RackID: a, PanelU: uA, Slot: sA,
				ModuleType: model.ModuleMPO12PassThrough12Port,
				Dedicated:  true, PeerRackID: b,
				PolarityVariant: model.PolarityVariantA,
			})
			modules = append(modules, model.Module{
				RackID: b, PanelU: uB, Slot: sB,
				ModuleType: model.ModuleMPO12PassThrough12Port,
				Dedicated:  true, PeerRackID: a,
				PolarityVariant: model.PolarityVariantA,
			})

			usedPorts := n - model.MPO12PortsPerPassThrough*(i-1)
			if usedPorts > model.MPO12PortsPerPassThrough {
				usedPorts = model.MPO12PortsPerPassThrough
			}

			for k := 1; k <= usedPorts; k++ {
				cableID := canonid.From(string(model.MediaMPO12), string(model.PolarityB), a, b, strconv.Itoa(i), strconv.Itoa(k))
				cable := model.Cable{
					CableID:      cableID,
					CableType:    model.CableMPO12Trunk,
					PolarityType: model.PolarityB,
					SrcRack:      a,
					DstRack:      b,
				}
				cables = append(cables, cable)

				aEnd := model.Endpoint{Rack: a, Face: model.FaceFront, U: uA, Slot: sA, Port: k}
				bEnd := model.Endpoint{Rack: b, Face: model.FaceFront, U: uB, Slot: sB, Port: k}
				sessions = append(sessions, newSession(model.MediaMPO12, model.ModuleMPO12PassThrough12Port, cableID, aEnd, bEnd, 0, 0))
			}
		}
	}
	return modules, cables, sessions
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
