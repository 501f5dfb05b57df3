package alloc

import (
	"strconv"

	"github.com/newtron-network/patchplan/pkg/canonid"
	"github.com/newtron-network/patchplan/pkg/model"
)

// lcMediaForFiber maps a fiber kind to its demand medium.
func lcMediaForFiber(fiber model.FiberKind) model.Media {
	if fiber == model.FiberSMF {
		return model.MediaSMFLCDuplex
	}
	return model.MediaMMFLCDuplex
}

// allocateLCBreakout runs once per fiber kind (spec §4.5), MMF strictly
// before SMF at the call site in AllocateProject — never interleaved except
// across a U boundary (spec §9 open-question resolution). Each module pair
// gets one MPO-12 trunk (polarity A) per back connector that serves at
// least one used LC port, created lazily on first use: a pair using more
// than six LC ports has two trunks, a pair using six or fewer has one.
func allocateLCBreakout(rs *rackSlotReservers, merged map[pairKey]int, fiber model.FiberKind) (modules []model.Module, cables []model.Cable, sessions []model.Session) {
	media := lcMediaForFiber(fiber)

	for _, pk := range sortedPairs(merged, media) {
		n := merged[pk]
		a, b := pk.lo, pk.hi
		modulePairs := ceilDiv(n, model.LCPortsPerBreakout)

		for i := 1; i <= modulePairs; i++ {
			uA, sA := rs.reserve(a)
			uB, sB := rs.reserve(b)

			modules = append(modules, model.Module{
				RackID: a, PanelU: uA, Slot: sA,
				ModuleType: model.ModuleLCBreakout2xMPO12To12xLCDuplex,
				Dedicated:  true, PeerRackID: b,
				PolarityVariant: model.PolarityVariantAF,
				FiberKind:       fiber,
			})
			modules = append(modules, model.Module{
				RackID: b, PanelU: uB, Slot: sB,
				ModuleType: model.ModuleLCBreakout2xMPO12To12xLCDuplex,
				Dedicated:  true, PeerRackID: a,
				PolarityVariant: model.PolarityVariantAF,
				FiberKind:       fiber,
			})

			usedLCPorts := n - model.LCPortsPerBreakout*(i-1)
			if usedLCPorts > model.LCPortsPerBreakout {
				usedLCPorts = model.LCPortsPerBreakout
			}

			// Trunks for this module pair are created lazily, one per
			// back-side MPO connector (j = 1, 2), on first LC port that
			// needs them.
			trunkIDs := make(map[int]string, model.MPOConnectorsPerBreakout)

			for p := 1; p <= usedLCPorts; p++ {
				j, q := model.MPOConnectorForLCPort(p)
				fiberA, fiberB := model.FiberStrandsForWithinConnectorIndex(q)

				cableID, ok := trunkIDs[j]
				if !ok {
					cableID = canonid.From(string(media), string(fiber), string(model.PolarityA), a, b, strconv.Itoa(i), strconv.Itoa(j))
					trunkIDs[j] = cableID
					cables = append(cables, model.Cable{
						CableID:      cableID,
						CableType:    model.CableMPO12Trunk,
						FiberKind:    fiber,
						PolarityType: model.PolarityA,
						SrcRack:      a,
						DstRack:      b,
					})
				}

				aEnd := model.Endpoint{Rack: a, Face: model.FaceFront, U: uA, Slot: sA, Port: p}
				bEnd := model.Endpoint{Rack: b, Face: model.FaceFront, U: uB, Slot: sB, Port: p}
				sessions = append(sessions, newSession(media, model.ModuleLCBreakout2xMPO12To12xLCDuplex, cableID, aEnd, bEnd, fiberA, fiberB))
			}
		}
	}
	return modules, cables, sessions
}
