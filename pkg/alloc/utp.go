package alloc

import (
	"strconv"

	"github.com/newtron-network/patchplan/pkg/canonid"
	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/natural"
)

// utpModuleBuild tracks one utp_6xrj45 module as it is filled during a
// single rack's packing pass.
type utpModuleBuild struct {
	u, slot int
	used    int      // ports filled so far (1..6)
	peers   []string // distinct peers that have ports in this module, in encounter order
}

// allocateUTP runs last (spec §5 item 1). UTP modules are not dedicated
// and must be packed tightly (spec §4.6): each rack independently packs
// its own natural-ordered peer list into 6-port modules with tail
// sharing, then sessions for a rack pair are formed by zipping the two
// sides' per-peer assignment sequences in order (spec §8 property 3 does
// NOT require UTP src_port == dst_port — only LC/MPO sessions are held to
// that invariant; UTP alignment is purely about sequence order).
func allocateUTP(rs *rackSlotReservers, merged map[pairKey]int) (modules []model.Module, cables []model.Cable, sessions []model.Session) {
	racks := utpRacks(merged)

	// assigned[rack][peer] is the ordered list of endpoints that rack
	// handed to that peer, in session-sequence order.
	assigned := make(map[string]map[string][]model.Endpoint, len(racks))

	for _, r := range racks {
		peerCounts := utpPeerCounts(merged, r)
		peers := make([]string, 0, len(peerCounts))
		for p := range peerCounts {
			peers = append(peers, p)
		}
		peers = natural.Sort(peers)

		rackModules, rackAssigned := packRackUTP(rs, r, peers, peerCounts)
		modules = append(modules, rackModules...)
		assigned[r] = rackAssigned
	}

	for _, pk := range sortedPairs(merged, model.MediaUTPRJ45) {
		n := merged[pk]
		lo, hi := pk.lo, pk.hi
		loEnds := assigned[lo][hi]
		hiEnds := assigned[hi][lo]

		for i := 1; i <= n; i++ {
			cableID := canonid.From(string(model.MediaUTPRJ45), lo, hi, strconv.Itoa(i))
			cables = append(cables, model.Cable{
				CableID:   cableID,
				CableType: model.CableUTP,
				SrcRack:   lo,
				DstRack:   hi,
			})
			sessions = append(sessions, newSession(model.MediaUTPRJ45, model.ModuleUTP6xRJ45, cableID, loEnds[i-1], hiEnds[i-1], 0, 0))
		}
	}

	return modules, cables, sessions
}

// utpRacks returns, in natural order, every rack that appears in at least
// one utp_rj45 demand pair.
func utpRacks(merged map[pairKey]int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pk := range sortedPairs(merged, model.MediaUTPRJ45) {
		for _, id := range [...]string{pk.lo, pk.hi} {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return natural.Sort(out)
}

// utpPeerCounts returns, for rack r, the utp_rj45 demand count to every
// peer it has one with.
func utpPeerCounts(merged map[pairKey]int, r string) map[string]int {
	counts := make(map[string]int)
	for pk, n := range merged {
		if pk.media != model.MediaUTPRJ45 {
			continue
		}
		switch r {
		case pk.lo:
			counts[pk.hi] = n
		case pk.hi:
			counts[pk.lo] = n
		}
	}
	return counts
}

// packRackUTP packs rack r's peer demand into 6-port modules with tail
// sharing (spec §4.6 point 3): each peer consumes full modules first; the
// remainder is held open for the next peer to fill, after which the
// module is closed (never shared by more than two peers, even if the
// second peer leaves ports unused — spec scenario S3).
func packRackUTP(rs *rackSlotReservers, r string, peers []string, peerCounts map[string]int) ([]model.Module, map[string][]model.Endpoint) {
	var builds []*utpModuleBuild
	openIdx := -1
	assigned := make(map[string][]model.Endpoint, len(peers))

	assign := func(peer string, b *utpModuleBuild, port int) {
		assigned[peer] = append(assigned[peer], model.Endpoint{
			Rack: r, Face: model.FaceFront, U: b.u, Slot: b.slot, Port: port,
		})
	}

	for _, peer := range peers {
		remaining := peerCounts[peer]

		if openIdx >= 0 {
			b := builds[openIdx]
			free := model.RJ45PortsPerUTPModule - b.used
			take := remaining
			if take > free {
				take = free
			}
			for pt := 1; pt <= take; pt++ {
				assign(peer, b, b.used+pt)
			}
			b.used += take
			if take > 0 {
				b.peers = append(b.peers, peer)
			}
			remaining -= take
			openIdx = -1
		}

		for remaining >= model.RJ45PortsPerUTPModule {
			u, slot := rs.reserve(r)
			b := &utpModuleBuild{u: u, slot: slot, used: model.RJ45PortsPerUTPModule, peers: []string{peer}}
			builds = append(builds, b)
			for pt := 1; pt <= model.RJ45PortsPerUTPModule; pt++ {
				assign(peer, b, pt)
			}
			remaining -= model.RJ45PortsPerUTPModule
		}

		if remaining > 0 {
			u, slot := rs.reserve(r)
			b := &utpModuleBuild{u: u, slot: slot, used: remaining, peers: []string{peer}}
			builds = append(builds, b)
			for pt := 1; pt <= remaining; pt++ {
				assign(peer, b, pt)
			}
			openIdx = len(builds) - 1
		}
	}

	modules := make([]model.Module, 0, len(builds))
	for _, b := range builds {
		m := model.Module{
			RackID:     r,
			PanelU:     b.u,
			Slot:       b.slot,
			ModuleType: model.ModuleUTP6xRJ45,
			Dedicated:  false,
		}
		if len(b.peers) == 1 {
			m.PeerRackID = b.peers[0]
		}
		modules = append(modules, m)
	}
	return modules, assigned
}
