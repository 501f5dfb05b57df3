package alloc

import (
	"sort"

	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/natural"
)

// pairKey identifies an unordered rack pair plus a medium.
type pairKey struct {
	lo, hi string
	media  model.Media
}

// normalizeDemands groups demands by unordered rack pair and media,
// merging counts, and drops any self-loop that slipped through (spec §2
// item 3 — self-loops are already rejected upstream by the validator, so
// this is a defensive no-op in practice, not a user-visible check).
//
// Orientation in the input (which rack was named src vs dst) is
// discarded entirely: the allocator always re-derives src/dst canonically
// via natural order (spec §4.2), so a demand written A→B allocates
// identically to the same demand written B→A (spec scenario S5).
func normalizeDemands(demands []model.Demand) map[pairKey]int {
	merged := make(map[pairKey]int)
	for _, d := range demands {
		if d.Src == d.Dst {
			continue
		}
		lo, hi := natural.Pair(d.Src, d.Dst)
		k := pairKey{lo: lo, hi: hi, media: d.Media}
		merged[k] += d.Count
	}
	return merged
}

// sortedPairs returns the pair keys for one medium, ordered by natural
// order of (lo, hi) — the rack-pair processing order spec §5 item 2
// requires within each media category.
func sortedPairs(merged map[pairKey]int, media model.Media) []pairKey {
	var keys []pairKey
	for k := range merged {
		if k.media == media {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return pairLess(keys[i], keys[j]) })
	return keys
}

func pairLess(a, b pairKey) bool {
	if a.lo != b.lo {
		return natural.Less(a.lo, b.lo)
	}
	return natural.Less(a.hi, b.hi)
}
