package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/newtron-network/patchplan/pkg/model"
	"github.com/newtron-network/patchplan/pkg/natural"
)

// Purely derived from the stable AllocationResult; rendering never
// influences allocation (spec §6).

const (
	svgNodeRadius  = 24
	svgNodeSpacing = 140
	svgMargin      = 40
)

// rackIDs returns every rack referenced by result's panels, in natural order.
func rackIDs(result model.AllocationResult) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, p := range result.Panels {
		if !seen[p.RackID] {
			seen[p.RackID] = true
			ids = append(ids, p.RackID)
		}
	}
	return natural.Sort(ids)
}

// rackPair is an unordered pair of racks with a connecting edge in the
// topology view.
type rackPair struct {
	lo, hi string
}

// rackPairs returns every distinct unordered rack pair with at least one
// cable between them, along with the cable count for that pair.
func rackPairs(result model.AllocationResult) ([]rackPair, map[rackPair]int) {
	counts := make(map[rackPair]int)
	for _, c := range result.Cables {
		lo, hi := natural.Pair(c.SrcRack, c.DstRack)
		counts[rackPair{lo, hi}]++
	}
	pairs := make([]rackPair, 0, len(counts))
	for p := range counts {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].lo != pairs[j].lo {
			return natural.Less(pairs[i].lo, pairs[j].lo)
		}
		return natural.Less(pairs[i].hi, pairs[j].hi)
	})
	return pairs, counts
}

// WriteTopologySVG renders one node per rack and one edge per rack pair
// with any cable between them, laid out left to right in a single row.
func WriteTopologySVG(w io.Writer, result model.AllocationResult) error {
	racks := rackIDs(result)
	pairs, counts := rackPairs(result)

	width := svgMargin*2 + svgNodeSpacing*maxInt(1, len(racks)-1)
	height := svgMargin*2 + svgNodeSpacing

	centers := make(map[string][2]int, len(racks))
	for i, r := range racks {
		x := svgMargin + svgNodeRadius + i*svgNodeSpacing
		y := height / 2
		centers[r] = [2]int{x, y}
	}

	fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", width, height, width, height)
	fmt.Fprintf(w, "  <title>patchplan topology</title>\n")

	for _, p := range pairs {
		lo, hi := centers[p.lo], centers[p.hi]
		fmt.Fprintf(w, "  <line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"black\" stroke-width=\"1\"/>\n",
			lo[0], lo[1], hi[0], hi[1])
		midX, midY := (lo[0]+hi[0])/2, (lo[1]+hi[1])/2
		fmt.Fprintf(w, "  <text x=\"%d\" y=\"%d\" font-size=\"10\" text-anchor=\"middle\">%d cable(s)</text>\n",
			midX, midY-4, counts[p])
	}

	for _, r := range racks {
		c := centers[r]
		fmt.Fprintf(w, "  <circle cx=\"%d\" cy=\"%d\" r=\"%d\" fill=\"white\" stroke=\"black\"/>\n", c[0], c[1], svgNodeRadius)
		fmt.Fprintf(w, "  <text x=\"%d\" y=\"%d\" font-size=\"12\" text-anchor=\"middle\" dominant-baseline=\"middle\">%s</text>\n",
			c[0], c[1], r)
	}

	fmt.Fprintln(w, "</svg>")
	return nil
}

const (
	svgCellSize = 40
	svgRowLabel = 30
)

// WriteRackSVG renders one row per U, one cell per slot, for a single rack's
// panel occupancy.
func WriteRackSVG(w io.Writer, result model.AllocationResult, rackID string) error {
	modulesByPos := make(map[[2]int]model.Module)
	maxU := 0
	for _, m := range result.Modules {
		if m.RackID != rackID {
			continue
		}
		modulesByPos[[2]int{m.PanelU, m.Slot}] = m
		if m.PanelU > maxU {
			maxU = m.PanelU
		}
	}

	width := svgRowLabel + svgCellSize*model.SlotsPerU
	height := svgCellSize * maxInt(1, maxU)

	fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", width, height, width, height)
	fmt.Fprintf(w, "  <title>patchplan rack %s</title>\n", rackID)

	for u := 1; u <= maxU; u++ {
		y := (u - 1) * svgCellSize
		fmt.Fprintf(w, "  <text x=\"2\" y=\"%d\" font-size=\"10\">U%d</text>\n", y+svgCellSize/2, u)
		for slot := 1; slot <= model.SlotsPerU; slot++ {
			x := svgRowLabel + (slot-1)*svgCellSize
			m, occupied := modulesByPos[[2]int{u, slot}]
			fill := "white"
			label := ""
			if occupied {
				fill = "lightgray"
				label = string(m.ModuleType)
			}
			fmt.Fprintf(w, "  <rect x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" fill=\"%s\" stroke=\"black\"/>\n",
				x, y, svgCellSize, svgCellSize, fill)
			if occupied {
				fmt.Fprintf(w, "  <text x=\"%d\" y=\"%d\" font-size=\"6\" text-anchor=\"middle\">%s</text>\n",
					x+svgCellSize/2, y+svgCellSize/2, truncate(label, 10))
			}
		}
	}

	fmt.Fprintln(w, "</svg>")
	return nil
}

// WritePairSVG renders the modules and cable count between exactly two
// racks.
func WritePairSVG(w io.Writer, result model.AllocationResult, rackA, rackB string) error {
	lo, hi := natural.Pair(rackA, rackB)

	var modulesA, modulesB []model.Module
	for _, m := range result.Modules {
		if m.RackID == lo && m.PeerRackID == hi {
			modulesA = append(modulesA, m)
		}
		if m.RackID == hi && m.PeerRackID == lo {
			modulesB = append(modulesB, m)
		}
	}

	cableCount := 0
	for _, c := range result.Cables {
		cLo, cHi := natural.Pair(c.SrcRack, c.DstRack)
		if cLo == lo && cHi == hi {
			cableCount++
		}
	}

	width := 400
	height := 80 + svgCellSize*maxInt(len(modulesA), len(modulesB))

	fmt.Fprintf(w, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n", width, height, width, height)
	fmt.Fprintf(w, "  <title>patchplan pair %s-%s</title>\n", lo, hi)
	fmt.Fprintf(w, "  <text x=\"10\" y=\"20\" font-size=\"12\">%s &lt;-&gt; %s: %d cable(s)</text>\n", lo, hi, cableCount)

	for i, m := range modulesA {
		y := 40 + i*svgCellSize
		fmt.Fprintf(w, "  <text x=\"10\" y=\"%d\" font-size=\"10\">%s U%d slot%d: %s</text>\n", y, lo, m.PanelU, m.Slot, m.ModuleType)
	}
	for i, m := range modulesB {
		y := 40 + i*svgCellSize
		fmt.Fprintf(w, "  <text x=\"%d\" y=\"%d\" font-size=\"10\">%s U%d slot%d: %s</text>\n", width/2, y, hi, m.PanelU, m.Slot, m.ModuleType)
	}

	fmt.Fprintln(w, "</svg>")
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
