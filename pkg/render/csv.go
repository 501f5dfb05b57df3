package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/newtron-network/patchplan/pkg/model"
)

// csvHeader is the literal 21-column table sorted by session_id (spec §6).
var csvHeader = []string{
	"session_id", "media", "cable_id", "cable_type", "polarity_type", "adapter_type",
	"label_a", "label_b",
	"rack_a", "face_a", "u_a", "slot_a", "port_a", "fiber_a",
	"rack_b", "face_b", "u_b", "slot_b", "port_b", "fiber_b",
	"notes",
}

// WriteCSV renders result.Sessions as the 21-column CSV table. Sessions are
// already sorted by session_id in the AllocationResult (spec §6); this
// function never re-sorts. Blank fields are emitted where fiber indices or
// notes are absent.
func WriteCSV(w io.Writer, result model.AllocationResult) error {
	cables := make(map[string]model.Cable, len(result.Cables))
	for _, c := range result.Cables {
		cables[c.CableID] = c
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("render: write csv header: %w", err)
	}

	for _, s := range result.Sessions {
		cable := cables[s.CableID]
		row := []string{
			s.SessionID,
			string(s.Media),
			s.CableID,
			string(cable.CableType),
			string(cable.PolarityType),
			string(s.AdapterType),
			s.LabelA,
			s.LabelB,
			s.A.Rack, string(s.A.Face), itoa(s.A.U), itoa(s.A.Slot), itoa(s.A.Port), fiberStr(s.FiberA),
			s.B.Rack, string(s.B.Face), itoa(s.B.U), itoa(s.B.Slot), itoa(s.B.Port), fiberStr(s.FiberB),
			s.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("render: write csv row %s: %w", s.SessionID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func fiberStr(fiber int) string {
	if fiber == 0 {
		return ""
	}
	return itoa(fiber)
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
