package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/newtron-network/patchplan/pkg/model"
)

func sampleResult() model.AllocationResult {
	return model.AllocationResult{
		Panels: []model.Panel{
			{RackID: "R1", U: 1, SlotsPerU: model.SlotsPerU},
			{RackID: "R2", U: 1, SlotsPerU: model.SlotsPerU},
		},
		Modules: []model.Module{
			{RackID: "R1", PanelU: 1, Slot: 1, ModuleType: model.ModuleMPO12PassThrough12Port,
				PolarityVariant: model.PolarityVariantA, PeerRackID: "R2", Dedicated: true},
			{RackID: "R2", PanelU: 1, Slot: 1, ModuleType: model.ModuleMPO12PassThrough12Port,
				PolarityVariant: model.PolarityVariantA, PeerRackID: "R1", Dedicated: true},
		},
		Cables: []model.Cable{
			{CableID: "c1", CableType: model.CableMPO12Trunk, PolarityType: model.PolarityB, SrcRack: "R1", DstRack: "R2"},
		},
		Sessions: []model.Session{
			{
				SessionID:   "s1",
				Media:       model.MediaMPO12,
				CableID:     "c1",
				AdapterType: model.ModuleMPO12PassThrough12Port,
				LabelA:      "R1-U1-S1-P1",
				LabelB:      "R2-U1-S1-P1",
				A:           model.Endpoint{Rack: "R1", Face: model.FaceFront, U: 1, Slot: 1, Port: 1},
				B:           model.Endpoint{Rack: "R2", Face: model.FaceFront, U: 1, Slot: 1, Port: 1},
			},
		},
	}
}

func TestWriteCSV_HeaderAndRowCount(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parsing csv output: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2 (header + 1 session)", len(rows))
	}
	if len(rows[0]) != 21 {
		t.Fatalf("header has %d columns, want 21", len(rows[0]))
	}
	if rows[0][0] != "session_id" {
		t.Errorf("first column = %q, want session_id", rows[0][0])
	}
}

func TestWriteCSV_BlankFiberAndNotes(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parsing csv output: %v", err)
	}

	header := rows[0]
	data := rows[1]
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	if data[idx["fiber_a"]] != "" {
		t.Errorf("fiber_a = %q, want blank", data[idx["fiber_a"]])
	}
	if data[idx["fiber_b"]] != "" {
		t.Errorf("fiber_b = %q, want blank", data[idx["fiber_b"]])
	}
	if data[idx["notes"]] != "" {
		t.Errorf("notes = %q, want blank", data[idx["notes"]])
	}
	if data[idx["session_id"]] != "s1" {
		t.Errorf("session_id = %q, want s1", data[idx["session_id"]])
	}
}

func TestWriteCSV_FiberPopulated(t *testing.T) {
	result := sampleResult()
	result.Sessions[0].FiberA = 1
	result.Sessions[0].FiberB = 2
	result.Sessions[0].Notes = "spare"

	var buf bytes.Buffer
	if err := WriteCSV(&buf, result); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parsing csv output: %v", err)
	}
	header, data := rows[0], rows[1]
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}

	if data[idx["fiber_a"]] != "1" {
		t.Errorf("fiber_a = %q, want 1", data[idx["fiber_a"]])
	}
	if data[idx["fiber_b"]] != "2" {
		t.Errorf("fiber_b = %q, want 2", data[idx["fiber_b"]])
	}
	if data[idx["notes"]] != "spare" {
		t.Errorf("notes = %q, want spare", data[idx["notes"]])
	}
}

func TestWriteJSON_StructureAndMetrics(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, result); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal json output: %v", err)
	}

	if len(doc.Sessions) != 1 {
		t.Errorf("Sessions count = %d, want 1", len(doc.Sessions))
	}
	if len(doc.Cables) != 1 {
		t.Errorf("Cables count = %d, want 1", len(doc.Cables))
	}
	if doc.Warnings == nil || len(doc.Warnings) != 0 {
		t.Errorf("Warnings = %v, want empty non-nil slice", doc.Warnings)
	}
	if doc.Metrics.SessionsByMedia[string(model.MediaMPO12)] != 1 {
		t.Errorf("SessionsByMedia[mpo12] = %d, want 1", doc.Metrics.SessionsByMedia[string(model.MediaMPO12)])
	}
	if doc.Metrics.CablesByType[string(model.CableMPO12Trunk)] != 1 {
		t.Errorf("CablesByType[mpo12_trunk] = %d, want 1", doc.Metrics.CablesByType[string(model.CableMPO12Trunk)])
	}
	if doc.Metrics.ModulesByType[string(model.ModuleMPO12PassThrough12Port)] != 2 {
		t.Errorf("ModulesByType[mpo12_pass_through_12port] = %d, want 2", doc.Metrics.ModulesByType[string(model.ModuleMPO12PassThrough12Port)])
	}
}

func TestBuildDocument_EmptyResult(t *testing.T) {
	doc := BuildDocument(model.AllocationResult{})
	if len(doc.Warnings) != 0 {
		t.Errorf("Warnings should be empty for empty result")
	}
	if len(doc.Metrics.SessionsByMedia) != 0 {
		t.Errorf("SessionsByMedia should be empty for empty result")
	}
}

func TestWriteTopologySVG(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WriteTopologySVG(&buf, result); err != nil {
		t.Fatalf("WriteTopologySVG() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("output is not a well-formed SVG document")
	}
	if !strings.Contains(out, ">R1<") {
		t.Error("expected rack R1 node label in topology SVG")
	}
	if !strings.Contains(out, ">R2<") {
		t.Error("expected rack R2 node label in topology SVG")
	}
	if !strings.Contains(out, "1 cable(s)") {
		t.Error("expected cable count label between R1 and R2")
	}
}

func TestWriteRackSVG(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WriteRackSVG(&buf, result, "R1"); err != nil {
		t.Fatalf("WriteRackSVG() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Error("output is not an SVG document")
	}
	if !strings.Contains(out, ">mpo12_pass<") {
		t.Error("expected occupied module type label, truncated to 10 characters, in rack SVG")
	}
}

func TestWriteRackSVG_EmptyRack(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WriteRackSVG(&buf, result, "R99"); err != nil {
		t.Fatalf("WriteRackSVG() error for unknown rack: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("should still emit a valid empty SVG for an unknown rack")
	}
}

func TestWritePairSVG(t *testing.T) {
	result := sampleResult()
	var buf bytes.Buffer
	if err := WritePairSVG(&buf, result, "R2", "R1"); err != nil {
		t.Fatalf("WritePairSVG() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "R1 &lt;-&gt; R2") {
		t.Error("expected pair title normalized to natural order R1-R2 regardless of argument order")
	}
	if !strings.Contains(out, "1 cable(s)") {
		t.Error("expected cable count in pair SVG")
	}
}
