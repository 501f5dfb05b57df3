package render

import (
	"encoding/json"
	"io"

	"github.com/newtron-network/patchplan/pkg/model"
)

// Metrics summarizes an AllocationResult: counts by media, by cable type,
// and by module type (spec §6's "aggregate metrics").
type Metrics struct {
	SessionsByMedia map[string]int `json:"sessions_by_media"`
	CablesByType    map[string]int `json:"cables_by_type"`
	ModulesByType   map[string]int `json:"modules_by_type"`
}

// Document is the full JSON rendering of an AllocationResult: the result
// itself, aggregate metrics, and an always-empty warnings list (spec §6 —
// the core never emits warnings; the field exists for renderer parity with
// tooling that does).
type Document struct {
	Panels   []model.Panel   `json:"panels"`
	Modules  []model.Module  `json:"modules"`
	Cables   []model.Cable   `json:"cables"`
	Sessions []model.Session `json:"sessions"`
	Metrics  Metrics         `json:"metrics"`
	Warnings []string        `json:"warnings"`
}

// BuildDocument computes the JSON document for result without writing it.
func BuildDocument(result model.AllocationResult) Document {
	metrics := Metrics{
		SessionsByMedia: make(map[string]int),
		CablesByType:    make(map[string]int),
		ModulesByType:   make(map[string]int),
	}
	for _, s := range result.Sessions {
		metrics.SessionsByMedia[string(s.Media)]++
	}
	for _, c := range result.Cables {
		metrics.CablesByType[string(c.CableType)]++
	}
	for _, m := range result.Modules {
		metrics.ModulesByType[string(m.ModuleType)]++
	}

	return Document{
		Panels:   result.Panels,
		Modules:  result.Modules,
		Cables:   result.Cables,
		Sessions: result.Sessions,
		Metrics:  metrics,
		Warnings: []string{},
	}
}

// WriteJSON renders result as an indented JSON document (spec §6).
func WriteJSON(w io.Writer, result model.AllocationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDocument(result))
}
