// Package model defines the six entity kinds the allocation engine
// manipulates (spec §3): Rack, Demand, Panel, Module, Cable, and Session.
// All are plain values; none outlives a single allocation call except the
// AllocationResult returned by value from pkg/alloc.
package model

// Media identifies one of the four supported connectivity media.
type Media string

const (
	MediaMMFLCDuplex Media = "mmf_lc_duplex"
	MediaSMFLCDuplex Media = "smf_lc_duplex"
	MediaMPO12       Media = "mpo12"
	MediaUTPRJ45     Media = "utp_rj45"
)

// FiberKind distinguishes multi-mode from single-mode fiber.
type FiberKind string

const (
	FiberMMF FiberKind = "mmf"
	FiberSMF FiberKind = "smf"
)

// PolarityType is the MPO trunk wiring convention.
type PolarityType string

const (
	PolarityA PolarityType = "A"
	PolarityB PolarityType = "B"
)

// PolarityVariant is the breakout/pass-through module wiring convention.
type PolarityVariant string

const (
	PolarityVariantA  PolarityVariant = "A"
	PolarityVariantAF PolarityVariant = "AF"
)

// ModuleType identifies one of the three fixed module families (spec §3).
type ModuleType string

const (
	ModuleLCBreakout2xMPO12To12xLCDuplex ModuleType = "lc_breakout_2xmpo12_to_12xlcduplex"
	ModuleMPO12PassThrough12Port         ModuleType = "mpo12_pass_through_12port"
	ModuleUTP6xRJ45                      ModuleType = "utp_6xrj45"
)

// CableType distinguishes trunk cables from RJ-45 patch cords.
type CableType string

const (
	CableMPO12Trunk CableType = "mpo12_trunk"
	CableUTP        CableType = "utp_cable"
)

// Face is the side of a module a port lives on.
type Face string

const (
	FaceFront Face = "front"
	FaceBack  Face = "back"
)

// Rack is a declared rack participating in the project. Created from input
// and never mutated.
type Rack struct {
	ID string
}

// Demand is one connectivity requirement between two racks for a single
// medium, as declared in the project input. pkg/alloc merges demands per
// unordered rack pair and medium before allocating.
type Demand struct {
	Src   string
	Dst   string
	Media Media
	Count int
}

// Panel is one 1U patch panel in a rack, holding SlotsPerU module bays.
// Created lazily by the slot reserver; never mutated once created.
type Panel struct {
	RackID     string
	U          int
	SlotsPerU  int
}

// Module is a single adapter cassette occupying exactly one slot.
// FiberKind and PolarityVariant are set only for fiber module types;
// PeerRackID is set for dedicated modules and for a UTP module serving a
// single peer rack; it is empty for a UTP module shared by two peers.
type Module struct {
	RackID          string
	PanelU          int
	Slot            int
	ModuleType      ModuleType
	FiberKind       FiberKind       // zero value if not applicable
	PolarityVariant PolarityVariant // zero value if not applicable
	PeerRackID      string          // zero value if shared by two peers
	Dedicated       bool
}

// Cable is a physical trunk or patch cord referenced by one or more
// sessions. CableID is a deterministic 32-hex identifier derived from the
// cable's canonical string (spec §4.2).
type Cable struct {
	CableID      string
	CableType    CableType
	FiberKind    FiberKind    // zero value for mpo12 E2E and utp cables
	PolarityType PolarityType // zero value for utp cables
	SrcRack      string
	DstRack      string
}

// Endpoint identifies one physical port termination.
type Endpoint struct {
	Rack string
	Face Face
	U    int
	Slot int
	Port int
}

// Session is one logical endpoint-to-endpoint connection: the unit the CSV
// and JSON renderers ultimately emit one row/record per.
type Session struct {
	SessionID  string
	Media      Media
	CableID    string
	AdapterType ModuleType
	LabelA     string
	LabelB     string
	A          Endpoint
	B          Endpoint
	FiberA     int // 0 if not applicable
	FiberB     int // 0 if not applicable
	Notes      string
}

// AllocationResult is the single value returned by pkg/alloc.AllocateProject.
// List ordering (spec §6): Panels and Modules by (rack_id natural order, u,
// slot); Cables by CableID; Sessions by SessionID.
type AllocationResult struct {
	Panels   []Panel
	Modules  []Module
	Cables   []Cable
	Sessions []Session
}
