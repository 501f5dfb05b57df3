package model

// Fixed port-layout constants for the three module families (spec §3).
const (
	// SlotsPerU is the number of module bays in every 1U panel.
	SlotsPerU = 4

	// MPO12PortsPerPassThrough is the number of MPO back/front ports on a
	// mpo12_pass_through_12port module.
	MPO12PortsPerPassThrough = 12

	// LCPortsPerBreakout is the number of front LC-duplex ports on a
	// lc_breakout_2xmpo12_to_12xlcduplex module.
	LCPortsPerBreakout = 12

	// MPOConnectorsPerBreakout is the number of back MPO-12 connectors on a
	// breakout module (MPO#1 serves LC#1..6, MPO#2 serves LC#7..12).
	MPOConnectorsPerBreakout = 2

	// LCPortsPerMPOConnector is the number of LC-duplex ports fed by a
	// single back-side MPO-12 connector within a breakout module.
	LCPortsPerMPOConnector = LCPortsPerBreakout / MPOConnectorsPerBreakout

	// RJ45PortsPerUTPModule is the number of front RJ-45 ports on a
	// utp_6xrj45 module.
	RJ45PortsPerUTPModule = 6

	// StrandsPerLCDuplex is the number of fiber strands one LC-duplex port
	// consumes (spec §3 glossary).
	StrandsPerLCDuplex = 2
)

// MPOConnectorForLCPort returns the 1-based back-side MPO connector index
// (1 or 2) serving front LC port p (1-based), and the within-connector
// index q used to compute fiber strands (spec §4.5).
func MPOConnectorForLCPort(p int) (connector, withinConnector int) {
	if p <= LCPortsPerMPOConnector {
		return 1, p
	}
	return 2, p - LCPortsPerMPOConnector
}

// FiberStrandsForWithinConnectorIndex returns the (fiberA, fiberB) strand
// pair for within-connector LC index q (spec §4.4 invariant 4).
func FiberStrandsForWithinConnectorIndex(q int) (fiberA, fiberB int) {
	return 2*q - 1, 2 * q
}
