// Package natural implements a total ordering on rack identifiers (and other
// peer-like strings) that compares trailing digit runs numerically, so that
// "R2" sorts before "R10". Every per-rack scan in pkg/alloc walks peers in
// this order; changing it on one side of a rack pair silently breaks the
// cross-rack port alignment guarantee (spec §9).
package natural

import (
	"sort"
	"strings"
)

// Less reports whether a sorts strictly before b under natural order.
//
// Each string is split into a non-digit prefix and a trailing run of
// decimal digits. If both strings have a non-empty digit suffix, the
// suffixes are compared numerically (ignoring leading zeros); otherwise
// the comparison falls back to plain lexicographic order on the full
// string. Equal numeric suffixes (e.g. "R01" vs "R1") tie-break on the
// full string so the order stays total.
func Less(a, b string) bool {
	if a == b {
		return false
	}
	_, digitsA := splitTrailingDigits(a)
	_, digitsB := splitTrailingDigits(b)

	if digitsA != "" && digitsB != "" {
		na, nb := trimLeadingZeros(digitsA), trimLeadingZeros(digitsB)
		if len(na) != len(nb) {
			return len(na) < len(nb)
		}
		if na != nb {
			return na < nb
		}
		return a < b
	}

	return a < b
}

// Compare returns -1, 0, or 1 as a sorts before, equal to, or after b.
func Compare(a, b string) int {
	switch {
	case a == b:
		return 0
	case Less(a, b):
		return -1
	default:
		return 1
	}
}

// Sort returns a new, natural-ordered copy of ss.
func Sort(ss []string) []string {
	out := make([]string, len(ss))
	copy(out, ss)
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// splitTrailingDigits splits s into (prefix, digit-suffix). digit-suffix is
// the empty string if s has no trailing digit.
func splitTrailingDigits(s string) (prefix, digits string) {
	i := len(s)
	for i > 0 && isDigit(s[i-1]) {
		i--
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func trimLeadingZeros(s string) string {
	trimmed := strings.TrimLeft(s, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// Pair orders two rack identifiers by natural order, returning (lo, hi)
// such that lo precedes hi. Used wherever the spec requires rack pairs to
// be canonicalized (§4.2, §4.4, §4.5, §4.6).
func Pair(a, b string) (lo, hi string) {
	if Less(a, b) {
		return a, b
	}
	return b, a
}
