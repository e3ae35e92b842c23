// Package units provides shared constants and conversions for kinematic
// quantities. The analysis works in GeV and radians throughout; raw
// records from the acquisition service arrive in MeV and must be
// converted exactly once, at the boundary.
package units

import "math"

// Momentum/energy unit names accepted in dataset files.
const (
	GeV = "gev"
	MeV = "mev"
)

// ValidMomentumUnits contains all accepted momentum unit values.
var ValidMomentumUnits = []string{GeV, MeV}

// IsValidMomentumUnit checks if the given unit is accepted.
func IsValidMomentumUnit(unit string) bool {
	for _, u := range ValidMomentumUnits {
		if unit == u {
			return true
		}
	}
	return false
}

// ToGeV converts a momentum or mass value in the given unit to GeV.
// Unknown units are passed through unchanged, matching the storage
// convention that everything downstream of the boundary is GeV.
func ToGeV(value float64, fromUnit string) float64 {
	switch fromUnit {
	case MeV:
		return value / 1000.0
	case GeV:
		return value // no conversion needed
	default:
		return value // default to GeV if unknown unit
	}
}

// WrapPhi maps an azimuthal angle in radians onto the conventional
// (−π, π] interval.
func WrapPhi(phi float64) float64 {
	if phi > -math.Pi && phi <= math.Pi {
		return phi
	}
	wrapped := math.Mod(phi+math.Pi, 2*math.Pi)
	if wrapped <= 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}
