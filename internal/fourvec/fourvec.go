// Package fourvec provides relativistic four-momentum arithmetic for
// reconstructed jets. Vectors are stored in Cartesian (px, py, pz, E)
// form so that sums of jets remain closed under addition; collider
// coordinates (pt, eta, phi, mass) are converted on construction.
package fourvec

import "math"

// FourMomentum is an energy-momentum four-vector. The zero value is a
// valid (empty) vector; summing onto it is well defined.
type FourMomentum struct {
	Px float64
	Py float64
	Pz float64
	E  float64
}

// PtEtaPhiM builds a four-momentum from collider coordinates: transverse
// momentum, pseudorapidity, azimuthal angle, and rest mass. Momenta and
// masses are in GeV, angles in radians.
func PtEtaPhiM(pt, eta, phi, mass float64) FourMomentum {
	px := pt * math.Cos(phi)
	py := pt * math.Sin(phi)
	pz := pt * math.Sinh(eta)
	e := math.Sqrt(px*px + py*py + pz*pz + mass*mass)
	return FourMomentum{Px: px, Py: py, Pz: pz, E: e}
}

// Add returns the component-wise sum of two four-momenta. Addition is
// commutative and associative up to floating-point rounding.
func (v FourMomentum) Add(o FourMomentum) FourMomentum {
	return FourMomentum{
		Px: v.Px + o.Px,
		Py: v.Py + o.Py,
		Pz: v.Pz + o.Pz,
		E:  v.E + o.E,
	}
}

// Mass returns the invariant mass sqrt(E² − |p|²). Floating-point
// cancellation can drive the squared norm slightly negative for massless
// or near-massless vectors; the norm is clamped at zero before the root
// so the result is never NaN.
func (v FourMomentum) Mass() float64 {
	m2 := v.E*v.E - v.Px*v.Px - v.Py*v.Py - v.Pz*v.Pz
	if m2 < 0 {
		m2 = 0
	}
	return math.Sqrt(m2)
}

// Pt returns the transverse momentum magnitude sqrt(px² + py²).
func (v FourMomentum) Pt() float64 {
	return math.Hypot(v.Px, v.Py)
}
