package trijet

import (
	"math"

	"github.com/hepworks/trijet.report/internal/dataset"
)

// DefaultTargetMass is the reference invariant mass candidates are
// scored against, in GeV (the top-quark mass).
const DefaultTargetMass = 172.5

// Result holds the per-event output of the selection: the winning
// trijet's combined transverse momentum, the maximum tag discriminant
// among its three jets, and its combined invariant mass (kept for
// diagnostics and the mass spectrum).
type Result struct {
	Pt      float64 `json:"best_pt"`
	MaxDisc float64 `json:"best_max_disc"`
	Mass    float64 `json:"best_mass"`
}

// SelectEvent enumerates and scores one event's jets and returns the
// candidate minimizing |mass − target|. eventIndex is carried into the
// error when the event violates the three-jet precondition.
//
// Ties on |mass − target| are resolved deterministically in favour of
// the first candidate in enumeration order, i.e. the lowest
// lexicographic index triple. The strict less-than comparison below is
// what guarantees this; it is a tested contract, not an accident of the
// scan.
func SelectEvent(jets []dataset.Jet, eventIndex int, target float64) (Result, error) {
	cands := Enumerate(jets)
	if len(cands) == 0 {
		return Result{}, &InsufficientJetsError{EventIndex: eventIndex, JetCount: len(jets)}
	}

	best := 0
	bestDiff := math.Abs(cands[0].P4.Mass() - target)
	for i := 1; i < len(cands); i++ {
		if diff := math.Abs(cands[i].P4.Mass() - target); diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	w := cands[best]
	return Result{
		Pt:      w.P4.Pt(),
		MaxDisc: math.Max(w.Disc[0], math.Max(w.Disc[1], w.Disc[2])),
		Mass:    w.P4.Mass(),
	}, nil
}
