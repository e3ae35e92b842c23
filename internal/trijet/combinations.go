// Package trijet implements the combinatorial core of the analysis: for
// each event, enumerate every unordered three-jet subset, score each
// subset's combined invariant mass against a target, and extract the
// winning subset's summary observables.
package trijet

import (
	"github.com/hepworks/trijet.report/internal/dataset"
	"github.com/hepworks/trijet.report/internal/fourvec"
)

// Candidate is one three-jet subset of an event: the index triple it was
// built from (always i<j<k in original jet order), the summed
// four-momentum, and the three tag-discriminant values in index order.
// Candidates live only for the duration of one event's selection.
type Candidate struct {
	Indices [3]int
	P4      fourvec.FourMomentum
	Disc    [3]float64
}

// Enumerate produces all C(n,3) three-jet candidates of an event in
// lexicographic order over (i,j,k). The order is part of the contract:
// the selector's tie-break picks the first candidate in this order, so
// enumeration must be reproducible for identical input. No filtering
// happens here; every combinatorial possibility is retained.
func Enumerate(jets []dataset.Jet) []Candidate {
	n := len(jets)
	if n < 3 {
		return nil
	}

	// Build each jet's four-momentum once; triples reuse the converted
	// vectors instead of re-deriving them per combination.
	p4s := make([]fourvec.FourMomentum, n)
	for i, jet := range jets {
		p4s[i] = fourvec.PtEtaPhiM(jet.Pt, jet.Eta, jet.Phi, jet.Mass)
	}

	out := make([]Candidate, 0, n*(n-1)*(n-2)/6)
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			pij := p4s[i].Add(p4s[j])
			for k := j + 1; k < n; k++ {
				out = append(out, Candidate{
					Indices: [3]int{i, j, k},
					P4:      pij.Add(p4s[k]),
					Disc:    [3]float64{jets[i].BTagDisc, jets[j].BTagDisc, jets[k].BTagDisc},
				})
			}
		}
	}
	return out
}
