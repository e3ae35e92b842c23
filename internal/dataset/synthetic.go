package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Synthetic generates reproducible mock batches whose kinematics resemble
// real detector output: exponentially falling jet pt above the 25 GeV
// cut, uniform eta within detector acceptance, uniform phi, light jet
// masses, and a discriminant biased toward low values. Useful for
// exercising the full pipeline without access to the query service.
type Synthetic struct {
	NumEvents int
	Seed      uint64
}

// NewSynthetic creates a generator for n events with the given seed.
func NewSynthetic(n int, seed uint64) *Synthetic {
	return &Synthetic{NumEvents: n, Seed: seed}
}

// Name identifies the generator, including its seed so two runs over the
// same synthetic batch are distinguishable from runs over different ones.
func (s *Synthetic) Name() string {
	return fmt.Sprintf("synthetic-%d-seed%d", s.NumEvents, s.Seed)
}

// jet multiplicity distribution: 3..6 jets with weights .3/.4/.2/.1
var multiplicityWeights = []struct {
	n int
	w float64
}{
	{3, 0.3},
	{4, 0.4},
	{5, 0.2},
	{6, 0.1},
}

// Batch generates the synthetic batch. Identical (NumEvents, Seed) pairs
// produce byte-identical batches.
func (s *Synthetic) Batch() (*Batch, error) {
	if s.NumEvents < 1 {
		return nil, fmt.Errorf("synthetic batch needs at least 1 event, got %d", s.NumEvents)
	}

	src := rand.NewPCG(s.Seed, s.Seed<<32|0x9e37)
	rng := rand.New(src)

	// Exponential scale 80 GeV above the 25 GeV threshold, clipped at 500.
	ptDist := distuv.Exponential{Rate: 1.0 / 80.0, Src: src}
	// Light-jet mass spectrum: exponential scale 5 GeV, offset 0.5.
	massDist := distuv.Exponential{Rate: 1.0 / 5.0, Src: src}
	// Discriminant shape: Beta(2,5) mapped onto [-1, 1].
	discDist := distuv.Beta{Alpha: 2, Beta: 5, Src: src}

	events := make([]Event, s.NumEvents)
	for i := range events {
		n := drawMultiplicity(rng)
		jets := make([]Jet, n)
		for j := range jets {
			pt := DefaultMinJetPt + ptDist.Rand()
			if pt > 500 {
				pt = 500
			}
			jets[j] = Jet{
				Pt:       pt,
				Eta:      rng.Float64()*5.0 - 2.5,
				Phi:      rng.Float64()*2*math.Pi - math.Pi,
				Mass:     massDist.Rand() + 0.5,
				BTagDisc: discDist.Rand()*2 - 1,
			}
		}
		events[i] = Event{Jets: jets}
	}

	return &Batch{Name: s.Name(), MinJetPt: DefaultMinJetPt, Events: events}, nil
}

func drawMultiplicity(rng *rand.Rand) int {
	u := rng.Float64()
	acc := 0.0
	for _, mw := range multiplicityWeights {
		acc += mw.w
		if u < acc {
			return mw.n
		}
	}
	return multiplicityWeights[len(multiplicityWeights)-1].n
}
