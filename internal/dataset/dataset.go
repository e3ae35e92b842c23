// Package dataset models the acquisition boundary: ordered batches of
// independent events, each carrying a variable-length list of jets. The
// jagged shape (a list of per-event jet lists) is intrinsic to the data
// and is kept explicit rather than flattened into a fixed-width matrix.
package dataset

import (
	"fmt"

	"github.com/hepworks/trijet.report/internal/units"
)

// Jet is a single reconstructed jet record. Momenta and masses are in
// GeV, angles in radians. Records are immutable once loaded.
type Jet struct {
	Pt       float64 `json:"pt"`
	Eta      float64 `json:"eta"`
	Phi      float64 `json:"phi"`
	Mass     float64 `json:"mass"`
	BTagDisc float64 `json:"btag_disc"`
}

// Event holds the ordered jets of one recorded event. Events are
// independent of each other; no cross-event state exists.
type Event struct {
	Jets []Jet `json:"jets"`
}

// Batch is an ordered collection of events as delivered by the
// acquisition service. The upstream contract guarantees every event has
// at least MinJetsPerEvent jets above the pt threshold.
type Batch struct {
	Name     string  `json:"name"`
	MinJetPt float64 `json:"min_jet_pt"`
	Events   []Event `json:"events"`
}

// MinJetsPerEvent is the upstream event-level cut: only events with at
// least this many jets reach the analysis.
const MinJetsPerEvent = 3

// DefaultMinJetPt is the upstream per-jet transverse momentum cut in GeV
// (25 GeV, i.e. 25000 MeV at the query).
const DefaultMinJetPt = 25.0

// Source supplies a batch of events for analysis.
type Source interface {
	// Batch returns the ordered, validated event batch.
	Batch() (*Batch, error)
	// Name identifies the source for run records and logs.
	Name() string
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int { return len(b.Events) }

// Validate checks the upstream delivery guarantees: every event carries
// at least MinJetsPerEvent jets and every jet sits above the pt
// threshold. Violations are reported loudly with the offending event
// index; the analysis core never re-filters.
func (b *Batch) Validate() error {
	minPt := b.MinJetPt
	if minPt == 0 {
		minPt = DefaultMinJetPt
	}
	for i, ev := range b.Events {
		if len(ev.Jets) < MinJetsPerEvent {
			return fmt.Errorf("event %d has %d jets, need at least %d", i, len(ev.Jets), MinJetsPerEvent)
		}
		for j, jet := range ev.Jets {
			if jet.Pt < minPt {
				return fmt.Errorf("event %d jet %d has pt %.3f GeV below threshold %.3f", i, j, jet.Pt, minPt)
			}
		}
	}
	return nil
}

// Normalize converts all momentum-like fields to GeV from the given
// source unit and wraps azimuthal angles onto (−π, π]. It returns the
// batch for chaining. Call once, at the boundary, before Validate.
func (b *Batch) Normalize(momentumUnit string) *Batch {
	for i := range b.Events {
		jets := b.Events[i].Jets
		for j := range jets {
			jets[j].Pt = units.ToGeV(jets[j].Pt, momentumUnit)
			jets[j].Mass = units.ToGeV(jets[j].Mass, momentumUnit)
			jets[j].Phi = units.WrapPhi(jets[j].Phi)
		}
	}
	b.MinJetPt = units.ToGeV(b.MinJetPt, momentumUnit)
	return b
}

// JetCounts returns the per-event jet multiplicities, in event order.
func (b *Batch) JetCounts() []int {
	counts := make([]int, len(b.Events))
	for i, ev := range b.Events {
		counts[i] = len(ev.Jets)
	}
	return counts
}
