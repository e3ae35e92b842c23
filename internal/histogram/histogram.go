// Package histogram provides regular-binning 1D histograms and summary
// statistics for the per-event scalars produced by the selection. The
// analysis core hands over plain numeric sequences; binning choices live
// here, rendering lives in the plotting and web packages.
package histogram

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Default report binning for the three derived observables.
const (
	PtBins   = 50
	PtLo     = 0.0
	PtHi     = 500.0
	DiscBins = 50
	DiscLo   = -1.0
	DiscHi   = 1.0
	MassBins = 50
	MassLo   = 0.0
	MassHi   = 500.0
)

// Histogram is a fixed regular-binning 1D histogram. Values outside
// [Lo, Hi) are accumulated in the underflow/overflow counters rather
// than dropped, so Entries always equals the number of Fill calls.
type Histogram struct {
	Label     string    `json:"label"`
	Lo        float64   `json:"lo"`
	Hi        float64   `json:"hi"`
	Counts    []float64 `json:"counts"`
	Underflow float64   `json:"underflow"`
	Overflow  float64   `json:"overflow"`
	Entries   int       `json:"entries"`
}

// NewRegular creates a histogram with bins equal-width bins over [lo, hi).
func NewRegular(label string, bins int, lo, hi float64) (*Histogram, error) {
	if bins < 1 {
		return nil, fmt.Errorf("histogram needs at least 1 bin, got %d", bins)
	}
	if hi <= lo {
		return nil, fmt.Errorf("histogram range [%v, %v) is empty", lo, hi)
	}
	return &Histogram{
		Label:  label,
		Lo:     lo,
		Hi:     hi,
		Counts: make([]float64, bins),
	}, nil
}

// Fill adds one entry with unit weight.
func (h *Histogram) Fill(v float64) {
	h.Entries++
	switch {
	case v < h.Lo:
		h.Underflow++
	case v >= h.Hi:
		h.Overflow++
	default:
		idx := int(float64(len(h.Counts)) * (v - h.Lo) / (h.Hi - h.Lo))
		if idx == len(h.Counts) { // v fractionally below Hi can round up
			idx--
		}
		h.Counts[idx]++
	}
}

// FillAll adds every value of the sequence.
func (h *Histogram) FillAll(values []float64) {
	for _, v := range values {
		h.Fill(v)
	}
}

// BinWidth returns the width of each bin.
func (h *Histogram) BinWidth() float64 {
	return (h.Hi - h.Lo) / float64(len(h.Counts))
}

// BinCenter returns the midpoint of bin i.
func (h *Histogram) BinCenter(i int) float64 {
	return h.Lo + (float64(i)+0.5)*h.BinWidth()
}

// InRange returns the number of entries that landed inside [Lo, Hi).
func (h *Histogram) InRange() float64 {
	total := 0.0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Summary holds the headline statistics of a scalar sequence.
type Summary struct {
	Entries int     `json:"entries"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summarize computes summary statistics over the raw (unbinned) values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	s := Summary{
		Entries: len(values),
		Mean:    stat.Mean(values, nil),
		Min:     values[0],
		Max:     values[0],
	}
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	for _, v := range values[1:] {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	return s
}
