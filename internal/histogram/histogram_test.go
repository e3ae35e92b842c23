package histogram

import (
	"math"
	"testing"
)

func TestNewRegularValidation(t *testing.T) {
	if _, err := NewRegular("x", 0, 0, 1); err == nil {
		t.Error("NewRegular accepted 0 bins")
	}
	if _, err := NewRegular("x", 10, 5, 5); err == nil {
		t.Error("NewRegular accepted empty range")
	}
	if _, err := NewRegular("x", 10, 5, 1); err == nil {
		t.Error("NewRegular accepted inverted range")
	}
}

func TestFillBinning(t *testing.T) {
	h, err := NewRegular("pt", 10, 0, 100)
	if err != nil {
		t.Fatal(err)
	}

	h.Fill(0)    // first bin (lower edge inclusive)
	h.Fill(5)    // first bin
	h.Fill(95)   // last bin
	h.Fill(100)  // overflow (upper edge exclusive)
	h.Fill(-1)   // underflow
	h.Fill(250)  // overflow

	if h.Entries != 6 {
		t.Errorf("Entries = %d, want 6", h.Entries)
	}
	if h.Counts[0] != 2 {
		t.Errorf("Counts[0] = %v, want 2", h.Counts[0])
	}
	if h.Counts[9] != 1 {
		t.Errorf("Counts[9] = %v, want 1", h.Counts[9])
	}
	if h.Underflow != 1 {
		t.Errorf("Underflow = %v, want 1", h.Underflow)
	}
	if h.Overflow != 2 {
		t.Errorf("Overflow = %v, want 2", h.Overflow)
	}
	if h.InRange() != 3 {
		t.Errorf("InRange = %v, want 3", h.InRange())
	}
}

func TestFillValueJustBelowUpperEdge(t *testing.T) {
	h, _ := NewRegular("disc", 50, -1, 1)
	// A value a hair under the upper edge must land in the last bin even
	// if the index computation rounds up.
	h.Fill(math.Nextafter(1, 0))
	if h.Counts[49] != 1 {
		t.Errorf("Counts[49] = %v, want 1", h.Counts[49])
	}
	if h.Overflow != 0 {
		t.Errorf("Overflow = %v, want 0", h.Overflow)
	}
}

func TestBinGeometry(t *testing.T) {
	h, _ := NewRegular("mass", 50, 0, 500)
	if h.BinWidth() != 10 {
		t.Errorf("BinWidth = %v, want 10", h.BinWidth())
	}
	if h.BinCenter(0) != 5 {
		t.Errorf("BinCenter(0) = %v, want 5", h.BinCenter(0))
	}
	if h.BinCenter(49) != 495 {
		t.Errorf("BinCenter(49) = %v, want 495", h.BinCenter(49))
	}
}

func TestFillAllMatchesEntries(t *testing.T) {
	h, _ := NewRegular("pt", PtBins, PtLo, PtHi)
	values := []float64{12, 88, 230, 499.999, 500, -3}
	h.FillAll(values)
	if h.Entries != len(values) {
		t.Errorf("Entries = %d, want %d", h.Entries, len(values))
	}
	if got := h.InRange() + h.Underflow + h.Overflow; got != float64(len(values)) {
		t.Errorf("accounting mismatch: in+under+over = %v, want %d", got, len(values))
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Entries != 8 {
		t.Errorf("Entries = %d, want 8", s.Entries)
	}
	if s.Mean != 5 {
		t.Errorf("Mean = %v, want 5", s.Mean)
	}
	// Sample standard deviation of this classic set.
	if math.Abs(s.StdDev-2.13808993) > 1e-6 {
		t.Errorf("StdDev = %v, want ≈2.138", s.StdDev)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("Min/Max = %v/%v, want 2/9", s.Min, s.Max)
	}
}

func TestSummarizeDegenerate(t *testing.T) {
	if s := Summarize(nil); s.Entries != 0 {
		t.Errorf("Summarize(nil).Entries = %d, want 0", s.Entries)
	}
	s := Summarize([]float64{3.5})
	if s.Mean != 3.5 || s.StdDev != 0 {
		t.Errorf("single-value summary = %+v, want mean 3.5 std 0", s)
	}
}
