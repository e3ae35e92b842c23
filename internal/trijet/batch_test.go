package trijet

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hepworks/trijet.report/internal/dataset"
)

func syntheticBatch(t *testing.T, n int, seed uint64) *dataset.Batch {
	t.Helper()
	b, err := dataset.NewSynthetic(n, seed).Batch()
	if err != nil {
		t.Fatalf("synthetic batch: %v", err)
	}
	return b
}

func TestRunOrderPreservation(t *testing.T) {
	batch := syntheticBatch(t, 250, 11)
	results, err := Run(batch, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != batch.Len() {
		t.Fatalf("got %d results for %d events", len(results), batch.Len())
	}
}

func TestRunDeterminism(t *testing.T) {
	batch := syntheticBatch(t, 300, 23)

	first, err := Run(batch, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(batch, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// Byte-identical across passes, tie-break winners included.
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated runs diverged (-first +second):\n%s", diff)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	batch := syntheticBatch(t, 300, 31)

	seq, err := Run(batch, Options{Workers: 1})
	if err != nil {
		t.Fatalf("sequential Run: %v", err)
	}
	for _, workers := range []int{2, 4, -1} {
		par, err := Run(batch, Options{Workers: workers})
		if err != nil {
			t.Fatalf("parallel Run (workers=%d): %v", workers, err)
		}
		if diff := cmp.Diff(seq, par); diff != "" {
			t.Errorf("workers=%d diverged from sequential (-seq +par):\n%s", workers, diff)
		}
	}
}

func TestRunFailsOnUnderfilledEvent(t *testing.T) {
	batch := syntheticBatch(t, 10, 5)
	batch.Events[4].Jets = batch.Events[4].Jets[:2]

	for _, workers := range []int{1, 4} {
		_, err := Run(batch, Options{Workers: workers})
		if err == nil {
			t.Fatalf("Run (workers=%d) accepted a 2-jet event", workers)
		}
		var insufficient *InsufficientJetsError
		if !errors.As(err, &insufficient) {
			t.Fatalf("workers=%d: error type = %T, want *InsufficientJetsError", workers, err)
		}
		if insufficient.EventIndex != 4 {
			t.Errorf("workers=%d: EventIndex = %d, want 4", workers, insufficient.EventIndex)
		}
	}
}

func TestRunSingleEvent(t *testing.T) {
	batch := &dataset.Batch{Events: []dataset.Event{{Jets: baselineJets()}}}
	results, err := Run(batch, Options{Workers: 8})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestColumns(t *testing.T) {
	results := []Result{
		{Pt: 1, MaxDisc: 0.5, Mass: 100},
		{Pt: 2, MaxDisc: -0.25, Mass: 200},
	}
	pt, disc := Columns(results)
	if diff := cmp.Diff([]float64{1, 2}, pt); diff != "" {
		t.Errorf("pt column mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0.5, -0.25}, disc); diff != "" {
		t.Errorf("disc column mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 200}, Masses(results)); diff != "" {
		t.Errorf("mass column mismatch:\n%s", diff)
	}
}

func TestCombinationCount(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {2, 0}, {3, 1}, {4, 4}, {5, 10}, {8, 56}, {10, 120},
	}
	for _, tt := range tests {
		if got := CombinationCount(tt.n); got != tt.want {
			t.Errorf("CombinationCount(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}
