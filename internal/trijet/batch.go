package trijet

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hepworks/trijet.report/internal/dataset"
)

// Options configures a batch run.
type Options struct {
	// TargetMass is the reference mass in GeV; zero means
	// DefaultTargetMass.
	TargetMass float64
	// Workers sets the number of parallel workers. 0 or 1 runs the batch
	// in a single deterministic pass; negative means one per CPU. The
	// computation is independent per event, so parallel and sequential
	// runs produce identical output.
	Workers int
}

// Run selects the best trijet for every event of the batch. Exactly one
// result is produced per input event, in input order; no event is
// silently dropped. The first precondition violation aborts the run and
// is returned with its event index.
func Run(batch *dataset.Batch, opts Options) ([]Result, error) {
	target := opts.TargetMass
	if target == 0 {
		target = DefaultTargetMass
	}

	workers := opts.Workers
	if workers < 0 {
		workers = runtime.NumCPU()
	}
	if workers > 1 && batch.Len() > 1 {
		return runParallel(batch, target, workers)
	}
	return runSequential(batch, target)
}

func runSequential(batch *dataset.Batch, target float64) ([]Result, error) {
	results := make([]Result, batch.Len())
	for i, ev := range batch.Events {
		res, err := SelectEvent(ev.Jets, i, target)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// runParallel partitions events across workers. Each unit of work keeps
// its original event index and writes into its own slot, so reassembly
// into input order is structural rather than a post-hoc sort; worker
// completion order never affects the output.
func runParallel(batch *dataset.Batch, target float64, workers int) ([]Result, error) {
	if workers > batch.Len() {
		workers = batch.Len()
	}

	results := make([]Result, batch.Len())
	errs := make([]error, batch.Len())
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i], errs[i] = SelectEvent(batch.Events[i].Jets, i, target)
			}
		}()
	}
	for i := range batch.Events {
		indices <- i
	}
	close(indices)
	wg.Wait()

	// Report the earliest failing event so parallel runs fail the same
	// way sequential ones do.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Columns splits results into the two parallel output sequences the
// histogramming collaborator consumes: best pt and best max
// discriminant, one entry per event in input order.
func Columns(results []Result) (bestPt, bestMaxDisc []float64) {
	bestPt = make([]float64, len(results))
	bestMaxDisc = make([]float64, len(results))
	for i, r := range results {
		bestPt[i] = r.Pt
		bestMaxDisc[i] = r.MaxDisc
	}
	return bestPt, bestMaxDisc
}

// Masses returns the per-event winning invariant masses, in input order.
func Masses(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Mass
	}
	return out
}

// CombinationCount returns C(n,3) for an event with n jets, the exact
// number of candidates Enumerate must produce.
func CombinationCount(n int) int {
	if n < 3 {
		return 0
	}
	return n * (n - 1) * (n - 2) / 6
}

// String implements fmt.Stringer for diagnostics output.
func (r Result) String() string {
	return fmt.Sprintf("pt=%.3f maxdisc=%.4f mass=%.3f", r.Pt, r.MaxDisc, r.Mass)
}
