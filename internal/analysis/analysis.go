// Package analysis orchestrates a full batch run: acquire a validated
// event batch from a source, select the best trijet per event, bin the
// derived observables, compute summary statistics, and optionally
// persist results and write report plots. It owns no domain logic — the
// selection semantics live in trijet, binning in histogram.
package analysis

import (
	"fmt"
	"time"

	"github.com/hepworks/trijet.report/internal/dataset"
	"github.com/hepworks/trijet.report/internal/db"
	"github.com/hepworks/trijet.report/internal/histogram"
	"github.com/hepworks/trijet.report/internal/plotting"
	"github.com/hepworks/trijet.report/internal/trijet"
)

// Output bundles everything one batch run produces.
type Output struct {
	Run     *db.AnalysisRun
	Results []trijet.Result

	BestPt      []float64
	BestMaxDisc []float64

	PtHist   *histogram.Histogram
	DiscHist *histogram.Histogram
	MassHist *histogram.Histogram

	PtSummary   histogram.Summary
	DiscSummary histogram.Summary
}

// Runner executes batch analyses. Store is optional; when nil, runs are
// not persisted.
type Runner struct {
	Config *Config
	Store  *db.RunStore
}

// Run processes the source's batch end to end. The returned Output is
// complete even when persistence is disabled; Run.RunID is empty in
// that case.
func (rn *Runner) Run(src dataset.Source) (*Output, error) {
	start := time.Now()

	batch, err := src.Batch()
	if err != nil {
		return nil, fmt.Errorf("acquire batch from %s: %w", src.Name(), err)
	}
	diagf("batch %s: %d events", batch.Name, batch.Len())

	target := rn.Config.GetTargetMass()
	results, err := trijet.Run(batch, trijet.Options{
		TargetMass: target,
		Workers:    rn.Config.GetWorkers(),
	})
	if err != nil {
		opsf("selection failed for %s: %v", batch.Name, err)
		return nil, err
	}

	out := &Output{Results: results}
	out.BestPt, out.BestMaxDisc = trijet.Columns(results)

	if err := rn.fillHistograms(out); err != nil {
		return nil, err
	}
	out.PtSummary = histogram.Summarize(out.BestPt)
	out.DiscSummary = histogram.Summarize(out.BestMaxDisc)

	out.Run = &db.AnalysisRun{
		Dataset:    batch.Name,
		EventCount: len(results),
		TargetMass: target,
		PtMean:     out.PtSummary.Mean,
		PtStd:      out.PtSummary.StdDev,
		DiscMean:   out.DiscSummary.Mean,
		DiscStd:    out.DiscSummary.StdDev,
	}

	if rn.Store != nil {
		if err := rn.Store.InsertRun(out.Run, results); err != nil {
			return nil, fmt.Errorf("persist run: %w", err)
		}
		opsf("run %s persisted: %d events from %s", out.Run.RunID, len(results), batch.Name)
	}

	diagf("run over %s done in %v: pt mean %.2f GeV, disc mean %.3f",
		batch.Name, time.Since(start).Round(time.Millisecond),
		out.PtSummary.Mean, out.DiscSummary.Mean)
	return out, nil
}

func (rn *Runner) fillHistograms(out *Output) error {
	cfg := rn.Config

	ptBins, ptMax := histogram.PtBins, histogram.PtHi
	if cfg != nil && cfg.PtBins != nil {
		ptBins = *cfg.PtBins
	}
	if cfg != nil && cfg.PtMax != nil {
		ptMax = *cfg.PtMax
	}
	massBins, massMax := histogram.MassBins, histogram.MassHi
	if cfg != nil && cfg.MassBins != nil {
		massBins = *cfg.MassBins
	}
	if cfg != nil && cfg.MassMax != nil {
		massMax = *cfg.MassMax
	}

	var err error
	if out.PtHist, err = histogram.NewRegular("Trijet pT [GeV]", ptBins, histogram.PtLo, ptMax); err != nil {
		return err
	}
	if out.DiscHist, err = histogram.NewRegular("Maximum b-tag discriminant", histogram.DiscBins, histogram.DiscLo, histogram.DiscHi); err != nil {
		return err
	}
	if out.MassHist, err = histogram.NewRegular("Trijet mass [GeV]", massBins, histogram.MassLo, massMax); err != nil {
		return err
	}

	out.PtHist.FillAll(out.BestPt)
	out.DiscHist.FillAll(out.BestMaxDisc)
	out.MassHist.FillAll(trijet.Masses(out.Results))
	return nil
}

// WritePlots renders the run's report plots into a timestamped
// directory under the configured plot base dir and returns its path.
func (rn *Runner) WritePlots(out *Output) (string, error) {
	dir := plotting.MakeOutputDir(rn.Config.GetPlotDir(), out.Run.Dataset)
	report := &plotting.Report{Pt: out.PtHist, Disc: out.DiscHist, Mass: out.MassHist}
	n, err := report.SaveAll(dir)
	if err != nil {
		return "", fmt.Errorf("write plots: %w", err)
	}
	diagf("wrote %d plots to %s", n, dir)
	return dir, nil
}
