package analysis

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hepworks/trijet.report/internal/dataset"
	"github.com/hepworks/trijet.report/internal/db"
	"github.com/hepworks/trijet.report/internal/trijet"
)

func TestRunEndToEnd(t *testing.T) {
	rn := &Runner{Config: &Config{}}
	src := dataset.NewSynthetic(400, 42)

	out, err := rn.Run(src)
	require.NoError(t, err)

	require.Len(t, out.Results, 400)
	require.Len(t, out.BestPt, 400)
	require.Len(t, out.BestMaxDisc, 400)

	require.Equal(t, 400, out.PtHist.Entries)
	require.Equal(t, 400, out.DiscHist.Entries)
	require.Equal(t, 400, out.MassHist.Entries)

	require.Equal(t, 400, out.PtSummary.Entries)
	// The synthetic discriminant is confined to [-1, 1]; the max over
	// three jets stays there too.
	require.GreaterOrEqual(t, out.DiscSummary.Min, -1.0)
	require.LessOrEqual(t, out.DiscSummary.Max, 1.0)

	require.Equal(t, trijet.DefaultTargetMass, out.Run.TargetMass)
	require.Empty(t, out.Run.RunID, "run must not be assigned an ID without a store")
}

func TestRunDeterministicAcrossInvocations(t *testing.T) {
	rn := &Runner{Config: &Config{}}

	a, err := rn.Run(dataset.NewSynthetic(150, 9))
	require.NoError(t, err)
	b, err := rn.Run(dataset.NewSynthetic(150, 9))
	require.NoError(t, err)

	if diff := cmp.Diff(a.Results, b.Results); diff != "" {
		t.Errorf("repeated runs diverged (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.PtHist, b.PtHist); diff != "" {
		t.Errorf("pt histograms diverged (-a +b):\n%s", diff)
	}
}

func TestRunPersistsWhenStoreConfigured(t *testing.T) {
	database, err := db.NewDB(filepath.Join(t.TempDir(), "analysis.db"))
	require.NoError(t, err)
	defer database.Close()

	rn := &Runner{Config: &Config{}, Store: db.NewRunStore(database)}
	out, err := rn.Run(dataset.NewSynthetic(50, 3))
	require.NoError(t, err)
	require.NotEmpty(t, out.Run.RunID)

	stored, err := rn.Store.ListResults(out.Run.RunID)
	require.NoError(t, err)
	if diff := cmp.Diff(out.Results, stored); diff != "" {
		t.Errorf("stored results differ from computed (-computed +stored):\n%s", diff)
	}
}

func TestRunPropagatesPreconditionViolation(t *testing.T) {
	rn := &Runner{Config: &Config{}}
	src := &brokenSource{}

	_, err := rn.Run(src)
	require.Error(t, err)
	var insufficient *trijet.InsufficientJetsError
	require.True(t, errors.As(err, &insufficient))
	require.Equal(t, 1, insufficient.EventIndex)
}

// brokenSource hands out a batch that violates the three-jet contract,
// bypassing dataset validation the way a buggy upstream would.
type brokenSource struct{}

func (s *brokenSource) Name() string { return "broken" }

func (s *brokenSource) Batch() (*dataset.Batch, error) {
	good, err := dataset.NewSynthetic(3, 1).Batch()
	if err != nil {
		return nil, err
	}
	good.Events[1].Jets = good.Events[1].Jets[:2]
	return good, nil
}

func TestWritePlots(t *testing.T) {
	plotDir := t.TempDir()
	cfg := &Config{PlotDir: &plotDir}
	rn := &Runner{Config: cfg}

	out, err := rn.Run(dataset.NewSynthetic(30, 5))
	require.NoError(t, err)

	dir, err := rn.WritePlots(out)
	require.NoError(t, err)
	require.DirExists(t, dir)
}

func TestConfigOverrides(t *testing.T) {
	target := 90.0
	bins := 25
	cfg := &Config{TargetMass: &target, PtBins: &bins}
	require.NoError(t, cfg.Validate())

	rn := &Runner{Config: cfg}
	out, err := rn.Run(dataset.NewSynthetic(20, 8))
	require.NoError(t, err)
	require.Equal(t, 90.0, out.Run.TargetMass)
	require.Len(t, out.PtHist.Counts, 25)
}

func TestConfigValidation(t *testing.T) {
	bad := -1.0
	cfg := &Config{TargetMass: &bad}
	require.Error(t, cfg.Validate())

	zero := 0
	cfg = &Config{PtBins: &zero}
	require.Error(t, cfg.Validate())
}
