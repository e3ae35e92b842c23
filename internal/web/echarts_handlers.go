package web

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hepworks/trijet.report/internal/histogram"
	"github.com/hepworks/trijet.report/internal/httputil"
	"github.com/hepworks/trijet.report/internal/trijet"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// handleRunChart is the shared implementation behind the three debug
// chart routes: load the run's stored results, fill the requested
// observable into its standard binning, and render an HTML bar chart.
func (s *Server) handleRunChart(w http.ResponseWriter, r *http.Request, title string, hist *histogram.Histogram, pick func(trijet.Result) float64) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	runID := r.URL.Query().Get("run_id")
	if runID == "" {
		httputil.BadRequest(w, "missing run_id parameter")
		return
	}

	run, err := s.store.GetRun(runID)
	if errors.Is(err, sql.ErrNoRows) {
		httputil.NotFound(w, "no such run: "+runID)
		return
	}
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	results, err := s.store.ListResults(runID)
	if err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, res := range results {
		hist.Fill(pick(res))
	}

	x := make([]string, len(hist.Counts))
	y := make([]opts.BarData, len(hist.Counts))
	for i, n := range hist.Counts {
		x[i] = fmt.Sprintf("%.4g", hist.BinCenter(i))
		y[i] = opts.BarData{Value: n}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "720px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("dataset=%s events=%d created=%s", run.Dataset, run.EventCount, time.Unix(run.CreatedAt, 0).UTC().Format(time.RFC3339)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries(hist.Label, y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		)

	page := components.NewPage()
	page.SetAssetsHost(echartsAssetsPrefix)
	page.AddCharts(bar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.WriteJSONError(w, http.StatusInternalServerError, fmt.Sprintf("render error: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) ptChartHandler(w http.ResponseWriter, r *http.Request) {
	hist, _ := histogram.NewRegular("Trijet pT [GeV]", histogram.PtBins, histogram.PtLo, histogram.PtHi)
	s.handleRunChart(w, r, "Trijet pT", hist, func(res trijet.Result) float64 { return res.Pt })
}

func (s *Server) discChartHandler(w http.ResponseWriter, r *http.Request) {
	hist, _ := histogram.NewRegular("Max b-tag discriminant", histogram.DiscBins, histogram.DiscLo, histogram.DiscHi)
	s.handleRunChart(w, r, "Max b-tag discriminant", hist, func(res trijet.Result) float64 { return res.MaxDisc })
}

func (s *Server) massChartHandler(w http.ResponseWriter, r *http.Request) {
	hist, _ := histogram.NewRegular("Trijet mass [GeV]", histogram.MassBins, histogram.MassLo, histogram.MassHi)
	s.handleRunChart(w, r, "Trijet mass", hist, func(res trijet.Result) float64 { return res.Mass })
}
