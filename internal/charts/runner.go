// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package charts implements the Runner orchestrator: it fetches chart SVGs
// from the provider, persists them, parses them and assembles summaries.
package charts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/sourcegraph/conc/iter"

	"github.com/petar-djukic/go-dcharts/internal/provider"
	"github.com/petar-djukic/go-dcharts/internal/store"
	"github.com/petar-djukic/go-dcharts/internal/summary"
	"github.com/petar-djukic/go-dcharts/internal/svgchart"
	"github.com/petar-djukic/go-dcharts/pkg/types"
)

const defaultParallelism = 4

// Summary annotation stages.
const (
	stageFetch = "error"
	stageSave  = "save error"
	stageParse = "parse error"
)

// Deps holds injected dependencies for the runner.
type Deps struct {
	Fetcher           provider.Fetcher
	ChartStore        store.Store // Divisional chart artifacts; nil disables persistence
	AshtakavargaStore store.Store // Sarvashtakavarga SVGs; nil disables persistence
	Logger            *slog.Logger
	Parallelism       int      // Concurrent chart fetches in a batch (default 4)
	ChartTypes        []string // Batch chart kinds (default: every divisional chart)
}

// Runner orchestrates the chart operations.
type Runner struct {
	deps Deps
	log  *slog.Logger
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Parallelism < 1 {
		deps.Parallelism = defaultParallelism
	}
	if len(deps.ChartTypes) == 0 {
		deps.ChartTypes = types.DChartTypes()
	}
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{deps: deps, log: log}
}

// chartOutcome is what processing one chart kind contributes to a batch.
type chartOutcome struct {
	rows     []types.PlanetRow
	lines    []string
	warnings []string
}

// All fetches, stores and parses every configured chart kind. Provider,
// persistence and parse failures of a single chart are recorded in its
// summary lines and never abort the batch. Results keep chart-kind order.
func (r *Runner) All(ctx context.Context, req types.ChartRequest) (*types.AllChartsResult, error) {
	if err := req.Normalize(types.PlanetChartStyles, false); err != nil {
		return nil, err
	}

	mapper := iter.Mapper[string, chartOutcome]{MaxGoroutines: r.deps.Parallelism}
	outcomes := mapper.Map(r.deps.ChartTypes, func(kind *string) chartOutcome {
		return r.processChart(ctx, req, *kind)
	})

	result := &types.AllChartsResult{
		Person:     req.Person,
		ChartStyle: req.ChartStyle,
		DCharts:    make(types.ChartSet, 0, len(outcomes)),
		Simple:     []string{},
		Files:      map[string]string{},
		Warnings:   []string{},
	}
	for i, out := range outcomes {
		result.DCharts = append(result.DCharts, types.NamedChart{ChartType: r.deps.ChartTypes[i], Rows: out.rows})
		result.Simple = append(result.Simple, out.lines...)
		result.Warnings = append(result.Warnings, out.warnings...)
	}

	summaryLoc, err := r.put(ctx, r.deps.ChartStore, store.SummaryKey(req.Person), []byte(summary.Text(result.Simple)))
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.Files[types.FileSummaryText] = summaryLoc

	jsonLoc := ""
	data, err := json.MarshalIndent(result.DCharts, "", "  ")
	if err == nil {
		jsonLoc, err = r.put(ctx, r.deps.ChartStore, store.ChartsJSONKey(req.Person), data)
	}
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.Files[types.FileChartsJSON] = jsonLoc

	if err := r.commit(ctx, r.deps.ChartStore, fmt.Sprintf("dcharts for %s", req.UserID)); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}

	r.log.Info("batch complete",
		"user_id", req.UserID,
		"charts", len(result.DCharts),
		"warnings", len(result.Warnings))
	return result, nil
}

// processChart runs fetch, store, parse and summary for one chart kind.
func (r *Runner) processChart(ctx context.Context, req types.ChartRequest, kind string) chartOutcome {
	out := chartOutcome{rows: []types.PlanetRow{}}

	svg, err := r.deps.Fetcher.FetchSVG(ctx, query(req, kind))
	if err != nil {
		r.log.Warn("chart fetch failed", "chart", kind, "user_id", req.UserID, "err", err)
		out.lines = append(out.lines, summary.Annotate(kind, stageFetch, err))
		out.warnings = append(out.warnings, fmt.Sprintf("%s: %v", kind, err))
		return out
	}

	key := store.ChartKey(req.Person, req.Birth, kind, req.ChartStyle)
	if _, err := r.put(ctx, r.deps.ChartStore, key, svg); err != nil {
		r.log.Warn("chart save failed", "chart", kind, "user_id", req.UserID, "err", err)
		out.lines = append(out.lines, summary.Annotate(kind, stageSave, err))
		out.warnings = append(out.warnings, fmt.Sprintf("%s: %v", kind, err))
	}

	rows, err := svgchart.ParseChart(svg)
	if err != nil {
		r.log.Warn("chart parse failed", "chart", kind, "user_id", req.UserID, "err", err)
		out.lines = append(out.lines, summary.Annotate(kind, stageParse, err))
		out.warnings = append(out.warnings, fmt.Sprintf("%s: %v", kind, err))
		rows = []types.PlanetRow{}
	}

	out.rows = rows
	out.lines = append(out.lines, summary.PlanetLines(kind, rows)...)
	r.log.Debug("chart processed", "chart", kind, "user_id", req.UserID)
	return out
}

// Chart fetches, stores and parses a single divisional chart. A provider
// failure is returned as an error; persistence and parse failures are
// reported in the result.
func (r *Runner) Chart(ctx context.Context, req types.ChartRequest) (*types.ChartResult, error) {
	if err := req.Normalize(types.PlanetChartStyles, true); err != nil {
		return nil, err
	}

	svg, err := r.deps.Fetcher.FetchSVG(ctx, query(req, req.ChartType))
	if err != nil {
		r.log.Warn("chart fetch failed", "chart", req.ChartType, "user_id", req.UserID, "err", err)
		return nil, err
	}

	result := &types.ChartResult{
		Person:     req.Person,
		DChart:     req.ChartType,
		ChartStyle: req.ChartStyle,
		ChartCells: []types.PlanetRow{},
		Simple:     []string{},
		Warnings:   []string{},
	}

	key := store.ChartKey(req.Person, req.Birth, req.ChartType, req.ChartStyle)
	loc, err := r.put(ctx, r.deps.ChartStore, key, svg)
	if err != nil {
		result.Simple = append(result.Simple, summary.Annotate(req.ChartType, stageSave, err))
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.FilePath = loc

	rows, err := svgchart.ParseChart(svg)
	if err != nil {
		result.Simple = append(result.Simple, summary.Annotate(req.ChartType, stageParse, err))
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.ChartCells = rows
	}
	result.Simple = append(result.Simple, summary.PlanetLines(req.ChartType, result.ChartCells)...)

	if err := r.commit(ctx, r.deps.ChartStore, fmt.Sprintf("%s for %s", req.ChartType, req.UserID)); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	return result, nil
}

// Ashtakavarga fetches, stores and parses the sarvashtakavarga chart.
func (r *Runner) Ashtakavarga(ctx context.Context, req types.ChartRequest) (*types.AshtakavargaResult, error) {
	if err := req.Normalize(types.AshtakavargaStyles, false); err != nil {
		return nil, err
	}

	svg, err := r.deps.Fetcher.FetchSVG(ctx, query(req, types.AshtakavargaChartType))
	if err != nil {
		r.log.Warn("ashtakavarga fetch failed", "user_id", req.UserID, "err", err)
		return nil, err
	}

	result := &types.AshtakavargaResult{
		Person:     req.Person,
		ChartStyle: req.ChartStyle,
		Totals:     []types.TotalRow{},
		Simple:     []string{},
		Warnings:   []string{},
	}

	key := store.AshtakavargaKey(req.Person, req.Birth, req.ChartStyle)
	loc, err := r.put(ctx, r.deps.AshtakavargaStore, key, svg)
	if err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	result.FilePath = loc

	totals, err := svgchart.ParseAshtakavarga(svg)
	if err != nil {
		r.log.Warn("ashtakavarga parse failed", "user_id", req.UserID, "err", err)
		result.Simple = append(result.Simple, summary.AnnotateTotals(stageParse, err))
		result.Warnings = append(result.Warnings, err.Error())
	} else {
		result.Totals = totals.Rows
		result.GrandTotal = totals.GrandTotal
		result.Simple = summary.TotalLines(totals.Rows)
	}

	if err := r.commit(ctx, r.deps.AshtakavargaStore, fmt.Sprintf("ashtakavarga for %s", req.UserID)); err != nil {
		result.Warnings = append(result.Warnings, err.Error())
	}
	return result, nil
}

func query(req types.ChartRequest, kind string) types.ChartQuery {
	return types.ChartQuery{ChartType: kind, ChartStyle: req.ChartStyle, Birth: req.Birth}
}

// put writes to s, or does nothing when persistence is disabled.
func (r *Runner) put(ctx context.Context, s store.Store, key string, data []byte) (string, error) {
	if s == nil {
		return "", nil
	}
	return s.Put(ctx, key, data)
}

// commit records a request's artifacts when the store supports it.
func (r *Runner) commit(ctx context.Context, s store.Store, message string) error {
	c, ok := s.(store.Committer)
	if !ok {
		return nil
	}
	if err := c.Commit(ctx, message); err != nil {
		r.log.Warn("archive commit failed", "err", err)
		return err
	}
	return nil
}
