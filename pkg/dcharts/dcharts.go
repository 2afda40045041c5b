// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dcharts defines the public interface for go-dcharts: fetching
// divisional and ashtakavarga charts from Prokerala, parsing their SVGs into
// sign tables and persisting the artifacts per user.
package dcharts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/petar-djukic/go-dcharts/internal/provider"
	"github.com/petar-djukic/go-dcharts/internal/store"
	"github.com/petar-djukic/go-dcharts/internal/svgchart"
	"github.com/petar-djukic/go-dcharts/pkg/types"
)

// Error types for the dcharts API. Match them with errors.Is.
var (
	ErrInvalidConfig     = errors.New("invalid config")
	ErrProviderFailure   = provider.ErrProviderFailure
	ErrPersistence       = store.ErrPersistence
	ErrMalformedDocument = svgchart.ErrMalformedDocument
)

// Config configures a Service. Fields carry mapstructure tags so a viper
// configuration unmarshals into it directly.
type Config struct {
	ClientID     string        `mapstructure:"client_id"`     // Prokerala client ID (required unless Fetcher is set)
	ClientSecret string        `mapstructure:"client_secret"` // Prokerala client secret (required unless Fetcher is set)
	BaseURL      string        `mapstructure:"base_url"`      // Provider base URL (default https://api.prokerala.com)
	TokenURL     string        `mapstructure:"token_url"`     // OAuth2 token URL (default BaseURL + /token)
	Ayanamsa     int           `mapstructure:"ayanamsa"`      // Ayanamsa sent with every request (default 1, Lahiri)
	Timeout      time.Duration `mapstructure:"timeout"`       // Per provider call (default 60s)

	SaveDir             string `mapstructure:"save_dir"`              // Divisional chart root (default ./charts)
	AshtakavargaSaveDir string `mapstructure:"ashtakavarga_save_dir"` // Ashtakavarga root (default ./ashtakavarga_charts)
	GitArchive          bool   `mapstructure:"git_archive"`           // Commit artifacts in a git repository per save root

	S3Bucket   string `mapstructure:"s3_bucket"`   // Store artifacts in S3 instead of on disk
	S3Prefix   string `mapstructure:"s3_prefix"`   // Key prefix inside the bucket
	S3Region   string `mapstructure:"s3_region"`   // AWS region for the bucket
	AWSProfile string `mapstructure:"aws_profile"` // AWS credential profile

	Parallelism int `mapstructure:"parallelism"` // Concurrent fetches in the batch (default 4)

	Logger  *slog.Logger `mapstructure:"-"` // Structured logger (default discards)
	Fetcher Fetcher      `mapstructure:"-"` // Replaces the Prokerala client, e.g. in tests
}

// Fetcher renders one chart as SVG bytes.
type Fetcher interface {
	FetchSVG(ctx context.Context, q types.ChartQuery) ([]byte, error)
}

// Service runs chart operations for a person. Requests are validated and
// normalized first; invalid input returns a *types.ValidationError before
// any provider call.
type Service interface {
	// All fetches and parses every divisional chart. Per-chart failures are
	// annotated in the summary and never abort the batch.
	All(ctx context.Context, req types.ChartRequest) (*types.AllChartsResult, error)

	// Chart fetches and parses the divisional chart named by req.ChartType.
	Chart(ctx context.Context, req types.ChartRequest) (*types.ChartResult, error)

	// Ashtakavarga fetches and parses the sarvashtakavarga point totals.
	Ashtakavarga(ctx context.Context, req types.ChartRequest) (*types.AshtakavargaResult, error)
}

// ParseChart parses a planet-placement chart SVG into twelve sign rows.
// It needs no provider and performs no I/O.
func ParseChart(svg []byte) ([]types.PlanetRow, error) {
	return svgchart.ParseChart(svg)
}

// ParseAshtakavarga parses a sarvashtakavarga chart SVG into per-sign
// totals and their grand total.
func ParseAshtakavarga(svg []byte) (types.PointTotals, error) {
	return svgchart.ParseAshtakavarga(svg)
}
