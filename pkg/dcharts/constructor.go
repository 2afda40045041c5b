// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package dcharts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/petar-djukic/go-dcharts/internal/charts"
	"github.com/petar-djukic/go-dcharts/internal/provider"
	"github.com/petar-djukic/go-dcharts/internal/store"
)

const (
	defaultSaveDir             = "./charts"
	defaultAshtakavargaSaveDir = "./ashtakavarga_charts"
	defaultParallelism         = 4
	maxParallelism             = 20

	s3ChartsPrefix       = "dcharts"
	s3AshtakavargaPrefix = "ashtakavarga"
)

// New validates the config, builds the provider client and the stores, and
// returns a ready-to-use Service.
func New(ctx context.Context, cfg Config) (Service, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	var fetcher provider.Fetcher
	if cfg.Fetcher != nil {
		fetcher = cfg.Fetcher
	} else {
		client, err := provider.NewClient(ctx, provider.ClientConfig{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			BaseURL:      cfg.BaseURL,
			TokenURL:     cfg.TokenURL,
			Ayanamsa:     cfg.Ayanamsa,
			Timeout:      cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		fetcher = client
	}

	chartStore, ashtakavargaStore, err := newStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	runner := charts.NewRunner(charts.Deps{
		Fetcher:           fetcher,
		ChartStore:        chartStore,
		AshtakavargaStore: ashtakavargaStore,
		Logger:            cfg.Logger,
		Parallelism:       cfg.Parallelism,
	})
	return runner, nil
}

// newStores picks the persistence backend: S3 when a bucket is set, a git
// archive when requested, plain directories otherwise.
func newStores(ctx context.Context, cfg Config) (store.Store, store.Store, error) {
	switch {
	case cfg.S3Bucket != "":
		prefix := strings.Trim(cfg.S3Prefix, "/")
		s3cfg := func(sub string) store.S3Config {
			return store.S3Config{
				Bucket:  cfg.S3Bucket,
				Prefix:  path.Join(prefix, sub),
				Region:  cfg.S3Region,
				Profile: cfg.AWSProfile,
			}
		}
		dcharts, err := store.NewS3Store(ctx, s3cfg(s3ChartsPrefix))
		if err != nil {
			return nil, nil, err
		}
		sav, err := store.NewS3Store(ctx, s3cfg(s3AshtakavargaPrefix))
		if err != nil {
			return nil, nil, err
		}
		return dcharts, sav, nil

	case cfg.GitArchive:
		dcharts, err := store.OpenGitStore(cfg.SaveDir)
		if err != nil {
			return nil, nil, err
		}
		sav, err := store.OpenGitStore(cfg.AshtakavargaSaveDir)
		if err != nil {
			return nil, nil, err
		}
		return dcharts, sav, nil

	default:
		return store.NewOSFileStore(cfg.SaveDir), store.NewOSFileStore(cfg.AshtakavargaSaveDir), nil
	}
}

// validateConfig checks that required fields are present and in range.
func validateConfig(cfg Config) error {
	if cfg.Fetcher == nil && (cfg.ClientID == "" || cfg.ClientSecret == "") {
		return fmt.Errorf("ClientID and ClientSecret are required")
	}
	if cfg.Parallelism < 0 || cfg.Parallelism > maxParallelism {
		return fmt.Errorf("Parallelism must be within [0, %d]", maxParallelism)
	}
	if cfg.Ayanamsa < 0 {
		return fmt.Errorf("Ayanamsa must not be negative")
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("Timeout must not be negative")
	}
	if cfg.GitArchive && cfg.S3Bucket != "" {
		return fmt.Errorf("GitArchive and S3Bucket are mutually exclusive")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.SaveDir == "" {
		cfg.SaveDir = defaultSaveDir
	}
	if cfg.AshtakavargaSaveDir == "" {
		cfg.AshtakavargaSaveDir = defaultAshtakavargaSaveDir
	}
	if cfg.Parallelism == 0 {
		cfg.Parallelism = defaultParallelism
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
