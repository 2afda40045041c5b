// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/petar-djukic/go-dcharts/pkg/dcharts"
)

// loadConfig unmarshals the viper settings into a dcharts.Config.
func loadConfig(log *slog.Logger) (dcharts.Config, error) {
	var cfg dcharts.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	cfg.Logger = log
	return cfg, nil
}

// newService builds the chart service from the current configuration.
func newService(ctx context.Context, log *slog.Logger) (dcharts.Service, error) {
	cfg, err := loadConfig(log)
	if err != nil {
		return nil, err
	}
	svc, err := dcharts.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	return svc, nil
}

// newLogger builds the process logger from log_level and log_format.
func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log_level"))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(viper.GetString("log_format"), "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// allowOrigins splits the comma-separated ALLOW_ORIGINS setting.
func allowOrigins() []string {
	var out []string
	for _, o := range strings.Split(viper.GetString("allow_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
