// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-dcharts/pkg/dcharts"
	"github.com/petar-djukic/go-dcharts/pkg/types"
)

// newFetchCmd creates the "fetch" command group.
func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and parse charts from the provider",
	}

	flags := cmd.PersistentFlags()
	flags.String("name", "", "Person name")
	flags.String("user-id", "", "User identifier (required)")
	flags.String("phone", "", "Phone number")
	flags.String("dob", "", "Date of birth, YYYY-MM-DD (required)")
	flags.String("tob", "", "Time of birth, HH:MM or HH:MM:SS (required)")
	flags.String("offset", "+05:30", "UTC offset of the birth place, e.g. +05:30")
	flags.Float64("lat", 0, "Latitude of the birth place (required)")
	flags.Float64("lon", 0, "Longitude of the birth place (required)")
	flags.String("style", types.StyleSouthIndian, "Chart style")
	flags.StringP("format", "f", formatJSON, "Output format: json, yaml or text")

	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Fetch and parse every divisional chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, func(ctx context.Context, svc dcharts.Service, req types.ChartRequest) (any, []string, error) {
				res, err := svc.All(ctx, req)
				if err != nil {
					return nil, nil, err
				}
				return res, res.Simple, nil
			})
		},
	})

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Fetch and parse one divisional chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, func(ctx context.Context, svc dcharts.Service, req types.ChartRequest) (any, []string, error) {
				req.ChartType, _ = cmd.Flags().GetString("chart")
				res, err := svc.Chart(ctx, req)
				if err != nil {
					return nil, nil, err
				}
				return res, res.Simple, nil
			})
		},
	}
	chartCmd.Flags().String("chart", "rasi", "Divisional chart type")
	cmd.AddCommand(chartCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "ashtakavarga",
		Short: "Fetch and parse the sarvashtakavarga chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, func(ctx context.Context, svc dcharts.Service, req types.ChartRequest) (any, []string, error) {
				res, err := svc.Ashtakavarga(ctx, req)
				if err != nil {
					return nil, nil, err
				}
				return res, res.Simple, nil
			})
		},
	})

	return cmd
}

type fetchFunc func(ctx context.Context, svc dcharts.Service, req types.ChartRequest) (any, []string, error)

// runFetch builds the request from flags, runs op and prints the result.
func runFetch(cmd *cobra.Command, op fetchFunc) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	svc, err := newService(ctx, newLogger())
	if err != nil {
		return err
	}

	res, lines, err := op(ctx, svc, req)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), format, res, lines)
}

func requestFromFlags(cmd *cobra.Command) (types.ChartRequest, error) {
	var req types.ChartRequest
	flags := cmd.Flags()

	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"name", &req.Name},
		{"user-id", &req.UserID},
		{"phone", &req.PhoneNumber},
		{"dob", &req.DOB},
		{"tob", &req.TOB},
		{"offset", &req.Offset},
		{"style", &req.ChartStyle},
	} {
		v, err := flags.GetString(f.name)
		if err != nil {
			return req, err
		}
		*f.dst = v
	}

	// Unset coordinates stay nil and fail validation.
	for _, f := range []struct {
		name string
		dst  **float64
	}{
		{"lat", &req.Lat},
		{"lon", &req.Lon},
	} {
		if !flags.Changed(f.name) {
			continue
		}
		v, err := flags.GetFloat64(f.name)
		if err != nil {
			return req, err
		}
		*f.dst = &v
	}
	return req, nil
}
