// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-dcharts/internal/summary"
	"github.com/petar-djukic/go-dcharts/pkg/dcharts"
	"github.com/petar-djukic/go-dcharts/pkg/types"
)

// Chart families accepted by --kind.
const (
	kindPlanets      = "planets"
	kindAshtakavarga = "ashtakavarga"
)

// planetOutput is the parse result for a planet-placement chart.
type planetOutput struct {
	Chart  string            `json:"chart" yaml:"chart"`
	Rows   []types.PlanetRow `json:"rows" yaml:"rows"`
	Simple []string          `json:"simple" yaml:"simple"`
}

// totalsOutput is the parse result for an ashtakavarga chart.
type totalsOutput struct {
	types.PointTotals `yaml:",inline"`
	Simple            []string `json:"simple" yaml:"simple"`
}

// newParseCmd creates the "parse" command.
func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE.svg",
		Short: "Parse a chart SVG from disk",
		Long:  "Parse runs the chart parser on a local SVG file. It needs no provider credentials.",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("kind", kindPlanets, "Chart family: planets or ashtakavarga")
	cmd.Flags().String("chart", "rasi", "Chart type used in the summary header")
	cmd.Flags().StringP("format", "f", formatJSON, "Output format: json, yaml or text")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	chart, _ := cmd.Flags().GetString("chart")
	format, _ := cmd.Flags().GetString("format")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	switch kind {
	case kindPlanets:
		rows, err := dcharts.ParseChart(data)
		if err != nil {
			return err
		}
		out := planetOutput{Chart: chart, Rows: rows, Simple: summary.PlanetLines(chart, rows)}
		return writeResult(cmd.OutOrStdout(), format, out, out.Simple)

	case kindAshtakavarga:
		totals, err := dcharts.ParseAshtakavarga(data)
		if err != nil {
			return err
		}
		out := totalsOutput{PointTotals: totals, Simple: summary.TotalLines(totals.Rows)}
		return writeResult(cmd.OutOrStdout(), format, out, out.Simple)

	default:
		return fmt.Errorf("unknown kind %q (want %s or %s)", kind, kindPlanets, kindAshtakavarga)
	}
}
