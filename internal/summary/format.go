// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package summary renders parsed chart tables as human-readable one-liners.
package summary

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

const totalsHeader = "ASHTAKAVARGA TOTALS"

// Header returns the first summary line of a planet chart, e.g. "DCHART=RASI".
func Header(chartType string) string {
	return "DCHART=" + strings.ToUpper(chartType)
}

// Annotate returns a header line carrying a failure note, e.g.
// "DCHART=RASI (save error: disk full)".
func Annotate(chartType, stage string, err error) string {
	return fmt.Sprintf("%s (%s: %v)", Header(chartType), stage, err)
}

// PlanetLines renders a planet chart as its header followed by one line per
// occupied sign, e.g. "Jupiter, Saturn in Aries". Signs without occupants
// produce no line.
func PlanetLines(chartType string, rows []types.PlanetRow) []string {
	out := []string{Header(chartType)}
	for _, row := range rows {
		if len(row.Planets) == 0 {
			continue
		}
		names := make([]string, len(row.Planets))
		for i, p := range row.Planets {
			names[i] = occupantName(p)
		}
		out = append(out, fmt.Sprintf("%s in %s", strings.Join(names, ", "), row.SignName))
	}
	return out
}

// AnnotateTotals returns the totals header carrying a failure note.
func AnnotateTotals(stage string, err error) string {
	return fmt.Sprintf("%s (%s: %v)", totalsHeader, stage, err)
}

// TotalLines renders ashtakavarga totals: a header, "<Sign>: <total>" for
// every row, and a trailing grand total.
func TotalLines(rows []types.TotalRow) []string {
	out := make([]string, 0, len(rows)+2)
	out = append(out, totalsHeader)

	grand := 0
	for _, r := range rows {
		out = append(out, fmt.Sprintf("%s: %d", r.SignName, r.Total))
		grand += r.Total
	}
	out = append(out, fmt.Sprintf("Grand Total: %d", grand))
	return out
}

// Text joins summary lines into a newline-separated block.
func Text(lines []string) string {
	return strings.Join(lines, "\n")
}

// occupantName strips the abbreviation suffix: "Jupiter (Ju)" -> "Jupiter".
func occupantName(label string) string {
	name, _, _ := strings.Cut(label, " (")
	return name
}
