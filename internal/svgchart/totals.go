// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package svgchart

import (
	"slices"
	"strconv"
	"strings"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

// maxItemizedPoints is the largest value a single ashtakavarga contribution
// can take. A larger number in a cell is a pre-rendered total.
const maxItemizedPoints = 8

// ParseAshtakavarga parses a sarvashtakavarga chart SVG into per-sign point
// totals.
func ParseAshtakavarga(svg []byte) (types.PointTotals, error) {
	doc, err := Parse(svg)
	if err != nil {
		return types.PointTotals{}, err
	}
	return doc.PointTotals(), nil
}

// PointTotals sums the numbers rendered inside each numbered cell.
//
// A number equal to the cell's own sign label is taken to be the label and
// skipped. When a cell holds a value above maxItemizedPoints, that value is
// the total; otherwise the in-range values are summed. If several cells
// carry the same sign label, the sign takes the largest of their totals.
// A drawing without a usable grid totals zero everywhere.
func (d *Document) PointTotals() types.PointTotals {
	var bySign map[int]int
	if grid := NewGrid(d.Lines); grid.Valid() {
		bySign = d.signTotals(grid)
	}

	result := types.PointTotals{Rows: make([]types.TotalRow, 0, types.SignCount)}
	for no := 1; no <= types.SignCount; no++ {
		result.Rows = append(result.Rows, types.TotalRow{
			No:       no,
			SignName: types.SignName(no),
			Total:    bySign[no],
		})
		result.GrandTotal += bySign[no]
	}
	return result
}

// signTotals resolves the total of every labeled cell to its sign.
func (d *Document) signTotals(grid Grid) map[int]int {
	signs := d.signCells(grid)

	contributions := make(map[Cell][]int)
	for _, n := range d.Texts {
		v, ok := integerValue(n.Content)
		if !ok {
			continue
		}
		cell, ok := grid.Locate(n.X, n.Y)
		if !ok {
			continue
		}
		if no, labeled := signs[cell]; labeled && no == v {
			continue
		}
		contributions[cell] = append(contributions[cell], v)
	}

	bySign := make(map[int]int, types.SignCount)
	for cell, vals := range contributions {
		no, ok := signs[cell]
		if !ok || len(vals) == 0 {
			continue
		}
		bySign[no] = max(bySign[no], cellTotal(vals))
	}
	return bySign
}

// cellTotal reduces one cell's numbers to its point total.
func cellTotal(vals []int) int {
	if m := slices.Max(vals); m > maxItemizedPoints {
		return m
	}
	sum := 0
	for _, v := range vals {
		if v >= 0 && v <= maxItemizedPoints {
			sum += v
		}
	}
	return sum
}

// integerValue parses an optionally negative decimal integer token.
func integerValue(s string) (int, bool) {
	if !isDigits(strings.TrimPrefix(s, "-")) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
