// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package svgchart

import (
	"strconv"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

// ParseChart parses a planet-placement (divisional) chart SVG into twelve
// rows, one per sign in ascending sign order.
func ParseChart(svg []byte) ([]types.PlanetRow, error) {
	doc, err := Parse(svg)
	if err != nil {
		return nil, err
	}
	return doc.ChartTable(), nil
}

// ChartTable places every planet abbreviation in the sign whose numbered
// cell contains it. Planets in cells without a sign label are dropped. A
// drawing without a usable grid yields twelve empty rows.
func (d *Document) ChartTable() []types.PlanetRow {
	occupants := make(map[int][]string, types.SignCount)
	if grid := NewGrid(d.Lines); grid.Valid() {
		d.placePlanets(grid, occupants)
	}

	rows := make([]types.PlanetRow, 0, types.SignCount)
	for no := 1; no <= types.SignCount; no++ {
		planets := occupants[no]
		if planets == nil {
			planets = []string{}
		}
		rows = append(rows, types.PlanetRow{
			No:       no,
			SignName: types.SignName(no),
			Planets:  planets,
		})
	}
	return rows
}

// placePlanets appends each planet label to the sign of the cell it sits in,
// in document order.
func (d *Document) placePlanets(grid Grid, occupants map[int][]string) {
	signs := d.signCells(grid)
	for _, n := range d.Texts {
		if _, ok := types.PlanetName(n.Content); !ok {
			continue
		}
		cell, ok := grid.Locate(n.X, n.Y)
		if !ok {
			continue
		}
		no, ok := signs[cell]
		if !ok {
			continue
		}
		occupants[no] = append(occupants[no], types.OccupantLabel(n.Content))
	}
}

// signCells maps each cell holding a sign number label (1..12) to that
// number. The first label seen in a cell wins.
func (d *Document) signCells(grid Grid) map[Cell]int {
	signs := make(map[Cell]int, types.SignCount)
	for _, n := range d.Texts {
		no, ok := signLabel(n.Content)
		if !ok {
			continue
		}
		cell, ok := grid.Locate(n.X, n.Y)
		if !ok {
			continue
		}
		if _, seen := signs[cell]; !seen {
			signs[cell] = no
		}
	}
	return signs
}

// signLabel reports whether s is an unsigned decimal integer in [1, 12].
func signLabel(s string) (int, bool) {
	if !isDigits(s) {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > types.SignCount {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
