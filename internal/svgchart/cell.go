// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package svgchart

import "fmt"

// Cell identifies one rectangle of a Grid by zero-based column and row.
type Cell struct {
	Col int
	Row int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Locate returns the cell containing the point. Bounds are inclusive on
// both ends and scanned in ascending order, so a point on a line shared by
// two cells belongs to the lower-indexed one. Points outside the grid
// resolve to no cell.
func (g Grid) Locate(x, y float64) (Cell, bool) {
	col, ok := bracket(x, g.Xs)
	if !ok {
		return Cell{}, false
	}
	row, ok := bracket(y, g.Ys)
	if !ok {
		return Cell{}, false
	}
	return Cell{Col: col, Row: row}, true
}

// bracket returns the first i with coords[i] <= v <= coords[i+1].
func bracket(v float64, coords []float64) (int, bool) {
	for i := 0; i+1 < len(coords); i++ {
		if coords[i] <= v && v <= coords[i+1] {
			return i, true
		}
	}
	return 0, false
}
