// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package svgchart

import (
	"encoding/xml"
	"math"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// coordTolerance is the distance under which two coordinates are the same.
const coordTolerance = 1e-3

// GridLine is a straight line segment from the drawing.
type GridLine struct {
	X1, Y1, X2, Y2 float64
}

// Vertical reports whether the segment runs along the y axis.
func (l GridLine) Vertical() bool {
	return math.Abs(l.X1-l.X2) < coordTolerance
}

// Horizontal reports whether the segment runs along the x axis.
func (l GridLine) Horizontal() bool {
	return math.Abs(l.Y1-l.Y2) < coordTolerance
}

// Grid is the implicit cell grid formed by the distinct x positions of the
// vertical lines and the distinct y positions of the horizontal lines. Both
// sequences are ascending.
type Grid struct {
	Xs []float64
	Ys []float64
}

// NewGrid indexes the axis-aligned lines into a Grid. Diagonal segments are
// ignored. Coordinates are rounded to three decimals before deduplication.
func NewGrid(lines []GridLine) Grid {
	xs := treeset.NewWith(utils.Float64Comparator)
	ys := treeset.NewWith(utils.Float64Comparator)

	for _, l := range lines {
		if l.Vertical() {
			xs.Add(roundCoord(l.X1))
		}
		if l.Horizontal() {
			ys.Add(roundCoord(l.Y1))
		}
	}

	return Grid{Xs: setFloats(xs), Ys: setFloats(ys)}
}

// Valid reports whether the grid defines at least one cell.
func (g Grid) Valid() bool {
	return len(g.Xs) >= 2 && len(g.Ys) >= 2
}

func roundCoord(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// setFloats returns the set's values in ascending order.
func setFloats(s *treeset.Set) []float64 {
	out := make([]float64, 0, s.Size())
	for _, v := range s.Values() {
		out = append(out, v.(float64))
	}
	return out
}

// lineFromAttrs builds a GridLine from x1/y1/x2/y2. Lines with a missing or
// unparsable endpoint coordinate are skipped.
func lineFromAttrs(attrs []xml.Attr) (GridLine, bool) {
	var l GridLine
	var ok bool
	if l.X1, ok = floatAttr(attrs, "x1"); !ok {
		return GridLine{}, false
	}
	if l.Y1, ok = floatAttr(attrs, "y1"); !ok {
		return GridLine{}, false
	}
	if l.X2, ok = floatAttr(attrs, "x2"); !ok {
		return GridLine{}, false
	}
	if l.Y2, ok = floatAttr(attrs, "y2"); !ok {
		return GridLine{}, false
	}
	return l, true
}
