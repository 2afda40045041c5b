// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package svgchart

import (
	"bytes"
	"strconv"
	"testing"

	svg "github.com/ajstarks/svgo"
)

const (
	cellSize = 100
	stroke   = "stroke:black"
)

// southIndian gives the fixed cell of each sign in a south-Indian chart.
var southIndian = map[int]Cell{
	12: {0, 0}, 1: {1, 0}, 2: {2, 0}, 3: {3, 0},
	11: {0, 1}, 4: {3, 1},
	10: {0, 2}, 5: {3, 2},
	9: {0, 3}, 8: {1, 3}, 7: {2, 3}, 6: {3, 3},
}

// cellText is the list of tokens drawn inside one cell.
type cellText struct {
	cell  Cell
	texts []string
}

// labeled returns the tokens for a sign cell: its number label first, then
// the extra tokens.
func labeled(no int, extra ...string) cellText {
	return cellText{
		cell:  southIndian[no],
		texts: append([]string{strconv.Itoa(no)}, extra...),
	}
}

// fullChart labels all twelve sign cells and adds the extra tokens per sign.
func fullChart(extra map[int][]string) []cellText {
	cells := make([]cellText, 0, 12)
	for no := 1; no <= 12; no++ {
		cells = append(cells, labeled(no, extra[no]...))
	}
	return cells
}

// chartSVG draws a 4x4 south-Indian frame (the centre 2x2 block left open)
// plus a diagonal decoration, and writes each cell's tokens inside it.
func chartSVG(t *testing.T, cells []cellText) []byte {
	t.Helper()

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(4*cellSize, 4*cellSize)

	for i := 0; i <= 4; i++ {
		p := i * cellSize
		if i == 2 {
			canvas.Line(p, 0, p, cellSize, stroke)
			canvas.Line(p, 3*cellSize, p, 4*cellSize, stroke)
			canvas.Line(0, p, cellSize, p, stroke)
			canvas.Line(3*cellSize, p, 4*cellSize, p, stroke)
			continue
		}
		canvas.Line(p, 0, p, 4*cellSize, stroke)
		canvas.Line(0, p, 4*cellSize, p, stroke)
	}
	canvas.Line(cellSize, cellSize, 3*cellSize, 3*cellSize, stroke)

	for _, c := range cells {
		x0, y0 := c.cell.Col*cellSize, c.cell.Row*cellSize
		for i, s := range c.texts {
			canvas.Text(x0+10+(i%4)*20, y0+20+(i/4)*20, s)
		}
	}

	canvas.End()
	return buf.Bytes()
}
