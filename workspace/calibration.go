// seehuhn.de/go/armdraw - line drawings with a robot arm
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package workspace

import (
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Grid is a pen height correction table. The workspace is divided into a
// regular grid and each cell stores an offset which is added to the
// lowered pen height, so that the pen pressure stays even on a drawing
// surface which is not perfectly flat.
//
// Rows run along the workspace x axis and columns along the y axis. A
// Grid must not be modified while a job is running. A nil *Grid applies
// no correction.
type Grid struct {
	bounds  rect.Rect
	offsets [][]float64
}

// NewGrid returns a correction grid over bounds. offsets[row][col] is the
// correction for the cell nearest to the normalised position (row, col).
// All rows must have the same, positive, length. The table is copied.
func NewGrid(bounds rect.Rect, offsets [][]float64) (*Grid, error) {
	if err := CheckBounds(bounds); err != nil {
		return nil, err
	}
	if len(offsets) == 0 || len(offsets[0]) == 0 {
		return nil, errors.New("calibration grid is empty")
	}
	cols := len(offsets[0])
	table := make([][]float64, len(offsets))
	for i, row := range offsets {
		if len(row) != cols {
			return nil, fmt.Errorf("calibration row %d has %d entries, want %d", i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("calibration entry (%d,%d) is not finite", i, j)
			}
		}
		table[i] = append([]float64(nil), row...)
	}
	return &Grid{bounds: bounds, offsets: table}, nil
}

// Size returns the number of rows and columns.
func (g *Grid) Size() (rows, cols int) {
	if g == nil {
		return 0, 0
	}
	return len(g.offsets), len(g.offsets[0])
}

// Offset returns the height correction at workspace point p. Points
// outside the bounds use the nearest edge cell.
func (g *Grid) Offset(p vec.Vec2) float64 {
	if g == nil {
		return 0
	}
	rows, cols := g.Size()
	row := cell(p.X, g.bounds.LLx, g.bounds.URx, rows)
	col := cell(p.Y, g.bounds.LLy, g.bounds.URy, cols)
	return g.offsets[row][col]
}

// cell returns the index of the grid line nearest to v, for n grid lines
// spread evenly over [lo, hi].
func cell(v, lo, hi float64, n int) int {
	if n < 2 {
		return 0
	}
	k := int(math.Round((v - lo) / (hi - lo) * float64(n-1)))
	return max(0, min(n-1, k))
}

// DefaultOffsets returns the 5×5 correction table measured on the
// reference drawing board, in millimetres. Negative values lower the pen.
func DefaultOffsets() [][]float64 {
	return [][]float64{
		{-0.2, -0.1, -0.1, 0.1, 0.1},
		{-0.3, -0.3, -0.3, 0.1, 0.2},
		{-0.5, -0.5, -0.3, -0.2, 0},
		{-0.5, -0.5, -0.4, -0.4, -0.3},
		{-0.7, -0.6, -0.2, -0.3, -0.4},
	}
}

// DefaultGrid returns a grid over bounds using DefaultOffsets.
func DefaultGrid(bounds rect.Rect) (*Grid, error) {
	return NewGrid(bounds, DefaultOffsets())
}
