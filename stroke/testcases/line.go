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

package testcases

import "image"

var lineCases = []TestCase{
	{
		// ten pixels at y=5
		Name:    "horizontal",
		Width:   16,
		Height:  10,
		Pixels:  hline(0, 9, 5),
		Strokes: 1,
	},
	{
		Name:    "vertical",
		Width:   8,
		Height:  32,
		Pixels:  vline(3, 2, 29),
		Strokes: 1,
	},
	{
		Name:    "diagonal",
		Width:   20,
		Height:  20,
		Pixels:  line(1, 1, 18, 18),
		Strokes: 1,
	},
	{
		Name:    "shallow",
		Width:   64,
		Height:  16,
		Pixels:  line(2, 3, 61, 12),
		Strokes: 1,
	},
	{
		Name:    "two_lines",
		Width:   32,
		Height:  32,
		Pixels:  concat(hline(2, 29, 4), hline(2, 29, 20)),
		Strokes: 2,
	},
}

// hline returns the pixels x0..x1 on row y.
func hline(x0, x1, y int) []image.Point {
	var pts []image.Point
	for x := x0; x <= x1; x++ {
		pts = append(pts, pt(x, y))
	}
	return pts
}

// vline returns the pixels y0..y1 in column x.
func vline(x, y0, y1 int) []image.Point {
	var pts []image.Point
	for y := y0; y <= y1; y++ {
		pts = append(pts, pt(x, y))
	}
	return pts
}

// line returns the pixels of a Bresenham line from (x0, y0) to (x1, y1).
func line(x0, y0, x1, y1 int) []image.Point {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	var pts []image.Point
	for {
		pts = append(pts, pt(x0, y0))
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
