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

import (
	"image"
	"math"
)

var shapeCases = []TestCase{
	{
		Name:    "rectangle",
		Width:   40,
		Height:  30,
		Pixels:  rectangle(5, 5, 34, 24),
		Strokes: 1,
	},
	{
		Name:    "circle",
		Width:   64,
		Height:  64,
		Pixels:  circle(32, 32, 20),
		Strokes: -1,
	},
	{
		Name:    "small_circle",
		Width:   16,
		Height:  16,
		Pixels:  circle(8, 8, 4),
		Strokes: -1,
	},
	{
		Name:    "tee",
		Width:   20,
		Height:  20,
		Pixels:  concat(hline(2, 16, 2), vline(9, 3, 15)),
		Strokes: -1,
	},
}

// rectangle returns the outline of the rectangle with corners (x0, y0) and
// (x1, y1), each pixel once.
func rectangle(x0, y0, x1, y1 int) []image.Point {
	return concat(
		hline(x0, x1, y0),
		vline(x1, y0+1, y1),
		hline(x0, x1-1, y1),
		vline(x0, y0+1, y1-1),
	)
}

// circle returns the pixels of a midpoint circle, each pixel once.
func circle(cx, cy, r int) []image.Point {
	seen := make(map[image.Point]bool)
	var pts []image.Point
	add := func(x, y int) {
		p := pt(cx+x, cy+y)
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}

	x, y := r, 0
	err := 1 - r
	for x >= y {
		add(x, y)
		add(y, x)
		add(-y, x)
		add(-x, y)
		add(-x, -y)
		add(-y, -x)
		add(y, -x)
		add(x, -y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	return pts
}

// spiral returns the pixels of an Archimedean spiral.
func spiral(cx, cy float64, turns, spacing float64) []image.Point {
	seen := make(map[image.Point]bool)
	var pts []image.Point
	maxTheta := 2 * math.Pi * turns
	for theta := 0.0; theta <= maxTheta; theta += 0.01 {
		r := spacing * theta / (2 * math.Pi)
		p := pt(int(math.Round(cx+r*math.Cos(theta))), int(math.Round(cy+r*math.Sin(theta))))
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}
	return pts
}
