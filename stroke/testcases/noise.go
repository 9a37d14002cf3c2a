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

var noiseCases = []TestCase{
	{
		Name:    "empty",
		Width:   10,
		Height:  10,
		Strokes: 0,
	},
	{
		Name:    "single_pixel",
		Width:   10,
		Height:  10,
		Pixels:  []image.Point{pt(4, 4)},
		Strokes: 0,
	},
	{
		// far apart, both components are single pixels
		Name:    "two_dots",
		Width:   101,
		Height:  101,
		Pixels:  []image.Point{pt(0, 0), pt(100, 100)},
		Strokes: 0,
	},
	{
		Name:    "pair",
		Width:   4,
		Height:  4,
		Pixels:  []image.Point{pt(1, 1), pt(2, 2)},
		Strokes: 1,
	},
	{
		Name:    "speckle",
		Width:   40,
		Height:  40,
		Pixels:  speckle(40, 40, 7),
		Strokes: 0,
	},
}

// speckle returns isolated pixels on a regular grid with the given spacing.
func speckle(w, h, step int) []image.Point {
	var pts []image.Point
	for y := 1; y < h; y += step {
		for x := 1; x < w; x += step {
			pts = append(pts, pt(x, y))
		}
	}
	return pts
}
