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

// Package testcases holds named edge images used to test and benchmark
// stroke extraction and the drawing pipeline.
package testcases

import (
	"image"

	"seehuhn.de/go/armdraw/bitmap"
)

// TestCase is a single edge image.
type TestCase struct {
	Name   string        // lowercase a-z and _ only
	Width  int           // image width in pixels
	Height int           // image height in pixels
	Pixels []image.Point // foreground pixels

	// Strokes is the expected number of strokes after extraction with the
	// default gap threshold, or -1 if the count is not part of the test.
	Strokes int
}

// Bitmap renders the test case. Pixels outside the image are dropped.
func (tc TestCase) Bitmap() *bitmap.Bitmap {
	b := bitmap.New(tc.Width, tc.Height)
	for _, p := range tc.Pixels {
		b.Set(p.X, p.Y, true)
	}
	return b
}

// pt is a helper to create an image.Point from x, y coordinates.
func pt(x, y int) image.Point {
	return image.Point{X: x, Y: y}
}

// concat joins several pixel lists.
func concat(lists ...[]image.Point) []image.Point {
	var out []image.Point
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
