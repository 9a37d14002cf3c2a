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

package raster

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/armdraw/bitmap"
)

// DefaultInkThreshold is the coverage above which a pixel counts as inked.
const DefaultInkThreshold = 0.25

// Paint returns an EmitFunc which marks every pixel of dst with coverage
// above threshold as foreground.
func Paint(dst *bitmap.Bitmap, threshold float32) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c > threshold {
				dst.Set(xMin+i, y, true)
			}
		}
	}
}

// Clear returns an EmitFunc which marks every pixel of dst with coverage
// above threshold as background.
func Clear(dst *bitmap.Bitmap, threshold float32) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		for i, c := range coverage {
			if c > threshold {
				dst.Set(xMin+i, y, false)
			}
		}
	}
}

// Polyline returns the open path through pts.
func Polyline(pts []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, pts[i:i+1]) {
				return
			}
		}
	}
}

// Polygon returns the closed path through pts.
func Polygon(pts []vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		if len(pts) == 0 {
			return
		}
		for cmd, p := range Polyline(pts) {
			if !yield(cmd, p) {
				return
			}
		}
		yield(path.CmdClose, nil)
	}
}
