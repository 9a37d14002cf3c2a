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

package sim

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/raster"
)

// Ink renders the marks into a width×height bitmap. toPixel maps
// workspace coordinates to pixels. Marks are applied in order; erasing
// marks remove the ink under a square tool of their width.
func (a *Arm) Ink(width, height int, toPixel matrix.Matrix) *bitmap.Bitmap {
	b := bitmap.New(width, height)
	r := raster.New(rect.Rect{URx: float64(width), URy: float64(height)})
	r.CTM = toPixel
	for _, m := range a.marks {
		r.Width = m.Tip.Width
		if m.Tip.Erase {
			r.Cap = graphics.LineCapSquare
			r.Stroke(raster.Polyline(m.Points), raster.Clear(b, 0))
		} else {
			r.Cap = graphics.LineCapRound
			r.Stroke(raster.Polyline(m.Points), raster.Paint(b, raster.DefaultInkThreshold))
		}
	}
	return b
}
