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

// Package coverage plans the path of a rectangular eraser over the ink of
// a drawing.
package coverage

import (
	"image"

	"seehuhn.de/go/armdraw/bitmap"
)

// Plan is the result of a planning call.
type Plan struct {
	// Centers lists the tool positions in the order they are visited.
	// The tool stays on the surface between consecutive centers.
	Centers []image.Point

	// Covered marks every pixel swept by the tool footprint.
	Covered *bitmap.Bitmap
}

// Empty reports whether the plan has no tool positions.
func (p *Plan) Empty() bool {
	return len(p.Centers) == 0
}

// footprint returns the w×h rectangle of the tool centred at c. For even
// sizes the extra row or column lies before the centre.
func footprint(c image.Point, w, h int) image.Rectangle {
	x0 := c.X - w/2
	y0 := c.Y - h/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// cover marks r as covered and clears the corresponding ink in remaining.
// It returns the number of ink pixels removed.
func cover(covered, remaining *bitmap.Bitmap, r image.Rectangle) int {
	r = r.Intersect(image.Rect(0, 0, covered.Width, covered.Height))
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * covered.Width
		for x := r.Min.X; x < r.Max.X; x++ {
			covered.Pix[row+x] = 255
			if remaining.Pix[row+x] != 0 {
				remaining.Pix[row+x] = 0
				n++
			}
		}
	}
	return n
}

func emptyPlan(mask *bitmap.Bitmap) *Plan {
	if mask == nil {
		return &Plan{Covered: bitmap.New(0, 0)}
	}
	return &Plan{Covered: bitmap.New(mask.Width, mask.Height)}
}
