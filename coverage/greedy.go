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

package coverage

import (
	"image"

	"seehuhn.de/go/armdraw/bitmap"
)

// Planner moves the tool greedily to the nearest ink which is not yet
// covered.
//
// A Planner keeps buffers between calls and must not be used
// concurrently.
type Planner struct {
	// ToolWidth and ToolHeight give the footprint of the tool in pixels.
	ToolWidth, ToolHeight int

	remaining *bitmap.Bitmap
}

// Plan computes the tool path for mask. The mask is not modified.
//
// The first centre is the topmost-leftmost ink pixel. Each following
// centre is the uncovered ink pixel closest to the previous centre, ties
// going to the pixel which comes first in row-major order. An empty mask
// or a tool without area gives an empty plan.
func (p *Planner) Plan(mask *bitmap.Bitmap) *Plan {
	if mask == nil || p.ToolWidth <= 0 || p.ToolHeight <= 0 {
		return emptyPlan(mask)
	}

	remaining := p.remaining
	if remaining == nil || cap(remaining.Pix) < len(mask.Pix) {
		remaining = &bitmap.Bitmap{Pix: make([]byte, len(mask.Pix))}
		p.remaining = remaining
	}
	remaining.Width = mask.Width
	remaining.Height = mask.Height
	remaining.Pix = remaining.Pix[:len(mask.Pix)]
	left := 0
	for i, v := range mask.Pix {
		if v != 0 {
			remaining.Pix[i] = 1
			left++
		} else {
			remaining.Pix[i] = 0
		}
	}

	plan := emptyPlan(mask)
	if left == 0 {
		return plan
	}

	cur := firstInk(remaining)
	for {
		plan.Centers = append(plan.Centers, cur)
		left -= cover(plan.Covered, remaining, footprint(cur, p.ToolWidth, p.ToolHeight))
		if left == 0 {
			break
		}
		cur = nearest(remaining, cur)
	}
	return plan
}

func firstInk(b *bitmap.Bitmap) image.Point {
	for i, v := range b.Pix {
		if v != 0 {
			return image.Pt(i%b.Width, i/b.Width)
		}
	}
	panic("unreachable")
}

// nearest returns the ink pixel of b closest to c. The search visits
// square rings of growing radius around c and stops once no closer pixel
// can exist. b must contain at least one ink pixel.
func nearest(b *bitmap.Bitmap, c image.Point) image.Point {
	maxR := max(c.X, b.Width-1-c.X, c.Y, b.Height-1-c.Y)

	var best image.Point
	bestD2 := -1
	consider := func(x, y int) {
		if x < 0 || y < 0 || x >= b.Width || y >= b.Height || b.Pix[y*b.Width+x] == 0 {
			return
		}
		dx, dy := x-c.X, y-c.Y
		d2 := dx*dx + dy*dy
		if bestD2 < 0 || d2 < bestD2 ||
			d2 == bestD2 && (y < best.Y || y == best.Y && x < best.X) {
			best = image.Pt(x, y)
			bestD2 = d2
		}
	}

	for r := 0; r <= maxR; r++ {
		if bestD2 >= 0 && r*r > bestD2 {
			break
		}
		if r == 0 {
			consider(c.X, c.Y)
			continue
		}
		for x := c.X - r; x <= c.X+r; x++ {
			consider(x, c.Y-r)
			consider(x, c.Y+r)
		}
		for y := c.Y - r + 1; y < c.Y+r; y++ {
			consider(c.X-r, y)
			consider(c.X+r, y)
		}
	}
	return best
}
