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
	"slices"

	"seehuhn.de/go/armdraw/bitmap"
)

// DefaultStepRatio is the default window step, relative to the tool size.
const DefaultStepRatio = 0.5

// Zigzag slides a w×h window over mask row by row, alternating the
// direction of travel, and keeps the centre of every window which contains
// ink. The window advances by max(1, size·stepRatio) pixels. A last row
// and column of windows is aligned with the bottom and right edges of the
// mask, so that ink near the edges is covered. Masks smaller than the
// window are covered by a single window.
func Zigzag(mask *bitmap.Bitmap, w, h int, stepRatio float64) *Plan {
	if mask == nil || w <= 0 || h <= 0 {
		return emptyPlan(mask)
	}
	if stepRatio <= 0 {
		stepRatio = DefaultStepRatio
	}

	xs := offsets(mask.Width, w, max(1, int(float64(w)*stepRatio)))
	ys := offsets(mask.Height, h, max(1, int(float64(h)*stepRatio)))

	plan := emptyPlan(mask)
	remaining := mask.Clone()
	flip := false
	for _, y := range ys {
		row := xs
		if flip {
			row = slices.Clone(xs)
			slices.Reverse(row)
		}
		flip = !flip
		for _, x := range row {
			r := image.Rect(x, y, x+w, y+h)
			if !mask.Any(r) {
				continue
			}
			plan.Centers = append(plan.Centers, image.Pt(x+w/2, y+h/2))
			cover(plan.Covered, remaining, r)
		}
	}
	return plan
}

// offsets returns the window positions along an axis of the given length.
func offsets(length, size, step int) []int {
	last := max(0, length-size)
	var res []int
	for v := 0; v <= last; v += step {
		res = append(res, v)
	}
	if res[len(res)-1] != last {
		res = append(res, last)
	}
	return res
}
