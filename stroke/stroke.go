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

// Package stroke turns binary edge images into ordered pen strokes.
//
// Extraction works in two phases. First the foreground pixels are split
// into 8-connected components by a stack based flood fill, so that every
// pixel belongs to exactly one component. Then every component is ordered
// by greedy nearest-neighbour chaining, which breaks the component into
// several strokes wherever the next point would be further away than the
// gap threshold.
package stroke

import "image"

// Stroke is an ordered sequence of pixels, traced with the pen down.
// Strokes returned by this package have at least two points and must not
// be modified by the caller.
type Stroke []image.Point

// Len returns the number of points in the stroke.
func (s Stroke) Len() int {
	return len(s)
}

// Count returns the total number of points in all strokes.
func Count(strokes []Stroke) int {
	n := 0
	for _, s := range strokes {
		n += len(s)
	}
	return n
}

// dist2 returns the squared Euclidean distance between a and b.
func dist2(a, b image.Point) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
