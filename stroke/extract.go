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

package stroke

import (
	"image"
	"math"
	"slices"

	"seehuhn.de/go/armdraw/bitmap"
)

// DefaultGapThreshold is the default value for Extractor.GapThreshold.
// Horizontally or vertically adjacent pixels have squared distance 1,
// diagonal neighbours 2; pixels two steps apart in one direction and one in
// the other (squared distance 5) are still joined.
const DefaultGapThreshold = 5

// Extractor splits a binary edge image into strokes.
// Create one instance and reuse it for multiple images. Internal buffers
// grow as needed but never shrink.
//
// An Extractor is not safe for concurrent use.
type Extractor struct {
	// GapThreshold is the largest squared pixel distance allowed between
	// consecutive points of a stroke. When the nearest remaining point of
	// a component is further away, the current stroke ends.
	GapThreshold float64

	// MinPoints is the minimum number of points of a stroke.
	// Shorter strokes are discarded as noise. Values below 2 mean 2.
	MinPoints int

	visited []bool        // per image pixel
	index   []int32       // per image pixel: position in the current component, or -1
	stack   []image.Point // flood fill work list
	comp    []image.Point // current component, in traversal order
	used    []bool        // per component point: already part of a stroke
}

// NewExtractor returns an Extractor with the default gap threshold.
func NewExtractor() *Extractor {
	return &Extractor{
		GapThreshold: DefaultGapThreshold,
		MinPoints:    2,
	}
}

// neighbours lists the 8-connected neighbour offsets, row by row.
var neighbours = [8]image.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

// Extract returns the strokes of the edge image b. Components are found in
// row-major scan order of their first pixel. An image without foreground
// pixels gives no strokes.
func (e *Extractor) Extract(b *bitmap.Bitmap) []Stroke {
	n := b.Width * b.Height
	if n == 0 {
		return nil
	}

	e.visited = slices.Grow(e.visited[:0], n)[:n]
	clear(e.visited)
	e.index = slices.Grow(e.index[:0], n)[:n]
	for i := range e.index {
		e.index[i] = -1
	}

	minPoints := max(e.MinPoints, 2)

	var strokes []Stroke
	for y := range b.Height {
		for x := range b.Width {
			i := y*b.Width + x
			if b.Pix[i] == 0 || e.visited[i] {
				continue
			}
			e.flood(b, image.Point{X: x, Y: y})
			if len(e.comp) < 2 {
				continue // isolated pixel
			}
			for _, s := range e.chain(b.Width, b.Height) {
				if len(s) >= minPoints {
					strokes = append(strokes, s)
				}
			}
		}
	}
	return strokes
}

// flood collects the 8-connected component containing start into e.comp.
// Each pixel is marked visited when it is taken from the stack, so that it
// is recorded exactly once even if it was pushed several times.
func (e *Extractor) flood(b *bitmap.Bitmap, start image.Point) {
	e.comp = e.comp[:0]
	e.stack = append(e.stack[:0], start)

	for len(e.stack) > 0 {
		p := e.stack[len(e.stack)-1]
		e.stack = e.stack[:len(e.stack)-1]

		i := p.Y*b.Width + p.X
		if e.visited[i] {
			continue
		}
		e.visited[i] = true
		e.comp = append(e.comp, p)

		for _, d := range neighbours {
			q := p.Add(d)
			if !b.In(q.X, q.Y) {
				continue
			}
			j := q.Y*b.Width + q.X
			if b.Pix[j] != 0 && !e.visited[j] {
				e.stack = append(e.stack, q)
			}
		}
	}
}

// chain orders the points of e.comp into strokes.
//
// Starting with the first unused point, the stroke repeatedly moves to the
// nearest unused point, where ties go to the point found first during the
// flood fill. If no unused point lies within the gap threshold, the stroke
// ends and a new one starts at the first unused point.
//
// Candidates are looked up in a window around the current point using a
// per-pixel index of the component. This gives the same result as a
// search over all remaining points, since points outside the window are
// beyond the threshold anyway.
func (e *Extractor) chain(width, height int) []Stroke {
	comp := e.comp
	for k, p := range comp {
		e.index[p.Y*width+p.X] = int32(k)
	}
	defer func() {
		for _, p := range comp {
			e.index[p.Y*width+p.X] = -1
		}
	}()

	e.used = slices.Grow(e.used[:0], len(comp))[:len(comp)]
	clear(e.used)

	limit := e.GapThreshold
	r := 0
	if limit >= 1 {
		// no two pixels are further apart than the image diagonal
		diag2 := float64(width)*float64(width) + float64(height)*float64(height)
		r = int(math.Sqrt(math.Min(limit, diag2)))
	}
	// For very large thresholds scanning the remaining points is cheaper
	// than scanning the window.
	side := float64(2*r + 1)
	useWindow := side*side <= float64(len(comp))

	var strokes []Stroke
	remaining := len(comp)
	first := 0
	for remaining > 0 {
		for e.used[first] {
			first++
		}
		cur := first
		e.used[cur] = true
		remaining--
		s := Stroke{comp[cur]}

		for remaining > 0 {
			var next int
			if useWindow {
				next = e.nearestInWindow(comp[cur], r, limit, width, height)
			} else {
				next = e.nearestByScan(comp[cur], limit)
			}
			if next < 0 {
				break
			}
			cur = next
			e.used[cur] = true
			remaining--
			s = append(s, comp[cur])
		}
		strokes = append(strokes, s)
	}
	return strokes
}

// nearestInWindow returns the index of the nearest unused component point
// within squared distance limit of p, or -1.
func (e *Extractor) nearestInWindow(p image.Point, r int, limit float64, width, height int) int {
	best := -1
	bestD := 0
	for dy := -r; dy <= r; dy++ {
		y := p.Y + dy
		if y < 0 || y >= height {
			continue
		}
		for dx := -r; dx <= r; dx++ {
			x := p.X + dx
			if x < 0 || x >= width {
				continue
			}
			d := dx*dx + dy*dy
			if d == 0 || float64(d) > limit {
				continue
			}
			k := int(e.index[y*width+x])
			if k < 0 || e.used[k] {
				continue
			}
			if best < 0 || d < bestD || d == bestD && k < best {
				best, bestD = k, d
			}
		}
	}
	return best
}

// nearestByScan is the exhaustive version of nearestInWindow.
func (e *Extractor) nearestByScan(p image.Point, limit float64) int {
	best := -1
	bestD := 0
	for k, q := range e.comp {
		if e.used[k] {
			continue
		}
		d := dist2(p, q)
		if best < 0 || d < bestD {
			best, bestD = k, d
		}
	}
	if best < 0 || float64(bestD) > limit {
		return -1
	}
	return best
}
