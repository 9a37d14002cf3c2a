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

// Package raster renders pen paths into anti-aliased coverage values.
//
// It is used to predict which pixels of the drawing surface carry ink
// after a job, so that the eraser can be planned from the paths the arm
// has drawn. Coverage is computed exactly per pixel from signed cell
// areas and delivered row by row.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage of pixels xMin, xMin+1, ... in row y.
// The slice is only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasteriser converts paths to pixel coverage. Rasterisers are created
// using New and can be reused for many paths; the internal buffers grow as
// needed but never shrink. A Rasteriser must not be used concurrently.
type Rasteriser struct {
	// CTM maps user space (for example workspace millimetres) to device
	// pixels. It must be invertible.
	CTM matrix.Matrix

	// Clip is the output region in device pixels. The coordinates must
	// be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between curves
	// or pen tips and their polygonal approximation.
	Flatness float64

	// Width is the pen width in user space units.
	Width float64

	// Cap selects the shape of the path ends. Joins are always round, as
	// made by a round pen tip.
	Cap graphics.LineCapStyle

	cover []float32
	area  []float32
	edges []edge

	activeIdx []int
	rowUsed   []bool

	crossings []float64

	// stroke outlines, see pen.go
	polys       []vec.Vec2
	polyOffsets []int
	lines       []vec.Vec2
	lineOffsets []int
	lineClosed  []bool

	devXMin, devXMax float64
	devYMin, devYMax float64

	// smallPathThreshold is the largest bounding box area, in pixels,
	// for which all rows are accumulated at once.
	smallPathThreshold int
}

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// New returns a rasteriser for the given clip rectangle, with the identity
// transformation and a round pen of width 1.
func New(clip rect.Rect) *Rasteriser {
	return &Rasteriser{
		CTM:      matrix.Identity,
		Clip:     clip,
		Flatness: defaultFlatness,
		Width:    1,
		Cap:      graphics.LineCapRound,

		smallPathThreshold: smallPathThreshold,
	}
}

// Fill renders the area enclosed by p using the nonzero winding rule.
// Open subpaths are closed implicitly.
func (r *Rasteriser) Fill(p path.Path, emit EmitFunc) {
	r.resetEdges()

	var cur, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				r.addEdge(cur, start)
			}
			cur, start = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, pts[0], pts[1], r.addEdge)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addEdge)
			cur = pts[2]
		case path.CmdClose:
			r.addEdge(cur, start)
			cur = start
			open = false
		}
	}
	if open {
		r.addEdge(cur, start)
	}

	r.render(emit)
}

func (r *Rasteriser) resetEdges() {
	r.edges = r.edges[:0]
	r.devXMin, r.devYMin = math.Inf(1), math.Inf(1)
	r.devXMax, r.devYMax = math.Inf(-1), math.Inf(-1)
}

// addEdge transforms the segment a→b into device space and adds it to the
// edge list. Horizontal edges do not contribute to coverage and are
// dropped.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	x0 := m[0]*a.X + m[2]*a.Y + m[4]
	y0 := m[1]*a.X + m[3]*a.Y + m[5]
	x1 := m[0]*b.X + m[2]*b.Y + m[4]
	y1 := m[1]*b.X + m[3]*b.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	r.devXMin = min(r.devXMin, x0, x1)
	r.devXMax = max(r.devXMax, x0, x1)
	r.devYMin = min(r.devYMin, y0, y1)
	r.devYMax = max(r.devYMax, y0, y1)
}

// render rasterises the current edge list.
func (r *Rasteriser) render(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}
	xMin := max(int(math.Floor(r.devXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.devXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.devYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.devYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.renderSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.renderLarge(xMin, xMax, yMin, yMax, emit)
	}
}

// Every edge adds two quantities to the pixels it crosses:
//
//	cover: the signed height of the part of the edge inside the pixel
//	area:  cover times the fraction of the pixel to the right of the edge
//
// Scanning a row from left to right, the coverage of pixel i is the sum
// of cover over all pixels left of i plus area[i]. For nonzero filling
// the absolute value is clamped to 1.

// accumulate adds the contribution of e to row y. cover and area are
// indexed by x-xMin. Parts of the edge left of xMin are accumulated in
// the first pixel; parts right of xMax are ignored.
func (r *Rasteriser) accumulate(e *edge, y int, cover, area []float32, xMin, xMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(yTop-e.y0)
	xb := e.x0 + e.dxdy*(yBot-e.y0)
	left := int(math.Floor(min(xa, xb)))
	right := int(math.Floor(max(xa, xb)))

	add := func(y0, y1 float64) {
		c := sign * float32(y1-y0)
		xMid := e.x0 + e.dxdy*((y0+y1)/2-e.y0)
		pix := int(math.Floor(xMid))
		switch {
		case pix < xMin:
			cover[0] += c
			area[0] += c
		case pix < xMax:
			cover[pix-xMin] += c
			area[pix-xMin] += c * float32(1-(xMid-float64(pix)))
		}
	}

	if right < xMin || left == right {
		add(yTop, yBot)
		return
	}
	if left >= xMax {
		return
	}

	// split the edge where it crosses pixel columns
	r.crossings = append(r.crossings[:0], yTop, yBot)
	dydx := 1 / e.dxdy
	for x := left + 1; x <= right; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)
	for i := 1; i < len(r.crossings); i++ {
		if r.crossings[i] > r.crossings[i-1] {
			add(r.crossings[i-1], r.crossings[i])
		}
	}
}

// integrate turns accumulated cover and area values of one row into
// coverage, in place in cover.
func integrate(cover, area []float32) {
	var acc float32
	for i := range cover {
		v := acc + area[i]
		acc += cover[i]
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// emitRow passes the non-zero part of a row to emit.
func emitRow(y, xMin int, coverage []float32, emit EmitFunc) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo < hi {
		emit(y, xMin+lo, coverage[lo:hi])
	}
}

// renderSmall accumulates all rows at once in a two-dimensional buffer.
func (r *Rasteriser) renderSmall(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin
	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowUsed = slices.Grow(r.rowUsed[:0], height)[:height]
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		y0 := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		y1 := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := y0; y < y1; y++ {
			row := y - yMin
			off := row * width
			r.accumulate(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range height {
		if !r.rowUsed[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrate(coverage, r.area[off:off+width])
		emitRow(yMin+row, xMin, coverage, emit)
	}
}

// renderLarge processes one row at a time, using an active edge list.
func (r *Rasteriser) renderLarge(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < bot {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}

		clear(r.cover)
		clear(r.area)
		used := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= top {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			r.accumulate(e, y, r.cover, r.area, xMin, xMax)
			used = true
			i++
		}
		if !used {
			continue
		}
		integrate(r.cover, r.area)
		emitRow(y, xMin, r.cover, emit)
	}
}

// deviceScale returns the factor by which the CTM scales lengths, on
// average.
func (r *Rasteriser) deviceScale() float64 {
	m := r.CTM
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25).Length() * r.deviceScale()
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, using
// Wang's formula for the number of segments.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	d1 := p0.Sub(p1.Mul(2)).Add(p2).Length()
	d2 := p1.Sub(p2.Mul(2)).Add(p3).Length()
	dev := max(d1, d2) * r.deviceScale()
	n := max(1, int(math.Ceil(math.Sqrt(3*dev/(4*r.Flatness)))))
	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the minimal vertical extent of an edge.
	horizontalEdgeThreshold = 1e-10

	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimal length of a pen segment.
	zeroLengthThreshold = 1e-10
)
