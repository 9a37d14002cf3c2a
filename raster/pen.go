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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke renders the ink left by a round pen tip of diameter Width moving
// along p. Every segment contributes a rectangle and every vertex a disc;
// all outlines share the same orientation, so that their union is found
// by the nonzero winding rule. A subpath consisting of a single point
// gives a dot for round caps and an axis-aligned square for square caps.
func (r *Rasteriser) Stroke(p path.Path, emit EmitFunc) {
	if !(r.Width > 0) {
		return
	}
	r.flattenLines(p)

	r.polys = r.polys[:0]
	r.polyOffsets = r.polyOffsets[:0]
	h := r.Width / 2
	for i, start := range r.lineOffsets {
		end := len(r.lines)
		if i+1 < len(r.lineOffsets) {
			end = r.lineOffsets[i+1]
		}
		r.addPenOutline(r.lines[start:end], r.lineClosed[i], h)
	}

	r.resetEdges()
	for i, start := range r.polyOffsets {
		end := len(r.polys)
		if i+1 < len(r.polyOffsets) {
			end = r.polyOffsets[i+1]
		}
		poly := r.polys[start:end]
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.render(emit)
}

// flattenLines converts p into polylines. Consecutive duplicate points
// are removed.
func (r *Rasteriser) flattenLines(p path.Path) {
	r.lines = r.lines[:0]
	r.lineOffsets = r.lineOffsets[:0]
	r.lineClosed = r.lineClosed[:0]

	inSubpath := false
	addPoint := func(_, b vec.Vec2) {
		if b != r.lines[len(r.lines)-1] {
			r.lines = append(r.lines, b)
		}
	}
	for cmd, pts := range p {
		if cmd != path.CmdMoveTo && !inSubpath {
			continue
		}
		last := len(r.lines) - 1
		switch cmd {
		case path.CmdMoveTo:
			r.lineOffsets = append(r.lineOffsets, len(r.lines))
			r.lineClosed = append(r.lineClosed, false)
			r.lines = append(r.lines, pts[0])
			inSubpath = true
		case path.CmdLineTo:
			addPoint(r.lines[last], pts[0])
		case path.CmdQuadTo:
			r.flattenQuadratic(r.lines[last], pts[0], pts[1], addPoint)
		case path.CmdCubeTo:
			r.flattenCubic(r.lines[last], pts[0], pts[1], pts[2], addPoint)
		case path.CmdClose:
			r.lineClosed[len(r.lineClosed)-1] = true
			inSubpath = false
		}
	}
}

// addPenOutline adds the outlines for one polyline.
func (r *Rasteriser) addPenOutline(pts []vec.Vec2, closed bool, h float64) {
	n := len(pts)
	if n == 1 {
		switch r.Cap {
		case graphics.LineCapRound:
			r.addDisc(pts[0], h)
		case graphics.LineCapSquare:
			c := pts[0]
			r.polyOffsets = append(r.polyOffsets, len(r.polys))
			r.polys = append(r.polys,
				vec.Vec2{X: c.X - h, Y: c.Y - h},
				vec.Vec2{X: c.X + h, Y: c.Y - h},
				vec.Vec2{X: c.X + h, Y: c.Y + h},
				vec.Vec2{X: c.X - h, Y: c.Y + h})
		}
		return
	}
	if closed && pts[n-1] != pts[0] {
		pts = append(pts[:n:n], pts[0])
		n++
	}

	for i := 1; i < n; i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		l := d.Length()
		if l < zeroLengthThreshold {
			continue
		}
		t := d.Mul(1 / l)
		if !closed && r.Cap == graphics.LineCapSquare {
			if i == 1 {
				a = a.Sub(t.Mul(h))
			}
			if i == n-1 {
				b = b.Add(t.Mul(h))
			}
		}
		nrm := vec.Vec2{X: -t.Y, Y: t.X}.Mul(h)
		r.polyOffsets = append(r.polyOffsets, len(r.polys))
		r.polys = append(r.polys, a.Sub(nrm), b.Sub(nrm), b.Add(nrm), a.Add(nrm))
	}

	for i, pt := range pts {
		isEnd := !closed && (i == 0 || i == n-1)
		if !isEnd || r.Cap == graphics.LineCapRound {
			r.addDisc(pt, h)
		}
	}
}

// addDisc adds a counter-clockwise polygon approximating the disc of
// radius h around c.
func (r *Rasteriser) addDisc(c vec.Vec2, h float64) {
	rd := h * r.deviceScale()
	n := 8
	if rd > r.Flatness {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-r.Flatness/rd))))
	}
	r.polyOffsets = append(r.polyOffsets, len(r.polys))
	for i := range n {
		phi := 2 * math.Pi * float64(i) / float64(n)
		r.polys = append(r.polys, vec.Vec2{
			X: c.X + h*math.Cos(phi),
			Y: c.Y + h*math.Sin(phi),
		})
	}
}
