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

	"seehuhn.de/go/geom/vec"
)

// DefaultEpsilon is the simplification tolerance used by the drawing
// pipeline, in pixels.
const DefaultEpsilon = 2.0

// Simplify reduces the number of points of s using the Ramer-Douglas-Peucker
// algorithm. The first and last point are always kept. Every removed point
// lies within distance eps of the segment which replaces it, so the shape
// moves by at most eps. Strokes with fewer than three points are returned
// unchanged.
//
// Simplify never returns more points than it is given, and simplifying the
// result again with the same eps has no effect.
func Simplify(s Stroke, eps float64) Stroke {
	if len(s) < 3 {
		return s
	}
	eps = max(eps, 0)

	keep := make([]bool, len(s))
	keep[0] = true
	keep[len(s)-1] = true

	type span struct{ i, j int }
	todo := []span{{0, len(s) - 1}}
	for len(todo) > 0 {
		sp := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if sp.j-sp.i < 2 {
			continue
		}

		a, b := toVec(s[sp.i]), toVec(s[sp.j])
		far := -1
		farD := 0.0
		for k := sp.i + 1; k < sp.j; k++ {
			d := segmentDistance(toVec(s[k]), a, b)
			if d > farD {
				far, farD = k, d
			}
		}
		if far < 0 || farD <= eps {
			continue
		}
		keep[far] = true
		todo = append(todo, span{far, sp.j}, span{sp.i, far})
	}

	out := make(Stroke, 0, len(s))
	for k, p := range s {
		if keep[k] {
			out = append(out, p)
		}
	}
	return out
}

// SimplifyAll applies Simplify to every stroke.
func SimplifyAll(strokes []Stroke, eps float64) []Stroke {
	out := make([]Stroke, len(strokes))
	for i, s := range strokes {
		out[i] = Simplify(s, eps)
	}
	return out
}

// segmentDistance returns the distance from p to the segment a-b.
// When the projection of p falls inside the segment this is the
// perpendicular distance to the chord.
func segmentDistance(p, a, b vec.Vec2) float64 {
	d := b.Sub(a)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := p.Sub(a).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(d.Mul(t))).Length()
}

func toVec(p image.Point) vec.Vec2 {
	return vec.Vec2{X: float64(p.X), Y: float64(p.Y)}
}
