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

package workspace

import (
	"testing"

	"seehuhn.de/go/geom/vec"
)

func TestGridLookup(t *testing.T) {
	g, err := DefaultGrid(testBounds)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		p    vec.Vec2
		want float64
	}{
		{vec.Vec2{X: 160, Y: -190}, -0.2},   // row 0, col 0
		{vec.Vec2{X: 160, Y: 190}, 0.1},     // row 0, col 4
		{vec.Vec2{X: 375, Y: -190}, -0.7},   // row 4, col 0
		{vec.Vec2{X: 375, Y: 190}, -0.4},    // row 4, col 4
		{vec.Vec2{X: 267.5, Y: 0}, -0.3},    // centre
		{vec.Vec2{X: 1000, Y: -1000}, -0.7}, // clamped
		{vec.Vec2{X: -5, Y: 500}, 0.1},      // clamped
	}
	for _, tc := range tests {
		got := g.Offset(tc.p)
		if got != tc.want {
			t.Errorf("Offset(%v) = %g, want %g", tc.p, got, tc.want)
		}
	}
}

func TestGridNearest(t *testing.T) {
	g, err := NewGrid(NewBounds(0, 4, 0, 1), [][]float64{{0}, {1}, {2}, {3}, {4}})
	if err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct{ x, want float64 }{
		{0.4, 0}, {0.6, 1}, {1.49, 1}, {2.51, 3}, {3.9, 4},
	} {
		if got := g.Offset(vec.Vec2{X: tc.x, Y: 0.5}); got != tc.want {
			t.Errorf("x=%g: got %g, want %g", tc.x, got, tc.want)
		}
	}
}

func TestNilGrid(t *testing.T) {
	var g *Grid
	if got := g.Offset(vec.Vec2{X: 200, Y: 0}); got != 0 {
		t.Errorf("nil grid gives %g", got)
	}
}

func TestNewGridErrors(t *testing.T) {
	tests := map[string][][]float64{
		"empty":   nil,
		"no cols": {{}},
		"ragged":  {{1, 2}, {3}},
	}
	for name, offsets := range tests {
		if _, err := NewGrid(testBounds, offsets); err == nil {
			t.Errorf("%s: no error", name)
		}
	}
}

func TestGridCopiesTable(t *testing.T) {
	table := [][]float64{{1, 2}, {3, 4}}
	g, err := NewGrid(testBounds, table)
	if err != nil {
		t.Fatal(err)
	}
	table[0][0] = 99
	if got := g.Offset(vec.Vec2{X: 160, Y: -190}); got != 1 {
		t.Errorf("grid changed with caller's table: %g", got)
	}
}
