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
	"maps"
	"math"
	"slices"
	"testing"

	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/stroke/testcases"
)

func TestExtractProperties(t *testing.T) {
	e := NewExtractor()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				b := tc.Bitmap()
				strokes := e.Extract(b)

				if tc.Strokes >= 0 && len(strokes) != tc.Strokes {
					t.Errorf("got %d strokes, want %d", len(strokes), tc.Strokes)
				}

				seen := make(map[image.Point]bool)
				for i, s := range strokes {
					if len(s) < 2 {
						t.Errorf("stroke %d has %d points", i, len(s))
					}
					for j, p := range s {
						if !b.Get(p.X, p.Y) {
							t.Errorf("stroke %d contains background pixel %v", i, p)
						}
						if seen[p] {
							t.Errorf("pixel %v appears twice", p)
						}
						seen[p] = true
						if j > 0 && dist2(s[j-1], p) > DefaultGapThreshold {
							t.Errorf("stroke %d jumps from %v to %v", i, s[j-1], p)
						}
					}
				}
			})
		}
	}
}

func TestExtractMatchesExhaustiveSearch(t *testing.T) {
	e := NewExtractor()
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				b := tc.Bitmap()
				got := e.Extract(b)
				want := referenceExtract(b, DefaultGapThreshold)
				if !equalStrokes(got, want) {
					t.Errorf("indexed search differs from exhaustive search:\n got %v\nwant %v", got, want)
				}
			})
		}
	}
}

func TestExtractHorizontalLine(t *testing.T) {
	b := bitmap.New(16, 10)
	for x := range 10 {
		b.Set(x, 5, true)
	}

	strokes := NewExtractor().Extract(b)
	if len(strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(strokes))
	}
	s := strokes[0]
	if len(s) != 10 {
		t.Fatalf("got %d points, want 10", len(s))
	}
	for i, p := range s {
		if p != (image.Point{X: i, Y: 5}) {
			t.Errorf("point %d = %v, want (%d,5)", i, p, i)
		}
	}

	simple := Simplify(s, 0)
	if len(simple) != 2 {
		t.Errorf("simplified to %d points, want 2", len(simple))
	}
}

func TestExtractDistantDots(t *testing.T) {
	b := bitmap.New(101, 101)
	b.Set(0, 0, true)
	b.Set(100, 100, true)

	if strokes := NewExtractor().Extract(b); len(strokes) != 0 {
		t.Errorf("got %d strokes, want none", len(strokes))
	}
}

func TestExtractEmpty(t *testing.T) {
	e := NewExtractor()
	if strokes := e.Extract(bitmap.New(0, 0)); strokes != nil {
		t.Errorf("zero-size image gave %v", strokes)
	}
	if strokes := e.Extract(bitmap.New(20, 20)); strokes != nil {
		t.Errorf("blank image gave %v", strokes)
	}
}

func TestGapThreshold(t *testing.T) {
	b := bitmap.New(10, 10)
	for i := range 8 {
		b.Set(i, i, true)
	}

	e := NewExtractor()
	if n := len(e.Extract(b)); n != 1 {
		t.Errorf("default threshold: got %d strokes, want 1", n)
	}

	// diagonal steps have squared length 2
	e.GapThreshold = 1
	if n := len(e.Extract(b)); n != 0 {
		t.Errorf("threshold 1: got %d strokes, want 0", n)
	}
}

func TestMinPoints(t *testing.T) {
	b := bitmap.New(20, 5)
	for x := range 3 {
		b.Set(x, 0, true)
	}
	for x := 10; x < 18; x++ {
		b.Set(x, 3, true)
	}

	e := NewExtractor()
	e.MinPoints = 5
	strokes := e.Extract(b)
	if len(strokes) != 1 || len(strokes[0]) != 8 {
		t.Errorf("got %v, want one stroke of 8 points", strokes)
	}
}

func TestExtractorReuse(t *testing.T) {
	e := NewExtractor()
	big := testcases.All["complex"][0].Bitmap()
	small := testcases.All["line"][0].Bitmap()

	first := e.Extract(small)
	e.Extract(big)
	second := e.Extract(small)
	if !equalStrokes(first, second) {
		t.Errorf("results depend on earlier calls: %v vs %v", first, second)
	}
}

// referenceExtract is a direct implementation of extraction, which searches
// all remaining points of a component at every step.
func referenceExtract(b *bitmap.Bitmap, limit int) []Stroke {
	visited := make([]bool, b.Width*b.Height)
	var strokes []Stroke
	for y := range b.Height {
		for x := range b.Width {
			if !b.Get(x, y) || visited[y*b.Width+x] {
				continue
			}

			var comp []image.Point
			stack := []image.Point{{X: x, Y: y}}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if visited[p.Y*b.Width+p.X] {
					continue
				}
				visited[p.Y*b.Width+p.X] = true
				comp = append(comp, p)
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						q := image.Point{X: p.X + dx, Y: p.Y + dy}
						if (dx != 0 || dy != 0) && b.Get(q.X, q.Y) && !visited[q.Y*b.Width+q.X] {
							stack = append(stack, q)
						}
					}
				}
			}
			if len(comp) < 2 {
				continue
			}

			for len(comp) > 0 {
				cur := comp[0]
				comp = comp[1:]
				s := Stroke{cur}
				for len(comp) > 0 {
					best := 0
					for k := range comp {
						if dist2(cur, comp[k]) < dist2(cur, comp[best]) {
							best = k
						}
					}
					if dist2(cur, comp[best]) > limit {
						break
					}
					cur = comp[best]
					comp = slices.Delete(comp, best, best+1)
					s = append(s, cur)
				}
				if len(s) >= 2 {
					strokes = append(strokes, s)
				}
			}
		}
	}
	return strokes
}

func equalStrokes(a, b []Stroke) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// TestGapThresholdUnbounded checks that thresholds beyond the size of the
// image join a whole component into a single stroke.
func TestGapThresholdUnbounded(t *testing.T) {
	b := bitmap.New(16, 10)
	for x := range 10 {
		b.Set(x, 5, true)
	}

	for _, limit := range []float64{1e6, 3e18, 1e300, math.Inf(1)} {
		e := NewExtractor()
		e.GapThreshold = limit
		strokes := e.Extract(b)
		if len(strokes) != 1 || len(strokes[0]) != 10 {
			t.Errorf("threshold %g: got %v, want one stroke of 10 points", limit, strokes)
		}
	}
}
