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
	"testing"

	"seehuhn.de/go/armdraw/stroke/testcases"
)

// BenchmarkExtract benchmarks stroke extraction on the complex test images.
func BenchmarkExtract(b *testing.B) {
	for _, tc := range testcases.All["complex"] {
		img := tc.Bitmap()
		b.Run(tc.Name, func(b *testing.B) {
			e := NewExtractor()
			b.ReportAllocs()
			for b.Loop() {
				e.Extract(img)
			}
		})
	}
}

// BenchmarkExtractExhaustive benchmarks the quadratic reference search.
func BenchmarkExtractExhaustive(b *testing.B) {
	for _, tc := range testcases.All["complex"] {
		img := tc.Bitmap()
		b.Run(tc.Name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				referenceExtract(img, DefaultGapThreshold)
			}
		})
	}
}

// BenchmarkSimplify benchmarks simplification of a spiral.
func BenchmarkSimplify(b *testing.B) {
	strokes := NewExtractor().Extract(testcases.All["complex"][0].Bitmap())
	b.ReportAllocs()
	for b.Loop() {
		SimplifyAll(strokes, DefaultEpsilon)
	}
}
