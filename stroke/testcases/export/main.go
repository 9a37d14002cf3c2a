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

// Command export writes the stroke test cases, together with the strokes
// extracted from them, to testdata/strokes.json. The file can be used to
// compare the extractor with other implementations.
package main

import (
	"encoding/json"
	"image"
	"maps"
	"os"
	"slices"

	"seehuhn.de/go/armdraw/stroke"
	"seehuhn.de/go/armdraw/stroke/testcases"
)

func main() {
	var out struct {
		GapThreshold float64        `json:"gap_threshold"`
		Epsilon      float64        `json:"epsilon"`
		TestCases    []jsonTestCase `json:"testcases"`
	}
	out.GapThreshold = stroke.DefaultGapThreshold
	out.Epsilon = stroke.DefaultEpsilon

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			out.TestCases = append(out.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll("testdata", 0755); err != nil {
		panic(err)
	}
	f, err := os.Create("testdata/strokes.json")
	if err != nil {
		panic(err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		panic(err)
	}
}

type jsonTestCase struct {
	Name       string     `json:"name"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Pixels     [][2]int   `json:"pixels"`
	Strokes    [][][2]int `json:"strokes"`
	Simplified [][][2]int `json:"simplified"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	raw := stroke.NewExtractor().Extract(tc.Bitmap())
	return jsonTestCase{
		Name:       category + "_" + tc.Name,
		Width:      tc.Width,
		Height:     tc.Height,
		Pixels:     pointsToJSON(tc.Pixels),
		Strokes:    strokesToJSON(raw),
		Simplified: strokesToJSON(stroke.SimplifyAll(raw, stroke.DefaultEpsilon)),
	}
}

func strokesToJSON(strokes []stroke.Stroke) [][][2]int {
	res := make([][][2]int, len(strokes))
	for i, s := range strokes {
		res[i] = pointsToJSON(s)
	}
	return res
}

func pointsToJSON(pts []image.Point) [][2]int {
	res := make([][2]int, len(pts))
	for i, p := range pts {
		res[i] = [2]int{p.X, p.Y}
	}
	return res
}
