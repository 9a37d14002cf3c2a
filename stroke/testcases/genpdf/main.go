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

// Command genpdf draws the stroke test cases for visual inspection.
// Every test case becomes a PDF page showing the foreground pixels in
// gray and the simplified strokes in black. With -png the pages are
// also rendered to PNG images using Ghostscript.
package main

import (
	"flag"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/armdraw/stroke"
	"seehuhn.de/go/armdraw/stroke/testcases"
)

// scale is the size of an image pixel in PDF points.
const scale = 4

func main() {
	outDir := flag.String("o", "testdata/strokes", "output directory")
	withPNG := flag.Bool("png", false, "render PNG images using Ghostscript")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(*outDir, name+".pdf")

			if err := generatePDF(tc, pdfPath); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
			if *withPNG {
				pngPath := filepath.Join(*outDir, name+".png")
				if err := renderPNG(pdfPath, pngPath); err != nil {
					panic(fmt.Errorf("%s: %w", name, err))
				}
			}
		}
	}
}

func generatePDF(tc testcases.TestCase, pdfPath string) error {
	paper := &pdf.Rectangle{
		URx: float64(tc.Width * scale),
		URy: float64(tc.Height * scale),
	}
	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// image rows run downwards
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, float64(tc.Height * scale)})

	page.SetFillColor(color.DeviceGray(0.8))
	for _, p := range tc.Pixels {
		page.Rectangle(float64(p.X), float64(p.Y), 1, 1)
	}
	if len(tc.Pixels) > 0 {
		page.Fill()
	}

	strokes := stroke.NewExtractor().Extract(tc.Bitmap())
	strokes = stroke.SimplifyAll(strokes, stroke.DefaultEpsilon)

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.25)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, s := range strokes {
		for i, p := range s {
			x, y := float64(p.X)+0.5, float64(p.Y)+0.5
			if i == 0 {
				page.MoveTo(x, y)
			} else {
				page.LineTo(x, y)
			}
		}
		if len(s) == 1 {
			page.LineTo(float64(s[0].X)+0.5, float64(s[0].Y)+0.5)
		}
	}
	if len(strokes) > 0 {
		page.Stroke()
	}

	return page.Close()
}

func renderPNG(pdfPath, pngPath string) error {
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=pnggray",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
