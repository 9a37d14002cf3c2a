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

// Package preview writes PDF files which show the moves of a drawing job
// before it is sent to the arm.
package preview

import (
	"errors"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
)

// Document describes the content of a preview. All coordinates are
// workspace millimetres.
type Document struct {
	// Bounds is the workspace rectangle, drawn as a frame.
	Bounds rect.Rect

	// Strokes are drawn with the pen lowered. Travel moves between the
	// strokes are shown as dashed lines.
	Strokes  [][]vec.Vec2
	PenWidth float64

	// Sweep is an eraser path. The tool footprint is shaded at every
	// position.
	Sweep                     []vec.Vec2
	EraserWidth, EraserHeight float64
}

// margin is the space around the workspace, in millimetres.
const margin = 10

// mm is the size of a millimetre in PDF points.
const mm = 72 / 25.4

// Write creates a one-page PDF file at fname.
//
// The page shows the workspace with x increasing to the right and y
// increasing downwards, so that the drawing has the orientation of the
// source image.
func Write(fname string, doc *Document) error {
	b := doc.Bounds
	if !(b.URx > b.LLx) || !(b.URy > b.LLy) {
		return errors.New("preview: empty workspace")
	}
	w := b.URx - b.LLx + 2*margin
	h := b.URy - b.LLy + 2*margin
	paper := &pdf.Rectangle{URx: w * mm, URy: h * mm}

	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	polyline := func(pts []vec.Vec2) {
		page.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			page.LineTo(p.X, p.Y)
		}
	}

	page.Transform(matrix.Matrix{mm, 0, 0, -mm, -mm * (b.LLx - margin), mm * (b.URy + margin)})

	page.SetStrokeColor(color.DeviceGray(0.6))
	page.SetLineWidth(0.3)
	page.Rectangle(b.LLx, b.LLy, b.URx-b.LLx, b.URy-b.LLy)
	page.Stroke()

	if len(doc.Sweep) > 0 && doc.EraserWidth > 0 && doc.EraserHeight > 0 {
		page.SetFillColor(color.DeviceGray(0.9))
		for _, c := range doc.Sweep {
			page.Rectangle(c.X-doc.EraserWidth/2, c.Y-doc.EraserHeight/2, doc.EraserWidth, doc.EraserHeight)
		}
		page.Fill()
	}
	if len(doc.Sweep) > 1 {
		page.SetStrokeColor(color.DeviceGray(0.4))
		page.SetLineWidth(0.3)
		polyline(doc.Sweep)
		page.Stroke()
	}

	penWidth := doc.PenWidth
	if penWidth <= 0 {
		penWidth = 0.5
	}
	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(penWidth)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	drawn := false
	for _, s := range doc.Strokes {
		if len(s) == 0 {
			continue
		}
		polyline(s)
		if len(s) == 1 {
			page.LineTo(s[0].X, s[0].Y)
		}
		drawn = true
	}
	if drawn {
		page.Stroke()
	}

	// travel moves go last, since the dash pattern stays in effect
	if travel := travelMoves(doc.Strokes); len(travel) > 0 {
		page.SetStrokeColor(color.DeviceGray(0.5))
		page.SetLineWidth(0.2)
		page.SetLineCap(graphics.LineCapButt)
		page.SetLineDash([]float64{1, 1}, 0)
		for _, t := range travel {
			page.MoveTo(t[0].X, t[0].Y)
			page.LineTo(t[1].X, t[1].Y)
		}
		page.Stroke()
	}

	return page.Close()
}

// travelMoves returns the pen-up moves from the end of each stroke to the
// start of the next one.
func travelMoves(strokes [][]vec.Vec2) [][2]vec.Vec2 {
	var res [][2]vec.Vec2
	var prev []vec.Vec2
	for _, s := range strokes {
		if len(s) == 0 {
			continue
		}
		if prev != nil {
			res = append(res, [2]vec.Vec2{prev[len(prev)-1], s[0]})
		}
		prev = s
	}
	return res
}
