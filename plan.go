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

package armdraw

import (
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/armdraw/bitmap"
	"seehuhn.de/go/armdraw/coverage"
	"seehuhn.de/go/armdraw/stroke"
	"seehuhn.de/go/armdraw/workspace"
)

// Kind distinguishes drawing and erasing jobs.
type Kind string

// These are the supported job kinds.
const (
	KindDraw      Kind = "draw"
	KindErase     Kind = "erase"
	KindCalibrate Kind = "calibrate"
)

// Plan is a job which is ready to be sent to the arm.
type Plan struct {
	Kind Kind

	// Tool is the name of the tool profile used, see config.Config.Tool.
	Tool string

	// Width and Height give the size of the source image in pixels.
	Width, Height int

	// Mapper converts image pixels to workspace points. It is nil for
	// empty images.
	Mapper *workspace.Mapper

	// Strokes are the simplified pixel strokes of a drawing plan.
	Strokes []stroke.Stroke

	// Centers are the eraser positions of an erase plan, in pixels.
	Centers []image.Point

	// Footprint is the size of the eraser in workspace units.
	Footprint vec.Vec2

	// Paths are the pen-down paths in workspace coordinates.
	Paths [][]vec.Vec2
}

// Empty reports whether the plan contains no moves.
func (p *Plan) Empty() bool {
	return len(p.Paths) == 0
}

// Points returns the number of pen-down points.
func (p *Plan) Points() int {
	n := 0
	for _, path := range p.Paths {
		n += len(path)
	}
	return n
}

// ToPixel returns the transformation from workspace coordinates to image
// coordinates, with pixel centres at half-integer positions. This is
// used to render the ink of a job over the source image.
func (p *Plan) ToPixel() matrix.Matrix {
	if p.Mapper == nil {
		return matrix.Identity
	}
	m := p.Mapper.Inverse()
	m[4] += 0.5
	m[5] += 0.5
	return m
}

// PlanDrawing extracts the strokes of an edge image, simplifies them and
// maps them into the workspace. An image without strokes gives an empty
// plan.
func (p *Plotter) PlanDrawing(edges *bitmap.Bitmap) (*Plan, error) {
	plan := &Plan{
		Kind:   KindDraw,
		Tool:   "marker",
		Width:  edges.Width,
		Height: edges.Height,
	}
	if edges.Width == 0 || edges.Height == 0 {
		return plan, nil
	}
	mapper, err := workspace.NewMapper(p.cfg.Bounds(), edges.Width, edges.Height)
	if err != nil {
		return nil, err
	}
	plan.Mapper = mapper

	raw := p.extractor.Extract(edges)
	plan.Strokes = stroke.SimplifyAll(raw, p.cfg.Extract.Epsilon)
	for _, s := range plan.Strokes {
		plan.Paths = append(plan.Paths, mapper.MapStroke(s))
	}

	p.log.Info("drawing planned",
		"width", edges.Width, "height", edges.Height,
		"scale", mapper.Scale,
		"strokes", len(plan.Strokes),
		"rawPoints", stroke.Count(raw),
		"points", plan.Points())
	return plan, nil
}

// PlanErase plans the removal of the ink in mask. The eraser stays on the
// surface for the whole path. An empty mask gives an empty plan.
func (p *Plotter) PlanErase(mask *bitmap.Bitmap) (*Plan, error) {
	plan := &Plan{
		Kind:   KindErase,
		Tool:   "eraser",
		Width:  mask.Width,
		Height: mask.Height,
	}
	if mask.Width == 0 || mask.Height == 0 {
		return plan, nil
	}
	mapper, err := workspace.NewMapper(p.cfg.Bounds(), mask.Width, mask.Height)
	if err != nil {
		return nil, err
	}
	plan.Mapper = mapper

	ec := p.cfg.Erase
	plan.Footprint = vec.Vec2{X: float64(ec.Width), Y: float64(ec.Height)}.Mul(mapper.Scale)

	var cov *coverage.Plan
	switch ec.Strategy {
	case "zigzag":
		cov = coverage.Zigzag(mask, ec.Width, ec.Height, ec.StepRatio)
	default:
		cov = p.eraser.Plan(mask)
	}
	plan.Centers = cov.Centers
	if len(plan.Centers) > 0 {
		plan.Paths = [][]vec.Vec2{mapper.MapStroke(plan.Centers)}
	}

	p.log.Info("erase planned",
		"strategy", ec.Strategy,
		"ink", mask.Count(),
		"positions", len(plan.Centers))
	return plan, nil
}

// EraserReach returns the diameter of the circle around the tool centre
// which contains the whole eraser footprint.
func (p *Plan) EraserReach() float64 {
	return math.Hypot(p.Footprint.X, p.Footprint.Y)
}
