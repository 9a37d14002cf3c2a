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

// Package workspace maps image coordinates into the physical drawing area
// of the arm and computes the pen height for every point of that area.
package workspace

import (
	"errors"
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// ErrEmptyImage is returned by NewMapper for images without pixels.
var ErrEmptyImage = errors.New("image has zero size")

// NewBounds returns the workspace rectangle [minX,maxX]×[minY,maxY].
func NewBounds(minX, maxX, minY, maxY float64) rect.Rect {
	return rect.Rect{LLx: minX, LLy: minY, URx: maxX, URy: maxY}
}

// CheckBounds returns an error if b does not have positive width and
// height.
func CheckBounds(b rect.Rect) error {
	if !(b.URx > b.LLx) || !(b.URy > b.LLy) {
		return fmt.Errorf("invalid workspace bounds x=[%g,%g] y=[%g,%g]",
			b.LLx, b.URx, b.LLy, b.URy)
	}
	return nil
}

// Mapper converts pixel coordinates of an image into workspace points.
// The image is scaled uniformly, as large as possible, and anchored at the
// minimum corner of the workspace. The image x axis maps to the workspace
// x axis and the image y axis to the workspace y axis.
type Mapper struct {
	// Bounds is the workspace rectangle. Mapped points never leave it.
	Bounds rect.Rect

	// Scale is the workspace distance per pixel.
	Scale float64
}

// NewMapper returns a mapper for an image of the given size.
func NewMapper(bounds rect.Rect, width, height int) (*Mapper, error) {
	if err := CheckBounds(bounds); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	sx := (bounds.URx - bounds.LLx) / float64(width)
	sy := (bounds.URy - bounds.LLy) / float64(height)
	return &Mapper{
		Bounds: bounds,
		Scale:  math.Min(sx, sy),
	}, nil
}

// Map returns the workspace point for pixel p.
func (m *Mapper) Map(p image.Point) vec.Vec2 {
	v := vec.Vec2{
		X: m.Bounds.LLx + float64(p.X)*m.Scale,
		Y: m.Bounds.LLy + float64(p.Y)*m.Scale,
	}
	return m.Clamp(v)
}

// MapStroke maps every point of a pixel path.
func (m *Mapper) MapStroke(s []image.Point) []vec.Vec2 {
	out := make([]vec.Vec2, len(s))
	for i, p := range s {
		out[i] = m.Map(p)
	}
	return out
}

// Clamp moves v into the workspace, independently along both axes.
func (m *Mapper) Clamp(v vec.Vec2) vec.Vec2 {
	return Clamp(m.Bounds, v)
}

// Matrix returns the transformation from pixel to workspace coordinates,
// without clamping.
func (m *Mapper) Matrix() matrix.Matrix {
	return matrix.Matrix{m.Scale, 0, 0, m.Scale, m.Bounds.LLx, m.Bounds.LLy}
}

// Inverse returns the transformation from workspace to pixel coordinates.
func (m *Mapper) Inverse() matrix.Matrix {
	s := 1 / m.Scale
	return matrix.Matrix{s, 0, 0, s, -m.Bounds.LLx * s, -m.Bounds.LLy * s}
}

// Clamp moves v into b, independently along both axes.
func Clamp(b rect.Rect, v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: math.Max(b.LLx, math.Min(b.URx, v.X)),
		Y: math.Max(b.LLy, math.Min(b.URy, v.Y)),
	}
}

// Contains reports whether v lies in the closed rectangle b.
func Contains(b rect.Rect, v vec.Vec2) bool {
	return v.X >= b.LLx && v.X <= b.URx && v.Y >= b.LLy && v.Y <= b.URy
}
