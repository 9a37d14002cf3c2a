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

// Package bitmap provides the binary rasters exchanged between the stages of
// a drawing job: edge images for stroke extraction and ink masks for erase
// planning.
package bitmap

import (
	"image"
	"image/color"
)

// Bitmap is a binary raster. Pix holds one byte per pixel in row-major
// order, starting at the top-left corner. Zero is background, any other
// value is foreground.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// New returns an all-background bitmap of the given size.
// Negative sizes are treated as zero.
func New(width, height int) *Bitmap {
	width = max(width, 0)
	height = max(height, 0)
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height),
	}
}

// In reports whether (x, y) lies inside the bitmap.
func (b *Bitmap) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Get reports whether the pixel at (x, y) is foreground.
// Pixels outside the bitmap are background.
func (b *Bitmap) Get(x, y int) bool {
	if !b.In(x, y) {
		return false
	}
	return b.Pix[y*b.Width+x] != 0
}

// Set changes the pixel at (x, y). Coordinates outside the bitmap are
// ignored.
func (b *Bitmap) Set(x, y int, on bool) {
	if !b.In(x, y) {
		return
	}
	var v byte
	if on {
		v = 255
	}
	b.Pix[y*b.Width+x] = v
}

// Count returns the number of foreground pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Empty reports whether the bitmap has no foreground pixels.
func (b *Bitmap) Empty() bool {
	for _, v := range b.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// Any reports whether r contains a foreground pixel. The part of r
// outside the bitmap is ignored.
func (b *Bitmap) Any(r image.Rectangle) bool {
	r = r.Intersect(image.Rect(0, 0, b.Width, b.Height))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.Pix[y*b.Width+r.Min.X : y*b.Width+r.Max.X]
		for _, v := range row {
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// Covers reports whether every foreground pixel of other is also
// foreground in b. Both bitmaps must have the same size.
func (b *Bitmap) Covers(other *Bitmap) bool {
	if b.Width != other.Width || b.Height != other.Height {
		return false
	}
	for i, v := range other.Pix {
		if v != 0 && b.Pix[i] == 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

// Gray converts the bitmap to an 8-bit image, with foreground white and
// background black.
func (b *Bitmap) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
	for i, v := range b.Pix {
		if v != 0 {
			img.Pix[i/b.Width*img.Stride+i%b.Width] = 255
		}
	}
	return img
}

// FromImage binarises img. A pixel becomes foreground if its luminance is
// above threshold; invert swaps foreground and background, which is needed
// for dark ink on light paper.
func FromImage(img image.Image, threshold uint8, invert bool) *Bitmap {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())
	for y := range b.Height {
		for x := range b.Width {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			if (c.Y > threshold) != invert {
				b.Pix[y*b.Width+x] = 255
			}
		}
	}
	return b
}
