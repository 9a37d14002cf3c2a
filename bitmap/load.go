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

package bitmap

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultThreshold is the luminance above which a pixel counts as
// foreground.
const DefaultThreshold = 128

// LoadOptions controls how Decode turns an image file into a bitmap.
type LoadOptions struct {
	// Threshold is the binarisation threshold, see FromImage.
	Threshold uint8

	// Invert selects dark-on-light input.
	Invert bool

	// MaxSize limits the longer image side in pixels. Larger images are
	// scaled down, preserving the aspect ratio. Zero disables scaling.
	MaxSize int
}

// Decode reads an image in any registered format (PNG, JPEG, BMP, TIFF,
// WebP) and binarises it. A nil opt uses DefaultThreshold and no scaling.
func Decode(r io.Reader, opt *LoadOptions) (*Bitmap, error) {
	if opt == nil {
		opt = &LoadOptions{Threshold: DefaultThreshold}
	}
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if opt.MaxSize > 0 {
		img = Fit(img, opt.MaxSize)
	}
	b := FromImage(img, opt.Threshold, opt.Invert)
	if b.Width == 0 || b.Height == 0 {
		return nil, fmt.Errorf("%s image has zero size", format)
	}
	return b, nil
}

// Fit scales img down so that neither side exceeds maxSize. Images that
// already fit are returned unchanged.
func Fit(img image.Image, maxSize int) image.Image {
	sr := img.Bounds()
	w, h := sr.Dx(), sr.Dy()
	if w <= maxSize && h <= maxSize || w == 0 || h == 0 {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = maxSize
		nh = max(1, h*maxSize/w)
	} else {
		nh = maxSize
		nw = max(1, w*maxSize/h)
	}

	dst := image.NewGray(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, sr, draw.Src, nil)
	return dst
}
