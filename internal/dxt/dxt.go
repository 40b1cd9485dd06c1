// Copyright (c) 2025 The xnbc Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of xnbc.
//
// xnbc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// xnbc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with xnbc.  If not, see <https://www.gnu.org/licenses/>.

// Package dxt wraps github.com/woozymasta/bcn to treat DXT1/3/5 block
// compression as the opaque codec the XNB container describes: block bytes
// in, RGBA8 pixels out, and back.
package dxt

import (
	"fmt"
	"image"
	"image/color"

	"github.com/woozymasta/bcn"
)

// Format identifies which DXT variant a Texture2D payload uses.
type Format int

const (
	FormatDXT1 Format = iota
	FormatDXT3
	FormatDXT5
)

func (f Format) bcnFormat() bcn.Format {
	switch f {
	case FormatDXT3:
		return bcn.FormatDXT3
	case FormatDXT5:
		return bcn.FormatDXT5
	default:
		return bcn.FormatDXT1
	}
}

// Decompress turns block-compressed data for a width x height surface into
// tightly packed RGBA8 pixels, premultiplied alpha as they appear on disk.
func Decompress(data []byte, width, height int, format Format) ([]byte, error) {
	img, err := bcn.DecodeImage(data, width, height, format.bcnFormat())
	if err != nil {
		return nil, fmt.Errorf("dxt: decode: %w", err)
	}
	out := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			i := (y*width + x) * 4
			out[i] = byte(r >> 8)
			out[i+1] = byte(g >> 8)
			out[i+2] = byte(b >> 8)
			out[i+3] = byte(a >> 8)
		}
	}
	return out, nil
}

// Compress block-compresses tightly packed premultiplied RGBA8 pixels.
func Compress(pixels []byte, width, height int, format Format) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.SetNRGBA(x, y, color.NRGBA{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: pixels[i+3]})
		}
	}
	data, _, _, err := bcn.EncodeImageWithOptions(img, format.bcnFormat(), nil)
	if err != nil {
		return nil, fmt.Errorf("dxt: encode: %w", err)
	}
	return data, nil
}
