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

package content

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/sfdtools/xnbc/internal/binary"
	"github.com/sfdtools/xnbc/internal/dxt"
)

// Surface format enum values, per the on-disk EXTERNAL INTERFACES table.
const (
	SurfaceRgba8 = 0
	SurfaceEct1  = 2
	SurfaceDxt1  = 4
	SurfaceDxt3  = 5
	SurfaceDxt5  = 6
)

// Texture2D is the in-memory form of a Texture2D payload. Pixels are
// un-premultiplied RGBA8, tightly packed row-major.
type Texture2D struct {
	SurfaceFormat int32
	Width         uint32
	Height        uint32
	Pixels        []byte
}

func init() {
	RegisterReaderFactory("Microsoft.Xna.Framework.Content.Texture2DReader", func() Reader { return &Texture2DReader{} })
}

// Texture2DReader implements Reader for Texture2D payloads.
type Texture2DReader struct{}

func (r *Texture2DReader) Type() TypeName {
	return ParseTypeName("Microsoft.Xna.Framework.Content.Texture2DReader")
}

func (r *Texture2DReader) IsPolymorphic() bool { return false }

func (r *Texture2DReader) ReadFrom(br *binary.Reader, reg *Registry) (any, error) {
	format, err := br.I32LE()
	if err != nil {
		return nil, err
	}
	width, err := br.U32LE()
	if err != nil {
		return nil, err
	}
	height, err := br.U32LE()
	if err != nil {
		return nil, err
	}
	mipCount, err := br.U32LE()
	if err != nil {
		return nil, err
	}
	if mipCount < 1 {
		mipCount = 1
	}
	if mipCount > 1 {
		reg.Warn(fmt.Sprintf("texture2d: %d mip levels present, only level 0 retained", mipCount))
	}

	dataSize, err := br.U32LE()
	if err != nil {
		return nil, err
	}
	data, err := br.ReadBytes(int(dataSize))
	if err != nil {
		return nil, err
	}

	var pixels []byte
	switch format {
	case SurfaceRgba8:
		pixels = append([]byte(nil), data...)
	case SurfaceDxt1:
		pixels, err = dxt.Decompress(data, int(width), int(height), dxt.FormatDXT1)
	case SurfaceDxt3:
		pixels, err = dxt.Decompress(data, int(width), int(height), dxt.FormatDXT3)
	case SurfaceDxt5:
		pixels, err = dxt.Decompress(data, int(width), int(height), dxt.FormatDXT5)
	case SurfaceEct1:
		return nil, fmt.Errorf("%w: Ect1", ErrUnsupportedTextureFormat)
	default:
		return nil, fmt.Errorf("%w: format %d", ErrUnsupportedTextureFormat, format)
	}
	if err != nil {
		return nil, err
	}

	unpremultiply(pixels)

	return &Texture2D{SurfaceFormat: format, Width: width, Height: height, Pixels: pixels}, nil
}

func (r *Texture2DReader) WriteTo(bw *binary.Writer, value any, reg *Registry) error {
	tex, ok := value.(*Texture2D)
	if !ok {
		return fmt.Errorf("%w: want *Texture2D", ErrReaderTypeMismatch)
	}

	pixels := append([]byte(nil), tex.Pixels...)
	premultiply(pixels)

	var data []byte
	var err error
	switch tex.SurfaceFormat {
	case SurfaceRgba8:
		data = pixels
	case SurfaceDxt1:
		data, err = dxt.Compress(pixels, int(tex.Width), int(tex.Height), dxt.FormatDXT1)
	case SurfaceDxt3:
		data, err = dxt.Compress(pixels, int(tex.Width), int(tex.Height), dxt.FormatDXT3)
	case SurfaceDxt5:
		data, err = dxt.Compress(pixels, int(tex.Width), int(tex.Height), dxt.FormatDXT5)
	default:
		return fmt.Errorf("%w: format %d", ErrUnsupportedTextureFormat, tex.SurfaceFormat)
	}
	if err != nil {
		return err
	}

	bw.I32LE(tex.SurfaceFormat)
	bw.U32LE(tex.Width)
	bw.U32LE(tex.Height)
	bw.U32LE(1) // mip_count
	bw.U32LE(uint32(len(data)))
	bw.WriteBytes(data)
	return nil
}

// Export encodes the texture's un-premultiplied RGBA8 pixels as a PNG
// sidecar named "{basename}.png", where basename comes from the store's
// Base method (as on fileio.DirStore); stores without one get "texture.png".
func (r *Texture2DReader) Export(value any, store SidecarStore) (any, error) {
	tex, ok := value.(*Texture2D)
	if !ok {
		return nil, fmt.Errorf("%w: want *Texture2D", ErrReaderTypeMismatch)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(tex.Width), int(tex.Height)))
	for y := 0; y < int(tex.Height); y++ {
		for x := 0; x < int(tex.Width); x++ {
			i := (y*int(tex.Width) + x) * 4
			img.SetNRGBA(x, y, color.NRGBA{R: tex.Pixels[i], G: tex.Pixels[i+1], B: tex.Pixels[i+2], A: tex.Pixels[i+3]})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("texture2d: png encode: %w", err)
	}

	name := "texture.png"
	if b, ok := store.(interface{ Base() string }); ok && b.Base() != "" {
		name = b.Base() + ".png"
	}
	name, err := store.Emit(name, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return name, nil
}

// Import reads a PNG sidecar back into a Texture2D with format 0 (uncompressed RGBA8).
func (r *Texture2DReader) Import(exported any, store SidecarStore) (any, error) {
	name, ok := exported.(string)
	if !ok {
		return nil, fmt.Errorf("%w: want sidecar file name", ErrReaderTypeMismatch)
	}
	data, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture2d: png decode: %w", err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 4
			pixels[i] = byte(r >> 8)
			pixels[i+1] = byte(g >> 8)
			pixels[i+2] = byte(b >> 8)
			pixels[i+3] = byte(a >> 8)
		}
	}
	return &Texture2D{SurfaceFormat: SurfaceRgba8, Width: uint32(w), Height: uint32(h), Pixels: pixels}, nil
}

// unpremultiply converts on-disk premultiplied-alpha RGBA8 pixels in place
// to straight alpha: c' = min(255, ceil(c*255/a)) for a>0, else unchanged.
func unpremultiply(pixels []byte) {
	for i := 0; i+3 < len(pixels); i += 4 {
		a := pixels[i+3]
		if a == 0 {
			continue
		}
		for ch := 0; ch < 3; ch++ {
			c := int(pixels[i+ch])
			v := (c*255 + int(a) - 1) / int(a)
			if v > 255 {
				v = 255
			}
			pixels[i+ch] = byte(v)
		}
	}
}

// premultiply converts straight-alpha RGBA8 pixels in place to
// premultiplied form: c' = floor(c*a/255).
func premultiply(pixels []byte) {
	for i := 0; i+3 < len(pixels); i += 4 {
		a := int(pixels[i+3])
		for ch := 0; ch < 3; ch++ {
			c := int(pixels[i+ch])
			pixels[i+ch] = byte((c * a) / 255)
		}
	}
}
