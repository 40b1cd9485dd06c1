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
)

const itemLayerTerminator = '\n'

// SFDItemLayer is one optional image layer of a part: a presence flag and,
// when present, width*height RGBA8 pixels decoded from the palette stream.
type SFDItemLayer struct {
	Present bool
	Pixels  []byte
}

// SFDItemPart is one part of the item's layered sprite, carrying a type tag
// and its layers in on-disk order.
type SFDItemPart struct {
	Type   int32
	Layers []SFDItemLayer
}

// SFDItem is the in-memory form of an SFD.Content.ItemsContentTypeReader payload.
type SFDItem struct {
	FileName        string
	GameName        string
	EquipmentLayer  int32
	ID              int32
	JacketUnderBelt bool
	CanEquip        bool
	CanScript       bool
	ColorPalette    bool
	Width           int32
	Height          int32
	Palette         [][4]byte
	Parts           []SFDItemPart
}

func init() {
	RegisterReaderFactory("SFD.Content.ItemsContentTypeReader", func() Reader { return &SFDItemReader{} })
}

// SFDItemReader implements Reader for SFDItem payloads.
type SFDItemReader struct{}

func (r *SFDItemReader) Type() TypeName {
	return ParseTypeName("SFD.Content.ItemsContentTypeReader")
}

func (r *SFDItemReader) IsPolymorphic() bool { return false }

func readBool(br *binary.Reader) (bool, error) {
	v, err := br.U8()
	return v != 0, err
}

func writeBool(bw *binary.Writer, v bool) {
	if v {
		bw.U8(1)
	} else {
		bw.U8(0)
	}
}

func (r *SFDItemReader) ReadFrom(br *binary.Reader, reg *Registry) (any, error) {
	item := &SFDItem{}
	var err error
	if item.FileName, err = br.String(); err != nil {
		return nil, err
	}
	if item.GameName, err = br.String(); err != nil {
		return nil, err
	}
	if item.EquipmentLayer, err = br.I32LE(); err != nil {
		return nil, err
	}
	if item.ID, err = br.I32LE(); err != nil {
		return nil, err
	}
	if item.JacketUnderBelt, err = readBool(br); err != nil {
		return nil, err
	}
	if item.CanEquip, err = readBool(br); err != nil {
		return nil, err
	}
	if item.CanScript, err = readBool(br); err != nil {
		return nil, err
	}
	if item.ColorPalette, err = readBool(br); err != nil {
		return nil, err
	}
	if item.Width, err = br.I32LE(); err != nil {
		return nil, err
	}
	if item.Height, err = br.I32LE(); err != nil {
		return nil, err
	}

	paletteLen, err := br.U8()
	if err != nil {
		return nil, err
	}
	item.Palette = make([][4]byte, paletteLen)
	for i := range item.Palette {
		rgba, err := br.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		copy(item.Palette[i][:], rgba)
	}

	outerCount, err := br.I32LE()
	if err != nil {
		return nil, err
	}
	if _, err := br.U8(); err != nil { // '\n'
		return nil, err
	}

	item.Parts = make([]SFDItemPart, outerCount)
	for i := range item.Parts {
		typ, err := br.I32LE()
		if err != nil {
			return nil, err
		}
		innerCount, err := br.I32LE()
		if err != nil {
			return nil, err
		}
		layers := make([]SFDItemLayer, innerCount)
		for j := range layers {
			layer, err := readItemLayer(br, item, item.Palette)
			if err != nil {
				return nil, err
			}
			layers[j] = layer
		}
		item.Parts[i] = SFDItemPart{Type: typ, Layers: layers}
	}

	return item, nil
}

func readItemLayer(br *binary.Reader, item *SFDItem, palette [][4]byte) (SFDItemLayer, error) {
	present, err := readBool(br)
	if err != nil {
		return SFDItemLayer{}, err
	}
	var pixels []byte
	if present {
		count := int(item.Width) * int(item.Height)
		pixels = make([]byte, count*4)
		var register [4]byte
		for p := 0; p < count; p++ {
			repeat, err := readBool(br)
			if err != nil {
				return SFDItemLayer{}, err
			}
			if !repeat {
				idx, err := br.U8()
				if err != nil {
					return SFDItemLayer{}, err
				}
				if int(idx) >= len(palette) {
					return SFDItemLayer{}, fmt.Errorf("sfditem: palette index %d out of range", idx)
				}
				register = palette[idx]
			}
			copy(pixels[p*4:p*4+4], register[:])
		}
	}
	if _, err := br.U8(); err != nil { // '\n'
		return SFDItemLayer{}, err
	}
	return SFDItemLayer{Present: present, Pixels: pixels}, nil
}

func (r *SFDItemReader) WriteTo(bw *binary.Writer, value any, reg *Registry) error {
	item, ok := value.(*SFDItem)
	if !ok {
		return fmt.Errorf("%w: want *SFDItem", ErrReaderTypeMismatch)
	}

	bw.String(item.FileName)
	bw.String(item.GameName)
	bw.I32LE(item.EquipmentLayer)
	bw.I32LE(item.ID)
	writeBool(bw, item.JacketUnderBelt)
	writeBool(bw, item.CanEquip)
	writeBool(bw, item.CanScript)
	writeBool(bw, item.ColorPalette)
	bw.I32LE(item.Width)
	bw.I32LE(item.Height)

	bw.U8(byte(len(item.Palette)))
	for _, c := range item.Palette {
		bw.WriteBytes(c[:])
	}

	bw.I32LE(int32(len(item.Parts)))
	bw.U8(itemLayerTerminator)

	for _, part := range item.Parts {
		bw.I32LE(part.Type)
		bw.I32LE(int32(len(part.Layers)))
		for _, layer := range part.Layers {
			if err := writeItemLayer(bw, layer, item.Palette); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeItemLayer(bw *binary.Writer, layer SFDItemLayer, palette [][4]byte) error {
	writeBool(bw, layer.Present)
	if layer.Present {
		var register [4]byte
		if len(palette) > 0 {
			register = palette[len(palette)-1]
		}
		for p := 0; p+3 < len(layer.Pixels); p += 4 {
			var c [4]byte
			copy(c[:], layer.Pixels[p:p+4])
			if c == register {
				writeBool(bw, true)
				continue
			}
			idx := paletteIndexOf(palette, c)
			if idx < 0 {
				return fmt.Errorf("%w: color %v", ErrPaletteMiss, c)
			}
			writeBool(bw, false)
			bw.U8(byte(idx))
			register = c
		}
	}
	bw.U8(itemLayerTerminator)
	return nil
}

func paletteIndexOf(palette [][4]byte, c [4]byte) int {
	for i, p := range palette {
		if p == c {
			return i
		}
	}
	return -1
}

// ExportedItemLayer names the PNG sidecar for one non-empty layer, or is
// the zero value (Sidecar == "") for an "undefined" empty layer.
type ExportedItemLayer struct {
	Sidecar string
}

// ExportedItemPart mirrors SFDItemPart with layers replaced by their
// exported sidecar references.
type ExportedItemPart struct {
	Type   int32
	Layers []ExportedItemLayer
}

// ExportedItem is the sidecar-aware form of SFDItem returned by Export and
// consumed by Import; it carries every field needed to reconstruct the
// item without outside context.
type ExportedItem struct {
	FileName        string
	GameName        string
	EquipmentLayer  int32
	ID              int32
	JacketUnderBelt bool
	CanEquip        bool
	CanScript       bool
	ColorPalette    bool
	Width           int32
	Height          int32
	Parts           []ExportedItemPart
}

// Export writes every non-empty layer as a PNG sidecar named
// "{basename}_{type}_{n}.png"; empty layers are reported as undefined.
func (r *SFDItemReader) Export(value any, store SidecarStore) (any, error) {
	item, ok := value.(*SFDItem)
	if !ok {
		return nil, fmt.Errorf("%w: want *SFDItem", ErrReaderTypeMismatch)
	}

	out := ExportedItem{
		FileName:        item.FileName,
		GameName:        item.GameName,
		EquipmentLayer:  item.EquipmentLayer,
		ID:              item.ID,
		JacketUnderBelt: item.JacketUnderBelt,
		CanEquip:        item.CanEquip,
		CanScript:       item.CanScript,
		ColorPalette:    item.ColorPalette,
		Width:           item.Width,
		Height:          item.Height,
	}

	for _, part := range item.Parts {
		ep := ExportedItemPart{Type: part.Type}
		for n, layer := range part.Layers {
			if !layer.Present || allTransparent(layer.Pixels) {
				ep.Layers = append(ep.Layers, ExportedItemLayer{})
				continue
			}
			img := image.NewNRGBA(image.Rect(0, 0, int(item.Width), int(item.Height)))
			for p := 0; p+3 < len(layer.Pixels); p += 4 {
				x := (p / 4) % int(item.Width)
				y := (p / 4) / int(item.Width)
				img.SetNRGBA(x, y, color.NRGBA{R: layer.Pixels[p], G: layer.Pixels[p+1], B: layer.Pixels[p+2], A: layer.Pixels[p+3]})
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, img); err != nil {
				return nil, fmt.Errorf("sfditem: png encode: %w", err)
			}
			name := fmt.Sprintf("%s_%d_%d.png", item.FileName, part.Type, n)
			emitted, err := store.Emit(name, buf.Bytes())
			if err != nil {
				return nil, err
			}
			ep.Layers = append(ep.Layers, ExportedItemLayer{Sidecar: emitted})
		}
		out.Parts = append(out.Parts, ep)
	}
	return out, nil
}

// Import reconstructs an SFDItem from its exported form, rebuilding the
// palette by scanning every imported layer's pixel colors.
func (r *SFDItemReader) Import(exported any, store SidecarStore) (any, error) {
	in, ok := exported.(ExportedItem)
	if !ok {
		return nil, fmt.Errorf("%w: want ExportedItem", ErrReaderTypeMismatch)
	}

	item := &SFDItem{
		FileName:        in.FileName,
		GameName:        in.GameName,
		EquipmentLayer:  in.EquipmentLayer,
		ID:              in.ID,
		JacketUnderBelt: in.JacketUnderBelt,
		CanEquip:        in.CanEquip,
		CanScript:       in.CanScript,
		ColorPalette:    in.ColorPalette,
		Width:           in.Width,
		Height:          in.Height,
	}

	var palette [][4]byte
	seen := map[[4]byte]bool{}

	for _, ep := range in.Parts {
		part := SFDItemPart{Type: ep.Type}
		for _, el := range ep.Layers {
			if el.Sidecar == "" {
				part.Layers = append(part.Layers, SFDItemLayer{})
				continue
			}
			data, err := store.Load(el.Sidecar)
			if err != nil {
				return nil, err
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("sfditem: png decode: %w", err)
			}
			bounds := img.Bounds()
			pixels := make([]byte, int(in.Width)*int(in.Height)*4)
			for y := 0; y < bounds.Dy(); y++ {
				for x := 0; x < bounds.Dx(); x++ {
					r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
					c := [4]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)}
					if !seen[c] {
						seen[c] = true
						palette = append(palette, c)
					}
					i := (y*int(in.Width) + x) * 4
					copy(pixels[i:i+4], c[:])
				}
			}
			part.Layers = append(part.Layers, SFDItemLayer{Present: true, Pixels: pixels})
		}
		item.Parts = append(item.Parts, part)
	}

	if len(palette) > 255 {
		palette = palette[:255]
	}
	item.Palette = palette
	return item, nil
}

func allTransparent(pixels []byte) bool {
	for p := 3; p < len(pixels); p += 4 {
		if pixels[p] != 0 {
			return false
		}
	}
	return true
}
