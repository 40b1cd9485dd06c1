package content

import (
	"bytes"
	"testing"

	"github.com/sfdtools/xnbc/internal/binary"
)

func sampleItem() *SFDItem {
	palette := [][4]byte{
		{0, 0, 0, 0},
		{255, 0, 0, 255},
		{0, 255, 0, 255},
	}
	pixels := make([]byte, 2*2*4)
	copy(pixels[0:4], palette[1][:])
	copy(pixels[4:8], palette[1][:]) // repeats register
	copy(pixels[8:12], palette[2][:])
	copy(pixels[12:16], palette[0][:])
	return &SFDItem{
		FileName:        "jacket",
		GameName:        "sfd",
		EquipmentLayer:  2,
		ID:              7,
		JacketUnderBelt: true,
		CanEquip:        true,
		CanScript:       false,
		ColorPalette:    true,
		Width:           2,
		Height:          2,
		Palette:         palette,
		Parts: []SFDItemPart{
			{Type: 0, Layers: []SFDItemLayer{{Present: true, Pixels: pixels}}},
			{Type: 1, Layers: []SFDItemLayer{{Present: false}}},
		},
	}
}

func TestSFDItemWriteThenReadRoundTrip(t *testing.T) {
	t.Parallel()
	item := sampleItem()
	reg := NewRegistry()
	rdr := &SFDItemReader{}

	bw := binary.NewWriter()
	if err := rdr.WriteTo(bw, item, reg); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	br := binary.NewReader(bw.Bytes())
	got, err := rdr.ReadFrom(br, reg)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	round, ok := got.(*SFDItem)
	if !ok {
		t.Fatalf("ReadFrom returned %T", got)
	}

	if round.FileName != item.FileName || round.ID != item.ID || round.Width != item.Width {
		t.Errorf("metadata mismatch: %+v", round)
	}
	if len(round.Parts) != len(item.Parts) {
		t.Fatalf("expected %d parts, got %d", len(item.Parts), len(round.Parts))
	}
	if !bytes.Equal(round.Parts[0].Layers[0].Pixels, item.Parts[0].Layers[0].Pixels) {
		t.Errorf("pixel mismatch: got %v, want %v", round.Parts[0].Layers[0].Pixels, item.Parts[0].Layers[0].Pixels)
	}
	if round.Parts[1].Layers[0].Present {
		t.Error("expected second part's layer to be absent")
	}
}

func TestSFDItemWriteUnknownColorFails(t *testing.T) {
	t.Parallel()
	item := sampleItem()
	item.Parts[0].Layers[0].Pixels[0] = 9 // no longer matches any palette entry
	bw := binary.NewWriter()
	err := (&SFDItemReader{}).WriteTo(bw, item, NewRegistry())
	if err == nil {
		t.Fatal("expected a palette miss error")
	}
}

func TestPaletteIndexOf(t *testing.T) {
	t.Parallel()
	palette := [][4]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}
	if idx := paletteIndexOf(palette, [4]byte{5, 6, 7, 8}); idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
	if idx := paletteIndexOf(palette, [4]byte{9, 9, 9, 9}); idx != -1 {
		t.Errorf("expected -1 for missing color, got %d", idx)
	}
}
