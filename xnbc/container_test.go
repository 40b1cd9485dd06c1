package xnbc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sfdtools/xnbc/content"
)

func TestContainerPackUnpackTexture2DRoundTrip(t *testing.T) {
	t.Parallel()
	tex := &content.Texture2D{
		SurfaceFormat: content.SurfaceRgba8,
		Width:         1,
		Height:        1,
		Pixels:        []byte{10, 20, 30, 255},
	}
	doc := &Document{
		Header: Header{TargetPlatform: 'w', XnbVersion: 5, Compression: CompressionNone},
		Readers: []ReaderEntry{
			{TypeName: "Microsoft.Xna.Framework.Content.Texture2DReader", Version: 0},
		},
		Content: tex,
	}

	data, err := (Container{}).Pack(doc)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("XNB")) {
		t.Fatalf("missing XNB magic: %v", data[:3])
	}

	got, err := (Container{}).Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	round, ok := got.Content.(*content.Texture2D)
	if !ok {
		t.Fatalf("Content is %T", got.Content)
	}
	if round.Width != tex.Width || round.Height != tex.Height {
		t.Errorf("dimension mismatch: %+v", round)
	}
	if !bytes.Equal(round.Pixels, tex.Pixels) {
		t.Errorf("pixel mismatch: got %v, want %v", round.Pixels, tex.Pixels)
	}
}

func TestContainerPackLz4ForMobileTargets(t *testing.T) {
	t.Parallel()
	tex := &content.Texture2D{SurfaceFormat: content.SurfaceRgba8, Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}}
	doc := &Document{
		Header: Header{TargetPlatform: 'a', XnbVersion: 5},
		Readers: []ReaderEntry{
			{TypeName: "Microsoft.Xna.Framework.Content.Texture2DReader"},
		},
		Content: tex,
	}
	data, err := (Container{}).Pack(doc)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if data[5]&flagLz4 == 0 {
		t.Fatal("expected LZ4 flag set for target 'a'")
	}

	got, err := (Container{}).Unpack(data)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if got.Header.Compression != CompressionLz4 {
		t.Errorf("expected CompressionLz4, got %v", got.Header.Compression)
	}
}

func TestContainerPackUnknownReader(t *testing.T) {
	t.Parallel()
	doc := &Document{
		Header:  Header{TargetPlatform: 'w', XnbVersion: 5},
		Readers: []ReaderEntry{{TypeName: "BLANK"}},
	}
	_, err := (Container{}).Pack(doc)
	if !errors.Is(err, content.ErrUnknownReader) {
		t.Fatalf("expected ErrUnknownReader from Pack building the registry, got %v", err)
	}
}

func TestContainerUnpackTruncatedFileSize(t *testing.T) {
	t.Parallel()
	tex := &content.Texture2D{SurfaceFormat: content.SurfaceRgba8, Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}}
	doc := &Document{
		Header:  Header{TargetPlatform: 'w', XnbVersion: 5},
		Readers: []ReaderEntry{{TypeName: "Microsoft.Xna.Framework.Content.Texture2DReader"}},
		Content: tex,
	}
	data, err := (Container{}).Pack(doc)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	truncated := data[:len(data)-1]
	_, err = (Container{}).Unpack(truncated)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
