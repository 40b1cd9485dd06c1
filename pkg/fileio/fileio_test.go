package fileio

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenFileRegular(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	content := []byte("Hello, World!")

	if err := os.WriteFile(testFile, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	reader, err := OpenFile(testFile)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer reader.Close()

	data, err := ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("content mismatch: got %s, want %s", data, content)
	}
}

func TestOpenFileGzip(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.xnb.gz")
	content := []byte("compressed content")

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gw := gzip.NewWriter(f)
	if _, err := gw.Write(content); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	gw.Close()
	f.Close()

	reader, err := OpenFile(testFile)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer reader.Close()

	data, err := ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("content mismatch: got %s, want %s", data, content)
	}
}

func TestGetExtension(t *testing.T) {
	cases := map[string]string{
		"foo.xnb":    "xnb",
		"foo.xnb.gz": "xnb",
		"foo":        "",
		"FOO.PNG":    "png",
	}
	for in, want := range cases {
		if got := GetExtension(in); got != want {
			t.Errorf("GetExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckExists(t *testing.T) {
	tmpDir := t.TempDir()
	if err := CheckExists(tmpDir); err != nil {
		t.Errorf("CheckExists(%q) = %v, want nil", tmpDir, err)
	}
	if err := CheckExists(filepath.Join(tmpDir, "missing")); err == nil {
		t.Errorf("CheckExists(missing) = nil, want error")
	}
}

func TestDirStoreEmitLoad(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewDirStore(tmpDir, "hero")

	name, err := store.Emit("hero.png", []byte{0x89, 0x50, 0x4E, 0x47})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if name != "hero.png" {
		t.Fatalf("Emit name = %q, want hero.png", name)
	}

	data, err := store.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(data, []byte{0x89, 0x50, 0x4E, 0x47}) {
		t.Errorf("Load content mismatch: %x", data)
	}
	if store.Base() != "hero" {
		t.Errorf("Base() = %q, want hero", store.Base())
	}
}
