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

package binary

import (
	"errors"
	"testing"
)

func TestReaderScalarRoundTrip(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.U8(0x42)
	w.I8(-5)
	w.U16LE(0xBEEF)
	w.I16LE(-1000)
	w.U32LE(0xDEADBEEF)
	w.I32LE(-123456)
	w.F32LE(3.5)
	w.F64LE(2.71828)
	w.String("hello")

	r := NewReader(w.Bytes())

	if v, err := r.U8(); err != nil || v != 0x42 {
		t.Fatalf("U8 = %v, %v", v, err)
	}
	if v, err := r.I8(); err != nil || v != -5 {
		t.Fatalf("I8 = %v, %v", v, err)
	}
	if v, err := r.U16LE(); err != nil || v != 0xBEEF {
		t.Fatalf("U16LE = %v, %v", v, err)
	}
	if v, err := r.I16LE(); err != nil || v != -1000 {
		t.Fatalf("I16LE = %v, %v", v, err)
	}
	if v, err := r.U32LE(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("U32LE = %v, %v", v, err)
	}
	if v, err := r.I32LE(); err != nil || v != -123456 {
		t.Fatalf("I32LE = %v, %v", v, err)
	}
	if v, err := r.F32LE(); err != nil || v != 3.5 {
		t.Fatalf("F32LE = %v, %v", v, err)
	}
	if v, err := r.F64LE(); err != nil || v != 2.71828 {
		t.Fatalf("F64LE = %v, %v", v, err)
	}
	if v, err := r.String(); err != nil || v != "hello" {
		t.Fatalf("String = %q, %v", v, err)
	}
}

func TestReaderTruncated(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0x01})
	if _, err := r.U32LE(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestVarintBoundary(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.Varint(128)
	want := []byte{0x80, 0x01}
	if string(w.Bytes()) != string(want) {
		t.Fatalf("encode(128) = % x, want % x", w.Bytes(), want)
	}

	r := NewReader([]byte{0xFF, 0x7F})
	v, err := r.Varint()
	if err != nil {
		t.Fatalf("Varint: %v", err)
	}
	if v != 16383 {
		t.Fatalf("decode([0xFF,0x7F]) = %d, want 16383", v)
	}
}

func TestVarintRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []uint32{0, 1, 63, 64, 127, 128, 16383, 16384, 1 << 20, 1<<31 - 1} {
		w := NewWriter()
		w.Varint(n)
		r := NewReader(w.Bytes())
		got, err := r.Varint()
		if err != nil {
			t.Fatalf("Varint(%d): %v", n, err)
		}
		if got != n {
			t.Fatalf("round trip %d -> %d", n, got)
		}
	}
}

func TestWriterTrim(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	for range 200 {
		w.U8(1)
	}
	w.Trim()
	if cap(w.Bytes()) != len(w.Bytes()) {
		t.Fatalf("Trim left spare capacity: len=%d cap=%d", len(w.Bytes()), cap(w.Bytes()))
	}
}

func TestPatchU32LE(t *testing.T) {
	t.Parallel()

	w := NewWriter()
	w.U32LE(0)
	w.WriteChars("rest")
	w.PatchU32LE(0, 0x01020304)
	r := NewReader(w.Bytes())
	v, _ := r.U32LE()
	if v != 0x01020304 {
		t.Fatalf("PatchU32LE = %#x", v)
	}
}
