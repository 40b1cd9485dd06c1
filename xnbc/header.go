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

package xnbc

import (
	"fmt"

	"github.com/sfdtools/xnbc/internal/binary"
)

// Compression identifies which payload codec, if any, follows the prologue.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionLzx
	CompressionLz4
)

const (
	flagHiDef = 1 << 0
	flagLz4   = 1 << 6
	flagLzx   = 1 << 7

	prologueSize = 14
)

// Header is the fixed 14-byte XNB prologue, minus the decompressed-size
// field which only exists when Compression != CompressionNone.
type Header struct {
	TargetPlatform byte
	XnbVersion     uint8
	HiDef          bool
	Compression    Compression
}

var knownTargets = map[byte]bool{'w': true, 'm': true, 'x': true, 'a': true, 'i': true}

// parseHeader reads the first 10 bytes of the prologue, through the file
// size field (the caller validates it against the actual input length and
// reads decompressed_size itself when compressed). Unknown target platforms and
// XNB versions are warned via warn rather than failing.
func parseHeader(r *binary.Reader, warn func(string)) (Header, uint32, error) {
	magic, err := r.ReadBytes(3)
	if err != nil {
		return Header{}, 0, err
	}
	if string(magic) != "XNB" {
		return Header{}, 0, fmt.Errorf("%w: got %q", ErrBadMagic, magic)
	}

	target, err := r.U8()
	if err != nil {
		return Header{}, 0, err
	}
	if !knownTargets[target] {
		warn(fmt.Sprintf("xnbc: unknown target platform %q", target))
	}

	version, err := r.U8()
	if err != nil {
		return Header{}, 0, err
	}
	if version != 3 && version != 4 && version != 5 {
		warn(fmt.Sprintf("xnbc: unknown XNB version %d", version))
	}

	flags, err := r.U8()
	if err != nil {
		return Header{}, 0, err
	}
	h := Header{TargetPlatform: target, XnbVersion: version, HiDef: flags&flagHiDef != 0}
	switch {
	case flags&flagLzx != 0:
		h.Compression = CompressionLzx
	case flags&flagLz4 != 0:
		h.Compression = CompressionLz4
	default:
		h.Compression = CompressionNone
	}

	fileSize, err := r.U32LE()
	if err != nil {
		return Header{}, 0, err
	}
	return h, fileSize, nil
}

// emitHeader writes the prologue: 10 bytes when uncompressed, 14 when
// compressed. file_size and, when compressed, decompressed_size are left as
// placeholders for the caller to back-patch once the payload length is known.
func emitHeader(w *binary.Writer, h Header) {
	w.WriteChars("XNB")
	w.U8(h.TargetPlatform)
	w.U8(h.XnbVersion)

	var flags byte
	// Open Question (a): the source computed this with an
	// operator-precedence bug; this resolves it as (hidef?1:0)|mask.
	if h.HiDef {
		flags |= flagHiDef
	}
	switch h.Compression {
	case CompressionLzx:
		flags |= flagLzx
	case CompressionLz4:
		flags |= flagLz4
	}
	w.U8(flags)

	w.U32LE(0) // file_size, back-patched by Container.Pack
	if h.Compression != CompressionNone {
		w.U32LE(0) // decompressed_size, back-patched by Container.Pack
	}
}
