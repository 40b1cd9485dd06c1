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

// Package lzx implements the LZX sliding-window Huffman decompressor used by
// compressed XNB payloads: canonical Huffman table construction, the
// Verbatim/Aligned/Uncompressed block types, and the repeated-offset LRU.
// There is deliberately no encoder: XNB containers that need compression on
// disk either ship uncompressed or use LZ4 (see internal/lz4x).
package lzx

import "errors"

// Sentinel errors for LZX decompression failures. Each is wrapped with
// call-specific context via fmt.Errorf at the point of failure.
var (
	// ErrWindowSizeOutOfRange is returned by New when windowBits is outside [15,21].
	ErrWindowSizeOutOfRange = errors.New("lzx: window size out of range")
	// ErrInvalidBlockType is returned for a block-type field outside {1,2,3}.
	ErrInvalidBlockType = errors.New("lzx: invalid block type")
	// ErrIntelE8NotSupported is returned when the one-time Intel-E8 header bit is set.
	ErrIntelE8NotSupported = errors.New("lzx: Intel E8 preprocessing not supported")
	// ErrTableOverrun is returned when canonical Huffman table construction overflows its table.
	ErrTableOverrun = errors.New("lzx: huffman table overrun")
	// ErrWindowRunOverflow is returned when a literal/match run would exceed the requested frame.
	ErrWindowRunOverflow = errors.New("lzx: window run overflow")
	// ErrBlockOverrun is returned when an uncompressed block run exceeds the container's block budget.
	ErrBlockOverrun = errors.New("lzx: block overrun")
	// ErrInvalidSize is returned by the outer chunk framing when a frame or block size exceeds 0x10000.
	ErrInvalidSize = errors.New("lzx: invalid frame or block size")
	// ErrEofWithDataRemaining is returned when the compressed stream ends before the requested frame is filled.
	ErrEofWithDataRemaining = errors.New("lzx: end of input with data remaining")
)
