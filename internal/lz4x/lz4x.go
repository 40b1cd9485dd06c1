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

// Package lz4x wraps github.com/pierrec/lz4/v4's block API as the opaque
// LZ4 primitive the XNB container describes: encode_block, decode_block,
// encode_bound.
package lz4x

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// EncodeBound returns the maximum compressed size for an input of n bytes.
func EncodeBound(n int) int {
	return lz4.CompressBlockBound(n)
}

// DecodeBlock decompresses src into a buffer of exactly decompressedSize
// bytes, as used by mobile-target XNB payloads.
func DecodeBlock(src []byte, decompressedSize int) ([]byte, error) {
	dst := make([]byte, decompressedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4x: decode: %w", err)
	}
	if n != decompressedSize {
		return nil, fmt.Errorf("lz4x: decoded %d bytes, want %d", n, decompressedSize)
	}
	return dst, nil
}

// EncodeBlock compresses src, returning the compressed slice trimmed to its
// actual length.
func EncodeBlock(src []byte) ([]byte, error) {
	dst := make([]byte, EncodeBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, fmt.Errorf("lz4x: encode: %w", err)
	}
	return dst[:n], nil
}
