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

package lzx

import "fmt"

const defaultFrameSize = 0x8000
const maxChunkSize = 0x10000

// Decompress drives an LZX decoder across the chunked outer framing used by
// compressed XNB payloads: each chunk is either an explicit
// frame_size/block_size pair (flagged by a leading 0xFF byte) or an implicit
// 0x8000-byte frame whose 16-bit block_size immediately follows. compressedTodo
// is the number of raw compressed bytes available for this payload.
func Decompress(data []byte, compressedTodo, windowBits int) ([]byte, error) {
	dec, err := New(windowBits)
	if err != nil {
		return nil, err
	}

	br := NewBitReader(data)
	var output []byte

	for br.BytePos() < compressedTodo {
		flag, err := br.ReadU8()
		if err != nil {
			return nil, fmt.Errorf("%w: reading chunk flag", ErrEofWithDataRemaining)
		}

		var frameSize, blockSize int
		if flag == 0xFF {
			fs, err := br.ReadI16Swapped()
			if err != nil {
				return nil, err
			}
			bs, err := br.ReadI16Swapped()
			if err != nil {
				return nil, err
			}
			frameSize = int(fs)
			blockSize = int(bs)
		} else {
			br.Rewind(1)
			bs, err := br.ReadI16Swapped()
			if err != nil {
				return nil, err
			}
			frameSize = defaultFrameSize
			blockSize = int(bs)
		}

		if blockSize == 0 || frameSize == 0 {
			break
		}
		if blockSize > maxChunkSize || frameSize > maxChunkSize {
			return nil, ErrInvalidSize
		}

		frame, err := dec.decompress(br, frameSize, blockSize)
		if err != nil {
			return nil, err
		}
		output = append(output, frame...)
	}

	return output, nil
}
