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

// Decoder holds the sliding window and block state carried across chunks
// of a single compressed stream. It is not safe for concurrent use; callers
// decompressing multiple independent streams should use one Decoder each.
type Decoder struct {
	windowBits int
	windowSize int
	window     []byte
	windowPosn int

	r0, r1, r2 uint32

	mainElements int

	e8Checked bool

	blockType      int
	blockRemaining int
	blockHeaderRead bool

	maintree *huffTable
	lentree  *huffTable
	alitree  *huffTable
}

// New builds a Decoder for the given window size in bits, which must be in
// [15,21] per the DATA MODEL window-size table.
func New(windowBits int) (*Decoder, error) {
	if windowBits < 15 || windowBits > 21 {
		return nil, fmt.Errorf("%w: %d", ErrWindowSizeOutOfRange, windowBits)
	}
	initTables()

	mainElements := numChars + numPositionSlots(windowBits)*8

	d := &Decoder{
		windowBits:   windowBits,
		windowSize:   1 << uint(windowBits),
		r0:           1,
		r1:           1,
		r2:           1,
		mainElements: mainElements,
	}
	d.window = make([]byte, d.windowSize)
	d.maintree = newHuffTable(mainElements, mainTreeTableBits)
	d.lentree = newHuffTable(numSecondaryLengths+1, lengthTreeTableBits)
	d.alitree = newHuffTable(1<<3, alignedTableBits)
	return d, nil
}

// decodeHeaderTables reads the block-type-specific header that precedes a
// Verbatim or Aligned block's token stream: an optional aligned-offset tree
// for Aligned blocks, then the main tree (split into char and length-slot
// halves) and the length tree, each coded via readLengths against the
// tree's previous state (so unchanged lengths need not be retransmitted).
func (d *Decoder) decodeHeaderTables(br *BitReader, aligned bool) error {
	if aligned {
		for i := 0; i < 8; i++ {
			d.alitree.lengths[i] = byte(br.ReadBits(3))
		}
		if err := d.alitree.build(); err != nil {
			return fmt.Errorf("aligned tree: %w", err)
		}
	}

	if err := readLengths(br, d.maintree.lengths, 0, numChars); err != nil {
		return fmt.Errorf("main tree (chars): %w", err)
	}
	if err := readLengths(br, d.maintree.lengths, numChars, d.mainElements); err != nil {
		return fmt.Errorf("main tree (slots): %w", err)
	}
	if err := d.maintree.build(); err != nil {
		return fmt.Errorf("main tree: %w", err)
	}

	if err := readLengths(br, d.lentree.lengths, 0, numSecondaryLengths); err != nil {
		return fmt.Errorf("length tree: %w", err)
	}
	if err := d.lentree.build(); err != nil {
		return fmt.Errorf("length tree: %w", err)
	}
	return nil
}

// decompress inflates exactly frameSize bytes of output from the next
// blockSize-bounded span of compressed input, maintaining window and block
// state across calls. Output comes from the tail of the sliding window.
// blockSize bounds the raw bytes this call may consume from the underlying
// Uncompressed block body; exceeding it fails BlockOverrun.
func (d *Decoder) decompress(br *BitReader, frameSize, blockSize int) ([]byte, error) {
	if !d.e8Checked {
		d.e8Checked = true
		if br.ReadBits(1) != 0 {
			return nil, ErrIntelE8NotSupported
		}
	}

	startPos := br.BytePos()
	togo := frameSize
	for togo > 0 {
		if d.blockRemaining == 0 {
			bt := int(br.ReadBits(3))
			hi := br.ReadBits(16)
			lo := br.ReadBits(8)
			size := int(hi<<8 | lo)
			switch bt {
			case blockTypeVerbatim:
				if err := d.decodeHeaderTables(br, false); err != nil {
					return nil, err
				}
			case blockTypeAligned:
				if err := d.decodeHeaderTables(br, true); err != nil {
					return nil, err
				}
			case blockTypeUncompressed:
				br.Align()
				r0, err := br.ReadU32LERaw()
				if err != nil {
					return nil, err
				}
				r1, err := br.ReadU32LERaw()
				if err != nil {
					return nil, err
				}
				r2, err := br.ReadU32LERaw()
				if err != nil {
					return nil, err
				}
				d.r0, d.r1, d.r2 = r0, r1, r2
			default:
				return nil, fmt.Errorf("%w: %d", ErrInvalidBlockType, bt)
			}
			d.blockType = bt
			d.blockRemaining = size
			d.blockHeaderRead = true
		}

		run := d.blockRemaining
		if run > togo {
			run = togo
		}

		switch d.blockType {
		case blockTypeUncompressed:
			if br.BytePos()-startPos+run > blockSize {
				return nil, fmt.Errorf("%w: uncompressed run", ErrBlockOverrun)
			}
			for k := 0; k < run; k++ {
				v, err := br.ReadU8()
				if err != nil {
					return nil, err
				}
				d.window[d.windowPosn] = v
				d.windowPosn = (d.windowPosn + 1) % d.windowSize
			}
			d.blockRemaining -= run
			togo -= run
		default:
			if err := d.decodeTokens(br, run); err != nil {
				return nil, err
			}
			togo -= run
			d.blockRemaining -= run
		}
	}

	br.Align()

	start := d.windowPosn - frameSize
	if d.windowPosn == 0 {
		start = d.windowSize - frameSize
	}
	if start < 0 {
		// Output wraps the end of the window; stitch the two spans.
		out := make([]byte, frameSize)
		n := copy(out, d.window[d.windowSize+start:])
		copy(out[n:], d.window[:d.windowPosn])
		return out, nil
	}
	out := make([]byte, frameSize)
	copy(out, d.window[start:start+frameSize])
	return out, nil
}

// decodeTokens emits exactly n literal/match bytes into the window,
// decoding main-tree symbols until that many bytes have been produced.
func (d *Decoder) decodeTokens(br *BitReader, n int) error {
	produced := 0
	for produced < n {
		sym := d.maintree.readSymbol(br)
		if sym < numChars {
			d.window[d.windowPosn] = byte(sym)
			d.windowPosn = (d.windowPosn + 1) % d.windowSize
			produced++
			continue
		}

		slot := (sym - numChars) >> 3
		lengthHeader := (sym - numChars) & 7

		var matchLength int
		if lengthHeader == 7 {
			lsym := d.lentree.readSymbol(br)
			matchLength = numPrimaryLengths + minMatch + int(lsym)
		} else {
			matchLength = int(lengthHeader) + minMatch
		}

		var offset uint32
		switch slot {
		case 0:
			offset = d.r0
		case 1:
			offset = d.r1
			d.r1, d.r0 = d.r0, offset
		case 2:
			offset = d.r2
			d.r2, d.r0 = d.r0, offset
		default:
			extra := extraBits[slot]
			var verbatimBits uint32
			if d.blockType == blockTypeAligned && extra >= 3 {
				verbatimBits = br.ReadBits(int(extra) - 3) << 3
				verbatimBits |= d.alitree.readSymbol(br)
			} else {
				verbatimBits = br.ReadBits(int(extra))
			}
			offset = positionBase[slot] + verbatimBits - 2
			d.r2, d.r1, d.r0 = d.r1, d.r0, offset
		}

		if offset == 0 {
			offset = 1
		}

		if produced+matchLength > n {
			return fmt.Errorf("%w: match overran requested run", ErrWindowRunOverflow)
		}

		srcPos := d.windowPosn - int(offset)
		if srcPos < 0 {
			srcPos += d.windowSize
		}
		for k := 0; k < matchLength; k++ {
			d.window[d.windowPosn] = d.window[srcPos]
			d.windowPosn = (d.windowPosn + 1) % d.windowSize
			srcPos = (srcPos + 1) % d.windowSize
			produced++
		}
	}
	return nil
}
