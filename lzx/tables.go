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

import "sync"

const (
	numChars            = 256
	minMatch            = 2
	numPrimaryLengths   = 7
	numSecondaryLengths = 249
	pretreeNumElements  = 20

	pretreeTableBits = 6
	mainTreeTableBits = 12
	lengthTreeTableBits = 12
	alignedTableBits  = 7

	blockTypeVerbatim     = 1
	blockTypeAligned      = 2
	blockTypeUncompressed = 3
)

var (
	tablesOnce   sync.Once
	extraBits    [52]uint32
	positionBase [52]uint32
)

// initTables lazily computes the module-level LZX static tables, matching
// the reference decoder: extra_bits steps up in pairs, and position_base is
// its running power-of-two sum.
func initTables() {
	tablesOnce.Do(func() {
		var j uint32
		for i := 0; i <= 50; i += 2 {
			extraBits[i] = j
			extraBits[i+1] = j
			if i != 0 && j < 17 {
				j++
			}
		}
		var pos uint32
		for i := 0; i <= 50; i++ {
			positionBase[i] = pos
			pos += 1 << extraBits[i]
		}
	})
}

// numPositionSlots returns S for a given window size in bits, per the table
// in DATA MODEL: b in [15,21] maps to S in {30,32,34,36,38,42,50}.
func numPositionSlots(windowBits int) int {
	slots := []int{30, 32, 34, 36, 38, 42, 50}
	return slots[windowBits-15]
}
