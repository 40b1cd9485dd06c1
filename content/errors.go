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

package content

import "errors"

var (
	// ErrUnknownReader is returned when a reader-table entry names a type
	// with no registered factory.
	ErrUnknownReader = errors.New("content: unknown reader")
	// ErrInvalidReaderIndex is returned when a 7-bit reader index is 0 or
	// beyond the registry's table.
	ErrInvalidReaderIndex = errors.New("content: invalid reader index")
	// ErrReaderTypeMismatch is returned when ReadFrom/WriteTo receives a
	// value of the wrong concrete type for its reader.
	ErrReaderTypeMismatch = errors.New("content: reader type mismatch")
	// ErrUnsupportedAudioFormat is returned when a SoundEffect's
	// format_size field is not the expected WAVEFORMATEX size.
	ErrUnsupportedAudioFormat = errors.New("content: unsupported audio format")
	// ErrUnsupportedTextureFormat is returned for Texture2D surface
	// formats this codec cannot decode (notably Ect1).
	ErrUnsupportedTextureFormat = errors.New("content: unsupported texture format")
	// ErrPaletteMiss is returned when SFDItem encoding cannot find a
	// pixel's color in its built palette.
	ErrPaletteMiss = errors.New("content: palette miss")
)
