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

// Package xnbc implements the XNB binary container codec: header parsing,
// the LZX/LZ4 compression framing, the reader-index table, and dispatch to
// the content package's typed readers.
package xnbc

import "errors"

// Sentinel errors surfaced by Container.Unpack/Pack. Each is wrapped with
// call-specific context via fmt.Errorf at the point of failure.
var (
	ErrBadMagic                   = errors.New("xnbc: bad magic")
	ErrTruncated                  = errors.New("xnbc: truncated input")
	ErrUnsupportedSharedResources = errors.New("xnbc: shared resources not supported")
	ErrInvalidCompressedSize      = errors.New("xnbc: invalid compressed size")
)
