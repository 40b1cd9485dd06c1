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

	"github.com/sfdtools/xnbc/content"
	"github.com/sfdtools/xnbc/internal/binary"
	"github.com/sfdtools/xnbc/internal/lz4x"
	"github.com/sfdtools/xnbc/lzx"
)

// lzxWindowBits is the LZX sliding-window size XNA's content compressor
// used for every target; unlike the general LZX format, XNB does not store
// the window size in its framing.
const lzxWindowBits = 16

// ReaderEntry names one content reader present in the document, in the
// order the container wrote them.
type ReaderEntry struct {
	TypeName string
	Version  int32
}

// Document is the fully decoded form of an XNB file: its header, the
// ordered reader table, and the dispatched root content value.
type Document struct {
	Header   Header
	Readers  []ReaderEntry
	Content  any
	Warnings []string
}

// Container holds no state of its own; Unpack and Pack are pure functions
// over byte slices, kept as methods for parity with the source's object
// shape and to leave room for future per-call options.
type Container struct{}

// Unpack parses a complete XNB file, decompressing as needed and
// dispatching the root payload to its registered content.Reader.
func (Container) Unpack(data []byte) (*Document, error) {
	reg := content.NewRegistry()

	hr := binary.NewReader(data)
	header, fileSize, err := parseHeader(hr, reg.Warn)
	if err != nil {
		return nil, err
	}
	if int(fileSize) != len(data) {
		return nil, fmt.Errorf("%w: file_size %d, actual %d", ErrTruncated, fileSize, len(data))
	}

	var payload []byte
	if header.Compression != CompressionNone {
		decompressedSize, err := hr.U32LE()
		if err != nil {
			return nil, err
		}
		compressed := data[hr.Pos():fileSize]
		switch header.Compression {
		case CompressionLzx:
			payload, err = lzx.Decompress(compressed, len(compressed), lzxWindowBits)
			if err != nil {
				return nil, err
			}
		case CompressionLz4:
			payload, err = lz4x.DecodeBlock(compressed, int(decompressedSize))
			if err != nil {
				return nil, err
			}
		}
		if uint32(len(payload)) != decompressedSize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, want %d", ErrInvalidCompressedSize, len(payload), decompressedSize)
		}
	} else {
		payload = data[hr.Pos():fileSize]
	}

	pr := binary.NewReader(payload)

	readerCount, err := pr.Varint()
	if err != nil {
		return nil, err
	}
	entries := make([]ReaderEntry, readerCount)
	for i := range entries {
		name, err := pr.String()
		if err != nil {
			return nil, err
		}
		version, err := pr.I32LE()
		if err != nil {
			return nil, err
		}
		entries[i] = ReaderEntry{TypeName: name, Version: version}

		rdr, err := content.NewReaderByName(name)
		if err != nil {
			return nil, err
		}
		reg.Add(rdr)
	}

	sharedResourceCount, err := pr.Varint()
	if err != nil {
		return nil, err
	}
	if sharedResourceCount != 0 {
		return nil, fmt.Errorf("%w: count %d", ErrUnsupportedSharedResources, sharedResourceCount)
	}

	rootIndex, err := pr.Varint()
	if err != nil {
		return nil, err
	}
	rootReader, err := reg.At(int(rootIndex))
	if err != nil {
		return nil, err
	}
	rootValue, err := rootReader.ReadFrom(pr, reg)
	if err != nil {
		return nil, err
	}

	return &Document{Header: header, Readers: entries, Content: rootValue, Warnings: reg.Warnings}, nil
}

// Pack serializes a Document back into a complete XNB file. Target
// platforms 'a' and 'i' select LZ4 compression; every other target writes
// uncompressed (there is no LZX encoder, per the core's non-goals).
func (Container) Pack(doc *Document) ([]byte, error) {
	reg := content.NewRegistry()
	for _, entry := range doc.Readers {
		rdr, err := content.NewReaderByName(entry.TypeName)
		if err != nil {
			return nil, err
		}
		reg.Add(rdr)
	}
	rootReader, err := reg.At(1)
	if err != nil {
		return nil, err
	}

	payload := binary.NewWriter()
	payload.Varint(uint32(len(doc.Readers)))
	for _, entry := range doc.Readers {
		payload.String(entry.TypeName)
		payload.I32LE(entry.Version)
	}
	payload.Varint(0) // shared resources, always 0
	payload.Varint(1) // root reader index, always 1
	if err := rootReader.WriteTo(payload, doc.Content, reg); err != nil {
		return nil, err
	}
	payloadBytes := payload.Bytes()

	useLz4 := doc.Header.TargetPlatform == 'a' || doc.Header.TargetPlatform == 'i'
	header := doc.Header
	if useLz4 {
		header.Compression = CompressionLz4
	} else {
		header.Compression = CompressionNone
	}

	out := binary.NewWriter()
	emitHeader(out, header)

	var finalPayload []byte
	var decompressedSize uint32
	if useLz4 {
		decompressedSize = uint32(len(payloadBytes))
		compressed, err := lz4x.EncodeBlock(payloadBytes)
		if err != nil {
			return nil, err
		}
		finalPayload = compressed
	} else {
		finalPayload = payloadBytes
	}
	out.WriteBytes(finalPayload)

	out.PatchU32LE(6, uint32(out.Len()))
	if useLz4 {
		out.PatchU32LE(10, decompressedSize)
	}
	return out.Bytes(), nil
}
