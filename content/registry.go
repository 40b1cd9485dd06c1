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

import (
	"fmt"
	"sync"

	"github.com/sfdtools/xnbc/internal/binary"
)

// Reader is the typed encoder/decoder contract every supported XNB content
// type implements. ReadFrom/WriteTo operate on the raw payload; Exporter and
// Importer are optional capabilities checked via a type assertion.
type Reader interface {
	Type() TypeName
	IsPolymorphic() bool
	ReadFrom(r *binary.Reader, reg *Registry) (any, error)
	WriteTo(w *binary.Writer, value any, reg *Registry) error
}

// SidecarStore is the pair of callbacks a Reader's Export/Import use to
// write and read media files without the content package knowing anything
// about the filesystem.
type SidecarStore interface {
	Emit(name string, data []byte) (string, error)
	Load(name string) ([]byte, error)
}

// Exporter is an optional Reader capability: readers that produce sidecar
// media (Texture2D, SoundEffect, SFDItem) implement it.
type Exporter interface {
	Export(value any, store SidecarStore) (any, error)
}

// Importer is the inverse of Exporter, rebuilding a value from its exported
// form plus sidecar media.
type Importer interface {
	Import(exported any, store SidecarStore) (any, error)
}

var (
	factoryMu sync.RWMutex
	factories = map[string]func() Reader{}
)

// RegisterReaderFactory makes a reader constructor available under the base
// (assembly-qualifier-stripped) .NET type name it handles. Content readers
// call this from an init function, mirroring the codec registry pattern.
func RegisterReaderFactory(baseName string, factory func() Reader) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[baseName] = factory
}

// NewReaderByName constructs a fresh Reader instance for the given
// assembly-qualified type name, or reports UnknownReader.
func NewReaderByName(typeName string) (Reader, error) {
	base := ParseTypeName(typeName).Name
	factoryMu.RLock()
	factory, ok := factories[base]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReader, typeName)
	}
	return factory(), nil
}

// Registry is the ordered table of readers present in one XNB document,
// resolved from the reader-index table on unpack and rebuilt on pack. It
// also collects non-fatal warnings (unknown target platform, unknown XNB
// version, mip levels beyond 0) raised while readers run.
type Registry struct {
	readers  []Reader
	Warnings []string
}

// Warn records a non-fatal diagnostic. Logging, if any, is the caller's
// responsibility; Warnings never affects control flow.
func (reg *Registry) Warn(msg string) {
	reg.Warnings = append(reg.Warnings, msg)
}

// NewRegistry returns an empty registry; readers are appended in on-disk
// order via Add.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a reader, returning its 1-based index.
func (reg *Registry) Add(r Reader) int {
	reg.readers = append(reg.readers, r)
	return len(reg.readers)
}

// Len returns the number of readers registered.
func (reg *Registry) Len() int {
	return len(reg.readers)
}

// At resolves a 1-based reader index to its Reader, failing
// InvalidReaderIndex when index is 0, negative, or beyond the table.
func (reg *Registry) At(index int) (Reader, error) {
	if index < 1 || index > len(reg.readers) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidReaderIndex, index)
	}
	return reg.readers[index-1], nil
}

// IndexOf returns the 1-based index of r within the registry, or 0 if r is
// not present: the index a polymorphic sub-payload is prefixed with. No
// reader in this package writes polymorphic sub-payloads.
func (reg *Registry) IndexOf(r Reader) int {
	for i, existing := range reg.readers {
		if existing == r {
			return i + 1
		}
	}
	return 0
}
