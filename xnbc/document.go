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
)

// ExportDocument runs the root reader's Export capability (when present),
// replacing doc.Content with its sidecar-aware exported form. Readers
// without an Exporter capability (currently SFDAnimationReader) leave
// Content untouched.
func ExportDocument(doc *Document, store content.SidecarStore) error {
	if len(doc.Readers) == 0 {
		return nil
	}
	rdr, err := content.NewReaderByName(doc.Readers[0].TypeName)
	if err != nil {
		return err
	}
	exporter, ok := rdr.(content.Exporter)
	if !ok {
		return nil
	}
	exported, err := exporter.Export(doc.Content, store)
	if err != nil {
		return fmt.Errorf("xnbc: export: %w", err)
	}
	doc.Content = exported
	return nil
}

// ImportDocument runs the root reader's Import capability, replacing
// doc.Content (previously an exported form) with the reconstructed typed
// value ready for Container.Pack.
func ImportDocument(doc *Document, store content.SidecarStore) error {
	if len(doc.Readers) == 0 {
		return nil
	}
	rdr, err := content.NewReaderByName(doc.Readers[0].TypeName)
	if err != nil {
		return err
	}
	importer, ok := rdr.(content.Importer)
	if !ok {
		return nil
	}
	imported, err := importer.Import(doc.Content, store)
	if err != nil {
		return fmt.Errorf("xnbc: import: %w", err)
	}
	doc.Content = imported
	return nil
}
