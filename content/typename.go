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

// Package content defines the XNB content-reader contract: the .NET-style
// TypeName used to label payloads in the reader table, the registry that
// resolves a 7-bit reader index to a concrete reader, and the readers
// themselves (Texture2D, SoundEffect, and the two SFD readers).
package content

import "strings"

// TypeName models a .NET assembly-qualified type name: a base name, an
// ordered list of generic subtypes, and an array flag.
type TypeName struct {
	Name     string
	Subtypes []TypeName
	IsArray  bool
}

// ParseTypeName splits a .NET type string on its backtick-delimited generic
// arity and bracketed subtype groups. Assembly qualifiers (text after a
// comma outside the subtype brackets) are dropped, at every nesting level.
func ParseTypeName(s string) TypeName {
	s = stripAssemblyQualifier(s)

	name := s
	var subtypeSpan string
	if idx := strings.IndexByte(s, '`'); idx >= 0 {
		rest := s[idx+1:]
		// rest begins with the arity digit(s), then "[[" ... "]]".
		start := strings.IndexByte(rest, '[')
		if start >= 0 {
			name = s[:idx]
			subtypeSpan = rest[start:]
		}
	}

	tn := TypeName{
		Name:    strings.TrimSpace(name),
		IsArray: strings.HasSuffix(strings.TrimSpace(name), "[]"),
	}
	if subtypeSpan != "" {
		tn.Subtypes = splitSubtypes(subtypeSpan)
	}
	return tn
}

func stripAssemblyQualifier(s string) string {
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		// Only strip the qualifier at the outermost level: a comma inside a
		// bracketed subtype group is part of that group's own text, which
		// splitSubtypes handles separately, so this only applies when there
		// are no subtype brackets preceding the comma.
		if !strings.Contains(s[:idx], "[[") {
			return s[:idx]
		}
	}
	return s
}

// splitSubtypes parses "[[sub1],[sub2],...]" into individual TypeNames,
// tracking bracket depth so nested generic subtypes split correctly.
func splitSubtypes(s string) []TypeName {
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var groups []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				groups = append(groups, s[start:i])
				start = i + 1
			}
		}
	}
	groups = append(groups, s[start:])

	result := make([]TypeName, 0, len(groups))
	for _, g := range groups {
		g = strings.Trim(g, "[]")
		result = append(result, ParseTypeName(g))
	}
	return result
}

// String formats the type as "Name`N[[sub1],[sub2],...]" when it carries
// subtypes, or just "Name" otherwise.
func (t TypeName) String() string {
	if len(t.Subtypes) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Subtypes))
	for i, s := range t.Subtypes {
		parts[i] = "[" + s.String() + "]"
	}
	return t.Name + "`" + itoa(len(t.Subtypes)) + "[" + strings.Join(parts, ",") + "]"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Equals compares two type names ignoring each side's assembly qualifier
// (already stripped at parse time); name, array flag and subtypes must all
// match, subtypes compared recursively.
func (t TypeName) Equals(other TypeName) bool {
	if t.Name != other.Name || t.IsArray != other.IsArray {
		return false
	}
	if len(t.Subtypes) != len(other.Subtypes) {
		return false
	}
	for i := range t.Subtypes {
		if !t.Subtypes[i].Equals(other.Subtypes[i]) {
			return false
		}
	}
	return true
}
