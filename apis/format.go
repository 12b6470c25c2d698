/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import (
	"fmt"
	"strings"
)

// Format selects how a Printer renders values.
//
// # Values
//
//   - Auto: fmt.Stringer when the value has one, otherwise Pretty.
//   - Pretty: Go-syntax, field-named rendering (kr/pretty).
//   - Spew: deep dump including concrete types (go-spew).
//
// Format values are plain integers and safe to share across goroutines.
// The zero value is Auto.
type Format int

const (
	// Auto prefers the value's own String method.
	Auto Format = iota
	// Pretty always renders the value structurally.
	Pretty
	// Spew renders a typed deep dump of the value.
	Spew
)

// String returns the canonical token for f.
// Unknown values render as "Unknown(<n>)" and never panic.
func (f Format) String() string {
	switch f {
	case Auto:
		return "auto"
	case Pretty:
		return "pretty"
	case Spew:
		return "spew"
	default:
		return fmt.Sprintf("Unknown(%d)", int(f))
	}
}

// ParseFormat parses a textual Format token, case-insensitively and
// ignoring surrounding whitespace. On failure it returns Auto and an error.
func ParseFormat(s string) (Format, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Auto, fmt.Errorf("shapeless(apis): empty format")
	}

	switch strings.ToLower(trimmed) {
	case "auto":
		return Auto, nil
	case "pretty":
		return Pretty, nil
	case "spew":
		return Spew, nil
	default:
		return Auto, fmt.Errorf("shapeless(apis): unknown format %q", s)
	}
}

// MustParseFormat is like ParseFormat but panics on invalid input.
func MustParseFormat(s string) Format {
	f, err := ParseFormat(s)
	if err != nil {
		panic(err)
	}
	return f
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are rejected rather than persisted as "Unknown(...)".
func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case Auto, Pretty, Spew:
		return []byte(f.String()), nil
	default:
		return nil, fmt.Errorf("shapeless(apis): cannot marshal unknown format %d", int(f))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
// On failure *f is left unchanged.
func (f *Format) UnmarshalText(text []byte) error {
	value, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = value
	return nil
}
