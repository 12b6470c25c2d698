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

// Package printer renders values for humans.
//
// Three formats are available, selected by apis.Config.Format:
//
//   - Auto prefers a value's own String method and falls back to Pretty.
//   - Pretty renders Go syntax with field names via github.com/kr/pretty.
//   - Spew renders a typed deep dump via github.com/davecgh/go-spew.
//
// Pointers are dereferenced before structural rendering, so a handle that
// holds *Point prints the Point it refers to.
package printer

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/kr/pretty"

	"dirpx.dev/shapeless/apis"
)

// Nil is the representation of a nil value in every format.
const Nil = "<nil>"

// New returns the Printer for cfg.Format. Unknown formats behave like Auto.
func New(cfg apis.Config) apis.Printer {
	switch cfg.Format {
	case apis.Pretty:
		return prettyPrinter{}
	case apis.Spew:
		return spewPrinter{cs: newSpewConfig()}
	default:
		return autoPrinter{}
	}
}

func newSpewConfig() *spew.ConfigState {
	return &spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
}

// autoPrinter honours fmt.Stringer, then falls back to pretty.
type autoPrinter struct{}

func (autoPrinter) Sprint(v any) string {
	if isNil(v) {
		return Nil
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return prettyPrinter{}.Sprint(v)
}

type prettyPrinter struct{}

func (prettyPrinter) Sprint(v any) string {
	if isNil(v) {
		return Nil
	}
	return pretty.Sprint(indirect(v))
}

type spewPrinter struct {
	cs *spew.ConfigState
}

func (p spewPrinter) Sprint(v any) string {
	if isNil(v) {
		return Nil
	}
	return strings.TrimRight(p.cs.Sdump(indirect(v)), "\n")
}

// indirect strips one level of pointer so structural output shows the
// pointee rather than an address.
func indirect(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		return rv.Elem().Interface()
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
