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

package strategy

import (
	"reflect"
	"strings"
	"sync"

	"dirpx.dev/shapeless/apis"
	uref "dirpx.dev/shapeless/utils/reflect"
)

// NewReflectStrategy returns the fallback strategy. It names the nearest
// named type reachable from the input as "pkg.Type" and memoizes results
// per type and naming knobs.
func NewReflectStrategy() apis.Strategy {
	return &reflectStrategy{}
}

type reflectStrategy struct {
	memo sync.Map // memoKey -> string
}

var _ apis.Strategy = (*reflectStrategy)(nil)

// memoKey carries every Config field that changes the computed name.
type memoKey struct {
	t         reflect.Type
	builtins  bool
	qualified bool
	preferV   bool
	depth     int
}

func (s *reflectStrategy) TryResolve(v any, cfg apis.Config) (string, bool) {
	if v == nil {
		return "", false
	}
	return s.name(reflect.TypeOf(v), cfg), true
}

func (s *reflectStrategy) TryResolveType(t reflect.Type, cfg apis.Config) (string, bool) {
	if t == nil {
		return "", false
	}
	return s.name(t, cfg), true
}

func (s *reflectStrategy) name(t reflect.Type, cfg apis.Config) string {
	k := memoKey{
		t:         t,
		builtins:  cfg.IncludeBuiltins,
		qualified: cfg.QualifiedNames,
		preferV:   cfg.MapPreferElem,
		depth:     cfg.MaxUnwrap,
	}
	if got, ok := s.memo.Load(k); ok {
		return got.(string)
	}
	n := compute(t, cfg)
	s.memo.Store(k, n)
	return n
}

// compute yields "" for anonymous types and, unless builtins are
// included, for predeclared ones.
//
// The short form comes from reflect's own rendering, which prefixes the
// package name ("main.Point", "rand.Rand" for math/rand/v2) rather than
// the last import path element.
func compute(t reflect.Type, cfg apis.Config) string {
	named, err := uref.Normalize(t, cfg)
	if err != nil {
		return ""
	}

	pkg := named.PkgPath()
	switch {
	case pkg == "" && !cfg.IncludeBuiltins:
		return ""
	case pkg != "" && cfg.QualifiedNames:
		return pkg + "." + stripTypeArgs(named.Name())
	default:
		return stripTypeArgs(named.String())
	}
}

// stripTypeArgs drops a generic instantiation suffix: "x.Pair[int,string]"
// becomes "x.Pair".
func stripTypeArgs(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
