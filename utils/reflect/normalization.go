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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/shapeless/apis"
	"dirpx.dev/shapeless/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("shapeless(reflect): nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping containers)
	// does not contain a named type (e.g., anonymous struct, func, interface{}).
	ErrReflectTypeNotNamed = errors.New("shapeless(reflect): type has no nearest named type")
)

// Normalize unwraps containers according to cfg (MaxUnwrap/MapPreferElem)
// and returns the nearest named inner type, or an error if none is found.
//
// Unwrapping policy:
//   - a named type is returned as is, containers included
//     ("type IDs []int" names itself, not int);
//   - ptr/slice/array/chan -> Elem();
//   - map[K]V: the preferred side (V if MapPreferElem, else K) wins when a
//     named type sits on it behind ptr/slice/array/chan, then the other
//     side; if neither does, unwrapping continues into V.
//   - anything else unnamed has no name.
//
// Every Elem() step counts against MaxUnwrap. If MaxUnwrap <= 0,
// DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for ; depth > 0; depth-- {
		if named(t) {
			return t, nil
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			first, second := t.Elem(), t.Key()
			if !cfg.MapPreferElem {
				first, second = second, first
			}
			if n := peel(first, depth-1); n != nil {
				return n, nil
			}
			if n := peel(second, depth-1); n != nil {
				return n, nil
			}
			t = t.Elem()
		default:
			return nil, ErrReflectTypeNotNamed
		}
	}

	// Depth exhausted: only acceptable if we stopped on a named type.
	if named(t) {
		return t, nil
	}
	return nil, ErrReflectTypeNotNamed
}

// peel strips at most budget unnamed ptr/slice/array/chan layers off a map
// side and returns the named type underneath, or nil.
func peel(t reflect.Type, budget int) reflect.Type {
	for !named(t) && budget > 0 {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t, budget = t.Elem(), budget-1
		default:
			return nil
		}
	}
	if named(t) {
		return t
	}
	return nil
}

func named(t reflect.Type) bool {
	return t != nil && t.Name() != ""
}
