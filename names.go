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

package shapeless

import (
	"reflect"
)

// TypeNameOf returns the diagnostic name of v's type using the global
// resolver: a declared apis.Namer first, then the registry, then
// reflection ("pkg.Type").
//
// Do not call it from a TypeName method on v's own type; use TypeNameFor.
func TypeNameOf(v any) string {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// TypeNameFor returns the diagnostic name of T resolved by type only
// (registry, then reflection). It is safe to call from a TypeName method.
func TypeNameFor[T any]() string {
	return TypeNameOfType(reflect.TypeFor[T]())
}

// TypeNameOfType returns the diagnostic name of t resolved by type only.
func TypeNameOfType(t reflect.Type) string {
	s := st.Load()
	return s.res.ResolveType(t, s.cfg)
}

// RegisterType assigns name to t (normalized to its nearest named type)
// in the global registry.
func RegisterType(t reflect.Type, name string) error {
	return st.Load().reg.Register(t, name)
}

// Register assigns name to T in the global registry.
func Register[T any](name string) error {
	return RegisterType(reflect.TypeFor[T](), name)
}
