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

// Namer lets a concrete type declare its own diagnostic type name.
//
// When a value implements Namer the resolver returns TypeName() and does
// not consult the registry or reflection. The name is type-level: it must
// not depend on instance state, and it must be cheap and safe to call from
// multiple goroutines.
//
// An implementation must not resolve its own name through a value-based
// lookup (shapeless.TypeNameOf) since that would call TypeName again.
// Use a literal, or shapeless.TypeNameFor[T]() which resolves by type only.
type Namer interface {
	// TypeName returns the canonical, type-level name for this value's type.
	TypeName() string
}

// NamerFunc adapts a plain function to the Namer interface.
type NamerFunc func() string

// TypeName implements Namer for NamerFunc.
func (f NamerFunc) TypeName() string {
	return f()
}
