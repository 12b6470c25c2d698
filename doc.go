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

// Package shapeless provides runtime type identification and safe
// downcasting for values that sit behind a common capability interface.
//
// Code often wants to treat unrelated values uniformly (print them, pass
// them around as one interface) and still recover the concrete type later.
// shapeless gives every participating value an opaque, runtime-typed view
// of itself and answers three questions against it: "is this exactly a T?",
// "give me the *T, if it is one" and "convert this *T into a *U, if they
// are the same type".
//
// # Capability
//
// A value participates by satisfying Shapeless:
//
//	type Shapeless interface {
//	    String() string
//	    AsOpaque() Opaque
//	    TypeName() string
//	}
//
// There are two ways to get there, and only one is ever active for a
// given value.
//
// Explicit declaration, with pointer receivers so the opaque view aliases
// the value instead of a copy:
//
//	type Point struct{ X, Y int }
//
//	func (p *Point) String() string              { return fmt.Sprintf("Point { x: %d, y: %d }", p.X, p.Y) }
//	func (p *Point) AsOpaque() shapeless.Opaque  { return shapeless.OpaqueOf(p) }
//	func (p *Point) TypeName() string            { return shapeless.TypeNameFor[Point]() }
//
// The blanket rule, for any other type:
//
//	c := Color{R: 255}
//	s := shapeless.Of(&c)
//
// Of returns an explicit implementation unchanged when the type has one,
// so the two strategies never stack.
//
// # Operations
//
//	shapeless.Wrap(s)                        // prints s.String() to Output()
//	shapeless.IsType[Point](s)               // exact type test
//	p, ok := shapeless.DowncastRef[Point](s) // *Point aliasing the value
//	q, err := shapeless.Convert[Point, Color](p)  // ErrConversionFailed
//
// Type tests are nominal and exact: the tag is the concrete type the
// Opaque was built from, compared with ==. A mismatch is never a panic;
// it is a false, a nil pointer, or a *ConversionError whose message is
// always "Conversion failed".
//
// # Type names and printing
//
// TypeName is for diagnostics only. The global resolver tries, in order:
//
//  1. a TypeName method declared on the value (apis.Namer),
//  2. a name registered with Register or RegisterType,
//  3. reflection, producing "pkg.Type" (or the full import path with
//     Config.QualifiedNames).
//
// Reflection names the nearest named type: a named container such as
// "type IDs []int" is itself, while *T, []T and map[string]*T resolve to T.
//
// A TypeName method must not call TypeNameOf on its own receiver, since
// step 1 would call it again; TypeNameFor resolves by type only.
//
// Values adapted by Of are printed by the global printer. Config.Format
// selects between the value's own String method (Auto), a structural
// Go-syntax rendering (Pretty) and a typed deep dump (Spew).
//
// # Global state
//
// Configuration, registry, resolver, printer, builder and the Wrap output
// live in one immutable snapshot behind an atomic pointer. Reads are
// lock-free; writers (SetConfig, SetBuilder, SetRegistry, SetResolver,
// SetPrinter, SetExt, SetOutput, SetAll) take a short build lock, derive a
// new snapshot and publish it. Layers installed directly are pinned and
// survive reconfiguration until unpinned.
//
// # Concurrency
//
// IsType, DowncastRef and Convert keep no state and only read the value.
// Concurrent use is as safe as concurrent reads of the value itself.
package shapeless
