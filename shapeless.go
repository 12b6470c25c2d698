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
	"errors"
	"fmt"
	"io"
	"reflect"

	"dirpx.dev/shapeless/printer"
)

// Shapeless is the capability a value needs to take part in runtime type
// identification: a human-readable representation, an opaque view of
// itself that keeps its concrete type, and a diagnostic type name.
//
// A type satisfies it either by declaring the methods itself or through
// Of, never both for the same value.
type Shapeless interface {
	fmt.Stringer
	// AsOpaque returns a borrowed, runtime-typed view of the value.
	// It must not copy the value or have side effects.
	AsOpaque() Opaque
	// TypeName returns a stable name for the concrete type.
	// It is for diagnostics only and never used for type equality.
	TypeName() string
}

// Opaque is a type-erased reference that still knows its concrete type.
// The zero Opaque refers to nothing and matches no type.
type Opaque struct {
	ref any          // *T
	tag reflect.Type // T
}

// OpaqueOf returns the opaque view of p. The tag is T itself, so the view
// of a *Point downcasts to Point and nothing else. A nil p yields the zero
// Opaque.
func OpaqueOf[T any](p *T) Opaque {
	if p == nil {
		return Opaque{}
	}
	return Opaque{ref: p, tag: reflect.TypeFor[T]()}
}

// Type returns the concrete type tag, or nil for the zero Opaque.
func (o Opaque) Type() reflect.Type {
	return o.tag
}

// Ref returns the underlying *T as an any, or nil for the zero Opaque.
func (o Opaque) Ref() any {
	return o.ref
}

// Valid reports whether o refers to a value.
func (o Opaque) Valid() bool {
	return o.tag != nil
}

// String renders the tag, e.g. "Opaque(example.Point)".
func (o Opaque) String() string {
	if !o.Valid() {
		return "Opaque(" + printer.Nil + ")"
	}
	return "Opaque(" + o.tag.String() + ")"
}

// as narrows o to *T on an exact tag match.
func as[T any](o Opaque) (*T, bool) {
	if o.tag == nil || o.tag != reflect.TypeFor[T]() {
		return nil, false
	}
	p, ok := o.ref.(*T)
	return p, ok
}

// Of adapts any *T into a Shapeless. If *T already implements Shapeless
// that implementation is returned unchanged; otherwise the adapter prints
// through the global Printer and names through the global Resolver.
func Of[T any](v *T) Shapeless {
	if v != nil {
		if s, ok := any(v).(Shapeless); ok {
			return s
		}
	}
	return handle[T]{ref: v}
}

// handle is the blanket Shapeless adapter built by Of.
type handle[T any] struct {
	ref *T
}

func (h handle[T]) String() string {
	if h.ref == nil {
		return printer.Nil
	}
	return Printer().Sprint(h.ref)
}

func (h handle[T]) AsOpaque() Opaque {
	return OpaqueOf(h.ref)
}

func (h handle[T]) TypeName() string {
	if h.ref == nil {
		return TypeNameFor[T]()
	}
	return TypeNameOf(h.ref)
}

// ErrConversionFailed is the single failure Convert reports. Its message
// is fixed.
var ErrConversionFailed = errors.New("Conversion failed")

// ConversionError records the types of a failed Convert. Error returns
// the fixed message of ErrConversionFailed, and errors.Is matches it.
type ConversionError struct {
	From reflect.Type
	To   reflect.Type
}

func (e *ConversionError) Error() string {
	return ErrConversionFailed.Error()
}

func (e *ConversionError) Unwrap() error {
	return ErrConversionFailed
}

// Wrap writes the representation of v and a newline to Output().
// It never modifies v.
func Wrap(v Shapeless) {
	_ = Fwrap(Output(), v)
}

// Fwrap writes the representation of v and a newline to w.
func Fwrap(w io.Writer, v Shapeless) error {
	text := printer.Nil
	if !isNil(v) {
		text = v.String()
	}
	_, err := io.WriteString(w, text+"\n")
	return err
}

// IsType reports whether h's concrete type is exactly T.
// No subtype, interface or pointer-level compatibility is considered.
func IsType[T any](h Shapeless) bool {
	if isNil(h) {
		return false
	}
	_, ok := as[T](h.AsOpaque())
	return ok
}

// DowncastRef returns h's underlying value as *T when its concrete type is
// exactly T. The pointer aliases the original value. On mismatch it
// returns nil and false.
func DowncastRef[T any](h Shapeless) (*T, bool) {
	if isNil(h) {
		return nil, false
	}
	return as[T](h.AsOpaque())
}

// Convert narrows v to *U when T and U are the same concrete type, and
// fails with a *ConversionError otherwise. A nil v always fails.
func Convert[T, U any](v *T) (*U, error) {
	if p, ok := as[U](OpaqueOf(v)); ok {
		return p, nil
	}
	return nil, &ConversionError{From: reflect.TypeFor[T](), To: reflect.TypeFor[U]()}
}

// isNil reports a nil interface or an interface holding a nil pointer,
// neither of which can be asked for its methods safely.
func isNil(v Shapeless) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
