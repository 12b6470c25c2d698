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

// Command shapeless-example walks through wrap, type tests, downcasts and
// conversions on two small types: Point, which declares the capability
// itself, and Color, which gets it through shapeless.Of.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"dirpx.dev/shapeless"
)

// Point declares the capability explicitly.
type Point struct {
	X, Y int
}

func (p *Point) String() string             { return fmt.Sprintf("Point { x: %d, y: %d }", p.X, p.Y) }
func (p *Point) AsOpaque() shapeless.Opaque { return shapeless.OpaqueOf(p) }
func (p *Point) TypeName() string           { return shapeless.TypeNameFor[Point]() }

// Color has no methods; shapeless.Of adapts it.
type Color struct {
	R, G, B uint8
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("shapeless-example: ")

	if err := run(os.Stdout, useColor(os.Stdout)); err != nil {
		log.Fatal(err)
	}
}

// useColor reports whether labels should be highlighted: f must be a
// terminal and NO_COLOR (https://no-color.org) must be unset.
func useColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type reporter struct {
	w     io.Writer
	color bool
	err   error
}

func (r *reporter) label(name string) {
	if r.err != nil {
		return
	}
	if r.color {
		_, r.err = fmt.Fprintf(r.w, "\x1b[36m%-10s\x1b[0m ", name+":")
		return
	}
	_, r.err = fmt.Fprintf(r.w, "%-10s ", name+":")
}

func (r *reporter) line(name, format string, args ...any) {
	r.label(name)
	if r.err == nil {
		_, r.err = fmt.Fprintf(r.w, format+"\n", args...)
	}
}

func (r *reporter) wrap(v shapeless.Shapeless) {
	r.label("wrap")
	if r.err == nil {
		r.err = shapeless.Fwrap(r.w, v)
	}
}

func run(w io.Writer, color bool) error {
	r := &reporter{w: w, color: color}

	p := &Point{X: 1, Y: 2}
	c := shapeless.Of(&Color{R: 255, G: 128})

	r.wrap(p)
	r.wrap(c)

	r.line("type", "%s / %s", p.TypeName(), c.TypeName())
	r.line("is", "Point? %t, Color? %t", shapeless.IsType[Point](p), shapeless.IsType[Color](p))

	if got, ok := shapeless.DowncastRef[Point](p); ok {
		r.line("downcast", "Point with x=%d", got.X)
	}
	if _, ok := shapeless.DowncastRef[Point](c); !ok {
		r.line("downcast", "%s is not a Point", c.TypeName())
	}

	if q, err := shapeless.Convert[Point, Point](p); err == nil {
		r.line("convert", "%s", q)
	}
	if _, err := shapeless.Convert[Point, Color](p); err != nil {
		r.line("convert", "%v", err)
	}
	return r.err
}
