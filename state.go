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
	"io"
	"os"
	"sync"
	"sync/atomic"

	"dirpx.dev/shapeless/apis"
	"dirpx.dev/shapeless/builder"
	"dirpx.dev/shapeless/config"
)

func init() {
	s := state{}
	st.Store(s.derive(config.DefaultConfig(), nil, builder.New()))
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("shapeless: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("shapeless: builder returned nil resolver")
	// ErrNilPrinter is returned when a builder returns a nil printer.
	ErrNilPrinter = errors.New("shapeless: builder returned nil printer")
)

// buildMu serializes writers so a partially-built snapshot is never published.
var buildMu sync.Mutex

// st is the published snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot. Writers copy it, change the copy and
// swap it in; a published state is never mutated.
type state struct {
	cfg apis.Config
	ext any
	reg apis.Registry
	res apis.Resolver
	prn apis.Printer
	bld apis.Builder
	// out is where Wrap writes; nil means the current os.Stdout.
	out io.Writer
	// pinned layers are never rebuilt automatically.
	preg, pres, pprn bool
}

// derive returns a copy of s built for cfg, ext and b. Pinned layers are
// kept as they are; the rest are rebuilt, registry first so the resolver
// sees the new one.
func (s state) derive(cfg apis.Config, ext any, b apis.Builder) *state {
	n := s
	n.cfg, n.ext, n.bld = cfg, ext, b
	if !n.preg {
		n.reg = b.BuildRegistry(cfg, s.reg, ext)
	}
	if !n.pres {
		n.res = b.BuildResolver(cfg, n.reg, s.res, ext)
	}
	if !n.pprn {
		n.prn = b.BuildPrinter(cfg, ext)
	}
	n.mustBeComplete()
	return &n
}

func (s *state) mustBeComplete() {
	switch {
	case s.reg == nil:
		panic(ErrNilRegistry)
	case s.res == nil:
		panic(ErrNilResolver)
	case s.prn == nil:
		panic(ErrNilPrinter)
	}
}

// update publishes the snapshot returned by fn under the build lock.
func update(fn func(old state) *state) {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(fn(*st.Load()))
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration and rebuilds every
// unpinned layer with the current builder.
func SetConfig(cfg apis.Config) {
	update(func(old state) *state {
		return old.derive(cfg, old.ext, old.bld)
	})
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg and pins it. An unpinned resolver is rebuilt
// over the new registry. A nil reg is ignored.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}
	update(func(old state) *state {
		old.reg, old.preg = reg, true
		return old.derive(old.cfg, old.ext, old.bld)
	})
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver installs res and pins it. A nil res is ignored.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}
	update(func(old state) *state {
		old.res, old.pres = res, true
		return &old
	})
}

// Printer returns the global printer.
func Printer() apis.Printer {
	return st.Load().prn
}

// SetPrinter installs p and pins it. A nil p is ignored.
func SetPrinter(p apis.Printer) {
	if p == nil {
		return
	}
	update(func(old state) *state {
		old.prn, old.pprn = p, true
		return &old
	})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder installs b and rebuilds every unpinned layer with it.
// A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}
	update(func(old state) *state {
		return old.derive(old.cfg, old.ext, b)
	})
}

// SetExt replaces the extension payload handed to the builder and
// rebuilds every unpinned layer.
func SetExt[T any](ext T) {
	update(func(old state) *state {
		return old.derive(old.cfg, ext, old.bld)
	})
}

// ExtAs returns the extension payload as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// Output returns the writer Wrap prints to.
func Output() io.Writer {
	if w := st.Load().out; w != nil {
		return w
	}
	return os.Stdout
}

// SetOutput redirects Wrap. A nil w restores the process standard output.
func SetOutput(w io.Writer) {
	update(func(old state) *state {
		old.out = w
		return &old
	})
}

// SetAll replaces every component at once. Nil arguments are built fresh
// by the builder (the current one when bld is nil) and come back unpinned;
// non-nil reg, res and prn are pinned. ext is always replaced. The output
// writer is left alone.
//
// A nil reg yields an empty registry: unlike SetConfig, SetAll does not
// carry registrations over from the previous one. This is the reset hook
// for tests; to keep registrations, pass Registry() as reg.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, res apis.Resolver, prn apis.Printer, bld apis.Builder) {
	update(func(old state) *state {
		n := state{cfg: old.cfg, bld: old.bld, out: old.out}
		if cfg != nil {
			n.cfg = *cfg
		}
		if bld != nil {
			n.bld = bld
		}
		n.reg, n.preg = reg, reg != nil
		n.res, n.pres = res, res != nil
		n.prn, n.pprn = prn, prn != nil
		return n.derive(n.cfg, ext, n.bld)
	})
}

// IsRegistryPinned reports whether the registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops automatic rebuilds of the registry.
func PinRegistry() {
	update(func(old state) *state {
		old.preg = true
		return &old
	})
}

// UnpinRegistry lets the next reconfiguration rebuild the registry.
func UnpinRegistry() {
	update(func(old state) *state {
		old.preg = false
		return &old
	})
}

// IsResolverPinned reports whether the resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the resolver.
func PinResolver() {
	update(func(old state) *state {
		old.pres = true
		return &old
	})
}

// UnpinResolver lets the next reconfiguration rebuild the resolver.
func UnpinResolver() {
	update(func(old state) *state {
		old.pres = false
		return &old
	})
}

// IsPrinterPinned reports whether the printer is pinned.
func IsPrinterPinned() bool {
	return st.Load().pprn
}

// PinPrinter stops automatic rebuilds of the printer.
func PinPrinter() {
	update(func(old state) *state {
		old.pprn = true
		return &old
	})
}

// UnpinPrinter lets the next reconfiguration rebuild the printer.
func UnpinPrinter() {
	update(func(old state) *state {
		old.pprn = false
		return &old
	})
}
