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
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"
	"time"

	"dirpx.dev/shapeless/apis"
	"dirpx.dev/shapeless/builder"
	"dirpx.dev/shapeless/config"
)

// ---------------------- Test doubles ----------------------

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[reflect.Type]string
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[reflect.Type]string)}
}

func (m *mockRegistry) Register(t reflect.Type, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[t] = name
	return nil
}

func (m *mockRegistry) Lookup(t reflect.Type) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.data[t]
	return n, ok
}

func (m *mockRegistry) Entries() []apis.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []apis.Entry
	for t, n := range m.data {
		out = append(out, apis.Entry{Type: t, Name: n})
	}
	return out
}

func (m *mockRegistry) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }
func (m *mockRegistry) Reset()     { m.mu.Lock(); m.data = make(map[reflect.Type]string); m.mu.Unlock() }

type mockResolver struct{ id string }

func (r *mockResolver) Resolve(_ any, cfg apis.Config) string {
	return fmt.Sprintf("%s:%v:%d", r.id, cfg.IncludeBuiltins, cfg.MaxUnwrap)
}

func (r *mockResolver) ResolveType(t reflect.Type, cfg apis.Config) string {
	return r.Resolve(nil, cfg) + ":" + t.String()
}

type mockPrinter struct{ id string }

func (p *mockPrinter) Sprint(v any) string { return p.id + ":" + fmt.Sprint(v) }

type mockBuilder struct {
	mu         sync.Mutex
	lastCfg    apis.Config
	lastExt    any
	regCounter int
	resCounter int
	prnCounter int
	nilPrinter bool
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, _ apis.Registry, ext any) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.regCounter++
	return newMockRegistry(fmt.Sprintf("reg#%d", b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, _ apis.Registry, _ apis.Resolver, ext any) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.resCounter++
	return &mockResolver{id: fmt.Sprintf("res#%d", b.resCounter)}
}

func (b *mockBuilder) BuildPrinter(cfg apis.Config, ext any) apis.Printer {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	if b.nilPrinter {
		return nil
	}
	b.prnCounter++
	return &mockPrinter{id: fmt.Sprintf("prn#%d", b.prnCounter)}
}

func (b *mockBuilder) counters() (int, int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.resCounter, b.prnCounter
}

// useBuilder installs b with a clean snapshot and restores the defaults
// when the test ends.
func useBuilder(tb testing.TB, b apis.Builder) {
	tb.Helper()
	cfg := apis.Config{IncludeBuiltins: false, MapPreferElem: true, MaxUnwrap: 8}
	SetAll(&cfg, nil, nil, nil, nil, b)
	tb.Cleanup(func() {
		def := config.DefaultConfig()
		SetAll(&def, nil, nil, nil, nil, builder.New())
	})
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	reg1, res1, prn1 := Registry(), Resolver(), Printer()
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 4})

	if Registry() == reg1 || Resolver() == res1 || Printer() == prn1 {
		t.Fatalf("unpinned layers were not rebuilt on SetConfig")
	}
	b.mu.Lock()
	got := b.lastCfg
	b.mu.Unlock()
	if got.MaxUnwrap != 4 || !got.IncludeBuiltins {
		t.Fatalf("builder received wrong cfg: %+v", got)
	}
	if Config() != got {
		t.Fatalf("Config() = %+v, want %+v", Config(), got)
	}
}

func TestSetRegistry_PinsRegistry(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	custom := newMockRegistry("custom")
	SetRegistry(custom)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry should pin the registry")
	}

	resBefore := Resolver()
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 8})

	if Registry() != custom {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if Resolver() == resBefore {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}

	SetRegistry(nil)
	if Registry() != custom {
		t.Fatalf("SetRegistry(nil) must be ignored")
	}
}

func TestSetResolverAndPrinter_Pin(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	res := &mockResolver{id: "custom"}
	prn := &mockPrinter{id: "custom"}
	SetResolver(res)
	SetPrinter(prn)
	regBefore := Registry()

	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 8})

	if Resolver() != res || Printer() != prn {
		t.Fatalf("pinned resolver/printer were rebuilt")
	}
	if Registry() == regBefore {
		t.Fatalf("unpinned registry was not rebuilt")
	}
	if !IsResolverPinned() || !IsPrinterPinned() {
		t.Fatalf("pin flags not set")
	}

	UnpinPrinter()
	SetConfig(apis.Config{MaxUnwrap: 2})
	if Printer() == prn {
		t.Fatalf("printer should rebuild after UnpinPrinter")
	}

	PinPrinter()
	rebuilt := Printer()
	SetConfig(apis.Config{MaxUnwrap: 3})
	if !IsPrinterPinned() || Printer() != rebuilt {
		t.Fatalf("PinPrinter did not stop the rebuild")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	a := &mockBuilder{}
	useBuilder(t, a)

	SetResolver(&mockResolver{id: "pinned"})
	regBefore, resBefore := Registry(), Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	if Builder() != b {
		t.Fatalf("Builder() did not return the new builder")
	}
	if Registry() == regBefore {
		t.Fatalf("registry did not rebuild with the new builder")
	}
	if Resolver() != resBefore {
		t.Fatalf("pinned resolver was rebuilt by SetBuilder")
	}
	if r, _, p := b.counters(); r != 1 || p != 1 {
		t.Fatalf("new builder counters reg=%d prn=%d, want 1/1", r, p)
	}
}

func TestSetExt_PassesValue_and_SkipsPinned(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	if ec, ok := got.(extCfg); !ok || ec.X != 42 {
		t.Fatalf("builder did not receive ext: %#v", got)
	}
	if ec, ok := ExtAs[extCfg](); !ok || ec.X != 42 {
		t.Fatalf("ExtAs = (%#v,%v)", ec, ok)
	}
	if _, ok := ExtAs[string](); ok {
		t.Fatalf("ExtAs[string] should not match")
	}

	PinRegistry()
	PinResolver()
	PinPrinter()
	r0, s0, p0 := b.counters()
	SetExt(extCfg{X: 7})
	r1, s1, p1 := b.counters()
	if r0 != r1 || s0 != s1 || p0 != p1 {
		t.Fatalf("SetExt rebuilt pinned layers")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	PinRegistry()
	PinResolver()
	reg1, res1 := Registry(), Resolver()
	SetConfig(apis.Config{IncludeBuiltins: true, MaxUnwrap: 4})
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	if IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("pin flags still set after unpin")
	}
	SetConfig(apis.Config{MaxUnwrap: 6})
	if Registry() == reg1 || Resolver() == res1 {
		t.Fatalf("layers should rebuild after unpin")
	}
}

func TestSetAll_ResetsPins(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	SetRegistry(newMockRegistry("pinned"))
	SetAll(nil, "ext", nil, nil, nil, nil)

	if IsRegistryPinned() || IsResolverPinned() || IsPrinterPinned() {
		t.Fatalf("SetAll with nil layers must leave them unpinned")
	}
	if Builder() != b {
		t.Fatalf("SetAll with nil builder must keep the current one")
	}
	if ext, ok := ExtAs[string](); !ok || ext != "ext" {
		t.Fatalf("ext not replaced: %q %v", ext, ok)
	}

	reg := newMockRegistry("given")
	SetAll(nil, nil, reg, nil, nil, nil)
	if Registry() != reg || !IsRegistryPinned() {
		t.Fatalf("SetAll with a registry must install and pin it")
	}
}

func TestNilLayerFromBuilder_Panics(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	defer func() {
		if r := recover(); r != ErrNilPrinter {
			t.Fatalf("recover() = %v, want ErrNilPrinter", r)
		}
		// The failed swap must not have published anything.
		if Builder() != b {
			t.Fatalf("builder changed after a failed rebuild")
		}
	}()
	SetBuilder(&mockBuilder{nilPrinter: true})
}

func TestBlanketHandle_UsesGlobalLayers(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	type sample struct{ N int }
	h := Of(&sample{N: 1})

	if got := h.TypeName(); got != "res#1:false:8" {
		t.Fatalf("TypeName() = %q", got)
	}
	if got := h.String(); got != "prn#1:&{1}" {
		t.Fatalf("String() = %q", got)
	}
}

func TestReads_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	useBuilder(t, b)

	type token struct{}
	h := Of(&token{})
	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = TypeNameOf(token{})
				_ = TypeNameFor[token]()
				_ = h.String()
				_ = IsType[token](h)
			}
		}()
	}

	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			SetConfig(apis.Config{IncludeBuiltins: i%2 == 0, MaxUnwrap: 4 + i%5})
			time.Sleep(time.Millisecond)
		}
	}()

	wg.Wait()
	<-done
}
