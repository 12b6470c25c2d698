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

package registry

import (
	"errors"
	"reflect"
	"sort"
	"sync"

	"dirpx.dev/shapeless/apis"
	"dirpx.dev/shapeless/config"
	uref "dirpx.dev/shapeless/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("shapeless(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("shapeless(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type with a different name.
	ErrConflictingRegistration = errors.New("shapeless(registry): conflicting type registration")
)

// New constructs a Registry that normalizes types according to cfg.
// Only MaxUnwrap and MapPreferElem are used here.
func New(cfg apis.Config) apis.Registry {
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = config.DefaultMaxUnwrap
	}
	return &registry{cfg: cfg}
}

// registry is a read-mostly Registry backed by sync.Map.
// Lookups are lock-free; writers serialize on mu to keep count exact.
type registry struct {
	cfg   apis.Config
	mu    sync.Mutex
	m     sync.Map // map[reflect.Type]string
	count int
}

// Register associates the nearest named type of t with name.
// Registering the same (type, name) pair again is a no-op.
func (r *registry) Register(t reflect.Type, name string) error {
	if t == nil {
		return ErrNilType
	}
	if name == "" {
		return ErrEmptyName
	}

	base, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return err
	}

	if known, err := r.existing(base, name); known {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another writer may have won the race.
	if known, err := r.existing(base, name); known {
		return err
	}
	r.m.Store(base, name)
	r.count++
	return nil
}

// existing reports whether base is already registered, and if so whether
// that registration conflicts with name.
func (r *registry) existing(base reflect.Type, name string) (bool, error) {
	old, ok := r.m.Load(base)
	if !ok {
		return false, nil
	}
	if old.(string) != name {
		return true, ErrConflictingRegistration
	}
	return true, nil
}

// Lookup returns the registered name for t's nearest named type.
func (r *registry) Lookup(t reflect.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	base, err := uref.Normalize(t, r.cfg)
	if err != nil {
		return "", false
	}
	if v, ok := r.m.Load(base); ok {
		return v.(string), true
	}
	return "", false
}

// Entries returns a snapshot sorted by name.
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{Type: key.(reflect.Type), Name: value.(string)})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
