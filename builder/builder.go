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

package builder

import (
	"dirpx.dev/shapeless/apis"
	"dirpx.dev/shapeless/printer"
	"dirpx.dev/shapeless/registry"
	"dirpx.dev/shapeless/resolver"
	"dirpx.dev/shapeless/strategy"
)

// New creates and returns the default apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is stateless; every layer is derived from the arguments.
type builder struct{}

// BuildRegistry builds a registry for cfg. Entries of a previous registry
// are carried over; entries that no longer normalize under cfg are dropped.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Register(e.Type, e.Name)
		}
	}
	return nreg
}

// BuildResolver builds the Namer -> Registry -> Reflect chain over reg.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry, _ apis.Resolver, _ any) apis.Resolver {
	return resolver.New(
		strategy.NewNamerStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}

// BuildPrinter builds the printer selected by cfg.Format.
func (b *builder) BuildPrinter(cfg apis.Config, _ any) apis.Printer {
	return printer.New(cfg)
}
