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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dirpx.dev/shapeless/apis"
)

const (
	// DefaultIncludeBuiltins represents the default for IncludeBuiltins.
	// When true, built-in types such as "int" resolve to their own name.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, map value types are preferred when searching for named inner types.
	DefaultMapPreferElem = true
	// DefaultQualifiedNames represents the default for QualifiedNames.
	DefaultQualifiedNames = false
	// DefaultFormat represents the default for Format.
	DefaultFormat = apis.Auto
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
		QualifiedNames:  DefaultQualifiedNames,
		Format:          DefaultFormat,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithIncludeBuiltins sets the IncludeBuiltins option.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) {
		c.IncludeBuiltins = include
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}

// WithQualifiedNames sets the QualifiedNames option.
func WithQualifiedNames(qualified bool) Option {
	return func(c *apis.Config) {
		c.QualifiedNames = qualified
	}
}

// WithFormat sets the Format option.
// Unknown formats reset to the default.
func WithFormat(f apis.Format) Option {
	return func(c *apis.Config) {
		c.Format = f
	}
}

// ErrInvalidDocument is returned when a YAML config document cannot be decoded.
var ErrInvalidDocument = errors.New("shapeless(config): invalid config document")

// Parse decodes a YAML config document. See Decode.
func Parse(data []byte) (apis.Config, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a YAML config document from r.
//
// Keys absent from the document keep their defaults, unknown keys are
// rejected, and an empty document yields DefaultConfig.
//
//	include_builtins: false
//	max_unwrap: 4
//	format: pretty
func Decode(r io.Reader) (apis.Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return sanitize(cfg), nil
}

// sanitize resets out-of-range knobs to their defaults.
func sanitize(cfg apis.Config) apis.Config {
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	switch cfg.Format {
	case apis.Auto, apis.Pretty, apis.Spew:
	default:
		cfg.Format = DefaultFormat
	}
	return cfg
}
