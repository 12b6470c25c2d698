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

package strategy

import (
	"reflect"

	"dirpx.dev/shapeless/apis"
)

// NewNamerStrategy returns the strategy for explicitly declared names. It
// answers when the value implements apis.Namer with a non-empty name; an
// empty name falls through to the next strategy. Types alone never resolve
// here because a method call needs an instance.
func NewNamerStrategy() apis.Strategy {
	return declared{}
}

type declared struct{}

var _ apis.Strategy = declared{}

func (declared) TryResolve(v any, _ apis.Config) (string, bool) {
	n, ok := v.(apis.Namer)
	if !ok || nilPointer(v) {
		return "", false
	}
	name := n.TypeName()
	return name, name != ""
}

// nilPointer guards value-receiver TypeName methods reached through a nil *T.
func nilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func (declared) TryResolveType(reflect.Type, apis.Config) (string, bool) {
	return "", false
}
