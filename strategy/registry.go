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

	"dirpx.dev/access/apis"
)

// NewRegistryStrategy creates an apis.Strategy that consults an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy serves registered statics and unexported methods.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// FindField looks up a registered static field of t.
func (s *registryStrategy) FindField(t reflect.Type, name string, _ apis.Config) (*apis.Field, bool) {
	if t == nil || s.reg == nil {
		return nil, false
	}
	return s.reg.Field(t, name)
}

// FindMethod looks up a registered method of t with exact parameters.
func (s *registryStrategy) FindMethod(t reflect.Type, name string, params []reflect.Type, _ apis.Config) (*apis.Method, bool) {
	if t == nil || s.reg == nil {
		return nil, false
	}
	for _, m := range s.reg.Methods(t, name) {
		if m.Accepts(params) {
			return m, true
		}
	}
	return nil, false
}
