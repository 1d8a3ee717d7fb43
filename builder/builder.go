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
	"log/slog"

	"dirpx.dev/access/accessor"
	"dirpx.dev/access/apis"
	"dirpx.dev/access/registry"
	"dirpx.dev/access/resolver"
	"dirpx.dev/access/strategy"
	uref "dirpx.dev/access/utils/reflect"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its entries are copied
// into the new registry. Entries the new registry refuses are logged and dropped.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if preg == nil {
		return nreg
	}
	for _, e := range preg.Entries() {
		if err := nreg.Register(e); err != nil && cfg.Logger != nil {
			member := ""
			if e.Member != nil {
				member = e.Member.MemberName()
			}
			cfg.Logger.Warn("registry entry not migrated",
				slog.String("type", uref.TypeName(e.Type)),
				slog.String("member", member),
				slog.Any("error", err),
			)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver over reg.
// Registered statics are consulted before reflection on every level.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry) apis.Resolver {
	return resolver.New(
		strategy.NewRegistryStrategy(reg),
		strategy.NewReflectStrategy(),
	)
}

// BuildAccessor builds and returns a new apis.Accessor over res.
func (b *builder) BuildAccessor(cfg apis.Config, res apis.Resolver) apis.Accessor {
	return accessor.New(cfg, res)
}
