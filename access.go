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

package access

import (
	"sync"
	"sync/atomic"

	"gitlab.com/tozd/go/errors"

	"dirpx.dev/access/apis"
	"dirpx.dev/access/builder"
	"dirpx.dev/access/config"
)

// init initializes the global access state.
func init() {
	b := builder.New()
	s, err := build(config.DefaultConfig(), b, nil, nil, false)
	if err != nil {
		panic(err)
	}
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.Base("access: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.Base("access: builder returned nil resolver")
	// ErrNilAccessor is returned when a builder returns a nil accessor.
	ErrNilAccessor = errors.Base("access: builder returned nil accessor")
)

// Default returns the accessor of the current snapshot.
func Default() apis.Accessor {
	return st.Load().acc
}

// Config returns the global access configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the
// resolver and accessor. The registry is rebuilt too, keeping its entries,
// unless it is pinned.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(build(cfg, old.bld, old.reg, pinnedOrNil(old), old.preg))
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global registry to reg and pins it, so later
// reconfigurations keep using reg as is.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(build(old.cfg, old.bld, old.reg, reg, true))
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// UnpinRegistry lets the next reconfiguration rebuild the registry again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.preg = false
	st.Store(&next)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds every unpinned layer.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	publish(build(old.cfg, b, old.reg, pinnedOrNil(old), old.preg))
}

// SetAll explicitly sets the global configuration, registry and builder.
//
// Nil arguments leave the corresponding component unchanged, except that a
// nil reg yields a fresh, empty and unpinned registry. This is mainly used by
// tests to get a clean deterministic state.
func SetAll(cfg *apis.Config, reg apis.Registry, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}
	publish(build(ncfg, nbld, nil, reg, reg != nil))
}

// build assembles a new snapshot. A non-nil fixed registry is used as is;
// otherwise the builder derives one from prev.
func build(cfg apis.Config, b apis.Builder, prev, fixed apis.Registry, pinned bool) (*state, error) {
	reg := fixed
	if reg == nil {
		reg = b.BuildRegistry(cfg, prev)
	}
	if reg == nil {
		return nil, ErrNilRegistry
	}
	res := b.BuildResolver(cfg, reg)
	if res == nil {
		return nil, ErrNilResolver
	}
	acc := b.BuildAccessor(cfg, res)
	if acc == nil {
		return nil, ErrNilAccessor
	}
	return &state{cfg: cfg, reg: reg, res: res, acc: acc, bld: b, preg: pinned}, nil
}

// publish stores s atomically, panicking on a broken builder.
func publish(s *state, err error) {
	if err != nil {
		panic(err)
	}
	st.Store(s)
}

// pinnedOrNil returns the registry of old when it is pinned.
func pinnedOrNil(old *state) apis.Registry {
	if old.preg {
		return old.reg
	}
	return nil
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global access state.
var st atomic.Pointer[state]

// state is the global snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg holds registered statics and unexported methods.
	reg apis.Registry
	// res resolves members over reg.
	res apis.Resolver
	// acc is the accessor served by the package-level helpers.
	acc apis.Accessor
	// bld builds reg, res and acc.
	bld apis.Builder
	// preg indicates whether the reg is pinned.
	preg bool
}
