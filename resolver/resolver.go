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

package resolver

import (
	"reflect"

	"dirpx.dev/access/apis"
	"dirpx.dev/access/config"
	uref "dirpx.dev/access/utils/reflect"
)

// New constructs an apis.Resolver that tries the given strategies in order on
// every level of the ancestor chain. Nil strategies are ignored. The returned
// resolver is safe for concurrent use provided strategies themselves are.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// chain is an immutable, order-preserving resolver over a set of strategies.
//
// Search order for a type T:
//  1. every strategy on T itself, first hit wins;
//  2. each embedded ancestor of T in declaration order, depth first.
//
// The walk stops after cfg.MaxDepth embedding levels.
type chain struct {
	strats []apis.Strategy
}

// FindField resolves name on t or one of its ancestors.
func (r chain) FindField(t reflect.Type, name string, cfg apis.Config) (*apis.Field, bool) {
	return r.findField(uref.Indirect(t), name, cfg, nil, 0)
}

func (r chain) findField(t reflect.Type, name string, cfg apis.Config, prefix []int, depth int) (*apis.Field, bool) {
	if t == nil || depth > maxDepth(cfg) {
		return nil, false
	}
	for _, s := range r.strats {
		if f, ok := s.FindField(t, name, cfg); ok {
			return f.Rebase(prefix), true
		}
	}
	for _, a := range uref.Ancestors(t) {
		if f, ok := r.findField(a.Type, name, cfg, extend(prefix, a.Index), depth+1); ok {
			return f, true
		}
	}
	return nil, false
}

// FindMethod resolves name with exact params on t or one of its ancestors.
func (r chain) FindMethod(t reflect.Type, name string, params []reflect.Type, cfg apis.Config) (*apis.Method, bool) {
	return r.findMethod(uref.Indirect(t), name, params, cfg, nil, 0)
}

func (r chain) findMethod(t reflect.Type, name string, params []reflect.Type, cfg apis.Config, prefix []int, depth int) (*apis.Method, bool) {
	if t == nil || depth > maxDepth(cfg) {
		return nil, false
	}
	for _, s := range r.strats {
		if m, ok := s.FindMethod(t, name, params, cfg); ok {
			return m.Rebase(prefix), true
		}
	}
	for _, a := range uref.Ancestors(t) {
		if m, ok := r.findMethod(a.Type, name, params, cfg, extend(prefix, a.Index), depth+1); ok {
			return m, true
		}
	}
	return nil, false
}

// extend returns a fresh copy of prefix with i appended.
func extend(prefix []int, i int) []int {
	out := make([]int, len(prefix), len(prefix)+1)
	copy(out, prefix)
	return append(out, i)
}

func maxDepth(cfg apis.Config) int {
	if cfg.MaxDepth <= 0 {
		return config.DefaultMaxDepth
	}
	return cfg.MaxDepth
}
