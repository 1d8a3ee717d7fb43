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
	"reflect"
	"slices"
	"sync"

	"gitlab.com/tozd/go/errors"

	"dirpx.dev/access/apis"
	uref "dirpx.dev/access/utils/reflect"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.Base("access(registry): nil reflect.Type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.Base("access(registry): empty name provided")
	// ErrInvalidTarget is returned when the registered target has the wrong shape
	// (nil pointer, non-func, receiver of another type, unknown member kind).
	ErrInvalidTarget = errors.Base("access(registry): invalid registration target")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different target.
	ErrConflictingRegistration = errors.Base("access(registry): conflicting member registration")
)

// New constructs a Registry. The config is kept for future normalization knobs;
// only pointer stripping is applied to owning types today.
func New(cfg apis.Config) apis.Registry {
	return &registry{cfg: cfg}
}

// key identifies a member name on an owning type.
type key struct {
	t    reflect.Type
	name string
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// cfg is the configuration the registry was built with.
	cfg apis.Config
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// fields maps key to *apis.Field.
	fields sync.Map
	// methods maps key to []*apis.Method; slices are replaced, never mutated.
	methods sync.Map
	// count tracks the number of registered members.
	count int
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// RegisterStaticField declares the variable ptr points to as a static field of t.
func (r *registry) RegisterStaticField(t reflect.Type, name string, ptr any, mods ...apis.Modifier) error {
	pv := reflect.ValueOf(ptr)
	if !pv.IsValid() || pv.Kind() != reflect.Pointer || pv.IsNil() {
		return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "static field needs a non-nil pointer")
	}
	storage := pv.Elem()
	return r.Register(apis.Entry{Type: t, Member: &apis.Field{
		Name:      name,
		Type:      storage.Type(),
		Declaring: uref.Indirect(t),
		Mods:      apis.WithVisibility(name, merge(mods)|apis.Static),
		Storage:   storage,
	}})
}

// RegisterStaticConst declares value as a static final field of t.
func (r *registry) RegisterStaticConst(t reflect.Type, name string, value any, mods ...apis.Modifier) error {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "constant needs a typed value")
	}
	return r.Register(apis.Entry{Type: t, Member: &apis.Field{
		Name:      name,
		Type:      v.Type(),
		Declaring: uref.Indirect(t),
		Mods:      apis.WithVisibility(name, merge(mods)|apis.Static|apis.Final),
		Storage:   v,
	}})
}

// RegisterStaticMethod declares fn as a static method of t.
func (r *registry) RegisterStaticMethod(t reflect.Type, name string, fn any, mods ...apis.Modifier) error {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "static method needs a func")
	}
	return r.Register(apis.Entry{Type: t, Member: &apis.Method{
		Name:      name,
		Declaring: uref.Indirect(t),
		Params:    uref.Params(fv.Type(), 0),
		Func:      fv,
		Mods:      apis.WithVisibility(name, merge(mods)|apis.Static),
	}})
}

// RegisterMethod declares fn as an instance method of t. The first parameter
// of fn is the receiver and must be t or a pointer to it.
func (r *registry) RegisterMethod(t reflect.Type, name string, fn any, mods ...apis.Modifier) error {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() || fv.Type().NumIn() == 0 {
		return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "method needs a func taking the receiver first")
	}
	if t == nil {
		return ErrNilType
	}
	recv := fv.Type().In(0)
	if uref.Indirect(recv) != uref.Indirect(t) {
		return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "receiver is "+recv.String())
	}
	return r.Register(apis.Entry{Type: t, Member: &apis.Method{
		Name:      name,
		Declaring: uref.Indirect(t),
		Params:    uref.Params(fv.Type(), 1),
		Receiver:  recv,
		Func:      fv,
		Mods:      apis.WithVisibility(name, merge(mods)&^apis.Static),
	}})
}

// Register adds a prepared member. It is idempotent for the same target.
//
// Methods are the same target when receiver and code pointer match. Closures
// created from one func literal share their code, so registering a second
// such closure under the same signature is a no-op and the first one stays.
// Register distinct top-level funcs when the captured state matters.
func (r *registry) Register(e apis.Entry) error {
	// Validate inputs early.
	if e.Type == nil {
		return ErrNilType
	}
	if e.Member == nil {
		return errors.WithDetails(ErrInvalidTarget, "reason", "nil member")
	}
	name := e.Member.MemberName()
	if name == "" {
		return ErrEmptyName
	}
	if err := validate(e.Member); err != nil {
		return err
	}
	k := key{t: uref.Indirect(e.Type), name: name}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	switch m := e.Member.(type) {
	case *apis.Field:
		if declaresField(k.t, name) {
			return errors.WithDetails(ErrConflictingRegistration, "member", name, "reason", "type declares a field of that name")
		}
		if old, ok := r.fields.Load(k); ok {
			if sameStorage(old.(*apis.Field), m) {
				return nil // idempotent re-registration
			}
			return errors.WithDetails(ErrConflictingRegistration, "member", name)
		}
		r.fields.Store(k, m)

	case *apis.Method:
		var cur []*apis.Method
		if old, ok := r.methods.Load(k); ok {
			cur = old.([]*apis.Method)
		}
		for _, o := range cur {
			if !o.Accepts(m.Params) {
				continue
			}
			if o.Func.Pointer() == m.Func.Pointer() && o.Receiver == m.Receiver {
				return nil
			}
			return errors.WithDetails(ErrConflictingRegistration, "member", name, "reason", "signature already registered")
		}
		next := make([]*apis.Method, len(cur), len(cur)+1)
		copy(next, cur)
		r.methods.Store(k, append(next, m))

	default:
		return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "unknown member kind")
	}

	r.count++
	return nil
}

// Field returns the registered static field of t named name.
func (r *registry) Field(t reflect.Type, name string) (*apis.Field, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := r.fields.Load(key{t: uref.Indirect(t), name: name}); ok {
		return v.(*apis.Field), true
	}
	return nil, false
}

// Methods returns the registered methods of t named name.
func (r *registry) Methods(t reflect.Type, name string) []*apis.Method {
	if t == nil {
		return nil
	}
	if v, ok := r.methods.Load(key{t: uref.Indirect(t), name: name}); ok {
		return v.([]*apis.Method)
	}
	return nil
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.fields.Range(func(k, v any) bool {
		entries = append(entries, apis.Entry{Type: k.(key).t, Member: v.(*apis.Field)})
		return true
	})
	r.methods.Range(func(k, v any) bool {
		for _, m := range v.([]*apis.Method) {
			entries = append(entries, apis.Entry{Type: k.(key).t, Member: m})
		}
		return true
	})
	return entries
}

// Count returns the number of registered members.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered members.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fields.Clear()
	r.methods.Clear()
	r.count = 0
}

// validate checks that a prepared member can be served without an instance
// path: fields need static storage, methods a callable func whose receiver
// and parameters agree with the handle.
func validate(member apis.Member) error {
	name := member.MemberName()
	switch m := member.(type) {
	case *apis.Field:
		if !m.Mods.Has(apis.Static) {
			return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "registered fields must be static")
		}
		if !m.Storage.IsValid() {
			return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "static field without storage")
		}
		if m.Type != nil && m.Storage.Type() != m.Type {
			return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "storage is "+m.Storage.Type().String())
		}
	case *apis.Method:
		fv := m.Func
		if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
			return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "method without a func")
		}
		skip := 0
		if m.Receiver != nil {
			if m.Mods.Has(apis.Static) {
				return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "static method with a receiver")
			}
			if fv.Type().NumIn() == 0 || fv.Type().In(0) != m.Receiver {
				return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "func does not take the receiver first")
			}
			skip = 1
		} else if !m.Mods.Has(apis.Static) {
			return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "instance method without a receiver")
		}
		if !slices.Equal(m.Params, uref.Params(fv.Type(), skip)) {
			return errors.WithDetails(ErrInvalidTarget, "member", name, "reason", "parameters do not match the func")
		}
	}
	return nil
}

// merge ORs the given modifiers.
func merge(mods []apis.Modifier) apis.Modifier {
	var m apis.Modifier
	for _, x := range mods {
		m |= x
	}
	return m
}

// declaresField reports whether struct t declares its own field name.
func declaresField(t reflect.Type, name string) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Name == name {
			return true
		}
	}
	return false
}

// sameStorage reports whether two static fields refer to the same target.
func sameStorage(a, b *apis.Field) bool {
	if a.Type != b.Type || a.Mods != b.Mods {
		return false
	}
	if a.Storage.CanAddr() && b.Storage.CanAddr() {
		return a.Storage.Addr().Pointer() == b.Storage.Addr().Pointer()
	}
	if a.Storage.CanAddr() || b.Storage.CanAddr() {
		return false
	}
	return reflect.DeepEqual(a.Storage.Interface(), b.Storage.Interface())
}
