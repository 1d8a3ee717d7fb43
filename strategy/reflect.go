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
	"runtime"
	"strings"

	"dirpx.dev/access/apis"
	uref "dirpx.dev/access/utils/reflect"
)

// NewReflectStrategy creates an apis.Strategy that finds struct fields and
// exported methods through plain reflection.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy follows Go's own selector rules: fields are looked up with
// FieldByName (exported or not, promoted at the shallowest depth), methods in
// the method set of *T. Modifiers come from the identifier and the struct tag.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// FindField looks up name among the fields of struct type t.
func (reflectStrategy) FindField(t reflect.Type, name string, cfg apis.Config) (*apis.Field, bool) {
	t = uref.Indirect(t)
	if t == nil || t.Kind() != reflect.Struct || name == "" {
		return nil, false
	}
	sf, ok := t.FieldByName(name)
	if !ok {
		return nil, false
	}
	return &apis.Field{
		Name:      sf.Name,
		Type:      sf.Type,
		Declaring: uref.DeclaringType(t, sf.Index),
		Index:     sf.Index,
		Mods:      apis.WithVisibility(sf.Name, tagModifiers(sf.Tag, cfg.TagKey)),
	}, true
}

// FindMethod looks up name in the method set of *t with exact parameters.
func (reflectStrategy) FindMethod(t reflect.Type, name string, params []reflect.Type, _ apis.Config) (*apis.Method, bool) {
	t = uref.Indirect(t)
	if t == nil || t.Kind() == reflect.Interface || name == "" {
		return nil, false
	}
	pt := reflect.PointerTo(t)
	m, ok := pt.MethodByName(name)
	if !ok || promoted(t, m) {
		return nil, false
	}
	h := &apis.Method{
		Name:      m.Name,
		Declaring: t,
		Params:    uref.Params(m.Type, 1),
		Receiver:  pt,
		Func:      m.Func,
		Mods:      apis.Public,
	}
	if !h.Accepts(params) {
		return nil, false
	}
	return h, true
}

// promoted reports whether m, taken from the method set of *t, is only
// promoted from an embedded struct. Such methods are left to the ancestor
// walk so the handle names the declaring type and carries the receiver path.
// Methods promoted from embedded interfaces stay on t.
func promoted(t reflect.Type, m reflect.Method) bool {
	if written(m.Func) {
		return false
	}
	if vm, ok := t.MethodByName(m.Name); ok && written(vm.Func) {
		return false
	}
	for _, a := range uref.Ancestors(t) {
		if a.Type.Kind() != reflect.Struct {
			continue
		}
		if am, ok := reflect.PointerTo(a.Type).MethodByName(m.Name); ok && sameSignature(am.Type, m.Type) {
			return true
		}
	}
	return false
}

// written reports whether fn is a method body from source rather than a
// compiler-generated wrapper for promotion or a value receiver.
func written(fn reflect.Value) bool {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return true
	}
	file, _ := f.FileLine(f.Entry())
	return file != "<autogenerated>"
}

// sameSignature compares two method func types ignoring the receiver.
func sameSignature(a, b reflect.Type) bool {
	if a.NumIn() != b.NumIn() || a.NumOut() != b.NumOut() || a.IsVariadic() != b.IsVariadic() {
		return false
	}
	for i := 1; i < a.NumIn(); i++ {
		if a.In(i) != b.In(i) {
			return false
		}
	}
	for i := 0; i < a.NumOut(); i++ {
		if a.Out(i) != b.Out(i) {
			return false
		}
	}
	return true
}

// tagModifiers parses `access:"final,protected"` style tags.
func tagModifiers(tag reflect.StructTag, key string) apis.Modifier {
	if key == "" {
		return 0
	}
	var m apis.Modifier
	for _, opt := range strings.Split(tag.Get(key), ",") {
		switch strings.TrimSpace(opt) {
		case "final", "readonly":
			m |= apis.Final
		case "protected":
			m |= apis.Protected
		}
	}
	return m
}
