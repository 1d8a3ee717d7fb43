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

package reflect

import (
	"reflect"
	"unsafe"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNilValue is returned when the instance is nil or a nil pointer.
	ErrNilValue = errors.Base("reflect: nil instance")
	// ErrNotAddressable is returned when a write needs a pointer instance.
	ErrNotAddressable = errors.Base("reflect: instance is not addressable, pass a pointer")
	// ErrNilEmbedded is returned when a nil embedded pointer lies on a read path.
	ErrNilEmbedded = errors.Base("reflect: nil embedded pointer")
	// ErrNotAssignable is returned when a value does not fit the destination type.
	ErrNotAssignable = errors.Base("reflect: value not assignable")
	// ErrReceiverMismatch is returned when no receiver of the wanted type can be derived.
	ErrReceiverMismatch = errors.Base("reflect: receiver type mismatch")
)

// Ancestor is an embedded field of a type: one step up the ancestor chain.
type Ancestor struct {
	// Index is the field index of the embedded field in the outer struct.
	Index int
	// Type is the embedded type with pointers stripped.
	Type reflect.Type
}

// Ancestors returns the embedded fields of t in declaration order.
// Non-struct types have none.
func Ancestors(t reflect.Type) []Ancestor {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	var out []Ancestor
	for i := 0; i < t.NumField(); i++ {
		if f := t.Field(i); f.Anonymous {
			out = append(out, Ancestor{Index: i, Type: Indirect(f.Type)})
		}
	}
	return out
}

// DeclaringType returns the struct type that declares the field reached by
// index from t.
func DeclaringType(t reflect.Type, index []int) reflect.Type {
	t = Indirect(t)
	for i := 0; i < len(index)-1; i++ {
		t = Indirect(t.Field(index[i]).Type)
	}
	return t
}

// Expose returns v with read-only restrictions lifted. v must be
// addressable; otherwise it is returned unchanged.
func Expose(v reflect.Value) reflect.Value {
	if !v.CanAddr() || v.CanSet() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// Root returns an addressable value for obj with every pointer level
// removed, matching Indirect on its type. A nil pointer at any level is
// ErrNilValue. Non-pointer values are copied unless writable is set, in which
// case they are rejected since writes to the copy would be lost.
func Root(obj any, writable bool) (reflect.Value, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		return reflect.Value{}, ErrNilValue
	}
	if rv.Kind() == reflect.Pointer {
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, errors.WithDetails(ErrNilValue, "type", TypeName(rv.Type()))
			}
			rv = rv.Elem()
		}
		return rv, nil
	}
	if writable {
		return reflect.Value{}, errors.WithDetails(ErrNotAddressable, "type", TypeName(rv.Type()))
	}
	c := reflect.New(rv.Type()).Elem()
	c.Set(rv)
	return c, nil
}

// FieldByIndex walks index from v like reflect.Value.FieldByIndex, exposing
// unexported fields on the way. Nil embedded pointers are allocated when
// alloc is set and reported as ErrNilEmbedded otherwise.
func FieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, error) {
	for i, x := range index {
		if i > 0 {
			var err error
			if v, err = deref(v, alloc); err != nil {
				return reflect.Value{}, err
			}
		}
		v = Expose(v.Field(x))
	}
	return v, nil
}

// deref follows an embedded struct pointer.
func deref(v reflect.Value, alloc bool) (reflect.Value, error) {
	if v.Kind() != reflect.Pointer {
		return v, nil
	}
	if v.IsNil() {
		if !alloc || !v.CanSet() {
			return reflect.Value{}, errors.WithDetails(ErrNilEmbedded, "embedded", TypeName(v.Type()))
		}
		v.Set(reflect.New(v.Type().Elem()))
	}
	return v.Elem(), nil
}

// Receiver derives a receiver of type want from the value reached by index
// from root. Pointer receivers are taken by address, value receivers are
// dereferenced.
func Receiver(root reflect.Value, index []int, want reflect.Type) (reflect.Value, error) {
	v, err := FieldByIndex(root, index, false)
	if err != nil {
		return reflect.Value{}, err
	}
	switch {
	case v.Type() == want:
		if len(index) > 0 && v.Kind() == reflect.Pointer && v.IsNil() {
			return reflect.Value{}, errors.WithDetails(ErrNilEmbedded, "embedded", TypeName(v.Type()))
		}
		return v, nil
	case v.Kind() == reflect.Pointer && v.Type().Elem() == want:
		if v.IsNil() {
			return reflect.Value{}, errors.WithDetails(ErrNilEmbedded, "embedded", TypeName(v.Type()))
		}
		return v.Elem(), nil
	case v.CanAddr() && reflect.PointerTo(v.Type()) == want:
		return v.Addr(), nil
	}
	return reflect.Value{}, errors.WithDetails(ErrReceiverMismatch, "have", v.Type().String(), "want", want.String())
}

// Assign stores value into dst. A nil value zeroes nillable destinations.
// When convert is set, convertible values are converted first.
func Assign(dst reflect.Value, value any, convert bool) error {
	dt := dst.Type()
	if value == nil {
		switch dt.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			dst.Set(reflect.Zero(dt))
			return nil
		}
		return errors.WithDetails(ErrNotAssignable, "value", "nil", "field", dt.String())
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(dt):
		dst.Set(v)
	case convert && v.Type().ConvertibleTo(dt):
		dst.Set(v.Convert(dt))
	default:
		return errors.WithDetails(ErrNotAssignable, "value", v.Type().String(), "field", dt.String())
	}
	return nil
}
