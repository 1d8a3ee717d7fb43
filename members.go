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
	"reflect"

	"gitlab.com/tozd/go/errors"

	"dirpx.dev/access/apis"
)

// Modifier bits, re-exported for callers that only import this package.
const (
	Static    = apis.Static
	Final     = apis.Final
	Public    = apis.Public
	Private   = apis.Private
	Protected = apis.Protected
)

// Error kinds returned by every accessor operation.
var (
	ErrNotFound        = apis.ErrNotFound
	ErrWrongStaticness = apis.ErrWrongStaticness
	ErrImmutable       = apis.ErrImmutable
	ErrAccess          = apis.ErrAccess
	ErrInvocation      = apis.ErrInvocation
)

// FindField resolves the field name of t, searching embedded ancestors.
func FindField(t reflect.Type, name string) (*apis.Field, bool) {
	return Default().FindField(t, name)
}

// FindMethod resolves the method name of t with exactly the given parameter types.
func FindMethod(t reflect.Type, name string, params ...reflect.Type) (*apis.Method, bool) {
	return Default().FindMethod(t, name, params...)
}

// GetFieldValue reads the field name of obj, exported or not.
func GetFieldValue(obj any, name string) (any, error) {
	return Default().GetFieldValue(obj, name)
}

// FieldAs reads the field name of obj as a T.
func FieldAs[T any](obj any, name string) (T, error) {
	var zero T
	v, err := GetFieldValue(obj, name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, errors.WithDetails(
			errors.Errorf("%s: %w", name, ErrAccess),
			"have", reflect.TypeOf(v).String(), "want", reflect.TypeFor[T]().String(),
		)
	}
	return out, nil
}

// GetStaticFieldValue reads the static field name of t.
func GetStaticFieldValue(t reflect.Type, name string) (any, error) {
	return Default().GetStaticFieldValue(t, name)
}

// SetFieldValue writes value into the field name of obj, which must be a pointer.
func SetFieldValue(obj any, name string, value any) error {
	return Default().SetFieldValue(obj, name, value)
}

// SetStaticFieldValue writes value into the static field name of t.
func SetStaticFieldValue(t reflect.Type, name string, value any) error {
	return Default().SetStaticFieldValue(t, name, value)
}

// SetFieldValues writes several fields of obj and reports every failure.
func SetFieldValues(obj any, values map[string]any) error {
	return Default().SetFieldValues(obj, values)
}

// InvokeMethod calls the method name on obj with args.
func InvokeMethod(obj any, name string, args ...any) (any, error) {
	return Default().InvokeMethod(obj, name, args...)
}

// InvokeStaticMethod calls the static method name of t with args.
func InvokeStaticMethod(t reflect.Type, name string, args ...any) (any, error) {
	return Default().InvokeStaticMethod(t, name, args...)
}

// Dump pretty-prints obj including unexported fields.
func Dump(obj any) string {
	return Default().Dump(obj)
}

// IsStatic reports whether m is static.
func IsStatic(m apis.Member) bool { return apis.IsStatic(m) }

// IsFinal reports whether m is final.
func IsFinal(m apis.Member) bool { return apis.IsFinal(m) }

// IsPublic reports whether m is public.
func IsPublic(m apis.Member) bool { return apis.IsPublic(m) }

// IsPrivate reports whether m is private.
func IsPrivate(m apis.Member) bool { return apis.IsPrivate(m) }

// IsProtected reports whether m is protected.
func IsProtected(m apis.Member) bool { return apis.IsProtected(m) }

// RegisterStaticField declares the variable ptr points to as a static field of t
// in the global registry.
func RegisterStaticField(t reflect.Type, name string, ptr any, mods ...apis.Modifier) error {
	return Registry().RegisterStaticField(t, name, ptr, mods...)
}

// RegisterStaticConst declares value as a static final field of t.
func RegisterStaticConst(t reflect.Type, name string, value any, mods ...apis.Modifier) error {
	return Registry().RegisterStaticConst(t, name, value, mods...)
}

// RegisterStaticMethod declares fn as a static method of t.
func RegisterStaticMethod(t reflect.Type, name string, fn any, mods ...apis.Modifier) error {
	return Registry().RegisterStaticMethod(t, name, fn, mods...)
}

// RegisterMethod declares fn, taking the receiver first, as a method of t.
// Use it for unexported methods, which reflection cannot call:
//
//	access.RegisterMethod(reflect.TypeFor[T](), "reset", (*T).reset)
func RegisterMethod(t reflect.Type, name string, fn any, mods ...apis.Modifier) error {
	return Registry().RegisterMethod(t, name, fn, mods...)
}
