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

package apis

import "reflect"

// Accessor reads, writes and invokes members by name, bypassing Go's
// visibility rules.
//
// Every failure is returned as an error wrapping one of ErrNotFound,
// ErrWrongStaticness, ErrImmutable, ErrAccess or ErrInvocation, and is also
// logged through Config.Logger.
type Accessor interface {
	// FindField resolves a field of t. Absence is not an error.
	FindField(t reflect.Type, name string) (*Field, bool)
	// FindMethod resolves a method of t by name and exact parameter types.
	FindMethod(t reflect.Type, name string, params ...reflect.Type) (*Method, bool)

	// GetFieldValue reads the field name of obj.
	GetFieldValue(obj any, name string) (any, error)
	// GetStaticFieldValue reads the static field name of t.
	GetStaticFieldValue(t reflect.Type, name string) (any, error)
	// SetFieldValue writes the field name of obj, which must be a pointer.
	SetFieldValue(obj any, name string, value any) error
	// SetStaticFieldValue writes the static field name of t.
	SetStaticFieldValue(t reflect.Type, name string, value any) error
	// SetFieldValues writes several fields of obj and reports every failure.
	SetFieldValues(obj any, values map[string]any) error

	// InvokeMethod calls the method name on obj. The signature is inferred
	// from the dynamic types of args.
	InvokeMethod(obj any, name string, args ...any) (any, error)
	// InvokeStaticMethod calls the static method name of t.
	InvokeStaticMethod(t reflect.Type, name string, args ...any) (any, error)

	// Dump pretty-prints obj including unexported fields.
	Dump(obj any) string
}
