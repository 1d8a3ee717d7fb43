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

// Registry holds the members reflection cannot discover on its own:
// package-level variables, constants and functions declared as statics of a
// type, and unexported methods supplied as method expressions.
type Registry interface {
	// Register adds a prepared member for t. Registering the same target
	// twice is a no-op; a different target under the same key is a conflict.
	// Fields must be static with valid storage; methods need a func matching
	// their receiver and parameters. Methods compare by code pointer, so
	// closures of one func literal count as the same target.
	Register(e Entry) error
	// RegisterStaticField declares the variable ptr points to as a static field of t.
	RegisterStaticField(t reflect.Type, name string, ptr any, mods ...Modifier) error
	// RegisterStaticConst declares value as a static final field of t.
	RegisterStaticConst(t reflect.Type, name string, value any, mods ...Modifier) error
	// RegisterStaticMethod declares fn as a static method of t.
	RegisterStaticMethod(t reflect.Type, name string, fn any, mods ...Modifier) error
	// RegisterMethod declares fn, whose first parameter is the receiver, as an
	// instance method of t.
	RegisterMethod(t reflect.Type, name string, fn any, mods ...Modifier) error
	// Field returns the registered static field of t named name.
	Field(t reflect.Type, name string) (*Field, bool)
	// Methods returns every registered method of t named name (one per signature).
	Methods(t reflect.Type, name string) []*Method
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered members.
	Count() int
	// Reset clears all registered members.
	Reset()
}

// Entry is a single registered member of a type.
type Entry struct {
	// Type is the owning type (pointers stripped).
	Type reflect.Type
	// Member is a *Field or a *Method.
	Member Member
}
