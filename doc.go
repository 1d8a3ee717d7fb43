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

// Package access reads, writes and invokes struct members by name,
// bypassing Go's visibility rules.
//
// access is meant for code that has to look inside values it does not own:
// test harnesses checking unexported state, debugging helpers, fixtures that
// need to poke a private counter. It is a thin layer over reflect and unsafe
// with an explicit error taxonomy instead of panics.
//
// # Members
//
// A member is a field or a method, resolved into an apis.Member handle
// carrying its name, declaring type and modifier set. Go has no static
// members, no final fields and no protected visibility, so they are mapped.
// Public and private follow the identifier. Protected and final fields come
// from the struct tag:
//
//	type Account struct {
//		ID      string `access:"final"`
//		balance int    `access:"protected"`
//	}
//
// Static fields are package-level variables registered against a type,
// static constants are values registered the same way (always final) and
// static methods are package-level funcs:
//
//	access.RegisterStaticField(reflect.TypeFor[Account](), "opened", &opened)
//	access.RegisterStaticConst(reflect.TypeFor[Account](), "Currency", "EUR")
//	access.RegisterStaticMethod(reflect.TypeFor[Account](), "open", openAccount)
//
// Unexported methods are invisible to reflect; register them as method
// expressions:
//
//	access.RegisterMethod(reflect.TypeFor[Account](), "audit", (*Account).audit)
//
// # Lookup
//
// FindField and FindMethod search a type, then its embedded ancestors in
// declaration order, depth first. On each level registered members are
// consulted before reflection; reflection follows Go's selector rules, so
// promoted members are found on the outer type directly. Methods are matched
// by name and exact parameter types. Nothing is cached: every call walks the
// chain again.
//
// Invocation infers parameter types from the dynamic types of the arguments.
// A func taking an interface or a distinct named type is therefore never
// selected by InvokeMethod/InvokeStaticMethod; use FindMethod with explicit
// types to inspect such members.
//
// # Errors
//
// Every failing operation returns an error wrapping exactly one of
// ErrNotFound, ErrWrongStaticness, ErrImmutable, ErrAccess or ErrInvocation
// (see apis.KindOf), and logs a warning through the configured slog.Logger.
// The default logger writes to stderr; config.WithLogger(nil) silences it.
//
// # Global state
//
// The package-level helpers use a process-wide snapshot holding the Config,
// the Registry, the Resolver and the Accessor, swapped atomically by
// SetConfig, SetRegistry, SetBuilder and SetAll. Reads are lock-free.
package access
