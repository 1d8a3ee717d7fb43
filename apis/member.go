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

import (
	"go/token"
	"reflect"
	"strings"
)

// Modifier is a bitset of member attributes.
// Exactly one of Public, Private and Protected is set on a resolved member.
type Modifier uint8

const (
	// Static marks a member that belongs to the type rather than to an instance.
	Static Modifier = 1 << iota
	// Final marks a member that cannot be written after declaration.
	Final
	// Public marks an exported member.
	Public
	// Private marks an unexported member.
	Private
	// Protected marks a member explicitly declared protected (tag or registration).
	Protected
)

// visibility is the mask of mutually exclusive access bits.
const visibility = Public | Private | Protected

// Has reports whether all bits of f are set in m.
func (m Modifier) Has(f Modifier) bool {
	return f != 0 && m&f == f
}

// Visibility returns only the access bits of m.
func (m Modifier) Visibility() Modifier {
	return m & visibility
}

// String returns the modifiers joined by '|', e.g. "static|final|private".
func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, b := range []struct {
		bit  Modifier
		name string
	}{
		{Static, "static"},
		{Final, "final"},
		{Public, "public"},
		{Private, "private"},
		{Protected, "protected"},
	} {
		if m&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// Member is a resolved field or method handle.
type Member interface {
	// MemberName returns the declared name.
	MemberName() string
	// DeclaringType returns the type that declares (or registered) the member.
	DeclaringType() reflect.Type
	// Modifiers returns the member's modifier set.
	Modifiers() Modifier
}

// Field is a resolved field handle.
//
// Instance fields are addressed through Index, the reflect index path from
// the type the lookup started on. Static fields have a nil Index and carry
// their registered Storage instead.
type Field struct {
	Name      string
	Type      reflect.Type
	Declaring reflect.Type
	Index     []int
	Mods      Modifier
	// Storage holds the value of a static field. It is addressable for
	// registered variables and not addressable for registered constants.
	Storage reflect.Value
}

// Ensure *Field implements Member.
var _ Member = (*Field)(nil)

// MemberName returns the field name.
func (f *Field) MemberName() string { return f.Name }

// DeclaringType returns the type declaring the field.
func (f *Field) DeclaringType() reflect.Type { return f.Declaring }

// Modifiers returns the field modifiers.
func (f *Field) Modifiers() Modifier { return f.Mods }

// Rebase returns a copy of f whose Index is prefixed with prefix.
// Static fields are returned unchanged.
func (f *Field) Rebase(prefix []int) *Field {
	if f.Mods.Has(Static) || len(prefix) == 0 {
		return f
	}
	nf := *f
	nf.Index = append(append(make([]int, 0, len(prefix)+len(f.Index)), prefix...), f.Index...)
	return &nf
}

// Method is a resolved method handle.
//
// Func is called with the receiver (when Receiver is non-nil) followed by
// the arguments. Index is the path to the embedded value that serves as the
// receiver, relative to the type the lookup started on.
type Method struct {
	Name      string
	Declaring reflect.Type
	Params    []reflect.Type
	Receiver  reflect.Type
	Func      reflect.Value
	Index     []int
	Mods      Modifier
}

// Ensure *Method implements Member.
var _ Member = (*Method)(nil)

// MemberName returns the method name.
func (m *Method) MemberName() string { return m.Name }

// DeclaringType returns the type declaring the method.
func (m *Method) DeclaringType() reflect.Type { return m.Declaring }

// Modifiers returns the method modifiers.
func (m *Method) Modifiers() Modifier { return m.Mods }

// Rebase returns a copy of m whose Index is prefixed with prefix.
// Static methods are returned unchanged.
func (m *Method) Rebase(prefix []int) *Method {
	if m.Mods.Has(Static) || len(prefix) == 0 {
		return m
	}
	nm := *m
	nm.Index = append(append(make([]int, 0, len(prefix)+len(m.Index)), prefix...), m.Index...)
	return &nm
}

// Accepts reports whether the method parameters are exactly params.
// Interface or assignable types do not match.
func (m *Method) Accepts(params []reflect.Type) bool {
	if len(m.Params) != len(params) {
		return false
	}
	for i, p := range m.Params {
		if p != params[i] {
			return false
		}
	}
	return true
}

// IsStatic reports whether m is static. A nil member is never static.
func IsStatic(m Member) bool { return has(m, Static) }

// IsFinal reports whether m is final.
func IsFinal(m Member) bool { return has(m, Final) }

// IsPublic reports whether m is public.
func IsPublic(m Member) bool { return has(m, Public) }

// IsPrivate reports whether m is private.
func IsPrivate(m Member) bool { return has(m, Private) }

// IsProtected reports whether m is protected.
func IsProtected(m Member) bool { return has(m, Protected) }

func has(m Member, f Modifier) bool {
	if m == nil {
		return false
	}
	switch v := m.(type) {
	case *Field:
		if v == nil {
			return false
		}
	case *Method:
		if v == nil {
			return false
		}
	}
	return m.Modifiers().Has(f)
}

// WithVisibility returns m with its access bits derived from name:
// Protected is kept if requested, otherwise an exported name is Public and
// an unexported one Private. Explicit Public/Private bits in m are ignored.
func WithVisibility(name string, m Modifier) Modifier {
	base := m &^ visibility
	switch {
	case m&Protected != 0:
		return base | Protected
	case token.IsExported(name):
		return base | Public
	default:
		return base | Private
	}
}
