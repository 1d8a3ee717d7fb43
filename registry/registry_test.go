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

package registry_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/access/apis"
	"dirpx.dev/access/config"
	"dirpx.dev/access/registry"
)

type Widget struct {
	Label string
}

var (
	widgetCount = 3
	otherCount  = 4
)

func widgetJoin(a, b string) string { return a + b }

func (w *Widget) shout(s string) string { return strings.ToUpper(w.Label + s) }

func TestRegisterStaticField_IdempotentAndLookup(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	require.NoError(t, reg.RegisterStaticField(wt, "count", &widgetCount))
	// idempotent re-register with the same target, via pointer type
	require.NoError(t, reg.RegisterStaticField(reflect.TypeOf(&Widget{}), "count", &widgetCount))

	f, ok := reg.Field(wt, "count")
	require.True(t, ok)
	assert.Equal(t, "count", f.Name)
	assert.Equal(t, wt, f.Declaring)
	assert.Equal(t, apis.Static|apis.Private, f.Mods)
	assert.Equal(t, 3, f.Storage.Interface())
	assert.Nil(t, f.Index)

	assert.Equal(t, 1, reg.Count())
}

func TestRegisterStaticField_Conflict(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	require.NoError(t, reg.RegisterStaticField(wt, "count", &widgetCount))
	err := reg.RegisterStaticField(wt, "count", &otherCount)
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)

	// the struct declares Label itself
	err = reg.RegisterStaticField(wt, "Label", &otherCount)
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
}

func TestRegisterStaticConst(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	require.NoError(t, reg.RegisterStaticConst(wt, "Version", "v1"))
	require.NoError(t, reg.RegisterStaticConst(wt, "Version", "v1"))
	assert.ErrorIs(t, reg.RegisterStaticConst(wt, "Version", "v2"), registry.ErrConflictingRegistration)

	f, ok := reg.Field(wt, "Version")
	require.True(t, ok)
	assert.Equal(t, apis.Static|apis.Final|apis.Public, f.Mods)
	assert.False(t, f.Storage.CanSet())
}

func TestRegisterStaticMethod_Overloads(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	require.NoError(t, reg.RegisterStaticMethod(wt, "join", widgetJoin))
	require.NoError(t, reg.RegisterStaticMethod(wt, "join", func(a string, n int) string { return strings.Repeat(a, n) }))
	require.NoError(t, reg.RegisterStaticMethod(wt, "join", widgetJoin)) // idempotent

	ms := reg.Methods(wt, "join")
	require.Len(t, ms, 2)
	for _, m := range ms {
		assert.True(t, apis.IsStatic(m))
		assert.True(t, apis.IsPrivate(m))
		assert.Nil(t, m.Receiver)
	}
	assert.Equal(t, 2, reg.Count())

	err := reg.RegisterStaticMethod(wt, "join", func(a, b string) string { return b + a })
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
}

func TestRegisterMethod(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	require.NoError(t, reg.RegisterMethod(wt, "shout", (*Widget).shout, apis.Final))
	ms := reg.Methods(wt, "shout")
	require.Len(t, ms, 1)
	m := ms[0]
	assert.Equal(t, reflect.TypeOf(&Widget{}), m.Receiver)
	assert.Equal(t, []reflect.Type{reflect.TypeOf("")}, m.Params)
	assert.Equal(t, apis.Final|apis.Private, m.Mods)

	// receiver of another type
	err := reg.RegisterMethod(wt, "bad", func(s string) string { return s })
	assert.ErrorIs(t, err, registry.ErrInvalidTarget)
	// no receiver at all
	err = reg.RegisterMethod(wt, "bad", func() {})
	assert.ErrorIs(t, err, registry.ErrInvalidTarget)
}

func TestRegister_ProtectedVisibility(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	require.NoError(t, reg.RegisterStaticField(wt, "Shared", &otherCount, apis.Protected, apis.Public))
	f, ok := reg.Field(wt, "Shared")
	require.True(t, ok)
	assert.True(t, apis.IsProtected(f))
	assert.False(t, apis.IsPublic(f))
	assert.False(t, apis.IsPrivate(f))
}

func TestRegister_Errors(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	assert.ErrorIs(t, reg.RegisterStaticField(nil, "x", &widgetCount), registry.ErrNilType)
	assert.ErrorIs(t, reg.RegisterStaticField(wt, "", &widgetCount), registry.ErrEmptyName)
	assert.ErrorIs(t, reg.RegisterStaticField(wt, "x", widgetCount), registry.ErrInvalidTarget)
	var np *int
	assert.ErrorIs(t, reg.RegisterStaticField(wt, "x", np), registry.ErrInvalidTarget)
	assert.ErrorIs(t, reg.RegisterStaticConst(wt, "x", nil), registry.ErrInvalidTarget)
	assert.ErrorIs(t, reg.RegisterStaticMethod(wt, "x", 42), registry.ErrInvalidTarget)
	assert.ErrorIs(t, reg.Register(apis.Entry{Type: wt}), registry.ErrInvalidTarget)

	str := reflect.TypeOf("")
	invalid := map[string]apis.Member{
		"instance field": &apis.Field{Name: "ghost", Type: str, Mods: apis.Private},
		"no storage":     &apis.Field{Name: "ghost", Type: str, Mods: apis.Static | apis.Private},
		"storage type":   &apis.Field{Name: "ghost", Type: str, Mods: apis.Static | apis.Private, Storage: reflect.ValueOf(&widgetCount).Elem()},
		"no func":        &apis.Method{Name: "ghost", Mods: apis.Static | apis.Private},
		"nil func":       &apis.Method{Name: "ghost", Mods: apis.Static | apis.Private, Func: reflect.ValueOf((func())(nil))},
		"static receiver": &apis.Method{
			Name: "ghost", Receiver: reflect.TypeOf(&Widget{}), Params: []reflect.Type{str},
			Func: reflect.ValueOf((*Widget).shout), Mods: apis.Static | apis.Private,
		},
		"instance without receiver": &apis.Method{
			Name: "ghost", Params: []reflect.Type{str, str}, Func: reflect.ValueOf(widgetJoin), Mods: apis.Private,
		},
		"wrong receiver": &apis.Method{
			Name: "ghost", Receiver: reflect.TypeOf(Widget{}), Params: []reflect.Type{str},
			Func: reflect.ValueOf((*Widget).shout), Mods: apis.Private,
		},
		"params mismatch": &apis.Method{
			Name: "ghost", Params: []reflect.Type{str}, Func: reflect.ValueOf(widgetJoin), Mods: apis.Static | apis.Private,
		},
	}
	for name, m := range invalid {
		assert.ErrorIs(t, reg.Register(apis.Entry{Type: wt, Member: m}), registry.ErrInvalidTarget, name)
	}
	assert.Zero(t, reg.Count())

	// a well-formed prepared entry is accepted
	require.NoError(t, reg.Register(apis.Entry{Type: wt, Member: &apis.Method{
		Name: "ghost", Params: []reflect.Type{str, str}, Func: reflect.ValueOf(widgetJoin), Mods: apis.Static | apis.Private,
	}}))
	assert.Equal(t, 1, reg.Count())
}

func TestRegisterStaticMethod_ClosuresShareTarget(t *testing.T) {
	reg := registry.New(config.DefaultConfig())
	wt := reflect.TypeOf(Widget{})

	mk := func(suffix string) func(string) string {
		return func(s string) string { return s + suffix }
	}
	require.NoError(t, reg.RegisterStaticMethod(wt, "tag", mk("!")))
	// same func literal, same code: treated as a re-registration
	require.NoError(t, reg.RegisterStaticMethod(wt, "tag", mk("?")))

	ms := reg.Methods(wt, "tag")
	require.Len(t, ms, 1)
	out := ms[0].Func.Call([]reflect.Value{reflect.ValueOf("a")})
	assert.Equal(t, "a!", out[0].String())
}

func TestLookupMisses(t *testing.T) {
	reg := registry.New(config.DefaultConfig())

	_, ok := reg.Field(nil, "x")
	assert.False(t, ok)
	_, ok = reg.Field(reflect.TypeOf(Widget{}), "missing")
	assert.False(t, ok)
	assert.Empty(t, reg.Methods(nil, "x"))
	assert.Empty(t, reg.Methods(reflect.TypeOf(Widget{}), "missing"))
}
