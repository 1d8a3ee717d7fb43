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

package accessor_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/access/accessor"
	"dirpx.dev/access/apis"
	"dirpx.dev/access/config"
	"dirpx.dev/access/registry"
	"dirpx.dev/access/resolver"
	"dirpx.dev/access/strategy"
)

// Sample mirrors a class with public, private, static and final members.
type Sample struct {
	Field  string
	field1 string
	locked string `access:"final"`
	guard  int    `access:"protected"`
}

var sampleField2 = "ccc"

const sampleField3 = "ddd"

func sampleAppend(a, b string) string { return a + b }

func (s *Sample) Append1(a string) string { return s.Field + a }

func (s *Sample) append2(a string) string { return s.field1 + a }

func (s Sample) Pair(n int) (string, int) { return s.Field, n * 2 }

func (s *Sample) Fail(msg string) (string, error) {
	if msg == "" {
		return "ok", nil
	}
	return "", errors.New(msg)
}

func (s *Sample) Boom() { panic("boom") }

func (s *Sample) Join(sep string, parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += sep
		}
		out += p
	}
	return out
}

func newSample() *Sample {
	return &Sample{Field: "aaa", field1: "bbb", locked: "const", guard: 1}
}

// Ancestor chain fixtures.
type Animal struct {
	legs int
}

func (a *Animal) describe(prefix string) string { return prefix + "animal" }

func (a *Animal) Legs() int { return a.legs }

func (a *Animal) Sound() string { return "..." }

type Dog struct {
	*Animal
	name string
}

func (d *Dog) Sound() string { return "woof" }

type Puppy struct {
	Dog
}

var sampleType = reflect.TypeOf(Sample{})

// newAccessor wires an accessor over a fresh registry holding Sample's statics.
func newAccessor(t *testing.T, opts ...config.Option) (apis.Accessor, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]config.Option{config.WithLogger(slog.New(slog.NewTextHandler(&buf, nil)))}, opts...)
	cfg := config.NewConfig(opts...)

	reg := registry.New(cfg)
	require.NoError(t, reg.RegisterStaticField(sampleType, "field2", &sampleField2))
	require.NoError(t, reg.RegisterStaticConst(sampleType, "field3", sampleField3))
	require.NoError(t, reg.RegisterStaticMethod(sampleType, "append", sampleAppend))
	require.NoError(t, reg.RegisterMethod(sampleType, "append2", (*Sample).append2, apis.Final))
	require.NoError(t, reg.RegisterMethod(reflect.TypeOf(Animal{}), "describe", (*Animal).describe))

	res := resolver.New(strategy.NewRegistryStrategy(reg), strategy.NewReflectStrategy())
	return accessor.New(cfg, res), &buf
}

// resetStatics restores package state touched by static writes.
func resetStatics(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { sampleField2 = "ccc" })
}
