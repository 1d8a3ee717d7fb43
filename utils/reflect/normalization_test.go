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

package reflect_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	uref "dirpx.dev/access/utils/reflect"
)

type Foo struct{}
type Bar[T any] struct{ X T }

type named struct{}

func (named) EntityName() string { return "domain.named" }

func TestIndirect(t *testing.T) {
	var pp **Foo
	assert.Equal(t, reflect.TypeOf(Foo{}), uref.Indirect(reflect.TypeOf(pp)))
	assert.Equal(t, reflect.TypeOf(Foo{}), uref.Indirect(reflect.TypeOf(Foo{})))
	assert.Nil(t, uref.Indirect(nil))
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want string
	}{
		{reflect.TypeOf(Foo{}), "reflect_test.Foo"},
		{reflect.TypeOf(&Foo{}), "reflect_test.Foo"},
		{reflect.TypeOf(Bar[int]{}), "reflect_test.Bar"},
		{reflect.TypeOf(named{}), "domain.named"},
		{reflect.TypeOf(0), "int"},
		{reflect.TypeOf([]int{}), "[]int"},
		{nil, "<nil>"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, uref.TypeName(c.typ))
	}
}
