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

	"gitlab.com/tozd/go/errors"
)

// ErrUntypedArgument is returned when a nil argument leaves a parameter type unknown.
var ErrUntypedArgument = errors.Base("reflect: cannot infer type of nil argument")

// ArgTypes returns the dynamic type of every argument.
//
// Only the concrete runtime type is used, so a call can never select a
// function whose parameter is an interface or a different named type.
func ArgTypes(args []any) ([]reflect.Type, error) {
	out := make([]reflect.Type, len(args))
	for i, a := range args {
		if a == nil {
			return nil, errors.WithDetails(ErrUntypedArgument, "position", i)
		}
		out[i] = reflect.TypeOf(a)
	}
	return out, nil
}

// ArgValues wraps args in reflect.Values.
func ArgValues(args []any) []reflect.Value {
	out := make([]reflect.Value, len(args))
	for i, a := range args {
		out[i] = reflect.ValueOf(a)
	}
	return out
}

// Params returns the parameter types of the func type ft, skipping the
// first skip parameters (1 drops a receiver).
func Params(ft reflect.Type, skip int) []reflect.Type {
	if ft.NumIn() <= skip {
		return nil
	}
	out := make([]reflect.Type, 0, ft.NumIn()-skip)
	for i := skip; i < ft.NumIn(); i++ {
		out = append(out, ft.In(i))
	}
	return out
}
