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
	"path"
	"reflect"
	"strings"

	"dirpx.dev/access/apis"
)

// namerType is the reflect.Type of apis.Namer.
var namerType = reflect.TypeFor[apis.Namer]()

// Indirect strips every pointer level from t.
// It returns nil for a nil t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// TypeName returns a short display name for t, used in diagnostics.
//
// Naming policy:
//   - pointers are stripped, so *T and T share a name;
//   - a non-pointer type implementing apis.Namer uses EntityName() of its zero value;
//   - named types render as "pkg.Type" with generic instantiation stripped;
//   - unnamed types render as reflect's own String().
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	t = Indirect(t)
	if t.Kind() != reflect.Interface && t.Implements(namerType) {
		if n, ok := reflect.Zero(t).Interface().(apis.Namer); ok {
			if name := n.EntityName(); name != "" {
				return name
			}
		}
	}
	if t.Name() == "" {
		return t.String()
	}
	name := stripTypeParams(t.Name())
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
