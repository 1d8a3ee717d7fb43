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

// Resolver resolves members across the whole ancestor chain.
// Results are never cached; every call walks the chain again.
type Resolver interface {
	// FindField resolves a field on t or one of its embedded ancestors.
	FindField(t reflect.Type, name string, cfg Config) (*Field, bool)

	// FindMethod resolves a method by name and exact parameter types on t or
	// one of its embedded ancestors.
	FindMethod(t reflect.Type, name string, params []reflect.Type, cfg Config) (*Method, bool)
}
