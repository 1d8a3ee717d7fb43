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

// Strategy is a pluggable, single-level lookup step. A Resolver chains
// strategies in order and walks the ancestor chain around them.
type Strategy interface {
	// FindField returns the field named name visible on t itself.
	FindField(t reflect.Type, name string, cfg Config) (*Field, bool)

	// FindMethod returns the method named name on t whose parameter types
	// are exactly params.
	FindMethod(t reflect.Type, name string, params []reflect.Type, cfg Config) (*Method, bool)
}
