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

import "log/slog"

// Config carries read-only knobs for lookups and accesses.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Logger receives a diagnostic record for every failed operation.
	// A nil Logger discards diagnostics.
	Logger *slog.Logger

	// MaxDepth limits how many embedding levels the ancestor walk descends.
	// Acts as a safety guard against recursive embedding.
	MaxDepth int

	// ConvertValues allows field writes of values that are convertible,
	// but not assignable, to the field type (e.g. int to int64).
	ConvertValues bool

	// TagKey is the struct tag key holding field modifiers,
	// e.g. `access:"final,protected"`.
	TagKey string
}
