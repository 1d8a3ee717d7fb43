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

package strategy_test

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/access/config"
	"dirpx.dev/access/strategy"
)

// TestReflectStrategy_ConcurrentLookup_NoRace verifies that lookups are
// race-free and stable under heavy concurrency.
func TestReflectStrategy_ConcurrentLookup_NoRace(t *testing.T) {
	s := strategy.NewReflectStrategy()
	cfg := config.DefaultConfig()
	str := reflect.TypeOf("")

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				if _, ok := s.FindField(reflect.TypeOf(&Foo{}), "hidden", cfg); !ok {
					t.Error("hidden not found")
					return
				}
				if _, ok := s.FindMethod(reflect.TypeOf(Base{}), "Hello", []reflect.Type{str}, cfg); !ok {
					t.Error("Hello not found")
					return
				}
			}
		}()
	}
	wg.Wait()
}
