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
	"gitlab.com/tozd/go/errors"
)

// Kind classifies an accessor failure.
type Kind int

const (
	// KindNone is reported for nil errors and errors outside the taxonomy.
	KindNone Kind = iota
	// KindNotFound: no member of that name/signature in the ancestor chain.
	KindNotFound
	// KindWrongStaticness: static access on an instance member or vice versa.
	KindWrongStaticness
	// KindImmutable: write to a final member.
	KindImmutable
	// KindAccess: the runtime refused the forced read, write or call.
	KindAccess
	// KindInvocation: the invoked function panicked or returned an error.
	KindInvocation
)

var (
	// ErrNotFound is returned when no member resolves.
	ErrNotFound = errors.Base("access: member not found")
	// ErrWrongStaticness is returned when staticness does not match the operation.
	ErrWrongStaticness = errors.Base("access: wrong staticness")
	// ErrImmutable is returned on writes to final members.
	ErrImmutable = errors.Base("access: member is final")
	// ErrAccess is returned when a value cannot be read, written or passed.
	ErrAccess = errors.Base("access: access refused")
	// ErrInvocation is returned when the invoked function fails.
	ErrInvocation = errors.Base("access: invocation failed")
)

// String returns a short, stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not-found"
	case KindWrongStaticness:
		return "wrong-staticness"
	case KindImmutable:
		return "immutable"
	case KindAccess:
		return "access"
	case KindInvocation:
		return "invocation"
	default:
		return "none"
	}
}

// Sentinel returns the sentinel error of k, or nil for KindNone.
func (k Kind) Sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindWrongStaticness:
		return ErrWrongStaticness
	case KindImmutable:
		return ErrImmutable
	case KindAccess:
		return ErrAccess
	case KindInvocation:
		return ErrInvocation
	default:
		return nil
	}
}

// KindOf maps err to its Kind. Invocation failures are checked first since
// the callee's own error may wrap another kind.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for _, k := range []Kind{KindInvocation, KindNotFound, KindWrongStaticness, KindImmutable, KindAccess} {
		if errors.Is(err, k.Sentinel()) {
			return k
		}
	}
	return KindNone
}
