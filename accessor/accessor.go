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

package accessor

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/k0kubun/pp/v3"
	"gitlab.com/tozd/go/errors"

	"dirpx.dev/access/apis"
	"dirpx.dev/access/config"
	uref "dirpx.dev/access/utils/reflect"
)

// errorType is the reflect.Type of the error interface.
var errorType = reflect.TypeFor[error]()

// New constructs an apis.Accessor resolving members through res.
func New(cfg apis.Config, res apis.Resolver) apis.Accessor {
	log := cfg.Logger
	if log == nil {
		log = config.DiscardLogger()
	}
	return &accessor{cfg: cfg, res: res, log: log}
}

// accessor is stateless apart from its configuration; every call resolves
// its member again.
type accessor struct {
	cfg apis.Config
	res apis.Resolver
	log *slog.Logger
}

// Ensure accessor implements apis.Accessor.
var _ apis.Accessor = (*accessor)(nil)

// FindField resolves a field of t.
func (a *accessor) FindField(t reflect.Type, name string) (*apis.Field, bool) {
	if t == nil || a.res == nil {
		return nil, false
	}
	return a.res.FindField(t, name, a.cfg)
}

// FindMethod resolves a method of t by name and exact parameter types.
func (a *accessor) FindMethod(t reflect.Type, name string, params ...reflect.Type) (*apis.Method, bool) {
	if t == nil || a.res == nil {
		return nil, false
	}
	return a.res.FindMethod(t, name, params, a.cfg)
}

// GetFieldValue reads the field name of obj. Static fields are read from
// their registered storage.
func (a *accessor) GetFieldValue(obj any, name string) (any, error) {
	const op = "GetFieldValue"
	t := reflect.TypeOf(obj)
	if t == nil {
		return nil, a.fail(op, t, name, apis.ErrAccess, uref.ErrNilValue)
	}
	f, ok := a.FindField(t, name)
	if !ok {
		return nil, a.fail(op, t, name, apis.ErrNotFound, nil)
	}
	if apis.IsStatic(f) {
		return f.Storage.Interface(), nil
	}
	root, err := uref.Root(obj, false)
	if err != nil {
		return nil, a.fail(op, t, name, apis.ErrAccess, err)
	}
	v, err := uref.FieldByIndex(root, f.Index, false)
	if err != nil {
		return nil, a.fail(op, t, name, apis.ErrAccess, err)
	}
	return v.Interface(), nil
}

// GetStaticFieldValue reads the static field name of t.
func (a *accessor) GetStaticFieldValue(t reflect.Type, name string) (any, error) {
	const op = "GetStaticFieldValue"
	f, ok := a.FindField(t, name)
	if !ok {
		return nil, a.fail(op, t, name, apis.ErrNotFound, nil)
	}
	if !apis.IsStatic(f) {
		return nil, a.fail(op, t, name, apis.ErrWrongStaticness, nil)
	}
	return f.Storage.Interface(), nil
}

// SetFieldValue writes the field name of obj. Final fields are refused.
func (a *accessor) SetFieldValue(obj any, name string, value any) error {
	const op = "SetFieldValue"
	t := reflect.TypeOf(obj)
	if t == nil {
		return a.fail(op, t, name, apis.ErrAccess, uref.ErrNilValue)
	}
	f, ok := a.FindField(t, name)
	if !ok {
		return a.fail(op, t, name, apis.ErrNotFound, nil)
	}
	if apis.IsFinal(f) {
		return a.fail(op, t, name, apis.ErrImmutable, nil)
	}
	if apis.IsStatic(f) {
		return a.assign(op, t, name, f.Storage, value)
	}
	root, err := uref.Root(obj, true)
	if err != nil {
		return a.fail(op, t, name, apis.ErrAccess, err)
	}
	v, err := uref.FieldByIndex(root, f.Index, true)
	if err != nil {
		return a.fail(op, t, name, apis.ErrAccess, err)
	}
	return a.assign(op, t, name, v, value)
}

// SetStaticFieldValue writes the static field name of t.
func (a *accessor) SetStaticFieldValue(t reflect.Type, name string, value any) error {
	const op = "SetStaticFieldValue"
	f, ok := a.FindField(t, name)
	if !ok {
		return a.fail(op, t, name, apis.ErrNotFound, nil)
	}
	if !apis.IsStatic(f) {
		return a.fail(op, t, name, apis.ErrWrongStaticness, nil)
	}
	if apis.IsFinal(f) {
		return a.fail(op, t, name, apis.ErrImmutable, nil)
	}
	return a.assign(op, t, name, f.Storage, value)
}

// SetFieldValues writes every entry of values to obj in name order.
// Failed writes do not stop the remaining ones; all failures are returned
// together.
func (a *accessor) SetFieldValues(obj any, values map[string]any) error {
	var result *multierror.Error
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := a.SetFieldValue(obj, name, values[name]); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// InvokeMethod calls name on obj with args. Static methods found on obj's
// type are called without a receiver.
func (a *accessor) InvokeMethod(obj any, name string, args ...any) (any, error) {
	const op = "InvokeMethod"
	t := reflect.TypeOf(obj)
	if t == nil {
		return nil, a.fail(op, t, name, apis.ErrAccess, uref.ErrNilValue)
	}
	params, err := uref.ArgTypes(args)
	if err != nil {
		return nil, a.fail(op, t, name, apis.ErrNotFound, err)
	}
	m, ok := a.FindMethod(t, name, params...)
	if !ok {
		return nil, a.fail(op, t, name, apis.ErrNotFound, nil)
	}
	in := uref.ArgValues(args)
	if m.Receiver != nil {
		root, err := uref.Root(obj, false)
		if err != nil {
			return nil, a.fail(op, t, name, apis.ErrAccess, err)
		}
		recv, err := uref.Receiver(root, m.Index, m.Receiver)
		if err != nil {
			return nil, a.fail(op, t, name, apis.ErrAccess, err)
		}
		in = append([]reflect.Value{recv}, in...)
	}
	return a.call(op, t, m, in)
}

// InvokeStaticMethod calls the static method name of t with args.
func (a *accessor) InvokeStaticMethod(t reflect.Type, name string, args ...any) (any, error) {
	const op = "InvokeStaticMethod"
	params, err := uref.ArgTypes(args)
	if err != nil {
		return nil, a.fail(op, t, name, apis.ErrNotFound, err)
	}
	m, ok := a.FindMethod(t, name, params...)
	if !ok {
		return nil, a.fail(op, t, name, apis.ErrNotFound, nil)
	}
	if !apis.IsStatic(m) {
		return nil, a.fail(op, t, name, apis.ErrWrongStaticness, nil)
	}
	return a.call(op, t, m, uref.ArgValues(args))
}

// Dump pretty-prints obj including unexported fields, without colors.
func (a *accessor) Dump(obj any) string {
	p := pp.New()
	p.SetColoringEnabled(false)
	p.SetExportedOnly(false)
	return p.Sprint(obj)
}

// call invokes m.Func with in and folds its results.
// A trailing error result is stripped and reported when non-nil; a panic in
// the callee is recovered as an invocation failure.
func (a *accessor) call(op string, t reflect.Type, m *apis.Method, in []reflect.Value) (res any, err error) {
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = a.fail(op, t, m.Name, apis.ErrInvocation, errors.Errorf("panic: %v", p))
		}
	}()

	var out []reflect.Value
	if m.Func.Type().IsVariadic() {
		out = m.Func.CallSlice(in)
	} else {
		out = m.Func.Call(in)
	}

	if n := len(out); n > 0 && m.Func.Type().Out(n-1) == errorType {
		last := out[n-1]
		out = out[:n-1]
		if !last.IsNil() {
			return nil, a.fail(op, t, m.Name, apis.ErrInvocation, last.Interface().(error))
		}
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		vals := make([]any, len(out))
		for i, v := range out {
			vals[i] = v.Interface()
		}
		return vals, nil
	}
}

// assign stores value into dst.
func (a *accessor) assign(op string, t reflect.Type, name string, dst reflect.Value, value any) (err error) {
	defer func() {
		// Convert can still panic on e.g. slice to array length mismatch.
		if p := recover(); p != nil {
			err = a.fail(op, t, name, apis.ErrAccess, errors.Errorf("panic: %v", p))
		}
	}()
	if err := uref.Assign(dst, value, a.cfg.ConvertValues); err != nil {
		return a.fail(op, t, name, apis.ErrAccess, err)
	}
	return nil
}

// fail builds the error for a failed operation and logs it.
func (a *accessor) fail(op string, t reflect.Type, name string, kind, cause error) error {
	typeName := uref.TypeName(t)
	var err error
	if cause != nil {
		err = errors.Errorf("%s %s.%s: %w: %w", op, typeName, name, kind, cause)
	} else {
		err = errors.Errorf("%s %s.%s: %w", op, typeName, name, kind)
	}
	err = errors.WithDetails(err, "op", op, "type", typeName, "member", name)
	a.log.Warn("member access failed",
		slog.String("op", op),
		slog.String("type", typeName),
		slog.String("member", name),
		slog.String("kind", apis.KindOf(err).String()),
		slog.Any("error", err),
	)
	return err
}

// String describes a member handle for logs and test output.
func String(m apis.Member) string {
	if m == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s.%s", m.Modifiers(), uref.TypeName(m.DeclaringType()), m.MemberName())
}
