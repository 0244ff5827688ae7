package ecma

import (
	"fmt"
	"reflect"

	"github.com/cwbudde/ecmalite/internal/builtins"
	"github.com/cwbudde/ecmalite/internal/value"
)

// ReflectBridge is a default, reflection-based value.HostBridge: class/
// instance registration, field get/set, and method invocation, all driven
// by reflect.Value.MethodByName/reflect.New/reflect.Convert against a
// registered Go type, widened from single-direction argument marshaling to
// a full two-way bridge.
//
// A host that wants bespoke dispatch (a fixed method table, a proto-based
// RPC client, …) supplies its own value.HostBridge instead; ReflectBridge
// exists so WithHostBridge/SetHostBridge have a usable implementation out of the box.
type ReflectBridge struct {
	classes map[string]reflect.Type
	statics map[string]map[string]any
}

// NewReflectBridge returns an empty bridge ready for RegisterType/
// RegisterStatics.
func NewReflectBridge() *ReflectBridge {
	return &ReflectBridge{
		classes: make(map[string]reflect.Type),
		statics: make(map[string]map[string]any),
	}
}

// RegisterType makes qualifiedName constructible via `new` against a
// HostMirror wrapping sample's type: Construct allocates a fresh zero value
// of that type (a pointer, if sample itself was a pointer).
func (b *ReflectBridge) RegisterType(qualifiedName string, sample any) {
	b.classes[qualifiedName] = reflect.TypeOf(sample)
}

// RegisterStatics exposes members (field values or methods, keyed by name)
// as qualifiedName's static surface — Math-like namespaces the script reaches
// via a HostMirror bound under a global name.
func (b *ReflectBridge) RegisterStatics(qualifiedName string, members map[string]any) {
	b.statics[qualifiedName] = members
}

// ForClass resolves qualifiedName to whichever of classes/statics registered
// it; the interpreter never inspects the returned value itself, only passes
// it back into Construct/InvokeStatic/GetStatic/SetStatic.
func (b *ReflectBridge) ForClass(qualifiedName string) (any, bool) {
	if _, ok := b.classes[qualifiedName]; ok {
		return qualifiedName, true
	}
	if _, ok := b.statics[qualifiedName]; ok {
		return qualifiedName, true
	}
	return nil, false
}

// ForObject returns obj unchanged: a ReflectBridge-backed HostMirror's
// Target already is the Go value reflect needs, so no translation layer is
// required here.
func (b *ReflectBridge) ForObject(obj any) any { return obj }

// InvokeStatic calls a registered static function member by name.
func (b *ReflectBridge) InvokeStatic(class any, name string, args []value.Value) (value.Value, error) {
	members, ok := b.statics[toClassName(class)]
	if !ok {
		return value.Undefined, fmt.Errorf("no static members registered for %v", class)
	}
	member, ok := members[name]
	if !ok {
		return value.Undefined, fmt.Errorf("no static member %q on %v", name, class)
	}
	return callReflectFunc(member, args)
}

// GetStatic reads a registered static member, converting it to a Value.
func (b *ReflectBridge) GetStatic(class any, name string) (value.Value, error) {
	members, ok := b.statics[toClassName(class)]
	if !ok {
		return value.Undefined, fmt.Errorf("no static members registered for %v", class)
	}
	member, ok := members[name]
	if !ok {
		return value.Undefined, nil
	}
	if isCallable(member) {
		return nativeStaticCall(toClassName(class), name, member), nil
	}
	return FromHost(member), nil
}

// SetStatic overwrites a registered static member's value.
func (b *ReflectBridge) SetStatic(class any, name string, v value.Value) error {
	members, ok := b.statics[toClassName(class)]
	if !ok {
		return fmt.Errorf("no static members registered for %v", class)
	}
	members[name] = ToHost(v)
	return nil
}

// Invoke calls a method (by reflect.Value.MethodByName) on obj with args
// converted to the method's declared parameter types.
func (b *ReflectBridge) Invoke(obj any, name string, args []value.Value) (value.Value, error) {
	rv := reflect.ValueOf(obj)
	method := rv.MethodByName(name)
	if !method.IsValid() {
		return value.Undefined, fmt.Errorf("no method %q on %T", name, obj)
	}
	return callReflectMethod(method, args)
}

// Get reads a field by reflect, or — if name names a method instead — binds
// it as a Native Value the script can later call, routing the call back
// through Invoke.
func (b *ReflectBridge) Get(obj any, name string) (value.Value, error) {
	rv := reflect.ValueOf(obj)
	direct := rv
	if direct.Kind() == reflect.Ptr {
		direct = direct.Elem()
	}
	if direct.IsValid() && direct.Kind() == reflect.Struct {
		if f := direct.FieldByName(name); f.IsValid() && f.CanInterface() {
			return FromHost(f.Interface()), nil
		}
	}
	if method := rv.MethodByName(name); method.IsValid() {
		return nativeMethodCall(b, obj, name), nil
	}
	return value.Undefined, nil
}

// Set writes a field by reflect; obj must be a pointer to a struct, since an
// unaddressable value's fields cannot be mutated.
func (b *ReflectBridge) Set(obj any, name string, v value.Value) error {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("cannot set field %q on non-pointer %T", name, obj)
	}
	f := rv.Elem().FieldByName(name)
	if !f.IsValid() || !f.CanSet() {
		return fmt.Errorf("no settable field %q on %T", name, obj)
	}
	goVal, err := convertTo(ToHost(v), f.Type())
	if err != nil {
		return err
	}
	f.Set(reflect.ValueOf(goVal))
	return nil
}

// Construct allocates a zero value of class's registered type — this
// default bridge has no convention for routing constructor arguments into
// an arbitrary Go type, so args are ignored; a host needing constructor
// parameters registers a factory function as a static instead and calls it
// from script before wrapping the result in a HostMirror itself.
func (b *ReflectBridge) Construct(class any, args []value.Value) (value.Value, error) {
	t, ok := b.classes[toClassName(class)]
	if !ok {
		return value.Undefined, fmt.Errorf("no type registered for %v", class)
	}
	if t.Kind() == reflect.Ptr {
		return value.NewHostMirror(reflect.New(t.Elem()).Interface(), b), nil
	}
	return value.NewHostMirror(reflect.New(t).Elem().Interface(), b), nil
}

func toClassName(class any) string {
	if s, ok := class.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", class)
}

func isCallable(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Func
}

func callReflectFunc(fn any, args []value.Value) (value.Value, error) {
	return callReflectMethod(reflect.ValueOf(fn), args)
}

func callReflectMethod(method reflect.Value, args []value.Value) (value.Value, error) {
	t := method.Type()
	if t.NumIn() != len(args) && !t.IsVariadic() {
		return value.Undefined, fmt.Errorf("expected %d argument(s), got %d", t.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		paramType := t.In(i)
		if t.IsVariadic() && i >= t.NumIn()-1 {
			paramType = t.In(t.NumIn() - 1).Elem()
		}
		goVal, err := convertTo(ToHost(a), paramType)
		if err != nil {
			return value.Undefined, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = reflect.ValueOf(goVal)
	}
	out := method.Call(in)
	return reflectResultsToValue(out)
}

// reflectResultsToValue converts a Go method's return values to a single
// Value: zero results is Undefined, one result converts directly, and a
// trailing (value, error)-shaped pair propagates a non-nil error as a
// catchable throw rather than a Go error escaping Call.
func reflectResultsToValue(out []reflect.Value) (value.Value, error) {
	switch len(out) {
	case 0:
		return value.Undefined, nil
	case 1:
		return FromHost(out[0].Interface()), nil
	default:
		last := out[len(out)-1]
		if last.Type().Implements(reflect.TypeOf((*error)(nil)).Elem()) {
			if !last.IsNil() {
				return value.Undefined, last.Interface().(error)
			}
		}
		return FromHost(out[0].Interface()), nil
	}
}

// convertTo converts a ToHost-shaped Go value to target's type, handling the
// numeric widening ToHost's float64 otherwise blocks (a JS number calling a
// Go int parameter, for instance).
func convertTo(v any, target reflect.Type) (any, error) {
	if v == nil {
		return reflect.Zero(target).Interface(), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(target) {
		return v, nil
	}
	if rv.Type().ConvertibleTo(target) {
		switch target.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64, reflect.String, reflect.Bool:
			return rv.Convert(target).Interface(), nil
		}
	}
	return nil, fmt.Errorf("cannot convert %T to %s", v, target)
}

// nativeMethodCall wraps obj.name as a callable Value routed through the
// bridge's own Invoke, so a script holding `obj.method` as a first-class
// value still dispatches consistently with `obj.method()` called directly.
func nativeMethodCall(b *ReflectBridge, obj any, name string) value.Value {
	return builtins.NewNative(name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		return b.Invoke(obj, name, args)
	})
}

func nativeStaticCall(class, name string, member any) value.Value {
	return builtins.NewNative(class+"."+name, func(_ value.Invoker, _ value.Value, args []value.Value) (value.Value, error) {
		return callReflectFunc(member, args)
	})
}
