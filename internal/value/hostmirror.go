package value

import "github.com/google/uuid"

// HostBridge is the narrow, pluggable interface through which property
// lookups that cannot otherwise resolve reach into the host language. This
// interpreter never implements reflection over a concrete host type itself,
// only the contract a host program can satisfy.
type HostBridge interface {
	ForClass(qualifiedName string) (any, bool)
	ForObject(obj any) any
	InvokeStatic(class any, name string, args []Value) (Value, error)
	GetStatic(class any, name string) (Value, error)
	SetStatic(class any, name string, v Value) error
	Invoke(obj any, name string, args []Value) (Value, error)
	Get(obj any, name string) (Value, error)
	Set(obj any, name string, v Value) error
	Construct(class any, args []Value) (Value, error)
}

// HostMirror is an opaque handle to a foreign-world object. Every mirror
// gets its own ID, and strict equality compares mirrors by reference, so two
// mirrors wrapping the same underlying Target are not equal under ===.
type HostMirror struct {
	ID     string
	Target any
	Bridge HostBridge
}

// NewHostMirror wraps target with a fresh identity tag.
func NewHostMirror(target any, bridge HostBridge) *HostMirror {
	return &HostMirror{ID: uuid.NewString(), Target: target, Bridge: bridge}
}

func (h *HostMirror) Kind() Kind     { return KindHostMirror }
func (h *HostMirror) String() string { return "[object HostMirror]" }
