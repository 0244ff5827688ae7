// Package interp implements the tree-walking evaluator: the lexical
// environment (Context), the per-NodeKind dispatch (Interpreter), and the
// supporting call-stack and closure machinery. It depends only on
// internal/ast, internal/value, internal/token, and internal/errors (for
// call-stack traces). It never imports internal/builtins; builtins imports
// this package for Install and its error helpers, and reaches user callbacks
// through value.Invoker, so pkg/ecma can wire the two together without a
// cycle.
package interp

import "github.com/cwbudde/ecmalite/internal/value"

// ExitFlag names the interpreter's control-flow state machine: every
// statement evaluator must check IsStopped after each sub-statement and stop
// executing siblings once set.
type ExitFlag int

const (
	ExitNone ExitFlag = iota
	ExitBreak
	ExitContinue
	ExitReturn
	ExitThrow
)

// ScopeKind tags why a Context was created, used to decide when a function
// call's body context should consume a Return (only a ScopeFunction
// context does) and when a fresh context is owed per loop iteration.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
)

// Context is a lexical environment: a chain of binding frames plus the
// exit-flag state machine threaded through statement evaluation.
type Context struct {
	parent *Context
	kind   ScopeKind

	bindings map[string]value.Value
	keys     []string

	thisValue value.Value

	exitFlag     ExitFlag
	returnValue  value.Value
	errorValue   value.Value
	iterationIndex int

	// hostBridge and listener are populated only on the root context;
	// every other context reaches them via Root().
	hostBridge value.HostBridge
	listener   Listener
}

// NewRootContext creates the top-level Global context. Builtins are
// installed into its bindings by the caller (pkg/ecma), not lazily
// materialized here.
func NewRootContext() *Context {
	return &Context{
		kind:           ScopeGlobal,
		bindings:       make(map[string]value.Value),
		thisValue:      value.Undefined,
		iterationIndex: -1,
	}
}

// NewChild creates a child context of kind, chained to c.
func (c *Context) NewChild(kind ScopeKind) *Context {
	return &Context{
		parent:         c,
		kind:           kind,
		bindings:       make(map[string]value.Value),
		iterationIndex: -1,
	}
}

// Root walks up to the top-level Global context.
func (c *Context) Root() *Context {
	cur := c
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// varScope walks up to the nearest function (or, failing that, global)
// ancestor — the scope a "var" declaration's binding belongs to no matter
// how many nested blocks it was declared inside.
func (c *Context) varScope() *Context {
	cur := c
	for cur.parent != nil && cur.kind != ScopeFunction {
		cur = cur.parent
	}
	return cur
}

// SetHostBridge installs the host-interop bridge on the root context.
func (c *Context) SetHostBridge(b value.HostBridge) { c.Root().hostBridge = b }

// HostBridge returns the installed bridge, or nil if none is set.
func (c *Context) HostBridge() value.HostBridge { return c.Root().hostBridge }

// SetListener installs the listener on the root context.
func (c *Context) SetListener(l Listener) { c.Root().listener = l }

// Listener returns the installed listener, or nil if none is set.
func (c *Context) Listener() Listener { return c.Root().listener }

// Kind reports why this context was created.
func (c *Context) Kind() ScopeKind { return c.kind }

// IsFunctionScope reports whether this context is a function call's body
// scope — the boundary a Return is consumed at.
func (c *Context) IsFunctionScope() bool { return c.kind == ScopeFunction }

// SetThis binds "this" locally. Arrow functions never call this for their
// own body context, so Get("this") falls through to the declared
// environment's binding instead, which is exactly lexical this.
func (c *Context) SetThis(v value.Value) { c.thisValue = v }

// This resolves "this" by walking up to the nearest context that has one
// set locally.
func (c *Context) This() value.Value {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.thisValue != nil {
			return cur.thisValue
		}
	}
	return value.Undefined
}

// Get resolves name: "this" is special-cased, everything else searches
// local bindings then recurses into the parent chain.
func (c *Context) Get(name string) (value.Value, bool) {
	if name == "this" {
		return c.This(), true
	}
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.bindings[name]; ok {
			return v, true
		}
	}
	return value.Undefined, false
}

// Has reports whether name resolves anywhere in the chain.
func (c *Context) Has(name string) bool {
	if name == "this" {
		return true
	}
	_, ok := c.Get(name)
	return ok
}

// Put writes name into this context's own bindings, shadowing any outer
// binding of the same name (the semantics of var/let/const declaration).
func (c *Context) Put(name string, v value.Value) {
	if c.bindings == nil {
		c.bindings = make(map[string]value.Value)
	}
	if _, exists := c.bindings[name]; !exists {
		c.keys = append(c.keys, name)
	}
	c.bindings[name] = v
}

// Update writes to the nearest binding of name in the chain (assignment to
// an already-declared variable), or creates it in this context if name is
// unbound anywhere — modeling implicit-global assignment when that context
// is the root.
func (c *Context) Update(name string, v value.Value) {
	for cur := c; cur != nil; cur = cur.parent {
		if _, ok := cur.bindings[name]; ok {
			cur.bindings[name] = v
			return
		}
	}
	c.Put(name, v)
}

// Remove deletes name from this context's own bindings only.
func (c *Context) Remove(name string) bool {
	if _, ok := c.bindings[name]; !ok {
		return false
	}
	delete(c.bindings, name)
	for i, k := range c.keys {
		if k == name {
			c.keys = append(c.keys[:i], c.keys[i+1:]...)
			break
		}
	}
	return true
}

// IsStopped reports whether an exit flag other than None is set — statement
// evaluators must check this after every sub-statement.
func (c *Context) IsStopped() bool { return c.exitFlag != ExitNone }

// ExitFlag returns the current exit flag.
func (c *Context) ExitFlag() ExitFlag { return c.exitFlag }

// ReturnValue returns the value set by StopReturn.
func (c *Context) ReturnValue() value.Value { return c.returnValue }

// ErrorValue returns the value set by StopThrow.
func (c *Context) ErrorValue() value.Value { return c.errorValue }

// IterationIndex returns the current loop iteration counter, or -1 outside
// any loop.
func (c *Context) IterationIndex() int { return c.iterationIndex }

// SetIterationIndex sets the loop iteration counter.
func (c *Context) SetIterationIndex(i int) { c.iterationIndex = i }

func (c *Context) StopBreak()    { c.exitFlag = ExitBreak }
func (c *Context) StopContinue() { c.exitFlag = ExitContinue }

func (c *Context) StopReturn(v value.Value) {
	c.exitFlag = ExitReturn
	c.returnValue = v
}

func (c *Context) StopThrow(e value.Value) {
	c.exitFlag = ExitThrow
	c.errorValue = e
}

// Reset clears the exit flag, used to consume a continue inside a loop or a
// throw caught by try/catch.
func (c *Context) Reset() {
	c.exitFlag = ExitNone
	c.returnValue = nil
	c.errorValue = nil
}

// UpdateFrom propagates a child context's exit flag, return value, and error
// value up to c after the child finishes; any bindings the child created are
// simply discarded along with it.
func (c *Context) UpdateFrom(child *Context) {
	c.exitFlag = child.exitFlag
	c.returnValue = child.returnValue
	c.errorValue = child.errorValue
}
