package interp

import (
	"github.com/cwbudde/ecmalite/internal/ast"
	"github.com/cwbudde/ecmalite/internal/value"
)

// EventKind names the lifecycle points a Listener can observe.
type EventKind int

const (
	ContextEnter EventKind = iota
	ContextExit
	StatementEnter
	StatementExit
	ExpressionEnter
	ExpressionExit
)

// Event carries the context and node active at the observed point.
type Event struct {
	Kind EventKind
	Ctx  *Context
	Node *ast.Node
}

// VarKind names the declaration form behind a variable-write event.
type VarKind int

const (
	VarVar VarKind = iota
	VarLet
	VarConst
)

// Recovery lets on_error substitute a value for a failed evaluation instead
// of letting the error propagate.
type Recovery struct {
	IgnoreError bool
	ReturnValue value.Value
}

// Listener is the host's optional observation/recovery hook. Every
// method is independently optional: an implementation that embeds
// NoopListener only needs to override what it cares about.
type Listener interface {
	OnEvent(Event)
	OnError(Event, error) *Recovery
	OnFunctionCall(ctx *Context, args []value.Value)
	OnVariableWrite(ctx *Context, kind VarKind, name string, v value.Value)
}

// NoopListener implements Listener with no-ops, for embedding by listeners
// that only want to handle a subset of events.
type NoopListener struct{}

func (NoopListener) OnEvent(Event)                                              {}
func (NoopListener) OnError(Event, error) *Recovery                             { return nil }
func (NoopListener) OnFunctionCall(ctx *Context, args []value.Value)            {}
func (NoopListener) OnVariableWrite(ctx *Context, kind VarKind, name string, v value.Value) {}

func (ip *Interpreter) notify(kind EventKind, ctx *Context, node *ast.Node) {
	if l := ctx.Listener(); l != nil {
		l.OnEvent(Event{Kind: kind, Ctx: ctx, Node: node})
	}
}
