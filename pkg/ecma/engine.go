// Package ecma is the engine façade: the only supported entry point for
// a host program. It wires internal/lexer, internal/parser, internal/interp,
// and internal/builtins together — internal/interp never imports
// internal/builtins, so this package is where the two are joined (see
// DESIGN.md) — and exposes eval/eval_with, named-binding get/put/remove, a
// pluggable console sink, an optional Listener, and an optional HostBridge.
package ecma

import (
	"io"
	"os"

	"github.com/cwbudde/ecmalite/internal/builtins"
	"github.com/cwbudde/ecmalite/internal/errors"
	"github.com/cwbudde/ecmalite/internal/interp"
	"github.com/cwbudde/ecmalite/internal/parser"
	"github.com/cwbudde/ecmalite/internal/value"
)

// defaultMaxCallDepth bounds closure-call recursion the
// same way the parser's own maxDepth bounds syntactic nesting.
const defaultMaxCallDepth = 512

// Engine is a single, independent interpreter instance; multiple engines
// may exist concurrently but share no mutable state. It is not safe for
// concurrent use by multiple goroutines itself — evaluation is
// single-threaded and synchronous.
type Engine struct {
	ip       *interp.Interpreter
	console  *builtins.Console
	fileName string
}

// EngineOption configures an Engine at construction time, following the
// teacher's LexerOption/ParserOption functional-option pattern.
type EngineOption func(*engineConfig)

type engineConfig struct {
	stdout       io.Writer
	listener     interp.Listener
	hostBridge   value.HostBridge
	maxCallDepth int
	fileName     string
	globals      map[string]value.Value
}

// WithConsoleSink redirects console.log output to w instead of os.Stdout.
func WithConsoleSink(w io.Writer) EngineOption {
	return func(c *engineConfig) { c.stdout = w }
}

// WithListener installs a Listener observing every context/statement/
// expression enter and exit, plus error-recovery and variable-write hooks.
func WithListener(l interp.Listener) EngineOption {
	return func(c *engineConfig) { c.listener = l }
}

// WithHostBridge installs the pluggable host-interop bridge a property
// lookup falls back to when it cannot otherwise resolve a HostMirror's
// field or method.
func WithHostBridge(b value.HostBridge) EngineOption {
	return func(c *engineConfig) { c.hostBridge = b }
}

// WithMaxCallDepth overrides the default closure call-stack bound.
func WithMaxCallDepth(n int) EngineOption {
	return func(c *engineConfig) { c.maxCallDepth = n }
}

// WithFileName attributes parse errors and thrown-error stack traces to name
// instead of the anonymous default.
func WithFileName(name string) EngineOption {
	return func(c *engineConfig) { c.fileName = name }
}

// WithGlobal pre-binds name to v in the engine's root context before any
// source is evaluated, in addition to whatever Put calls follow construction.
func WithGlobal(name string, v value.Value) EngineOption {
	return func(c *engineConfig) {
		if c.globals == nil {
			c.globals = make(map[string]value.Value)
		}
		c.globals[name] = v
	}
}

// New builds an Engine with the fixed global set installed and any
// options applied.
func New(opts ...EngineOption) *Engine {
	cfg := &engineConfig{stdout: os.Stdout, maxCallDepth: defaultMaxCallDepth}
	for _, opt := range opts {
		opt(cfg)
	}

	root := interp.NewRootContext()
	ip := interp.New(root, cfg.fileName, cfg.maxCallDepth)
	console := builtins.Install(ip, cfg.stdout)

	if cfg.listener != nil {
		root.SetListener(cfg.listener)
	}
	if cfg.hostBridge != nil {
		root.SetHostBridge(cfg.hostBridge)
	}
	for name, v := range cfg.globals {
		root.Put(name, v)
	}

	return &Engine{ip: ip, console: console, fileName: cfg.fileName}
}

// SetConsoleSink redirects console.log output after construction.
func (e *Engine) SetConsoleSink(w io.Writer) { e.console.Out = w }

// SetListener installs or replaces the engine's Listener.
func (e *Engine) SetListener(l interp.Listener) { e.ip.Root().SetListener(l) }

// SetHostBridge installs or replaces the engine's host-interop bridge.
func (e *Engine) SetHostBridge(b value.HostBridge) { e.ip.Root().SetHostBridge(b) }

// Get reads a root-level binding, converted to a host primitive.
func (e *Engine) Get(name string) (any, bool) {
	v, ok := e.ip.Root().Get(name)
	if !ok {
		return nil, false
	}
	return ToHost(v), true
}

// Put writes a host value into the root context under name, converting it
// with FromHost.
func (e *Engine) Put(name string, v any) {
	e.ip.Root().Put(name, FromHost(v))
}

// Remove deletes name from the root context's own bindings.
func (e *Engine) Remove(name string) bool {
	return e.ip.Root().Remove(name)
}

// Eval lexes, parses, and evaluates source in the engine's root context,
// returning the program's final value converted to a host primitive
// (Undefined becomes nil). A lexical or syntactic error is returned as
// *ParseError; an uncaught runtime throw is returned as *RuntimeError.
func (e *Engine) Eval(source string) (any, error) {
	return e.run(source, e.ip.Root())
}

// EvalWith evaluates source in a fresh child scope whose parent is the
// engine's globals: vars are bound locally to this call and discarded
// afterward, never leaking into the engine's root bindings.
func (e *Engine) EvalWith(source string, vars map[string]any) (any, error) {
	ctx := e.ip.Root().NewChild(interp.ScopeBlock)
	for name, v := range vars {
		ctx.Put(name, FromHost(v))
	}
	return e.run(source, ctx)
}

func (e *Engine) run(source string, ctx *interp.Context) (any, error) {
	prog, parseErrors := parser.ParseProgram(source)
	if len(parseErrors) > 0 {
		return nil, &ParseError{Errors: parseErrors}
	}

	result, err := e.ip.RunProgramIn(prog, ctx)
	if err != nil {
		if uncaught, ok := err.(*interp.UncaughtError); ok {
			return nil, &RuntimeError{Value: uncaught.Value, Stack: uncaught.Stack}
		}
		return nil, err
	}
	if result == nil || result.Kind() == value.KindUndefined {
		return nil, nil
	}
	return ToHost(result), nil
}

// ParseError wraps every lexical/syntactic error accumulated for one Eval
// call.
type ParseError struct {
	Errors []*errors.CompilerError
}

func (e *ParseError) Error() string {
	return errors.FormatErrors(e.Errors, false)
}

// RuntimeError is an uncaught Throw that reached the program root.
type RuntimeError struct {
	Value value.Value
	Stack errors.StackTrace
}

func (e *RuntimeError) Error() string {
	msg := value.ToString(e.Value)
	if len(e.Stack) == 0 {
		return msg
	}
	return msg + "\n" + e.Stack.Reverse().String()
}
