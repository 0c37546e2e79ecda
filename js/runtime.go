// Package js provides the script runtime documents are exposed to.
// It uses the goja JavaScript engine (pure Go ES5.1+ implementation).
//
// A Runtime is one compartment: a goja VM, the global object that serves as
// the window proxy, and the root set that keeps host proxies alive.
package js

import (
	"errors"
	"fmt"
	"sync"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/dop251/goja"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRuntimeClosed is returned by operations on a closed runtime.
var ErrRuntimeClosed = errors.New("runtime closed")

// PropFlags controls how DefineGlobal defines a property.
type PropFlags uint8

const (
	// PropEnumerate makes the property show up in for-in and Object.keys.
	PropEnumerate PropFlags = 1 << iota
	// PropReadOnly makes the property non-writable.
	PropReadOnly
	// PropPermanent makes the property non-configurable.
	PropPermanent
)

// Runtime wraps a goja JavaScript runtime together with the root set of its
// compartment.
type Runtime struct {
	id         string
	vm         *goja.Runtime
	roots      *bindings.RootSet
	binder     *Binder
	logger     *zap.Logger
	leakPolicy LeakPolicy

	mu            sync.Mutex
	errors        []error
	onError       func(error)
	closed        bool
	windowClaimed bool
}

// NewRuntime creates a new JavaScript runtime.
func NewRuntime(opts ...Option) *Runtime {
	o := options{
		logger:     zap.NewNop(),
		leakPolicy: LeakPolicyWarn,
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.NewString()
	r := &Runtime{
		id:         id,
		vm:         goja.New(),
		roots:      bindings.NewRootSet(id),
		logger:     o.logger.Named("runtime").With(zap.String("compartment", id)),
		leakPolicy: o.leakPolicy,
	}
	r.binder = newBinder(r)

	r.setupConsole()
	r.setupWindow()

	r.logger.Debug("runtime created")
	return r
}

// ID returns the compartment identifier.
func (r *Runtime) ID() string {
	return r.id
}

// VM returns the underlying goja runtime.
func (r *Runtime) VM() *goja.Runtime {
	return r.vm
}

// Roots returns the compartment's root set.
func (r *Runtime) Roots() *bindings.RootSet {
	return r.roots
}

// Binder returns the binder that creates proxies in this compartment.
func (r *Runtime) Binder() *Binder {
	return r.binder
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *zap.Logger {
	return r.logger
}

// Global returns the global object, which doubles as the window proxy.
func (r *Runtime) Global() *goja.Object {
	return r.vm.GlobalObject()
}

// AddRoot registers h with the compartment's root set.
func (r *Runtime) AddRoot(h *goja.Object) *bindings.RootToken {
	return r.roots.Register(h)
}

// ClaimWindow marks the global object as owned by a window. It reports false
// if a window already holds it. The claim outlives the window.
func (r *Runtime) ClaimWindow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.windowClaimed {
		return false
	}
	r.windowClaimed = true
	return true
}

// RemoveRoot removes one registration of h from the compartment's root set.
func (r *Runtime) RemoveRoot(h *goja.Object) {
	r.roots.Unregister(h)
}

// DefineGlobal defines a data property on the global object. No custom
// getter or setter is involved: later reads go through ordinary property
// lookup.
func (r *Runtime) DefineGlobal(name string, value goja.Value, flags PropFlags) error {
	writable := goja.FLAG_TRUE
	if flags&PropReadOnly != 0 {
		writable = goja.FLAG_FALSE
	}
	configurable := goja.FLAG_TRUE
	if flags&PropPermanent != 0 {
		configurable = goja.FLAG_FALSE
	}
	enumerable := goja.FLAG_FALSE
	if flags&PropEnumerate != 0 {
		enumerable = goja.FLAG_TRUE
	}
	if err := r.vm.GlobalObject().DefineDataProperty(name, value, writable, configurable, enumerable); err != nil {
		return fmt.Errorf("define global %q: %w", name, err)
	}
	return nil
}

// SetOnError sets a callback for JavaScript errors.
func (r *Runtime) SetOnError(handler func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onError = handler
}

// Execute runs JavaScript code and returns the result.
func (r *Runtime) Execute(code string) (result goja.Value, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRuntimeClosed
	}

	// Host failures raised while the script runs abort the script.
	defer func() {
		if p := recover(); p != nil {
			err = panicError("script execution panic", p)
			r.recordError(err)
		}
	}()

	result, err = r.vm.RunString(code)
	if err != nil {
		r.recordError(err)
	}
	return result, err
}

// ExecuteScript runs JavaScript code from a script source.
// Scripts are compiled in non-strict (sloppy) mode; scripts that need strict
// mode should include a "use strict" directive.
func (r *Runtime) ExecuteScript(code, src string) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRuntimeClosed
	}

	defer func() {
		if p := recover(); p != nil {
			err = panicError("script panic in "+src, p)
			r.recordError(err)
		}
	}()

	program, err := goja.Compile(src, code, false)
	if err != nil {
		r.recordError(err)
		return err
	}

	_, err = r.vm.RunProgram(program)
	if err != nil {
		r.recordError(err)
	}
	return err
}

// panicError converts a recovered panic into an error, keeping error values
// unwrappable.
func panicError(prefix string, p any) error {
	if e, ok := p.(error); ok {
		return fmt.Errorf("%s: %w", prefix, e)
	}
	return fmt.Errorf("%s: %v", prefix, p)
}

// recordError must be called with r.mu held.
func (r *Runtime) recordError(err error) {
	r.errors = append(r.errors, err)
	r.logger.Debug("script error", zap.Error(err))
	if r.onError != nil {
		r.onError(err)
	}
}

// Errors returns all errors that occurred during execution.
func (r *Runtime) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

// ClearErrors clears the error list.
func (r *Runtime) ClearErrors() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = r.errors[:0]
}

// Closed reports whether Close has been called.
func (r *Runtime) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close destroys the compartment. Every document rooted in it must have been
// torn down first; roots still registered are logged, and returned as an
// error under LeakPolicyError. Closing twice is a no-op.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.roots.Close(); err != nil {
		r.logger.Warn("compartment destroyed with live roots", zap.Error(err))
		if r.leakPolicy == LeakPolicyError {
			return err
		}
	}
	r.logger.Debug("runtime closed")
	return nil
}

// setupConsole creates the console object. Output goes to the logger.
func (r *Runtime) setupConsole() {
	console := r.vm.NewObject()
	log := r.logger.Named("console")

	levels := map[string]func(string, ...zap.Field){
		"log":   log.Info,
		"info":  log.Info,
		"debug": log.Debug,
		"warn":  log.Warn,
		"error": log.Error,
	}
	for name, emit := range levels {
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			emit(formatArgs(call.Arguments), zap.String("method", name))
			return goja.Undefined()
		})
	}

	r.vm.Set("console", console)
}

// setupWindow makes the global object the window.
func (r *Runtime) setupWindow() {
	// Use the global object as window/self/globalThis so that properties
	// set on window are available globally.
	window := r.vm.GlobalObject()
	r.vm.Set("window", window)
	r.vm.Set("self", window)
	r.vm.Set("globalThis", window)
}

// formatArgs formats function call arguments for console output.
func formatArgs(args []goja.Value) string {
	if len(args) == 0 {
		return ""
	}

	result := ""
	for i, arg := range args {
		if i > 0 {
			result += " "
		}
		result += formatValue(arg)
	}
	return result
}

// formatValue formats a single value for output.
func formatValue(v goja.Value) string {
	if v == nil || goja.IsUndefined(v) {
		return "undefined"
	}
	if goja.IsNull(v) {
		return "null"
	}
	return v.String()
}
