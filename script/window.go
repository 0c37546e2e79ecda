package script

import (
	"fmt"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/js"
	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Window is the global of one compartment. Its proxy is the runtime's
// global object, which is also the parent scope of every collection a
// document attached to it returns.
type Window struct {
	rt      *js.Runtime
	wrapper bindings.WrapperCache
	logger  *zap.Logger

	document         *goja.Object
	contentChanges   int
	onContentChanged func()
	closed           bool
}

// NewWindow creates the window for rt and installs the global Document
// constructor. A runtime hosts at most one window; a second NewWindow on the
// same runtime is fatal.
func NewWindow(rt *js.Runtime) *Window {
	if !rt.ClaimWindow() {
		bindings.Fatal("NewWindow", bindings.KindCrossCompartment,
			"runtime "+rt.ID()+" already has a window")
	}
	w := &Window{
		rt:     rt,
		logger: rt.Logger().Named("window"),
	}
	w.wrapper.Set(rt.ID(), rt.Global())
	installDocumentConstructor(w)
	return w
}

// Wrapper returns the window's wrapper cache. Its handle is the global object.
func (w *Window) Wrapper() *bindings.WrapperCache {
	return &w.wrapper
}

// Runtime returns the window's compartment.
func (w *Window) Runtime() (*js.Runtime, error) {
	if w.closed {
		return nil, ErrWindowClosed
	}
	return w.rt, nil
}

// Scope returns the window's proxy, the parent scope for collections.
func (w *Window) Scope() (*goja.Object, error) {
	if w.closed {
		return nil, ErrWindowClosed
	}
	return w.wrapper.Get(), nil
}

// PublishDocument defines window.document as h. It can only happen once per
// window.
func (w *Window) PublishDocument(h *goja.Object) error {
	if w.closed {
		return ErrWindowClosed
	}
	if w.document != nil {
		return ErrAlreadyPublished
	}
	if err := w.rt.DefineGlobal("document", h, js.PropEnumerate); err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	w.document = h
	w.logger.Debug("document published")
	return nil
}

// Published reports whether PublishDocument has succeeded.
func (w *Window) Published() bool {
	return w.document != nil
}

// DocumentHandle returns the proxy published as window.document, or nil.
func (w *Window) DocumentHandle() *goja.Object {
	return w.document
}

// SetOnContentChanged sets a hook run on every content change notification.
func (w *Window) SetOnContentChanged(fn func()) {
	w.onContentChanged = fn
}

// ContentChanged records that the document content changed.
func (w *Window) ContentChanged() {
	w.contentChanges++
	if w.onContentChanged != nil {
		w.onContentChanged()
	}
}

// ContentChanges returns how many content change notifications arrived.
func (w *Window) ContentChanges() int {
	return w.contentChanges
}

// Close invalidates the window. The runtime itself is left open.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.logger.Debug("window closed")
}

// Closed reports whether Close has been called.
func (w *Window) Closed() bool {
	return w.closed
}

// scope resolves the parent scope for a query result. w may be nil, for a
// detached document.
func (w *Window) scope(op string) (*goja.Object, error) {
	if w == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDetached)
	}
	s, err := w.Scope()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}
