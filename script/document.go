package script

import (
	"fmt"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/chrisuehlinger/scriptdom/js"
	"go.uber.org/zap"
)

// State is a document's lifecycle state.
type State int

const (
	StateConstructed State = iota
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateTornDown:
		return "torn-down"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Document owns the root of a node tree and exposes it to script.
//
// A document attached to a window registers its root in the window's root
// set at construction and releases it in Teardown, against the compartment
// it captured at construction. A detached document roots nothing.
type Document struct {
	root    *dom.Node
	window  *Window
	wrapper bindings.WrapperCache
	logger  *zap.Logger

	// Compartment the root was registered in, and the token releasing it.
	// Both are nil for a detached document.
	compartment *js.Runtime
	rootToken   *bindings.RootToken

	state State
}

// New creates a document over root. rt is the runtime the document is wrapped
// in; when win is non-nil it must be win's runtime, the root must already be
// wrapped there, and the document becomes win's window.document.
func New(rt *js.Runtime, root *dom.Node, win *Window) *Document {
	const op = "Document.New"
	if rt == nil {
		bindings.Fatal(op, bindings.KindUnwrapped, "no runtime to wrap the document in")
	}

	d := &Document{
		root:   root,
		window: win,
		logger: rt.Logger().Named("document"),
	}

	if win != nil {
		wrt, err := win.Runtime()
		if err != nil {
			bindings.Fatal(op, bindings.KindClosed, err.Error())
		}
		if wrt != rt {
			bindings.Fatal(op, bindings.KindCrossCompartment, "window belongs to another runtime")
		}
		rootHandle := bindings.MustHandle(op, root)
		root.Wrapper().CheckCompartment(op, rt.ID())
		d.rootToken = rt.AddRoot(rootHandle)
		d.compartment = rt
	}

	wrapDocument(rt, d)

	if win != nil {
		if err := win.PublishDocument(d.wrapper.Get()); err != nil {
			d.logger.Warn("document not published", zap.Error(err))
		}
	}

	d.logger.Debug("document created", zap.Bool("attached", win != nil))
	return d
}

// Construct is the script-facing constructor: a detached document with a
// fresh, attribute-less html root, wrapped in owner's runtime.
func Construct(owner *Window) (*Document, error) {
	rt, err := owner.Runtime()
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	root := dom.NewElement("html").AsNode()
	rt.Binder().WrapNode(root)
	return New(rt, root, nil), nil
}

// Wrapper returns the document's wrapper cache.
func (d *Document) Wrapper() *bindings.WrapperCache {
	return &d.wrapper
}

// GetDocumentElement returns the root of the tree.
func (d *Document) GetDocumentElement() *dom.Node {
	return d.root
}

// GetParentObject returns the window the document is bound to.
func (d *Document) GetParentObject() (*Window, error) {
	if d.window == nil {
		return nil, ErrDetached
	}
	return d.window, nil
}

// Attached reports whether the document has a window.
func (d *Document) Attached() bool {
	return d.window != nil
}

// ContentChanged forwards a content change to the window, if any. A closed
// window is no longer notified.
func (d *Document) ContentChanged() {
	switch {
	case d.window == nil:
	case d.window.Closed():
		d.logger.Debug("content change dropped, window closed")
	default:
		d.window.ContentChanged()
	}
}

// Teardown releases the root registration made at construction. It must be
// called exactly once, before the compartment is destroyed.
func (d *Document) Teardown() {
	const op = "Document.Teardown"
	if d.state == StateTornDown {
		bindings.Fatal(op, bindings.KindTornDown, "document already torn down")
	}
	bindings.MustHandle(op, d.root)

	if d.rootToken != nil {
		d.rootToken.Release()
		d.rootToken = nil
	}
	d.state = StateTornDown
	d.logger.Debug("document torn down")
}

// State returns the lifecycle state.
func (d *Document) State() State {
	return d.state
}

// TornDown reports whether Teardown has run.
func (d *Document) TornDown() bool {
	return d.state == StateTornDown
}

// Compartment returns the runtime the root was registered in, or nil for a
// detached document.
func (d *Document) Compartment() *js.Runtime {
	return d.compartment
}
