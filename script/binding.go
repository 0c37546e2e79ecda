package script

import (
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/chrisuehlinger/scriptdom/js"
	"github.com/dop251/goja"
)

const goDocumentKey = "_goDocument"

// installDocumentConstructor defines the global Document interface. Calling
// `new Document()` builds a detached document owned by w.
func installDocumentConstructor(w *Window) {
	vm := w.rt.VM()
	w.rt.Binder().DefineInterface("Document", nil, func(call goja.ConstructorCall) *goja.Object {
		d, err := Construct(w)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return d.wrapper.Get()
	})
}

// wrapDocument creates the document's proxy in rt and stores it in the
// document's wrapper cache. An already wrapped document keeps its proxy.
func wrapDocument(rt *js.Runtime, d *Document) *goja.Object {
	if h := d.wrapper.Get(); h != nil {
		d.wrapper.CheckCompartment("wrapDocument", rt.ID())
		return h
	}

	vm := rt.VM()
	binder := rt.Binder()
	jsDoc := vm.NewObject()
	if proto := binder.Prototype("Document"); proto != nil {
		jsDoc.SetPrototype(proto)
	}
	jsDoc.DefineDataProperty(goDocumentKey, vm.ToValue(d), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)

	getter := func(fn func() goja.Value) goja.Value {
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return fn()
		})
	}
	define := func(name string, get, set goja.Value) {
		jsDoc.DefineAccessorProperty(name, get, set, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}

	define("documentElement", getter(func() goja.Value {
		if d.root == nil {
			return goja.Null()
		}
		return binder.WrapNode(d.root)
	}), nil)

	for name, fn := range map[string]func() string{
		"URL":           d.URL,
		"documentURI":   d.DocumentURI,
		"compatMode":    d.CompatMode,
		"characterSet":  d.CharacterSet,
		"contentType":   d.ContentType,
		"inputEncoding": d.InputEncoding,
		"referrer":      d.Referrer,
		"lastModified":  d.LastModified,
		"readyState":    d.ReadyState,
		"dir":           d.Dir,
	} {
		define(name, getter(func() goja.Value { return vm.ToValue(fn()) }), nil)
	}

	define("title",
		getter(func() goja.Value { return vm.ToValue(d.Title()) }),
		vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if err := d.SetTitle(call.Argument(0).String()); err != nil {
				panic(vm.NewGoError(err))
			}
			return goja.Undefined()
		}))
	define("hidden", getter(func() goja.Value { return vm.ToValue(d.Hidden()) }), nil)
	define("visibilityState", getter(func() goja.Value { return vm.ToValue(string(d.VisibilityState())) }), nil)

	// Query methods throw into script when the document has no usable window.
	query := func(fn func(call goja.FunctionCall) (*dom.HTMLCollection, error)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			c, err := fn(call)
			if err != nil {
				panic(vm.NewGoError(err))
			}
			return c.Wrapper().Get()
		}
	}
	jsDoc.Set("getElementsByTagName", query(func(call goja.FunctionCall) (*dom.HTMLCollection, error) {
		return d.GetElementsByTagName(call.Argument(0).String())
	}))
	jsDoc.Set("getElementsByName", query(func(call goja.FunctionCall) (*dom.HTMLCollection, error) {
		return d.GetElementsByName(call.Argument(0).String())
	}))
	jsDoc.Set("getElementsByTagNameNS", query(func(call goja.FunctionCall) (*dom.HTMLCollection, error) {
		return d.GetElementsByTagNameNS(call.Argument(0).String(), call.Argument(1).String())
	}))
	jsDoc.Set("getElementsByClassName", query(func(call goja.FunctionCall) (*dom.HTMLCollection, error) {
		return d.GetElementsByClassName(call.Argument(0).String())
	}))

	jsDoc.Set("getElementById", func(call goja.FunctionCall) goja.Value {
		return elementOrNull(binder, d.GetElementById(call.Argument(0).String()))
	})
	jsDoc.Set("querySelector", func(call goja.FunctionCall) goja.Value {
		el, err := d.QuerySelector(call.Argument(0).String())
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return elementOrNull(binder, el)
	})
	jsDoc.Set("hasFocus", func(call goja.FunctionCall) goja.Value {
		focused, err := d.HasFocus()
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(focused)
	})

	// The creators panic; Runtime.Execute reports the panic as an error.
	jsDoc.Set("createElement", func(call goja.FunctionCall) goja.Value {
		return elementOrNull(binder, d.CreateElement(call.Argument(0).String()))
	})
	jsDoc.Set("createElementNS", func(call goja.FunctionCall) goja.Value {
		return elementOrNull(binder, d.CreateElementNS(call.Argument(0).String(), call.Argument(1).String()))
	})
	jsDoc.Set("createEvent", func(call goja.FunctionCall) goja.Value {
		d.CreateEvent(call.Argument(0).String())
		return goja.Null()
	})

	d.wrapper.Set(rt.ID(), jsDoc)
	return jsDoc
}

func elementOrNull(binder *js.Binder, el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return binder.WrapElement(el)
}

// DocumentFromValue returns the document behind a proxy, or nil.
func DocumentFromValue(v goja.Value) *Document {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil {
		return nil
	}
	hidden := obj.Get(goDocumentKey)
	if hidden == nil || goja.IsUndefined(hidden) {
		return nil
	}
	d, _ := hidden.Export().(*Document)
	return d
}
