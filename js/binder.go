package js

import (
	"strconv"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// goNodeKey is the hidden property linking a proxy back to its node.
const goNodeKey = "_goNode"

// Binder creates the proxies that expose tree nodes and collections to
// script. Every proxy is cached in its entity's WrapperCache, so wrapping
// the same entity again yields the same object.
type Binder struct {
	runtime *Runtime
	logger  *zap.Logger

	// Prototype objects for instanceof checks
	nodeProto       *goja.Object
	elementProto    *goja.Object
	collectionProto *goja.Object
	protos          map[string]*goja.Object
}

func newBinder(runtime *Runtime) *Binder {
	b := &Binder{
		runtime: runtime,
		logger:  runtime.logger.Named("binder"),
		protos:  make(map[string]*goja.Object),
	}
	b.setupPrototypes()
	return b
}

// setupPrototypes creates the prototype chain for the exposed interfaces.
// This enables instanceof checks to work correctly.
func (b *Binder) setupPrototypes() {
	vm := b.runtime.vm

	b.nodeProto = b.DefineInterface("Node", nil, nil)
	nodeCtor := vm.Get("Node").ToObject(vm)
	nodeCtor.Set("ELEMENT_NODE", int(dom.ElementNode))
	nodeCtor.Set("TEXT_NODE", int(dom.TextNode))
	nodeCtor.Set("COMMENT_NODE", int(dom.CommentNode))
	nodeCtor.Set("DOCUMENT_TYPE_NODE", int(dom.DocumentTypeNode))

	b.elementProto = b.DefineInterface("Element", b.nodeProto, nil)
	b.collectionProto = b.DefineInterface("HTMLCollection", nil, nil)
}

// DefineInterface installs a global constructor named name and returns its
// prototype object. A nil construct makes the constructor throw "Illegal
// constructor". Defining the same name twice returns the existing prototype.
func (b *Binder) DefineInterface(name string, parent *goja.Object, construct func(goja.ConstructorCall) *goja.Object) *goja.Object {
	if proto, ok := b.protos[name]; ok {
		return proto
	}

	vm := b.runtime.vm
	proto := vm.NewObject()
	if parent != nil {
		proto.SetPrototype(parent)
	}
	if construct == nil {
		construct = func(call goja.ConstructorCall) *goja.Object {
			panic(vm.NewTypeError("Illegal constructor"))
		}
	}
	ctor := vm.ToValue(construct).ToObject(vm)
	ctor.Set("prototype", proto)
	proto.Set("constructor", ctor)
	vm.Set(name, ctor)

	b.protos[name] = proto
	return proto
}

// Prototype returns the prototype installed by DefineInterface, or nil.
func (b *Binder) Prototype(name string) *goja.Object {
	return b.protos[name]
}

// WrapNode returns the proxy for node, creating it on first use.
func (b *Binder) WrapNode(node *dom.Node) *goja.Object {
	if node == nil {
		return nil
	}

	cache := node.Wrapper()
	cache.CheckCompartment("Binder.WrapNode", b.runtime.id)
	if jsObj := cache.Get(); jsObj != nil {
		return jsObj
	}

	var jsNode *goja.Object
	if el := node.AsElement(); el != nil {
		jsNode = b.bindElement(el)
	} else {
		jsNode = b.bindNode(node, b.nodeProto)
	}
	cache.Set(b.runtime.id, jsNode)
	return jsNode
}

// WrapElement is WrapNode for elements.
func (b *Binder) WrapElement(el *dom.Element) *goja.Object {
	if el == nil {
		return nil
	}
	return b.WrapNode(el.AsNode())
}

// bindNode creates the proxy with the properties shared by every node type.
func (b *Binder) bindNode(node *dom.Node, proto *goja.Object) *goja.Object {
	vm := b.runtime.vm
	jsNode := vm.NewObject()
	jsNode.SetPrototype(proto)

	// Store a reference back to the Go node, hidden from enumeration.
	jsNode.DefineDataProperty(goNodeKey, vm.ToValue(node), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)

	jsNode.Set("nodeType", int(node.NodeType()))
	jsNode.Set("nodeName", node.NodeName())

	b.defineGetter(jsNode, "nodeValue", func() goja.Value {
		switch node.NodeType() {
		case dom.TextNode, dom.CommentNode:
			return vm.ToValue(node.NodeValue())
		}
		return goja.Null()
	})
	b.defineGetter(jsNode, "textContent", func() goja.Value {
		return vm.ToValue(node.TextContent())
	})
	b.defineGetter(jsNode, "parentNode", func() goja.Value {
		return b.nodeValue(node.ParentNode())
	})
	b.defineGetter(jsNode, "firstChild", func() goja.Value {
		return b.nodeValue(node.FirstChild())
	})
	b.defineGetter(jsNode, "lastChild", func() goja.Value {
		return b.nodeValue(node.LastChild())
	})
	b.defineGetter(jsNode, "nextSibling", func() goja.Value {
		return b.nodeValue(node.NextSibling())
	})
	b.defineGetter(jsNode, "previousSibling", func() goja.Value {
		return b.nodeValue(node.PreviousSibling())
	})
	b.defineGetter(jsNode, "childNodes", func() goja.Value {
		children := node.ChildNodes()
		values := make([]goja.Value, len(children))
		for i, child := range children {
			values[i] = b.WrapNode(child)
		}
		return vm.NewArray(toInterfaces(values)...)
	})

	jsNode.Set("hasChildNodes", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(node.HasChildNodes())
	})

	return jsNode
}

// bindElement creates the proxy for an element.
func (b *Binder) bindElement(el *dom.Element) *goja.Object {
	vm := b.runtime.vm
	jsEl := b.bindNode(el.AsNode(), b.elementProto)

	jsEl.Set("tagName", el.TagName())
	jsEl.Set("localName", el.TagName())

	b.defineGetter(jsEl, "id", func() goja.Value {
		return vm.ToValue(el.Id())
	})
	b.defineGetter(jsEl, "children", func() goja.Value {
		children := el.Children()
		values := make([]goja.Value, len(children))
		for i, child := range children {
			values[i] = b.WrapElement(child)
		}
		return vm.NewArray(toInterfaces(values)...)
	})

	jsEl.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		v, ok := el.GetAttribute(call.Arguments[0].String())
		if !ok {
			return goja.Null()
		}
		return vm.ToValue(v)
	})

	jsEl.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return vm.ToValue(false)
		}
		return vm.ToValue(el.HasAttribute(call.Arguments[0].String()))
	})

	jsEl.Set("getAttributeNames", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.AttributeNames())
	})

	return jsEl
}

// WrapHTMLCollection returns the proxy for a snapshot collection. The
// collection's scope must be this compartment's global object.
func (b *Binder) WrapHTMLCollection(collection *dom.HTMLCollection) *goja.Object {
	scope := collection.Scope()
	if scope == nil {
		bindings.Fatal("Binder.WrapHTMLCollection", bindings.KindUnwrapped, "collection has no parent scope")
	}
	if scope != b.runtime.vm.GlobalObject() {
		bindings.Fatal("Binder.WrapHTMLCollection", bindings.KindCrossCompartment, "scope belongs to another compartment")
	}

	cache := collection.Wrapper()
	if jsCol := cache.Get(); jsCol != nil {
		return jsCol
	}

	vm := b.runtime.vm
	jsCol := vm.NewObject()
	jsCol.SetPrototype(b.collectionProto)

	length := collection.Length()
	jsCol.DefineDataProperty("length", vm.ToValue(length), goja.FLAG_FALSE, goja.FLAG_FALSE, goja.FLAG_FALSE)

	jsCol.Set("item", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		return b.elementValue(collection.Item(int(call.Arguments[0].ToInteger())))
	})

	jsCol.Set("namedItem", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			return goja.Null()
		}
		return b.elementValue(collection.NamedItem(call.Arguments[0].String()))
	})

	// The collection is a snapshot, so the index properties never go stale.
	for i := 0; i < length; i++ {
		idx := i
		jsCol.DefineAccessorProperty(strconv.Itoa(idx), vm.ToValue(func(call goja.FunctionCall) goja.Value {
			return b.WrapElement(collection.Item(idx))
		}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)
	}

	cache.Set(b.runtime.id, jsCol)
	b.logger.Debug("collection wrapped", zap.Int("length", length))
	return jsCol
}

// Unwrap returns the node behind a proxy created by WrapNode, or nil.
func (b *Binder) Unwrap(v goja.Value) *dom.Node {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil
	}
	if hidden := obj.Get(goNodeKey); hidden != nil && !goja.IsUndefined(hidden) {
		if node, ok := hidden.Export().(*dom.Node); ok {
			return node
		}
	}
	return nil
}

// defineGetter defines a read-only accessor property on obj.
func (b *Binder) defineGetter(obj *goja.Object, name string, getter func() goja.Value) {
	vm := b.runtime.vm
	getterFunc := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		return getter()
	})
	if err := obj.DefineAccessorProperty(name, getterFunc, nil, goja.FLAG_FALSE, goja.FLAG_TRUE); err != nil {
		b.logger.Error("define getter", zap.String("name", name), zap.Error(err))
	}
}

// nodeValue wraps node, mapping nil to null.
func (b *Binder) nodeValue(node *dom.Node) goja.Value {
	if node == nil {
		return goja.Null()
	}
	return b.WrapNode(node)
}

// elementValue wraps el, mapping nil to null.
func (b *Binder) elementValue(el *dom.Element) goja.Value {
	if el == nil {
		return goja.Null()
	}
	return b.WrapElement(el)
}

func toInterfaces(values []goja.Value) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
