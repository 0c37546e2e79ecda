package dom

import (
	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/dop251/goja"
)

// HTMLCollection is an ordered, immutable snapshot of elements. It is fixed
// at construction: later mutation of the tree never changes its contents.
type HTMLCollection struct {
	elements []*Element

	// Parent scope the collection's proxy was created under.
	scope   *goja.Object
	wrapper bindings.WrapperCache
}

// NewHTMLCollection creates a snapshot collection over elements, parented
// under scope. The slice is copied.
func NewHTMLCollection(elements []*Element, scope *goja.Object) *HTMLCollection {
	return &HTMLCollection{
		elements: append([]*Element(nil), elements...),
		scope:    scope,
	}
}

// Wrapper returns the collection's wrapper cache.
func (hc *HTMLCollection) Wrapper() *bindings.WrapperCache {
	return &hc.wrapper
}

// Scope returns the parent scope the collection belongs to.
func (hc *HTMLCollection) Scope() *goja.Object {
	return hc.scope
}

// Length returns the number of elements in the collection.
func (hc *HTMLCollection) Length() int {
	return len(hc.elements)
}

// Item returns the element at the given index, or nil if out of bounds.
func (hc *HTMLCollection) Item(index int) *Element {
	if index < 0 || index >= len(hc.elements) {
		return nil
	}
	return hc.elements[index]
}

// NamedItem returns the first element whose id is name, or failing that the
// first element whose name attribute is name.
func (hc *HTMLCollection) NamedItem(name string) *Element {
	if name == "" {
		return nil
	}
	for _, el := range hc.elements {
		if el.Id() == name {
			return el
		}
	}
	for _, el := range hc.elements {
		if v, ok := el.GetAttribute("name"); ok && v == name {
			return el
		}
	}
	return nil
}

// ToSlice returns all elements as a slice. The slice is a copy.
func (hc *HTMLCollection) ToSlice() []*Element {
	return append([]*Element(nil), hc.elements...)
}
