package script

import (
	"fmt"

	"github.com/chrisuehlinger/scriptdom/dom"
)

// GetElementsByTagName returns every element under the root, the root
// included, whose tag name equals tag exactly, in document order.
func (d *Document) GetElementsByTagName(tag string) (*dom.HTMLCollection, error) {
	return d.collect("GetElementsByTagName", func(el *dom.Element) bool {
		return el.TagName() == tag
	})
}

// GetElementsByName returns every element whose name attribute equals name.
// Elements without a name attribute never match.
func (d *Document) GetElementsByName(name string) (*dom.HTMLCollection, error) {
	return d.collect("GetElementsByName", func(el *dom.Element) bool {
		v, ok := el.GetAttribute("name")
		return ok && v == name
	})
}

// GetElementsByTagNameNS always returns an empty collection.
func (d *Document) GetElementsByTagNameNS(namespace, tag string) (*dom.HTMLCollection, error) {
	return d.newCollection("GetElementsByTagNameNS", nil)
}

// GetElementsByClassName always returns an empty collection.
func (d *Document) GetElementsByClassName(class string) (*dom.HTMLCollection, error) {
	return d.newCollection("GetElementsByClassName", nil)
}

func (d *Document) collect(op string, match func(*dom.Element) bool) (*dom.HTMLCollection, error) {
	// Fail before walking the tree when there is nowhere to put the result.
	if _, err := d.window.scope(op); err != nil {
		return nil, err
	}
	return d.newCollection(op, d.root.CollectElements(match))
}

// newCollection snapshots elements into a collection parented under the
// window's scope and wraps it in the window's compartment.
func (d *Document) newCollection(op string, elements []*dom.Element) (*dom.HTMLCollection, error) {
	scope, err := d.window.scope(op)
	if err != nil {
		return nil, err
	}
	rt, err := d.window.Runtime()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := dom.NewHTMLCollection(elements, scope)
	rt.Binder().WrapHTMLCollection(c)
	return c, nil
}
