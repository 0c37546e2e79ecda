package dom

// Element represents an element in the document tree.
// Element shares Node's representation and adds tag name and attributes.
type Element Node

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// NewElement creates a detached element with the given tag name. The tag
// name is stored exactly as given; comparisons against it are
// case-sensitive.
func NewElement(tagName string) *Element {
	n := newNode(ElementNode, tagName)
	n.elementData = &elementData{tagName: tagName}
	return (*Element)(n)
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// TagName returns the element's tag name.
func (e *Element) TagName() string {
	return e.elementData.tagName
}

// Id returns the id attribute value.
func (e *Element) Id() string {
	v, _ := e.GetAttribute("id")
	return v
}

// SetId sets the id attribute value.
func (e *Element) SetId(id string) {
	e.SetAttribute("id", id)
}

// GetAttribute returns the value of the named attribute and whether the
// element carries it. Names are matched exactly.
func (e *Element) GetAttribute(name string) (string, bool) {
	for _, attr := range e.elementData.attributes {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttribute returns true if the element has the named attribute.
func (e *Element) HasAttribute(name string) bool {
	_, ok := e.GetAttribute(name)
	return ok
}

// SetAttribute sets the value of the named attribute, appending it if it is
// not present yet.
func (e *Element) SetAttribute(name, value string) {
	attrs := e.elementData.attributes
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return
		}
	}
	e.elementData.attributes = append(attrs, Attr{Name: name, Value: value})
}

// RemoveAttribute removes the named attribute if present.
func (e *Element) RemoveAttribute(name string) {
	attrs := e.elementData.attributes
	for i := range attrs {
		if attrs[i].Name == name {
			e.elementData.attributes = append(attrs[:i], attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the element's attributes in insertion order.
func (e *Element) Attributes() []Attr {
	return append([]Attr(nil), e.elementData.attributes...)
}

// AttributeNames returns the attribute names in insertion order.
func (e *Element) AttributeNames() []string {
	names := make([]string, len(e.elementData.attributes))
	for i, attr := range e.elementData.attributes {
		names[i] = attr.Name
	}
	return names
}

// Children returns the element children of this element.
func (e *Element) Children() []*Element {
	var children []*Element
	for child := e.firstChild; child != nil; child = child.nextSibling {
		if el := child.AsElement(); el != nil {
			children = append(children, el)
		}
	}
	return children
}

// AppendChild appends child to this element's children.
func (e *Element) AppendChild(child *Node) (*Node, error) {
	return e.AsNode().AppendChild(child)
}
