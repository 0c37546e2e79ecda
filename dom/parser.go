package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML parses an HTML string and returns its root element.
func ParseHTML(htmlContent string) (*Node, error) {
	return Parse(strings.NewReader(htmlContent))
}

// Parse parses HTML from r and returns the root element of the resulting
// tree. A doctype, if any, is dropped: the tree this package exposes is
// rooted at an element.
func Parse(r io.Reader) (*Node, error) {
	netDoc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	for c := netDoc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			root := convertHTMLNode(c)
			convertHTMLTree(c, root)
			return root, nil
		}
	}
	return nil, ErrNotFound("document has no root element")
}

// convertHTMLTree converts the children of src into children of parent.
func convertHTMLTree(src *html.Node, parent *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		node := convertHTMLNode(c)
		if node == nil {
			continue
		}
		parent.insertBeforeInternal(node, nil)
		if c.Type == html.ElementNode {
			convertHTMLTree(c, node)
		}
	}
}

// convertHTMLNode converts a single html.Node, without its children.
func convertHTMLNode(c *html.Node) *Node {
	switch c.Type {
	case html.TextNode:
		return NewText(c.Data)

	case html.ElementNode:
		el := NewElement(c.Data)
		for _, attr := range c.Attr {
			name := attr.Key
			if attr.Namespace != "" {
				name = attr.Namespace + ":" + attr.Key
			}
			el.SetAttribute(name, attr.Val)
		}
		return el.AsNode()

	case html.CommentNode:
		return NewComment(c.Data)
	}
	return nil
}
