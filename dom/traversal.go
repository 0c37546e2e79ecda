package dom

import "iter"

// Preorder yields n and then every descendant of n in document order: a node
// is visited before its children, and children left to right. Each node is
// visited exactly once. The tree must not be mutated while iterating.
func (n *Node) Preorder() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

// Walk calls visit for n and each descendant in preorder, stopping early if
// visit returns false. It returns false if the walk was stopped.
func (n *Node) Walk(visit func(*Node) bool) bool {
	return n.walk(visit)
}

func (n *Node) walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if !child.walk(visit) {
			return false
		}
	}
	return true
}

// CollectElements returns, in preorder, every element in the subtree rooted
// at n (n included) for which match returns true.
func (n *Node) CollectElements(match func(*Element) bool) []*Element {
	var elements []*Element
	for node := range n.Preorder() {
		if el := node.AsElement(); el != nil && match(el) {
			elements = append(elements, el)
		}
	}
	return elements
}
