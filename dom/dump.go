package dom

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the subtree rooted at n as an indented tree, one node per
// line under a "." header. Intended for debugging and the command line.
func Dump(n *Node) string {
	printer := treeprint.New()
	if n.HasChildNodes() {
		dumpChildren(printer.AddBranch(describe(n)), n)
	} else {
		printer.AddNode(describe(n))
	}
	return printer.String()
}

func dumpChildren(branch treeprint.Tree, n *Node) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		if child.HasChildNodes() {
			dumpChildren(branch.AddBranch(describe(child)), child)
		} else {
			branch.AddNode(describe(child))
		}
	}
}

func describe(n *Node) string {
	switch n.nodeType {
	case ElementNode:
		el := n.AsElement()
		var sb strings.Builder
		sb.WriteString("<")
		sb.WriteString(el.TagName())
		for _, attr := range el.elementData.attributes {
			fmt.Fprintf(&sb, " %s=%q", attr.Name, attr.Value)
		}
		sb.WriteString(">")
		return sb.String()
	case TextNode:
		return fmt.Sprintf("#text %q", n.data)
	case CommentNode:
		return fmt.Sprintf("#comment %q", n.data)
	default:
		return n.nodeName
	}
}
