package script

import (
	"fmt"

	"github.com/chrisuehlinger/scriptdom/dom"
)

// LoadHTML parses src and builds the document attached to win, making it
// window.document.
func LoadHTML(win *Window, src string) (*Document, error) {
	rt, err := win.Runtime()
	if err != nil {
		return nil, fmt.Errorf("load html: %w", err)
	}
	root, err := dom.ParseHTML(src)
	if err != nil {
		return nil, fmt.Errorf("load html: %w", err)
	}
	rt.Binder().WrapNode(root)
	return New(rt, root, win), nil
}
