package script

import (
	"testing"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/js"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentBinding(t *testing.T) {
	rt, _, _ := setup(t)

	tests := []struct {
		code string
		want interface{}
	}{
		{"document.documentElement.tagName", "html"},
		{"document.documentElement === document.documentElement", true},
		{"document.URL", ""},
		{"document.characterSet", ""},
		{"document.readyState", ""},
		{"document.hidden", false},
		{"document.visibilityState", "visible"},
		{"document.title = 'x'; document.title", ""},
		{"document.hasFocus()", false},
		{"document.getElementById('p1')", nil},
		{"document.querySelector('p')", nil},
		{"document.getElementsByTagName('p').length", int64(3)},
		{"document.getElementsByTagName('p')[1].id", "p2"},
		{"document.getElementsByTagName('p').namedItem('p3').textContent", "three"},
		{"document.getElementsByName('foo').item(1).id", "i1"},
		{"document.getElementsByTagNameNS('*', 'p').length", int64(0)},
		{"document.getElementsByClassName('x').length", int64(0)},
		{"document.getElementsByTagName('p') !== document.getElementsByTagName('p')", true},
		{"document instanceof Document", true},
		{"Object.keys(window).indexOf('document') >= 0", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			v, err := rt.Execute(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Export())
		})
	}
}

func TestDocumentFromValue(t *testing.T) {
	rt, _, doc := setup(t)

	v, err := rt.Execute("document")
	require.NoError(t, err)
	assert.Same(t, doc, DocumentFromValue(v))

	v, err = rt.Execute("document.documentElement")
	require.NoError(t, err)
	assert.Nil(t, DocumentFromValue(v))
	assert.Nil(t, DocumentFromValue(nil))
}

func TestScriptConstructedDocument(t *testing.T) {
	rt, win, doc := setup(t)

	v, err := rt.Execute(`
		var d = new Document();
		[d !== document, d.documentElement.tagName, d.documentElement.childNodes.length, d instanceof Document]
	`)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{true, "html", int64(0), true}, v.Export())

	v, err = rt.Execute("d")
	require.NoError(t, err)
	detached := DocumentFromValue(v)
	require.NotNil(t, detached)
	assert.False(t, detached.Attached())
	assert.Same(t, doc.Wrapper().Get(), win.DocumentHandle())

	// Only the page's root is rooted.
	assert.Equal(t, 1, rt.Roots().Len())

	_, err = rt.Execute("d.getElementsByTagName('html')")
	assert.ErrorIs(t, err, ErrDetached)
}

func TestScriptQueryOnClosedWindow(t *testing.T) {
	rt, win, _ := setup(t)
	win.Close()

	_, err := rt.Execute("document.getElementsByName('foo')")
	assert.ErrorIs(t, err, ErrWindowClosed)

	_, err = rt.Execute("new Document()")
	assert.ErrorIs(t, err, ErrWindowClosed)
}

func TestScriptCreateElementFails(t *testing.T) {
	for _, code := range []string{
		"document.createElement('div')",
		"document.createElementNS('', 'div')",
		"document.createEvent('Event')",
	} {
		t.Run(code, func(t *testing.T) {
			rt, _, _ := setup(t)
			_, err := rt.Execute(code)
			require.Error(t, err)
			assert.Contains(t, err.Error(), string(bindings.KindUnimplemented))
		})
	}
}

func TestDetachedDocumentWrappedInOwnerRuntime(t *testing.T) {
	rt := js.NewRuntime()
	win := NewWindow(rt)

	doc, err := Construct(win)
	require.NoError(t, err)
	assert.Equal(t, rt.ID(), doc.Wrapper().Compartment())
	assert.Equal(t, rt.ID(), doc.GetDocumentElement().Wrapper().Compartment())
	assert.False(t, win.Published())
}
