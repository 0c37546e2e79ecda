package script

import (
	"testing"

	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/dom"
	"github.com/chrisuehlinger/scriptdom/js"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<head><title>t</title></head>
<body>
  <div id="outer" name="foo">
    <p id="p1" name="Foo">one</p>
    <p id="p2" name="fo">two</p>
    <P id="p3">three</P>
  </div>
  <input id="i1" name="foo">
  <span id="s1"></span>
</body>
</html>`

func requireInvariant(t *testing.T, kind bindings.Kind, fn func()) {
	t.Helper()
	defer func() {
		inv, ok := bindings.AsInvariant(recover())
		require.True(t, ok, "expected an invariant failure")
		assert.Equal(t, kind, inv.Kind)
	}()
	fn()
}

func setup(t *testing.T) (*js.Runtime, *Window, *Document) {
	t.Helper()
	rt := js.NewRuntime()
	win := NewWindow(rt)
	doc, err := LoadHTML(win, page)
	require.NoError(t, err)
	return rt, win, doc
}

func ids(c *dom.HTMLCollection) []string {
	var out []string
	for _, el := range c.ToSlice() {
		out = append(out, el.Id())
	}
	return out
}

func TestNewAttachedRootsRootOnce(t *testing.T) {
	rt, win, doc := setup(t)

	root := doc.GetDocumentElement()
	assert.Equal(t, 1, rt.Roots().Count(root.Wrapper().Get()))
	assert.Equal(t, 1, rt.Roots().Len())
	assert.Same(t, rt, doc.Compartment())
	assert.Equal(t, StateConstructed, doc.State())

	assert.True(t, win.Published())
	assert.Same(t, doc.Wrapper().Get(), win.DocumentHandle())

	parent, err := doc.GetParentObject()
	require.NoError(t, err)
	assert.Same(t, win, parent)
}

func TestTeardownUnroots(t *testing.T) {
	rt, _, doc := setup(t)
	root := doc.GetDocumentElement()

	doc.Teardown()
	assert.False(t, rt.Roots().Contains(root.Wrapper().Get()))
	assert.True(t, doc.TornDown())
	assert.Equal(t, "torn-down", doc.State().String())

	requireInvariant(t, bindings.KindTornDown, doc.Teardown)
}

func TestTeardownBeforeClose(t *testing.T) {
	rt := js.NewRuntime(js.WithLeakPolicy(js.LeakPolicyError))
	win := NewWindow(rt)
	doc, err := LoadHTML(win, page)
	require.NoError(t, err)

	doc.Teardown()
	assert.NoError(t, rt.Close())
}

func TestCloseWithoutTeardownLeaks(t *testing.T) {
	rt := js.NewRuntime(js.WithLeakPolicy(js.LeakPolicyError))
	win := NewWindow(rt)
	_, err := LoadHTML(win, page)
	require.NoError(t, err)

	assert.ErrorIs(t, rt.Close(), bindings.ErrLeakedRoots)
}

func TestTeardownUsesCapturedCompartment(t *testing.T) {
	rt, win, doc := setup(t)

	// Closing the window does not change where the root is released.
	win.Close()
	doc.Teardown()
	assert.Zero(t, rt.Roots().Len())
}

func TestNewRequiresWrappedRoot(t *testing.T) {
	rt := js.NewRuntime()
	win := NewWindow(rt)
	root := dom.NewElement("html").AsNode()

	requireInvariant(t, bindings.KindUnwrapped, func() {
		New(rt, root, win)
	})
	assert.Zero(t, rt.Roots().Len())
}

func TestNewRejectsForeignWindow(t *testing.T) {
	a, b := js.NewRuntime(), js.NewRuntime()
	win := NewWindow(a)
	root := dom.NewElement("html").AsNode()
	b.Binder().WrapNode(root)

	requireInvariant(t, bindings.KindCrossCompartment, func() {
		New(b, root, win)
	})
}

func TestSecondWindowOnRuntimeIsFatal(t *testing.T) {
	rt, win, first := setup(t)

	requireInvariant(t, bindings.KindCrossCompartment, func() {
		NewWindow(rt)
	})

	// The first document stays published, and script-constructed documents
	// still belong to the first window.
	v, err := rt.Execute("document")
	require.NoError(t, err)
	assert.Same(t, first.Wrapper().Get(), v.ToObject(rt.VM()))
	assert.Same(t, first.Wrapper().Get(), win.DocumentHandle())

	// A closed window keeps its claim on the runtime.
	win.Close()
	requireInvariant(t, bindings.KindCrossCompartment, func() {
		NewWindow(rt)
	})
}

func TestNewRejectsClosedWindow(t *testing.T) {
	rt := js.NewRuntime()
	win := NewWindow(rt)
	win.Close()
	root := dom.NewElement("html").AsNode()
	rt.Binder().WrapNode(root)

	requireInvariant(t, bindings.KindClosed, func() {
		New(rt, root, win)
	})
}

func TestSecondDocumentIsNotPublished(t *testing.T) {
	rt, win, first := setup(t)

	second, err := LoadHTML(win, "<html></html>")
	require.NoError(t, err)
	assert.Same(t, first.Wrapper().Get(), win.DocumentHandle())
	assert.NotSame(t, first.Wrapper().Get(), second.Wrapper().Get())
	assert.Equal(t, 2, rt.Roots().Len())

	assert.ErrorIs(t, win.PublishDocument(second.Wrapper().Get()), ErrAlreadyPublished)
}

func TestConstructIsDetached(t *testing.T) {
	rt, win, attached := setup(t)

	doc, err := Construct(win)
	require.NoError(t, err)

	root := doc.GetDocumentElement()
	require.NotNil(t, root)
	assert.Equal(t, "html", root.AsElement().TagName())
	assert.Empty(t, root.AsElement().Attributes())
	assert.False(t, root.HasChildNodes())
	assert.True(t, root.Wrapper().IsWrapped())

	assert.False(t, doc.Attached())
	assert.Nil(t, doc.Compartment())
	assert.False(t, rt.Roots().Contains(root.Wrapper().Get()))
	assert.Same(t, attached.Wrapper().Get(), win.DocumentHandle())

	_, err = doc.GetParentObject()
	assert.ErrorIs(t, err, ErrDetached)

	_, err = doc.GetElementsByTagName("html")
	assert.ErrorIs(t, err, ErrDetached)
	_, err = doc.GetElementsByClassName("x")
	assert.ErrorIs(t, err, ErrDetached)

	// Nothing was rooted, so teardown only moves the state.
	before := rt.Roots().Len()
	doc.Teardown()
	assert.True(t, doc.TornDown())
	assert.Equal(t, before, rt.Roots().Len())
	requireInvariant(t, bindings.KindTornDown, doc.Teardown)
}

func TestConstructOnClosedWindow(t *testing.T) {
	_, win, _ := setup(t)
	win.Close()

	_, err := Construct(win)
	assert.ErrorIs(t, err, ErrWindowClosed)
}

func TestContentChangedForwards(t *testing.T) {
	_, win, doc := setup(t)
	hooked := 0
	win.SetOnContentChanged(func() { hooked++ })

	doc.ContentChanged()
	doc.ContentChanged()
	assert.Equal(t, 2, win.ContentChanges())
	assert.Equal(t, 2, hooked)

	detached, err := Construct(win)
	require.NoError(t, err)
	detached.ContentChanged()
	assert.Equal(t, 2, win.ContentChanges())

	win.Close()
	doc.ContentChanged()
	assert.Equal(t, 2, win.ContentChanges())
	assert.Equal(t, 2, hooked)
}

func TestStubAccessors(t *testing.T) {
	_, _, doc := setup(t)

	for name, got := range map[string]string{
		"URL":                    doc.URL(),
		"DocumentURI":            doc.DocumentURI(),
		"CompatMode":             doc.CompatMode(),
		"CharacterSet":           doc.CharacterSet(),
		"ContentType":            doc.ContentType(),
		"InputEncoding":          doc.InputEncoding(),
		"Referrer":               doc.Referrer(),
		"LastModified":           doc.LastModified(),
		"ReadyState":             doc.ReadyState(),
		"Title":                  doc.Title(),
		"Dir":                    doc.Dir(),
		"SelectedStyleSheetSet":  doc.SelectedStyleSheetSet(),
		"LastStyleSheetSet":      doc.LastStyleSheetSet(),
		"PreferredStyleSheetSet": doc.PreferredStyleSheetSet(),
	} {
		assert.Empty(t, got, name)
	}

	assert.NoError(t, doc.SetTitle("ignored"))
	assert.Empty(t, doc.Title())
	doc.SetDir("rtl")
	assert.Empty(t, doc.Dir())
	doc.SetSelectedStyleSheetSet("x")
	doc.EnableStyleSheetsForSet("x")
	doc.ReleaseCapture()
	doc.MozExitPointerLock()

	focused, err := doc.HasFocus()
	assert.NoError(t, err)
	assert.False(t, focused)
	assert.False(t, doc.Hidden())
	assert.False(t, doc.MozHidden())
	assert.False(t, doc.MozFullScreenEnabled())
	assert.Equal(t, VisibilityVisible, doc.VisibilityState())
	assert.Equal(t, VisibilityVisible, doc.MozVisibilityState())

	assert.Nil(t, doc.GetDefaultView())
	assert.Nil(t, doc.GetActiveElement())
	assert.Nil(t, doc.GetCurrentScript())
	assert.Nil(t, doc.GetMozPointerLockElement())
	assert.Nil(t, doc.ElementFromPoint(1, 1))
	assert.Nil(t, doc.GetElementById("p1"))
	el, err := doc.GetMozFullScreenElement()
	assert.NoError(t, err)
	assert.Nil(t, el)
	el, err = doc.QuerySelector("p")
	assert.NoError(t, err)
	assert.Nil(t, el)
}

func TestCreatorsAreUnimplemented(t *testing.T) {
	_, _, doc := setup(t)

	requireInvariant(t, bindings.KindUnimplemented, func() { doc.CreateElement("div") })
	requireInvariant(t, bindings.KindUnimplemented, func() { doc.CreateElementNS("", "div") })
	requireInvariant(t, bindings.KindUnimplemented, func() { doc.CreateEvent("Event") })
}

func TestLoadHTMLOnClosedWindow(t *testing.T) {
	rt := js.NewRuntime()
	win := NewWindow(rt)
	win.Close()

	_, err := LoadHTML(win, page)
	assert.ErrorIs(t, err, ErrWindowClosed)
	assert.Zero(t, rt.Roots().Len())

	_, err = win.Runtime()
	assert.ErrorIs(t, err, ErrWindowClosed)
	_, err = win.Scope()
	assert.ErrorIs(t, err, ErrWindowClosed)
	assert.ErrorIs(t, win.PublishDocument(rt.VM().NewObject()), ErrWindowClosed)
}

func TestTreeIsUnchangedByQueries(t *testing.T) {
	_, _, doc := setup(t)
	before := dom.Dump(doc.GetDocumentElement())

	_, err := doc.GetElementsByTagName("p")
	require.NoError(t, err)
	_, err = doc.GetElementsByName("foo")
	require.NoError(t, err)

	if diff := cmp.Diff(before, dom.Dump(doc.GetDocumentElement())); diff != "" {
		t.Errorf("tree changed (-before +after):\n%s", diff)
	}
}
