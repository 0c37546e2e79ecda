package script

import (
	"github.com/chrisuehlinger/scriptdom/bindings"
	"github.com/chrisuehlinger/scriptdom/dom"
)

// VisibilityState is the page visibility reported to script.
type VisibilityState string

const (
	VisibilityHidden    VisibilityState = "hidden"
	VisibilityVisible   VisibilityState = "visible"
	VisibilityPrerender VisibilityState = "prerender"
	VisibilityUnloaded  VisibilityState = "unloaded"
)

// Event is the result type of CreateEvent.
type Event struct {
	Type string
}

// The accessors below return fixed values. Documents carry no URL, encoding,
// or focus state.

func (d *Document) URL() string                     { return "" }
func (d *Document) DocumentURI() string             { return "" }
func (d *Document) CompatMode() string              { return "" }
func (d *Document) CharacterSet() string            { return "" }
func (d *Document) ContentType() string             { return "" }
func (d *Document) InputEncoding() string           { return "" }
func (d *Document) Referrer() string                { return "" }
func (d *Document) LastModified() string            { return "" }
func (d *Document) ReadyState() string              { return "" }
func (d *Document) Title() string                   { return "" }
func (d *Document) SetTitle(string) error           { return nil }
func (d *Document) Dir() string                     { return "" }
func (d *Document) SetDir(string)                   {}
func (d *Document) SelectedStyleSheetSet() string   { return "" }
func (d *Document) SetSelectedStyleSheetSet(string) {}
func (d *Document) LastStyleSheetSet() string       { return "" }
func (d *Document) PreferredStyleSheetSet() string  { return "" }
func (d *Document) EnableStyleSheetsForSet(string)  {}
func (d *Document) ReleaseCapture()                 {}
func (d *Document) MozExitPointerLock()             {}
func (d *Document) MozFullScreenEnabled() bool      { return false }
func (d *Document) Hidden() bool                    { return false }
func (d *Document) MozHidden() bool                 { return false }

func (d *Document) VisibilityState() VisibilityState    { return VisibilityVisible }
func (d *Document) MozVisibilityState() VisibilityState { return VisibilityVisible }

func (d *Document) HasFocus() (bool, error) { return false, nil }

func (d *Document) GetDefaultView() *Window                        { return nil }
func (d *Document) GetActiveElement() *dom.Element                 { return nil }
func (d *Document) GetCurrentScript() *dom.Element                 { return nil }
func (d *Document) GetMozFullScreenElement() (*dom.Element, error) { return nil, nil }
func (d *Document) GetMozPointerLockElement() *dom.Element         { return nil }
func (d *Document) ElementFromPoint(x, y float32) *dom.Element     { return nil }
func (d *Document) GetElementById(id string) *dom.Element          { return nil }

func (d *Document) QuerySelector(selectors string) (*dom.Element, error) { return nil, nil }

// CreateElement is not implemented and always panics.
func (d *Document) CreateElement(localName string) *dom.Element {
	bindings.Unimplemented("Document.CreateElement")
	return nil
}

// CreateElementNS is not implemented and always panics.
func (d *Document) CreateElementNS(namespace, qualifiedName string) *dom.Element {
	bindings.Unimplemented("Document.CreateElementNS")
	return nil
}

// CreateEvent is not implemented and always panics.
func (d *Document) CreateEvent(iface string) *Event {
	bindings.Unimplemented("Document.CreateEvent")
	return nil
}
