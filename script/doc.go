// Package script exposes documents to a scripting compartment.
//
// A Window is the per-compartment global. A Document owns the root of a node
// tree and, when attached to a window, keeps that root registered in the
// compartment's root set until it is torn down:
//
//	rt := js.NewRuntime()
//	win := script.NewWindow(rt)
//	doc, err := script.LoadHTML(win, src)
//	...
//	doc.Teardown()
//	rt.Close()
//
// Documents created from script with `new Document()` are detached. They are
// never rooted and never become window.document.
package script
