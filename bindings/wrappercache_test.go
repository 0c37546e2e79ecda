package bindings

import (
	"errors"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
)

type entity struct {
	wrapper WrapperCache
}

func (e *entity) Wrapper() *WrapperCache { return &e.wrapper }

func TestWrapperCache_SetOnce(t *testing.T) {
	vm := goja.New()
	var c WrapperCache
	assert.Nil(t, c.Get())
	assert.False(t, c.IsWrapped())

	h := vm.NewObject()
	c.Set("a", h)
	assert.Same(t, h, c.Get())
	assert.True(t, c.IsWrapped())
	assert.Equal(t, "a", c.Compartment())

	// Same handle again is fine.
	c.Set("a", h)
	assert.Same(t, h, c.Get())
}

func TestWrapperCache_CheckCompartment(t *testing.T) {
	vm := goja.New()
	var c WrapperCache
	c.CheckCompartment("test", "a")

	c.Set("a", vm.NewObject())
	c.CheckCompartment("test", "a")
	requireInvariant(t, KindCrossCompartment, func() {
		c.CheckCompartment("test", "b")
	})
}

func TestWrapperCache_Rewrap(t *testing.T) {
	vm := goja.New()
	var c WrapperCache
	c.Set("a", vm.NewObject())

	requireInvariant(t, KindRewrap, func() {
		c.Set("a", vm.NewObject())
	})
	requireInvariant(t, KindUnwrapped, func() {
		c.Set("a", nil)
	})
}

func TestWrapperCache_SetKeepsCompartment(t *testing.T) {
	vm := goja.New()
	var c WrapperCache
	h := vm.NewObject()
	c.Set("a", h)

	requireInvariant(t, KindCrossCompartment, func() {
		c.Set("b", h)
	})
	assert.Equal(t, "a", c.Compartment())
	assert.Same(t, h, c.Get())
}

func TestMustHandle(t *testing.T) {
	vm := goja.New()
	e := &entity{}
	requireInvariant(t, KindUnwrapped, func() {
		MustHandle("test", e)
	})

	h := vm.NewObject()
	e.wrapper.Set("a", h)
	assert.Same(t, h, MustHandle("test", e))
}

func TestInvariantError(t *testing.T) {
	err := &InvariantError{Op: "Document.Teardown", Kind: KindTornDown, Detail: "twice"}
	assert.Equal(t, "invariant violated [torn_down] in Document.Teardown: twice", err.Error())
	assert.True(t, errors.Is(err, &InvariantError{Kind: KindTornDown}))
	assert.False(t, errors.Is(err, &InvariantError{Kind: KindClosed}))

	_, ok := AsInvariant("not an error")
	assert.False(t, ok)
}

func TestUnimplemented(t *testing.T) {
	requireInvariant(t, KindUnimplemented, func() {
		Unimplemented("Document.CreateElement")
	})
}
