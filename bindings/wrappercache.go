package bindings

import "github.com/dop251/goja"

// WrapperCache is the per-entity slot holding the entity's proxy in the
// script heap. Once set, the handle never changes for the lifetime of the
// owning entity, so every exposure of the entity yields the same object.
type WrapperCache struct {
	handle      *goja.Object
	compartment string
}

// Get returns the cached proxy, or nil if the entity was never wrapped.
func (c *WrapperCache) Get() *goja.Object {
	return c.handle
}

// IsWrapped reports whether a proxy has been cached.
func (c *WrapperCache) IsWrapped() bool {
	return c.handle != nil
}

// Compartment returns the name of the compartment whose heap holds the
// proxy, or "" if the entity was never wrapped.
func (c *WrapperCache) Compartment() string {
	return c.compartment
}

// Set stores the entity's proxy, created in the named compartment. Storing
// the same proxy again from the same compartment is allowed. Replacing it
// with a different one, or moving it to another compartment, is fatal.
func (c *WrapperCache) Set(compartment string, h *goja.Object) {
	if h == nil {
		Fatal("WrapperCache.Set", KindUnwrapped, "nil proxy")
	}
	if c.handle != nil && c.handle != h {
		Fatal("WrapperCache.Set", KindRewrap, "entity already has a different proxy")
	}
	if c.handle != nil {
		c.CheckCompartment("WrapperCache.Set", compartment)
	}
	c.handle = h
	c.compartment = compartment
}

// CheckCompartment panics if the entity was wrapped in a compartment other
// than the named one. Unwrapped entities pass.
func (c *WrapperCache) CheckCompartment(op, compartment string) {
	if c.handle != nil && c.compartment != compartment {
		Fatal(op, KindCrossCompartment,
			"proxy belongs to compartment "+c.compartment+", not "+compartment)
	}
}

// Wrappable is implemented by host entities that carry a wrapper cache.
type Wrappable interface {
	Wrapper() *WrapperCache
}

// MustHandle returns the entity's proxy, panicking if it was never wrapped.
func MustHandle(op string, w Wrappable) *goja.Object {
	h := w.Wrapper().Get()
	if h == nil {
		Fatal(op, KindUnwrapped, "entity was never wrapped")
	}
	return h
}
