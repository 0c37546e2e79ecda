package bindings

import (
	"fmt"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// RootSet is the set of proxies a compartment must keep alive regardless of
// reachability from script. It holds a strong reference to each registered
// handle until it is unregistered.
//
// A RootSet belongs to exactly one compartment and is only touched from the
// thread driving that compartment; it does no locking.
type RootSet struct {
	name    string
	entries map[*goja.Object]int
	total   int
	closed  bool
}

// NewRootSet creates an empty root set. The name identifies the owning
// compartment in logs.
func NewRootSet(name string) *RootSet {
	return &RootSet{
		name:    name,
		entries: make(map[*goja.Object]int),
	}
}

// Name returns the owning compartment's name.
func (s *RootSet) Name() string {
	return s.name
}

// Register adds h to the root set and returns the token that must be used to
// release it. Registering the same handle twice yields two tokens and two
// entries.
func (s *RootSet) Register(h *goja.Object) *RootToken {
	s.add("RootSet.Register", h)
	return &RootToken{set: s, handle: h}
}

// Unregister removes one registration of h. Prefer RootToken.Release, which
// guarantees the removal targets the set the handle was registered in.
func (s *RootSet) Unregister(h *goja.Object) {
	s.remove("RootSet.Unregister", h)
}

func (s *RootSet) add(op string, h *goja.Object) {
	if h == nil {
		Fatal(op, KindUnwrapped, "cannot root an unwrapped entity")
	}
	if s.closed {
		Fatal(op, KindClosed, fmt.Sprintf("root set %q is closed", s.name))
	}
	s.entries[h]++
	s.total++
	Logger().Debug("root registered",
		zap.String("compartment", s.name),
		zap.Int("count", s.entries[h]),
		zap.Int("total", s.total))
}

func (s *RootSet) remove(op string, h *goja.Object) {
	if h == nil {
		Fatal(op, KindUnwrapped, "cannot unroot an unwrapped entity")
	}
	if s.closed {
		Fatal(op, KindClosed, fmt.Sprintf("root set %q is closed", s.name))
	}
	n, ok := s.entries[h]
	if !ok {
		Fatal(op, KindNotRooted, "handle is not in the root set")
	}
	if n == 1 {
		delete(s.entries, h)
	} else {
		s.entries[h] = n - 1
	}
	s.total--
	Logger().Debug("root unregistered",
		zap.String("compartment", s.name),
		zap.Int("total", s.total))
}

// Contains reports whether h is currently rooted.
func (s *RootSet) Contains(h *goja.Object) bool {
	_, ok := s.entries[h]
	return ok
}

// Count returns how many times h is currently registered.
func (s *RootSet) Count(h *goja.Object) int {
	return s.entries[h]
}

// Len returns the total number of live registrations.
func (s *RootSet) Len() int {
	return s.total
}

// Closed reports whether Close has been called.
func (s *RootSet) Closed() bool {
	return s.closed
}

// Close tears the set down. Registrations still present are dropped and
// reported as ErrLeakedRoots. Closing twice is a no-op.
func (s *RootSet) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	leaked := s.total
	s.entries = nil
	s.total = 0
	if leaked > 0 {
		Logger().Warn("root set closed with live roots",
			zap.String("compartment", s.name),
			zap.Int("leaked", leaked))
		return fmt.Errorf("%s: %d live: %w", s.name, leaked, ErrLeakedRoots)
	}
	return nil
}

// RootToken is the ownership token for one root registration. It must be
// released exactly once; it is not meant to be copied.
type RootToken struct {
	set      *RootSet
	handle   *goja.Object
	released bool
}

// Handle returns the rooted proxy.
func (t *RootToken) Handle() *goja.Object {
	return t.handle
}

// Set returns the root set the handle was registered in.
func (t *RootToken) Set() *RootSet {
	return t.set
}

// Released reports whether Release has been called.
func (t *RootToken) Released() bool {
	return t.released
}

// Release unregisters the handle from the set it was registered in.
// Releasing a token twice is fatal.
func (t *RootToken) Release() {
	if t.released {
		Fatal("RootToken.Release", KindDoubleRelease, "root already released")
	}
	t.set.remove("RootToken.Release", t.handle)
	t.released = true
}
