package bindings

import (
	"errors"
	"strings"
)

// Kind categorizes an invariant failure.
type Kind string

const (
	KindUnwrapped        Kind = "unwrapped"         // entity has no proxy
	KindNotRooted        Kind = "not_rooted"        // unregister without register
	KindDoubleRelease    Kind = "double_release"    // token released twice
	KindClosed           Kind = "closed"            // root set already closed
	KindTornDown         Kind = "torn_down"         // document already torn down
	KindRewrap           Kind = "rewrap"            // wrapper cache replaced
	KindCrossCompartment Kind = "cross_compartment" // handle used outside its compartment
	KindUnimplemented    Kind = "unimplemented"     // placeholder surface
)

// ErrLeakedRoots is returned when a root set is closed while it still holds
// registered handles.
var ErrLeakedRoots = errors.New("root set closed with live roots")

// InvariantError describes a broken rooting or wrapping invariant. It is
// raised with panic, never returned.
type InvariantError struct {
	Op     string
	Kind   Kind
	Detail string
}

func (e *InvariantError) Error() string {
	var b strings.Builder
	b.WriteString("invariant violated [")
	b.WriteString(string(e.Kind))
	b.WriteString("]")
	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is matches another *InvariantError of the same Kind.
func (e *InvariantError) Is(target error) bool {
	if t, ok := target.(*InvariantError); ok {
		return t.Kind == e.Kind
	}
	return false
}

// Fatal panics with an *InvariantError.
func Fatal(op string, kind Kind, detail string) {
	err := &InvariantError{Op: op, Kind: kind, Detail: detail}
	Logger().Error(err.Error())
	panic(err)
}

// Unimplemented panics for an operation that exists on the interface but has
// no implementation yet.
func Unimplemented(op string) {
	Fatal(op, KindUnimplemented, "stub")
}

// AsInvariant extracts an *InvariantError from a recovered panic value.
func AsInvariant(recovered any) (*InvariantError, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var inv *InvariantError
	if errors.As(err, &inv) {
		return inv, true
	}
	return nil, false
}
