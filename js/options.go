package js

import (
	"fmt"

	"go.uber.org/zap"
)

// LeakPolicy decides what Close does with roots still registered when the
// compartment is destroyed.
type LeakPolicy string

const (
	// LeakPolicyWarn logs leaked roots and closes normally.
	LeakPolicyWarn LeakPolicy = "warn"
	// LeakPolicyError logs leaked roots and returns them as Close's error.
	LeakPolicyError LeakPolicy = "error"
)

// ParseLeakPolicy converts a configuration string into a LeakPolicy.
func ParseLeakPolicy(s string) (LeakPolicy, error) {
	switch LeakPolicy(s) {
	case LeakPolicyWarn, LeakPolicyError:
		return LeakPolicy(s), nil
	case "":
		return LeakPolicyWarn, nil
	}
	return "", fmt.Errorf("unknown leak policy %q", s)
}

type options struct {
	logger     *zap.Logger
	leakPolicy LeakPolicy
}

// Option configures a Runtime.
type Option func(*options)

// WithLogger sets the logger the runtime and its binder log through.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLeakPolicy sets how Close treats roots still registered.
func WithLeakPolicy(p LeakPolicy) Option {
	return func(o *options) {
		o.leakPolicy = p
	}
}
