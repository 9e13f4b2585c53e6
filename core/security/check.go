package security

import (
	"context"

	"github.com/safedep/toolgate/core/request"
)

// Check defines the interface for a single policy rule.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string
	// Check evaluates the request. "No opinion" is an Abstain verdict.
	Check(ctx context.Context, req *request.Request) (Verdict, error)
	// Enabled returns whether this check is currently active.
	Enabled() bool
}

// FailClosed is implemented by checks whose internal faults must block
// rather than be skipped.
type FailClosed interface {
	FailClosed() bool
}

func isFailClosed(c Check) bool {
	fc, ok := c.(FailClosed)
	return ok && fc.FailClosed()
}
