package security

import (
	"context"
	"fmt"

	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/core/request"
)

// DestructiveCheckName identifies DestructiveCommandCheck.
const DestructiveCheckName = "destructive-command"

// DestructiveCommandCheck blocks shell commands that match an irreversible
// destructive signature anywhere in their text. Carve-outs never apply.
type DestructiveCommandCheck struct {
	library *patterns.Library
}

// NewDestructiveCommandCheck creates a DestructiveCommandCheck.
func NewDestructiveCommandCheck(lib *patterns.Library) *DestructiveCommandCheck {
	return &DestructiveCommandCheck{library: lib}
}

// Name returns the check identifier.
func (c *DestructiveCommandCheck) Name() string {
	return DestructiveCheckName
}

// Check blocks on the first destructive signature.
func (c *DestructiveCommandCheck) Check(_ context.Context, req *request.Request) (Verdict, error) {
	if req.Kind != request.KindShellExecute {
		return Abstain(), nil
	}

	sig, ok := c.library.MatchDestructive(req.Command)
	if !ok {
		return Abstain(), nil
	}

	return Block(c.Name(), fmt.Sprintf("irreversible destructive shell command refused (%s: %s)",
		sig.Name, sig.Description)), nil
}

// Enabled returns true.
func (c *DestructiveCommandCheck) Enabled() bool {
	return true
}

// FailClosed returns true: a fault in this check blocks the command.
func (c *DestructiveCommandCheck) FailClosed() bool {
	return true
}

var (
	_ Check      = (*DestructiveCommandCheck)(nil)
	_ FailClosed = (*DestructiveCommandCheck)(nil)
)
