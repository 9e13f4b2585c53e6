package security

import (
	"context"
	"fmt"

	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/core/request"
)

const (
	// TerminationCheckName identifies TerminationCommandCheck.
	TerminationCheckName = "termination-command"

	// DefaultRestartCommand is the supervised restart mechanism named in
	// termination block reasons.
	DefaultRestartCommand = "./scripts/restart.sh"
)

// TerminationCommandCheck blocks ad-hoc process termination unless every
// terminating segment of the command is covered by a carve-out.
type TerminationCommandCheck struct {
	library        *patterns.Library
	restartCommand string
}

// NewTerminationCommandCheck creates a TerminationCommandCheck. An empty
// restartCommand uses DefaultRestartCommand.
func NewTerminationCommandCheck(lib *patterns.Library, restartCommand string) *TerminationCommandCheck {
	if restartCommand == "" {
		restartCommand = DefaultRestartCommand
	}
	return &TerminationCommandCheck{library: lib, restartCommand: restartCommand}
}

// Name returns the check identifier.
func (c *TerminationCommandCheck) Name() string {
	return TerminationCheckName
}

// RestartCommand returns the restart mechanism named in block reasons.
func (c *TerminationCommandCheck) RestartCommand() string {
	return c.restartCommand
}

// Check approves when all terminating segments are carved out, blocks when
// one is not, and abstains when nothing terminates a process.
func (c *TerminationCommandCheck) Check(_ context.Context, req *request.Request) (Verdict, error) {
	if req.Kind != request.KindShellExecute {
		return Abstain(), nil
	}

	matched := false
	for _, segment := range c.library.Segments(req.Command) {
		sig, ok := c.library.MatchTermination(segment)
		if !ok {
			continue
		}
		matched = true

		if _, carved := c.library.MatchCarveOut(segment); !carved {
			return c.block(sig), nil
		}
	}

	if !matched {
		// A signature spanning separators is still termination.
		if sig, ok := c.library.MatchTermination(req.Command); ok {
			return c.block(sig), nil
		}
		return Abstain(), nil
	}

	return Approve(c.Name()), nil
}

func (c *TerminationCommandCheck) block(sig *patterns.Signature) Verdict {
	return Block(c.Name(), fmt.Sprintf("ad-hoc process termination is not allowed (%s); use the supervised restart mechanism %s instead",
		sig.Name, c.restartCommand))
}

// Enabled returns true.
func (c *TerminationCommandCheck) Enabled() bool {
	return true
}

var _ Check = (*TerminationCommandCheck)(nil)
