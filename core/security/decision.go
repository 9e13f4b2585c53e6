// Package security evaluates tool-call requests against the gate's policy
// rules and combines their outcomes into a single verdict.
package security

import (
	"fmt"
	"strings"
)

// Outcome is the result class of a verdict.
type Outcome int

const (
	// OutcomeApprove affirmatively allows the action.
	OutcomeApprove Outcome = iota
	// OutcomeBlock stops the action. A reason is always attached.
	OutcomeBlock
	// OutcomeAbstain expresses no opinion and defers to another layer.
	OutcomeAbstain
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeApprove:
		return "approve"
	case OutcomeBlock:
		return "block"
	case OutcomeAbstain:
		return "abstain"
	default:
		return "unknown"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// ParseOutcome parses an outcome name. "deny" is accepted as an alias of
// block and "allow" as an alias of approve.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approve", "allow":
		return OutcomeApprove, nil
	case "block", "deny":
		return OutcomeBlock, nil
	case "abstain":
		return OutcomeAbstain, nil
	default:
		return OutcomeAbstain, fmt.Errorf("unknown outcome: %q", s)
	}
}
