package security

// Verdict is the answer of the gate for one request.
type Verdict struct {
	// Outcome is approve, block or abstain.
	Outcome Outcome `json:"outcome"`
	// Reason explains a block. It may be empty otherwise.
	Reason string `json:"reason,omitempty"`
	// CheckName identifies the check that produced the verdict, empty for
	// the default verdict.
	CheckName string `json:"check,omitempty"`
}

// Approve creates an approving verdict attributed to check.
func Approve(check string) Verdict {
	return Verdict{Outcome: OutcomeApprove, CheckName: check}
}

// Block creates a blocking verdict attributed to check.
func Block(check, reason string) Verdict {
	return Verdict{Outcome: OutcomeBlock, Reason: reason, CheckName: check}
}

// Abstain is the "no opinion" verdict.
func Abstain() Verdict {
	return Verdict{Outcome: OutcomeAbstain}
}

// IsBlocked returns true if the action must not proceed.
func (v Verdict) IsBlocked() bool {
	return v.Outcome == OutcomeBlock
}

// IsAbstain returns true if no opinion was expressed.
func (v Verdict) IsAbstain() bool {
	return v.Outcome == OutcomeAbstain
}
