package agent

import (
	"encoding/json"

	"github.com/safedep/toolgate/core/security"
)

// ExitCodeBlocked is the process exit status that tells the host the tool
// call was blocked and that stderr carries the reason.
const ExitCodeBlocked = 2

// Block keywords understood by hosts.
const (
	BlockKeywordBlock = "block"
	BlockKeywordDeny  = "deny"
)

// ResponseOptions tunes verdict encoding.
type ResponseOptions struct {
	// EmitApprove writes the approve envelope on stdout for approvals made
	// by a check. When false every approval is signalled by exit status
	// alone. The fallback approval never writes an envelope, so the host
	// keeps its own permission prompt for calls no rule vouched for.
	EmitApprove bool
	// BlockKeyword is the decision string used for blocks.
	BlockKeyword string
}

// DefaultResponseOptions returns the default encoding options.
func DefaultResponseOptions() ResponseOptions {
	return ResponseOptions{
		EmitApprove:  true,
		BlockKeyword: BlockKeywordBlock,
	}
}

// HookResponse is an encoded verdict ready to be written to the host.
type HookResponse struct {
	Verdict        security.Verdict
	approveKeyword string
	options        ResponseOptions
}

// NewHookResponse creates a response. approveKeyword is the agent's word
// for an affirmative allow.
func NewHookResponse(verdict security.Verdict, approveKeyword string, opts ResponseOptions) *HookResponse {
	if opts.BlockKeyword == "" {
		opts.BlockKeyword = BlockKeywordBlock
	}
	return &HookResponse{
		Verdict:        verdict,
		approveKeyword: approveKeyword,
		options:        opts,
	}
}

// ExitCode returns the process exit status for the verdict.
func (r *HookResponse) ExitCode() int {
	if r.Verdict.IsBlocked() {
		return ExitCodeBlocked
	}
	return 0
}

// Stderr returns the text for standard error, the reason on block.
func (r *HookResponse) Stderr() string {
	if r.Verdict.IsBlocked() {
		return r.Verdict.Reason
	}
	return ""
}

// ResponseEnvelope is the JSON object written to the host on stdout.
type ResponseEnvelope struct {
	Decision string `json:"decision" jsonschema:"enum=approve,enum=allow,enum=block,enum=deny"`
	Reason   string `json:"reason,omitempty"`
}

// JSON returns the stdout envelope, or nil when nothing is written.
// Abstentions and fallback approvals never produce output.
func (r *HookResponse) JSON() []byte {
	var resp ResponseEnvelope
	switch r.Verdict.Outcome {
	case security.OutcomeBlock:
		resp = ResponseEnvelope{Decision: r.options.BlockKeyword, Reason: r.Verdict.Reason}
	case security.OutcomeApprove:
		if !r.options.EmitApprove || r.Verdict.CheckName == "" {
			return nil
		}
		resp = ResponseEnvelope{Decision: r.approveKeyword}
	default:
		return nil
	}

	data, _ := json.Marshal(resp)
	return data
}
