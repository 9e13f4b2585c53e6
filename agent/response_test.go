package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/safedep/toolgate/core/security"
)

func TestHookResponse(t *testing.T) {
	testCases := []struct {
		name       string
		verdict    security.Verdict
		opts       ResponseOptions
		wantExit   int
		wantJSON   string
		wantStderr string
	}{
		{
			name:     "approve emitted",
			verdict:  security.Approve("c"),
			opts:     DefaultResponseOptions(),
			wantJSON: `{"decision":"approve"}`,
		},
		{
			name:    "fallback approve is silent",
			verdict: security.Verdict{Outcome: security.OutcomeApprove},
			opts:    DefaultResponseOptions(),
		},
		{
			name:    "approve silent",
			verdict: security.Approve("c"),
			opts:    ResponseOptions{EmitApprove: false},
		},
		{
			name:       "block",
			verdict:    security.Block("c", "irreversible destructive shell command"),
			opts:       DefaultResponseOptions(),
			wantExit:   ExitCodeBlocked,
			wantJSON:   `{"decision":"block","reason":"irreversible destructive shell command"}`,
			wantStderr: "irreversible destructive shell command",
		},
		{
			name:       "block with deny keyword",
			verdict:    security.Block("c", "r"),
			opts:       ResponseOptions{BlockKeyword: BlockKeywordDeny},
			wantExit:   ExitCodeBlocked,
			wantJSON:   `{"decision":"deny","reason":"r"}`,
			wantStderr: "r",
		},
		{
			name:    "abstain",
			verdict: security.Abstain(),
			opts:    DefaultResponseOptions(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := NewHookResponse(tc.verdict, "approve", tc.opts)
			assert.Equal(t, tc.wantExit, resp.ExitCode())
			assert.Equal(t, tc.wantStderr, resp.Stderr())
			if tc.wantJSON == "" {
				assert.Nil(t, resp.JSON())
				return
			}
			assert.JSONEq(t, tc.wantJSON, string(resp.JSON()))
		})
	}
}
