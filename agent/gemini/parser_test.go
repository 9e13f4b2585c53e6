package gemini

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	path := filepath.Join("testdata", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read fixture: %s", name)
	return data
}

func TestParseRequest_BeforeTool(t *testing.T) {
	testCases := []struct {
		fixture string
		kind    request.Kind
		target  string
	}{
		{"before_tool_shell.json", request.KindShellExecute, "killall -9 myservice"},
		{"before_tool_write_file.json", request.KindFileWrite, "/home/user/project/src/main.go"},
		{"before_tool_replace.json", request.KindFileEdit, "../other/config.yaml"},
		{"before_tool_web_fetch.json", request.KindNetworkFetch, "https://github.com/org/repo"},
		{"before_tool_web_fetch_prompt.json", request.KindOther, ""},
		{"before_tool_read_file.json", request.KindOther, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.fixture, func(t *testing.T) {
			req, err := New().ParseRequest(context.Background(), "BeforeTool", loadFixture(t, tc.fixture))
			require.NoError(t, err)

			assert.Equal(t, tc.kind, req.Kind)
			assert.Equal(t, tc.target, req.Target())
			assert.Equal(t, "/home/user/project", req.WorkingDir)
		})
	}
}

func TestParseRequest_AfterToolIsOther(t *testing.T) {
	req, err := New().ParseRequest(context.Background(), "AfterTool", loadFixture(t, "before_tool_shell.json"))
	require.NoError(t, err)
	assert.Equal(t, request.KindOther, req.Kind)
}

func TestParseRequest_InvalidJSON(t *testing.T) {
	_, err := New().ParseRequest(context.Background(), "BeforeTool", []byte("nope"))
	assert.Error(t, err)
}

func TestRespond(t *testing.T) {
	a := New()

	approve := a.Respond(security.Approve("x"), agent.DefaultResponseOptions())
	assert.JSONEq(t, `{"decision":"allow"}`, string(approve.JSON()))

	deny := a.Respond(security.Block("x", "outside workspace"), agent.ResponseOptions{BlockKeyword: agent.BlockKeywordDeny})
	assert.JSONEq(t, `{"decision":"deny","reason":"outside workspace"}`, string(deny.JSON()))
	assert.Equal(t, agent.ExitCodeBlocked, deny.ExitCode())

	quiet := a.Respond(security.Approve("x"), agent.ResponseOptions{EmitApprove: false})
	assert.Nil(t, quiet.JSON())
	assert.Equal(t, 0, quiet.ExitCode())
}
