package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
)

type stubAdapter struct {
	name      string
	detectErr error
}

func (s *stubAdapter) Name() string        { return s.name }
func (s *stubAdapter) DisplayName() string { return AgentDisplayName(s.name) }

func (s *stubAdapter) Detect(context.Context) (*DetectionResult, error) {
	if s.detectErr != nil {
		return nil, s.detectErr
	}
	return &DetectionResult{Installed: true}, nil
}

func (s *stubAdapter) Install(context.Context, InstallOptions) (*InstallResult, error) {
	return &InstallResult{Success: true}, nil
}

func (s *stubAdapter) Uninstall(context.Context, UninstallOptions) (*UninstallResult, error) {
	return &UninstallResult{Success: true}, nil
}

func (s *stubAdapter) Status(context.Context) (*HookStatus, error) {
	return &HookStatus{}, nil
}

func (s *stubAdapter) ParseRequest(context.Context, string, []byte) (*request.Request, error) {
	return request.New(request.KindOther), nil
}

func (s *stubAdapter) Respond(v security.Verdict, opts ResponseOptions) *HookResponse {
	return NewHookResponse(v, "approve", opts)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: AgentGemini})
	r.Register(&stubAdapter{name: AgentClaudeCode, detectErr: errors.New("boom")})

	assert.Equal(t, []string{AgentClaudeCode, AgentGemini}, r.List())

	a, ok := r.Get(AgentGemini)
	require.True(t, ok)
	assert.Equal(t, DisplayGemini, a.DisplayName())

	_, ok = r.Get("cursor")
	assert.False(t, ok)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, AgentClaudeCode, all[0].Name())

	results := r.DetectAll(context.Background())
	assert.True(t, results[AgentGemini].Installed)
	assert.False(t, results[AgentClaudeCode].Installed)
	assert.Contains(t, results[AgentClaudeCode].Message, "boom")
}

func TestAgentDisplayName(t *testing.T) {
	assert.Equal(t, DisplayClaudeCode, AgentDisplayName(AgentClaudeCode))
	assert.Equal(t, "unknown-agent", AgentDisplayName("unknown-agent"))
}
