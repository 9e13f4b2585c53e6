// Package claudecode provides the adapter for Claude Code integration.
package claudecode

import (
	"context"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
)

const (
	// AgentName is the machine identifier for Claude Code.
	AgentName = agent.AgentClaudeCode
	// DisplayName is the human-readable name for Claude Code.
	DisplayName = agent.DisplayClaudeCode

	// ApproveKeyword is the decision string Claude Code reads as allow.
	ApproveKeyword = "approve"
)

// Adapter implements the agent.Adapter interface for Claude Code.
type Adapter struct{}

// New creates a new Claude Code adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the machine identifier.
func (a *Adapter) Name() string {
	return AgentName
}

// DisplayName returns the human-readable name.
func (a *Adapter) DisplayName() string {
	return DisplayName
}

// Detect determines if Claude Code is installed.
func (a *Adapter) Detect(ctx context.Context) (*agent.DetectionResult, error) {
	return Detect(ctx)
}

// Install installs hooks for Claude Code.
func (a *Adapter) Install(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	return InstallHooks(ctx, opts)
}

// Uninstall removes hooks from Claude Code.
func (a *Adapter) Uninstall(ctx context.Context, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	return UninstallHooks(ctx, opts)
}

// Status checks the current hook state.
func (a *Adapter) Status(ctx context.Context) (*agent.HookStatus, error) {
	return GetHookStatus(ctx)
}

// ParseRequest converts a Claude Code hook envelope to a gate request.
func (a *Adapter) ParseRequest(ctx context.Context, hookType string, rawData []byte) (*request.Request, error) {
	return ParseHookRequest(ctx, hookType, rawData)
}

// Respond encodes the verdict for Claude Code.
func (a *Adapter) Respond(verdict security.Verdict, opts agent.ResponseOptions) *agent.HookResponse {
	return agent.NewHookResponse(verdict, ApproveKeyword, opts)
}

// Register adds this adapter to the given registry.
func Register(registry *agent.Registry) {
	registry.Register(New())
}

// Ensure Adapter implements agent.Adapter
var _ agent.Adapter = (*Adapter)(nil)
