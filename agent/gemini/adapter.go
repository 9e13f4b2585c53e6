// Package gemini provides the adapter for Gemini CLI integration.
package gemini

import (
	"context"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
)

const (
	AgentName   = agent.AgentGemini
	DisplayName = agent.DisplayGemini

	// ApproveKeyword is the decision string Gemini CLI reads as allow.
	ApproveKeyword = "allow"
)

type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) Name() string {
	return AgentName
}

func (a *Adapter) DisplayName() string {
	return DisplayName
}

func (a *Adapter) Detect(ctx context.Context) (*agent.DetectionResult, error) {
	return Detect(ctx)
}

func (a *Adapter) Install(ctx context.Context, opts agent.InstallOptions) (*agent.InstallResult, error) {
	return InstallHooks(ctx, opts)
}

func (a *Adapter) Uninstall(ctx context.Context, opts agent.UninstallOptions) (*agent.UninstallResult, error) {
	return UninstallHooks(ctx, opts)
}

func (a *Adapter) Status(ctx context.Context) (*agent.HookStatus, error) {
	return GetHookStatus(ctx)
}

func (a *Adapter) ParseRequest(ctx context.Context, hookType string, rawData []byte) (*request.Request, error) {
	return parseHookRequest(hookType, rawData)
}

func (a *Adapter) Respond(verdict security.Verdict, opts agent.ResponseOptions) *agent.HookResponse {
	return agent.NewHookResponse(verdict, ApproveKeyword, opts)
}

func Register(registry *agent.Registry) {
	registry.Register(New())
}

var _ agent.Adapter = (*Adapter)(nil)
