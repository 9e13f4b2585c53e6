package security

import (
	"context"
	"fmt"

	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/workspace"
)

// Config holds configuration options for the evaluator.
type Config struct {
	// Fallback is returned when every check abstains or the request is
	// malformed. Only OutcomeApprove and OutcomeAbstain are meaningful.
	Fallback Outcome
	// RestartCommand is named in termination block reasons.
	RestartCommand string
}

// DefaultConfig returns the default-approve configuration.
func DefaultConfig() *Config {
	return &Config{
		Fallback:       OutcomeApprove,
		RestartCommand: DefaultRestartCommand,
	}
}

// Evaluator holds one ordered chain of checks per request kind and
// combines their verdicts. It keeps no state between evaluations.
type Evaluator struct {
	chains map[request.Kind][]Check
	config *Config
}

// New creates an Evaluator with empty chains.
func New(cfg *Config) *Evaluator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Fallback != OutcomeAbstain {
		cfg.Fallback = OutcomeApprove
	}
	return &Evaluator{
		chains: make(map[request.Kind][]Check),
		config: cfg,
	}
}

// NewDefault creates an Evaluator with the standard chains:
// shell commands run the destructive then the termination check, file
// modifications run the containment check and fetches the allow-list check.
func NewDefault(lib *patterns.Library, resolver *workspace.Resolver, cfg *Config) *Evaluator {
	if lib == nil {
		lib = patterns.Default()
	}

	e := New(cfg)
	e.RegisterCheck(NewDestructiveCommandCheck(lib), request.KindShellExecute)
	e.RegisterCheck(NewTerminationCommandCheck(lib, e.config.RestartCommand), request.KindShellExecute)
	e.RegisterCheck(NewPathContainmentCheck(resolver),
		request.KindFileWrite, request.KindFileEdit, request.KindMultiFileEdit)
	e.RegisterCheck(NewDestinationAllowlistCheck(lib), request.KindNetworkFetch)
	return e
}

// RegisterCheck appends a check to the chain of each given kind.
func (e *Evaluator) RegisterCheck(check Check, kinds ...request.Kind) {
	for _, k := range kinds {
		e.chains[k] = append(e.chains[k], check)
	}
}

// Chain returns the checks run for a kind, in order.
func (e *Evaluator) Chain(kind request.Kind) []Check {
	return e.chains[kind]
}

// Evaluate runs the chain for the request kind and returns the first
// non-abstaining verdict, or the fallback. It never returns an error and
// never panics: a faulting fail-closed check blocks, any other faulting
// check is skipped.
func (e *Evaluator) Evaluate(ctx context.Context, req *request.Request) Verdict {
	if req == nil || req.Validate() != nil {
		return e.fallback()
	}

	for _, check := range e.chains[req.Kind] {
		if !check.Enabled() {
			continue
		}

		verdict, err := runCheck(ctx, check, req)
		if err != nil {
			if isFailClosed(check) {
				return Block(check.Name(), fmt.Sprintf("check %s failed: %v", check.Name(), err))
			}
			continue
		}

		if verdict.IsAbstain() {
			continue
		}
		if verdict.CheckName == "" {
			verdict.CheckName = check.Name()
		}
		if verdict.IsBlocked() && verdict.Reason == "" {
			verdict.Reason = fmt.Sprintf("blocked by %s", check.Name())
		}
		return verdict
	}

	return e.fallback()
}

func (e *Evaluator) fallback() Verdict {
	return Verdict{Outcome: e.config.Fallback}
}

func runCheck(ctx context.Context, check Check, req *request.Request) (v Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return check.Check(ctx, req)
}
