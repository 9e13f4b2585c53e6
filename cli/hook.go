package cli

import (
	"fmt"
	"io"

	"github.com/safedep/dry/log"
	"github.com/safedep/toolgate/agent"
	"github.com/spf13/cobra"
)

// maxEnvelopeSize caps how much of stdin is read for one hook envelope.
const maxEnvelopeSize = 8 << 20

// NewHookCmd creates the internal _hook command.
//
// The command never fails the agent for reasons of its own: an unknown
// agent, an unreadable or undecodable envelope and a broken configuration
// all end in an abstention (exit 0, no output). Only a Block verdict
// produces a non-zero exit status.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "_hook <agent> <type>",
		Short:  "Internal command invoked by agent hooks",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			agentName := args[0]
			hookType := args[1]

			app := loadHookApp(cmd)

			rawData, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxEnvelopeSize))
			if err != nil {
				log.Warnf("failed to read hook input, abstaining: %v", err)
				return nil
			}

			adapter, ok := app.Registry.Get(agentName)
			if !ok {
				log.Warnf("unknown agent %q, abstaining", agentName)
				return nil
			}

			req, err := adapter.ParseRequest(ctx, hookType, rawData)
			if err != nil {
				log.Warnf("failed to decode %s %s envelope, abstaining: %v", agentName, hookType, err)
				return nil
			}

			verdict := app.Evaluator.Evaluate(ctx, req)
			log.Debugf("request %s %s (%s): %s by %q", req.ID, req.Kind, req.ToolName,
				verdict.Outcome, verdict.CheckName)

			return writeHookResponse(cmd, adapter.Respond(verdict, app.Config.ResponseOptions()))
		},
	}

	return cmd
}

// writeHookResponse writes the envelope to stdout and the block reason to
// stderr. A block is returned as an exitError carrying the blocked status.
func writeHookResponse(cmd *cobra.Command, resp *agent.HookResponse) error {
	if data := resp.JSON(); data != nil {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data); err != nil {
			log.Errorf("failed to write hook response: %v", err)
		}
	}

	code := resp.ExitCode()
	if code == ExitSuccess {
		return nil
	}

	if reason := resp.Stderr(); reason != "" {
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), reason); err != nil {
			log.Errorf("failed to write block reason: %v", err)
		}
	}

	return &exitError{code: code}
}
