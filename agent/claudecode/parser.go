package claudecode

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/safedep/toolgate/core/request"
)

// HookInput is the PreToolUse envelope Claude Code writes to stdin.
type HookInput struct {
	SessionID      string                 `json:"session_id"`
	TranscriptPath string                 `json:"transcript_path,omitempty"`
	Cwd            string                 `json:"cwd"`
	HookEventName  string                 `json:"hook_event_name"`
	ToolName       string                 `json:"tool_name"`
	ToolInput      map[string]interface{} `json:"tool_input"`
}

// ToolKindMapping maps Claude Code tool names to request kinds.
var ToolKindMapping = map[string]request.Kind{
	"Bash":         request.KindShellExecute,
	"Write":        request.KindFileWrite,
	"Edit":         request.KindFileEdit,
	"NotebookEdit": request.KindFileEdit,
	"MultiEdit":    request.KindMultiFileEdit,
	"WebFetch":     request.KindNetworkFetch,
}

// pathKeys lists the tool_input keys holding a target path, preferred first.
var pathKeys = []string{"file_path", "path", "notebook_path"}

// ParseHookRequest decodes a hook envelope. Only PreToolUse events are
// gated; other hook events decode to an Other request.
func ParseHookRequest(_ context.Context, hookType string, rawData []byte) (*request.Request, error) {
	var input HookInput
	if err := json.Unmarshal(rawData, &input); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}

	eventName := hookType
	if eventName == "" {
		eventName = input.HookEventName
	}

	kind := request.KindOther
	if eventName == "PreToolUse" {
		if k, ok := ToolKindMapping[input.ToolName]; ok {
			kind = k
		}
	}

	req := request.New(kind)
	req.ToolName = input.ToolName
	req.WorkingDir = input.Cwd

	switch {
	case kind == request.KindShellExecute:
		req.Command = stringField(input.ToolInput, "command")
	case kind.IsFileModification():
		req.Path = stringField(input.ToolInput, pathKeys...)
	case kind == request.KindNetworkFetch:
		req.URL = stringField(input.ToolInput, "url")
	}

	return req, nil
}

// stringField returns the first non-empty string value among keys.
func stringField(input map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := input[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
