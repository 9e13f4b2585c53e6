package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/safedep/toolgate/core/request"
)

// HookInput holds the fields common to every Gemini CLI hook envelope.
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	Cwd            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`
	Timestamp      string `json:"timestamp"`
}

// BeforeToolInput is the BeforeTool envelope Gemini CLI writes to stdin.
type BeforeToolInput struct {
	HookInput
	ToolName  string                 `json:"tool_name"`
	ToolInput map[string]interface{} `json:"tool_input"`
}

// ToolKindMapping maps Gemini CLI tool names to request kinds. web_fetch
// without a url field is not a fetch and decodes to Other.
var ToolKindMapping = map[string]request.Kind{
	"run_shell_command": request.KindShellExecute,
	"write_file":        request.KindFileWrite,
	"replace":           request.KindFileEdit,
	"web_fetch":         request.KindNetworkFetch,
}

func parseHookRequest(hookType string, rawData []byte) (*request.Request, error) {
	var input BeforeToolInput
	if err := json.Unmarshal(rawData, &input); err != nil {
		return nil, fmt.Errorf("failed to parse hook input: %w", err)
	}

	eventName := hookType
	if eventName == "" {
		eventName = input.HookEventName
	}

	kind := request.KindOther
	if eventName == "BeforeTool" {
		kind = getRequestKind(input.ToolName, input.ToolInput)
	}

	req := request.New(kind)
	req.ToolName = input.ToolName
	req.WorkingDir = input.Cwd

	switch {
	case kind == request.KindShellExecute:
		req.Command = stringField(input.ToolInput, "command")
	case kind.IsFileModification():
		req.Path = stringField(input.ToolInput, "file_path", "path")
	case kind == request.KindNetworkFetch:
		req.URL = stringField(input.ToolInput, "url")
	}

	return req, nil
}

// getRequestKind maps a tool to a kind. web_fetch is only gated when it
// names an explicit url; prompt-embedded URLs are not extracted.
func getRequestKind(toolName string, toolInput map[string]interface{}) request.Kind {
	kind, ok := ToolKindMapping[toolName]
	if !ok {
		return request.KindOther
	}
	if kind == request.KindNetworkFetch && stringField(toolInput, "url") == "" {
		return request.KindOther
	}
	return kind
}

func stringField(input map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := input[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
