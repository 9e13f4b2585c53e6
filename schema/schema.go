// Package schema generates JSON Schemas for the documents toolgate reads
// and writes: the agent hook envelopes, the hook response and the
// evaluated request and verdict.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/safedep/toolgate/agent"
	"github.com/safedep/toolgate/agent/claudecode"
	"github.com/safedep/toolgate/agent/gemini"
	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/security"
)

// BaseURL prefixes the $id of every generated schema.
const BaseURL = "https://github.com/safedep/toolgate/schema/"

type document struct {
	title       string
	description string
	value       any
}

var documents = map[string]document{
	"claude-code-hook-input": {
		title:       "Claude Code PreToolUse input",
		description: "Envelope Claude Code writes to the hook's stdin before a tool runs.",
		value:       claudecode.HookInput{},
	},
	"gemini-hook-input": {
		title:       "Gemini CLI BeforeTool input",
		description: "Envelope Gemini CLI writes to the hook's stdin before a tool runs.",
		value:       gemini.BeforeToolInput{},
	},
	"hook-response": {
		title:       "Hook response",
		description: "Decision toolgate writes to stdout. Abstentions produce no output.",
		value:       agent.ResponseEnvelope{},
	},
	"request": {
		title:       "Request",
		description: "A proposed tool invocation as seen by the policy rules.",
		value:       request.Request{},
	},
	"verdict": {
		title:       "Verdict",
		description: "The outcome of evaluating a request.",
		value:       security.Verdict{},
	},
}

// Names returns the names of all known schemas, sorted.
func Names() []string {
	names := make([]string, 0, len(documents))
	for name := range documents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate returns the JSON Schema of the named document.
func Generate(name string) ([]byte, error) {
	doc, ok := documents[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	s := reflector().Reflect(doc.value)
	s.ID = jsonschema.ID(BaseURL + name + ".schema.json")
	s.Title = doc.title
	s.Description = doc.description

	return marshal(s)
}

// GenerateSchema creates a JSON schema from a Go struct.
func GenerateSchema(v any) ([]byte, error) {
	return marshal(reflector().Reflect(v))
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper:         mapType,
	}
}

var (
	outcomeType = reflect.TypeOf(security.Outcome(0))
	kindType    = reflect.TypeOf(request.Kind(""))
)

// mapType describes named types whose JSON form differs from their Go kind.
func mapType(t reflect.Type) *jsonschema.Schema {
	switch t {
	case outcomeType:
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{
				security.OutcomeApprove.String(),
				security.OutcomeBlock.String(),
				security.OutcomeAbstain.String(),
			},
		}
	case kindType:
		kinds := request.Kinds()
		enum := make([]any, 0, len(kinds))
		for _, k := range kinds {
			enum = append(enum, k.String())
		}
		return &jsonschema.Schema{Type: "string", Enum: enum}
	default:
		return nil
	}
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
