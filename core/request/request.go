package request

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMissingField is returned by Validate when a kind-specific field is empty.
var ErrMissingField = errors.New("missing required field")

// Request is a single proposed tool invocation, decoded from the host envelope.
// A Request is built fresh per invocation and never mutated by evaluators.
type Request struct {
	// ID correlates log lines of one evaluation. It carries no policy meaning.
	ID string `json:"id"`
	// Kind selects the evaluator chain.
	Kind Kind `json:"kind"`
	// ToolName is the original tool name reported by the agent.
	ToolName string `json:"tool_name,omitempty"`
	// Command is the literal shell text (ShellExecute only).
	Command string `json:"command,omitempty"`
	// Path is the target file path (file modification kinds only).
	Path string `json:"path,omitempty"`
	// URL is the fetch destination (NetworkFetch only).
	URL string `json:"url,omitempty"`
	// WorkingDir is the directory the host reported, if any.
	WorkingDir string `json:"working_dir,omitempty"`
}

// New creates a Request of the given kind with a fresh ID.
func New(kind Kind) *Request {
	if !kind.IsValid() {
		kind = KindOther
	}
	return &Request{
		ID:   uuid.NewString(),
		Kind: kind,
	}
}

// NewShellExecute creates a ShellExecute request.
func NewShellExecute(command string) *Request {
	r := New(KindShellExecute)
	r.Command = command
	return r
}

// NewFileModification creates a file write/edit request. Non file kinds
// are coerced to FileWrite.
func NewFileModification(kind Kind, path string) *Request {
	if !kind.IsFileModification() {
		kind = KindFileWrite
	}
	r := New(kind)
	r.Path = path
	return r
}

// NewNetworkFetch creates a NetworkFetch request.
func NewNetworkFetch(url string) *Request {
	r := New(KindNetworkFetch)
	r.URL = url
	return r
}

// Validate checks that the field required by the request kind is present.
func (r *Request) Validate() error {
	switch {
	case r.Kind == KindShellExecute && r.Command == "":
		return fmt.Errorf("%s: command: %w", r.Kind, ErrMissingField)
	case r.Kind.IsFileModification() && r.Path == "":
		return fmt.Errorf("%s: path: %w", r.Kind, ErrMissingField)
	case r.Kind == KindNetworkFetch && r.URL == "":
		return fmt.Errorf("%s: url: %w", r.Kind, ErrMissingField)
	case !r.Kind.IsValid():
		return fmt.Errorf("invalid request kind: %q", r.Kind)
	}
	return nil
}

// Target returns the kind-specific field for display purposes.
func (r *Request) Target() string {
	switch {
	case r.Kind == KindShellExecute:
		return r.Command
	case r.Kind.IsFileModification():
		return r.Path
	case r.Kind == KindNetworkFetch:
		return r.URL
	default:
		return ""
	}
}
