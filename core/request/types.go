// Package request provides the request model evaluated by the gate.
package request

import "fmt"

// Kind represents the category of a proposed tool invocation.
type Kind string

const (
	// KindShellExecute is a shell command execution.
	KindShellExecute Kind = "shell_execute"
	// KindFileWrite writes a whole file.
	KindFileWrite Kind = "file_write"
	// KindFileEdit edits a file in place.
	KindFileEdit Kind = "file_edit"
	// KindMultiFileEdit applies several edits to a file.
	KindMultiFileEdit Kind = "multi_file_edit"
	// KindNetworkFetch fetches a remote URL.
	KindNetworkFetch Kind = "network_fetch"
	// KindOther is any tool the gate has no rule for.
	KindOther Kind = "other"
)

// kindDisplayNames maps each Kind to its short display name. All lookups
// (DisplayName, IsValid, ParseKind) are derived from this map.
var kindDisplayNames = map[Kind]string{
	KindShellExecute:  "shell",
	KindFileWrite:     "write",
	KindFileEdit:      "edit",
	KindMultiFileEdit: "multiedit",
	KindNetworkFetch:  "fetch",
	KindOther:         "other",
}

var displayToKind map[string]Kind

func init() {
	displayToKind = make(map[string]Kind, len(kindDisplayNames))
	for k, dn := range kindDisplayNames {
		displayToKind[dn] = k
	}
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the Kind is a known kind.
func (k Kind) IsValid() bool {
	_, ok := kindDisplayNames[k]
	return ok
}

// DisplayName returns a short human-readable name for the kind.
func (k Kind) DisplayName() string {
	if dn, ok := kindDisplayNames[k]; ok {
		return dn
	}
	return "other"
}

// IsFileModification returns true for kinds that carry a target path.
func (k Kind) IsFileModification() bool {
	switch k {
	case KindFileWrite, KindFileEdit, KindMultiFileEdit:
		return true
	default:
		return false
	}
}

// ParseKind parses a string into a Kind, accepting both full names
// (e.g. "file_write") and display names (e.g. "write").
func ParseKind(s string) (Kind, error) {
	if k, ok := displayToKind[s]; ok {
		return k, nil
	}
	k := Kind(s)
	if k.IsValid() {
		return k, nil
	}
	return "", fmt.Errorf("invalid request kind: %q", s)
}

// Kinds returns every known kind in precedence-table order.
func Kinds() []Kind {
	return []Kind{
		KindShellExecute,
		KindFileWrite,
		KindFileEdit,
		KindMultiFileEdit,
		KindNetworkFetch,
		KindOther,
	}
}
