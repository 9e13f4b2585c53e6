package security

import (
	"context"
	"fmt"

	"github.com/safedep/toolgate/core/patterns"
	"github.com/safedep/toolgate/core/request"
)

// AllowlistCheckName identifies DestinationAllowlistCheck.
const AllowlistCheckName = "destination-allowlist"

// DestinationAllowlistCheck restricts fetches to allow-listed URL prefixes.
type DestinationAllowlistCheck struct {
	library *patterns.Library
}

// NewDestinationAllowlistCheck creates a DestinationAllowlistCheck.
func NewDestinationAllowlistCheck(lib *patterns.Library) *DestinationAllowlistCheck {
	return &DestinationAllowlistCheck{library: lib}
}

// Name returns the check identifier.
func (c *DestinationAllowlistCheck) Name() string {
	return AllowlistCheckName
}

// Check approves allow-listed destinations and blocks everything else.
func (c *DestinationAllowlistCheck) Check(_ context.Context, req *request.Request) (Verdict, error) {
	if req.Kind != request.KindNetworkFetch {
		return Abstain(), nil
	}

	if c.library.AllowsURL(req.URL) {
		return Approve(c.Name()), nil
	}

	return Block(c.Name(), fmt.Sprintf("fetch destination %s is not on the allow-list of trusted hosts (%d allowed prefixes, see `toolgate rules`)",
		req.URL, len(c.library.AllowedPrefixes()))), nil
}

// Enabled returns true.
func (c *DestinationAllowlistCheck) Enabled() bool {
	return true
}

var _ Check = (*DestinationAllowlistCheck)(nil)
