package security

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/safedep/toolgate/core/request"
	"github.com/safedep/toolgate/core/workspace"
)

// ContainmentCheckName identifies PathContainmentCheck.
const ContainmentCheckName = "path-containment"

// PathContainmentCheck confines file modifications to the workspace root.
type PathContainmentCheck struct {
	resolver *workspace.Resolver
}

// NewPathContainmentCheck creates a PathContainmentCheck.
func NewPathContainmentCheck(resolver *workspace.Resolver) *PathContainmentCheck {
	if resolver == nil {
		resolver = workspace.NewResolver()
	}
	return &PathContainmentCheck{resolver: resolver}
}

// Name returns the check identifier.
func (c *PathContainmentCheck) Name() string {
	return ContainmentCheckName
}

// Check resolves the target and the workspace root on every call. The
// root is never cached.
func (c *PathContainmentCheck) Check(_ context.Context, req *request.Request) (Verdict, error) {
	if !req.Kind.IsFileModification() {
		return Abstain(), nil
	}

	wd := c.resolver.WorkingDir(req.WorkingDir)
	root := c.resolver.Resolve(wd)

	target := req.Path
	if !filepath.IsAbs(target) {
		// Left uncleaned: ".." applies only after symlinks resolve.
		target = wd + string(filepath.Separator) + target
	}
	target = workspace.Canonical(target)

	if !workspace.Contains(root, target) {
		return Block(c.Name(), fmt.Sprintf("%s is outside the workspace root %s; file modifications must stay inside the workspace",
			target, root)), nil
	}

	return Approve(c.Name()), nil
}

// Enabled returns true.
func (c *PathContainmentCheck) Enabled() bool {
	return true
}

var _ Check = (*PathContainmentCheck)(nil)
