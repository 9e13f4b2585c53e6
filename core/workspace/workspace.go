// Package workspace resolves the project root that file modifications are
// confined to.
package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultMarkers are the directory entries that mark a workspace root: the
// version-control metadata directory and the agent/gate configuration
// directory.
var DefaultMarkers = []string{".git", ".claude"}

// Resolver locates the workspace root by walking ancestor directories.
// It holds no state between calls.
type Resolver struct {
	markers []string
	getwd   func() (string, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMarkers overrides the root markers.
func WithMarkers(markers ...string) Option {
	return func(r *Resolver) {
		if len(markers) > 0 {
			r.markers = markers
		}
	}
}

// WithGetwd overrides how the process working directory is read.
func WithGetwd(fn func() (string, error)) Option {
	return func(r *Resolver) {
		r.getwd = fn
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		markers: DefaultMarkers,
		getwd:   os.Getwd,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Markers returns the configured root markers.
func (r *Resolver) Markers() []string {
	return r.markers
}

// WorkingDir returns the absolute, symlink-free process working directory.
// If it cannot be read, fallback is used, and "." after that.
func (r *Resolver) WorkingDir(fallback string) string {
	dir, err := r.getwd()
	if err != nil || dir == "" {
		dir = fallback
	}
	if dir == "" {
		dir = "."
	}
	return Canonical(dir)
}

// Resolve walks from start towards the filesystem root and returns the first
// directory that contains one of the markers. When no marker is found, start
// itself is the root. Unreadable directories are treated as not containing a
// marker.
func (r *Resolver) Resolve(start string) string {
	start = Canonical(start)

	dir := start
	for {
		if r.hasMarker(dir) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// ResolveCwd resolves the root for the process working directory.
func (r *Resolver) ResolveCwd(fallback string) string {
	return r.Resolve(r.WorkingDir(fallback))
}

func (r *Resolver) hasMarker(dir string) bool {
	for _, m := range r.markers {
		if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
			return true
		}
	}
	return false
}

// maxSymlinks bounds link expansion in Canonical, matching the usual
// kernel limit for path lookups.
const maxSymlinks = 40

// Canonical makes p absolute and resolves symlinks one component at a
// time, the way the kernel walks a path: ".." is applied after the
// preceding component is resolved, and a symlink is followed even when its
// target does not exist. Missing components are appended unchanged.
func Canonical(p string) string {
	if !filepath.IsAbs(p) {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Clean(p)
		}
		p = wd + string(filepath.Separator) + p
	}

	volume := filepath.VolumeName(p)
	root := volume + string(filepath.Separator)
	pending := splitPath(p[len(volume):])
	resolved := root
	links := 0

	for len(pending) > 0 {
		part := pending[0]
		pending = pending[1:]

		switch part {
		case ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, part)
		info, err := os.Lstat(next)
		if err != nil || info.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}

		links++
		target, err := os.Readlink(next)
		if err != nil || links > maxSymlinks {
			return filepath.Join(append([]string{next}, pending...)...)
		}
		if filepath.IsAbs(target) {
			resolved = root
			target = target[len(filepath.VolumeName(target)):]
		}
		pending = append(splitPath(target), pending...)
	}

	return resolved
}

func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == filepath.Separator || r == '/'
	})
}

// Contains reports whether target is root itself or lies under it. Both
// paths are expected in canonical form.
func Contains(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
