package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Sandbox resolves user- and model-supplied paths against a single workspace
// root. Every component that touches the filesystem goes through Resolve
// first; it is the one trust boundary for paths.
type Sandbox struct {
	root string
}

func NewSandbox(root string) (*Sandbox, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("workspace root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	return &Sandbox{root: resolved}, nil
}

func (s *Sandbox) Root() string {
	return s.root
}

// Resolve returns the canonical absolute form of raw, or ErrInvalidPath when
// the path carries a home-directory segment or falls outside the workspace
// root after cleaning and symlink resolution. Relative paths resolve against
// the root. Resolving an already-canonical path yields itself.
func (s *Sandbox) Resolve(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	for _, part := range strings.Split(filepath.ToSlash(raw), "/") {
		if strings.HasPrefix(part, "~") {
			return "", fmt.Errorf("%w: home directory references not allowed in %q", ErrInvalidPath, raw)
		}
	}

	p := raw
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.root, p)
	}
	p = filepath.Clean(p)

	resolved, err := resolveExisting(p)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidPath, raw, err)
	}

	rel, err := filepath.Rel(s.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q is outside the workspace %q", ErrInvalidPath, raw, s.root)
	}
	return resolved, nil
}

// resolveExisting resolves symlinks against the longest existing prefix so
// that targets not yet created still canonicalize.
func resolveExisting(p string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		return resolved, nil
	}
	dir := filepath.Dir(p)
	if dir == p {
		return p, nil
	}
	resolvedDir, err := resolveExisting(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(p)), nil
}
