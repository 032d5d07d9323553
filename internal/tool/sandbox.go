package tool

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultWorkspace returns the per-user sandbox root used by the file tools.
func DefaultWorkspace() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "uranus_workspace"
	}
	return filepath.Join(home, "uranus_workspace")
}

// resolveSandboxPath joins path with the sandbox root and canonicalizes it,
// resolving symlinks so a link inside the workspace cannot point the
// operation outside it. The canonical path must keep the canonical root as
// a prefix; anything else (".." traversal, absolute paths outside the root,
// symlink escapes) is an access-denied Error. The sandbox root is created
// if missing.
func resolveSandboxPath(root, path string) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", Errorf("Error preparing workspace %s: %s", root, err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", Errorf("Error resolving workspace %s: %s", root, err)
	}
	canonRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		canonRoot = absRoot
	}

	var resolved string
	if filepath.IsAbs(path) {
		resolved = filepath.Clean(path)
	} else {
		resolved = filepath.Clean(filepath.Join(absRoot, path))
	}
	resolved = canonicalizePath(resolved)

	if resolved != canonRoot && !strings.HasPrefix(resolved, canonRoot+string(filepath.Separator)) {
		return "", Errorf("Access denied: Path must be within %s", canonRoot)
	}
	return resolved, nil
}

// canonicalizePath resolves symlinks in path. For targets that do not exist
// yet (writes create them), the deepest existing ancestor is canonicalized
// and the remaining components are rejoined lexically.
func canonicalizePath(path string) string {
	suffix := ""
	current := path
	for {
		real, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(real, suffix)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return filepath.Join(current, suffix)
		}
		suffix = filepath.Join(filepath.Base(current), suffix)
		current = parent
	}
}
