package tool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestSandboxSymlinkedDirectoryEscape(t *testing.T) {
	workspace := t.TempDir()
	outside := t.TempDir()
	mustWrite(t, filepath.Join(outside, "secret.txt"), "top secret")
	symlink(t, outside, filepath.Join(workspace, "link"))

	ops := NewFileOperations(workspace, nil)
	ctx := context.Background()

	// Reading through the link must not reach the outside file.
	_, err := ops.Execute(ctx, map[string]any{
		"operation": "read",
		"path":      "link/secret.txt",
	})
	var terr *Error
	if !errors.As(err, &terr) || !strings.Contains(terr.Message, "Access denied") {
		t.Errorf("read through symlinked dir: err = %v, want access denied", err)
	}

	// Writing a not-yet-existing file under the link must be denied too:
	// the deepest existing ancestor is the link itself.
	_, err = ops.Execute(ctx, map[string]any{
		"operation": "write",
		"path":      "link/new.txt",
		"content":   "x",
	})
	if !errors.As(err, &terr) || !strings.Contains(terr.Message, "Access denied") {
		t.Errorf("write through symlinked dir: err = %v, want access denied", err)
	}

	if _, statErr := os.Stat(filepath.Join(outside, "new.txt")); !os.IsNotExist(statErr) {
		t.Error("write escaped the sandbox through the symlink")
	}
}

func TestSandboxSymlinkedFileEscape(t *testing.T) {
	workspace := t.TempDir()
	outside := filepath.Join(t.TempDir(), "target.txt")
	mustWrite(t, outside, "outside content")
	symlink(t, outside, filepath.Join(workspace, "alias.txt"))

	ops := NewFileOperations(workspace, nil)

	_, err := ops.Execute(context.Background(), map[string]any{
		"operation": "read",
		"path":      "alias.txt",
	})
	var terr *Error
	if !errors.As(err, &terr) || !strings.Contains(terr.Message, "Access denied") {
		t.Errorf("read through symlinked file: err = %v, want access denied", err)
	}
}

func TestSandboxSymlinkInsideWorkspaceAllowed(t *testing.T) {
	workspace := t.TempDir()
	mustWrite(t, filepath.Join(workspace, "real", "data.txt"), "internal")
	symlink(t, filepath.Join(workspace, "real"), filepath.Join(workspace, "shortcut"))

	ops := NewFileOperations(workspace, nil)

	res, err := ops.Execute(context.Background(), map[string]any{
		"operation": "read",
		"path":      "shortcut/data.txt",
	})
	if err != nil {
		t.Fatalf("read through internal symlink: %v", err)
	}
	if content, _ := res.Data["content"].(string); content != "internal" {
		t.Errorf("content = %q", content)
	}
}

func TestResolveSandboxPathNonexistentTargets(t *testing.T) {
	workspace := t.TempDir()

	// Creating a fresh file under the root stays inside.
	got, err := resolveSandboxPath(workspace, "sub/dir/new.txt")
	if err != nil {
		t.Fatalf("resolveSandboxPath: %v", err)
	}
	canonRoot, rootErr := filepath.EvalSymlinks(workspace)
	if rootErr != nil {
		canonRoot = workspace
	}
	if !strings.HasPrefix(got, canonRoot+string(filepath.Separator)) {
		t.Errorf("resolved %q outside canonical root %q", got, canonRoot)
	}

	// Traversal through a nonexistent prefix is still caught.
	if _, err := resolveSandboxPath(workspace, "ghost/../../../etc/passwd"); err == nil {
		t.Error("traversal through nonexistent path not denied")
	}
}
