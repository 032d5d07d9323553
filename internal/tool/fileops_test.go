package tool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileOps(t *testing.T) (*FileOperations, string) {
	t.Helper()
	dir := t.TempDir()
	return NewFileOperations(dir, nil), dir
}

func TestFileOperationsWriteAndRead(t *testing.T) {
	ops, _ := newFileOps(t)
	ctx := context.Background()

	res, err := ops.Execute(ctx, map[string]any{
		"operation": "write",
		"path":      "notes/hello.txt",
		"content":   "hello world",
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !res.Success || !strings.Contains(res.Output, "Successfully wrote 11 characters") {
		t.Errorf("write result = %+v", res)
	}

	res, err = ops.Execute(ctx, map[string]any{
		"operation": "read",
		"path":      "notes/hello.txt",
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if content, _ := res.Data["content"].(string); content != "hello world" {
		t.Errorf("read content = %q", content)
	}
	if !strings.Contains(res.Output, "File content:") {
		t.Errorf("read output = %q", res.Output)
	}
}

func TestFileOperationsReadBinaryRejected(t *testing.T) {
	ops, dir := newFileOps(t)

	if err := os.WriteFile(filepath.Join(dir, "blob.bin"), []byte{0xff, 0xfe, 0x00, 0x80}, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ops.Execute(context.Background(), map[string]any{
		"operation": "read",
		"path":      "blob.bin",
	})
	if err == nil || !strings.Contains(err.Error(), "Cannot read binary file") {
		t.Errorf("read binary: err = %v", err)
	}
}

func TestFileOperationsSandboxEscape(t *testing.T) {
	ops, dir := newFileOps(t)
	ctx := context.Background()

	for _, path := range []string{"../outside.txt", "a/../../outside.txt", "/etc/passwd"} {
		_, err := ops.Execute(ctx, map[string]any{
			"operation": "read",
			"path":      path,
		})
		if err == nil {
			t.Errorf("path %q: expected sandbox violation", path)
			continue
		}
		var terr *Error
		if !errors.As(err, &terr) || !strings.Contains(terr.Message, "Access denied") {
			t.Errorf("path %q: err = %v", path, err)
		}
	}

	// An absolute path inside the workspace is allowed.
	inside := filepath.Join(dir, "inside.txt")
	if err := os.WriteFile(inside, []byte("ok"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := ops.Execute(ctx, map[string]any{"operation": "read", "path": inside})
	if err != nil || !res.Success {
		t.Errorf("absolute in-sandbox read failed: %v %+v", err, res)
	}
}

func TestFileOperationsList(t *testing.T) {
	ops, dir := newFileOps(t)
	ctx := context.Background()

	mustWrite(t, filepath.Join(dir, "top.txt"), "1")
	mustWrite(t, filepath.Join(dir, "sub", "nested.txt"), "22")

	res, err := ops.Execute(ctx, map[string]any{"operation": "list", "path": "."})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	entries, _ := res.Data["files"].([]FileEntry)
	if len(entries) != 2 {
		t.Fatalf("shallow list returned %d entries: %v", len(entries), entries)
	}
	if !strings.Contains(res.Output, "[DIR] sub") || !strings.Contains(res.Output, "[FILE] top.txt (1 bytes)") {
		t.Errorf("list output = %q", res.Output)
	}

	res, err = ops.Execute(ctx, map[string]any{"operation": "list", "path": ".", "recursive": true})
	if err != nil {
		t.Fatalf("recursive list: %v", err)
	}
	entries, _ = res.Data["files"].([]FileEntry)
	if len(entries) != 3 {
		t.Errorf("recursive list returned %d entries: %v", len(entries), entries)
	}
}

func TestFileOperationsExists(t *testing.T) {
	ops, dir := newFileOps(t)
	ctx := context.Background()

	mustWrite(t, filepath.Join(dir, "present.txt"), "x")

	res, err := ops.Execute(ctx, map[string]any{"operation": "exists", "path": "present.txt"})
	if err != nil || !res.Success {
		t.Fatalf("exists: %v %+v", err, res)
	}
	if exists, _ := res.Data["exists"].(bool); !exists {
		t.Error("exists = false for a present file")
	}

	// A missing path is still a successful result.
	res, err = ops.Execute(ctx, map[string]any{"operation": "exists", "path": "absent.txt"})
	if err != nil || !res.Success {
		t.Fatalf("exists on absent path: %v %+v", err, res)
	}
	if exists, _ := res.Data["exists"].(bool); exists {
		t.Error("exists = true for an absent file")
	}
	if !strings.Contains(res.Output, "Path does not exist") {
		t.Errorf("absent output = %q", res.Output)
	}
}

func TestFileOperationsDelete(t *testing.T) {
	ops, dir := newFileOps(t)
	ctx := context.Background()

	mustWrite(t, filepath.Join(dir, "sub", "a.txt"), "x")

	_, err := ops.Execute(ctx, map[string]any{"operation": "delete", "path": "sub"})
	if err == nil || !strings.Contains(err.Error(), "Cannot delete directory without recursive=true") {
		t.Errorf("delete dir without recursive: err = %v", err)
	}

	res, err := ops.Execute(ctx, map[string]any{"operation": "delete", "path": "sub", "recursive": true})
	if err != nil || !res.Success {
		t.Fatalf("recursive delete: %v %+v", err, res)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "sub")); !os.IsNotExist(statErr) {
		t.Error("directory still present after recursive delete")
	}
}

func TestFileOperationsArgumentValidation(t *testing.T) {
	ops, _ := newFileOps(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"missing operation", map[string]any{"path": "x"}, "Parameter 'operation' is required"},
		{"missing path", map[string]any{"operation": "read"}, "Parameter 'path' is required"},
		{"write without content", map[string]any{"operation": "write", "path": "x"}, "Content is required for write operation"},
		{"unknown operation", map[string]any{"operation": "chmod", "path": "x"}, "Unknown operation: chmod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ops.Execute(ctx, tt.args)
			if err == nil || err.Error() != tt.wantMsg {
				t.Errorf("err = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
