package tool

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// FileEntry describes one entry reported by the list operation.
type FileEntry struct {
	Path string
	Type string // "file" or "directory"
	Size int64  // files only; -1 for directories
}

// FileOperations performs read, write, list, exists, and delete operations
// confined to a sandbox root. Every path is resolved against the root and
// rejected if its canonical form escapes it.
type FileOperations struct {
	baseDir string
	logger  *zap.Logger
}

// NewFileOperations creates the tool rooted at baseDir. An empty baseDir
// uses the default per-user workspace.
func NewFileOperations(baseDir string, logger *zap.Logger) *FileOperations {
	if baseDir == "" {
		baseDir = DefaultWorkspace()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileOperations{baseDir: baseDir, logger: logger}
}

func (t *FileOperations) Name() string { return "file_operations" }

func (t *FileOperations) Description() string {
	return "Perform file operations like reading, writing, listing files, etc."
}

func (t *FileOperations) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"operation": map[string]any{
				"type":        "string",
				"enum":        []string{"read", "write", "list", "exists", "delete"},
				"description": "The operation to perform",
			},
			"path": map[string]any{
				"type":        "string",
				"description": "The file or directory path (relative to the workspace root)",
			},
			"content": map[string]any{
				"type":        "string",
				"description": "Content to write (for write operation)",
			},
			"recursive": map[string]any{
				"type":        "boolean",
				"description": "Whether to operate recursively (for list/delete operations)",
				"default":     false,
			},
		},
		"required": []string{"operation", "path"},
	}
}

func (t *FileOperations) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	operation, ok := stringArg(args, "operation")
	if !ok {
		return nil, Errorf("Parameter 'operation' is required")
	}
	path, ok := stringArg(args, "path")
	if !ok {
		return nil, Errorf("Parameter 'path' is required")
	}

	full, err := resolveSandboxPath(t.baseDir, path)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("file operation",
		zap.String("operation", operation),
		zap.String("path", full))

	switch operation {
	case "read":
		return t.read(full)
	case "write":
		content, hasContent := stringArg(args, "content")
		if !hasContent {
			return nil, Errorf("Content is required for write operation")
		}
		return t.write(full, content)
	case "list":
		return t.list(full, boolArg(args, "recursive"))
	case "exists":
		return t.exists(full)
	case "delete":
		return t.delete(full, boolArg(args, "recursive"))
	default:
		return nil, Errorf("Unknown operation: %s", operation)
	}
}

func (t *FileOperations) read(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, Errorf("File not found: %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, Errorf("Not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf("Error reading file %s: %s", path, err)
	}
	if !utf8.Valid(data) {
		return nil, Errorf("Cannot read binary file: %s", path)
	}

	content := string(data)
	return &Result{
		Success: true,
		Output:  fmt.Sprintf("File content:\n\n%s", content),
		Data: map[string]any{
			"content": content,
			"path":    path,
			"bytes":   len(data),
			"chars":   utf8.RuneCountInString(content),
		},
	}, nil
}

func (t *FileOperations) write(path, content string) (*Result, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, Errorf("Error creating directories for %s: %s", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return nil, Errorf("Error writing file %s: %s", path, err)
	}

	return &Result{
		Success: true,
		Output:  fmt.Sprintf("Successfully wrote %d characters to %s", utf8.RuneCountInString(content), path),
		Data: map[string]any{
			"path": path,
			"size": len(content),
		},
	}, nil
}

func (t *FileOperations) list(path string, recursive bool) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, Errorf("Directory not found: %s", path)
	}
	if !info.IsDir() {
		return nil, Errorf("Not a directory: %s", path)
	}

	absRoot, err := filepath.Abs(t.baseDir)
	if err != nil {
		return nil, Errorf("Error resolving workspace %s: %s", t.baseDir, err)
	}

	var entries []FileEntry
	appendEntry := func(p string, d fs.DirEntry) error {
		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			rel = p
		}
		entry := FileEntry{Path: rel, Type: "directory", Size: -1}
		if !d.IsDir() {
			entry.Type = "file"
			if fi, statErr := d.Info(); statErr == nil {
				entry.Size = fi.Size()
			}
		}
		entries = append(entries, entry)
		return nil
	}

	if recursive {
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if p == path {
				return nil
			}
			return appendEntry(p, d)
		})
		if err != nil {
			return nil, Errorf("Error listing directory %s: %s", path, err)
		}
	} else {
		dirEntries, readErr := os.ReadDir(path)
		if readErr != nil {
			return nil, Errorf("Error listing directory %s: %s", path, readErr)
		}
		for _, d := range dirEntries {
			if err := appendEntry(filepath.Join(path, d.Name()), d); err != nil {
				return nil, Errorf("Error listing directory %s: %s", path, err)
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Contents of %s:\n\n", path)
	for _, e := range entries {
		indicator := "[FILE]"
		sizeInfo := fmt.Sprintf(" (%d bytes)", e.Size)
		if e.Type == "directory" {
			indicator = "[DIR]"
			sizeInfo = ""
		}
		fmt.Fprintf(&sb, "%s %s%s\n", indicator, e.Path, sizeInfo)
	}

	return &Result{
		Success: true,
		Output:  sb.String(),
		Data: map[string]any{
			"path":  path,
			"files": entries,
		},
	}, nil
}

func (t *FileOperations) exists(path string) (*Result, error) {
	info, err := os.Stat(path)
	exists := err == nil
	typeStr := ""
	if exists {
		if info.IsDir() {
			typeStr = "directory"
		} else if info.Mode().IsRegular() {
			typeStr = "file"
		}
	}

	output := fmt.Sprintf("Path does not exist: %s", path)
	if exists {
		output = fmt.Sprintf("Path exists: %s (%s)", path, typeStr)
	}
	return &Result{
		Success: true,
		Output:  output,
		Data: map[string]any{
			"exists": exists,
			"type":   typeStr,
			"path":   path,
		},
	}, nil
}

func (t *FileOperations) delete(path string, recursive bool) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, Errorf("Path not found: %s", path)
	}

	if info.IsDir() {
		if !recursive {
			return nil, Errorf("Cannot delete directory without recursive=true: %s", path)
		}
		if err := os.RemoveAll(path); err != nil {
			return nil, Errorf("Error deleting directory %s: %s", path, err)
		}
		return &Result{
			Success: true,
			Output:  fmt.Sprintf("Directory deleted: %s", path),
			Data:    map[string]any{"path": path, "type": "directory"},
		}, nil
	}

	if err := os.Remove(path); err != nil {
		return nil, Errorf("Error deleting file %s: %s", path, err)
	}
	return &Result{
		Success: true,
		Output:  fmt.Sprintf("File deleted: %s", path),
		Data:    map[string]any{"path": path, "type": "file"},
	}, nil
}
