package tool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSaver writes or appends content to a file under the sandbox root.
// Unlike FileOperations, sandbox violations are reported as failure results
// rather than raised; the registry treats both the same way.
type FileSaver struct {
	baseDir string
	logger  *zap.Logger
}

// NewFileSaver creates the tool rooted at baseDir. An empty baseDir uses
// the default per-user workspace.
func NewFileSaver(baseDir string, logger *zap.Logger) *FileSaver {
	if baseDir == "" {
		baseDir = DefaultWorkspace()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSaver{baseDir: baseDir, logger: logger}
}

func (t *FileSaver) Name() string { return "file_saver" }

func (t *FileSaver) Description() string {
	return "Save content to a local file at a specified path."
}

func (t *FileSaver) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "The content to save to the file.",
			},
			"file_path": map[string]any{
				"type":        "string",
				"description": "The path where the file should be saved, including filename and extension.",
			},
			"mode": map[string]any{
				"type":        "string",
				"description": "The file opening mode. Default is 'w' for write. Use 'a' for append.",
				"enum":        []string{"w", "a"},
				"default":     "w",
			},
		},
		"required": []string{"content", "file_path"},
	}
}

func (t *FileSaver) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	content, ok := stringArg(args, "content")
	if !ok {
		return Fail("Parameter 'content' is required"), nil
	}
	filePath, ok := stringArg(args, "file_path")
	if !ok {
		return Fail("Parameter 'file_path' is required"), nil
	}
	mode := stringArgDefault(args, "mode", "w")

	full, err := resolveSandboxPath(t.baseDir, filePath)
	if err != nil {
		return Fail(err.Error()), nil
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Failf("Error saving file: %s", err), nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if mode == "a" {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	}

	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		return Failf("Error saving file: %s", err), nil
	}
	defer f.Close()

	if _, err := f.WriteString(content); err != nil {
		return Failf("Error saving file: %s", err), nil
	}

	t.logger.Debug("saved file", zap.String("path", full), zap.String("mode", mode))

	return &Result{
		Success: true,
		Output:  fmt.Sprintf("Content saved to %s", filePath),
		Data:    map[string]any{"path": full},
	}, nil
}
