package tool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Terminal executes shell commands. It keeps a persistent current working
// directory across invocations, so a mutex serializes concurrent calls.
// Commands are split on '&' and run serially; a leading "cd " segment is
// intercepted and updates the stored directory instead of reaching a shell.
type Terminal struct {
	mu          sync.Mutex
	currentPath string
	logger      *zap.Logger
}

// NewTerminal creates the tool starting from the process working directory.
func NewTerminal(logger *zap.Logger) *Terminal {
	if logger == nil {
		logger = zap.NewNop()
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Terminal{currentPath: wd, logger: logger}
}

func (t *Terminal) Name() string { return "terminal" }

func (t *Terminal) Description() string {
	return "Execute terminal commands on the system."
}

func (t *Terminal) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"command": map[string]any{
				"type":        "string",
				"description": "The terminal command to execute.",
			},
		},
		"required": []string{"command"},
	}
}

// CurrentPath reports the stored working directory.
func (t *Terminal) CurrentPath() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentPath
}

func (t *Terminal) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	command, ok := stringArg(args, "command")
	if !ok {
		return Fail("Parameter 'command' is required"), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Info("executing command", zap.String("command", command))

	var output strings.Builder
	var errOutput strings.Builder

	for _, segment := range strings.Split(command, "&") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		if strings.HasPrefix(segment, "cd ") {
			t.changeDirectory(strings.TrimSpace(segment[3:]), &output, &errOutput)
			continue
		}

		cmd := exec.CommandContext(ctx, "bash", "-c", segment)
		cmd.Dir = t.currentPath

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		// Non-zero exit is reported through stderr, not as a failure.
		if err := cmd.Run(); err != nil && stderr.Len() == 0 {
			fmt.Fprintf(&errOutput, "%s\n", err)
		}
		if stdout.Len() > 0 {
			output.WriteString(stdout.String())
			output.WriteString("\n")
		}
		if stderr.Len() > 0 {
			errOutput.WriteString(stderr.String())
			errOutput.WriteString("\n")
		}
	}

	return &Result{
		Success: true,
		Output:  strings.TrimSpace(output.String()),
		Data: map[string]any{
			"error":        strings.TrimSpace(errOutput.String()),
			"current_path": t.currentPath,
		},
	}, nil
}

// changeDirectory resolves path against the stored directory, verifies it
// exists, and updates the stored directory. Never handed to a subprocess.
func (t *Terminal) changeDirectory(path string, output, errOutput *strings.Builder) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(t.currentPath, path)
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(errOutput, "Directory not found: %s\n", path)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(errOutput, "Not a directory: %s\n", path)
		return
	}

	t.currentPath = path
	fmt.Fprintf(output, "Changed directory to %s\n", path)
}
