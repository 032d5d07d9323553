package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// defaultPythonTimeout is the wall-clock limit for code execution.
const defaultPythonTimeout = 5

// pythonHarness runs inside the worker process. It strips dangerous
// builtins, pre-imports a fixed allow-list of modules, captures stdout, and
// reports the outcome as a single JSON line on the last line of output.
// Return values are not captured; only printed output is observable.
const pythonHarness = `
import sys, io, json, builtins
code = sys.stdin.read()
blocked = {"open", "exec", "eval", "compile", "__import__", "input", "memoryview"}
safe = {n: getattr(builtins, n) for n in dir(builtins) if n not in blocked}
g = {"__builtins__": safe, "print": print}
for m in ("math", "random", "datetime", "json", "re"):
    try:
        g[m] = __import__(m)
    except ImportError:
        pass
buf = io.StringIO()
real = sys.stdout
sys.stdout = buf
ok = True
obs = ""
try:
    exec(code, g, g)
    obs = buf.getvalue()
except BaseException as e:
    ok = False
    obs = str(e)
finally:
    sys.stdout = real
sys.stdout.write("\n" + json.dumps({"success": ok, "observation": obs}))
`

type pythonOutcome struct {
	Success     bool   `json:"success"`
	Observation string `json:"observation"`
}

// PythonExecute runs arbitrary Python code in a separate OS process under a
// hard wall-clock timeout. Process isolation is the cancellation mechanism:
// code that never yields is killed when the deadline expires, so it cannot
// hang or crash the caller.
type PythonExecute struct {
	interpreter string
	logger      *zap.Logger
}

// NewPythonExecute creates the tool, locating a Python interpreter on PATH.
func NewPythonExecute(logger *zap.Logger) *PythonExecute {
	if logger == nil {
		logger = zap.NewNop()
	}
	interpreter := "python3"
	if _, err := exec.LookPath(interpreter); err != nil {
		interpreter = "python"
	}
	return &PythonExecute{interpreter: interpreter, logger: logger}
}

func (t *PythonExecute) Name() string { return "python_execute" }

func (t *PythonExecute) Description() string {
	return "Executes Python code string. Note: Only print outputs are visible, function return values are not captured. Use print statements to see results."
}

func (t *PythonExecute) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"code": map[string]any{
				"type":        "string",
				"description": "The Python code to execute.",
			},
			"timeout": map[string]any{
				"type":        "integer",
				"description": "Maximum execution time in seconds.",
				"default":     defaultPythonTimeout,
			},
		},
		"required": []string{"code"},
	}
}

func (t *PythonExecute) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	code, ok := stringArg(args, "code")
	if !ok {
		return Fail("Parameter 'code' is required"), nil
	}
	timeout := intArgDefault(args, "timeout", defaultPythonTimeout)
	if timeout <= 0 {
		timeout = defaultPythonTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.interpreter, "-c", pythonHarness)
	cmd.Stdin = strings.NewReader(code)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.logger.Warn("python execution timed out", zap.Int("timeout_seconds", timeout))
		return Failf("Execution timed out after %d seconds", timeout), nil
	}

	outcome, parsed := parsePythonOutcome(stdout.String())
	if !parsed {
		if runErr != nil {
			return Failf("Error: %s: %s", runErr, strings.TrimSpace(stderr.String())), nil
		}
		return Failf("Error executing code: %s", strings.TrimSpace(stdout.String())), nil
	}

	if !outcome.Success {
		return Failf("Error executing code: %s", outcome.Observation), nil
	}
	return Ok(outcome.Observation), nil
}

// parsePythonOutcome extracts the harness's trailing JSON line.
func parsePythonOutcome(output string) (pythonOutcome, bool) {
	idx := strings.LastIndexByte(strings.TrimRight(output, "\n"), '\n')
	last := strings.TrimRight(output, "\n")
	if idx >= 0 {
		last = last[idx+1:]
	}

	var outcome pythonOutcome
	if err := json.Unmarshal([]byte(last), &outcome); err != nil {
		return pythonOutcome{}, false
	}
	return outcome, true
}
