package tool

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func requirePython(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("python3"); err != nil {
		if _, err := exec.LookPath("python"); err != nil {
			t.Skip("no Python interpreter on PATH")
		}
	}
}

func TestPythonExecutePrintCaptured(t *testing.T) {
	requirePython(t)

	py := NewPythonExecute(nil)
	res, err := py.Execute(context.Background(), map[string]any{
		"code": "print(2 + 2)",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success || strings.TrimSpace(res.Output) != "4" {
		t.Errorf("result = %+v", res)
	}
}

func TestPythonExecuteAllowedModules(t *testing.T) {
	requirePython(t)

	py := NewPythonExecute(nil)
	res, err := py.Execute(context.Background(), map[string]any{
		"code": "print(math.floor(3.7)); print(json.dumps({'a': 1}))",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Success {
		t.Fatalf("result = %+v", res)
	}
	if !strings.Contains(res.Output, "3") || !strings.Contains(res.Output, `{"a": 1}`) {
		t.Errorf("output = %q", res.Output)
	}
}

func TestPythonExecuteBlockedBuiltins(t *testing.T) {
	requirePython(t)

	py := NewPythonExecute(nil)
	res, err := py.Execute(context.Background(), map[string]any{
		"code": "open('/etc/passwd')",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success {
		t.Errorf("open() succeeded in restricted namespace: %+v", res)
	}
	if !strings.HasPrefix(res.Output, "Error executing code:") {
		t.Errorf("output = %q", res.Output)
	}
}

func TestPythonExecuteErrorReported(t *testing.T) {
	requirePython(t)

	py := NewPythonExecute(nil)
	res, err := py.Execute(context.Background(), map[string]any{
		"code": "raise ValueError('bad input')",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success || !strings.Contains(res.Output, "bad input") {
		t.Errorf("result = %+v", res)
	}
}

func TestPythonExecuteTimeout(t *testing.T) {
	requirePython(t)

	py := NewPythonExecute(nil)
	start := time.Now()
	res, err := py.Execute(context.Background(), map[string]any{
		"code":    "while True: pass",
		"timeout": 1,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success || res.Output != "Execution timed out after 1 seconds" {
		t.Errorf("result = %+v", res)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took %v, expected roughly the 1s limit", elapsed)
	}
}

func TestParsePythonOutcome(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   pythonOutcome
		wantOK bool
	}{
		{
			name:   "outcome after printed output",
			output: "hello\n" + `{"success": true, "observation": "hello\n"}`,
			want:   pythonOutcome{Success: true, Observation: "hello\n"},
			wantOK: true,
		},
		{
			name:   "outcome alone",
			output: `{"success": false, "observation": "division by zero"}`,
			want:   pythonOutcome{Success: false, Observation: "division by zero"},
			wantOK: true,
		},
		{
			name:   "no json line",
			output: "garbage output",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parsePythonOutcome(tt.output)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("outcome = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPythonExecuteMissingCode(t *testing.T) {
	py := NewPythonExecute(nil)
	res, err := py.Execute(context.Background(), map[string]any{})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Success || res.Output != "Parameter 'code' is required" {
		t.Errorf("result = %+v", res)
	}
}
