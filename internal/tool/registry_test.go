package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubTool is a minimal tool whose behavior is set per test.
type stubTool struct {
	name string
	exec func(ctx context.Context, args map[string]any) (*Result, error)
}

func (s *stubTool) Name() string               { return s.name }
func (s *stubTool) Description() string        { return "stub tool " + s.name }
func (s *stubTool) Parameters() map[string]any { return map[string]any{"type": "object"} }

func (s *stubTool) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	return s.exec(ctx, args)
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubTool{name: "alpha"})
	r.Register(&stubTool{name: "beta"})

	if _, ok := r.Get("alpha"); !ok {
		t.Error("Get(alpha) not found after Register")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}

	names := r.List()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("List() = %v, want [alpha beta]", names)
	}
}

func TestRegistryOverwriteKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubTool{name: "alpha"})
	r.Register(&stubTool{name: "beta"})

	replacement := &stubTool{name: "alpha", exec: func(context.Context, map[string]any) (*Result, error) {
		return Ok("replaced"), nil
	}}
	r.Register(replacement)

	names := r.List()
	if len(names) != 2 || names[0] != "alpha" {
		t.Fatalf("List() after overwrite = %v", names)
	}

	got, _ := r.Get("alpha")
	res, _ := got.Execute(context.Background(), nil)
	if res.Output != "replaced" {
		t.Errorf("overwritten tool not replaced: %q", res.Output)
	}
}

func TestRegistryDescription(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubTool{name: "alpha"})
	r.Register(&stubTool{name: "beta"})

	desc := r.Description()
	want := "- alpha: stub tool alpha\n- beta: stub tool beta"
	if desc != want {
		t.Errorf("Description() = %q, want %q", desc, want)
	}
}

func TestRegistryExecuteAbsorbsFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		tool       Tool
		execName   string
		wantOutput string
	}{
		{
			name: "missing tool lists available names",
			tool: &stubTool{name: "alpha", exec: func(context.Context, map[string]any) (*Result, error) {
				return Ok("ok"), nil
			}},
			execName:   "nope",
			wantOutput: "Tool 'nope' not found. Available tools: alpha",
		},
		{
			name: "tool error surfaces its message",
			tool: &stubTool{name: "alpha", exec: func(context.Context, map[string]any) (*Result, error) {
				return nil, Errorf("Parameter 'x' is required")
			}},
			execName:   "alpha",
			wantOutput: "Parameter 'x' is required",
		},
		{
			name: "plain error is wrapped",
			tool: &stubTool{name: "alpha", exec: func(context.Context, map[string]any) (*Result, error) {
				return nil, errors.New("disk on fire")
			}},
			execName:   "alpha",
			wantOutput: "Error executing tool 'alpha': disk on fire",
		},
		{
			name: "panic is recovered",
			tool: &stubTool{name: "alpha", exec: func(context.Context, map[string]any) (*Result, error) {
				panic("boom")
			}},
			execName:   "alpha",
			wantOutput: "Error executing tool 'alpha': boom",
		},
		{
			name: "nil result is a failure",
			tool: &stubTool{name: "alpha", exec: func(context.Context, map[string]any) (*Result, error) {
				return nil, nil
			}},
			execName:   "alpha",
			wantOutput: "Error executing tool 'alpha': tool returned no result",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			r.Register(tt.tool)

			res := r.Execute(ctx, tt.execName, nil)
			if res == nil {
				t.Fatal("Execute returned nil result")
			}
			if res.Success {
				t.Error("Execute reported success for a failure case")
			}
			if res.Output != tt.wantOutput {
				t.Errorf("Output = %q, want %q", res.Output, tt.wantOutput)
			}
		})
	}
}

func TestRegistryExecuteSuccess(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubTool{name: "alpha", exec: func(_ context.Context, args map[string]any) (*Result, error) {
		return Okf("got %v", args["key"]), nil
	}})

	res := r.Execute(context.Background(), "alpha", map[string]any{"key": "value"})
	if !res.Success || res.Output != "got value" {
		t.Errorf("Execute() = %+v", res)
	}
}

func TestToParams(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubTool{name: "alpha"})

	params := r.ToParams()
	if len(params) != 1 {
		t.Fatalf("ToParams() returned %d entries", len(params))
	}
	if params[0]["type"] != "function" {
		t.Errorf("param type = %v", params[0]["type"])
	}
	fn, ok := params[0]["function"].(map[string]any)
	if !ok || fn["name"] != "alpha" {
		t.Errorf("function block = %v", params[0]["function"])
	}
	if !strings.HasPrefix(fn["description"].(string), "stub tool") {
		t.Errorf("description = %v", fn["description"])
	}
}
