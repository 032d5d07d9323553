// Package tool defines the pluggable capability model: the Tool interface,
// the uniform Result shape every execution resolves to, and the Registry
// that dispatches executions by name.
package tool

import (
	"context"
	"fmt"
)

// Result is the uniform outcome of a tool execution. Expected failures are
// reported with Success=false rather than an error value.
type Result struct {
	Success bool
	Output  string
	Data    map[string]any
}

// Ok builds a successful result.
func Ok(output string) *Result {
	return &Result{Success: true, Output: output}
}

// Okf builds a successful result with a formatted message.
func Okf(format string, args ...any) *Result {
	return Ok(fmt.Sprintf(format, args...))
}

// Fail builds a failure result.
func Fail(output string) *Result {
	return &Result{Success: false, Output: output}
}

// Failf builds a failure result with a formatted message.
func Failf(format string, args ...any) *Result {
	return Fail(fmt.Sprintf(format, args...))
}

// Error is the typed error tools raise for contract violations: sandbox
// escapes, missing required parameters, unknown operations. The registry
// converts it into a failure Result at its execute boundary.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf constructs a tool Error with a formatted message.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Tool is a named, independently invocable capability with a declared
// parameter schema. Execute may report expected failures through the Result
// or raise a *Error for contract violations; callers behind the registry
// observe both uniformly as a failure Result.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any
	Execute(ctx context.Context, args map[string]any) (*Result, error)
}

// ToParam converts a tool into the function-calling schema shape consumed
// by LLM APIs.
func ToParam(t Tool) map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name(),
			"description": t.Description(),
			"parameters":  t.Parameters(),
		},
	}
}
