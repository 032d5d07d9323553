// Package flow sequences multiple agents, feeding each agent's output to
// the next one's input.
package flow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Runner is the slice of the agent surface a flow needs.
type Runner interface {
	Name() string
	Run(ctx context.Context, input string) string
}

// Sequential executes agents in a fixed order. The output of each agent
// becomes the input of the next; the final result joins all intermediate
// results with blank lines.
type Sequential struct {
	agents   map[string]Runner
	sequence []string
	logger   *zap.Logger
}

// NewSequential creates a flow over the given agents, executed in the
// order provided.
func NewSequential(agents []Runner, logger *zap.Logger) *Sequential {
	if logger == nil {
		logger = zap.NewNop()
	}

	byName := make(map[string]Runner, len(agents))
	sequence := make([]string, 0, len(agents))
	for _, a := range agents {
		if _, exists := byName[a.Name()]; !exists {
			sequence = append(sequence, a.Name())
		}
		byName[a.Name()] = a
	}

	return &Sequential{agents: byName, sequence: sequence, logger: logger}
}

// UseSequence replaces the execution order. Names that resolve to no agent
// are kept and skipped with a warning at execution time.
func (f *Sequential) UseSequence(names []string) {
	f.sequence = make([]string, len(names))
	copy(f.sequence, names)
}

// Primary returns the first agent in the sequence, if any.
func (f *Sequential) Primary() (Runner, bool) {
	if len(f.sequence) == 0 {
		return nil, false
	}
	a, ok := f.agents[f.sequence[0]]
	return a, ok
}

// Execute runs the agents in sequence. Unknown sequence entries are skipped
// with a warning. All failures surface as text, matching the agent contract.
func (f *Sequential) Execute(ctx context.Context, input string) string {
	if len(f.agents) == 0 {
		return "Execution failed: no agents available"
	}

	currentInput := input
	results := make([]string, 0, len(f.sequence))

	for _, name := range f.sequence {
		a, ok := f.agents[name]
		if !ok {
			f.logger.Warn("agent not found, skipping", zap.String("agent", name))
			continue
		}

		f.logger.Info("executing agent", zap.String("agent", name))
		result := a.Run(ctx, currentInput)
		results = append(results, result)
		currentInput = result
	}

	return strings.Join(results, "\n\n")
}

// ErrEmptyDefinition reports a definition without agents.
var ErrEmptyDefinition = fmt.Errorf("flow definition has no agents")
