// Package agent implements the dispatch engine: the per-input decision
// logic that routes between direct tool invocation and the LLM fallback.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/futureHQ/uranus/internal/schema"
	"github.com/futureHQ/uranus/internal/tool"
	"go.uber.org/zap"
)

// LLM is the completion capability the agent delegates to when no trigger
// matches. Implementations surface their own failures as text, never as an
// error value.
type LLM interface {
	Ask(ctx context.Context, messages []schema.Message, systemPrompt string, temperature *float64) string
}

// Agent processes one input at a time: it evaluates an ordered trigger
// table against the input and either invokes a tool directly or falls back
// to the LLM with the conversation history and tool descriptions.
type Agent struct {
	name           string
	description    string
	systemPrompt   string
	nextStepPrompt string

	llm    LLM
	memory *schema.Memory
	tools  *tool.Registry
	logger *zap.Logger

	triggers []trigger

	stateMu sync.RWMutex
	state   schema.AgentState
}

// Config holds agent construction parameters. Zero-value fields get
// defaults: a no-op logger, an empty registry, and a memory bounded to
// schema.DefaultMaxMessages.
type Config struct {
	Name           string
	Description    string
	SystemPrompt   string
	NextStepPrompt string
	LLM            LLM
	Tools          *tool.Registry
	MaxMessages    int
	Logger         *zap.Logger
}

// New creates an agent in the idle state.
func New(cfg Config) *Agent {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Tools == nil {
		cfg.Tools = tool.NewRegistry()
	}
	if cfg.NextStepPrompt == "" {
		cfg.NextStepPrompt = "What would you like me to do next?"
	}

	a := &Agent{
		name:           cfg.Name,
		description:    cfg.Description,
		systemPrompt:   cfg.SystemPrompt,
		nextStepPrompt: cfg.NextStepPrompt,
		llm:            cfg.LLM,
		memory:         schema.NewMemory(cfg.MaxMessages),
		tools:          cfg.Tools,
		logger:         cfg.Logger,
		state:          schema.StateIdle,
	}
	a.triggers = a.buildTriggers()
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Description returns the agent's description.
func (a *Agent) Description() string { return a.description }

// Tools returns the agent's tool registry.
func (a *Agent) Tools() *tool.Registry { return a.tools }

// Memory returns the agent's conversation memory.
func (a *Agent) Memory() *schema.Memory { return a.memory }

// State reports the current lifecycle state.
func (a *Agent) State() schema.AgentState {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.state
}

func (a *Agent) setState(s schema.AgentState) {
	a.stateMu.Lock()
	defer a.stateMu.Unlock()
	a.state = s
}

// Run processes one input and always returns text, never panics. The state
// is running while processing, idle after a successful return, and error
// (sticky until the next run) when anything fails. This is the top-level
// recovery boundary; nextStep carries its own inner one.
func (a *Agent) Run(ctx context.Context, input string) (response string) {
	a.setState(schema.StateRunning)

	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error("agent run panicked", zap.Any("panic", rec))
			a.setState(schema.StateError)
			response = fmt.Sprintf("Error: %v", rec)
		}
	}()

	response = a.nextStep(ctx, input)
	if a.State() != schema.StateError {
		a.setState(schema.StateIdle)
	}
	return response
}

// nextStep appends the input to memory and evaluates the trigger table in
// priority order; the first match wins. When no trigger matches, the input
// goes to the LLM with the system prompt augmented by tool descriptions.
func (a *Agent) nextStep(ctx context.Context, input string) (response string) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error("nextStep panicked", zap.Any("panic", rec))
			a.setState(schema.StateError)
			response = fmt.Sprintf("Error: %v", rec)
		}
	}()

	a.memory.AddUser(input)

	for _, t := range a.triggers {
		if !t.match(input) {
			continue
		}
		a.logger.Info("trigger matched", zap.String("trigger", t.name))
		if result, handled := t.handle(ctx, input); handled {
			return result
		}
		// A trigger may decline after matching (the system-status rule
		// falls through when its tool is missing or failing).
	}

	return a.askLLM(ctx)
}

// askLLM builds the augmented system prompt and returns the raw completion,
// recorded as an assistant message.
func (a *Agent) askLLM(ctx context.Context) string {
	if a.llm == nil {
		return "LLM not initialized properly."
	}

	enhancedPrompt := fmt.Sprintf(
		"%s\n\nYou have access to the following tools:\n%s\n\nTo use a tool, respond with the tool name and parameters in a structured format.",
		a.systemPrompt, a.tools.Description())

	response := a.llm.Ask(ctx, a.memory.Messages(), enhancedPrompt, nil)
	a.memory.AddAssistant(response)
	return response
}
