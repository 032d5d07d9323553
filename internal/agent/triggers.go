package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/futureHQ/uranus/internal/schema"
	"github.com/futureHQ/uranus/internal/tool"
	"go.uber.org/zap"
)

// trigger is one dispatch rule: a predicate over the raw input and a
// handler that runs when it matches. A handler may decline (handled=false)
// to let evaluation continue with later rules.
type trigger struct {
	name   string
	match  func(input string) bool
	handle func(ctx context.Context, input string) (response string, handled bool)
}

const (
	browserMissingMsg    = "Browser tool is not available. Please make sure it's properly registered."
	browserUseMissingMsg = "Browser_use tool is not available. Please make sure it's properly registered."
	terminalMissingMsg   = "Terminal tool is not available. Please make sure it's properly registered."
	fileOpsMissingMsg    = "File operations tool is not available. Please make sure it's properly registered."
)

var terminalCommands = []string{"ls", "pwd", "whoami", "date", "hostname"}

var terminalPrefixes = []string{"echo ", "cat ", "grep ", "find ", "ps ", "mkdir ", "touch "}

// buildTriggers returns the dispatch rules in priority order. The order is
// part of the contract: the first matching rule wins, and "ls" is claimed
// by the terminal rule before the file-listing rule can see it.
func (a *Agent) buildTriggers() []trigger {
	return []trigger{
		{name: "system_status", match: matchSystemStatus, handle: a.handleSystemStatus},
		{name: "browser_search", match: matchPrefix("search "), handle: a.handleBrowserSearch},
		{name: "browser_navigate", match: matchAnyPrefix("navigate to ", "go to "), handle: a.handleBrowserNavigate},
		{name: "browser_open_url", match: matchPrefix("browser.open_url"), handle: a.handleBrowserOpenURL},
		{name: "terminal_command", match: matchTerminalCommand, handle: a.handleTerminalCommand},
		{name: "create_file", match: matchAnyPrefix("create file", "make a file", "make file"), handle: a.handleCreateFile},
		{name: "list_files", match: matchListFiles, handle: a.handleListFiles},
	}
}

func matchSystemStatus(input string) bool {
	lower := strings.ToLower(input)
	for _, keyword := range []string{"system status", "system info", "system information"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func matchPrefix(prefix string) func(string) bool {
	return func(input string) bool {
		return strings.HasPrefix(strings.ToLower(input), prefix)
	}
}

func matchAnyPrefix(prefixes ...string) func(string) bool {
	return func(input string) bool {
		lower := strings.ToLower(input)
		for _, p := range prefixes {
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
		return false
	}
}

func matchTerminalCommand(input string) bool {
	lower := strings.ToLower(input)
	for _, cmd := range terminalCommands {
		if lower == cmd {
			return true
		}
	}
	for _, p := range terminalPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func matchListFiles(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "list file") ||
		strings.HasPrefix(lower, "list directory") ||
		lower == "ls"
}

// handleSystemStatus invokes the system-info tool directly. When the tool
// is missing or fails, the rule declines and evaluation continues with the
// remaining rules. No other rule behaves this way.
func (a *Agent) handleSystemStatus(ctx context.Context, input string) (string, bool) {
	systemTool, ok := a.tools.Get("system_info")
	if !ok {
		return "", false
	}

	result, err := systemTool.Execute(ctx, map[string]any{})
	if err != nil || result == nil || !result.Success {
		a.logger.Warn("system_info tool failed, falling through", zap.Error(err))
		return "", false
	}

	response := fmt.Sprintf("Here's the current system status:\n\n%s", result.Output)
	a.memory.AddAssistant(response)
	return response, true
}

func (a *Agent) handleBrowserSearch(ctx context.Context, input string) (string, bool) {
	browserTool, ok := a.tools.Get("browser")
	if !ok {
		return browserMissingMsg, true
	}

	query := strings.TrimSpace(input[len("search "):])
	a.logger.Info("searching", zap.String("query", query))

	result, err := browserTool.Execute(ctx, map[string]any{"action": "search", "query": query})
	if err != nil {
		return a.toolFailure(err), true
	}
	if !result.Success {
		return fmt.Sprintf("Failed to search: %s", result.Output), true
	}

	response := fmt.Sprintf("I've searched for '%s' in the browser.", query)
	a.memory.AddAssistant(response)
	return response, true
}

func (a *Agent) handleBrowserNavigate(ctx context.Context, input string) (string, bool) {
	browserTool, ok := a.tools.Get("browser")
	if !ok {
		return browserMissingMsg, true
	}

	lower := strings.ToLower(input)
	var url string
	if strings.HasPrefix(lower, "navigate to ") {
		url = strings.TrimSpace(input[len("navigate to "):])
	} else {
		url = strings.TrimSpace(input[len("go to "):])
	}
	a.logger.Info("navigating", zap.String("url", url))

	result, err := browserTool.Execute(ctx, map[string]any{"action": "navigate", "url": url})
	if err != nil {
		return a.toolFailure(err), true
	}
	if !result.Success {
		return fmt.Sprintf("Failed to navigate: %s", result.Output), true
	}

	response := fmt.Sprintf("I've opened %s in the browser.", url)
	a.memory.AddAssistant(response)
	return response, true
}

func (a *Agent) handleBrowserOpenURL(ctx context.Context, input string) (string, bool) {
	browserTool, ok := a.tools.Get("browser_use")
	if !ok {
		return browserUseMissingMsg, true
	}

	parts := strings.SplitN(input, " ", 2)
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "Please specify a URL to open.", true
	}
	url := strings.TrimSpace(parts[1])
	a.logger.Info("opening URL in browser", zap.String("url", url))

	result, err := browserTool.Execute(ctx, map[string]any{"action": "navigate", "url": url})
	if err != nil {
		return a.toolFailure(err), true
	}
	if !result.Success {
		return fmt.Sprintf("Failed to open URL: %s", result.Output), true
	}

	response := fmt.Sprintf("Navigated to %s in the browser.", url)
	a.memory.AddAssistant(response)
	return response, true
}

func (a *Agent) handleTerminalCommand(ctx context.Context, input string) (string, bool) {
	terminalTool, ok := a.tools.Get("terminal")
	if !ok {
		return terminalMissingMsg, true
	}

	result, err := terminalTool.Execute(ctx, map[string]any{"command": input})
	if err != nil {
		return a.toolFailure(err), true
	}
	if !result.Success {
		return fmt.Sprintf("Failed to execute command: %s", result.Output), true
	}

	response := result.Output
	if response == "" {
		response = "(Command executed successfully with no output)"
	}
	a.memory.AddAssistant(response)
	return response, true
}

func (a *Agent) handleCreateFile(ctx context.Context, input string) (string, bool) {
	fileTool, ok := a.tools.Get("file_operations")
	if !ok {
		return fileOpsMissingMsg, true
	}

	idx := strings.Index(strings.ToLower(input), " file ")
	if idx < 0 {
		return "Please specify a filename.", true
	}
	filename := strings.TrimSpace(input[idx+len(" file "):])
	if filename == "" {
		return "Please specify a filename.", true
	}
	a.logger.Info("creating file", zap.String("filename", filename))

	result, err := fileTool.Execute(ctx, map[string]any{
		"operation": "write",
		"path":      filename,
		"content":   "",
	})
	if err != nil {
		return a.toolFailure(err), true
	}
	if !result.Success {
		return fmt.Sprintf("Failed to create file: %s", result.Output), true
	}

	response := fmt.Sprintf("Created file: %s", filename)
	a.memory.AddAssistant(response)
	return response, true
}

func (a *Agent) handleListFiles(ctx context.Context, input string) (string, bool) {
	fileTool, ok := a.tools.Get("file_operations")
	if !ok {
		return fileOpsMissingMsg, true
	}

	path := "."
	if strings.ToLower(input) != "ls" && strings.Contains(input, " ") {
		parts := strings.SplitN(input, " ", 3)
		if len(parts) > 2 {
			path = strings.TrimSpace(parts[2])
		}
	}

	result, err := fileTool.Execute(ctx, map[string]any{"operation": "list", "path": path})
	if err != nil {
		return a.toolFailure(err), true
	}
	if !result.Success {
		return fmt.Sprintf("Failed to list files: %s", result.Output), true
	}

	var response string
	entries, _ := result.Data["files"].([]tool.FileEntry)
	if len(entries) > 0 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Path)
		}
		response = fmt.Sprintf("Files in %s:\n\n%s", path, strings.Join(names, "\n"))
	} else {
		response = fmt.Sprintf("No files found in %s", path)
	}
	a.memory.AddAssistant(response)
	return response, true
}

// toolFailure records a tool-raised error as the agent's error state and
// formats it for the in-band reply.
func (a *Agent) toolFailure(err error) string {
	a.logger.Error("tool execution failed", zap.Error(err))
	a.setState(schema.StateError)
	return fmt.Sprintf("Error: %s", err)
}
