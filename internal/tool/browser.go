package tool

import (
	"context"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// Browser opens pages in the OS default browser. It supports two actions:
// navigate (open a URL) and search (open a search-engine query).
type Browser struct {
	logger *zap.Logger
	// open launches the OS URL handler; replaceable in tests.
	open func(url string) error
}

// NewBrowser creates the tool.
func NewBrowser(logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Browser{logger: logger, open: openInDefaultBrowser}
}

func (t *Browser) Name() string { return "browser" }

func (t *Browser) Description() string {
	return "A tool for performing browser operations like searching the web, navigating to URLs, and more."
}

func (t *Browser) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type":        "string",
				"enum":        []string{"navigate", "search"},
				"description": "The action to perform",
			},
			"url": map[string]any{
				"type":        "string",
				"description": "The URL to navigate to",
			},
			"query": map[string]any{
				"type":        "string",
				"description": "The search query for search action",
			},
		},
		"required": []string{"action"},
	}
}

func (t *Browser) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	action, ok := stringArg(args, "action")
	if !ok {
		return Fail("Parameter 'action' is required"), nil
	}

	t.logger.Info("executing browser action", zap.String("action", action))

	switch action {
	case "navigate":
		target, hasURL := stringArg(args, "url")
		if !hasURL || target == "" {
			return Fail("URL is required for navigation"), nil
		}
		if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
			target = "https://" + target
		}
		if err := t.open(target); err != nil {
			return Failf("Error opening browser: %s", err), nil
		}
		return Okf("Opened %s in browser", target), nil

	case "search":
		query, hasQuery := stringArg(args, "query")
		if !hasQuery || query == "" {
			return Fail("Query is required for search"), nil
		}
		searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
		if err := t.open(searchURL); err != nil {
			return Failf("Error opening browser: %s", err), nil
		}
		return Okf("Searched for '%s' in browser", query), nil

	default:
		return Failf("Unknown action: %s", action), nil
	}
}

func openInDefaultBrowser(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}
