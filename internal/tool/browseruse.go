package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// maxContentLength caps page content returned by get_html / get_text.
const maxContentLength = 2000

// BrowserUse drives a headless browser over the Chrome DevTools protocol.
// The browser process and its websocket connection are session state owned
// by the tool, created lazily on first use and released by Cleanup; a mutex
// serializes concurrent invocations.
type BrowserUse struct {
	mu         sync.Mutex
	logger     *zap.Logger
	cmd        *exec.Cmd
	conn       *websocket.Conn
	msgID      atomic.Int64
	port       int
	profileDir string
}

// NewBrowserUse creates the tool without launching a browser.
func NewBrowserUse(logger *zap.Logger) *BrowserUse {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BrowserUse{logger: logger}
}

func (t *BrowserUse) Name() string { return "browser_use" }

func (t *BrowserUse) Description() string {
	return "Interact with a web browser to perform various actions such as navigation, " +
		"content extraction, and script execution. Supported actions: 'navigate', " +
		"'get_html', 'get_text', 'execute_js', 'scroll', 'screenshot', 'refresh'."
}

func (t *BrowserUse) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action": map[string]any{
				"type":        "string",
				"enum":        []string{"navigate", "get_html", "get_text", "execute_js", "scroll", "screenshot", "refresh"},
				"description": "The action to perform",
			},
			"url": map[string]any{
				"type":        "string",
				"description": "URL for the navigate action",
			},
			"script": map[string]any{
				"type":        "string",
				"description": "JavaScript to execute for the execute_js action",
			},
			"scroll_amount": map[string]any{
				"type":        "integer",
				"description": "Pixels to scroll (negative scrolls up) for the scroll action",
			},
		},
		"required": []string{"action"},
	}
}

func (t *BrowserUse) Execute(ctx context.Context, args map[string]any) (*Result, error) {
	action, ok := stringArg(args, "action")
	if !ok {
		return Fail("Parameter 'action' is required"), nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.logger.Info("executing browser action", zap.String("action", action))

	if err := t.ensureSession(ctx); err != nil {
		return Failf("Failed to start browser session: %s", err), nil
	}

	switch action {
	case "navigate":
		target, hasURL := stringArg(args, "url")
		if !hasURL || target == "" {
			return Fail("URL is required for 'navigate' action"), nil
		}
		if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
			target = "https://" + target
		}
		if _, err := t.call(ctx, "Page.navigate", map[string]any{"url": target}); err != nil {
			return Failf("Failed to navigate: %s", err), nil
		}
		return Okf("Navigated to %s", target), nil

	case "get_html":
		return t.evaluateText(ctx, "document.documentElement.outerHTML")

	case "get_text":
		return t.evaluateText(ctx, "document.body.innerText")

	case "execute_js":
		script, hasScript := stringArg(args, "script")
		if !hasScript || script == "" {
			return Fail("Script is required for 'execute_js' action"), nil
		}
		value, err := t.evaluate(ctx, script)
		if err != nil {
			return Failf("Failed to execute script: %s", err), nil
		}
		return Okf("Script result: %v", value), nil

	case "scroll":
		amount := intArgDefault(args, "scroll_amount", 0)
		if _, err := t.evaluate(ctx, fmt.Sprintf("window.scrollBy(0, %d)", amount)); err != nil {
			return Failf("Failed to scroll: %s", err), nil
		}
		direction := "down"
		if amount < 0 {
			direction = "up"
			amount = -amount
		}
		return Okf("Scrolled %s by %d pixels", direction, amount), nil

	case "screenshot":
		raw, err := t.call(ctx, "Page.captureScreenshot", nil)
		if err != nil {
			return Failf("Failed to capture screenshot: %s", err), nil
		}
		var shot struct {
			Data string `json:"data"`
		}
		if err := json.Unmarshal(raw, &shot); err != nil {
			return Failf("Failed to capture screenshot: %s", err), nil
		}
		return &Result{
			Success: true,
			Output:  fmt.Sprintf("Screenshot captured (base64 length: %d)", len(shot.Data)),
			Data:    map[string]any{"screenshot": shot.Data},
		}, nil

	case "refresh":
		if _, err := t.call(ctx, "Page.reload", nil); err != nil {
			return Failf("Failed to refresh: %s", err), nil
		}
		return Ok("Refreshed current page"), nil

	default:
		return Failf("Unknown action: %s", action), nil
	}
}

// Cleanup tears down the websocket connection, the browser process, and the
// temporary profile directory. Safe to call when no session was started.
func (t *BrowserUse) Cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	if t.cmd != nil && t.cmd.Process != nil {
		t.cmd.Process.Kill()
		t.cmd.Wait()
		t.cmd = nil
	}
	if t.profileDir != "" {
		os.RemoveAll(t.profileDir)
		t.profileDir = ""
	}
}

// ensureSession launches a headless browser with remote debugging enabled
// and connects to its first page target. Caller holds the mutex.
func (t *BrowserUse) ensureSession(ctx context.Context) error {
	if t.conn != nil {
		return nil
	}

	binary, err := findBrowserBinary()
	if err != nil {
		return err
	}

	port, err := freePort()
	if err != nil {
		return fmt.Errorf("allocate debugging port: %w", err)
	}

	profileDir, err := os.MkdirTemp("", "uranus-browser-*")
	if err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}

	cmd := exec.Command(binary,
		"--headless=new",
		"--remote-debugging-port="+strconv.Itoa(port),
		"--user-data-dir="+profileDir,
		"--no-first-run",
		"--no-default-browser-check",
		"about:blank",
	)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(profileDir)
		return fmt.Errorf("start browser: %w", err)
	}

	wsURL, err := waitForDebugger(ctx, port)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(profileDir)
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		os.RemoveAll(profileDir)
		return fmt.Errorf("connect to debugger: %w", err)
	}

	t.cmd = cmd
	t.conn = conn
	t.port = port
	t.profileDir = profileDir
	t.logger.Info("browser session started",
		zap.String("binary", binary),
		zap.Int("port", port))
	return nil
}

type cdpError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type cdpResponse struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *cdpError       `json:"error"`
	Method string          `json:"method"`
}

// call sends one DevTools command and waits for its matching response,
// skipping interleaved protocol events. Caller holds the mutex.
func (t *BrowserUse) call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	id := t.msgID.Add(1)
	req := map[string]any{"id": id, "method": method}
	if params != nil {
		req["params"] = params
	}

	deadline := time.Now().Add(30 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	t.conn.SetWriteDeadline(deadline)
	t.conn.SetReadDeadline(deadline)

	if err := t.conn.WriteJSON(req); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	for {
		var resp cdpResponse
		if err := t.conn.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("%s: %w", method, err)
		}
		if resp.ID != id {
			continue // protocol event or stale response
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("%s: %s", method, resp.Error.Message)
		}
		return resp.Result, nil
	}
}

// evaluate runs a JavaScript expression and returns its value.
func (t *BrowserUse) evaluate(ctx context.Context, expression string) (any, error) {
	raw, err := t.call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    expression,
		"returnByValue": true,
	})
	if err != nil {
		return nil, err
	}

	var eval struct {
		Result struct {
			Value any `json:"value"`
		} `json:"result"`
		ExceptionDetails *struct {
			Text string `json:"text"`
		} `json:"exceptionDetails"`
	}
	if err := json.Unmarshal(raw, &eval); err != nil {
		return nil, err
	}
	if eval.ExceptionDetails != nil {
		return nil, fmt.Errorf("script exception: %s", eval.ExceptionDetails.Text)
	}
	return eval.Result.Value, nil
}

// evaluateText runs an expression expected to yield a string and truncates
// long content.
func (t *BrowserUse) evaluateText(ctx context.Context, expression string) (*Result, error) {
	value, err := t.evaluate(ctx, expression)
	if err != nil {
		return Failf("Failed to get page content: %s", err), nil
	}
	text, _ := value.(string)
	truncated := false
	if len(text) > maxContentLength {
		text = text[:maxContentLength]
		truncated = true
	}
	output := text
	if truncated {
		output += "\n... (truncated)"
	}
	return &Result{
		Success: true,
		Output:  output,
		Data:    map[string]any{"truncated": truncated},
	}, nil
}

func findBrowserBinary() (string, error) {
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "chrome"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no Chrome or Chromium binary found on PATH")
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitForDebugger polls the DevTools HTTP endpoint until a page target with
// a websocket URL appears.
func waitForDebugger(ctx context.Context, port int) (string, error) {
	endpoint := fmt.Sprintf("http://127.0.0.1:%d/json/list", port)
	deadline := time.Now().Add(10 * time.Second)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}

		resp, err := http.Get(endpoint)
		if err != nil {
			continue
		}
		var targets []struct {
			Type                 string `json:"type"`
			WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
		}
		decodeErr := json.NewDecoder(resp.Body).Decode(&targets)
		resp.Body.Close()
		if decodeErr != nil {
			continue
		}
		for _, target := range targets {
			if target.Type == "page" && target.WebSocketDebuggerURL != "" {
				return target.WebSocketDebuggerURL, nil
			}
		}
	}
	return "", fmt.Errorf("debugger did not become ready on port %d", port)
}
