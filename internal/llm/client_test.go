package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/futureHQ/uranus/internal/config"
	"github.com/futureHQ/uranus/internal/schema"
)

func testSettings(baseURL string) config.LLMSettings {
	return config.LLMSettings{
		Model:       "gpt-3.5-turbo",
		BaseURL:     baseURL,
		APIKey:      "test-key",
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

func TestAskReturnsCompletion(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "The answer is 4."}}]}`))
	}))
	defer srv.Close()

	c := New(testSettings(srv.URL), nil)
	got := c.Ask(context.Background(), []schema.Message{
		schema.UserMessage("what is 2+2?"),
	}, "You are a calculator.", nil)

	if got != "The answer is 4." {
		t.Errorf("Ask() = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "what is 2+2?" {
		t.Errorf("wire messages = %+v", gotReq.Messages)
	}
	if gotReq.Temperature != 0.7 || gotReq.MaxTokens != 256 {
		t.Errorf("request params = %+v", gotReq)
	}
}

func TestAskTemperatureOverride(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer srv.Close()

	c := New(testSettings(srv.URL), nil)
	temp := 0.1
	c.Ask(context.Background(), nil, "", &temp)

	if gotReq.Temperature != 0.1 {
		t.Errorf("temperature = %v, want 0.1", gotReq.Temperature)
	}
}

func TestAskFailuresAreInBand(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		c := New(config.LLMSettings{Model: "m"}, nil)
		if got := c.Ask(context.Background(), nil, "", nil); got != "LLM not initialized properly." {
			t.Errorf("Ask() = %q", got)
		}
	})

	t.Run("non-OK status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := New(testSettings(srv.URL), nil)
		if got := c.Ask(context.Background(), nil, "", nil); got != "Error: LLM returned status 429" {
			t.Errorf("Ask() = %q", got)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices": []}`))
		}))
		defer srv.Close()

		c := New(testSettings(srv.URL), nil)
		if got := c.Ask(context.Background(), nil, "", nil); got != "Error: no response from LLM" {
			t.Errorf("Ask() = %q", got)
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		c := New(testSettings("http://127.0.0.1:1"), nil)
		got := c.Ask(context.Background(), nil, "", nil)
		if len(got) < 7 || got[:7] != "Error: " {
			t.Errorf("Ask() = %q, want an Error: prefix", got)
		}
	})
}

func TestFormatMessages(t *testing.T) {
	msgs := []schema.Message{
		schema.UserMessage("hi"),
		schema.ToolMessage("done", "terminal"),
	}

	formatted := formatMessages(msgs, "sys")
	if len(formatted) != 3 {
		t.Fatalf("len = %d", len(formatted))
	}
	if formatted[0].Role != "system" || formatted[0].Content != "sys" {
		t.Errorf("system message = %+v", formatted[0])
	}
	if formatted[2].Name != "terminal" {
		t.Errorf("tool message = %+v", formatted[2])
	}

	if got := formatMessages(msgs, ""); len(got) != 2 {
		t.Errorf("no system prompt: len = %d", len(got))
	}
}
