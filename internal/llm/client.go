// Package llm provides the chat-completions client consumed by the agent.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/futureHQ/uranus/internal/config"
	"github.com/futureHQ/uranus/internal/schema"
	"go.uber.org/zap"
)

// Client talks to an OpenAI-compatible chat-completions endpoint.
//
// Ask never returns an error: the conversational contract requires every
// failure to surface in-band as text, so transport and protocol errors come
// back as "Error: ..." strings and a client without credentials answers
// "LLM not initialized properly.".
type Client struct {
	model       string
	baseURL     string
	apiKey      string
	maxTokens   int
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// New creates a client from an LLM profile.
func New(settings config.LLMSettings, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		model:       settings.Model,
		baseURL:     settings.BaseURL,
		apiKey:      settings.APIKey,
		maxTokens:   settings.MaxTokens,
		temperature: settings.Temperature,
		client:      &http.Client{Timeout: 120 * time.Second},
		logger:      logger,
	}
}

// Model reports the configured model name.
func (c *Client) Model() string { return c.model }

// BaseURL reports the configured endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends the conversation to the LLM and returns a single completion.
// An optional system prompt is prepended as a synthetic leading system
// message; a nil temperature uses the profile default.
func (c *Client) Ask(ctx context.Context, messages []schema.Message, systemPrompt string, temperature *float64) string {
	if c.baseURL == "" || c.apiKey == "" {
		return "LLM not initialized properly."
	}

	temp := c.temperature
	if temperature != nil {
		temp = *temperature
	}

	req := chatRequest{
		Model:       c.model,
		Messages:    formatMessages(messages, systemPrompt),
		Temperature: temp,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("LLM request failed", zap.Error(err))
		return fmt.Sprintf("Error: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("LLM returned non-OK status", zap.Int("status", resp.StatusCode))
		return fmt.Sprintf("Error: LLM returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return fmt.Sprintf("Error: %s", err)
	}
	if len(chatResp.Choices) == 0 {
		return "Error: no response from LLM"
	}
	return chatResp.Choices[0].Message.Content
}

// formatMessages converts conversation messages to the wire shape,
// prepending the system prompt when present.
func formatMessages(messages []schema.Message, systemPrompt string) []chatMessage {
	formatted := make([]chatMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		formatted = append(formatted, chatMessage{Role: string(schema.RoleSystem), Content: systemPrompt})
	}
	for _, m := range messages {
		formatted = append(formatted, chatMessage{
			Role:    string(m.Role),
			Content: m.Content,
			Name:    m.Name,
		})
	}
	return formatted
}
