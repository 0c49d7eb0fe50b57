// Package llm speaks to the remote model over the DeepSeek chat-completions
// API and parses its structured JSON replies.
package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/fitchmultz/deepseek-engineer/internal/convo"
)

const (
	DefaultBaseURL = "https://api.deepseek.com"
	DefaultModel   = "deepseek-reasoner"

	maxCompletionTokens = 8000
)

// Delta is one streamed fragment. Reasoning fragments are presentation-only;
// the final payload is assembled from content fragments.
type Delta struct {
	Reasoning bool
	Text      string
}

type Client struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
}

func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpc:   http.DefaultClient,
	}
}

func (c *Client) Model() string {
	return c.model
}

// SetModel switches the model for subsequent requests. Callers must not
// invoke it while a stream is in flight.
func (c *Client) SetModel(model string) {
	if model != "" {
		c.model = model
	}
}

type chatRequest struct {
	Model               string          `json:"model"`
	Messages            []convo.Message `json:"messages"`
	MaxCompletionTokens int             `json:"max_completion_tokens,omitempty"`
	Stream              bool            `json:"stream"`
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content          string `json:"content"`
			ReasoningContent string `json:"reasoning_content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Stream sends the full conversation and drains the response stream to
// completion, invoking onDelta for each fragment in arrival order. It
// returns the assembled final content; the caller parses it only after the
// stream is fully drained.
func (c *Client) Stream(ctx context.Context, messages []convo.Message, onDelta func(Delta)) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("DEEPSEEK_API_KEY is required")
	}

	payload := chatRequest{
		Model:               c.model,
		Messages:            messages,
		MaxCompletionTokens: maxCompletionTokens,
		Stream:              true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("deepseek error: %s", strings.TrimSpace(string(b)))
	}

	scanner := bufio.NewScanner(resp.Body)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	var out strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			break
		}
		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			return "", fmt.Errorf("deepseek error: %s", chunk.Error.Message)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta
		if delta.ReasoningContent != "" && onDelta != nil {
			onDelta(Delta{Reasoning: true, Text: delta.ReasoningContent})
		}
		if delta.Content != "" {
			out.WriteString(delta.Content)
			if onDelta != nil {
				onDelta(Delta{Text: delta.Content})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	return out.String(), nil
}
