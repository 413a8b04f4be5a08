package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// OpenRouterClient calls a chat-completions endpoint on OpenRouter
// (OpenAI-compatible). This is the primary extraction backend, pointed at a
// DeepSeek model by default.
type OpenRouterClient struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

// NewOpenRouterClient creates an OpenRouter client. If apiKey is empty it
// falls back to OPENROUTER_API_KEY, then DEEPSEEK_API_KEY. A missing key is an
// error here so the caller can disable just this backend.
func NewOpenRouterClient(apiKey, model string) (*OpenRouterClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("DEEPSEEK_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("openrouter: missing API key")
	}
	if model == "" {
		model = "deepseek/deepseek-chat:free"
	}
	return &OpenRouterClient{
		http:    &http.Client{Timeout: 60 * time.Second},
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://openrouter.ai/api/v1/chat/completions",
	}, nil
}

func (c *OpenRouterClient) Name() string { return "OpenRouter:" + c.model }

// SetBaseURL overrides the endpoint, used by tests.
func (c *OpenRouterClient) SetBaseURL(u string) { c.baseURL = u }

type orChatReq struct {
	Model       string      `json:"model"`
	Messages    []orMessage `json:"messages"`
	Temperature float32     `json:"temperature"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

type orMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type orChatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a system/user message pair and returns the
// completion text verbatim.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := orChatReq{
		Model: c.model,
		Messages: []orMessage{
			{Role: "system", Content: systemPreamble},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.1,
		MaxTokens:   4000,
	}
	b, _ := json.Marshal(reqBody)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Title", "STIX Extractor")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openrouter: unexpected status %s", resp.Status)
	}
	var out orChatResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return out.Choices[0].Message.Content, nil
}
