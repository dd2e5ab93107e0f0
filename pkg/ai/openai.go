package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/advanced-insight/advisory-backoffice/pkg/config"
)

// factExtractionSystemPrompt instructs the model to separate objective from
// subjective statements in an advisory meeting transcript.
const factExtractionSystemPrompt = "You are a financial analyst. Extract hard facts " +
	"(numbers, dates, commitments, deadlines) and soft facts (opinions, impressions, " +
	"sentiments) from the following transcript of a financial meeting. Return your " +
	"response as a JSON object with two properties: 'hard_facts' (array of strings) " +
	"and 'soft_facts' (array of strings)."

// OpenAIClient is a minimal client for OpenAI-compatible chat completion
// endpoints, used for fact extraction and prose composition.
type OpenAIClient struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// NewOpenAIClient creates a chat client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("OPENAI_API_URL")
		if base == "" {
			base = "https://api.openai.com"
		}
	}

	model := "gpt-4o"
	maxTokens := 1200
	timeout := 30 * time.Second
	if cfg != nil {
		if cfg.Model != "" {
			model = cfg.Model
		}
		if cfg.MaxTokens > 0 {
			maxTokens = cfg.MaxTokens
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}

	return &OpenAIClient{
		apiKey:    apiKey,
		baseURL:   base,
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one message in a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractFacts asks the model to split the transcript into hard and soft
// facts and returns the raw assistant content. Callers parse it and decide
// how to degrade on unparsable output.
func (c *OpenAIClient) ExtractFacts(ctx context.Context, transcript string) (string, error) {
	return c.chat(ctx, []ChatMessage{
		{Role: "system", Content: factExtractionSystemPrompt},
		{Role: "user", Content: transcript},
	}, 0.2)
}

// Compose sends a system instruction plus a user prompt and returns the
// assistant's free-form prose, capped by the configured token budget.
func (c *OpenAIClient) Compose(ctx context.Context, system, prompt string) (string, error) {
	return c.chat(ctx, []ChatMessage{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	}, 0.5)
}

func (c *OpenAIClient) chat(ctx context.Context, messages []ChatMessage, temperature float64) (string, error) {
	reqBody := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("openai returned status %d", resp.StatusCode)
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from openai")
	}
	return cr.Choices[0].Message.Content, nil
}
