package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akjilan/digital-ecommerce/models"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.1-8b-instant"
)

// GroqProvider implements AssistantGateway against Groq's OpenAI-compatible
// chat completions API.
type GroqProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewGroqProvider creates a new GroqProvider. Empty baseURL and model fall
// back to the public endpoint and the default model. The request deadline
// comes from the caller's context.
func NewGroqProvider(apiKey, baseURL, model string) *GroqProvider {
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	if model == "" {
		model = groqDefaultModel
	}
	return &GroqProvider{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{},
	}
}

// ---- Groq API request/response structs ----

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqChatResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// Name returns the provider name.
func (g *GroqProvider) Name() string { return "groq" }

// Complete runs one chat completion. A response with no choices yields an
// empty string, which callers treat as a failed reply.
func (g *GroqProvider) Complete(ctx context.Context, instructions string, turns []models.PromptMessage, userMessage string) (string, error) {
	messages := make([]groqMessage, 0, len(turns)+2)
	messages = append(messages, groqMessage{Role: "system", Content: instructions})
	for _, t := range turns {
		messages = append(messages, groqMessage{Role: string(t.Role), Content: t.Content})
	}
	messages = append(messages, groqMessage{Role: string(models.ChatRoleUser), Content: userMessage})

	reqBody := groqChatRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}

	var resp groqChatResponse
	if err := g.doRequest(ctx, http.MethodPost, "/chat/completions", reqBody, &resp); err != nil {
		return "", fmt.Errorf("groq Complete: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// ---- HTTP helper ----

func (g *GroqProvider) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("groq API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
