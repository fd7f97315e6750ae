package providers

import (
	"context"
	"fmt"

	"github.com/akjilan/digital-ecommerce/models"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.0-flash"

// GeminiProvider implements AssistantGateway using Google's Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new GeminiProvider. An empty baseURL uses the
// public Gemini endpoint.
func NewGeminiProvider(ctx context.Context, apiKey, model, baseURL string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = geminiDefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Name returns the provider name.
func (g *GeminiProvider) Name() string { return "gemini" }

// Complete runs one GenerateContent call with the instructions as the system
// instruction.
func (g *GeminiProvider) Complete(ctx context.Context, instructions string, turns []models.PromptMessage, userMessage string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		geminiContents(turns, userMessage),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
			Temperature:       genai.Ptr[float32](DefaultTemperature),
			MaxOutputTokens:   DefaultMaxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini Complete: %w", err)
	}
	return result.Text(), nil
}

// geminiContents maps the conversation onto Gemini roles, where the
// assistant speaks as "model".
func geminiContents(turns []models.PromptMessage, userMessage string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns)+1)
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Role == models.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Content, role))
	}
	return append(contents, genai.NewContentFromText(userMessage, genai.RoleUser))
}
