package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/akjilan/digital-ecommerce/models"
)

// Generation parameters shared by every gateway.
const (
	DefaultTemperature = 0.4
	DefaultMaxTokens   = 400
)

// AssistantGateway defines the interface all language model integrations must implement.
type AssistantGateway interface {
	// Complete sends the instructions, prior turns and the new user message
	// and returns the raw model output.
	Complete(ctx context.Context, instructions string, turns []models.PromptMessage, userMessage string) (string, error)

	// Name identifies the gateway in logs and metrics.
	Name() string
}

// GatewayConfig selects and configures an AssistantGateway.
type GatewayConfig struct {
	Provider      string
	GroqAPIKey    string
	GroqBaseURL   string
	GroqModel     string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
}

// NewGateway builds the gateway named by cfg.Provider. Groq is the default.
func NewGateway(ctx context.Context, cfg GatewayConfig) (AssistantGateway, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "groq":
		return NewGroqProvider(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel), nil
	case "gemini":
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", cfg.Provider)
	}
}
