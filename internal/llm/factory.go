package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/travelmate/internal/config"
	"github.com/agenthands/travelmate/internal/logger"
)

func NewClient(ctx context.Context, cfg config.LLMConfig, log *logger.Logger) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)
	opts := Options{Temperature: cfg.Temperature, MaxTokens: cfg.MaxTokens}

	var c LLMClient
	switch provider {
	case "openai":
		c = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, opts)

	case "gemini":
		g, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, opts)
		if err != nil {
			return nil, err
		}
		c = g

	case "claude":
		c = NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, opts)

	case "ollama":
		// Ollama speaks the OpenAI chat API under /v1
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = "ollama" // ignored by Ollama, required by the client
		}
		if log != nil {
			log.Info("using Ollama through the OpenAI-compatible API", "base_url", baseURL)
		}
		c = NewOpenAIClient(apiKey, cfg.Model, baseURL, opts)

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}

	return &timed{next: c, provider: provider}, nil
}
