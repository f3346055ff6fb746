package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/config"
)

// NewClient builds the provider client selected by the config. The ollama
// provider (local daemon or Ollama Cloud) is reached through its
// OpenAI-compatible API under /v1.
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, timeout), nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiClient(ctx, cfg.APIKey, cfg.Model)

	case "ollama":
		baseURL := strings.TrimRight(cfg.BaseURL, "/")
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL += "/v1"
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Model, baseURL, timeout), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
