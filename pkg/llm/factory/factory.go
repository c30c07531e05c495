package factory

import (
	"fmt"

	"giziai-be/internal/config"
	"giziai-be/pkg/llm"
	"giziai-be/pkg/llm/llamacpp"
	"giziai-be/pkg/llm/ollama"
)

// NewLLMProvider builds the configured chat backend.
func NewLLMProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Ai.LLMProvider {
	case "ollama":
		return ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel), nil
	case "llamacpp":
		return llamacpp.NewLlamaCppProvider(cfg.Ai.LlamaServerURL, cfg.Ai.LLMModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Ai.LLMProvider)
	}
}
