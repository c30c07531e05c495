package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"giziai-be/pkg/embedding"
	"giziai-be/pkg/llm"
	"giziai-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
)

// Requires a local Ollama server. Set OLLAMA_BASE_URL (and optionally
// OLLAMA_MODEL / OLLAMA_EMBED_MODEL) to run.
func TestOllamaChat(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_MODEL")
	if model == "" {
		model = "gemma:2b"
	}

	provider := ollama.NewOllamaProvider(baseURL, model)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	answer, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "Sebutkan satu manfaat sarapan dalam satu kalimat."},
	}, llm.WithTemperature(0.2), llm.WithMaxTokens(128))

	assert.NoError(t, err)
	assert.NotEmpty(t, answer)
	t.Logf("Ollama answer: %s", answer)
}

func TestOllamaEmbedding(t *testing.T) {
	baseURL := os.Getenv("OLLAMA_BASE_URL")
	if baseURL == "" {
		t.Skip("Skipping integration test: OLLAMA_BASE_URL not set")
	}
	model := os.Getenv("OLLAMA_EMBED_MODEL")
	if model == "" {
		model = "nomic-embed-text"
	}

	provider := embedding.NewOllamaProvider(baseURL, model)

	resp, err := provider.Generate("gizi seimbang untuk balita", "RETRIEVAL_QUERY")
	assert.NoError(t, err)
	if assert.NotNil(t, resp) {
		assert.NotEmpty(t, resp.Embedding.Values)
	}
}
