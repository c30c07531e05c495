//go:build ignore

package main

import (
	"fmt"
	"log"

	"giziai-be/internal/config"
	"giziai-be/pkg/embedding"
)

// Quick smoke check for the embedding backend. Run with:
//
//	go run scripts/test_embedding.go
func main() {
	cfg := config.Load()
	fmt.Printf("Loaded Config > Embedding Provider: %s\n", cfg.Ai.EmbeddingProvider)
	fmt.Printf("Loaded Config > Ollama URL: %s\n", cfg.Ai.OllamaBaseURL)
	fmt.Printf("Loaded Config > Embedding Model: %s\n", cfg.Ai.EmbeddingModel)

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		provider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
	} else {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	}

	text := "Stunting adalah kondisi gagal tumbuh pada balita akibat kekurangan gizi kronis."
	fmt.Printf("\nGenerating embedding for: %q\n", text)

	resp, err := provider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		log.Fatalf("Error generating embedding: %v", err)
	}

	values := resp.Embedding.Values
	fmt.Printf("Got %d dimensions\n", len(values))
	if len(values) > 5 {
		fmt.Printf("First 5: %v\n", values[:5])
	}

	var norm float64
	for _, v := range values {
		norm += float64(v) * float64(v)
	}
	fmt.Printf("Squared norm: %.6f (should be ~1.0 for normalized vectors)\n", norm)
}
