//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"giziai-be/internal/config"
	"giziai-be/pkg/llm"
	"giziai-be/pkg/llm/factory"
)

// Quick smoke check for the chat backend. Run with:
//
//	go run scripts/test_llm_chat.go
func main() {
	cfg := config.Load()
	fmt.Printf("Loaded Config > LLM Provider: %s (%s)\n", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	provider, err := factory.NewLLMProvider(cfg)
	if err != nil {
		log.Fatalf("Error building LLM provider: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	start := time.Now()
	answer, err := provider.Chat(ctx, []llm.Message{
		{Role: "user", Content: "Sebutkan tiga sumber protein untuk balita."},
	},
		llm.WithTemperature(cfg.Ai.Temperature),
		llm.WithMaxTokens(256),
	)
	if err != nil {
		log.Fatalf("Error calling chat: %v", err)
	}

	fmt.Printf("\nAnswer (%.1fs):\n%s\n", time.Since(start).Seconds(), answer)
}
