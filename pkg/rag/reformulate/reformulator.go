// Package reformulate rewrites a follow-up question into a standalone one
// using the conversation history.
package reformulate

import (
	"context"
	"log"
	"strings"

	"giziai-be/internal/constant"
	"giziai-be/pkg/llm"
)

// rolePrefixes are labels small models like to prepend to their output.
var rolePrefixes = []string{
	"ai:",
	"jawaban:",
	"output anda:",
	"output saya:",
	"pertanyaan:",
}

// Reformulator turns "how about for toddlers?" plus history into a question
// that can be embedded on its own.
type Reformulator struct {
	llmProvider llm.LLMProvider
	maxWords    int
	logger      *log.Logger
}

func NewReformulator(llmProvider llm.LLMProvider, maxWords int, logger *log.Logger) *Reformulator {
	return &Reformulator{
		llmProvider: llmProvider,
		maxWords:    maxWords,
		logger:      logger,
	}
}

// Standalone returns the standalone form of input. It never fails: any model
// error or suspicious output falls back to the raw input, so the retriever
// always gets something to work with.
func (r *Reformulator) Standalone(ctx context.Context, chatHistory []llm.Message, input string) string {
	if len(chatHistory) == 0 {
		return input
	}

	messages := make([]llm.Message, 0, len(chatHistory)+2)
	messages = append(messages, llm.Message{
		Role:    "system",
		Content: constant.ContextualizeInstruction,
	})
	messages = append(messages, chatHistory...)
	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: input,
	})

	raw, err := r.llmProvider.Chat(ctx, messages)
	if err != nil {
		r.logger.Printf("[REFORMULATE] model call failed, using raw input: %v", err)
		return input
	}

	candidate := stripRolePrefixes(strings.TrimSpace(raw))
	if candidate == "" {
		return input
	}

	// Answer-leak guard. A rambling output, or one that is neither a
	// question nor an echo of the input, is almost certainly the model
	// answering instead of reformulating.
	if len(strings.Fields(candidate)) > r.maxWords {
		r.logger.Printf("[REFORMULATE] output too long (%d words), using raw input", len(strings.Fields(candidate)))
		return input
	}
	if !strings.HasSuffix(candidate, "?") && !strings.EqualFold(candidate, input) {
		r.logger.Printf("[REFORMULATE] output looks like an answer, using raw input")
		return input
	}

	return candidate
}

func stripRolePrefixes(s string) string {
	for changed := true; changed; {
		changed = false
		lower := strings.ToLower(s)
		for _, prefix := range rolePrefixes {
			if strings.HasPrefix(lower, prefix) {
				s = strings.TrimSpace(s[len(prefix):])
				changed = true
				break
			}
		}
	}
	return s
}
