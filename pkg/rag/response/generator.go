// Package response turns a question plus retrieved context into a final
// answer, with a fixed refusal when the model cannot or should not answer.
package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"giziai-be/internal/constant"
	"giziai-be/pkg/llm"
)

// Notifier receives model failures worth an operator's attention. A nil
// notifier is allowed.
type Notifier interface {
	NotifyFailure(stage string, sessionID string, err error)
}

// Generator produces grounded answers. Generate never returns an error: a
// failed or degenerate model call yields the refusal sentence instead.
type Generator struct {
	llmProvider  llm.LLMProvider
	minAnswerLen int
	sampling     []llm.Option
	notifier     Notifier
	logger       *log.Logger
}

func NewGenerator(
	llmProvider llm.LLMProvider,
	minAnswerLen int,
	sampling []llm.Option,
	notifier Notifier,
	logger *log.Logger,
) *Generator {
	return &Generator{
		llmProvider:  llmProvider,
		minAnswerLen: minAnswerLen,
		sampling:     sampling,
		notifier:     notifier,
		logger:       logger,
	}
}

func (g *Generator) Generate(ctx context.Context, sessionID string, question string, contextText string) string {
	prompt := fmt.Sprintf(constant.AnswerPromptTemplate, contextText, question)

	raw, err := g.llmProvider.Generate(ctx, prompt, g.sampling...)
	if err != nil {
		g.logger.Printf("[GENERATION] model call failed: %v", err)
		if g.notifier != nil {
			g.notifier.NotifyFailure("generation", sessionID, err)
		}
		return constant.FallbackAnswer
	}

	answer := strings.TrimSpace(raw)

	// A near-empty answer means the model gave up without using the
	// refusal wording it was told to use. Substitute it.
	if len(answer) < g.minAnswerLen &&
		!strings.Contains(strings.ToLower(answer), strings.ToLower(constant.FallbackAnswer)) {
		g.logger.Printf("[GENERATION] answer too short (%d chars), substituting refusal", len(answer))
		return constant.FallbackAnswer
	}

	return answer
}
