// Package executor wires the pipeline stages into a single linear run per
// user utterance.
package executor

import (
	"context"
	"log"
	"time"

	"giziai-be/internal/constant"
	"giziai-be/pkg/rag/history"
	"giziai-be/pkg/rag/reformulate"
	"giziai-be/pkg/rag/relevance"
	"giziai-be/pkg/rag/response"
	"giziai-be/pkg/rag/retrieval"
)

// Retriever is what the pipeline needs from the retrieval layer.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]retrieval.Passage, error)
}

// Notifier carries failures to the operator channel. Nil is allowed.
type Notifier interface {
	NotifyFailure(stage string, sessionID string, err error)
}

// Result is everything one run produced. Logged reports whether the turn
// reached the history store.
type Result struct {
	Answer          string
	StandaloneQuery string
	Decision        relevance.Decision
	Passages        []retrieval.Passage
	Logged          bool
}

// Pipeline runs history -> reformulate -> retrieve -> gate -> generate ->
// persist. Every stage degrades instead of failing: the caller always gets
// an answer string, worst case the fixed refusal.
type Pipeline struct {
	reformulator *reformulate.Reformulator
	retriever    Retriever
	gate         *relevance.Gate
	generator    *response.Generator
	store        history.Store
	window       int
	modelTag     string
	notifier     Notifier
	logger       *log.Logger
}

func NewPipeline(
	reformulator *reformulate.Reformulator,
	retriever Retriever,
	gate *relevance.Gate,
	generator *response.Generator,
	store history.Store,
	window int,
	modelTag string,
	notifier Notifier,
	logger *log.Logger,
) *Pipeline {
	return &Pipeline{
		reformulator: reformulator,
		retriever:    retriever,
		gate:         gate,
		generator:    generator,
		store:        store,
		window:       window,
		modelTag:     modelTag,
		notifier:     notifier,
		logger:       logger,
	}
}

// Execute processes one utterance for one session. It persists exactly one
// turn per completed run. The only errors it returns are context
// cancellation before persistence; everything else degrades.
func (p *Pipeline) Execute(ctx context.Context, sessionID string, input string) (*Result, error) {
	turns, err := p.store.Read(ctx, sessionID)
	if err != nil {
		p.logger.Printf("[PIPELINE] history read failed for session %s, continuing with empty history: %v", sessionID, err)
		turns = nil
	}

	windowed := history.Window(history.MessagesFromTurns(turns), p.window)

	standalone := p.reformulator.Standalone(ctx, windowed, input)
	p.logger.Printf("[PIPELINE] standalone query: %s", truncate(standalone, 80))

	var passages []retrieval.Passage
	passages, err = p.retriever.Retrieve(ctx, standalone)
	if err != nil {
		p.logger.Printf("[PIPELINE] retrieval failed, continuing with empty context: %v", err)
		passages = nil
	}
	contextText := retrieval.JoinPassages(passages)

	decision := p.gate.Check(standalone, contextText)
	p.logger.Printf("[PIPELINE] relevance: %v (%s)", decision.Relevant, decision.Reason)

	var answer string
	if decision.Relevant {
		answer = p.generator.Generate(ctx, sessionID, standalone, contextText)
	} else {
		answer = constant.FallbackAnswer
	}

	result := &Result{
		Answer:          answer,
		StandaloneQuery: standalone,
		Decision:        decision,
		Passages:        passages,
	}

	// A canceled request must not write a turn the caller never received.
	if ctx.Err() != nil {
		p.logger.Printf("[PIPELINE] context done before persistence, turn not logged: %v", ctx.Err())
		return result, ctx.Err()
	}

	turn := history.Turn{
		SessionID: sessionID,
		UserQuery: input,
		Answer:    answer,
		ModelTag:  p.modelTag,
		Sources:   sourceRefs(passages),
		CreatedAt: time.Now(),
	}
	if err := p.store.Append(ctx, turn); err != nil {
		p.logger.Printf("[PIPELINE] turn append failed for session %s: %v", sessionID, err)
		if p.notifier != nil {
			p.notifier.NotifyFailure("persistence", sessionID, err)
		}
		return result, nil
	}

	result.Logged = true
	return result, nil
}

func sourceRefs(passages []retrieval.Passage) []history.SourceRef {
	if len(passages) == 0 {
		return nil
	}
	refs := make([]history.SourceRef, 0, len(passages))
	for _, passage := range passages {
		refs = append(refs, history.SourceRef{
			ID:    passage.SourceID,
			Score: passage.Score,
		})
	}
	return refs
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
