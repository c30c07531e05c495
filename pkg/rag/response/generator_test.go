package response

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"giziai-be/internal/constant"
	"giziai-be/pkg/llm"
)

type fakeLLM struct {
	answer    string
	err       error
	gotPrompt string
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	return f.answer, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type recordingNotifier struct {
	stage     string
	sessionID string
	err       error
	called    bool
}

func (r *recordingNotifier) NotifyFailure(stage string, sessionID string, err error) {
	r.called = true
	r.stage = stage
	r.sessionID = sessionID
	r.err = err
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestGeneratePromptCarriesContextAndQuestion(t *testing.T) {
	model := &fakeLLM{answer: "Stunting adalah kondisi gagal tumbuh pada balita."}
	g := NewGenerator(model, 15, nil, nil, discardLogger())

	answer := g.Generate(context.Background(), "sess-1", "Apa itu stunting?", "Stunting adalah gagal tumbuh kronis.")

	if answer != model.answer {
		t.Errorf("Generate = %q, want model answer", answer)
	}
	if !strings.Contains(model.gotPrompt, "Stunting adalah gagal tumbuh kronis.") {
		t.Errorf("prompt missing context: %q", model.gotPrompt)
	}
	if !strings.Contains(model.gotPrompt, "Apa itu stunting?") {
		t.Errorf("prompt missing question: %q", model.gotPrompt)
	}
}

func TestGenerateShortAnswerBecomesRefusal(t *testing.T) {
	model := &fakeLLM{answer: "  Tidak.  "}
	g := NewGenerator(model, 15, nil, nil, discardLogger())

	answer := g.Generate(context.Background(), "sess-1", "Apa itu stunting?", "konteks")
	if answer != constant.FallbackAnswer {
		t.Errorf("Generate = %q, want refusal", answer)
	}
}

func TestGenerateShortAnswerContainingRefusalKept(t *testing.T) {
	// minAnswerLen raised past the refusal length so only the contains
	// check can keep the answer.
	long := len(constant.FallbackAnswer) + 10
	model := &fakeLLM{answer: strings.ToUpper(constant.FallbackAnswer)}
	g := NewGenerator(model, long, nil, nil, discardLogger())

	answer := g.Generate(context.Background(), "sess-1", "q", "konteks")
	if answer != strings.ToUpper(constant.FallbackAnswer) {
		t.Errorf("Generate = %q, want the model's own refusal wording kept", answer)
	}
}

func TestGenerateModelErrorNotifiesAndRefuses(t *testing.T) {
	modelErr := errors.New("connection refused")
	notifier := &recordingNotifier{}
	g := NewGenerator(&fakeLLM{err: modelErr}, 15, nil, notifier, discardLogger())

	answer := g.Generate(context.Background(), "sess-9", "q", "konteks")

	if answer != constant.FallbackAnswer {
		t.Errorf("Generate = %q, want refusal", answer)
	}
	if !notifier.called {
		t.Fatal("notifier not called on model error")
	}
	if notifier.stage != "generation" || notifier.sessionID != "sess-9" {
		t.Errorf("notifier got (%s, %s), want (generation, sess-9)", notifier.stage, notifier.sessionID)
	}
	if !errors.Is(notifier.err, modelErr) {
		t.Errorf("notifier err = %v, want %v", notifier.err, modelErr)
	}
}

func TestGenerateNilNotifierSafe(t *testing.T) {
	g := NewGenerator(&fakeLLM{err: errors.New("down")}, 15, nil, nil, discardLogger())

	answer := g.Generate(context.Background(), "sess-1", "q", "konteks")
	if answer != constant.FallbackAnswer {
		t.Errorf("Generate = %q, want refusal", answer)
	}
}
