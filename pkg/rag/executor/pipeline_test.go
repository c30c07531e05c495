package executor

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"giziai-be/internal/constant"
	"giziai-be/pkg/llm"
	"giziai-be/pkg/rag/history"
	"giziai-be/pkg/rag/reformulate"
	"giziai-be/pkg/rag/relevance"
	"giziai-be/pkg/rag/response"
	"giziai-be/pkg/rag/retrieval"
)

type fakeLLM struct {
	chatAnswer  string
	chatErr     error
	genAnswer   string
	genErr      error
	gotMessages []llm.Message
	chatCalls   int
	genCalls    int
}

func (f *fakeLLM) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	f.chatCalls++
	f.gotMessages = messages
	if f.chatErr != nil {
		return "", f.chatErr
	}
	return f.chatAnswer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.genCalls++
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.genAnswer, nil
}

type fakeStore struct {
	turns     []history.Turn
	readErr   error
	appendErr error
	appended  []history.Turn
}

func (f *fakeStore) Read(ctx context.Context, sessionID string) ([]history.Turn, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.turns, nil
}

func (f *fakeStore) Append(ctx context.Context, turn history.Turn) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, turn)
	return nil
}

type fakeRetriever struct {
	passages []retrieval.Passage
	err      error
	gotQuery string
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string) ([]retrieval.Passage, error) {
	f.gotQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.passages, nil
}

type recordingNotifier struct {
	stage     string
	sessionID string
	called    bool
}

func (r *recordingNotifier) NotifyFailure(stage string, sessionID string, err error) {
	r.called = true
	r.stage = stage
	r.sessionID = sessionID
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestPipeline(model *fakeLLM, retriever Retriever, store history.Store, notifier Notifier, window int) *Pipeline {
	logger := discardLogger()
	return NewPipeline(
		reformulate.NewReformulator(model, 30, logger),
		retriever,
		relevance.NewGate(50, 1),
		response.NewGenerator(model, 15, nil, nil, logger),
		store,
		window,
		"test-model",
		notifier,
		logger,
	)
}

var stuntingPassages = []retrieval.Passage{
	{Text: "Stunting adalah kondisi gagal tumbuh kronis pada balita akibat kekurangan gizi.", SourceID: "doc-1", Score: 0.91},
	{Text: "Pencegahan stunting dimulai dari seribu hari pertama kehidupan anak.", SourceID: "doc-2", Score: 0.84},
}

func TestExecuteHappyPath(t *testing.T) {
	model := &fakeLLM{genAnswer: "Stunting adalah kondisi gagal tumbuh kronis pada balita."}
	store := &fakeStore{}
	retriever := &fakeRetriever{passages: stuntingPassages}
	p := newTestPipeline(model, retriever, store, nil, 4)

	result, err := p.Execute(context.Background(), "sess-1", "Apa itu stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Answer != model.genAnswer {
		t.Errorf("answer = %q, want model answer", result.Answer)
	}
	// Empty history means the input is already standalone and no chat
	// call is made.
	if result.StandaloneQuery != "Apa itu stunting?" {
		t.Errorf("standalone = %q", result.StandaloneQuery)
	}
	if model.chatCalls != 0 {
		t.Errorf("reformulation model called %d times on empty history", model.chatCalls)
	}
	if !result.Decision.Relevant {
		t.Errorf("decision not relevant: %s", result.Decision.Reason)
	}
	if !result.Logged {
		t.Error("turn not logged")
	}
	if len(store.appended) != 1 {
		t.Fatalf("appended %d turns, want 1", len(store.appended))
	}
	turn := store.appended[0]
	if turn.UserQuery != "Apa itu stunting?" {
		t.Errorf("persisted user query = %q, want raw input", turn.UserQuery)
	}
	if turn.Answer != model.genAnswer || turn.SessionID != "sess-1" || turn.ModelTag != "test-model" {
		t.Errorf("persisted turn = %+v", turn)
	}
	if len(turn.Sources) != 2 || turn.Sources[0].ID != "doc-1" {
		t.Errorf("persisted sources = %+v", turn.Sources)
	}
}

func TestExecuteEmptyRetrievalRefuses(t *testing.T) {
	model := &fakeLLM{genAnswer: "should never be used"}
	store := &fakeStore{}
	p := newTestPipeline(model, &fakeRetriever{}, store, nil, 4)

	result, err := p.Execute(context.Background(), "sess-1", "Apa itu stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Answer != constant.FallbackAnswer {
		t.Errorf("answer = %q, want refusal", result.Answer)
	}
	if result.Decision.Relevant {
		t.Error("empty context marked relevant")
	}
	if model.genCalls != 0 {
		t.Errorf("generator model called %d times past a closed gate", model.genCalls)
	}
	// The refusal turn is still persisted.
	if !result.Logged || len(store.appended) != 1 {
		t.Errorf("refusal turn not persisted: logged=%v appended=%d", result.Logged, len(store.appended))
	}
	if store.appended[0].Answer != constant.FallbackAnswer {
		t.Errorf("persisted answer = %q", store.appended[0].Answer)
	}
}

func TestExecuteWindowsHistory(t *testing.T) {
	store := &fakeStore{turns: []history.Turn{
		{UserQuery: "q1", Answer: "a1"},
		{UserQuery: "q2", Answer: "a2"},
		{UserQuery: "q3", Answer: "a3"},
	}}
	model := &fakeLLM{
		chatAnswer: "Bagaimana cara mencegah stunting?",
		genAnswer:  "Pencegahan dimulai dari seribu hari pertama kehidupan.",
	}
	p := newTestPipeline(model, &fakeRetriever{passages: stuntingPassages}, store, nil, 4)

	if _, err := p.Execute(context.Background(), "sess-1", "Bagaimana mencegahnya?"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	// system + 4 windowed history messages + current input. Three turns
	// yield six messages, the window keeps the most recent four.
	if len(model.gotMessages) != 6 {
		t.Fatalf("reformulator got %d messages, want 6", len(model.gotMessages))
	}
	if model.gotMessages[0].Role != "system" {
		t.Errorf("first message role = %s", model.gotMessages[0].Role)
	}
	if model.gotMessages[1].Content != "q2" {
		t.Errorf("window starts at %q, want q2", model.gotMessages[1].Content)
	}
	if model.gotMessages[4].Content != "a3" {
		t.Errorf("window ends at %q, want a3", model.gotMessages[4].Content)
	}
	last := model.gotMessages[5]
	if last.Role != constant.ChatMessageRoleUser || last.Content != "Bagaimana mencegahnya?" {
		t.Errorf("last message = %+v", last)
	}
}

func TestExecuteAnswerLeakReverted(t *testing.T) {
	store := &fakeStore{turns: []history.Turn{{UserQuery: "Apa itu stunting?", Answer: "Gagal tumbuh kronis."}}}
	model := &fakeLLM{
		chatAnswer: "Jawaban: stunting adalah kondisi gagal tumbuh pada balita",
		genAnswer:  "Pencegahan dimulai dari seribu hari pertama kehidupan.",
	}
	retriever := &fakeRetriever{passages: stuntingPassages}
	p := newTestPipeline(model, retriever, store, nil, 4)

	result, err := p.Execute(context.Background(), "sess-1", "Bagaimana mencegah stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.StandaloneQuery != "Bagaimana mencegah stunting?" {
		t.Errorf("standalone = %q, want raw input after leak guard", result.StandaloneQuery)
	}
	if retriever.gotQuery != "Bagaimana mencegah stunting?" {
		t.Errorf("retriever queried with %q", retriever.gotQuery)
	}
}

func TestExecuteGeneratorErrorStillPersists(t *testing.T) {
	model := &fakeLLM{genErr: errors.New("model down")}
	store := &fakeStore{}
	p := newTestPipeline(model, &fakeRetriever{passages: stuntingPassages}, store, nil, 4)

	result, err := p.Execute(context.Background(), "sess-1", "Apa itu stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Answer != constant.FallbackAnswer {
		t.Errorf("answer = %q, want refusal", result.Answer)
	}
	if !result.Logged || len(store.appended) != 1 {
		t.Errorf("turn not persisted after generation failure: logged=%v appended=%d", result.Logged, len(store.appended))
	}
}

func TestExecuteHistoryReadFailureDegrades(t *testing.T) {
	model := &fakeLLM{genAnswer: "Stunting adalah kondisi gagal tumbuh kronis pada balita."}
	store := &fakeStore{readErr: errors.New("db down")}
	p := newTestPipeline(model, &fakeRetriever{passages: stuntingPassages}, store, nil, 4)

	result, err := p.Execute(context.Background(), "sess-1", "Apa itu stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Answer != model.genAnswer {
		t.Errorf("answer = %q, want model answer despite read failure", result.Answer)
	}
	if model.chatCalls != 0 {
		t.Error("failed read should behave as empty history")
	}
}

func TestExecuteRetrievalFailureDegrades(t *testing.T) {
	model := &fakeLLM{genAnswer: "should never be used"}
	store := &fakeStore{}
	p := newTestPipeline(model, &fakeRetriever{err: errors.New("index down")}, store, nil, 4)

	result, err := p.Execute(context.Background(), "sess-1", "Apa itu stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Answer != constant.FallbackAnswer {
		t.Errorf("answer = %q, want refusal on lost retrieval", result.Answer)
	}
	if !result.Logged {
		t.Error("turn should still be persisted")
	}
}

func TestExecuteCanceledContextSkipsPersistence(t *testing.T) {
	model := &fakeLLM{genAnswer: "Stunting adalah kondisi gagal tumbuh kronis pada balita."}
	store := &fakeStore{}
	p := newTestPipeline(model, &fakeRetriever{passages: stuntingPassages}, store, nil, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := p.Execute(ctx, "sess-1", "Apa itu stunting?")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if result == nil {
		t.Fatal("result should still carry the computed answer")
	}
	if result.Logged {
		t.Error("canceled run must not be marked logged")
	}
	if len(store.appended) != 0 {
		t.Errorf("canceled run appended %d turns", len(store.appended))
	}
}

func TestExecuteAppendFailureReturnsAnswer(t *testing.T) {
	model := &fakeLLM{genAnswer: "Stunting adalah kondisi gagal tumbuh kronis pada balita."}
	store := &fakeStore{appendErr: errors.New("db down")}
	notifier := &recordingNotifier{}
	p := newTestPipeline(model, &fakeRetriever{passages: stuntingPassages}, store, notifier, 4)

	result, err := p.Execute(context.Background(), "sess-7", "Apa itu stunting?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Answer != model.genAnswer {
		t.Errorf("answer = %q, want model answer despite append failure", result.Answer)
	}
	if result.Logged {
		t.Error("failed append must not be marked logged")
	}
	if !notifier.called || notifier.stage != "persistence" || notifier.sessionID != "sess-7" {
		t.Errorf("notifier state = %+v", notifier)
	}
}

func TestExecuteDeterministic(t *testing.T) {
	run := func() *Result {
		model := &fakeLLM{genAnswer: "Stunting adalah kondisi gagal tumbuh kronis pada balita."}
		p := newTestPipeline(model, &fakeRetriever{passages: stuntingPassages}, &fakeStore{}, nil, 4)
		result, err := p.Execute(context.Background(), "sess-1", "Apa itu stunting?")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		return result
	}

	first, second := run(), run()
	if first.Answer != second.Answer || first.StandaloneQuery != second.StandaloneQuery ||
		first.Decision != second.Decision || len(first.Passages) != len(second.Passages) {
		t.Errorf("identical inputs diverged: %+v vs %+v", first, second)
	}
}
