package llm

import (
	"context"
	"sync"
	"testing"
)

func TestNewBackend_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "mock"

	b, err := NewBackend(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := b.(*MockBackend); !ok {
		t.Fatalf("expected bare *MockBackend, got %T", b)
	}
}

func TestNewBackend_Unknown(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "bard"

	if _, err := NewBackend(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}

func TestNewBackend_WrapsWithRetry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "anthropic"
	cfg.Anthropic.APIKey = "sk-test"

	b, err := NewBackend(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := b.(*RetryBackend); !ok {
		t.Fatalf("expected *RetryBackend wrapper, got %T", b)
	}
}

// memLog is an in-memory CallLog for tests.
type memLog struct {
	mu   sync.Mutex
	recs []CallRecord
}

func (m *memLog) AppendCall(_ context.Context, rec CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, rec)
	return nil
}

func TestWithCallLog_RecordsSuccess(t *testing.T) {
	log := &memLog{}
	mock := NewMockBackend(MockCompletion{Text: `{"guess":"a"}`})
	b := WithCallLog(mock, "mock", log)

	if _, err := b.Complete(context.Background(), "which one?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(log.recs) != 1 {
		t.Fatalf("got %d records, want 1", len(log.recs))
	}
	rec := log.recs[0]
	if rec.Backend != "mock" || rec.Model != "mock" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Prompt != "which one?" || rec.Response != `{"guess":"a"}` {
		t.Fatalf("record = %+v", rec)
	}
	if !rec.Success || rec.ErrorMessage != "" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestWithCallLog_RecordsFailure(t *testing.T) {
	log := &memLog{}
	mock := NewMockBackend() // empty queue errors
	b := WithCallLog(mock, "mock", log)

	if _, err := b.Complete(context.Background(), "p"); err == nil {
		t.Fatal("expected an error")
	}

	if len(log.recs) != 1 {
		t.Fatalf("got %d records, want 1", len(log.recs))
	}
	rec := log.recs[0]
	if rec.Success || rec.ErrorMessage == "" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestNames_CoversFactory(t *testing.T) {
	names := Names()
	if len(names) != 7 {
		t.Fatalf("names = %v", names)
	}
	cfg := DefaultConfig()
	for _, name := range names {
		cfg.Backend = name
		if err := cfg.Validate(); err == nil {
			continue
		}
		// Backends needing keys still have to be recognized.
		cfgWithKey := cfg
		switch name {
		case "anthropic":
			cfgWithKey.Anthropic.APIKey = "k"
		case "openai":
			cfgWithKey.OpenAI.APIKey = "k"
		case "gemini":
			cfgWithKey.Gemini.APIKey = "k"
		case "groq":
			cfgWithKey.Groq.APIKey = "k"
		case "openrouter":
			cfgWithKey.OpenRouter.APIKey = "k"
		}
		if err := cfgWithKey.Validate(); err != nil {
			t.Fatalf("backend %q not accepted by Validate: %v", name, err)
		}
	}
}
