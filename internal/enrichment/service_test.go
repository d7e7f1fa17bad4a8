package enrichment

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhisek/maturiz/internal/llm"
)

// gatedProvider blocks every call until release is closed.
type gatedProvider struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return &llm.Response{Content: []byte(`{"insights":"ok","recommendations":[],"nextSteps":[]}`)}, nil
}

func (g *gatedProvider) ModelID() string { return "gated" }

func TestService_Callback(t *testing.T) {
	svc := NewService(New(llm.NewMockProvider(validReport()), DefaultConfig()), nil)

	got := make(chan *Report, 1)
	ok := svc.Submit(context.Background(), Input{}, func(r *Report, err error) {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		got <- r
	})
	if !ok {
		t.Fatal("Submit rejected")
	}

	select {
	case r := <-got:
		if r == nil || r.Insights == "" {
			t.Errorf("report = %+v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("callback not called")
	}
	svc.Close()
}

func TestService_ErrorReachesCallback(t *testing.T) {
	svc := NewService(New(llm.NewMockProvider(), DefaultConfig()), nil)

	var gotErr error
	svc.Submit(context.Background(), Input{}, func(_ *Report, err error) { gotErr = err })
	svc.Close()

	if gotErr == nil {
		t.Fatal("expected error in callback")
	}
}

func TestService_DropsWhenFull(t *testing.T) {
	g := &gatedProvider{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(New(g, Config{}), nil)

	var calls atomic.Int32
	cb := func(*Report, error) { calls.Add(1) }

	if !svc.Submit(context.Background(), Input{}, cb) {
		t.Fatal("first Submit rejected")
	}
	<-g.started

	for i := range queueSize {
		if !svc.Submit(context.Background(), Input{}, cb) {
			t.Fatalf("Submit %d rejected with room in the queue", i)
		}
	}
	if svc.Submit(context.Background(), Input{}, cb) {
		t.Fatal("Submit accepted with a full queue")
	}

	close(g.release)
	svc.Close()
	if got := calls.Load(); got != queueSize+1 {
		t.Errorf("got %d callbacks, want %d", got, queueSize+1)
	}
}

func TestService_SubmitAfterClose(t *testing.T) {
	svc := NewService(New(llm.NewMockProvider(), DefaultConfig()), nil)
	svc.Close()
	svc.Close()

	if svc.Submit(context.Background(), Input{}, nil) {
		t.Fatal("Submit accepted after Close")
	}
}
