package enrichment

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// queueSize bounds pending jobs; Submit drops beyond it.
const queueSize = 8

// Service runs enrichment on a background goroutine so hosts can keep
// serving while the model answers.
type Service struct {
	enricher *Enricher
	logger   *zap.Logger

	mu      sync.Mutex
	closed  bool
	pending chan job
	done    chan struct{}
}

type job struct {
	ctx context.Context
	in  Input
	cb  func(*Report, error)
}

// NewService starts the processing loop.
func NewService(e *Enricher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		enricher: e,
		logger:   logger,
		pending:  make(chan job, queueSize),
		done:     make(chan struct{}),
	}
	go s.processLoop()
	return s
}

// Submit queues in for enrichment; cb runs on the service goroutine with
// the report or the error. It reports false, without calling cb, when the
// queue is full or the service is closed.
func (s *Service) Submit(ctx context.Context, in Input, cb func(*Report, error)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.pending <- job{ctx: ctx, in: in, cb: cb}:
		return true
	default:
		s.logger.Warn("enrichment queue full, dropping job")
		return false
	}
}

func (s *Service) processLoop() {
	defer close(s.done)
	for j := range s.pending {
		r, err := s.enricher.Enrich(j.ctx, j.in)
		if err != nil {
			s.logger.Warn("enrichment failed", zap.Error(err))
		}
		if j.cb != nil {
			j.cb(r, err)
		}
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (s *Service) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.pending)
	}
	s.mu.Unlock()
	<-s.done
}
