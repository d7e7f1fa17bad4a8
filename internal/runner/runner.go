// Package runner drives diagnostic sessions for the hosts: it applies focus
// categories, records each accepted answer and stores finished runs.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/store"
)

// ErrUnknownCategory is returned when a focus names no catalog category.
var ErrUnknownCategory = errors.New("unknown category")

// Options describe a new run.
type Options struct {
	// Organisation labels the run in reports and history.
	Organisation string

	// Focus lists categories whose main questions are all raised to high
	// priority, so they are covered before other medium and low questions.
	Focus []string
}

// Run is one live diagnostic.
type Run struct {
	ID           string
	Organisation string
	Focus        []string
	StartedAt    time.Time
	Session      *diagnostic.Session

	saved bool
}

// Saved reports whether the finished run has been stored.
func (r *Run) Saved() bool { return r.saved }

// Recorder starts runs and persists their progress. Either repo may be nil,
// in which case that part is skipped.
type Recorder struct {
	catalog *questionbank.Catalog
	events  store.EventRepo
	runs    store.RunRepo
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a Recorder over catalog.
func New(catalog *questionbank.Catalog, events store.EventRepo, runs store.RunRepo, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		catalog: catalog,
		events:  events,
		runs:    runs,
		logger:  logger,
		now:     time.Now,
	}
}

// Catalog returns the base catalog.
func (r *Recorder) Catalog() *questionbank.Catalog { return r.catalog }

// Start begins a run. Focus names are matched case-insensitively against
// the catalog categories.
func (r *Recorder) Start(opts Options) (*Run, error) {
	focus, err := r.resolveFocus(opts.Focus)
	if err != nil {
		return nil, err
	}

	catalog := r.catalog
	if len(focus) > 0 {
		prio := make(map[string]questionbank.Priority, len(focus))
		for _, c := range focus {
			prio[c] = questionbank.PriorityHigh
		}
		catalog = catalog.Reprioritize(prio)
	}

	run := &Run{
		ID:           uuid.New().String(),
		Organisation: strings.TrimSpace(opts.Organisation),
		Focus:        focus,
		StartedAt:    r.now().UTC(),
		Session:      diagnostic.New(catalog),
	}
	r.logger.Debug("run started", zap.String("run_id", run.ID), zap.Strings("focus", focus))
	return run, nil
}

func (r *Recorder) resolveFocus(names []string) ([]string, error) {
	categories := r.catalog.Categories()
	var out []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		i := slices.IndexFunc(categories, func(c string) bool { return strings.EqualFold(c, name) })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		if !slices.Contains(out, categories[i]) {
			out = append(out, categories[i])
		}
	}
	return out, nil
}

// Answer submits an answer to the run's session. The answer event is
// recorded on success, and the run is stored once the session completes.
// A storage failure is returned after the answer has been accepted.
func (r *Recorder) Answer(ctx context.Context, run *Run, questionID string, optionIndex int) error {
	q, _ := run.Session.CurrentQuestion()
	if err := run.Session.Answer(questionID, optionIndex); err != nil {
		return err
	}

	if r.events != nil {
		err := r.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			RunID:       run.ID,
			QuestionID:  q.ID,
			Category:    q.Category,
			OptionIndex: optionIndex,
			Score:       q.Options[optionIndex].Score,
			FollowUp:    q.IsFollowUp,
		})
		if err != nil {
			r.logger.Warn("failed to record answer event", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	if run.Session.State() == diagnostic.StateCompleted {
		if _, err := r.Save(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

// Save stores a completed run. Saving twice is a no-op.
func (r *Recorder) Save(ctx context.Context, run *Run) (*store.RunRecord, error) {
	result, err := run.Session.Result()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	rec := &store.RunRecord{
		ID:                run.ID,
		CatalogVersion:    run.Session.Catalog().Version(),
		StartedAt:         run.StartedAt,
		CompletedAt:       r.now().UTC(),
		Answered:          run.Session.AnsweredCount(),
		OverallPercentage: result.Overall.Percentage,
		OverallLevel:      string(result.Overall.Level),
		Organisation:      run.Organisation,
		Focus:             run.Focus,
		Result:            data,
	}
	if run.saved || r.runs == nil {
		run.saved = true
		return rec, nil
	}
	if err := r.runs.SaveRun(ctx, rec); err != nil {
		return nil, err
	}
	run.saved = true
	r.logger.Info("run saved",
		zap.String("run_id", run.ID),
		zap.Int("answered", rec.Answered),
		zap.Int("overall_percentage", rec.OverallPercentage),
	)
	return rec, nil
}

// AttachEnrichment stores report with a saved run.
func (r *Recorder) AttachEnrichment(ctx context.Context, runID string, report *enrichment.Report) error {
	if r.runs == nil {
		return nil
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode enrichment: %w", err)
	}
	return r.runs.AttachEnrichment(ctx, runID, data)
}
