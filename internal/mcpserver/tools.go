package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/runner"
)

// ─── StartTool ──────────────────────────────────────────────────────────────

// StartTool handles the diag_start MCP tool.
type StartTool struct {
	recorder *runner.Recorder
	registry *Registry
}

// NewStartTool creates a StartTool.
func NewStartTool(recorder *runner.Recorder, registry *Registry) *StartTool {
	return &StartTool{recorder: recorder, registry: registry}
}

// Definition returns the MCP tool definition for diag_start.
func (t *StartTool) Definition() mcp.Tool {
	return mcp.NewTool("diag_start",
		mcp.WithDescription(
			"Start a procurement maturity diagnostic. Returns the run id and the first question. "+
				"Answer each question with diag_answer until completed is true, then call diag_result.",
		),
		mcp.WithString("focus",
			mcp.Description("Optional comma-separated categories to cover first"),
		),
		mcp.WithString("organisation",
			mcp.Description("Optional organisation name stored with the run"),
		),
	)
}

type startResult struct {
	RunID    string              `json:"runId"`
	Focus    []string            `json:"focus,omitempty"`
	Question *questionView       `json:"question"`
	Progress diagnostic.Progress `json:"progress"`
}

// Handle processes the diag_start tool call.
func (t *StartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	run, err := t.recorder.Start(runner.Options{
		Organisation: req.GetString("organisation", ""),
		Focus:        listArg(req, "focus"),
	})
	if err != nil {
		if errors.Is(err, runner.ErrUnknownCategory) {
			return mcp.NewToolResultError(fmt.Sprintf("%v (known: %v)", err, t.recorder.Catalog().Categories())), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := startResult{
		RunID:    run.ID,
		Focus:    run.Focus,
		Question: currentQuestion(run.Session),
		Progress: run.Session.Progress(),
	}
	t.registry.Add(run)
	return jsonResult(out)
}

// ─── AnswerTool ─────────────────────────────────────────────────────────────

// AnswerTool handles the diag_answer MCP tool.
type AnswerTool struct {
	recorder *runner.Recorder
	registry *Registry
	logger   *zap.Logger
}

// NewAnswerTool creates an AnswerTool.
func NewAnswerTool(recorder *runner.Recorder, registry *Registry, logger *zap.Logger) *AnswerTool {
	return &AnswerTool{recorder: recorder, registry: registry, logger: logger}
}

// Definition returns the MCP tool definition for diag_answer.
func (t *AnswerTool) Definition() mcp.Tool {
	return mcp.NewTool("diag_answer",
		mcp.WithDescription("Answer the question currently presented by a diagnostic run."),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run id returned by diag_start"),
		),
		mcp.WithString("question_id",
			mcp.Required(),
			mcp.Description("Id of the question being answered; must be the current question"),
		),
		mcp.WithNumber("option_index",
			mcp.Required(),
			mcp.Description("Zero-based index of the chosen option"),
		),
	)
}

type answerResult struct {
	Completed bool                `json:"completed"`
	Question  *questionView       `json:"question"`
	Progress  diagnostic.Progress `json:"progress"`
	Warning   string              `json:"warning,omitempty"`
}

// Handle processes the diag_answer tool call.
func (t *AnswerTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := req.GetString("run_id", "")
	questionID := req.GetString("question_id", "")
	if runID == "" {
		return mcp.NewToolResultError("'run_id' is required"), nil
	}
	if questionID == "" {
		return mcp.NewToolResultError("'question_id' is required"), nil
	}
	optionIndex := intArg(req, "option_index", -1)

	var (
		out      answerResult
		rejected error
	)
	found := t.registry.With(runID, func(e *entry) {
		s := e.run.Session
		before := s.AnsweredCount()
		err := t.recorder.Answer(ctx, e.run, questionID, optionIndex)
		if err != nil && s.AnsweredCount() == before {
			rejected = err
			return
		}
		if err != nil {
			t.logger.Warn("answer accepted but not stored", zap.String("run_id", runID), zap.Error(err))
			out.Warning = "answer accepted but not stored: " + err.Error()
		}
		out.Completed = s.State() == diagnostic.StateCompleted
		out.Question = currentQuestion(s)
		out.Progress = s.Progress()
	})
	if !found {
		return unknownRun(runID), nil
	}
	if rejected != nil {
		return mcp.NewToolResultError(rejected.Error()), nil
	}
	return jsonResult(out)
}

// ─── ProgressTool ───────────────────────────────────────────────────────────

// ProgressTool handles the diag_progress MCP tool.
type ProgressTool struct {
	registry *Registry
}

// NewProgressTool creates a ProgressTool.
func NewProgressTool(registry *Registry) *ProgressTool {
	return &ProgressTool{registry: registry}
}

// Definition returns the MCP tool definition for diag_progress.
func (t *ProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("diag_progress",
		mcp.WithDescription("Report the state and estimated progress of a diagnostic run."),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run id returned by diag_start"),
		),
	)
}

type progressResult struct {
	State             string              `json:"state"`
	Answered          int                 `json:"answered"`
	Progress          diagnostic.Progress `json:"progress"`
	SkippedCategories []string            `json:"skippedCategories"`
	Question          *questionView       `json:"question"`
	Saved             bool                `json:"saved"`
}

// Handle processes the diag_progress tool call.
func (t *ProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := req.GetString("run_id", "")
	if runID == "" {
		return mcp.NewToolResultError("'run_id' is required"), nil
	}

	var out progressResult
	found := t.registry.With(runID, func(e *entry) {
		s := e.run.Session
		out = progressResult{
			Question:          currentQuestion(s),
			State:             s.State().String(),
			Answered:          s.AnsweredCount(),
			Progress:          s.Progress(),
			SkippedCategories: s.SkippedCategories(),
			Saved:             e.run.Saved(),
		}
		if out.SkippedCategories == nil {
			out.SkippedCategories = []string{}
		}
	})
	if !found {
		return unknownRun(runID), nil
	}
	return jsonResult(out)
}

// ─── ResultTool ─────────────────────────────────────────────────────────────

// ResultTool handles the diag_result MCP tool.
type ResultTool struct {
	recorder *runner.Recorder
	registry *Registry
	service  *enrichment.Service
	logger   *zap.Logger
}

// NewResultTool creates a ResultTool. A nil service disables enrichment.
func NewResultTool(recorder *runner.Recorder, registry *Registry, service *enrichment.Service, logger *zap.Logger) *ResultTool {
	return &ResultTool{recorder: recorder, registry: registry, service: service, logger: logger}
}

// Definition returns the MCP tool definition for diag_result.
func (t *ResultTool) Definition() mcp.Tool {
	return mcp.NewTool("diag_result",
		mcp.WithDescription(
			"Return the scored result of a completed diagnostic: category scores, overall level, "+
				"strengths, weaknesses and recommended follow-on diagnostics.",
		),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run id returned by diag_start"),
		),
		mcp.WithBoolean("enrich",
			mcp.Description("If true, add an AI-written analysis (default: false)"),
		),
	)
}

type resultPayload struct {
	RunID        string             `json:"runId"`
	Organisation string             `json:"organisation,omitempty"`
	Result       *diagnostic.Result `json:"result"`
	Enrichment   *enrichment.Report `json:"enrichment,omitempty"`
	Warning      string             `json:"warning,omitempty"`
}

// Handle processes the diag_result tool call.
func (t *ResultTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID := req.GetString("run_id", "")
	if runID == "" {
		return mcp.NewToolResultError("'run_id' is required"), nil
	}
	enrich := boolArg(req, "enrich", false)

	var (
		out    resultPayload
		in     enrichment.Input
		cached bool
		saved  bool
		resErr error
	)
	found := t.registry.With(runID, func(e *entry) {
		res, err := e.run.Session.Result()
		if err != nil {
			resErr = err
			return
		}
		out = resultPayload{RunID: runID, Organisation: e.run.Organisation, Result: res, Enrichment: e.enrichment}
		cached, saved = e.enrichment != nil, e.run.Saved()
		if enrich && !cached {
			in = enrichment.NewInput(e.run.Session.Catalog(), e.run.Session.Answers(), res)
		}
	})
	if !found {
		return unknownRun(runID), nil
	}
	if resErr != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%v: keep answering with diag_answer", resErr)), nil
	}
	if !enrich || cached {
		return jsonResult(out)
	}

	report, err := t.enrich(ctx, in)
	if err != nil {
		t.logger.Warn("enrichment failed", zap.String("run_id", runID), zap.Error(err))
		out.Warning = "enrichment unavailable: " + err.Error()
		return jsonResult(out)
	}

	out.Enrichment = report
	t.registry.With(runID, func(e *entry) { e.enrichment = report })
	if saved {
		if err := t.recorder.AttachEnrichment(ctx, runID, report); err != nil {
			t.logger.Warn("failed to store enrichment", zap.String("run_id", runID), zap.Error(err))
			out.Warning = "enrichment not stored: " + err.Error()
		}
	}
	return jsonResult(out)
}

// enrich runs in through the enrichment service and waits for the outcome.
// The registry lock is not held meanwhile.
func (t *ResultTool) enrich(ctx context.Context, in enrichment.Input) (*enrichment.Report, error) {
	if t.service == nil {
		return nil, errors.New("no LLM provider configured")
	}

	type outcome struct {
		report *enrichment.Report
		err    error
	}
	ch := make(chan outcome, 1)
	if !t.service.Submit(ctx, in, func(r *enrichment.Report, err error) {
		ch <- outcome{r, err}
	}) {
		return nil, errors.New("enrichment queue full")
	}

	select {
	case res := <-ch:
		return res.report, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
