package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/llm"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/store"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

type fixture struct {
	store    *store.Store
	recorder *runner.Recorder
	registry *Registry
	start    *StartTool
	answer   *AnswerTool
	progress *ProgressTool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "mcp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	rec := runner.New(questionbank.Default(), st.EventRepo(), st.RunRepo(), zap.NewNop())
	reg := NewRegistry()
	return &fixture{
		store:    st,
		recorder: rec,
		registry: reg,
		start:    NewStartTool(rec, reg),
		answer:   NewAnswerTool(rec, reg, zap.NewNop()),
		progress: NewProgressTool(reg),
	}
}

func (f *fixture) resultTool(svc *enrichment.Service) *ResultTool {
	return NewResultTool(f.recorder, f.registry, svc, zap.NewNop())
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func decode[T any](t *testing.T, r *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, r.IsError, "tool error: %s", resultText(r))
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(r)), &v))
	return v
}

// complete starts a run and answers every question with its last option.
func (f *fixture) complete(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	res, err := f.start.Handle(ctx, makeReq(map[string]interface{}{"organisation": "Acme"}))
	require.NoError(t, err)
	started := decode[startResult](t, res)

	q := started.Question
	for q != nil {
		res, err := f.answer.Handle(ctx, makeReq(map[string]interface{}{
			"run_id":       started.RunID,
			"question_id":  q.ID,
			"option_index": float64(len(q.Options) - 1),
		}))
		require.NoError(t, err)
		out := decode[answerResult](t, res)
		if out.Completed {
			assert.Nil(t, out.Question)
			break
		}
		q = out.Question
	}
	return started.RunID
}

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestDefinitions(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		def    mcp.Tool
		name   string
		params []string
	}{
		{f.start.Definition(), "diag_start", []string{"focus", "organisation"}},
		{f.answer.Definition(), "diag_answer", []string{"run_id", "question_id", "option_index"}},
		{f.progress.Definition(), "diag_progress", []string{"run_id"}},
		{f.resultTool(nil).Definition(), "diag_result", []string{"run_id", "enrich"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.def.Name)
		for _, p := range tt.params {
			assert.Contains(t, tt.def.InputSchema.Properties, p, "%s missing %s", tt.name, p)
		}
	}
	assert.ElementsMatch(t, []string{"run_id", "question_id", "option_index"}, f.answer.Definition().InputSchema.Required)
}

func TestNew(t *testing.T) {
	f := newFixture(t)
	assert.NotNil(t, New("test", Deps{Recorder: f.recorder}))
}

// ─── Flow ────────────────────────────────────────────────────────────────────

func TestStart(t *testing.T) {
	f := newFixture(t)
	res, err := f.start.Handle(context.Background(), makeReq(map[string]interface{}{"focus": " gestion des risques , "}))
	require.NoError(t, err)

	out := decode[startResult](t, res)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, []string{questionbank.CategoryRisk}, out.Focus)
	require.NotNil(t, out.Question)
	assert.Equal(t, "strat-1", out.Question.ID)
	assert.Len(t, out.Question.Options, 5)
	assert.Equal(t, 1, out.Progress.Current)
	assert.Equal(t, 1, f.registry.Len())
}

func TestStart_UnknownFocus(t *testing.T) {
	f := newFixture(t)
	res, err := f.start.Handle(context.Background(), makeReq(map[string]interface{}{"focus": "Marketing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "unknown category")
	assert.Equal(t, 0, f.registry.Len())
}

func TestCompleteRunIsStored(t *testing.T) {
	f := newFixture(t)
	runID := f.complete(t)

	res, err := f.progress.Handle(context.Background(), makeReq(map[string]interface{}{"run_id": runID}))
	require.NoError(t, err)
	prog := decode[progressResult](t, res)
	assert.Equal(t, "completed", prog.State)
	assert.Equal(t, 6, prog.Answered)
	assert.True(t, prog.Saved)
	assert.Equal(t, 100, prog.Progress.Percentage)

	rec, err := f.store.RunRepo().GetRun(context.Background(), runID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Acme", rec.Organisation)
	assert.Equal(t, "expert", rec.OverallLevel)
}

func TestAnswer_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.start.Handle(ctx, makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	runID := decode[startResult](t, res).RunID

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing run", map[string]interface{}{"question_id": "strat-1", "option_index": float64(0)}, "'run_id' is required"},
		{"missing question", map[string]interface{}{"run_id": runID, "option_index": float64(0)}, "'question_id' is required"},
		{"unknown run", map[string]interface{}{"run_id": "nope", "question_id": "strat-1", "option_index": float64(0)}, "unknown run"},
		{"wrong question", map[string]interface{}{"run_id": runID, "question_id": "risk-1", "option_index": float64(0)}, "invalid question reference"},
		{"bad option", map[string]interface{}{"run_id": runID, "question_id": "strat-1", "option_index": float64(7)}, "invalid option index"},
		{"missing option", map[string]interface{}{"run_id": runID, "question_id": "strat-1"}, "invalid option index"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.answer.Handle(ctx, makeReq(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(res), tt.want)
		})
	}

	res, err = f.progress.Handle(ctx, makeReq(map[string]interface{}{"run_id": runID}))
	require.NoError(t, err)
	assert.Equal(t, 0, decode[progressResult](t, res).Answered)
}

// ─── Result ──────────────────────────────────────────────────────────────────

func TestResult_NotCompleted(t *testing.T) {
	f := newFixture(t)
	res, err := f.start.Handle(context.Background(), makeReq(map[string]interface{}{}))
	require.NoError(t, err)
	runID := decode[startResult](t, res).RunID

	res, err = f.resultTool(nil).Handle(context.Background(), makeReq(map[string]interface{}{"run_id": runID}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(res), "diagnostic not completed")
}

func TestResult_Plain(t *testing.T) {
	f := newFixture(t)
	runID := f.complete(t)

	res, err := f.resultTool(nil).Handle(context.Background(), makeReq(map[string]interface{}{"run_id": runID}))
	require.NoError(t, err)
	out := decode[resultPayload](t, res)
	require.NotNil(t, out.Result)
	assert.Equal(t, 100, out.Result.Overall.Percentage)
	assert.Len(t, out.Result.Strengths, 6)
	assert.Nil(t, out.Enrichment)
	assert.Empty(t, out.Warning)
}

func TestResult_EnrichWithoutProvider(t *testing.T) {
	f := newFixture(t)
	runID := f.complete(t)

	res, err := f.resultTool(nil).Handle(context.Background(), makeReq(map[string]interface{}{"run_id": runID, "enrich": true}))
	require.NoError(t, err)
	out := decode[resultPayload](t, res)
	assert.NotNil(t, out.Result)
	assert.Contains(t, out.Warning, "no LLM provider configured")
}

func TestResult_EnrichCachedAndStored(t *testing.T) {
	f := newFixture(t)
	runID := f.complete(t)

	provider := llm.NewMockProvider(llm.MockJSON(enrichment.Report{
		Insights:        "Organisation achats mature.",
		Recommendations: []string{"Consolider"},
		NextSteps:       []string{"Mesurer"},
	}))
	svc := enrichment.NewService(enrichment.New(provider, enrichment.DefaultConfig()), zap.NewNop())
	t.Cleanup(svc.Close)
	tool := f.resultTool(svc)

	for i := 0; i < 2; i++ {
		res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{"run_id": runID, "enrich": true}))
		require.NoError(t, err)
		out := decode[resultPayload](t, res)
		require.NotNil(t, out.Enrichment)
		assert.Equal(t, "Organisation achats mature.", out.Enrichment.Insights)
	}
	assert.Equal(t, 1, provider.CallCount())

	rec, err := f.store.RunRepo().GetRun(context.Background(), runID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.Enrichment)
}

func TestResult_EnrichFailure(t *testing.T) {
	f := newFixture(t)
	runID := f.complete(t)

	provider := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	svc := enrichment.NewService(enrichment.New(provider, enrichment.DefaultConfig()), zap.NewNop())
	t.Cleanup(svc.Close)

	res, err := f.resultTool(svc).Handle(context.Background(), makeReq(map[string]interface{}{"run_id": runID, "enrich": true}))
	require.NoError(t, err)
	out := decode[resultPayload](t, res)
	assert.Contains(t, out.Warning, "enrichment unavailable")
	assert.Nil(t, out.Enrichment)
}
