package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls sharing a purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls served by one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// AnswerEventData captures one accepted answer of a run.
type AnswerEventData struct {
	RunID       string
	QuestionID  string
	Category    string
	OptionIndex int
	Score       int
	FollowUp    bool
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendAnswerEvent records an accepted answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AnswersForRun returns the answers of a run in the order given.
	AnswersForRun(ctx context.Context, runID string) ([]AnswerEvent, error)
}

// RunRecord is a finished diagnostic run as stored. Result and Enrichment
// hold JSON documents verbatim.
type RunRecord struct {
	ID                string
	CatalogVersion    string
	StartedAt         time.Time
	CompletedAt       time.Time
	Answered          int
	OverallPercentage int
	OverallLevel      string
	Organisation      string
	Focus             []string
	Result            json.RawMessage
	Enrichment        json.RawMessage // nil until attached
}

// RunRepo stores finished runs.
type RunRepo interface {
	// SaveRun inserts a finished run.
	SaveRun(ctx context.Context, run *RunRecord) error

	// GetRun returns a run by ID, or nil if it does not exist.
	GetRun(ctx context.Context, id string) (*RunRecord, error)

	// ListRuns returns runs, most recently completed first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// AttachEnrichment stores the enrichment document of an existing run.
	AttachEnrichment(ctx context.Context, id string, enrichment json.RawMessage) error
}
