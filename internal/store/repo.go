package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Label   string    // exact label match (assessments only)
	Purpose string    // exact purpose match (LLM events only)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// Assessment is one stored classification. Features, Answers and Warnings
// are kept as the JSON the caller produced.
type Assessment struct {
	ID           int
	Sequence     int64
	AssessmentID string
	Timestamp    time.Time
	Label        string
	Code         int
	Classifier   string
	Features     json.RawMessage
	Answers      json.RawMessage
	Warnings     json.RawMessage
}

// LabelCount is one row of CountByLabel.
type LabelCount struct {
	Label string
	Count int
}

// AssessmentRepo stores completed assessments.
type AssessmentRepo interface {
	// Save inserts a; ID, Sequence and (if zero) Timestamp are filled in.
	Save(ctx context.Context, a *Assessment) error

	// Get returns the assessment with the given public id, or nil.
	Get(ctx context.Context, assessmentID string) (*Assessment, error)

	// List returns assessments newest first.
	List(ctx context.Context, opts QueryOpts) ([]Assessment, error)

	// CountByLabel returns the number of assessments per label, most
	// frequent first.
	CountByLabel(ctx context.Context) ([]LabelCount, error)

	// DeleteAll removes every assessment and returns how many were removed.
	DeleteAll(ctx context.Context) (int, error)
}

// LLMCall captures a single LLM request.
type LLMCall struct {
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

// LLMCallRecord is a stored LLMCall.
type LLMCallRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMCall
}

// LLMUsage aggregates calls by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo stores and queries LLM call events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMCall) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMCallRecord, error)
	GetLLMEvent(ctx context.Context, id int) (*LLMCallRecord, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// Draft is a saved in-progress questionnaire.
type Draft struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      json.RawMessage
}

// DraftRepo keeps recent in-progress questionnaire states.
type DraftRepo interface {
	// Save stores a new draft.
	Save(ctx context.Context, data json.RawMessage) error

	// Latest returns the most recent draft, or nil if none exist.
	Latest(ctx context.Context) (*Draft, error)

	// Prune deletes all but the N most recent drafts.
	Prune(ctx context.Context, keep int) error

	// Clear deletes every draft.
	Clear(ctx context.Context) error
}
