package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session lifecycle actions recorded by AppendSessionEvent.
const (
	SessionActionStart  = "start"
	SessionActionEnd    = "end"
	SessionActionCancel = "cancel"
)

// Session statuses stored in the sessions table.
const (
	SessionStatusInProgress = "in_progress"
	SessionStatusCompleted  = "completed"
	SessionStatusCancelled  = "cancelled"
)

// SessionEventData describes a session lifecycle change. A start creates the
// session row; end and cancel close it with the final counts.
type SessionEventData struct {
	SessionID      string
	Action         string
	Candidate      string
	Difficulty     string
	TotalQuestions int
	Answered       int
	Skipped        int
	Timestamp      time.Time
}

// SessionRecord is a stored interview session.
type SessionRecord struct {
	ID             string
	Sequence       int64
	Candidate      string
	Difficulty     string
	TotalQuestions int
	Status         string
	Answered       int
	Skipped        int
	StartedAt      time.Time
	EndedAt        time.Time // zero while in progress
}

// AnswerEventData captures one scored or skipped question.
type AnswerEventData struct {
	SessionID     string
	QuestionIndex int
	Category      string
	QuestionText  string
	AnswerText    string
	Skipped       bool
	Score         float64
	Tier          string
	ResponseMs    int64
	Timestamp     time.Time
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID       int
	Sequence int64
	AnswerEventData
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

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to interview events.
type EventRepo interface {
	// AppendSessionEvent starts, ends or cancels a session.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a scored or skipped answer. A second event
	// for the same session and question fails.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// SessionAnswers returns a session's answers ordered by question index.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)

	// QuerySessions returns sessions, newest first.
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsage aggregates LLM events by purpose or model.
	LLMUsage(ctx context.Context, by UsageGroup) ([]LLMUsage, error)
}

// UsageGroup is the column LLM usage is grouped by.
type UsageGroup string

const (
	UsageByPurpose UsageGroup = "purpose"
	UsageByModel   UsageGroup = "model"
)

// LLMUsage is aggregated token usage for one purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ReportRecord is a persisted interview report. Payload holds the full
// JSON result; the other fields are copied out for listing.
type ReportRecord struct {
	SessionID         string
	Sequence          int64
	Candidate         string
	OverallScore      int
	Grade             string
	PlacementReady    string
	QuestionsAnswered int
	QuestionsSkipped  int
	FormatVersion     string
	Payload           json.RawMessage
	CreatedAt         time.Time
}

// ReportRepo stores finished interview reports.
type ReportRepo interface {
	// Save inserts or replaces the report of a session. An empty
	// FormatVersion is set to ReportFormatVersion.
	Save(ctx context.Context, rec *ReportRecord) error

	// Get returns the report whose session ID equals id or uniquely starts
	// with it. It returns ErrNotFound, ErrAmbiguousID or
	// ErrIncompatibleReport.
	Get(ctx context.Context, id string) (*ReportRecord, error)

	// List returns reports newest first. Payloads are not loaded.
	List(ctx context.Context, opts QueryOpts) ([]ReportRecord, error)

	// Delete removes a report; deleting a missing report is not an error.
	Delete(ctx context.Context, sessionID string) error
}
