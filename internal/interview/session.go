package interview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mockview/internal/analytics"
	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/report"
	"github.com/abhisek/mockview/internal/scoring"
	"github.com/abhisek/mockview/internal/store"
)

// outcome is the scored result of one question.
type outcome struct {
	answer       string
	eval         scoring.Result
	transcript   analytics.Transcript
	responseTime time.Duration
	timed        bool
	at           time.Time
}

// Session drives one interview. All methods are safe for concurrent use;
// calls are serialized so no question index is ever scored twice.
type Session struct {
	mu sync.Mutex

	id         string
	candidate  string
	difficulty string
	questions  []question.Question

	phase      Phase
	step       Step
	current    int
	askedAt    time.Time
	outcomes   []*outcome
	answered   int
	endedEarly bool

	startedAt   time.Time
	completedAt time.Time

	// recordedStart and lastRecorded anchor latencies of events that carry
	// their own timestamps.
	recordedStart time.Time
	lastRecorded  time.Time
	// replay is set for sessions fed from a transcript, where the wall
	// clock says nothing about how long answers took.
	replay bool

	recorder store.EventRepo
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder persists session and answer events. Recording failures are
// logged and never fail the interview.
func WithRecorder(repo store.EventRepo) Option {
	return func(s *Session) { s.recorder = repo }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID sets the session ID instead of a random UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithCandidate records the candidate's name.
func WithCandidate(name string) Option {
	return func(s *Session) { s.candidate = name }
}

// WithDifficulty records the difficulty the questions were planned at.
func WithDifficulty(d string) Option {
	return func(s *Session) { s.difficulty = d }
}

// WithStartTime sets when a recorded interview began. The first
// timestamped answer's latency is measured from it.
func WithStartTime(t time.Time) Option {
	return func(s *Session) { s.recordedStart = t }
}

// New creates a session over questions, which must pass
// question.ValidateAll. The slice is copied.
func New(questions []question.Question, opts ...Option) (*Session, error) {
	if err := question.ValidateAll(questions); err != nil {
		return nil, err
	}
	s := &Session{
		questions: question.Reindex(questions),
		outcomes:  make([]*outcome, len(questions)),
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	return s, nil
}

func (s *Session) ID() string        { return s.id }
func (s *Session) Candidate() string { return s.candidate }

// Questions returns a copy of the question list.
func (s *Session) Questions() []question.Question {
	return question.Reindex(s.questions)
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Step returns the state of the current question.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Progress returns how many questions have an outcome and the total.
func (s *Session) Progress() (done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered, len(s.questions)
}

// Start moves the session to in progress and asks the first question. A
// session without questions completes immediately.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseNotStarted {
		return ErrAlreadyStarted
	}
	ctx = s.logContext(ctx)
	s.phase = PhaseInProgress
	s.startedAt = s.recordedStart
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}
	s.lastRecorded = s.recordedStart
	s.record(ctx, "session start", func(r store.EventRepo) error {
		return r.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:      s.id,
			Action:         store.SessionActionStart,
			Candidate:      s.candidate,
			Difficulty:     s.difficulty,
			TotalQuestions: len(s.questions),
			Timestamp:      s.startedAt,
		})
	})
	s.logger.InfoContext(ctx, "interview started", slog.Int("questions", len(s.questions)))

	if len(s.questions) == 0 {
		s.complete(ctx, false)
		return nil
	}
	s.ask(0)
	return nil
}

// Current returns the question being asked. ok is false unless the session
// is in progress.
func (s *Session) Current() (q question.Question, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return question.Question{}, false
	}
	return s.questions[s.current], true
}

// Listen marks the current question as being answered.
func (s *Session) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.step = StepListening
	return nil
}

// Answer scores text as the answer to question index.
func (s *Session) Answer(ctx context.Context, index int, text string) (scoring.Result, error) {
	return s.Submit(ctx, Answered(index, text))
}

// Skip records question index as skipped.
func (s *Session) Skip(ctx context.Context, index int) (scoring.Result, error) {
	return s.Submit(ctx, Skipped(index))
}

// Submit scores one event. Out-of-range indices fail with
// *report.IndexOutOfRangeError and repeated indices with
// *report.DuplicateEventError, keeping the first score. Scoring the last
// open question completes the session.
func (s *Session) Submit(ctx context.Context, ev AnswerEvent) (scoring.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireInProgress(); err != nil {
		return scoring.Result{}, err
	}
	idx := ev.QuestionIndex
	if idx < 0 || idx >= len(s.questions) {
		return scoring.Result{}, &report.IndexOutOfRangeError{QuestionIndex: idx, Total: len(s.questions)}
	}
	if s.outcomes[idx] != nil {
		return scoring.Result{}, &report.DuplicateEventError{QuestionIndex: idx}
	}

	ctx = s.logContext(ctx)
	q := s.questions[idx]
	out := &outcome{
		answer: ev.Text,
		eval:   scoring.Evaluate(ev.Text, ev.Skipped, q),
	}
	if ev.Skipped {
		out.answer = ""
	} else {
		out.transcript = analytics.AnalyzeTranscript(ev.Text)
	}
	out.at, out.responseTime, out.timed = s.latency(idx, ev.Timestamp)
	s.outcomes[idx] = out
	s.answered++

	if idx == s.current {
		if ev.Skipped {
			s.step = StepSkipped
		} else {
			s.step = StepScored
		}
	}

	s.record(ctx, "answer event", func(r store.EventRepo) error {
		return r.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:     s.id,
			QuestionIndex: idx,
			Category:      string(q.Category),
			QuestionText:  q.Text,
			AnswerText:    out.answer,
			Skipped:       ev.Skipped,
			Score:         out.eval.Score,
			Tier:          string(out.eval.Tier),
			ResponseMs:    out.responseTime.Milliseconds(),
			Timestamp:     out.at,
		})
	})
	s.logger.DebugContext(ctx, "answer scored",
		slog.Int("question", idx),
		slog.Bool("skipped", ev.Skipped),
		slog.Float64("score", out.eval.Score),
		slog.String("tier", string(out.eval.Tier)))

	if s.answered == len(s.questions) {
		s.complete(ctx, false)
	}
	return out.eval, nil
}

// Next moves to the next question without an outcome, searching forward
// from the current one and wrapping around. ok is false when the session is
// not in progress.
func (s *Session) Next() (q question.Question, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return question.Question{}, false
	}
	n := len(s.questions)
	for i := 1; i <= n; i++ {
		idx := (s.current + i) % n
		if s.outcomes[idx] == nil {
			s.ask(idx)
			return s.questions[idx], true
		}
	}
	return question.Question{}, false
}

// End terminates the interview early. Unanswered questions count as skipped
// in the report.
func (s *Session) End(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireInProgress(); err != nil {
		return err
	}
	s.complete(s.logContext(ctx), true)
	return nil
}

// Report aggregates the completed interview.
func (s *Session) Report() (*report.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCompleted(); err != nil {
		return nil, err
	}
	return report.Aggregate(s.questions, s.scored())
}

func (s *Session) scored() []report.ScoredAnswer {
	var out []report.ScoredAnswer
	for i, o := range s.outcomes {
		if o == nil {
			continue
		}
		out = append(out, report.ScoredAnswer{QuestionIndex: i, Score: o.eval.Score, Skipped: o.eval.Skipped})
	}
	return out
}

// latency returns when an event happened and how long the answer took.
// Live events (zero timestamp) are timed from when their question was
// asked, except during a replay. Recorded events are timed from the previous recorded event, or
// from the recorded start; the first one is untimed without a start.
func (s *Session) latency(idx int, ts time.Time) (at time.Time, d time.Duration, timed bool) {
	if ts.IsZero() {
		at = s.now()
		if !s.replay && idx == s.current && !s.askedAt.IsZero() && at.After(s.askedAt) {
			return at, at.Sub(s.askedAt), true
		}
		return at, 0, false
	}
	prev := s.lastRecorded
	s.lastRecorded = ts
	if !prev.IsZero() && ts.After(prev) {
		return ts, ts.Sub(prev), true
	}
	return ts, 0, false
}

func (s *Session) ask(idx int) {
	s.current = idx
	s.step = StepAsking
	s.askedAt = s.now()
}

func (s *Session) complete(ctx context.Context, early bool) {
	s.phase = PhaseCompleted
	s.completedAt = s.now()
	s.endedEarly = early

	var answered, skipped int
	for _, o := range s.outcomes {
		if o != nil && !o.eval.Skipped {
			answered++
		}
	}
	skipped = len(s.questions) - answered

	s.record(ctx, "session end", func(r store.EventRepo) error {
		return r.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: s.id,
			Action:    store.SessionActionEnd,
			Answered:  answered,
			Skipped:   skipped,
			Timestamp: s.completedAt,
		})
	})
	s.logger.InfoContext(ctx, "interview completed",
		slog.Bool("ended_early", early),
		slog.Int("answered", answered),
		slog.Int("skipped", skipped))
}

func (s *Session) requireInProgress() error {
	switch s.phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseCompleted:
		return ErrCompleted
	}
	return nil
}

func (s *Session) requireCompleted() error {
	switch s.phase {
	case PhaseNotStarted:
		return ErrNotStarted
	case PhaseInProgress:
		return ErrInProgress
	}
	return nil
}

func (s *Session) record(ctx context.Context, what string, fn func(store.EventRepo) error) {
	if s.recorder == nil {
		return
	}
	if err := fn(s.recorder); err != nil {
		s.logger.WarnContext(ctx, "failed to record "+what, slog.Any("error", err))
	}
}

func (s *Session) logContext(ctx context.Context) context.Context {
	return logging.WithAttrs(ctx, slog.String("session_id", s.id))
}
