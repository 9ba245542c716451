package interview

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/report"
	"github.com/abhisek/mockview/internal/scoring"
	"github.com/abhisek/mockview/internal/store"
	"github.com/abhisek/mockview/internal/testhelpers"
)

func testQuestions() []question.Question {
	return []question.Question{
		{Index: 0, Text: "Explain recursion.", Category: question.CategoryTechnical, ExpectedKeywords: []string{"recursion", "base case"}},
		{Index: 1, Text: "Tell me about a time you worked in a team.", Category: question.CategoryHR, ExpectedKeywords: []string{"collaboration"}},
		{Index: 2, Text: "How would you design a URL shortening service?", Category: question.CategoryScenario},
	}
}

// fakeClock advances by step on every call.
type fakeClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC), step: 5 * time.Second}
	opts = append([]Option{WithClock(clock.Now), WithID("test-session")}, opts...)
	s, err := New(testQuestions(), opts...)
	require.NoError(t, err)
	return s
}

const recursionAnswer = "Recursion works by breaking a problem into a base case and smaller subproblems, for example computing factorial."

func TestSession_HappyPath(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	assert.Equal(t, PhaseNotStarted, s.Phase())

	require.NoError(t, s.Start(ctx))
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, StepAsking, s.Step())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 0, q.Index)

	require.NoError(t, s.Listen())
	assert.Equal(t, StepListening, s.Step())

	res, err := s.Answer(ctx, 0, recursionAnswer)
	require.NoError(t, err)
	assert.InDelta(t, 6.3, res.Score, 0.001)
	assert.Equal(t, StepScored, s.Step())

	q, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, 1, q.Index)
	assert.Equal(t, StepAsking, s.Step())

	_, err = s.Skip(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, StepSkipped, s.Step())

	s.Next()
	_, err = s.Answer(ctx, 2, "I would hash the long URL and store it in a database keyed by the short code.")
	require.NoError(t, err)

	assert.Equal(t, PhaseCompleted, s.Phase())
	_, ok = s.Current()
	assert.False(t, ok)

	rep, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, 2, rep.QuestionsAnswered)
	assert.Equal(t, 1, rep.QuestionsSkipped)
	assert.Contains(t, rep.Weaknesses, "Skipped 1 question(s)")
	assert.Len(t, rep.CategoryScores, 3)
}

func TestSession_PhaseErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	_, err := s.Answer(ctx, 0, recursionAnswer)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, s.Listen(), ErrNotStarted)
	assert.ErrorIs(t, s.End(ctx), ErrNotStarted)
	_, err = s.Report()
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, s.Start(ctx))
	assert.ErrorIs(t, s.Start(ctx), ErrAlreadyStarted)
	_, err = s.Report()
	assert.ErrorIs(t, err, ErrInProgress)

	require.NoError(t, s.End(ctx))
	_, err = s.Skip(ctx, 0)
	assert.ErrorIs(t, err, ErrCompleted)
	assert.ErrorIs(t, s.End(ctx), ErrCompleted)
}

func TestSession_DuplicateKeepsOriginal(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	require.NoError(t, s.Start(ctx))

	first, err := s.Answer(ctx, 0, recursionAnswer)
	require.NoError(t, err)

	_, err = s.Skip(ctx, 0)
	var dup *report.DuplicateEventError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 0, dup.QuestionIndex)

	require.NoError(t, s.End(ctx))
	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, first.Score, res.Questions[0].Score)
	assert.False(t, res.Questions[0].Skipped)
}

func TestSession_OutOfRange(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	require.NoError(t, s.Start(ctx))

	for _, idx := range []int{-1, 3, 99} {
		_, err := s.Answer(ctx, idx, "some answer")
		var oor *report.IndexOutOfRangeError
		require.ErrorAs(t, err, &oor, "index %d", idx)
		assert.Equal(t, 3, oor.Total)
	}
	done, total := s.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 3, total)
}

func TestSession_EndEarlyReconciles(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	require.NoError(t, s.Start(ctx))
	_, err := s.Answer(ctx, 0, recursionAnswer)
	require.NoError(t, err)
	require.NoError(t, s.End(ctx))

	res, err := s.Result()
	require.NoError(t, err)
	assert.True(t, res.EndedEarly)
	assert.Equal(t, 1, res.Report.QuestionsAnswered)
	assert.Equal(t, 2, res.Report.QuestionsSkipped)
	// 6.3 + 0 + 0 over 3 questions = 21
	assert.Equal(t, 21, res.Report.OverallScore)
	assert.Equal(t, "Not answered", res.Questions[1].Feedback)
	assert.Equal(t, scoring.TierSkipped, res.Questions[2].Tier)
}

func TestSession_NextWrapsToUnanswered(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	require.NoError(t, s.Start(ctx))

	_, err := s.Skip(ctx, 1)
	require.NoError(t, err)
	// Current is still 0 and unanswered; Next moves past 1 to 2.
	q, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 2, q.Index)

	_, err = s.Skip(ctx, 2)
	require.NoError(t, err)
	q, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, 0, q.Index)
}

func TestSession_EmptyQuestionSet(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, PhaseCompleted, s.Phase())

	rep, err := s.Report()
	require.NoError(t, err)
	assert.Equal(t, 0, rep.OverallScore)
	assert.Equal(t, []string{"Participated in the interview"}, rep.Strengths)
}

func TestNew_RejectsMalformedQuestions(t *testing.T) {
	_, err := New([]question.Question{{Index: 0, Text: "", Category: question.CategoryHR}})
	var verr *question.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSession_ConcurrentSubmitsScoreOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	require.NoError(t, s.Start(ctx))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, dup int
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Answer(ctx, 0, recursionAnswer)
			mu.Lock()
			defer mu.Unlock()
			var d *report.DuplicateEventError
			switch {
			case err == nil:
				ok++
			case errors.As(err, &d):
				dup++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
	assert.Equal(t, 19, dup)
}

func TestSession_ResponseTimeAndResult(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, WithCandidate("Sam"), WithDifficulty("medium"))
	require.NoError(t, s.Start(ctx))
	_, err := s.Answer(ctx, 0, recursionAnswer)
	require.NoError(t, err)
	require.NoError(t, s.End(ctx))

	res, err := s.Result()
	require.NoError(t, err)
	assert.Equal(t, "test-session", res.SessionID)
	assert.Equal(t, "Sam", res.Candidate)
	assert.Equal(t, "medium", res.Difficulty)

	q0 := res.Questions[0]
	assert.Equal(t, 1, q0.QuestionNumber)
	// The fake clock ticks 5s per reading: asked at one tick, answered the next.
	assert.InDelta(t, 5, q0.ResponseSeconds, 0.001)
	assert.Equal(t, "Good answer. Can you think of any edge cases or limitations?", q0.Followup)
	require.NotNil(t, q0.Analytics)
	assert.Equal(t, 17, q0.Analytics.WordCount)
	assert.Equal(t, 1, res.Communication.Answers)
	assert.True(t, res.CompletedAt.After(res.StartedAt))
}

func TestSession_TruncatesLongQuestionText(t *testing.T) {
	long := question.Question{Index: 0, Category: question.CategoryGeneral,
		Text: "Describe " + string(bytes.Repeat([]byte("very "), 40)) + "long things."}
	s, err := New([]question.Question{long})
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.End(context.Background()))

	res, err := s.Result()
	require.NoError(t, err)
	assert.Len(t, []rune(res.Questions[0].QuestionText), 100)
}

func TestSession_RecordsEvents(t *testing.T) {
	st, err := store.Open("file:interview_events?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	var logs bytes.Buffer
	ctx := context.Background()
	s := newTestSession(t, WithRecorder(st.EventRepo()), WithLogger(testhelpers.NewLogger(&logs)))
	require.NoError(t, s.Start(ctx))
	_, err = s.Answer(ctx, 0, recursionAnswer)
	require.NoError(t, err)
	_, err = s.Skip(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, s.End(ctx))

	sessions, err := st.EventRepo().QuerySessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, store.SessionStatusCompleted, sessions[0].Status)
	assert.Equal(t, 1, sessions[0].Answered)
	assert.Equal(t, 2, sessions[0].Skipped)

	answers, err := st.EventRepo().SessionAnswers(ctx, "test-session")
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, recursionAnswer, answers[0].AnswerText)
	assert.True(t, answers[1].Skipped)

	assert.Contains(t, logs.String(), "session_id=test-session")
	assert.NotContains(t, logs.String(), "failed to record")
}

func TestSession_RecorderFailureIsLogged(t *testing.T) {
	st, err := store.Open("file:interview_fail?mode=memory&cache=shared")
	require.NoError(t, err)
	st.Close()

	var logs bytes.Buffer
	s := newTestSession(t, WithRecorder(st.EventRepo()), WithLogger(testhelpers.NewLogger(&logs)))
	require.NoError(t, s.Start(context.Background()))
	assert.Contains(t, logs.String(), "failed to record session start")
}
