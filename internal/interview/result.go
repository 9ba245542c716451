package interview

import (
	"time"
	"unicode/utf8"

	"github.com/abhisek/mockview/internal/analytics"
	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/report"
	"github.com/abhisek/mockview/internal/scoring"
)

const maxQuestionTextRunes = 100

// QuestionResult is the per-question line of a finished interview.
type QuestionResult struct {
	QuestionNumber  int                   `json:"question_number"`
	QuestionText    string                `json:"question_text"`
	Category        question.Category     `json:"category"`
	Answer          string                `json:"answer,omitempty"`
	Score           float64               `json:"score"`
	Skipped         bool                  `json:"skipped"`
	Tier            scoring.Tier          `json:"tier"`
	Feedback        string                `json:"feedback"`
	Detailed        string                `json:"detailed_feedback,omitempty"`
	MissedKeywords  []string              `json:"missed_keywords,omitempty"`
	Followup        string                `json:"followup,omitempty"`
	ResponseSeconds float64               `json:"response_seconds,omitempty"`
	Analytics       *analytics.Transcript `json:"analytics,omitempty"`
}

// Result is everything produced by a finished interview.
type Result struct {
	SessionID     string            `json:"session_id"`
	Candidate     string            `json:"candidate,omitempty"`
	Difficulty    string            `json:"difficulty,omitempty"`
	StartedAt     time.Time         `json:"started_at"`
	CompletedAt   time.Time         `json:"completed_at"`
	EndedEarly    bool              `json:"ended_early"`
	Report        *report.Report    `json:"report"`
	Questions     []QuestionResult  `json:"question_scores"`
	Communication analytics.Summary `json:"communication"`
	// Rejected lists events refused during a batch evaluation.
	Rejected []string `json:"rejected_events,omitempty"`
}

// Result assembles the report and per-question details of a completed
// interview.
func (s *Session) Result() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCompleted(); err != nil {
		return nil, err
	}
	rep, err := report.Aggregate(s.questions, s.scored())
	if err != nil {
		return nil, err
	}

	res := &Result{
		SessionID:   s.id,
		Candidate:   s.candidate,
		Difficulty:  s.difficulty,
		StartedAt:   s.startedAt,
		CompletedAt: s.completedAt,
		EndedEarly:  s.endedEarly,
		Report:      rep,
		Questions:   make([]QuestionResult, len(s.questions)),
	}

	var samples []analytics.Sample
	for i, q := range s.questions {
		qr := QuestionResult{
			QuestionNumber: i + 1,
			QuestionText:   truncate(q.Text, maxQuestionTextRunes),
			Category:       q.Category,
		}
		o := s.outcomes[i]
		if o == nil {
			qr.Skipped = true
			qr.Tier = scoring.TierSkipped
			qr.Feedback = "Not answered"
			res.Questions[i] = qr
			continue
		}
		qr.Answer = o.answer
		qr.Score = o.eval.Score
		qr.Skipped = o.eval.Skipped
		qr.Tier = o.eval.Tier
		qr.Feedback = o.eval.Brief
		qr.Detailed = o.eval.Detailed
		qr.MissedKeywords = o.eval.MissedKeywords
		if o.timed {
			qr.ResponseSeconds = o.responseTime.Seconds()
		}
		if !o.eval.Skipped {
			qr.Followup = question.Followup(o.eval.Score)
			t := o.transcript
			qr.Analytics = &t
			samples = append(samples, analytics.Sample{Transcript: t, ResponseTime: o.responseTime, Timed: o.timed})
		}
		res.Questions[i] = qr
	}
	res.Communication = analytics.Summarize(samples)
	return res, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
