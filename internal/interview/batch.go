package interview

import (
	"context"
	"fmt"

	"github.com/abhisek/mockview/internal/question"
)

// EvaluateBatch runs a whole interview from prepared events, as when scoring
// a saved transcript. Rejected events (duplicates, bad indices) are listed
// in Result.Rejected; questions with no event count as skipped. Response
// times come only from event timestamps (see WithStartTime).
func EvaluateBatch(ctx context.Context, questions []question.Question, events []AnswerEvent, opts ...Option) (*Result, error) {
	s, err := New(questions, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid questions: %w", err)
	}
	s.replay = true
	if err := s.Start(ctx); err != nil {
		return nil, err
	}

	var rejected []string
	for _, ev := range events {
		if s.Phase() == PhaseCompleted {
			rejected = append(rejected, fmt.Sprintf("question %d: %v", ev.QuestionIndex, ErrCompleted))
			continue
		}
		if _, err := s.Submit(ctx, ev); err != nil {
			rejected = append(rejected, err.Error())
		}
	}
	if s.Phase() == PhaseInProgress {
		if err := s.End(ctx); err != nil {
			return nil, err
		}
	}

	res, err := s.Result()
	if err != nil {
		return nil, err
	}
	res.Rejected = rejected
	return res, nil
}
