package interview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/mockview/internal/store"
)

// Save stores a result in repo.
func Save(ctx context.Context, repo store.ReportRepo, res *Result) error {
	if res.Report == nil {
		return fmt.Errorf("result %s has no report", res.SessionID)
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	rec := &store.ReportRecord{
		SessionID:         res.SessionID,
		Candidate:         res.Candidate,
		OverallScore:      res.Report.OverallScore,
		Grade:             string(res.Report.Grade),
		PlacementReady:    string(res.Report.PlacementReady),
		QuestionsAnswered: res.Report.QuestionsAnswered,
		QuestionsSkipped:  res.Report.QuestionsSkipped,
		Payload:           payload,
		CreatedAt:         res.CompletedAt,
	}
	return repo.Save(ctx, rec)
}

// Load fetches a stored result by session ID or unique ID prefix.
func Load(ctx context.Context, repo store.ReportRepo, id string) (*Result, error) {
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var res Result
	if err := json.Unmarshal(rec.Payload, &res); err != nil {
		return nil, fmt.Errorf("decode result %s: %w", rec.SessionID, err)
	}
	if res.Report == nil {
		return nil, fmt.Errorf("result %s has no report", rec.SessionID)
	}
	return &res, nil
}
