package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body", "created_at",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := sqlite().Insert("llm_request_events").
		Columns(llmEventColumns[1:]...).
		Values(seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
			time.Now().UnixMilli())
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	sel := sqlite().Select(llmEventColumns...).From(entsql.Table("llm_request_events"))
	applyOpts(sel, opts, "created_at")

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var out []LLMEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	sel := sqlite().Select(llmEventColumns...).
		From(entsql.Table("llm_request_events")).
		Where(entsql.EQ("id", id))

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanLLMEvent(rows)
}

func (r *eventRepo) LLMUsage(ctx context.Context, by UsageGroup) ([]LLMUsage, error) {
	switch by {
	case UsageByPurpose, UsageByModel:
	default:
		return nil, fmt.Errorf("unknown usage grouping %q", by)
	}
	col := string(by)
	sel := sqlite().Select(
		col,
		entsql.Count("*"),
		entsql.Sum("success"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		From(entsql.Table("llm_request_events")).
		GroupBy(col).
		OrderBy(col)

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		var succeeded int
		var avg float64
		if err := rows.Scan(&u.Key, &u.Calls, &succeeded, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.Failures = u.Calls - succeeded
		u.AvgLatencyMs = int64(avg + 0.5)
		out = append(out, u)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row scanner) (*LLMEventRecord, error) {
	var rec LLMEventRecord
	var created int64
	err := row.Scan(&rec.ID, &rec.Sequence, &rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens,
		&rec.OutputTokens, &rec.LatencyMs, &rec.Success, &rec.ErrorMessage, &rec.RequestBody,
		&rec.ResponseBody, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.Timestamp = fromMillis(created)
	return &rec, nil
}
