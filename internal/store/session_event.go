package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with SQL built by ent's dialect builders.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	switch data.Action {
	case SessionActionStart:
		seqNum, err := r.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		ins := sqlite().Insert("sessions").
			Columns("id", "sequence", "candidate", "difficulty", "total_questions", "status", "started_at").
			Values(data.SessionID, seqNum, data.Candidate, data.Difficulty, data.TotalQuestions,
				SessionStatusInProgress, millis(data.Timestamp))
		if _, err := execQuery(ctx, r.db, ins); err != nil {
			return fmt.Errorf("save session start: %w", err)
		}
		return nil

	case SessionActionEnd, SessionActionCancel:
		status := SessionStatusCompleted
		if data.Action == SessionActionCancel {
			status = SessionStatusCancelled
		}
		upd := sqlite().Update("sessions").
			Set("status", status).
			Set("answered", data.Answered).
			Set("skipped", data.Skipped).
			Set("ended_at", millis(data.Timestamp)).
			Where(entsql.EQ("id", data.SessionID))
		res, err := execQuery(ctx, r.db, upd)
		if err != nil {
			return fmt.Errorf("save session %s: %w", data.Action, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("session %s: %w", data.SessionID, ErrNotFound)
		}
		return nil

	default:
		return fmt.Errorf("unknown session action %q", data.Action)
	}
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := sqlite().Insert("answer_events").
		Columns("sequence", "session_id", "question_index", "category", "question_text",
			"answer_text", "skipped", "score", "tier", "response_ms", "created_at").
		Values(seqNum, data.SessionID, data.QuestionIndex, data.Category, data.QuestionText,
			data.AnswerText, data.Skipped, data.Score, data.Tier, data.ResponseMs, millis(data.Timestamp))
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	sel := sqlite().Select("id", "sequence", "session_id", "question_index", "category", "question_text",
		"answer_text", "skipped", "score", "tier", "response_ms", "created_at").
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("question_index")

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query session answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		var created int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.SessionID, &rec.QuestionIndex, &rec.Category,
			&rec.QuestionText, &rec.AnswerText, &rec.Skipped, &rec.Score, &rec.Tier, &rec.ResponseMs,
			&created); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = fromMillis(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error) {
	sel := sqlite().Select("id", "sequence", "candidate", "difficulty", "total_questions", "status",
		"answered", "skipped", "started_at", "ended_at").
		From(entsql.Table("sessions"))
	applyOpts(sel, opts, "started_at")

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var started int64
		var ended sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Candidate, &rec.Difficulty, &rec.TotalQuestions,
			&rec.Status, &rec.Answered, &rec.Skipped, &started, &ended); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.StartedAt = fromMillis(started)
		if ended.Valid {
			rec.EndedAt = fromMillis(ended.Int64)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
