package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"
)

// ReportFormatVersion is the payload format written by this build. Readers
// accept any payload with the same major version.
const ReportFormatVersion = "v1.1.0"

var (
	// ErrIncompatibleReport is returned for payloads from another major format.
	ErrIncompatibleReport = errors.New("incompatible report format")

	// ErrAmbiguousID is returned when an ID prefix matches several reports.
	ErrAmbiguousID = errors.New("ambiguous report id")
)

// CheckFormatVersion reports whether a stored payload version can be read.
func CheckFormatVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleReport, v)
	}
	if semver.Major(v) != semver.Major(ReportFormatVersion) {
		return fmt.Errorf("%w: %s, this build reads %s.x", ErrIncompatibleReport, v, semver.Major(ReportFormatVersion))
	}
	return nil
}

type reportRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var reportSummaryColumns = []string{
	"session_id", "sequence", "candidate", "overall_score", "grade", "placement_ready",
	"questions_answered", "questions_skipped", "format_version", "created_at",
}

var reportColumns = slices.Concat(reportSummaryColumns, []string{"payload"})

func (r *reportRepo) Save(ctx context.Context, rec *ReportRecord) error {
	if rec.FormatVersion == "" {
		rec.FormatVersion = ReportFormatVersion
	}
	if err := CheckFormatVersion(rec.FormatVersion); err != nil {
		return err
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	rec.Sequence = seqNum
	created := millis(rec.CreatedAt)
	rec.CreatedAt = fromMillis(created)

	ins := sqlite().Insert("reports").
		Columns(reportColumns...).
		Values(rec.SessionID, rec.Sequence, rec.Candidate, rec.OverallScore, rec.Grade, rec.PlacementReady,
			rec.QuestionsAnswered, rec.QuestionsSkipped, rec.FormatVersion, created, string(rec.Payload)).
		OnConflict(entsql.ConflictColumns("session_id"), entsql.ResolveWithNewValues())
	if _, err := execQuery(ctx, r.db, ins); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (r *reportRepo) Get(ctx context.Context, id string) (*ReportRecord, error) {
	// A blank prefix would match every report.
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("report %q: %w", id, ErrNotFound)
	}
	sel := sqlite().Select(reportColumns...).
		From(entsql.Table("reports")).
		Where(entsql.HasPrefix("session_id", id)).
		OrderBy("session_id").
		Limit(2)

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	defer rows.Close()

	var found []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		var created int64
		var payload string
		if err := rows.Scan(&rec.SessionID, &rec.Sequence, &rec.Candidate, &rec.OverallScore, &rec.Grade,
			&rec.PlacementReady, &rec.QuestionsAnswered, &rec.QuestionsSkipped, &rec.FormatVersion,
			&created, &payload); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rec.CreatedAt = fromMillis(created)
		rec.Payload = []byte(payload)
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var rec *ReportRecord
	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	case found[0].SessionID == id:
		rec = &found[0]
	case len(found) > 1:
		return nil, fmt.Errorf("report %s: %w", id, ErrAmbiguousID)
	default:
		rec = &found[0]
	}

	if err := CheckFormatVersion(rec.FormatVersion); err != nil {
		return nil, fmt.Errorf("report %s: %w", rec.SessionID, err)
	}
	return rec, nil
}

func (r *reportRepo) List(ctx context.Context, opts QueryOpts) ([]ReportRecord, error) {
	sel := sqlite().Select(reportSummaryColumns...).From(entsql.Table("reports"))
	applyOpts(sel, opts, "created_at")

	rows, err := selectRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		var created int64
		if err := rows.Scan(&rec.SessionID, &rec.Sequence, &rec.Candidate, &rec.OverallScore, &rec.Grade,
			&rec.PlacementReady, &rec.QuestionsAnswered, &rec.QuestionsSkipped, &rec.FormatVersion,
			&created); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		rec.CreatedAt = fromMillis(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *reportRepo) Delete(ctx context.Context, sessionID string) error {
	del := sqlite().Delete("reports").Where(entsql.EQ("session_id", sessionID))
	if _, err := execQuery(ctx, r.db, del); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
