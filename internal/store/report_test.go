package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(id string, overall int) *ReportRecord {
	return &ReportRecord{
		SessionID:         id,
		Candidate:         "Sam",
		OverallScore:      overall,
		Grade:             "B",
		PlacementReady:    "Needs Work",
		QuestionsAnswered: 4,
		QuestionsSkipped:  1,
		Payload:           json.RawMessage(`{"report":{"overall_score":` + itoa(overall) + `}}`),
	}
}

func itoa(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}

func TestReportRepo_SaveGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	rec := sampleReport("3f2a9c1e-aaaa", 64)
	require.NoError(t, repo.Save(ctx, rec))
	assert.Equal(t, ReportFormatVersion, rec.FormatVersion)
	assert.NotZero(t, rec.Sequence)

	got, err := repo.Get(ctx, "3f2a9c1e-aaaa")
	require.NoError(t, err)
	assert.Equal(t, 64, got.OverallScore)
	assert.Equal(t, "Needs Work", got.PlacementReady)
	assert.JSONEq(t, string(rec.Payload), string(got.Payload))
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}

func TestReportRepo_SaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleReport("abc", 40)))
	require.NoError(t, repo.Save(ctx, sampleReport("abc", 75)))

	list, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 75, list[0].OverallScore)
	assert.Nil(t, list[0].Payload)
}

func TestReportRepo_GetByPrefix(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleReport("aa11", 50)))
	require.NoError(t, repo.Save(ctx, sampleReport("aa22", 60)))
	require.NoError(t, repo.Save(ctx, sampleReport("bb33", 70)))

	got, err := repo.Get(ctx, "bb")
	require.NoError(t, err)
	assert.Equal(t, "bb33", got.SessionID)

	_, err = repo.Get(ctx, "aa")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = repo.Get(ctx, "zz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepo_GetBlankID(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, sampleReport("only-one", 55)))

	for _, id := range []string{"", "   "} {
		_, err := repo.Get(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound, "id %q", id)
	}
}

func TestReportRepo_IncompatibleVersion(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	rec := sampleReport("old", 50)
	rec.FormatVersion = "v3.0.0"
	assert.ErrorIs(t, repo.Save(ctx, rec), ErrIncompatibleReport)

	// Simulate a payload written by a future major version.
	require.NoError(t, repo.Save(ctx, sampleReport("future", 50)))
	_, err := s.DB().Exec(`UPDATE reports SET format_version = 'v2.0.0' WHERE session_id = 'future'`)
	require.NoError(t, err)

	_, err = repo.Get(ctx, "future")
	assert.ErrorIs(t, err, ErrIncompatibleReport)
}

func TestReportRepo_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.ReportRepo()
	ctx := context.Background()

	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, repo.Save(ctx, sampleReport(id, 50+i)))
	}

	list, err := repo.List(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r3", list[0].SessionID)

	require.NoError(t, repo.Delete(ctx, "r3"))
	require.NoError(t, repo.Delete(ctx, "r3"))
	_, err = repo.Get(ctx, "r3")
	assert.ErrorIs(t, err, ErrNotFound)
}
