package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/repository"
)

func newApplicationService(t *testing.T, now time.Time) *applicationService {
	t.Helper()
	return &applicationService{
		applications: repository.NewFileApplicationRepository(t.TempDir()),
		now:          func() time.Time { return now },
	}
}

func TestApplicationService_Submit(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 9, 0, time.UTC)
	svc := newApplicationService(t, now)

	doc := model.Application{"firstName": "Ann", "lastName": "Lee", "email": "ann@example.com"}
	meta := SubmissionMeta{RemoteAddr: "203.0.113.7", UserAgent: "Mozilla/5.0"}

	filename, submittedAt, err := svc.Submit(context.Background(), doc, meta)
	require.NoError(t, err)
	assert.Equal(t, "20260829_140509_Ann_Lee.json", filename)
	assert.Equal(t, now.Format(time.RFC3339), submittedAt)

	stored, err := svc.Get(context.Background(), filename)
	require.NoError(t, err)
	assert.Equal(t, submittedAt, stored.Str("submittedAt"))
	assert.Equal(t, "203.0.113.7", stored.Str("submittedFrom"))
	assert.Equal(t, "Mozilla/5.0", stored.Str("userAgent"))
	// serverTime round-trips through JSON as a number
	assert.EqualValues(t, now.Unix(), stored["serverTime"])
}

func TestApplicationService_SubmitEmptyBody(t *testing.T) {
	svc := newApplicationService(t, time.Now())

	_, _, err := svc.Submit(context.Background(), model.Application{}, SubmissionMeta{})
	assert.ErrorIs(t, err, apperrors.ErrEmptyBody)

	_, _, err = svc.Submit(context.Background(), nil, SubmissionMeta{})
	assert.ErrorIs(t, err, apperrors.ErrEmptyBody)
}

func TestApplicationService_SubmitUnknownMeta(t *testing.T) {
	svc := newApplicationService(t, time.Now())

	doc := model.Application{"firstName": "Ann", "lastName": "Lee"}
	filename, _, err := svc.Submit(context.Background(), doc, SubmissionMeta{})
	require.NoError(t, err)

	stored, err := svc.Get(context.Background(), filename)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", stored.Str("submittedFrom"))
	assert.Equal(t, "Unknown", stored.Str("userAgent"))
}

func TestApplicationService_ListNewestFirst(t *testing.T) {
	svc := newApplicationService(t, time.Now())
	ctx := context.Background()

	stamps := []time.Time{
		time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
	}
	names := []string{"Ann", "Beth", "Cara"}
	for i, stamp := range stamps {
		svc.now = func() time.Time { return stamp }
		_, _, err := svc.Submit(ctx, model.Application{"firstName": names[i], "lastName": "Lee"}, SubmissionMeta{})
		require.NoError(t, err)
	}

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "Beth", summaries[0].FirstName)
	assert.Equal(t, "Cara", summaries[1].FirstName)
	assert.Equal(t, "Ann", summaries[2].FirstName)
}

func TestApplicationService_ListLegacyAndUnparseableTimestamps(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc := newApplicationService(t, now)
	ctx := context.Background()

	// a record that never went through Submit: legacy date-only key
	legacy := model.Application{"firstName": "Old", "lastName": "Timer", "submissionDate": "2026-08-28"}
	_, err := svc.applications.Save(ctx, legacy, now.Add(-48*time.Hour))
	require.NoError(t, err)

	// and one with no usable timestamp at all
	blank := model.Application{"firstName": "No", "lastName": "Stamp"}
	_, err = svc.applications.Save(ctx, blank, now.Add(-24*time.Hour))
	require.NoError(t, err)

	_, _, err = svc.Submit(ctx, model.Application{"firstName": "New", "lastName": "Comer"}, SubmissionMeta{})
	require.NoError(t, err)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	assert.Equal(t, "New", summaries[0].FirstName)
	assert.Equal(t, "Old", summaries[1].FirstName)
	// unparseable timestamp sorts last
	assert.Equal(t, "No", summaries[2].FirstName)
	assert.Equal(t, "2026-08-28", summaries[1].SubmittedAt)
}

func TestApplicationService_GetEchoesFilename(t *testing.T) {
	svc := newApplicationService(t, time.Date(2026, 8, 29, 14, 5, 9, 0, time.UTC))
	ctx := context.Background()

	filename, _, err := svc.Submit(ctx, model.Application{"firstName": "Ann", "lastName": "Lee"}, SubmissionMeta{})
	require.NoError(t, err)

	doc, err := svc.Get(ctx, filename)
	require.NoError(t, err)
	assert.Equal(t, filename, doc.Str("_filename"))

	// path components are stripped before the lookup
	doc, err = svc.Get(ctx, "subdir/"+filename)
	require.NoError(t, err)
	assert.Equal(t, filename, doc.Str("_filename"))

	_, err = svc.Get(ctx, "missing.json")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}
