package service

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/repository"
)

// SubmissionMeta carries the request metadata stamped onto every stored
// application.
type SubmissionMeta struct {
	RemoteAddr string
	UserAgent  string
}

// ApplicationService exposes the rental-application operations.
type ApplicationService interface {
	Submit(ctx context.Context, doc model.Application, meta SubmissionMeta) (filename, submittedAt string, err error)
	List(ctx context.Context) ([]model.ApplicationSummary, error)
	Get(ctx context.Context, filename string) (model.Application, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	now          func() time.Time
}

// NewApplicationService builds an ApplicationService.
func NewApplicationService(applications repository.ApplicationRepository) ApplicationService {
	return &applicationService{applications: applications, now: time.Now}
}

// Submit stamps server metadata onto the applicant-supplied document and
// persists it. The returned filename is the record's identity.
func (s *applicationService) Submit(ctx context.Context, doc model.Application, meta SubmissionMeta) (string, string, error) {
	if len(doc) == 0 {
		return "", "", apperrors.ErrEmptyBody
	}

	now := s.now()
	submittedAt := now.Format(time.RFC3339)
	doc["submittedAt"] = submittedAt
	doc["submittedFrom"] = orUnknown(meta.RemoteAddr)
	doc["userAgent"] = orUnknown(meta.UserAgent)
	doc["serverTime"] = now.Unix()

	filename, err := s.applications.Save(ctx, doc, now)
	if err != nil {
		return "", "", err
	}
	return filename, submittedAt, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// List returns application summaries, newest first; unparseable timestamps
// sort last and the sort is stable.
func (s *applicationService) List(ctx context.Context) ([]model.ApplicationSummary, error) {
	records, err := s.applications.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ApplicationSummary, len(records))
	keys := make([]time.Time, len(records))
	for i, rec := range records {
		summaries[i] = rec.Data.Summarize(rec.Filename)
		keys[i] = parseSubmittedAt(summaries[i].SubmittedAt)
	}
	order := make([]int, len(summaries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].After(keys[order[b]])
	})

	out := make([]model.ApplicationSummary, len(summaries))
	for i, idx := range order {
		out[i] = summaries[idx]
	}
	return out, nil
}

// parseSubmittedAt accepts the formats applications have carried over time.
func parseSubmittedAt(s string) time.Time {
	for _, layout := range []string{time.RFC3339, model.SubmittedAtLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Get returns the full document; the filename it was addressed by is echoed
// under "_filename".
func (s *applicationService) Get(ctx context.Context, filename string) (model.Application, error) {
	name := filepath.Base(filename)
	doc, err := s.applications.FindByFilename(ctx, name)
	if err != nil {
		return nil, err
	}
	doc["_filename"] = name
	return doc, nil
}
