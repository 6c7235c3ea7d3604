package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/storage"
)

// ApplicationRecord pairs a stored application with the filename that
// addresses it. The filename is the record's identity.
type ApplicationRecord struct {
	Filename string
	Data     model.Application
}

// ApplicationRepository defines persistence operations over the applications
// directory. Applications are immutable once written; there is no update or
// delete.
type ApplicationRepository interface {
	Save(ctx context.Context, doc model.Application, submitted time.Time) (filename string, err error)
	FindByFilename(ctx context.Context, name string) (model.Application, error)
	List(ctx context.Context) ([]ApplicationRecord, error)
}

type fileApplicationRepository struct {
	dir string
}

// NewFileApplicationRepository builds a repository over dir.
func NewFileApplicationRepository(dir string) ApplicationRepository {
	return &fileApplicationRepository{dir: dir}
}

// Save writes the document under {timestamp}_{firstName}_{lastName}.json,
// appending _1, _2, ... until an unused name is found. The exclusive create
// turns the check-then-act window into a failed attempt that just moves on to
// the next counter, so two simultaneous submissions can never share a file.
func (r *fileApplicationRepository) Save(ctx context.Context, doc model.Application, submitted time.Time) (string, error) {
	data, err := storage.Encode(doc)
	if err != nil {
		return "", err
	}

	base := submitted.Format("20060102_150405") +
		"_" + storage.SanitizeNamePart(doc.Str("firstName")) +
		"_" + storage.SanitizeNamePart(doc.Str("lastName"))

	filename := base + ".json"
	for counter := 1; ; counter++ {
		err := storage.WriteExclusive(filepath.Join(r.dir, filename), data)
		if err == nil {
			return filename, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("write application: %w", err)
		}
		filename = fmt.Sprintf("%s_%d.json", base, counter)
	}
}

// FindByFilename resolves name to a record. Only the basename is used, so the
// lookup can never escape the applications directory.
func (r *fileApplicationRepository) FindByFilename(ctx context.Context, name string) (model.Application, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || !strings.HasSuffix(name, ".json") {
		return nil, apperrors.ErrInvalidFilename
	}
	data, err := os.ReadFile(filepath.Join(r.dir, name))
	if os.IsNotExist(err) {
		return nil, apperrors.ErrApplicationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read application: %w", err)
	}
	var doc model.Application
	if err := storage.Decode(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// List reads every application file in the directory, skipping corrupt ones.
func (r *fileApplicationRepository) List(ctx context.Context) ([]ApplicationRecord, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return []ApplicationRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read applications directory: %w", err)
	}

	records := make([]ApplicationRecord, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			continue
		}
		var doc model.Application
		if err := storage.Decode(data, &doc); err != nil {
			continue
		}
		records = append(records, ApplicationRecord{Filename: name, Data: doc})
	}
	return records, nil
}
