package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "peppertree/internal/errors"
	"peppertree/internal/model"
	"peppertree/internal/storage"
)

const appointmentPrefix = "apt_"

// NewAppointmentID returns an opaque, non-sequential appointment id with a
// time-ordered component. No existence check is needed before use.
func NewAppointmentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return appointmentPrefix + id.String()
}

// AppointmentRepository defines persistence operations over the appointments
// directory, one JSON file per record.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	List(ctx context.Context) ([]model.Appointment, error)
	Update(ctx context.Context, appt *model.Appointment) error
}

type fileAppointmentRepository struct {
	dir string
}

// NewFileAppointmentRepository builds a repository over dir.
func NewFileAppointmentRepository(dir string) AppointmentRepository {
	return &fileAppointmentRepository{dir: dir}
}

// filenameFor resolves an id to its record filename. The id is stripped of
// every character outside [A-Za-z0-9_-] before the name is built, the same
// transform the records were written with. Resolution is basename-only, so a
// traversal attempt just becomes a key that matches nothing.
func (r *fileAppointmentRepository) filenameFor(id string) string {
	token := strings.TrimPrefix(storage.SanitizeToken(id), appointmentPrefix)
	return appointmentPrefix + token + ".json"
}

func (r *fileAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	if appt.ID == "" {
		appt.ID = NewAppointmentID()
	}
	data, err := storage.Encode(appt)
	if err != nil {
		return err
	}
	path := filepath.Join(r.dir, r.filenameFor(appt.ID))
	if err := storage.WriteExclusive(path, data); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("appointment %s already exists: %w", appt.ID, err)
		}
		return fmt.Errorf("write appointment: %w", err)
	}
	return nil
}

func (r *fileAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	path := filepath.Join(r.dir, r.filenameFor(id))
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read appointment: %w", err)
	}
	var appt model.Appointment
	if err := storage.Decode(data, &appt); err != nil {
		return nil, err
	}
	appt.Normalize()
	return &appt, nil
}

// List reads every appointment file in the directory. Corrupt files are
// skipped; one bad record never fails the whole listing.
func (r *fileAppointmentRepository) List(ctx context.Context) ([]model.Appointment, error) {
	entries, err := os.ReadDir(r.dir)
	if os.IsNotExist(err) {
		return []model.Appointment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read appointments directory: %w", err)
	}

	appointments := make([]model.Appointment, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, appointmentPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			continue
		}
		var appt model.Appointment
		if err := storage.Decode(data, &appt); err != nil {
			continue
		}
		if appt.ID == "" {
			// older files carried no id field; derive it from the filename
			appt.ID = strings.TrimSuffix(name, ".json")
		}
		appt.Normalize()
		appointments = append(appointments, appt)
	}
	return appointments, nil
}

func (r *fileAppointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	path := filepath.Join(r.dir, r.filenameFor(appt.ID))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return apperrors.ErrAppointmentNotFound
	}
	data, err := storage.Encode(appt)
	if err != nil {
		return err
	}
	if err := storage.WriteAtomic(path, data); err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}
