package service

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"sort"
	"strings"
	"time"

	apperrors "peppertree/internal/errors"
	mailer "peppertree/internal/mail"
	"peppertree/internal/model"
	"peppertree/internal/repository"
)

// unitNames maps unit codes from the tour form to display text.
var unitNames = map[string]string{
	"720c": "Unit 720C - 3BR Premium",
	"161d": "Unit 161D - 3BR Great Value",
	"151a": "Unit 151A - 3BR Prime Location",
}

// AppointmentInput is a tour-schedule submission. The first time slot is
// required; slots 2 and 3 are optional.
type AppointmentInput struct {
	Name  string
	Email string
	Phone string
	Unit  string
	Notes string

	Date1, Time1Hour, Time1Period string
	Date2, Time2Hour, Time2Period string
	Date3, Time3Hour, Time3Period string
}

// AppointmentService exposes the tour-scheduling operations.
type AppointmentService interface {
	Submit(ctx context.Context, in *AppointmentInput) (*model.Appointment, error)
	List(ctx context.Context) ([]model.AppointmentSummary, error)
	Get(ctx context.Context, id string) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Appointment, error)
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	mailer       mailer.Mailer
	now          func() time.Time
}

// NewAppointmentService builds an AppointmentService.
func NewAppointmentService(appointments repository.AppointmentRepository, m mailer.Mailer) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		mailer:       m,
		now:          time.Now,
	}
}

// formatSlot renders the human-readable slot line, e.g.
// "Monday, January 2, 2006 at 3:00 PM". A date that does not parse is shown
// as submitted.
func formatSlot(date, hour, period string) string {
	display := date
	if t, err := time.Parse("2006-01-02", date); err == nil {
		display = t.Format("Monday, January 2, 2006")
	}
	return fmt.Sprintf("%s at %s:00 %s", display, hour, period)
}

// buildSlots assembles the prioritized slot list; a slot counts only when all
// three of its fields are present.
func buildSlots(in *AppointmentInput) []model.TimeSlot {
	raw := []struct {
		priority           int
		date, hour, period string
	}{
		{1, in.Date1, in.Time1Hour, in.Time1Period},
		{2, in.Date2, in.Time2Hour, in.Time2Period},
		{3, in.Date3, in.Time3Hour, in.Time3Period},
	}
	slots := make([]model.TimeSlot, 0, 3)
	for _, s := range raw {
		if s.date == "" || s.hour == "" || s.period == "" {
			continue
		}
		slots = append(slots, model.TimeSlot{
			Priority:   s.priority,
			Date:       s.date,
			TimeHour:   s.hour,
			TimePeriod: s.period,
			Formatted:  formatSlot(s.date, s.hour, s.period),
		})
	}
	return slots
}

// Submit validates and persists a tour request, then notifies the operator
// and the visitor. Mail failures are logged and do not fail the submission.
func (s *appointmentService) Submit(ctx context.Context, in *AppointmentInput) (*model.Appointment, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)

	if name == "" || email == "" || phone == "" ||
		in.Date1 == "" || in.Time1Hour == "" || in.Time1Period == "" {
		return nil, apperrors.ErrMissingFields
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.ErrInvalidEmail
	}

	unit := strings.TrimSpace(in.Unit)
	unitText, ok := unitNames[unit]
	if !ok {
		unitText = "No Preference"
	}

	notes := strings.TrimSpace(in.Notes)
	if notes == "" {
		notes = "None"
	}

	appt := &model.Appointment{
		ID:          repository.NewAppointmentID(),
		SubmittedAt: s.now().Format(model.SubmittedAtLayout),
		Contact:     model.Contact{Name: name, Email: email, Phone: phone},
		TourDetails: model.TourDetails{Unit: unit, UnitText: unitText},
		TimeSlots:   buildSlots(in),
		Notes:       notes,
		Status:      model.StatusPending,
	}

	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}

	if err := s.mailer.SendTourRequest(appt); err != nil {
		log.Printf("tour request mail for %s failed: %v", appt.ID, err)
	}
	if err := s.mailer.SendTourConfirmation(appt); err != nil {
		log.Printf("tour confirmation mail for %s failed: %v", appt.ID, err)
	}

	return appt, nil
}

// List returns appointment summaries, newest first. Records whose timestamp
// is missing or unparseable sort last. The sort is stable, preserving load
// order for equal timestamps.
func (s *appointmentService) List(ctx context.Context) ([]model.AppointmentSummary, error) {
	appointments, err := s.appointments.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.AppointmentSummary, len(appointments))
	keys := make([]time.Time, len(appointments))
	for i, appt := range appointments {
		summaries[i] = appt.Summary()
		keys[i], _ = time.Parse(model.SubmittedAtLayout, appt.SubmittedAt)
	}
	order := make([]int, len(summaries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]].After(keys[order[b]])
	})

	out := make([]model.AppointmentSummary, len(summaries))
	for i, idx := range order {
		out[i] = summaries[idx]
	}
	return out, nil
}

// Get returns the full record for an appointment id.
func (s *appointmentService) Get(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.ErrAppointmentNotFound
	}
	return s.appointments.FindByID(ctx, id)
}

// UpdateStatus changes an appointment's status. The value is validated before
// the record file is touched; an invalid status leaves the file unchanged.
func (s *appointmentService) UpdateStatus(ctx context.Context, id, status string) (*model.Appointment, error) {
	if id == "" || status == "" {
		return nil, apperrors.ErrMissingFields
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	appt.Status = status
	appt.StatusUpdatedAt = s.now().Format(model.SubmittedAtLayout)

	if err := s.appointments.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}
