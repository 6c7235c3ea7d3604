package model

// Appointment statuses. Status updates outside this set are rejected before
// the record file is touched.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// SubmittedAtLayout is the timestamp format stored in appointment records.
const SubmittedAtLayout = "2006-01-02 15:04:05"

// ValidStatus reports whether s is one of the allowed appointment statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Contact holds the visitor's contact details. Immutable after submission.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// TourDetails holds the unit the visitor asked about.
type TourDetails struct {
	Unit     string `json:"unit"`
	UnitText string `json:"unit_text"`
}

// TimeSlot is one prioritized tour time preference. Priority 1 is required at
// submission; 2 and 3 are optional.
type TimeSlot struct {
	Priority   int    `json:"priority"`
	Date       string `json:"date"`
	TimeHour   string `json:"time_hour"`
	TimePeriod string `json:"time_period"`
	Formatted  string `json:"formatted"`
}

// Appointment is a tour-schedule request, stored one file per record.
type Appointment struct {
	ID              string      `json:"id"`
	SubmittedAt     string      `json:"submitted_at"`
	Contact         Contact     `json:"contact"`
	TourDetails     TourDetails `json:"tour_details"`
	TimeSlots       []TimeSlot  `json:"time_slots"`
	Notes           string      `json:"notes"`
	Status          string      `json:"status"`
	StatusUpdatedAt string      `json:"status_updated_at,omitempty"`
}

// Normalize fills defaults for optional fields absent from older record files.
func (a *Appointment) Normalize() {
	if a.Notes == "" {
		a.Notes = "None"
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if a.TimeSlots == nil {
		a.TimeSlots = []TimeSlot{}
	}
}

// AppointmentSummary is the reduced list view of an appointment.
type AppointmentSummary struct {
	ID          string     `json:"id"`
	SubmittedAt string     `json:"submitted_at"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Unit        string     `json:"unit"`
	UnitText    string     `json:"unit_text"`
	TimeSlots   []TimeSlot `json:"time_slots"`
}

// Summary projects the appointment to its list view.
func (a *Appointment) Summary() AppointmentSummary {
	slots := a.TimeSlots
	if slots == nil {
		slots = []TimeSlot{}
	}
	return AppointmentSummary{
		ID:          a.ID,
		SubmittedAt: a.SubmittedAt,
		Name:        a.Contact.Name,
		Email:       a.Contact.Email,
		Phone:       a.Contact.Phone,
		Unit:        a.TourDetails.Unit,
		UnitText:    a.TourDetails.UnitText,
		TimeSlots:   slots,
	}
}
