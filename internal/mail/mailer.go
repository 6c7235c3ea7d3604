package mail

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"peppertree/internal/model"
)

// Mailer sends the tour-request notifications. Delivery is fire-and-forget:
// callers log failures and keep going, a lost mail never blocks persistence.
type Mailer interface {
	SendTourRequest(appt *model.Appointment) error
	SendTourConfirmation(appt *model.Appointment) error
}

// Config holds SMTP settings. An empty Host disables delivery.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Operator string
}

// New returns an SMTP mailer, or a disabled one when no host is configured.
func New(cfg Config) Mailer {
	if cfg.Host == "" {
		return &disabledMailer{}
	}
	return &smtpMailer{cfg: cfg}
}

type disabledMailer struct{}

func (m *disabledMailer) SendTourRequest(appt *model.Appointment) error {
	log.Printf("mail disabled, skipping operator notification for appointment %s", appt.ID)
	return nil
}

func (m *disabledMailer) SendTourConfirmation(appt *model.Appointment) error {
	log.Printf("mail disabled, skipping confirmation for appointment %s", appt.ID)
	return nil
}

type smtpMailer struct {
	cfg Config
}

func (m *smtpMailer) send(to, subject, body string) error {
	msg := strings.Builder{}
	fmt.Fprintf(&msg, "From: PepperTree Townhomes <%s>\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}

func slotLines(appt *model.Appointment) string {
	labels := map[int]string{1: "1st Choice", 2: "2nd Choice", 3: "3rd Choice"}
	lines := make([]string, 0, len(appt.TimeSlots))
	for _, slot := range appt.TimeSlots {
		label, ok := labels[slot.Priority]
		if !ok {
			label = fmt.Sprintf("Choice %d", slot.Priority)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, slot.Formatted))
	}
	return strings.Join(lines, "\n")
}

// SendTourRequest notifies the operator about a new tour request.
func (m *smtpMailer) SendTourRequest(appt *model.Appointment) error {
	var b strings.Builder
	b.WriteString("New Tour Schedule Request\n\n")
	b.WriteString("Contact Information:\n")
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "Name: %s\n", appt.Contact.Name)
	fmt.Fprintf(&b, "Email: %s\n", appt.Contact.Email)
	fmt.Fprintf(&b, "Phone: %s\n\n", appt.Contact.Phone)
	b.WriteString("Tour Details:\n")
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "Unit Interest: %s\n\n", appt.TourDetails.UnitText)
	b.WriteString("Preferred Time Slots:\n")
	b.WriteString("------------------------\n")
	b.WriteString(slotLines(appt) + "\n\n")
	if appt.Notes != "" && appt.Notes != "None" {
		b.WriteString("Additional Notes:\n")
		b.WriteString("------------------------\n")
		b.WriteString(appt.Notes + "\n\n")
	}
	b.WriteString("------------------------\n")
	fmt.Fprintf(&b, "Submitted: %s\n", time.Now().Format("January 2, 2006 3:04 PM"))

	subject := "New Tour Schedule Request - " + appt.Contact.Name
	return m.send(m.cfg.Operator, subject, b.String())
}

// SendTourConfirmation acknowledges the request to the visitor.
func (m *smtpMailer) SendTourConfirmation(appt *model.Appointment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", appt.Contact.Name)
	b.WriteString("Thank you for your interest in PepperTree Townhomes!\n\n")
	b.WriteString("We have received your tour schedule request with the following details:\n\n")
	b.WriteString("Preferred Time Slots:\n")
	b.WriteString(slotLines(appt) + "\n\n")
	fmt.Fprintf(&b, "Unit Interest: %s\n\n", appt.TourDetails.UnitText)
	b.WriteString("We will review your preferred times and contact you shortly to confirm your appointment.\n\n")
	b.WriteString("Best regards,\nPepperTree Townhomes Team\n")

	return m.send(appt.Contact.Email, "Tour Request Received - PepperTree Townhomes", b.String())
}
