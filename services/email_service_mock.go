package services

import (
	"sync"

	"github.com/wastecare/wastecare-api/models"
)

// SentEmail records one attempted delivery for assertions in tests
type SentEmail struct {
	Kind           string // "confirmation", "status_update" or "reminder"
	To             string
	AppointmentID  uint
	PreviousStatus string
}

// MockEmailSender implements EmailSender for testing, recording every send
type MockEmailSender struct {
	mu      sync.Mutex
	Sent    []SentEmail
	Fail    bool // when true every send returns FailErr
	FailErr error
}

// NewMockEmailSender creates a new mock email sender
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) record(e SentEmail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return m.FailErr
	}
	m.Sent = append(m.Sent, e)
	return nil
}

// SendAppointmentConfirmation records a confirmation send
func (m *MockEmailSender) SendAppointmentConfirmation(appt *models.Appointment) error {
	return m.record(SentEmail{
		Kind:          "confirmation",
		To:            appt.Customer.Email,
		AppointmentID: appt.ID,
	})
}

// SendStatusUpdate records a status update send
func (m *MockEmailSender) SendStatusUpdate(appt *models.Appointment, previousStatus string) error {
	return m.record(SentEmail{
		Kind:           "status_update",
		To:             appt.Customer.Email,
		AppointmentID:  appt.ID,
		PreviousStatus: previousStatus,
	})
}

// SendPickupReminder records a reminder send
func (m *MockEmailSender) SendPickupReminder(appt *models.Appointment) error {
	return m.record(SentEmail{
		Kind:          "reminder",
		To:            appt.Customer.Email,
		AppointmentID: appt.ID,
	})
}

// SentCount returns the number of recorded sends
func (m *MockEmailSender) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
