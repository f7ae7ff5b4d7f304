package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/models"
)

// EmailSender delivers outbound mail best-effort. Implementations return an
// error for logging purposes only; callers never propagate it.
type EmailSender interface {
	// SendAppointmentConfirmation is sent when an appointment is created
	SendAppointmentConfirmation(appt *models.Appointment) error

	// SendStatusUpdate is sent when an appointment's status changes
	SendStatusUpdate(appt *models.Appointment, previousStatus string) error

	// SendPickupReminder is sent the day before a scheduled pickup
	SendPickupReminder(appt *models.Appointment) error
}

// SMTPEmailSender implements EmailSender over SMTP
type SMTPEmailSender struct {
	dialer *gomail.Dialer
	from   string
}

var emailSenderInstance EmailSender

// InitEmailSender initializes the email sender with SMTP transport
func InitEmailSender(cfg *config.Config) EmailSender {
	emailSenderInstance = &SMTPEmailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
	return emailSenderInstance
}

// GetEmailSender returns the initialized email sender instance
func GetEmailSender() EmailSender {
	return emailSenderInstance
}

// SetEmailSender sets the email sender instance (primarily for testing)
func SetEmailSender(sender EmailSender) {
	emailSenderInstance = sender
}

func (s *SMTPEmailSender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendAppointmentConfirmation sends the creation confirmation email
func (s *SMTPEmailSender) SendAppointmentConfirmation(appt *models.Appointment) error {
	subject := fmt.Sprintf("Pickup Request Confirmed - #%d", appt.ID)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour pickup request #%d has been received.\n\n"+
			"Address: %s\nDate: %s at %s\nWaste type: %s\n\n"+
			"We will notify you when it is scheduled.\n",
		appt.Customer.Username, appt.ID, appt.Address,
		appt.PreferredDate, appt.PreferredTime,
		models.WasteTypeDisplayName(appt.WasteType),
	)
	return s.send(appt.Customer.Email, subject, body)
}

// SendStatusUpdate sends the status change email
func (s *SMTPEmailSender) SendStatusUpdate(appt *models.Appointment, previousStatus string) error {
	subject := fmt.Sprintf("Pickup Status Update - #%d", appt.ID)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour pickup request #%d changed from %s to %s.\n",
		appt.Customer.Username, appt.ID,
		models.StatusDisplayName(previousStatus),
		models.StatusDisplayName(appt.Status),
	)
	return s.send(appt.Customer.Email, subject, body)
}

// SendPickupReminder sends the day-before reminder email
func (s *SMTPEmailSender) SendPickupReminder(appt *models.Appointment) error {
	subject := fmt.Sprintf("Pickup Reminder - Tomorrow at %s", appt.PreferredTime)
	body := fmt.Sprintf(
		"Hi %s,\n\nReminder: your %s pickup is scheduled tomorrow (%s) at %s.\n",
		appt.Customer.Username,
		models.WasteTypeDisplayName(appt.WasteType),
		appt.PreferredDate, appt.PreferredTime,
	)
	return s.send(appt.Customer.Email, subject, body)
}
