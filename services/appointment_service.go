package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/models"
)

// maxAdvanceDays is how far ahead a pickup may be requested.
const maxAdvanceDays = 30

// minAddressLength is the minimum trimmed address length.
const minAddressLength = 10

// AppointmentInput carries the caller-editable fields of an appointment.
type AppointmentInput struct {
	Address             string   `json:"address"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	PreferredDate       string   `json:"preferred_date"` // YYYY-MM-DD
	PreferredTime       string   `json:"preferred_time"` // HH:MM
	WasteType           string   `json:"waste_type"`
	Priority            string   `json:"priority"`
	EstimatedWeight     *float64 `json:"estimated_weight"`
	Notes               string   `json:"notes"`
	SpecialInstructions string   `json:"special_instructions"`
}

// AppointmentService owns the appointment lifecycle: creation, edits,
// deletion and status transitions, each applied as one transaction together
// with its audit and notification side effects. Outbound email runs after
// commit and is never allowed to fail the operation.
type AppointmentService struct {
	db *gorm.DB
}

// NewAppointmentService creates an appointment service bound to db
func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{db: db}
}

// validate checks the caller-editable fields, normalizing the input in place.
func (s *AppointmentService) validate(input *AppointmentInput) error {
	fields := make(map[string]string)

	input.Address = strings.TrimSpace(input.Address)
	if len(input.Address) < minAddressLength {
		fields["address"] = fmt.Sprintf("Please provide a complete address with at least %d characters.", minAddressLength)
	}

	date, err := time.Parse("2006-01-02", input.PreferredDate)
	if err != nil {
		fields["preferred_date"] = "Invalid date format, expected YYYY-MM-DD."
	} else {
		today, _ := time.Parse("2006-01-02", time.Now().Format("2006-01-02"))
		if date.Before(today) {
			fields["preferred_date"] = "Pickup date cannot be in the past."
		} else if date.After(today.AddDate(0, 0, maxAdvanceDays)) {
			fields["preferred_date"] = fmt.Sprintf("Pickup date cannot be more than %d days in advance.", maxAdvanceDays)
		}
	}

	if _, err := time.Parse("15:04", input.PreferredTime); err != nil {
		fields["preferred_time"] = "Invalid time format, expected HH:MM."
	}

	if input.WasteType == "" {
		input.WasteType = models.WasteGeneral
	}
	if !models.ValidWasteType(input.WasteType) {
		fields["waste_type"] = "Unknown waste type."
	}

	if input.Priority == "" {
		input.Priority = models.PriorityNormal
	}
	if !models.ValidPriority(input.Priority) {
		fields["priority"] = "Unknown priority level."
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Get loads an appointment the actor is allowed to see.
func (s *AppointmentService) Get(actor *models.User, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.Preload("Customer").Preload("HandledBy").First(&appt, id).Error; err != nil {
		return nil, &NotFoundError{Entity: "appointment"}
	}
	if !actor.HasElevatedAccess() && appt.CustomerID != actor.ID {
		config.GetLogger().WithFields(map[string]interface{}{
			"user_id":        actor.ID,
			"appointment_id": id,
		}).Warn("denied appointment access")
		return nil, &NotFoundError{Entity: "appointment"}
	}
	return &appt, nil
}

// Create validates and persists a new pickup request for a resident,
// recording the audit entry and confirmation notification in the same
// transaction. A confirmation email is attempted after commit.
func (s *AppointmentService) Create(customer *models.User, input AppointmentInput) (*models.Appointment, error) {
	if customer.HasElevatedAccess() {
		return nil, &PermissionError{Reason: "only residents may create pickup requests"}
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	appt := models.Appointment{
		CustomerID:          customer.ID,
		Address:             input.Address,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		PreferredDate:       input.PreferredDate,
		PreferredTime:       input.PreferredTime,
		WasteType:           input.WasteType,
		Priority:            input.Priority,
		EstimatedWeight:     input.EstimatedWeight,
		Notes:               input.Notes,
		SpecialInstructions: input.SpecialInstructions,
		Status:              models.StatusRequested,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&appt).Error; err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		if err := NewAuditService(tx).Record(appt.ID, &customer.ID, models.ActionCreated,
			fmt.Sprintf("Pickup request for %s at %s (%s)", appt.PreferredDate, appt.PreferredTime, appt.WasteType)); err != nil {
			return err
		}

		msg := fmt.Sprintf("Your pickup request #%d has been submitted and is pending review.", appt.ID)
		if _, err := NewNotificationService(tx).Emit(customer.ID, msg, models.NotificationUpdate, &appt.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Customer").First(&appt, appt.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if appt.Customer.Email != "" {
		s.sendEmail(func(sender EmailSender) error {
			return sender.SendAppointmentConfirmation(&appt)
		}, appt.ID)
	}

	return &appt, nil
}

// Update applies caller edits to an appointment still in an editable status.
// A non-empty field diff produces one audit entry and one notification to
// the requester.
func (s *AppointmentService) Update(editor *models.User, id uint, input AppointmentInput) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.First(&appt, id).Error; err != nil {
		return nil, &NotFoundError{Entity: "appointment"}
	}

	if !editor.HasElevatedAccess() && appt.CustomerID != editor.ID {
		return nil, &PermissionError{Reason: fmt.Sprintf("user %d does not own appointment %d", editor.ID, id)}
	}
	if !appt.IsEditable() {
		return nil, &InvalidStateError{Status: appt.Status}
	}
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	diff := diffAppointment(&appt, &input)

	appt.Address = input.Address
	appt.Latitude = input.Latitude
	appt.Longitude = input.Longitude
	appt.PreferredDate = input.PreferredDate
	appt.PreferredTime = input.PreferredTime
	appt.WasteType = input.WasteType
	appt.Priority = input.Priority
	appt.EstimatedWeight = input.EstimatedWeight
	appt.Notes = input.Notes
	appt.SpecialInstructions = input.SpecialInstructions

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&appt).Error; err != nil {
			return fmt.Errorf("failed to update appointment: %w", err)
		}

		if diff == "" {
			return nil
		}

		if err := NewAuditService(tx).Record(appt.ID, &editor.ID, models.ActionUpdated, diff); err != nil {
			return err
		}

		msg := fmt.Sprintf("Your pickup request #%d has been updated.", appt.ID)
		if _, err := NewNotificationService(tx).Emit(appt.CustomerID, msg, models.NotificationUpdate, &appt.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Customer").Preload("HandledBy").First(&appt, appt.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return &appt, nil
}

// Delete removes an appointment (soft delete). Owners and elevated users may
// delete in any status; a terminal snapshot is recorded before removal.
func (s *AppointmentService) Delete(actor *models.User, id uint) error {
	var appt models.Appointment
	if err := s.db.First(&appt, id).Error; err != nil {
		return &NotFoundError{Entity: "appointment"}
	}

	if !actor.HasElevatedAccess() && appt.CustomerID != actor.ID {
		return &PermissionError{Reason: fmt.Sprintf("user %d does not own appointment %d", actor.ID, id)}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		snapshot := fmt.Sprintf("status=%s date=%s time=%s waste_type=%s address=%q",
			appt.Status, appt.PreferredDate, appt.PreferredTime, appt.WasteType, appt.Address)
		if err := NewAuditService(tx).Record(appt.ID, &actor.ID, models.ActionDeleted, snapshot); err != nil {
			return err
		}
		if err := tx.Delete(&appt).Error; err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}
		return nil
	})
}

// TransitionStatus moves an appointment to any recognized status. Elevated
// users only; no adjacency graph is enforced. The status write, service
// history creation, notification and audit row commit atomically; the status
// email is attempted after commit.
func (s *AppointmentService) TransitionStatus(actor *models.User, id uint, newStatus, staffNotes string) (*models.Appointment, error) {
	if !actor.HasElevatedAccess() {
		return nil, &PermissionError{Reason: fmt.Sprintf("user %d is not staff or admin", actor.ID)}
	}
	if !models.ValidStatus(newStatus) {
		return nil, &InvalidTransitionError{Status: newStatus}
	}

	var appt models.Appointment
	var oldStatus string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&appt, id).Error; err != nil {
			return &NotFoundError{Entity: "appointment"}
		}

		oldStatus = appt.Status
		now := time.Now()

		appt.Status = newStatus
		if newStatus == models.StatusRequested {
			appt.HandledByID = nil
		} else {
			appt.HandledByID = &actor.ID
		}
		if newStatus == models.StatusInProgress && oldStatus != models.StatusInProgress && appt.ScheduledAt == nil {
			appt.ScheduledAt = &now
		}
		if newStatus == models.StatusCompleted && oldStatus != models.StatusCompleted && appt.CompletedAt == nil {
			appt.CompletedAt = &now
		}

		if err := tx.Save(&appt).Error; err != nil {
			return fmt.Errorf("failed to update appointment status: %w", err)
		}

		notifications := NewNotificationService(tx)

		completionRecorded := false
		if newStatus == models.StatusCompleted {
			var existing int64
			if err := tx.Model(&models.ServiceHistory{}).Where("appointment_id = ?", appt.ID).Count(&existing).Error; err != nil {
				return fmt.Errorf("failed to check service history: %w", err)
			}
			if existing == 0 {
				notes := "Completed by " + actor.Username
				if staffNotes != "" {
					notes += ": " + staffNotes
				}
				history := models.ServiceHistory{
					AppointmentID: appt.ID,
					CompletedAt:   now,
					StaffNotes:    notes,
				}
				if err := tx.Create(&history).Error; err != nil {
					return fmt.Errorf("failed to create service history: %w", err)
				}
				if err := notifications.NotifyPickupCompleted(&appt); err != nil {
					return err
				}
				completionRecorded = true
			}
		}

		if !completionRecorded && oldStatus != newStatus {
			msg := fmt.Sprintf("Your pickup request #%d status has been updated to %s.",
				appt.ID, models.StatusDisplayName(newStatus))
			if _, err := notifications.Emit(appt.CustomerID, msg, models.NotificationUpdate, &appt.ID); err != nil {
				return err
			}
		}

		if oldStatus != newStatus {
			change := fmt.Sprintf("%s → %s", oldStatus, newStatus)
			if err := NewAuditService(tx).Record(appt.ID, &actor.ID, models.ActionStatusChanged, change); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Customer").Preload("HandledBy").First(&appt, appt.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}

	if oldStatus != appt.Status && appt.Customer.Email != "" {
		previous := oldStatus
		s.sendEmail(func(sender EmailSender) error {
			return sender.SendStatusUpdate(&appt, previous)
		}, appt.ID)
	}

	return &appt, nil
}

// sendEmail runs one best-effort delivery. Failures are logged and dropped.
func (s *AppointmentService) sendEmail(send func(EmailSender) error, appointmentID uint) {
	sender := GetEmailSender()
	if sender == nil {
		return
	}
	if err := send(sender); err != nil {
		config.GetLogger().WithFields(map[string]interface{}{
			"appointment_id": appointmentID,
			"error":          err.Error(),
		}).Error("failed to send appointment email")
	}
}

// diffAppointment serializes the field-level changes an update would apply.
// Returns "" when nothing changes.
func diffAppointment(appt *models.Appointment, input *AppointmentInput) string {
	var parts []string

	addStr := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			parts = append(parts, fmt.Sprintf("%s: %q → %q", field, oldVal, newVal))
		}
	}
	addFloat := func(field string, oldVal, newVal *float64) {
		format := func(v *float64) string {
			if v == nil {
				return "none"
			}
			return fmt.Sprintf("%g", *v)
		}
		if format(oldVal) != format(newVal) {
			parts = append(parts, fmt.Sprintf("%s: %s → %s", field, format(oldVal), format(newVal)))
		}
	}

	addStr("address", appt.Address, input.Address)
	addStr("preferred_date", appt.PreferredDate, input.PreferredDate)
	addStr("preferred_time", appt.PreferredTime, input.PreferredTime)
	addStr("waste_type", appt.WasteType, input.WasteType)
	addStr("priority", appt.Priority, input.Priority)
	addStr("notes", appt.Notes, input.Notes)
	addStr("special_instructions", appt.SpecialInstructions, input.SpecialInstructions)
	addFloat("latitude", appt.Latitude, input.Latitude)
	addFloat("longitude", appt.Longitude, input.Longitude)
	addFloat("estimated_weight", appt.EstimatedWeight, input.EstimatedWeight)

	return strings.Join(parts, "; ")
}
