package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/models"
)

// AuditService appends immutable rows to the appointment audit trail. There
// is no update or delete path: the log is the source of truth for what
// happened to an appointment.
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates an audit service bound to db
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit row. actorID may be nil when the acting user has
// since been removed.
func (s *AuditService) Record(appointmentID uint, actorID *uint, action, changes string) error {
	entry := models.AppointmentHistory{
		AppointmentID: appointmentID,
		ChangedByID:   actorID,
		Action:        action,
		Changes:       changes,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// ListForAppointment returns the audit trail newest-first.
func (s *AuditService) ListForAppointment(appointmentID uint) ([]models.AppointmentHistory, error) {
	var entries []models.AppointmentHistory
	if err := s.db.Where("appointment_id = ?", appointmentID).
		Preload("ChangedBy").
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
