package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceHistory is the completion record for a fulfilled appointment.
// Exactly one row exists per appointment, created on the first transition
// into the completed status.
type ServiceHistory struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	AppointmentID uint           `gorm:"uniqueIndex;not null" json:"appointment_id"`
	Appointment   Appointment    `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"appointment"`
	CompletedAt   time.Time      `gorm:"not null" json:"completed_at"`
	StaffNotes    string         `gorm:"type:text" json:"staff_notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the ServiceHistory model
func (ServiceHistory) TableName() string {
	return "service_histories"
}
