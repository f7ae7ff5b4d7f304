package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification type values for Notification.Type
const (
	NotificationConfirmation = "confirmation"
	NotificationApproval     = "approval"
	NotificationCancellation = "cancellation"
	NotificationReminder     = "reminder"
	NotificationAnnouncement = "announcement"
	NotificationUpdate       = "update"
)

// Notification is an in-app message addressed to a single user. Rows are
// created by system side effects only; the only mutation is flipping the
// read flag.
type Notification struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Message       string         `gorm:"size:255;not null" json:"message"`
	Type          string         `gorm:"size:20;not null;default:'update'" json:"type"`
	AppointmentID *uint          `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment   `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"-"`
	IsRead        bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
