package models

import (
	"time"

	"gorm.io/gorm"
)

// Feedback is a resident's reaction to the service, optionally tied to a
// specific appointment. Immutable once created.
type Feedback struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CustomerID    uint           `gorm:"not null;index" json:"customer_id"`
	Customer      User           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer"`
	AppointmentID *uint          `gorm:"index" json:"appointment_id"`
	Appointment   *Appointment   `gorm:"foreignKey:AppointmentID;constraint:OnDelete:SET NULL" json:"-"`
	Rating        int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Message       string         `gorm:"type:text;not null" json:"message"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedbacks"
}
