package models

import (
	"time"
)

// Action labels for AppointmentHistory.Action
const (
	ActionCreated       = "Created"
	ActionUpdated       = "Updated"
	ActionDeleted       = "Deleted"
	ActionStatusChanged = "Status Changed"
)

// AppointmentHistory is the append-only audit trail for appointment mutations.
// Rows are never updated or deleted; they are read newest-first. There is
// deliberately no soft-delete column on this model.
type AppointmentHistory struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	AppointmentID uint        `gorm:"not null;index" json:"appointment_id"`
	Appointment   Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	ChangedByID   *uint       `gorm:"index" json:"changed_by_id"`
	ChangedBy     *User       `gorm:"foreignKey:ChangedByID;constraint:OnDelete:SET NULL" json:"changed_by,omitempty"`
	Action        string      `gorm:"size:50;not null" json:"action"`
	Changes       string      `gorm:"type:text" json:"changes"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for the AppointmentHistory model
func (AppointmentHistory) TableName() string {
	return "appointment_histories"
}
