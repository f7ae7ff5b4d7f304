package models

import (
	"time"

	"gorm.io/gorm"
)

// Status values for Appointment.Status
const (
	StatusRequested  = "requested"
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Waste type values for Appointment.WasteType
const (
	WasteGeneral    = "general"
	WasteRecyclable = "recyclable"
	WasteOrganic    = "organic"
	WasteHazardous  = "hazardous"
	WasteBulk       = "bulk"
)

// Priority values for Appointment.Priority
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var statusDisplayNames = map[string]string{
	StatusRequested:  "Requested",
	StatusScheduled:  "Scheduled",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

var wasteTypeDisplayNames = map[string]string{
	WasteGeneral:    "General Waste",
	WasteRecyclable: "Recyclable",
	WasteOrganic:    "Organic/Compost",
	WasteHazardous:  "Hazardous Waste",
	WasteBulk:       "Bulk Items",
}

var priorityDisplayNames = map[string]string{
	PriorityLow:    "Low Priority",
	PriorityNormal: "Normal",
	PriorityHigh:   "High Priority",
	PriorityUrgent: "Urgent",
}

// Appointment represents a single waste pickup request and its lifecycle state
type Appointment struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	CustomerID          uint           `gorm:"not null;index:idx_appointments_customer_status" json:"customer_id"`
	Customer            User           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer"`
	Address             string         `gorm:"not null" json:"address"`
	Latitude            *float64       `json:"latitude"`
	Longitude           *float64       `json:"longitude"`
	PreferredDate       string         `gorm:"size:10;not null;index" json:"preferred_date"` // YYYY-MM-DD
	PreferredTime       string         `gorm:"size:5;not null" json:"preferred_time"`        // HH:MM
	WasteType           string         `gorm:"not null;default:'general'" json:"waste_type"`
	EstimatedWeight     *float64       `json:"estimated_weight"` // kg
	ActualWeight        *float64       `json:"actual_weight"`    // kg
	Priority            string         `gorm:"not null;default:'normal'" json:"priority"`
	Notes               string         `gorm:"type:text" json:"notes"`
	SpecialInstructions string         `gorm:"type:text" json:"special_instructions"`
	Status              string         `gorm:"not null;default:'requested';index:idx_appointments_customer_status" json:"status"`
	HandledByID         *uint          `gorm:"index" json:"handled_by_id"` // nullable, set when staff takes over
	HandledBy           *User          `gorm:"foreignKey:HandledByID;constraint:OnDelete:SET NULL" json:"handled_by,omitempty"`
	ScheduledAt         *time.Time     `json:"scheduled_at"`
	CompletedAt         *time.Time     `json:"completed_at"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// IsEditable reports whether the appointment may still be modified by its owner.
func (a *Appointment) IsEditable() bool {
	return a.Status == StatusRequested || a.Status == StatusScheduled
}

// IsTerminal reports whether the appointment has reached a terminal status.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled
}

// ValidStatus reports whether status is one of the five recognized values.
func ValidStatus(status string) bool {
	_, ok := statusDisplayNames[status]
	return ok
}

// ValidWasteType reports whether wasteType is a recognized waste category.
func ValidWasteType(wasteType string) bool {
	_, ok := wasteTypeDisplayNames[wasteType]
	return ok
}

// ValidPriority reports whether priority is a recognized priority level.
func ValidPriority(priority string) bool {
	_, ok := priorityDisplayNames[priority]
	return ok
}

// StatusDisplayName returns the human readable form of a status value.
func StatusDisplayName(status string) string {
	if name, ok := statusDisplayNames[status]; ok {
		return name
	}
	return status
}

// WasteTypeDisplayName returns the human readable form of a waste type value.
func WasteTypeDisplayName(wasteType string) string {
	if name, ok := wasteTypeDisplayNames[wasteType]; ok {
		return name
	}
	return wasteType
}

// PriorityDisplayName returns the human readable form of a priority value.
func PriorityDisplayName(priority string) string {
	if name, ok := priorityDisplayNames[priority]; ok {
		return name
	}
	return priority
}
