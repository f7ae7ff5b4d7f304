package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values for User.Role
const (
	RoleResident = "resident"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

// User represents a user in the system (resident, staff member or admin)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"not null;default:'resident'" json:"role"` // "resident", "staff" or "admin"
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// HasElevatedAccess reports whether the user may triage and transition
// appointments that belong to other users.
func (u *User) HasElevatedAccess() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// ValidRole reports whether role is one of the recognized role values.
func ValidRole(role string) bool {
	switch role {
	case RoleResident, RoleStaff, RoleAdmin:
		return true
	}
	return false
}
