package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is static informational content published by the municipality.
type Article struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Published bool           `gorm:"not null;default:true" json:"published"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// JournalEntry is a personal note kept by a resident.
type JournalEntry struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID uint           `gorm:"not null;index" json:"customer_id"`
	Customer   User           `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Title      string         `gorm:"size:120;not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// SubscriptionPlan is a static pricing plan for recurring pickup service.
type SubscriptionPlan struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:50;not null" json:"name"`
	PricePerMonth float64        `gorm:"not null" json:"price_per_month"`
	Description   string         `gorm:"type:text" json:"description"`
	IsActive      bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the SubscriptionPlan model
func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}
