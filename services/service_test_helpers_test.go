package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.ServiceHistory{},
		&models.AppointmentHistory{},
		&models.Notification{},
		&models.Feedback{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return &user
}

func validInput(daysAhead int) AppointmentInput {
	return AppointmentInput{
		Address:       "123 Coastal Road, Almeria",
		PreferredDate: time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02"),
		PreferredTime: "08:00",
		WasteType:     models.WasteGeneral,
		Priority:      models.PriorityNormal,
	}
}

func createTestAppointment(t *testing.T, db *gorm.DB, customer *models.User, status string) *models.Appointment {
	appt := models.Appointment{
		CustomerID:    customer.ID,
		Address:       "123 Coastal Road, Almeria",
		PreferredDate: time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		PreferredTime: "08:00",
		WasteType:     models.WasteGeneral,
		Priority:      models.PriorityNormal,
		Status:        status,
	}
	if err := db.Create(&appt).Error; err != nil {
		t.Fatalf("Failed to create test appointment: %v", err)
	}
	return &appt
}

func auditEntries(t *testing.T, db *gorm.DB, appointmentID uint) []models.AppointmentHistory {
	var entries []models.AppointmentHistory
	if err := db.Where("appointment_id = ?", appointmentID).
		Order("created_at ASC, id ASC").Find(&entries).Error; err != nil {
		t.Fatalf("Failed to load audit entries: %v", err)
	}
	return entries
}

func userNotifications(t *testing.T, db *gorm.DB, userID uint) []models.Notification {
	var notes []models.Notification
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&notes).Error; err != nil {
		t.Fatalf("Failed to load notifications: %v", err)
	}
	return notes
}
