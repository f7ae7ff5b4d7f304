package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/wastecare/wastecare-api/models"
)

// NotificationService creates and manages in-app notifications. Emission is
// persistence only; there is no external push delivery.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a notification service bound to db
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Emit creates exactly one unread notification for a user. appointmentID may
// be nil for notifications not tied to an appointment.
func (s *NotificationService) Emit(userID uint, message, notificationType string, appointmentID *uint) (*models.Notification, error) {
	note := models.Notification{
		UserID:        userID,
		Message:       message,
		Type:          notificationType,
		AppointmentID: appointmentID,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &note, nil
}

// NotifyPickupCompleted emits the templated completion notification.
func (s *NotificationService) NotifyPickupCompleted(appt *models.Appointment) error {
	msg := fmt.Sprintf("Your pickup was completed on %s. Waste type: %s.",
		time.Now().Format("Jan 02, 2006 at 03:04 PM"),
		models.WasteTypeDisplayName(appt.WasteType))
	_, err := s.Emit(appt.CustomerID, msg, models.NotificationConfirmation, &appt.ID)
	return err
}

// NotifyAppointmentApproved emits the templated approval notification.
func (s *NotificationService) NotifyAppointmentApproved(appt *models.Appointment) error {
	msg := fmt.Sprintf("Your appointment for %s at %s has been approved. Waste type: %s.",
		appt.PreferredDate, appt.PreferredTime,
		models.WasteTypeDisplayName(appt.WasteType))
	_, err := s.Emit(appt.CustomerID, msg, models.NotificationApproval, &appt.ID)
	return err
}

// NotifyAppointmentCancelled emits the templated cancellation notification.
func (s *NotificationService) NotifyAppointmentCancelled(appt *models.Appointment, reason string) error {
	msg := fmt.Sprintf("Your appointment for %s has been cancelled.", appt.PreferredDate)
	if reason != "" {
		msg += " Reason: " + reason
	}
	_, err := s.Emit(appt.CustomerID, msg, models.NotificationCancellation, &appt.ID)
	return err
}

// NotifyPickupReminder emits the templated day-before reminder notification.
func (s *NotificationService) NotifyPickupReminder(appt *models.Appointment) error {
	msg := fmt.Sprintf("Reminder: Your scheduled pickup is tomorrow (%s) at %s. Waste type: %s.",
		appt.PreferredDate, appt.PreferredTime,
		models.WasteTypeDisplayName(appt.WasteType))
	_, err := s.Emit(appt.CustomerID, msg, models.NotificationReminder, &appt.ID)
	return err
}

// Announce broadcasts an admin announcement to every active resident.
func (s *NotificationService) Announce(message string) (int, error) {
	var residents []models.User
	if err := s.db.Where("role = ? AND is_active = ?", models.RoleResident, true).Find(&residents).Error; err != nil {
		return 0, fmt.Errorf("failed to load residents: %w", err)
	}

	for _, resident := range residents {
		if _, err := s.Emit(resident.ID, "Admin announcement: "+message, models.NotificationAnnouncement, nil); err != nil {
			return 0, err
		}
	}
	return len(residents), nil
}

// MarkRead flips a single notification to read. Returns NotFoundError when
// the notification does not exist or belongs to another user.
func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	var note models.Notification
	if err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).First(&note).Error; err != nil {
		return &NotFoundError{Entity: "notification"}
	}

	if err := s.db.Model(&note).Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead flips every unread notification for a user. Idempotent; a
// second call updates nothing.
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	result := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListForUser returns the user's notifications newest-first.
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	var notes []models.Notification
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notes, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}
