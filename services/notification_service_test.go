package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wastecare/wastecare-api/models"
)

func TestEmit(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewNotificationService(db)
	user := createTestUser(t, db, "resident1", models.RoleResident)

	note, err := svc.Emit(user.ID, "Your pickup was scheduled.", models.NotificationUpdate, nil)
	assert.NoError(t, err)
	assert.False(t, note.IsRead)
	assert.Equal(t, user.ID, note.UserID)
	assert.Nil(t, note.AppointmentID)

	notes := userNotifications(t, db, user.ID)
	assert.Len(t, notes, 1)
}

func TestMarkRead(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewNotificationService(db)
	owner := createTestUser(t, db, "resident1", models.RoleResident)
	stranger := createTestUser(t, db, "resident2", models.RoleResident)

	note, err := svc.Emit(owner.ID, "msg for owner", models.NotificationUpdate, nil)
	assert.NoError(t, err)

	t.Run("Stranger cannot mark another user's notification", func(t *testing.T) {
		err := svc.MarkRead(note.ID, stranger.ID)
		var notFound *NotFoundError
		assert.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
	})

	t.Run("Owner marks it read", func(t *testing.T) {
		assert.NoError(t, svc.MarkRead(note.ID, owner.ID))

		var reloaded models.Notification
		db.First(&reloaded, note.ID)
		assert.True(t, reloaded.IsRead)
	})

	t.Run("Missing notification yields NotFoundError", func(t *testing.T) {
		err := svc.MarkRead(99999, owner.ID)
		var notFound *NotFoundError
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestMarkAllRead(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewNotificationService(db)
	user := createTestUser(t, db, "resident1", models.RoleResident)

	for i := 0; i < 4; i++ {
		_, err := svc.Emit(user.ID, "unread message", models.NotificationUpdate, nil)
		assert.NoError(t, err)
	}

	updated, err := svc.MarkAllRead(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), updated)

	unread, err := svc.UnreadCount(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	notes := userNotifications(t, db, user.ID)
	assert.Len(t, notes, 4)
	for _, n := range notes {
		assert.True(t, n.IsRead)
	}

	// Idempotent: the second call updates nothing.
	updated, err = svc.MarkAllRead(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestAnnounce(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewNotificationService(db)
	resident1 := createTestUser(t, db, "resident1", models.RoleResident)
	resident2 := createTestUser(t, db, "resident2", models.RoleResident)
	staff := createTestUser(t, db, "staff1", models.RoleStaff)

	inactive := createTestUser(t, db, "resident3", models.RoleResident)
	db.Model(inactive).Update("is_active", false)

	recipients, err := svc.Announce("Holiday schedule next week")
	assert.NoError(t, err)
	assert.Equal(t, 2, recipients)

	for _, u := range []*models.User{resident1, resident2} {
		notes := userNotifications(t, db, u.ID)
		assert.Len(t, notes, 1)
		assert.Equal(t, models.NotificationAnnouncement, notes[0].Type)
		assert.Contains(t, notes[0].Message, "Admin announcement:")
	}

	assert.Empty(t, userNotifications(t, db, staff.ID))
	assert.Empty(t, userNotifications(t, db, inactive.ID))
}

func TestListForUserOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewNotificationService(db)
	user := createTestUser(t, db, "resident1", models.RoleResident)

	first, err := svc.Emit(user.ID, "first", models.NotificationUpdate, nil)
	assert.NoError(t, err)
	second, err := svc.Emit(user.ID, "second", models.NotificationReminder, nil)
	assert.NoError(t, err)

	// Force distinct creation times for the ordering check.
	db.Model(first).Update("created_at", first.CreatedAt.Add(-time.Second))

	notes, err := svc.ListForUser(user.ID)
	assert.NoError(t, err)
	assert.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}
