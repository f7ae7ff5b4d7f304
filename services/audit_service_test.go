package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wastecare/wastecare-api/models"
)

func TestAuditRecordAndList(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)
	resident := createTestUser(t, db, "resident1", models.RoleResident)
	appt := createTestAppointment(t, db, resident, models.StatusRequested)

	assert.NoError(t, svc.Record(appt.ID, &resident.ID, models.ActionCreated, "Pickup request created"))
	assert.NoError(t, svc.Record(appt.ID, &resident.ID, models.ActionUpdated, "address changed"))
	assert.NoError(t, svc.Record(appt.ID, nil, models.ActionStatusChanged, "requested → scheduled"))

	// Spread creation times so the ordering is deterministic.
	var rows []models.AppointmentHistory
	db.Order("id ASC").Find(&rows)
	for i := range rows {
		db.Model(&rows[i]).Update("created_at", time.Now().Add(time.Duration(i)*time.Second))
	}

	entries, err := svc.ListForAppointment(appt.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, models.ActionStatusChanged, entries[0].Action)
	assert.Equal(t, models.ActionUpdated, entries[1].Action)
	assert.Equal(t, models.ActionCreated, entries[2].Action)

	// Actor survives as a nullable reference.
	assert.Nil(t, entries[0].ChangedByID)
	assert.Equal(t, resident.ID, *entries[1].ChangedByID)
}

func TestAuditScopedToAppointment(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewAuditService(db)
	resident := createTestUser(t, db, "resident1", models.RoleResident)
	first := createTestAppointment(t, db, resident, models.StatusRequested)
	second := createTestAppointment(t, db, resident, models.StatusRequested)

	assert.NoError(t, svc.Record(first.ID, &resident.ID, models.ActionCreated, "one"))
	assert.NoError(t, svc.Record(second.ID, &resident.ID, models.ActionCreated, "two"))

	entries, err := svc.ListForAppointment(first.ID)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "one", entries[0].Changes)
}
