package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wastecare/wastecare-api/models"
)

func feedbackRouter(user *models.User) *gin.Engine {
	router := setupTestRouter()
	auth := mockAuthMiddleware(user)
	router.POST("/api/v1/feedback", auth, CreateFeedback)
	router.GET("/api/v1/feedback", auth, ListFeedback)
	return router
}

func TestCreateFeedbackEndpoint(t *testing.T) {
	db := setupTestDB(t)
	resident := createUser(t, db, "resident1", models.RoleResident)
	other := createUser(t, db, "resident2", models.RoleResident)
	staff := createUser(t, db, "staff1", models.RoleStaff)
	ownAppt := seedAppointment(t, db, resident, models.StatusCompleted)
	foreignAppt := seedAppointment(t, db, other, models.StatusCompleted)

	t.Run("Resident submits feedback for their pickup", func(t *testing.T) {
		router := feedbackRouter(resident)
		w := performRequest(router, http.MethodPost, "/api/v1/feedback", gin.H{
			"rating":         5,
			"message":        "Crew arrived on time, very tidy work.",
			"appointment_id": ownAppt.ID,
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := parseResponse(t, w)["data"].(map[string]interface{})
		assert.Equal(t, float64(5), data["rating"])
	})

	t.Run("Staff cannot submit feedback", func(t *testing.T) {
		router := feedbackRouter(staff)
		w := performRequest(router, http.MethodPost, "/api/v1/feedback", gin.H{
			"rating":  4,
			"message": "This should never be accepted.",
		})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Short message is rejected", func(t *testing.T) {
		router := feedbackRouter(resident)
		w := performRequest(router, http.MethodPost, "/api/v1/feedback", gin.H{
			"rating":  3,
			"message": "   ok   ",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
	})

	t.Run("Rating outside 1..5 is rejected", func(t *testing.T) {
		router := feedbackRouter(resident)
		w := performRequest(router, http.MethodPost, "/api/v1/feedback", gin.H{
			"rating":  6,
			"message": "Rating slider glitched out on me.",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Someone else's appointment reads as missing", func(t *testing.T) {
		router := feedbackRouter(resident)
		w := performRequest(router, http.MethodPost, "/api/v1/feedback", gin.H{
			"rating":         5,
			"message":        "Trying to review a pickup I never had.",
			"appointment_id": foreignAppt.ID,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListFeedbackEndpoint(t *testing.T) {
	db := setupTestDB(t)
	resident := createUser(t, db, "resident1", models.RoleResident)
	other := createUser(t, db, "resident2", models.RoleResident)
	staff := createUser(t, db, "staff1", models.RoleStaff)

	for _, u := range []*models.User{resident, other} {
		fb := models.Feedback{CustomerID: u.ID, Rating: 4, Message: "Good service overall, thanks."}
		assert.NoError(t, db.Create(&fb).Error)
	}

	t.Run("Residents see only their own", func(t *testing.T) {
		router := feedbackRouter(resident)
		w := performRequest(router, http.MethodGet, "/api/v1/feedback", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, data, 1)
	})

	t.Run("Staff see all feedback", func(t *testing.T) {
		router := feedbackRouter(staff)
		w := performRequest(router, http.MethodGet, "/api/v1/feedback", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := parseResponse(t, w)["data"].([]interface{})
		assert.Len(t, data, 2)
	})
}
