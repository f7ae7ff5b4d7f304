package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/models"
)

// CreateFeedbackRequest represents the request body for submitting feedback
type CreateFeedbackRequest struct {
	Rating        int    `json:"rating" binding:"required,gte=1,lte=5"`
	Message       string `json:"message" binding:"required"`
	AppointmentID *uint  `json:"appointment_id" binding:"omitempty"`
}

// CreateFeedback handles POST /api/v1/feedback - submits feedback (residents only)
func CreateFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if user.HasElevatedAccess() {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only residents can submit feedback",
			},
		})
		return
	}

	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	message := strings.TrimSpace(req.Message)
	if len(message) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Please provide more detailed feedback (at least 10 characters)",
			},
		})
		return
	}

	db := config.GetDB()

	// A feedback may only reference the caller's own appointment.
	if req.AppointmentID != nil {
		var appt models.Appointment
		if err := db.Where("id = ? AND customer_id = ?", *req.AppointmentID, user.ID).First(&appt).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "The requested resource was not found",
				},
			})
			return
		}
	}

	feedback := models.Feedback{
		CustomerID:    user.ID,
		AppointmentID: req.AppointmentID,
		Rating:        req.Rating,
		Message:       message,
	}

	if err := db.Create(&feedback).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create feedback",
			},
		})
		return
	}

	if err := db.Preload("Customer").First(&feedback, feedback.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load feedback details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    feedback,
	})
}

// ListFeedback handles GET /api/v1/feedback - residents see their own
// feedback, elevated users see everything
func ListFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Feedback{}).Preload("Customer")
	if !user.HasElevatedAccess() {
		query = query.Where("customer_id = ?", user.ID)
	}

	var feedbacks []models.Feedback
	if err := query.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch feedback",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    feedbacks,
	})
}
