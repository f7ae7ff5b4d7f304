package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/middleware"
	"github.com/wastecare/wastecare-api/models"
	"github.com/wastecare/wastecare-api/services"
	"github.com/wastecare/wastecare-api/utils"
)

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	StaffNotes string `json:"staff_notes" binding:"omitempty"`
}

// currentUser pulls the authenticated user or writes a 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, err := middleware.GetCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}
	return user, true
}

// appointmentID parses the :id URL parameter or writes a 400.
func appointmentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Appointment ID must be a number",
			},
		})
		return 0, false
	}
	return uint(id), true
}

// CreateAppointment handles POST /api/v1/appointments - creates a pickup request (residents only)
func CreateAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
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
	input.Notes = utils.SanitizeInput(input.Notes)
	input.SpecialInstructions = utils.SanitizeInput(input.SpecialInstructions)

	appt, err := services.NewAppointmentService(config.GetDB()).Create(user, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    appt,
	})
}

// ListAppointments handles GET /api/v1/appointments - lists appointments
// scoped by role, with search and filter parameters
func ListAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Appointment{}).Preload("Customer").Preload("HandledBy")
	if !user.HasElevatedAccess() {
		query = query.Where("customer_id = ?", user.ID)
	}

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("address LIKE ? OR notes LIKE ? OR waste_type LIKE ?", like, like, like)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if wasteType := c.Query("waste_type"); wasteType != "" {
		query = query.Where("waste_type = ?", wasteType)
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		query = query.Where("preferred_date >= ?", dateFrom)
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		query = query.Where("preferred_date <= ?", dateTo)
	}

	var appointments []models.Appointment
	if err := query.Order("created_at DESC").Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}

// GetAppointment handles GET /api/v1/appointments/:id - appointment details
func GetAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	appt, err := services.NewAppointmentService(config.GetDB()).Get(user, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appt,
	})
}

// UpdateAppointment handles PUT /api/v1/appointments/:id - edits an
// appointment still in an editable status
func UpdateAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var input services.AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
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
	input.Notes = utils.SanitizeInput(input.Notes)
	input.SpecialInstructions = utils.SanitizeInput(input.SpecialInstructions)

	appt, err := services.NewAppointmentService(config.GetDB()).Update(user, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appt,
	})
}

// DeleteAppointment handles DELETE /api/v1/appointments/:id
func DeleteAppointment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := services.NewAppointmentService(config.GetDB()).Delete(user, id); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Appointment deleted",
		},
	})
}

// UpdateAppointmentStatus handles POST /api/v1/appointments/:id/status -
// moves an appointment to a new lifecycle status (staff/admin only)
func UpdateAppointmentStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
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

	appt, err := services.NewAppointmentService(config.GetDB()).TransitionStatus(user, id, req.Status, req.StaffNotes)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"appointment":    appt,
			"status_display": models.StatusDisplayName(appt.Status),
		},
	})
}

// GetAppointmentHistory handles GET /api/v1/appointments/:id/history - the
// append-only audit trail, newest first
func GetAppointmentHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	db := config.GetDB()

	// Ownership gate; elevated users see every trail.
	if _, err := services.NewAppointmentService(db).Get(user, id); err != nil {
		handleServiceError(c, err)
		return
	}

	entries, err := services.NewAuditService(db).ListForAppointment(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}
