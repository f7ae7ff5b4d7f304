package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/models"
	"github.com/wastecare/wastecare-api/services"
)

// statusMarkerColors are the map pin colors keyed by appointment status.
var statusMarkerColors = map[string]string{
	models.StatusRequested:  "#FFA500",
	models.StatusScheduled:  "#4A90E2",
	models.StatusInProgress: "#FFD700",
	models.StatusCompleted:  "#28A745",
	models.StatusCancelled:  "#DC3545",
}

// stopDurationMinutes is the flat per-stop estimate used by the route listing.
const stopDurationMinutes = 15

// GetTimeSlots handles GET /api/v1/schedule/time-slots?date=&waste_type= -
// returns slots with remaining capacity for a date
func GetTimeSlots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Date parameter required",
			},
		})
		return
	}

	slots, err := services.NewTimeSlotService(config.GetDB()).AvailableSlots(date, c.Query("waste_type"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"available_slots": slots,
		},
	})
}

// GetDashboardStats handles GET /api/v1/stats/dashboard - role-scoped
// appointment aggregates
func GetDashboardStats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := services.NewAnalyticsService(config.GetDB()).DashboardStats(user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetRoute handles GET /api/v1/schedule/route?date= - the day's pickup
// stops for staff, urgent first then by time (staff/admin only)
func GetRoute(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	db := config.GetDB()
	var appointments []models.Appointment
	if err := db.Preload("Customer").
		Where("preferred_date = ? AND status IN ?", date,
			[]string{models.StatusScheduled, models.StatusInProgress}).
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	// Urgent stops first, then by pickup time.
	sort.SliceStable(appointments, func(i, j int) bool {
		iUrgent := appointments[i].Priority == models.PriorityUrgent
		jUrgent := appointments[j].Priority == models.PriorityUrgent
		if iUrgent != jUrgent {
			return iUrgent
		}
		return appointments[i].PreferredTime < appointments[j].PreferredTime
	})

	route := make([]gin.H, 0, len(appointments))
	for _, appt := range appointments {
		stop := gin.H{
			"id":                 appt.ID,
			"address":            appt.Address,
			"customer":           appt.Customer.Username,
			"waste_type":         models.WasteTypeDisplayName(appt.WasteType),
			"time":               appt.PreferredTime,
			"status":             appt.Status,
			"priority":           appt.Priority,
			"estimated_duration": stopDurationMinutes,
		}
		if appt.Latitude != nil && appt.Longitude != nil {
			stop["coordinates"] = gin.H{"lat": *appt.Latitude, "lng": *appt.Longitude}
		}
		route = append(route, stop)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"route":              route,
			"total_stops":        len(route),
			"estimated_duration": len(route) * stopDurationMinutes,
		},
	})
}

// GetMapAppointments handles GET /api/v1/schedule/map - appointments with
// location data for map display, scoped by role
func GetMapAppointments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Preload("Customer").
		Where("latitude IS NOT NULL AND longitude IS NOT NULL")
	if !user.HasElevatedAccess() {
		query = query.Where("customer_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("preferred_date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	mapData := make([]gin.H, 0, len(appointments))
	for _, appt := range appointments {
		color, ok := statusMarkerColors[appt.Status]
		if !ok {
			color = "#6C757D"
		}
		notes := appt.Notes
		if len(notes) > 100 {
			notes = notes[:100]
		}
		mapData = append(mapData, gin.H{
			"id":             appt.ID,
			"address":        appt.Address,
			"latitude":       *appt.Latitude,
			"longitude":      *appt.Longitude,
			"waste_type":     models.WasteTypeDisplayName(appt.WasteType),
			"status":         appt.Status,
			"status_display": models.StatusDisplayName(appt.Status),
			"priority":       appt.Priority,
			"preferred_date": appt.PreferredDate,
			"preferred_time": appt.PreferredTime,
			"customer_name":  appt.Customer.Username,
			"marker_color":   color,
			"notes":          notes,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"appointments": mapData,
			"total":        len(mapData),
		},
	})
}

// GetCalendarEvents handles GET /api/v1/schedule/calendar - appointments
// formatted as calendar events, scoped by role
func GetCalendarEvents(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Preload("Customer").Model(&models.Appointment{})
	if !user.HasElevatedAccess() {
		query = query.Where("customer_id = ?", user.ID)
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	events := make([]gin.H, 0, len(appointments))
	for _, appt := range appointments {
		color, ok := statusMarkerColors[appt.Status]
		if !ok {
			color = "#6C757D"
		}
		events = append(events, gin.H{
			"id":              appt.ID,
			"title":           models.WasteTypeDisplayName(appt.WasteType) + " - " + appt.Customer.Username,
			"start":           appt.PreferredDate,
			"backgroundColor": color,
			"status":          appt.Status,
			"waste_type":      appt.WasteType,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"events": events,
		},
	})
}
