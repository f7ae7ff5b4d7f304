package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/models"
)

// CreateJournalEntryRequest represents the request body for a journal entry
type CreateJournalEntryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ListArticles handles GET /api/v1/articles - published articles, newest first
func ListArticles(c *gin.Context) {
	var articles []models.Article
	if err := config.GetDB().Where("published = ?", true).
		Order("created_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch articles",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    articles,
	})
}

// ListPlans handles GET /api/v1/plans - active subscription plans
func ListPlans(c *gin.Context) {
	var plans []models.SubscriptionPlan
	if err := config.GetDB().Where("is_active = ?", true).Find(&plans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch plans",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    plans,
	})
}

// ListJournalEntries handles GET /api/v1/journal - the caller's journal
func ListJournalEntries(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var entries []models.JournalEntry
	if err := config.GetDB().Where("customer_id = ?", user.ID).
		Order("created_at DESC").Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch journal entries",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

// CreateJournalEntry handles POST /api/v1/journal
func CreateJournalEntry(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateJournalEntryRequest
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

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if len(title) < 3 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Title must be at least 3 characters long",
			},
		})
		return
	}
	if len(content) < 20 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Journal content must be at least 20 characters long",
			},
		})
		return
	}

	entry := models.JournalEntry{
		CustomerID: user.ID,
		Title:      title,
		Content:    content,
	}
	if err := config.GetDB().Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create journal entry",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    entry,
	})
}

// ListServiceHistory handles GET /api/v1/history - completion records,
// own for residents, all for elevated users, newest completion first
func ListServiceHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.ServiceHistory{}).
		Preload("Appointment").Preload("Appointment.Customer")
	if !user.HasElevatedAccess() {
		query = query.Joins("JOIN appointments ON appointments.id = service_histories.appointment_id").
			Where("appointments.customer_id = ?", user.ID)
	}

	var history []models.ServiceHistory
	if err := query.Order("service_histories.completed_at DESC").Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch service history",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}
