package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wastecare/wastecare-api/config"
	"github.com/wastecare/wastecare-api/services"
)

// AnnouncementRequest represents the request body for an admin announcement
type AnnouncementRequest struct {
	Message string `json:"message" binding:"required,min=1,max=200"`
}

// ListNotifications handles GET /api/v1/notifications - the caller's inbox,
// newest first, with the unread count
func ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	svc := services.NewNotificationService(config.GetDB())
	notes, err := svc.ListForUser(user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	unread, err := svc.UnreadCount(user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"notifications": notes,
			"unread_count":  unread,
		},
	})
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Notification ID must be a number",
			},
		})
		return
	}

	if err := services.NewNotificationService(config.GetDB()).MarkRead(uint(id), user.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Notification marked as read",
		},
	})
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	updated, err := services.NewNotificationService(config.GetDB()).MarkAllRead(user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"marked_read": updated,
		},
	})
}

// CreateAnnouncement handles POST /api/v1/notifications/announce - broadcasts
// an announcement to every active resident (admin only)
func CreateAnnouncement(c *gin.Context) {
	var req AnnouncementRequest
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

	recipients, err := services.NewNotificationService(config.GetDB()).Announce(req.Message)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"recipients": recipients,
		},
	})
}
