package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"campus-maintenance-server/database"
	"campus-maintenance-server/middleware"
	"campus-maintenance-server/models"
	"campus-maintenance-server/services"
)

// RegisterNotificationRoutes registers the notification feed routes
func RegisterNotificationRoutes(protected *gin.RouterGroup) {
	notifications := protected.Group("/notifications")
	notifications.GET("/my", getMyNotifications)
	notifications.GET("/unread-count", getUnreadCount)
	notifications.POST("/:id/mark-read", markNotificationRead)
	notifications.POST("/mark-all-read", markAllNotificationsRead)
	notifications.DELETE("/:id", deleteNotification)

	admin := notifications.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("", createBroadcastNotification)
}

// getMyNotifications returns the caller's notifications plus broadcasts,
// newest first, capped at the 100 most recent rows
func getMyNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	err := database.DB.
		Where("user_id = ? OR broadcast = ?", userID, true).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		log.Printf("❌ Error fetching notifications for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total_count":   len(notifications),
	})
}

func getUnreadCount(c *gin.Context) {
	userID := c.GetUint("user_id")

	var count int64
	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		log.Printf("❌ Error getting unread count for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get unread count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// markNotificationRead flips the read flag on one of the caller's own rows.
// Broadcast rows have no owner and cannot be marked.
func markNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	var notification models.Notification
	err = database.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		} else {
			log.Printf("❌ Error finding notification %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	notification.Read = true
	notification.UpdatedAt = time.Now()

	if err := database.DB.Save(&notification).Error; err != nil {
		log.Printf("❌ Error updating notification %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "marked_read"})
}

func markAllNotificationsRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{
			"read":       true,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		log.Printf("❌ Error marking all notifications as read for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "all_marked_read"})
}

// deleteNotification removes one of the caller's own rows
func deleteNotification(c *gin.Context) {
	userID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("❌ Error deleting notification %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// createBroadcastNotification lets an admin push an announcement to every
// user's feed
func createBroadcastNotification(c *gin.Context) {
	var input struct {
		Message   string `json:"message" binding:"required"`
		RequestID *uint  `json:"request_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.NewNotifier().Broadcast(input.Message, input.RequestID); err != nil {
		log.Printf("❌ Error creating broadcast notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Broadcast notification created"})
}
