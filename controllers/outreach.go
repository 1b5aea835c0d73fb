// controllers/outreach.go
package controllers

import (
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/services"
	"rotationcrm-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
)

// GetOutreachLogs lists sent reminders and fee intents, newest first
func GetOutreachLogs(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userUUID)
	if logType := c.Query("type"); logType != "" {
		query = query.Where("type = ?", logType)
	}

	var logs []models.OutreachLog
	if err := query.Order("sent_at DESC").Limit(100).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve outreach logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}

// TriggerOutreachSweep runs the rebooking sweep for the current account
// on demand instead of waiting for the daily schedule
func TriggerOutreachSweep(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	outreach := services.NewOutreachService(config.DB)
	outreach.ProcessRosterReminders(&user, time.Now())

	c.JSON(http.StatusOK, gin.H{"message": "Outreach sweep triggered"})
}
