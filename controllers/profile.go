package controllers

import (
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	BusinessName string `json:"businessName"`
	Industry     string `json:"industry"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

func GetProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"businessName":          user.BusinessName,
		"industry":              user.Industry,
		"phone":                 user.Phone,
		"email":                 user.Email,
		"rebookReminders":       user.RebookReminders,
		"whatsAppNotifications": user.WhatsAppNotifications,
		"smsNotifications":      user.SMSNotifications,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	// Update fields
	user.BusinessName = input.BusinessName
	user.Industry = input.Industry
	user.Phone = input.Phone
	user.Email = input.Email

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var input struct {
		RebookReminders       bool `json:"rebookReminders"`
		WhatsAppNotifications bool `json:"whatsAppNotifications"`
		SMSNotifications      bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"rebook_reminders":       input.RebookReminders,
			"whatsapp_notifications": input.WhatsAppNotifications,
			"sms_notifications":      input.SMSNotifications,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}

type UpdateOutreachTemplateInput struct {
	Type     string  `json:"type" binding:"required,oneof=overdue coming-due missed"`
	IsActive *bool   `json:"isActive"`
	Message  *string `json:"message"`
}

// GetOutreachTemplates returns the effective wording per outreach type:
// the account's customization where one exists, else the stock message.
func GetOutreachTemplates(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var templates []models.OutreachTemplate
	if err := config.DB.Where("user_id = ?", userUUID).Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch outreach templates")
		return
	}

	settings := gin.H{}
	for templateType, message := range models.DefaultOutreachMessages {
		settings[templateType+"_message"] = message
		settings[templateType+"_active"] = true
		settings[templateType+"_custom"] = false
	}
	for _, t := range templates {
		settings[t.Type+"_message"] = t.Message
		settings[t.Type+"_active"] = t.IsActive
		settings[t.Type+"_custom"] = true
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateOutreachTemplate customizes one outreach wording, creating the
// record on first edit.
func UpdateOutreachTemplate(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input UpdateOutreachTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var template models.OutreachTemplate
	err := config.DB.Where("user_id = ? AND type = ?", userUUID, input.Type).
		First(&template).Error
	if err != nil {
		template = models.OutreachTemplate{
			UserID:   userUUID,
			Type:     input.Type,
			Message:  models.DefaultOutreachMessages[input.Type],
			IsActive: true,
		}
	}

	if input.IsActive != nil {
		template.IsActive = *input.IsActive
	}
	if input.Message != nil {
		template.Message = *input.Message
	}

	if err := config.DB.Save(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update outreach template")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Outreach template updated"})
}
