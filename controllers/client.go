// controllers/client.go
package controllers

import (
	"errors"
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"
	"rotationcrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddOnInput is one add-on selection on a client.
type AddOnInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Frequency string    `json:"frequency" binding:"required,oneof=every-visit every-other-visit occasionally"`
}

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name            string       `json:"name" binding:"required"`
	Phone           string       `json:"phone" binding:"required"`
	Email           *string      `json:"email"`
	Notes           string       `json:"notes"`
	BaseServiceID   *uuid.UUID   `json:"baseServiceId"`
	AddOns          []AddOnInput `json:"addOns"`
	RotationTier    string       `json:"rotationTier" binding:"omitempty,oneof=priority standard flex custom"`
	RotationWeeks   int          `json:"rotationWeeks" binding:"omitempty,min=1"`
	NextAppointment *string      `json:"nextAppointment"` // ISO date
	Status          string       `json:"status" binding:"omitempty,oneof=confirmed pending at-risk"`
	IndustryData    models.JSONB `json:"industryData"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name            *string       `json:"name"`
	Phone           *string       `json:"phone"`
	Email           *string       `json:"email"`
	Notes           *string       `json:"notes"`
	BaseServiceID   *uuid.UUID    `json:"baseServiceId"`
	AddOns          *[]AddOnInput `json:"addOns"`
	RotationTier    *string       `json:"rotationTier" binding:"omitempty,oneof=priority standard flex custom"`
	RotationWeeks   *int          `json:"rotationWeeks" binding:"omitempty,min=1"`
	NextAppointment *string       `json:"nextAppointment"`
	Status          *string       `json:"status" binding:"omitempty,oneof=confirmed pending at-risk"`
	IndustryData    *models.JSONB `json:"industryData"`
	IsActive        *bool         `json:"isActive"`
}

// resolveAddOns snapshots the selected addon services onto the client.
func resolveAddOns(userID uuid.UUID, clientID uuid.UUID, inputs []AddOnInput) ([]models.AddOnSelection, error) {
	var addons []models.AddOnSelection
	for _, in := range inputs {
		var service models.Service
		if err := config.DB.Where("user_id = ? AND id = ? AND category = ?",
			userID, in.ServiceID, models.ServiceCategoryAddon).
			First(&service).Error; err != nil {
			return nil, err
		}
		addons = append(addons, models.AddOnSelection{
			ID:          uuid.New(),
			ClientID:    clientID,
			ServiceName: service.Name,
			Price:       service.Price,
			Frequency:   in.Frequency,
		})
	}
	return addons, nil
}

// CreateClient creates a new client on the roster
func CreateClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists on this roster
	var existingClient models.Client
	if err := config.DB.Where("user_id = ? AND phone = ?", userUUID, input.Phone).
		First(&existingClient).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Client with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	tier := input.RotationTier
	if tier == "" {
		tier = models.TierStandard
	}
	weeks := input.RotationWeeks
	if weeks == 0 {
		weeks = models.DefaultRotationWeeks(tier)
	}
	status := input.Status
	if status == "" {
		status = models.ClientPending
	}

	client := models.Client{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          input.Name,
		Phone:         input.Phone,
		Notes:         input.Notes,
		RotationTier:  tier,
		RotationWeeks: weeks,
		Status:        status,
		IndustryData:  input.IndustryData,
		IsActive:      true,
	}
	if input.Email != nil {
		client.Email = *input.Email
	}

	if input.BaseServiceID != nil {
		var service models.Service
		if err := config.DB.Where("user_id = ? AND id = ?", userUUID, *input.BaseServiceID).
			First(&service).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Base service not found")
			return
		}
		client.BaseServiceName = service.Name
		client.BaseServicePrice = service.Price
	}

	if input.NextAppointment != nil {
		next, err := rotation.ParseDate(*input.NextAppointment)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid next appointment date")
			return
		}
		client.NextAppointment = &next
	}

	addons, err := resolveAddOns(userUUID, client.ID, input.AddOns)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Add-on service not found")
		return
	}
	client.AddOns = addons

	// Cached projection is set before the first write and on every edit
	// of the service, rotation or add-ons.
	if err := rotation.RefreshAnnualValue(&client); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to project annual value: "+err.Error())
		return
	}

	if err := config.DB.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves the full roster
func GetClients(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Preload("AddOns").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("user_id = ?", userUUID).
		Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.Client
	if err := config.DB.Preload("AddOns").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("user_id = ? AND id = ?", userUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates an existing client. Rotation, base service and
// add-on changes all funnel through the annual value recompute.
func UpdateClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Preload("AddOns").
		Where("user_id = ? AND id = ?", userUUID, clientUUID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		if client.Phone != *input.Phone {
			var existingClient models.Client
			if err := config.DB.Where("user_id = ? AND phone = ?", userUUID, *input.Phone).
				First(&existingClient).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another client with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}
	if input.Status != nil {
		client.Status = *input.Status
	}
	if input.IndustryData != nil {
		client.IndustryData = *input.IndustryData
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}
	if input.NextAppointment != nil {
		next, err := rotation.ParseDate(*input.NextAppointment)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid next appointment date")
			return
		}
		client.NextAppointment = &next
	}

	projectionChanged := false
	if input.RotationTier != nil {
		client.RotationTier = *input.RotationTier
		projectionChanged = true
	}
	if input.RotationWeeks != nil {
		client.RotationWeeks = *input.RotationWeeks
		projectionChanged = true
	}
	if input.BaseServiceID != nil {
		var service models.Service
		if err := config.DB.Where("user_id = ? AND id = ?", userUUID, *input.BaseServiceID).
			First(&service).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Base service not found")
			return
		}
		client.BaseServiceName = service.Name
		client.BaseServicePrice = service.Price
		projectionChanged = true
	}
	if input.AddOns != nil {
		addons, err := resolveAddOns(userUUID, client.ID, *input.AddOns)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Add-on service not found")
			return
		}
		if err := config.DB.Where("client_id = ?", client.ID).
			Delete(&models.AddOnSelection{}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to replace add-ons")
			return
		}
		client.AddOns = addons
		projectionChanged = true
	}

	if projectionChanged {
		if err := rotation.RefreshAnnualValue(&client); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to project annual value: "+err.Error())
			return
		}
	}

	if err := config.DB.Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient soft deletes (archives) a client
func DeleteClient(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, clientUUID).
		Delete(&models.Client{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client archived successfully"})
}
