// controllers/booking.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"
	"rotationcrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput comes from the public booking page, unauthenticated.
type CreateBookingInput struct {
	Name          string     `json:"name" binding:"required"`
	Phone         string     `json:"phone" binding:"required"`
	Email         string     `json:"email" binding:"omitempty,email"`
	ServiceID     *uuid.UUID `json:"serviceId"`
	RequestedDate *string    `json:"requestedDate"` // ISO date
	Notes         string     `json:"notes"`
}

// CreateBookingRequest accepts a public booking request for a
// professional's booking page
func CreateBookingRequest(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking page ID")
		return
	}

	var user models.User
	if err := config.DB.Where("id = ? AND is_active = ?", userUUID, true).
		First(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Booking page not found")
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	request := models.BookingRequest{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Notes:  input.Notes,
		Status: models.BookingPending,
	}

	if input.ServiceID != nil {
		var service models.Service
		if err := config.DB.Where("user_id = ? AND id = ? AND is_active = ?",
			userUUID, *input.ServiceID, true).
			First(&service).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
			return
		}
		request.ServiceName = service.Name
		request.ServicePrice = service.Price
	}

	if input.RequestedDate != nil {
		date, err := rotation.ParseDate(*input.RequestedDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid requested date")
			return
		}
		request.RequestedDate = &date
	}

	if err := config.DB.Create(&request).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking request")
		return
	}

	reference := fmt.Sprintf("BK-%s", utils.GenerateRandomString(6))
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Booking request received",
		"reference": reference,
		"id":        request.ID,
	})
}

// GetBookingRequests lists booking requests, optionally filtered by status
func GetBookingRequests(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userUUID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.BookingRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve booking requests")
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ConfirmBookingRequest accepts a pending request and seeds a new client
// on the standard rotation tier
func ConfirmBookingRequest(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	request, ok := loadPendingBooking(c, userUUID)
	if !ok {
		return
	}

	client := models.Client{
		ID:            uuid.New(),
		UserID:        userUUID,
		Name:          request.Name,
		Phone:         request.Phone,
		Email:         request.Email,
		Notes:         request.Notes,
		RotationTier:  models.TierStandard,
		RotationWeeks: models.DefaultRotationWeeks(models.TierStandard),
		Status:        models.ClientConfirmed,
		IsActive:      true,
	}
	if request.ServiceName != "" {
		client.BaseServiceName = request.ServiceName
		client.BaseServicePrice = request.ServicePrice
	}
	if request.RequestedDate != nil {
		client.NextAppointment = request.RequestedDate
	}
	if err := rotation.RefreshAnnualValue(&client); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to project annual value")
		return
	}

	tx := config.DB.Begin()
	if err := tx.Create(&client).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusConflict, "Failed to create client (phone may already exist)")
		return
	}
	if request.RequestedDate != nil {
		appt := models.Appointment{
			ID:          uuid.New(),
			ClientID:    client.ID,
			UserID:      userUUID,
			Date:        *request.RequestedDate,
			ServiceName: client.BaseServiceName,
			Price:       client.BaseServicePrice,
			Status:      models.ApptUpcoming,
		}
		if appt.ServiceName == "" {
			appt.ServiceName = "Initial visit"
		}
		if err := tx.Create(&appt).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create first appointment")
			return
		}
	}
	if err := tx.Model(request).Update("status", models.BookingConfirmed).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm booking request")
		return
	}
	tx.Commit()

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking confirmed",
		"client":  client,
	})
}

// DeclineBookingRequest declines a pending request
func DeclineBookingRequest(c *gin.Context) {
	updateBookingStatus(c, models.BookingDeclined, "Booking declined")
}

// CancelBookingRequest cancels a pending request
func CancelBookingRequest(c *gin.Context) {
	updateBookingStatus(c, models.BookingCancelled, "Booking cancelled")
}

func updateBookingStatus(c *gin.Context, status, message string) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	request, ok := loadPendingBooking(c, userUUID)
	if !ok {
		return
	}

	if err := config.DB.Model(request).Update("status", status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

func loadPendingBooking(c *gin.Context, userUUID uuid.UUID) (*models.BookingRequest, bool) {
	requestUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking request ID format")
		return nil, false
	}

	var request models.BookingRequest
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, requestUUID).
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking request not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if request.Status != models.BookingPending {
		utils.RespondWithError(c, http.StatusConflict, "Booking request already resolved")
		return nil, false
	}
	return &request, true
}
