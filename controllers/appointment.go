// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"
	"rotationcrm-backend/services"
	"rotationcrm-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput schedules a new visit for a client.
type CreateAppointmentInput struct {
	ClientID  uuid.UUID  `json:"clientId" binding:"required"`
	Date      string     `json:"date" binding:"required"` // ISO date
	ServiceID *uuid.UUID `json:"serviceId"`
	Status    string     `json:"status" binding:"omitempty,oneof=scheduled upcoming event"`
}

// CompleteAppointmentInput marks a visit done.
type CompleteAppointmentInput struct {
	PaymentMethod string   `json:"paymentMethod" binding:"required"`
	PaymentAmount *float64 `json:"paymentAmount" binding:"omitempty,min=0"`
	PaymentNote   string   `json:"paymentNote"`
	ArrivedLate   bool     `json:"arrivedLate"`
	BookNext      bool     `json:"bookNext"`
}

// MissAppointmentInput records a no-show or cancellation.
type MissAppointmentInput struct {
	Status         string `json:"status" binding:"required,oneof=no-show late-cancel cancelled"`
	Reason         string `json:"reason" binding:"required"`
	RescheduleDate string `json:"rescheduleDate"`
	ChargeFee      bool   `json:"chargeFee"`
	FlagAtRisk     bool   `json:"flagAtRisk"`
	SendMessage    bool   `json:"sendMessage"`
}

// EditAppointmentInput re-litigates a settled appointment.
type EditAppointmentInput struct {
	Status string `json:"status" binding:"required,oneof=completed no-show cancelled"`
}

func loadClientAppointment(c *gin.Context, userUUID uuid.UUID) (*models.Client, *models.Appointment, bool) {
	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return nil, nil, false
	}

	var appt models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, apptUUID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, nil, false
	}

	var client models.Client
	if err := config.DB.Preload("AddOns").
		Where("user_id = ? AND id = ?", userUUID, appt.ClientID).
		First(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load client")
		return nil, nil, false
	}
	return &client, &appt, true
}

func transitionStatusCode(err error) int {
	switch {
	case errors.Is(err, rotation.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, rotation.ErrMissingPaymentInfo),
		errors.Is(err, rotation.ErrMissingMissedReason),
		errors.Is(err, rotation.ErrInvalidDate),
		errors.Is(err, rotation.ErrInvalidRotation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateAppointment schedules a visit
func CreateAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	date, err := rotation.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment date")
		return
	}

	status := input.Status
	if status == "" {
		status = models.ApptScheduled
	}

	serviceName := client.BaseServiceName
	price := client.BaseServicePrice
	if input.ServiceID != nil {
		var service models.Service
		if err := config.DB.Where("user_id = ? AND id = ?", userUUID, *input.ServiceID).
			First(&service).Error; err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
			return
		}
		serviceName = service.Name
		price = service.Price
	}
	if serviceName == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "No service selected and client has no base service")
		return
	}

	appt := models.Appointment{
		ID:          uuid.New(),
		ClientID:    client.ID,
		UserID:      userUUID,
		Date:        date,
		ServiceName: serviceName,
		Price:       price,
		Status:      status,
	}

	tx := config.DB.Begin()
	if err := tx.Create(&appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	// An upcoming visit is the client's next due date.
	if status == models.ApptUpcoming {
		if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
			Update("next_appointment", date).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
			return
		}
	}

	// One-off events change the projection, which counts them once.
	if status == models.ApptEvent {
		client.Appointments = append(client.Appointments, appt)
		if err := rotation.RefreshAnnualValue(&client); err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, "Failed to project annual value: "+err.Error())
			return
		}
		if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
			Update("annual_value", client.AnnualValue).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
			return
		}
	}

	tx.Commit()
	c.JSON(http.StatusCreated, appt)
}

// CompleteAppointment transitions a visit to completed and updates the
// client's revenue stats
func CompleteAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CompleteAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, appt, ok := loadClientAppointment(c, userUUID)
	if !ok {
		return
	}

	now := time.Now()
	next, err := rotation.Complete(client, appt, rotation.CompleteParams{
		PaymentMethod: input.PaymentMethod,
		PaymentAmount: input.PaymentAmount,
		PaymentNote:   input.PaymentNote,
		ArrivedLate:   input.ArrivedLate,
		BookNext:      input.BookNext,
	}, now)
	if err != nil {
		utils.RespondWithError(c, transitionStatusCode(err), err.Error())
		return
	}

	tx := config.DB.Begin()
	if err := tx.Save(appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}
	if next != nil {
		if err := tx.Create(next).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to book next appointment")
			return
		}
		if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
			Update("next_appointment", client.NextAppointment).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
			return
		}
	}
	tx.Commit()

	stats := yearStatsForClient(userUUID, client.ID, now.Year())

	c.JSON(http.StatusOK, gin.H{
		"appointment":     appt,
		"nextAppointment": next,
		"stats":           stats,
	})
}

// MissAppointment transitions a visit to no-show, late-cancel or
// cancelled, with optional side effects
func MissAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input MissAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, appt, ok := loadClientAppointment(c, userUUID)
	if !ok {
		return
	}

	params := rotation.MissParams{
		Status:      input.Status,
		Reason:      input.Reason,
		ChargeFee:   input.ChargeFee,
		FlagAtRisk:  input.FlagAtRisk,
		SendMessage: input.SendMessage,
	}
	if input.RescheduleDate != "" {
		date, err := rotation.ParseDate(input.RescheduleDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid reschedule date")
			return
		}
		params.RescheduleDate = &date
	}

	now := time.Now()
	effects, err := rotation.MarkMissed(client, appt, params, now)
	if err != nil {
		utils.RespondWithError(c, transitionStatusCode(err), err.Error())
		return
	}

	tx := config.DB.Begin()
	if err := tx.Save(appt).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}
	if effects.NextAppointment != nil {
		if err := tx.Create(effects.NextAppointment).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to book rescheduled appointment")
			return
		}
	}
	if effects.FlagAtRisk || effects.NextAppointment != nil {
		if err := tx.Model(&models.Client{}).Where("id = ?", client.ID).
			Updates(map[string]interface{}{
				"status":           client.Status,
				"next_appointment": client.NextAppointment,
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
			return
		}
	}
	tx.Commit()

	// Messaging and billing are external collaborators; the engine only
	// signalled intent.
	outreach := services.NewOutreachService(config.DB)
	if effects.SendMessage {
		outreach.NotifyMissedAppointment(client, appt)
	}
	if effects.ChargeFee {
		outreach.LogFeeIntent(client, appt)
	}

	stats := yearStatsForClient(userUUID, client.ID, now.Year())

	c.JSON(http.StatusOK, gin.H{
		"appointment":     appt,
		"nextAppointment": effects.NextAppointment,
		"stats":           stats,
	})
}

// EditAppointment moves a settled appointment between completed, no-show
// and cancelled after the fact
func EditAppointment(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input EditAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, appt, ok := loadClientAppointment(c, userUUID)
	if !ok {
		return
	}

	now := time.Now()
	if err := rotation.EditStatus(appt, input.Status, now); err != nil {
		utils.RespondWithError(c, transitionStatusCode(err), err.Error())
		return
	}

	if err := config.DB.Save(appt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save appointment")
		return
	}

	stats := yearStatsForClient(userUUID, client.ID, now.Year())

	c.JSON(http.StatusOK, gin.H{
		"appointment": appt,
		"stats":       stats,
	})
}

// GetAppointments lists a client's appointment history
func GetAppointments(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var appts []models.Appointment
	if err := config.DB.Where("user_id = ? AND client_id = ?", userUUID, clientUUID).
		Order("date ASC").
		Find(&appts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appts)
}

// yearStatsForClient recomputes the YTD rollup for one client after a
// lifecycle transition.
func yearStatsForClient(userID, clientID uuid.UUID, year int) rotation.RevenueStats {
	var client models.Client
	if err := config.DB.Preload("Appointments").
		Where("user_id = ? AND id = ?", userID, clientID).
		First(&client).Error; err != nil {
		return rotation.RevenueStats{CollectionRate: 100}
	}
	return rotation.ActualRevenueStats([]models.Client{client}, year)
}
