package controllers

import (
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"
	"rotationcrm-backend/utils"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RecentActivity struct {
	ClientName string  `json:"clientName"`
	Service    string  `json:"service"`
	Amount     float64 `json:"amount"`
	When       string  `json:"when"` // e.g. "2h ago", "Yesterday"
}

// GetDashboardOverview composes the forecast, YTD actuals, needs-attention
// list and recent activity for the dashboard in one response.
func GetDashboardOverview(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Preload("AddOns").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		Where("user_id = ? AND is_active = ?", userUUID, true).
		Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	now := time.Now()
	forecast := rotation.AggregateForecast(clients)
	stats := rotation.ActualRevenueStats(clients, now.Year())
	attention := rotation.NeedsAttention(clients, now)

	// Last few completed visits, newest first, with humanized timestamps.
	type completedVisit struct {
		name string
		appt models.Appointment
	}
	var completed []completedVisit
	for i := range clients {
		for _, appt := range clients[i].Appointments {
			if appt.Status == models.ApptCompleted && appt.CompletedAt != nil {
				completed = append(completed, completedVisit{name: clients[i].Name, appt: appt})
			}
		}
	}
	sort.Slice(completed, func(i, j int) bool {
		return completed[i].appt.CompletedAt.After(*completed[j].appt.CompletedAt)
	})

	var recent []RecentActivity
	for i, v := range completed {
		if i >= 5 {
			break
		}
		amount := v.appt.Price
		if v.appt.PaymentAmount != nil {
			amount = *v.appt.PaymentAmount
		}
		recent = append(recent, RecentActivity{
			ClientName: v.name,
			Service:    v.appt.ServiceName,
			Amount:     amount,
			When:       rotation.HumanizeTimeAgo(*v.appt.CompletedAt, now),
		})
	}

	// Pending booking requests count for the header badge.
	var pendingBookings int64
	config.DB.Model(&models.BookingRequest{}).
		Where("user_id = ? AND status = ?", userUUID, models.BookingPending).
		Count(&pendingBookings)

	c.JSON(http.StatusOK, gin.H{
		"totalClients":    len(clients),
		"forecast":        forecast,
		"stats":           stats,
		"needsAttention":  attention,
		"recentActivity":  recent,
		"pendingBookings": pendingBookings,
	})
}
