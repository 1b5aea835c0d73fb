// controllers/report.go
package controllers

import (
	"net/http"
	"rotationcrm-backend/config"
	"rotationcrm-backend/models"
	"rotationcrm-backend/utils"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents collected-revenue analytics over the
// appointment history
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64          `json:"currentMonthRevenue"`
	MonthGrowth           float64          `json:"monthGrowth"`
	CurrentQuarterRevenue float64          `json:"currentQuarterRevenue"`
	QuarterGrowth         float64          `json:"quarterGrowth"`
	CurrentYearRevenue    float64          `json:"currentYearRevenue"`
	YearGrowth            float64          `json:"yearGrowth"`
	TopServices           []ServiceSummary `json:"topServices"`
	TopClients            []ClientSummary  `json:"topClients"`
	QuickStats            QuickStatistics  `json:"quickStats"`
}

type ServiceSummary struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ClientSummary struct {
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalClients     int     `json:"totalClients"`
	TotalVisits      int     `json:"totalVisits"`
	AvgMonthlyVisits float64 `json:"avgMonthlyVisits"`
	AvgVisitValue    float64 `json:"avgVisitValue"`
}

// GetReportAnalytics returns the complete analytics summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	currentMonthRevenue, err := rc.getCollectedRevenue(userUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getCollectedRevenue(userUUID,
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getCollectedRevenue(userUUID,
		rc.getQuarterStart(now),
		rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getCollectedRevenue(userUUID,
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getCollectedRevenue(userUUID,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getCollectedRevenue(userUUID,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topServices, err := rc.getTopServices(userUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}

	topClients, err := rc.getTopClients(userUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top clients")
		return
	}

	quickStats, err := rc.getQuickStatistics(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopServices:           topServices,
		TopClients:            topClients,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

// getCollectedRevenue sums what was actually collected: the payment
// amount when recorded, else the listed price.
func (rc *ReportController) getCollectedRevenue(userID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ? AND date BETWEEN ? AND ?",
			userID, models.ApptCompleted, start, end).
		Select("COALESCE(SUM(COALESCE(payment_amount, price)), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopServices(userID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := config.DB.Table("appointments").
		Select("service_name as name, COUNT(*) as count, SUM(COALESCE(payment_amount, price)) as revenue").
		Where("user_id = ? AND status = ? AND date BETWEEN ? AND ? AND deleted_at IS NULL",
			userID, models.ApptCompleted, start, end).
		Group("service_name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopClients(userID uuid.UUID, start, end time.Time, limit int) ([]ClientSummary, error) {
	var clients []ClientSummary

	err := config.DB.Table("appointments").
		Select("clients.name, COUNT(appointments.id) as visits, SUM(COALESCE(appointments.payment_amount, appointments.price)) as spent").
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.user_id = ? AND appointments.status = ? AND appointments.date BETWEEN ? AND ? AND appointments.deleted_at IS NULL AND clients.deleted_at IS NULL",
			userID, models.ApptCompleted, start, end).
		Group("clients.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&clients).Error

	return clients, err
}

func (rc *ReportController) getQuickStatistics(userID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalClients int64
	if err := config.DB.Model(&models.Client{}).
		Where("user_id = ? AND deleted_at IS NULL", userID).
		Count(&totalClients).Error; err != nil {
		return stats, err
	}
	stats.TotalClients = int(totalClients)

	var totalVisits int64
	if err := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, models.ApptCompleted).
		Count(&totalVisits).Error; err != nil {
		return stats, err
	}
	stats.TotalVisits = int(totalVisits)

	var avgVisits float64
	err := config.DB.Raw(`
		SELECT COALESCE(AVG(visits), 0) FROM (
			SELECT COUNT(*) as visits
			FROM appointments
			WHERE user_id = ? AND status = ? AND deleted_at IS NULL
			GROUP BY DATE_TRUNC('month', date)
		) monthly_visits
	`, userID, models.ApptCompleted).Scan(&avgVisits).Error
	if err != nil {
		return stats, err
	}
	stats.AvgMonthlyVisits = avgVisits

	var totalRevenue float64
	if err := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND status = ? AND deleted_at IS NULL", userID, models.ApptCompleted).
		Select("COALESCE(SUM(COALESCE(payment_amount, price)), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}

	if stats.TotalVisits > 0 {
		stats.AvgVisitValue = totalRevenue / float64(stats.TotalVisits)
	}

	return stats, nil
}
