// services/outreach_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"
	"rotationcrm-backend/utils"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type OutreachService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewOutreachService(db *gorm.DB) *OutreachService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &OutreachService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the rebooking sweep every day at 9 AM.
func (s *OutreachService) StartScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 9 * * *", s.SendDailyRebookReminders); err != nil {
		log.Printf("Failed to schedule rebook sweep: %v", err)
		return
	}

	c.Start()
	log.Println("Outreach scheduler started")
}

// SendDailyRebookReminders walks every active account's roster and nudges
// overdue and coming-due clients to rebook.
func (s *OutreachService) SendDailyRebookReminders() {
	log.Println("Starting daily rebook reminder processing...")

	var users []models.User
	if err := s.db.Find(&users, "is_active = ? AND rebook_reminders = ?", true, true).Error; err != nil {
		log.Printf("Failed to fetch accounts: %v", err)
		return
	}

	for _, user := range users {
		s.ProcessRosterReminders(&user, time.Now())
	}

	log.Println("Daily rebook reminder processing completed")
}

// ProcessRosterReminders classifies one account's roster and sends the
// overdue and coming-due reminders.
func (s *OutreachService) ProcessRosterReminders(user *models.User, today time.Time) {
	var clients []models.Client
	if err := s.db.Where("user_id = ? AND is_active = ?", user.ID, true).
		Find(&clients).Error; err != nil {
		log.Printf("Account %s: failed to load roster: %v", user.ID, err)
		return
	}

	for _, entry := range rotation.OverdueClients(clients, today) {
		template, templateID := s.templateFor(user.ID, models.OutreachOverdue)
		message := utils.RenderTemplate(template, map[string]string{
			"ClientName":    entry.Client.Name,
			"BusinessName":  user.BusinessName,
			"DaysOverdue":   strconv.Itoa(entry.DaysOverdue),
			"RotationWeeks": strconv.Itoa(entry.Client.RotationWeeks),
		})
		s.sendReminder(user, entry.Client, models.OutreachOverdue, message, templateID)
	}

	for _, entry := range rotation.ComingDueClients(clients, today) {
		template, templateID := s.templateFor(user.ID, models.OutreachComingDue)
		message := utils.RenderTemplate(template, map[string]string{
			"ClientName":   entry.Client.Name,
			"BusinessName": user.BusinessName,
			"DaysUntil":    strconv.Itoa(entry.DaysUntil),
		})
		s.sendReminder(user, entry.Client, models.OutreachComingDue, message, templateID)
	}
}

// templateFor returns the account's active template wording for a type,
// falling back to the stock message when none is customized.
func (s *OutreachService) templateFor(userID uuid.UUID, templateType string) (string, *uuid.UUID) {
	var template models.OutreachTemplate
	if err := s.db.Where("user_id = ? AND type = ? AND is_active = ?", userID, templateType, true).
		First(&template).Error; err != nil {
		return models.DefaultOutreachMessages[templateType], nil
	}
	return template.Message, &template.ID
}

// NotifyMissedAppointment delivers the "sorry we missed you" message a
// lifecycle transition asked for.
func (s *OutreachService) NotifyMissedAppointment(client *models.Client, appt *models.Appointment) {
	var user models.User
	if err := s.db.First(&user, "id = ?", client.UserID).Error; err != nil {
		log.Printf("Failed to load account for missed-visit message: %v", err)
		return
	}
	template, templateID := s.templateFor(user.ID, models.OutreachMissed)
	message := utils.RenderTemplate(template, map[string]string{
		"ClientName":   client.Name,
		"BusinessName": user.BusinessName,
		"ServiceName":  appt.ServiceName,
		"Date":         appt.Date.Format("Jan 2"),
	})
	s.sendReminder(&user, client, models.OutreachMissed, message, templateID)
}

// LogFeeIntent records that a late fee was requested for the external
// biller. The charge itself happens outside this system.
func (s *OutreachService) LogFeeIntent(client *models.Client, appt *models.Appointment) {
	entry := models.OutreachLog{
		UserID:   client.UserID,
		ClientID: client.ID,
		Type:     "fee",
		Message:  fmt.Sprintf("Late fee requested for %s on %s (%.2f)", appt.ServiceName, appt.Date.Format("2006-01-02"), appt.Price),
		Status:   "sent",
		Channel:  "billing",
		SentAt:   time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log fee intent for client %s: %v", client.ID, err)
	}
}

func (s *OutreachService) sendReminder(user *models.User, client *models.Client, reminderType, message string, templateID *uuid.UUID) {
	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if user.WhatsAppNotifications && strings.HasPrefix(client.Phone, "+") {
		to = "whatsapp:" + client.Phone
		channel = "whatsapp"
	} else {
		to = client.Phone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", client.Phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", client.Phone)
	}

	entry := models.OutreachLog{
		UserID:       user.ID,
		ClientID:     client.ID,
		TemplateID:   templateID,
		Type:         reminderType,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log outreach for client %s: %v", client.ID, err)
	}
}
