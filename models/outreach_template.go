package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Outreach template types. "fee" entries in the log have no template;
// billing intent is never worded by the user.
const (
	OutreachOverdue   = "overdue"
	OutreachComingDue = "coming-due"
	OutreachMissed    = "missed"
)

// OutreachTemplate is a per-account message template. Placeholders like
// [ClientName] are substituted at send time.
type OutreachTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Type     string    `gorm:"type:varchar(20);not null"` // overdue, coming-due, missed
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}

func (t *OutreachTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// DefaultOutreachMessages are the stock wordings used until the account
// customizes a template.
var DefaultOutreachMessages = map[string]string{
	OutreachOverdue:   "Hi [ClientName], it's been a while! You're [DaysOverdue] days past your usual [RotationWeeks]-week rotation with [BusinessName]. Reply to book your next visit.",
	OutreachComingDue: "Hi [ClientName], your next visit with [BusinessName] is due in [DaysUntil] days. Reply to lock in your spot!",
	OutreachMissed:    "Hi [ClientName], sorry we missed you for your [ServiceName] on [Date]. Reply to reschedule.",
}
