// models/outreach_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutreachLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClientID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	TemplateID *uuid.UUID `gorm:"type:uuid"` // nil when the stock wording was used

	Type         string `gorm:"type:varchar(20)"` // overdue, coming-due, missed, fee
	Message      string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(20)"` // whatsapp, sms, billing
	SentAt       time.Time

	gorm.Model
}

func (o *OutreachLog) BeforeCreate(tx *gorm.DB) (err error) {
	o.ID = uuid.New()
	return
}
