package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRequest statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingDeclined  = "declined"
	BookingCancelled = "cancelled"
)

// BookingRequest is an inbound request from the public booking page.
// Confirming one creates a Client seeded on the standard tier.
type BookingRequest struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name  string `gorm:"not null"`
	Phone string `gorm:"not null"`
	Email string
	Notes string

	ServiceName   string
	ServicePrice  float64 `gorm:"type:decimal(10,2);default:0.0"`
	RequestedDate *time.Time

	Status string `gorm:"type:varchar(10);default:'pending'"`

	gorm.Model
}

func (b *BookingRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
