package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service categories. Base services recur with the rotation, add-ons are
// attached to clients with their own frequency, events are one-offs.
const (
	ServiceCategoryBase  = "base"
	ServiceCategoryAddon = "addon"
	ServiceCategoryEvent = "event"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string
	Price       float64 `gorm:"type:decimal(10,2);not null"`
	Duration    int     // in minutes
	Category    string  `gorm:"type:varchar(10);default:'base'"` // base, addon, event
	IsActive    bool    `gorm:"default:true"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
