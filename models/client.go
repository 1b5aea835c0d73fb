package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rotation tiers. The tier is advisory grouping metadata; RotationWeeks on
// the client record is the authoritative interval.
const (
	TierPriority = "priority"
	TierStandard = "standard"
	TierFlex     = "flex"
	TierCustom   = "custom"
)

// Client roster statuses.
const (
	ClientConfirmed = "confirmed"
	ClientPending   = "pending"
	ClientAtRisk    = "at-risk"
)

// Add-on recurrence frequencies.
const (
	FrequencyEveryVisit      = "every-visit"
	FrequencyEveryOtherVisit = "every-other-visit"
	FrequencyOccasionally    = "occasionally"
)

// Client is the aggregate root of the roster. The base service is a price
// snapshot copied from the Service catalog at selection time, never a shared
// reference. NextAppointment is the next due date, not the last visit.
type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name  string `gorm:"not null"`
	Phone string `gorm:"not null;uniqueIndex:idx_user_phone,priority:2"`
	Email string
	Notes string

	BaseServiceName  string  `gorm:"column:base_service_name"`
	BaseServicePrice float64 `gorm:"type:decimal(10,2);default:0.0"`

	RotationTier    string `gorm:"type:varchar(10);default:'standard'"`
	RotationWeeks   int    `gorm:"default:8"`
	NextAppointment *time.Time

	// Cached projection, kept in sync by the rotation engine on every
	// mutation of the base service, rotation or add-ons.
	AnnualValue float64 `gorm:"type:decimal(10,2);default:0.0"`

	Status string `gorm:"type:varchar(10);default:'pending'"` // confirmed, pending, at-risk

	IndustryData JSONB `gorm:"type:jsonb;default:'{}'"`

	AddOns       []AddOnSelection `gorm:"foreignKey:ClientID"`
	Appointments []Appointment    `gorm:"foreignKey:ClientID"`

	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// AddOnSelection pairs an addon-service snapshot with a recurrence
// frequency on one client.
type AddOnSelection struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`

	ServiceName string  `gorm:"not null"`
	Price       float64 `gorm:"type:decimal(10,2);not null"`
	Frequency   string  `gorm:"type:varchar(20);not null"` // every-visit, every-other-visit, occasionally

	gorm.Model
}

func (a *AddOnSelection) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// DefaultRotationWeeks returns the conventional interval for a tier.
// Custom tiers carry their own interval and fall back to standard here.
func DefaultRotationWeeks(tier string) int {
	switch tier {
	case TierPriority:
		return 6
	case TierFlex:
		return 12
	default:
		return 8
	}
}
