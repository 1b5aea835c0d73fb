package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. Transition legality is enforced centrally in the
// rotation package, never by direct field writes.
const (
	ApptScheduled  = "scheduled"
	ApptUpcoming   = "upcoming"
	ApptEvent      = "event"
	ApptCompleted  = "completed"
	ApptNoShow     = "no-show"
	ApptLateCancel = "late-cancel"
	ApptCancelled  = "cancelled"
)

// MissedReasonRescheduled is a missed reason, not a status: the original
// appointment is cancelled and a new upcoming one is created.
const MissedReasonRescheduled = "rescheduled"

// Appointment is one scheduled or historical visit. Date is the visit's own
// calendar date; the client's NextAppointment tracks the next due date
// separately. PaymentAmount is the amount actually collected and is only
// meaningful on completed appointments; MissedReason only on no-show,
// late-cancel and cancelled ones.
type Appointment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`

	Date        time.Time `gorm:"index;not null"`
	ServiceName string    `gorm:"not null"`
	Price       float64   `gorm:"type:decimal(10,2);not null"`

	Status string `gorm:"type:varchar(15);default:'scheduled'"`

	PaymentMethod string
	PaymentAmount *float64 `gorm:"type:decimal(10,2)"`
	PaymentNote   string
	ArrivedLate   bool `gorm:"default:false"`

	MissedReason string

	CompletedAt *time.Time

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
