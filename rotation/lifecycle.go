// rotation/lifecycle.go
package rotation

import (
	"fmt"
	"rotationcrm-backend/models"
	"time"

	"github.com/google/uuid"
)

// legalTransitions is the single source of truth for appointment status
// changes. Anything not listed here is rejected, regardless of which
// caller asks.
var legalTransitions = map[string][]string{
	models.ApptScheduled: {models.ApptCompleted, models.ApptNoShow, models.ApptLateCancel, models.ApptCancelled},
	models.ApptUpcoming:  {models.ApptCompleted, models.ApptNoShow, models.ApptLateCancel, models.ApptCancelled},
	models.ApptEvent:     {models.ApptCompleted, models.ApptNoShow, models.ApptLateCancel, models.ApptCancelled},
}

// ValidateTransition checks a status change against the transition table.
func ValidateTransition(from, to string) error {
	for _, allowed := range legalTransitions[from] {
		if to == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// CompleteParams carries the caller's input for marking a visit done.
// PaymentAmount defaults to the appointment's listed price.
type CompleteParams struct {
	PaymentMethod string
	PaymentAmount *float64
	PaymentNote   string
	ArrivedLate   bool
	// BookNext advances the client's rotation: a new upcoming
	// appointment one interval from today. Caller's choice, never
	// automatic.
	BookNext bool
}

// MissParams carries the caller's input for a missed visit. The side
// effect flags only signal intent; billing and messaging happen outside
// the engine.
type MissParams struct {
	Status         string // no-show, late-cancel or cancelled
	Reason         string
	RescheduleDate *time.Time
	ChargeFee      bool
	FlagAtRisk     bool
	SendMessage    bool
}

// SideEffects tells the caller what the transition asked for.
type SideEffects struct {
	ChargeFee       bool
	SendMessage     bool
	FlagAtRisk      bool
	NextAppointment *models.Appointment
}

// Complete transitions an appointment to completed. Requires a payment
// method; the collected amount falls back to the listed price. Returns
// the newly booked next appointment when BookNext is set.
func Complete(client *models.Client, appt *models.Appointment, params CompleteParams, now time.Time) (*models.Appointment, error) {
	if err := ValidateTransition(appt.Status, models.ApptCompleted); err != nil {
		return nil, err
	}
	if params.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method missing", ErrMissingPaymentInfo)
	}
	amount := appt.Price
	if params.PaymentAmount != nil {
		amount = *params.PaymentAmount
	} else if appt.Price <= 0 {
		return nil, fmt.Errorf("%w: no amount and no listed price", ErrMissingPaymentInfo)
	}

	appt.Status = models.ApptCompleted
	appt.PaymentMethod = params.PaymentMethod
	appt.PaymentAmount = &amount
	appt.PaymentNote = params.PaymentNote
	appt.ArrivedLate = params.ArrivedLate
	appt.CompletedAt = &now
	appt.UpdatedAt = now

	var next *models.Appointment
	if params.BookNext {
		booked, err := bookNext(client, appt, now, DueDate(now, client.RotationWeeks))
		if err != nil {
			return nil, err
		}
		next = booked
	}
	return next, nil
}

// MarkMissed transitions an appointment to one of the missed statuses.
// A reason of "rescheduled" cancels the original and books a new upcoming
// appointment at the mandatory reschedule date.
func MarkMissed(client *models.Client, appt *models.Appointment, params MissParams, now time.Time) (SideEffects, error) {
	var effects SideEffects

	target := params.Status
	switch target {
	case models.ApptNoShow, models.ApptLateCancel, models.ApptCancelled:
	default:
		return effects, fmt.Errorf("%w: %s is not a missed status", ErrInvalidTransition, target)
	}
	if params.Reason == "" {
		return effects, fmt.Errorf("%w: marking %s", ErrMissingMissedReason, target)
	}

	if params.Reason == models.MissedReasonRescheduled {
		target = models.ApptCancelled
		if params.RescheduleDate == nil || params.RescheduleDate.IsZero() {
			return effects, fmt.Errorf("%w: reschedule date required", ErrInvalidDate)
		}
	}
	if err := ValidateTransition(appt.Status, target); err != nil {
		return effects, err
	}

	// Book the replacement before touching the original, so a booking
	// failure leaves the record untransitioned.
	if params.Reason == models.MissedReasonRescheduled {
		booked, err := bookNext(client, appt, now, *params.RescheduleDate)
		if err != nil {
			return effects, err
		}
		effects.NextAppointment = booked
	}

	appt.Status = target
	appt.MissedReason = params.Reason
	appt.UpdatedAt = now
	if params.FlagAtRisk {
		client.Status = models.ClientAtRisk
		effects.FlagAtRisk = true
	}
	effects.ChargeFee = params.ChargeFee
	effects.SendMessage = params.SendMessage
	return effects, nil
}

// EditStatus re-litigates a settled appointment. Only moves between
// completed, no-show and cancelled are allowed after the fact.
func EditStatus(appt *models.Appointment, newStatus string, now time.Time) error {
	editable := map[string]bool{
		models.ApptCompleted: true,
		models.ApptNoShow:    true,
		models.ApptCancelled: true,
	}
	if !editable[appt.Status] || !editable[newStatus] {
		return fmt.Errorf("%w: edit %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}
	if newStatus == appt.Status {
		appt.UpdatedAt = now
		return nil
	}

	appt.Status = newStatus
	appt.UpdatedAt = now
	switch newStatus {
	case models.ApptCompleted:
		appt.MissedReason = ""
		if appt.CompletedAt == nil {
			appt.CompletedAt = &now
		}
	default:
		appt.CompletedAt = nil
		appt.PaymentAmount = nil
		appt.PaymentMethod = ""
	}
	return nil
}

func bookNext(client *models.Client, prev *models.Appointment, now time.Time, date time.Time) (*models.Appointment, error) {
	if client.RotationWeeks < 1 {
		return nil, fmt.Errorf("%w: client %s", ErrInvalidRotation, client.ID)
	}
	serviceName := client.BaseServiceName
	price := client.BaseServicePrice
	if serviceName == "" {
		serviceName = prev.ServiceName
		price = prev.Price
	}
	next := &models.Appointment{
		ID:          uuid.New(),
		ClientID:    client.ID,
		UserID:      client.UserID,
		Date:        date,
		ServiceName: serviceName,
		Price:       price,
		Status:      models.ApptUpcoming,
	}
	client.NextAppointment = &next.Date
	client.Appointments = append(client.Appointments, *next)
	return next, nil
}
