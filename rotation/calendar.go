// rotation/calendar.go
package rotation

import (
	"fmt"
	"rotationcrm-backend/models"
	"rotationcrm-backend/utils"
	"time"
)

// DefaultComingDueHorizon is how many days ahead a client counts as
// coming due.
const DefaultComingDueHorizon = 14

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// DaysUntil returns whole days from today until target at day granularity.
// Negative when target is in the past.
func DaysUntil(target, today time.Time) int {
	return utils.DaysBetween(today, target)
}

// DueDate returns anchor plus the rotation interval.
func DueDate(anchor time.Time, rotationWeeks int) time.Time {
	return anchor.AddDate(0, 0, rotationWeeks*7)
}

// IsOverdue reports whether the client's due date has passed.
// NextAppointment is the next due date itself, so overdue simply means
// today is past it.
func IsOverdue(client *models.Client, today time.Time) (bool, error) {
	next, err := nextDueDate(client)
	if err != nil {
		return false, err
	}
	return DaysUntil(next, today) < 0, nil
}

// IsComingDue reports whether the due date falls within the next
// horizonDays days, excluding today and anything already overdue.
func IsComingDue(client *models.Client, today time.Time, horizonDays int) (bool, error) {
	next, err := nextDueDate(client)
	if err != nil {
		return false, err
	}
	until := DaysUntil(next, today)
	return until > 0 && until <= horizonDays, nil
}

// DaysOverdue returns how many days past due the client is. Only
// meaningful when IsOverdue is true.
func DaysOverdue(client *models.Client, today time.Time) (int, error) {
	next, err := nextDueDate(client)
	if err != nil {
		return 0, err
	}
	return -DaysUntil(next, today), nil
}

func nextDueDate(client *models.Client) (time.Time, error) {
	if client.NextAppointment == nil || client.NextAppointment.IsZero() {
		return time.Time{}, fmt.Errorf("%w: client %s has no next appointment", ErrInvalidDate, client.ID)
	}
	return *client.NextAppointment, nil
}

// HumanizeTimeAgo renders a timestamp relative to now for activity feeds.
func HumanizeTimeAgo(ts, now time.Time) string {
	minutes := int(now.Sub(ts).Minutes())
	if minutes < 60 {
		if minutes < 0 {
			minutes = 0
		}
		return fmt.Sprintf("%dm ago", minutes)
	}
	hours := int(now.Sub(ts).Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	days := utils.DaysBetween(ts, now)
	if days == 1 {
		return "Yesterday"
	}
	return fmt.Sprintf("%d days ago", days)
}
