package rotation_test

import (
	"errors"
	"testing"
	"time"

	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clientDueOn(t time.Time) *models.Client {
	return &models.Client{
		Name:            "Sarah Chen",
		RotationWeeks:   8,
		NextAppointment: &t,
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := rotation.ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.June, 15), parsed)

	_, err = rotation.ParseDate("not-a-date")
	assert.ErrorIs(t, err, rotation.ErrInvalidDate)

	_, err = rotation.ParseDate("15/06/2025")
	assert.ErrorIs(t, err, rotation.ErrInvalidDate)
}

func TestDaysUntil(t *testing.T) {
	today := date(2025, time.March, 10)

	tests := []struct {
		name   string
		target time.Time
		want   int
	}{
		{"same day", today, 0},
		{"tomorrow", date(2025, time.March, 11), 1},
		{"next week", date(2025, time.March, 17), 7},
		{"five days ago", date(2025, time.March, 5), -5},
		{"across month boundary", date(2025, time.April, 2), 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rotation.DaysUntil(tt.target, today))
		})
	}
}

func TestDueDate(t *testing.T) {
	anchor := date(2025, time.January, 6)
	assert.Equal(t, date(2025, time.March, 3), rotation.DueDate(anchor, 8))
	assert.Equal(t, date(2025, time.January, 13), rotation.DueDate(anchor, 1))
}

func TestIsOverdue(t *testing.T) {
	today := date(2025, time.March, 10)

	overdue, err := rotation.IsOverdue(clientDueOn(date(2025, time.March, 5)), today)
	require.NoError(t, err)
	assert.True(t, overdue)

	overdue, err = rotation.IsOverdue(clientDueOn(today), today)
	require.NoError(t, err)
	assert.False(t, overdue, "due today is not yet overdue")

	overdue, err = rotation.IsOverdue(clientDueOn(date(2025, time.March, 20)), today)
	require.NoError(t, err)
	assert.False(t, overdue)
}

func TestIsOverdue_NoNextAppointment(t *testing.T) {
	client := &models.Client{Name: "No Date", RotationWeeks: 8}
	_, err := rotation.IsOverdue(client, date(2025, time.March, 10))
	assert.ErrorIs(t, err, rotation.ErrInvalidDate)
}

// Client five days past due on an eight week rotation.
func TestOverdueScenario(t *testing.T) {
	today := date(2025, time.March, 10)
	client := clientDueOn(date(2025, time.March, 5))

	overdue, err := rotation.IsOverdue(client, today)
	require.NoError(t, err)
	assert.True(t, overdue)

	days, err := rotation.DaysOverdue(client, today)
	require.NoError(t, err)
	assert.Equal(t, 5, days)
}

func TestIsComingDue(t *testing.T) {
	today := date(2025, time.March, 10)

	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{"due tomorrow", date(2025, time.March, 11), true},
		{"due at horizon edge", date(2025, time.March, 24), true},
		{"due past horizon", date(2025, time.March, 25), false},
		{"due today", today, false},
		{"already overdue", date(2025, time.March, 8), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rotation.IsComingDue(clientDueOn(tt.due), today, rotation.DefaultComingDueHorizon)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassificationIsPure(t *testing.T) {
	today := date(2025, time.March, 10)
	client := clientDueOn(date(2025, time.March, 5))

	first, err1 := rotation.IsOverdue(client, today)
	second, err2 := rotation.IsOverdue(client, today)
	require.NoError(t, errors.Join(err1, err2))
	assert.Equal(t, first, second)

	state1, err1 := rotation.Classify(client, today)
	state2, err2 := rotation.Classify(client, today)
	require.NoError(t, errors.Join(err1, err2))
	assert.Equal(t, state1, state2)
}

func TestHumanizeTimeAgo(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"minutes", now.Add(-30 * time.Minute), "30m ago"},
		{"just now", now, "0m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"under a day", now.Add(-23 * time.Hour), "23h ago"},
		{"yesterday", time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC), "Yesterday"},
		{"days", time.Date(2025, time.March, 6, 10, 0, 0, 0, time.UTC), "4 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rotation.HumanizeTimeAgo(tt.ts, now))
		})
	}
}
