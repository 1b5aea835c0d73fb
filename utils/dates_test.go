package utils_test

import (
	"testing"
	"time"

	"rotationcrm-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 15, 42, 7, 99, time.UTC)
	got := utils.BeginningOfDay(ts)
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			"same day different hours",
			time.Date(2025, time.March, 10, 1, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 23, 0, 0, 0, time.UTC),
			0,
		},
		{
			"late evening to early morning",
			time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC),
			time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC),
			1,
		},
		{
			"reversed order is negative",
			time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			-5,
		},
		{
			"across a month boundary",
			time.Date(2025, time.February, 26, 12, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 5, 8, 0, 0, 0, time.UTC),
			7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.DaysBetween(tt.start, tt.end))
		})
	}
}
