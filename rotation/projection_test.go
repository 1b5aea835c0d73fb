package rotation_test

import (
	"testing"
	"time"

	"rotationcrm-backend/models"
	"rotationcrm-backend/rotation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func TestVisitsPerYear(t *testing.T) {
	visits, err := rotation.VisitsPerYear(10)
	require.NoError(t, err)
	assert.InDelta(t, 5.2, visits, 0.0001)

	visits, err = rotation.VisitsPerYear(52)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, visits, 0.0001)

	_, err = rotation.VisitsPerYear(0)
	assert.ErrorIs(t, err, rotation.ErrInvalidRotation)

	_, err = rotation.VisitsPerYear(-4)
	assert.ErrorIs(t, err, rotation.ErrInvalidRotation)
}

// Base service 100 on a ten week rotation projects to 520 a year.
func TestProjectAnnualValue_BaseOnly(t *testing.T) {
	client := &models.Client{
		BaseServiceName:  "Cut & Style",
		BaseServicePrice: 100,
		RotationWeeks:    10,
	}

	value, err := rotation.ProjectAnnualValue(client)
	require.NoError(t, err)
	assert.Equal(t, 520.0, value)
}

// Adding a 20 add-on every other visit brings the same client to 572.
func TestProjectAnnualValue_WithAddOn(t *testing.T) {
	client := &models.Client{
		BaseServiceName:  "Cut & Style",
		BaseServicePrice: 100,
		RotationWeeks:    10,
		AddOns: []models.AddOnSelection{
			{ServiceName: "Gloss Treatment", Price: 20, Frequency: models.FrequencyEveryOtherVisit},
		},
	}

	value, err := rotation.ProjectAnnualValue(client)
	require.NoError(t, err)
	assert.Equal(t, 572.0, value)
}

func TestProjectAnnualValue_AddOnFrequencies(t *testing.T) {
	tests := []struct {
		frequency string
		want      float64
	}{
		{models.FrequencyEveryVisit, 520 + 104},     // 20 x 5.2
		{models.FrequencyEveryOtherVisit, 520 + 52}, // 20 x 2.6
		{models.FrequencyOccasionally, 520 + 26},    // 20 x 1.3
	}

	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			client := &models.Client{
				BaseServiceName:  "Cut & Style",
				BaseServicePrice: 100,
				RotationWeeks:    10,
				AddOns: []models.AddOnSelection{
					{ServiceName: "Add-on", Price: 20, Frequency: tt.frequency},
				},
			}
			value, err := rotation.ProjectAnnualValue(client)
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestProjectAnnualValue_UnknownFrequency(t *testing.T) {
	client := &models.Client{
		BaseServiceName:  "Cut & Style",
		BaseServicePrice: 100,
		RotationWeeks:    10,
		AddOns: []models.AddOnSelection{
			{ServiceName: "Add-on", Price: 20, Frequency: "whenever"},
		},
	}

	_, err := rotation.ProjectAnnualValue(client)
	assert.ErrorIs(t, err, rotation.ErrUnknownAddOnFrequency)
}

func TestProjectAnnualValue_EventsCountOnce(t *testing.T) {
	client := &models.Client{
		BaseServiceName:  "Cut & Style",
		BaseServicePrice: 100,
		RotationWeeks:    10,
		Appointments: []models.Appointment{
			{Date: date(2025, time.June, 14), ServiceName: "Wedding Updo", Price: 250, Status: models.ApptEvent},
			{Date: date(2025, time.March, 1), ServiceName: "Cut & Style", Price: 100, Status: models.ApptCompleted},
		},
	}

	value, err := rotation.ProjectAnnualValue(client)
	require.NoError(t, err)
	assert.Equal(t, 770.0, value, "base 520 plus the one-off event, completed history not double counted")
}

func TestProjectAnnualValue_NoBaseService(t *testing.T) {
	client := &models.Client{RotationWeeks: 8}
	value, err := rotation.ProjectAnnualValue(client)
	require.NoError(t, err)
	assert.Equal(t, 0.0, value)
}

// A longer rotation never projects to more revenue.
func TestProjectionMonotonicity(t *testing.T) {
	prev := 0.0
	for weeks := 52; weeks >= 1; weeks-- {
		client := &models.Client{
			BaseServiceName:  "Session",
			BaseServicePrice: 85,
			RotationWeeks:    weeks,
			AddOns: []models.AddOnSelection{
				{ServiceName: "Extra", Price: 15, Frequency: models.FrequencyOccasionally},
			},
		}
		value, err := rotation.ProjectAnnualValue(client)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, value, prev, "weeks=%d", weeks)
		prev = value
	}
}

func TestAggregateForecast_Partition(t *testing.T) {
	clients := []models.Client{
		{ID: uuid.New(), Status: models.ClientConfirmed, BaseServiceName: "Cut", BaseServicePrice: 100, RotationWeeks: 10},
		{ID: uuid.New(), Status: models.ClientPending, BaseServiceName: "Cut", BaseServicePrice: 60, RotationWeeks: 6},
		{ID: uuid.New(), Status: models.ClientAtRisk, BaseServiceName: "Color", BaseServicePrice: 150, RotationWeeks: 12},
		{ID: uuid.New(), Status: models.ClientConfirmed, BaseServiceName: "Session", BaseServicePrice: 85, RotationWeeks: 4},
	}

	f := rotation.AggregateForecast(clients)
	assert.Empty(t, f.Skipped)
	assert.Equal(t, f.AnnualProjected, f.Confirmed+f.Pending,
		"confirmed and pending must partition the projection exactly")
	assert.Greater(t, f.Confirmed, 0.0)
	assert.Greater(t, f.Pending, 0.0)
}

func TestAggregateForecast_SkipsMalformedClient(t *testing.T) {
	bad := models.Client{ID: uuid.New(), Status: models.ClientConfirmed, BaseServiceName: "Cut", BaseServicePrice: 100, RotationWeeks: 0}
	good := models.Client{ID: uuid.New(), Status: models.ClientConfirmed, BaseServiceName: "Cut", BaseServicePrice: 100, RotationWeeks: 10}

	f := rotation.AggregateForecast([]models.Client{bad, good})
	assert.Equal(t, []uuid.UUID{bad.ID}, f.Skipped)
	assert.Equal(t, 520.0, f.AnnualProjected, "the bad record must not zero out the roster")
}

func TestActualRevenueStats(t *testing.T) {
	clients := []models.Client{
		{
			ID: uuid.New(),
			Appointments: []models.Appointment{
				{Date: date(2025, time.January, 10), Price: 120, PaymentAmount: float64Ptr(150), Status: models.ApptCompleted},
				{Date: date(2025, time.February, 12), Price: 120, Status: models.ApptCompleted},
				{Date: date(2025, time.March, 3), Price: 120, Status: models.ApptNoShow},
				{Date: date(2025, time.April, 1), Price: 120, Status: models.ApptUpcoming},
				{Date: date(2024, time.December, 1), Price: 500, Status: models.ApptCompleted}, // prior year
			},
		},
	}

	stats := rotation.ActualRevenueStats(clients, 2025)
	assert.Equal(t, 270.0, stats.ActualYTD, "collected amount wins over listed price")
	assert.Equal(t, 120.0, stats.MissedYTD)
	assert.Equal(t, 2, stats.CompletedCount)
	assert.Equal(t, 1, stats.MissedCount)
	assert.Equal(t, 69.0, stats.CollectionRate) // round(270/390*100)
}

func TestActualRevenueStats_NoActivity(t *testing.T) {
	stats := rotation.ActualRevenueStats(nil, 2025)
	assert.Equal(t, 100.0, stats.CollectionRate, "no activity means trivially perfect collection")
	assert.Zero(t, stats.ActualYTD)
	assert.Zero(t, stats.MissedYTD)
}

func TestActualRevenueStats_RateBounds(t *testing.T) {
	allMissed := []models.Client{{
		ID: uuid.New(),
		Appointments: []models.Appointment{
			{Date: date(2025, time.May, 1), Price: 80, Status: models.ApptLateCancel},
			{Date: date(2025, time.May, 20), Price: 80, Status: models.ApptCancelled},
		},
	}}
	stats := rotation.ActualRevenueStats(allMissed, 2025)
	assert.Equal(t, 0.0, stats.CollectionRate)
	assert.Equal(t, 160.0, stats.MissedYTD)

	allCollected := []models.Client{{
		ID: uuid.New(),
		Appointments: []models.Appointment{
			{Date: date(2025, time.May, 1), Price: 80, Status: models.ApptCompleted},
		},
	}}
	stats = rotation.ActualRevenueStats(allCollected, 2025)
	assert.Equal(t, 100.0, stats.CollectionRate)
}

func TestRefreshAnnualValue(t *testing.T) {
	client := &models.Client{
		BaseServiceName:  "Cut & Style",
		BaseServicePrice: 100,
		RotationWeeks:    10,
	}
	require.NoError(t, rotation.RefreshAnnualValue(client))
	assert.Equal(t, 520.0, client.AnnualValue)

	client.RotationWeeks = 5
	require.NoError(t, rotation.RefreshAnnualValue(client))
	assert.Equal(t, 1040.0, client.AnnualValue)
}

// A failed projection must surface the error and leave the cached value
// alone; callers fail the request instead of persisting a stale number.
func TestRefreshAnnualValue_ErrorLeavesCacheUntouched(t *testing.T) {
	client := &models.Client{
		BaseServiceName:  "Cut & Style",
		BaseServicePrice: 100,
		RotationWeeks:    10,
		AnnualValue:      520,
	}
	client.AddOns = []models.AddOnSelection{
		{ServiceName: "Add-on", Price: 20, Frequency: "whenever"},
	}

	err := rotation.RefreshAnnualValue(client)
	assert.ErrorIs(t, err, rotation.ErrUnknownAddOnFrequency)
	assert.Equal(t, 520.0, client.AnnualValue)
}
