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

func rosterClient(name string, status string, due time.Time) models.Client {
	return models.Client{
		ID:              uuid.New(),
		Name:            name,
		Status:          status,
		RotationWeeks:   8,
		NextAppointment: &due,
	}
}

func TestClassify(t *testing.T) {
	today := date(2025, time.March, 10)

	tests := []struct {
		name string
		due  time.Time
		want rotation.ClientState
	}{
		{"well in the future", date(2025, time.May, 1), rotation.StateOnTrack},
		{"due today", today, rotation.StateOnTrack},
		{"inside the horizon", date(2025, time.March, 18), rotation.StateComingDue},
		{"at the horizon edge", date(2025, time.March, 24), rotation.StateComingDue},
		{"one past the horizon", date(2025, time.March, 25), rotation.StateOnTrack},
		{"past due", date(2025, time.March, 4), rotation.StateOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, err := rotation.Classify(clientDueOn(tt.due), today)
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestClassify_NoNextAppointment(t *testing.T) {
	client := &models.Client{Name: "No Date", RotationWeeks: 8}
	_, err := rotation.Classify(client, date(2025, time.March, 10))
	assert.ErrorIs(t, err, rotation.ErrInvalidDate)
}

func TestNeedsAttention_OrderingAndDedup(t *testing.T) {
	today := date(2025, time.March, 10)

	mostOverdue := rosterClient("Most Overdue", models.ClientConfirmed, date(2025, time.February, 20))
	overdueAtRisk := rosterClient("Overdue At Risk", models.ClientAtRisk, date(2025, time.March, 5))
	pendingSoon := rosterClient("Pending Soon", models.ClientPending, date(2025, time.March, 12))
	pendingLater := rosterClient("Pending Later", models.ClientPending, date(2025, time.April, 20))
	healthy := rosterClient("Healthy", models.ClientConfirmed, date(2025, time.April, 1))

	entries := rotation.NeedsAttention(
		[]models.Client{healthy, pendingLater, overdueAtRisk, pendingSoon, mostOverdue}, today)

	require.Len(t, entries, 4, "healthy confirmed client stays off the list")

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Client.Name
	}
	assert.Equal(t, []string{"Most Overdue", "Overdue At Risk", "Pending Soon", "Pending Later"}, names)

	// The at-risk overdue client appears once, classified overdue.
	assert.Equal(t, rotation.StateOverdue, entries[1].State)
	assert.Equal(t, 5, entries[1].DaysOverdue)
	assert.Equal(t, 2, entries[2].DaysUntil)
}

func TestNeedsAttention_AtRiskWithoutDueDate(t *testing.T) {
	today := date(2025, time.March, 10)
	noDate := models.Client{ID: uuid.New(), Name: "Ghost", Status: models.ClientAtRisk, RotationWeeks: 8}

	entries := rotation.NeedsAttention([]models.Client{noDate}, today)
	require.Len(t, entries, 1, "at-risk clients surface even without a scheduled date")
	assert.Equal(t, "Ghost", entries[0].Client.Name)
}

func TestOverdueClients(t *testing.T) {
	today := date(2025, time.March, 10)
	a := rosterClient("Five Days", models.ClientConfirmed, date(2025, time.March, 5))
	b := rosterClient("Twelve Days", models.ClientConfirmed, date(2025, time.February, 26))
	c := rosterClient("Fine", models.ClientConfirmed, date(2025, time.April, 1))

	entries := rotation.OverdueClients([]models.Client{a, b, c}, today)
	require.Len(t, entries, 2)
	assert.Equal(t, "Twelve Days", entries[0].Client.Name)
	assert.Equal(t, 12, entries[0].DaysOverdue)
	assert.Equal(t, "Five Days", entries[1].Client.Name)
	assert.Equal(t, 5, entries[1].DaysOverdue)
}

func TestComingDueClients(t *testing.T) {
	today := date(2025, time.March, 10)
	soon := rosterClient("Soon", models.ClientConfirmed, date(2025, time.March, 12))
	later := rosterClient("Later", models.ClientConfirmed, date(2025, time.March, 20))
	overdue := rosterClient("Overdue", models.ClientConfirmed, date(2025, time.March, 1))

	entries := rotation.ComingDueClients([]models.Client{later, overdue, soon}, today)
	require.Len(t, entries, 2)
	assert.Equal(t, "Soon", entries[0].Client.Name)
	assert.Equal(t, 2, entries[0].DaysUntil)
	assert.Equal(t, "Later", entries[1].Client.Name)
	assert.Equal(t, 10, entries[1].DaysUntil)
}
