// rotation/status.go
package rotation

import (
	"rotationcrm-backend/models"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ClientState is the rotation-derived standing of a client.
type ClientState string

const (
	StateOnTrack   ClientState = "on-track"
	StateComingDue ClientState = "coming-due"
	StateOverdue   ClientState = "overdue"
)

// Classify places a client into exactly one of the three states.
func Classify(client *models.Client, today time.Time) (ClientState, error) {
	overdue, err := IsOverdue(client, today)
	if err != nil {
		return "", err
	}
	if overdue {
		return StateOverdue, nil
	}
	coming, err := IsComingDue(client, today, DefaultComingDueHorizon)
	if err != nil {
		return "", err
	}
	if coming {
		return StateComingDue, nil
	}
	return StateOnTrack, nil
}

// AttentionEntry is one row of the dashboard's "needs attention" list.
type AttentionEntry struct {
	Client      *models.Client `json:"client"`
	State       ClientState    `json:"state"`
	DaysOverdue int            `json:"daysOverdue,omitempty"`
	DaysUntil   int            `json:"daysUntil,omitempty"`
}

// NeedsAttention returns overdue clients plus anyone flagged at-risk or
// still pending, de-duplicated by identity. Overdue entries come first,
// most overdue on top; the rest follow by soonest due date.
func NeedsAttention(clients []models.Client, today time.Time) []AttentionEntry {
	seen := make(map[uuid.UUID]bool)
	var entries []AttentionEntry

	add := func(c *models.Client, state ClientState) {
		if seen[c.ID] {
			return
		}
		seen[c.ID] = true
		entry := AttentionEntry{Client: c, State: state}
		if c.NextAppointment != nil && !c.NextAppointment.IsZero() {
			until := DaysUntil(*c.NextAppointment, today)
			if until < 0 {
				entry.DaysOverdue = -until
			} else {
				entry.DaysUntil = until
			}
		}
		entries = append(entries, entry)
	}

	for i := range clients {
		c := &clients[i]
		state, err := Classify(c, today)
		if err == nil && state == StateOverdue {
			add(c, state)
			continue
		}
		if c.Status == models.ClientAtRisk || c.Status == models.ClientPending {
			if err != nil {
				state = StateOnTrack
			}
			add(c, state)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if (a.State == StateOverdue) != (b.State == StateOverdue) {
			return a.State == StateOverdue
		}
		if a.State == StateOverdue {
			return a.DaysOverdue > b.DaysOverdue
		}
		return a.DaysUntil < b.DaysUntil
	})
	return entries
}

// OverdueClients returns overdue clients sorted most-overdue first for
// outreach priority.
func OverdueClients(clients []models.Client, today time.Time) []AttentionEntry {
	var entries []AttentionEntry
	for i := range clients {
		c := &clients[i]
		state, err := Classify(c, today)
		if err != nil || state != StateOverdue {
			continue
		}
		days, _ := DaysOverdue(c, today)
		entries = append(entries, AttentionEntry{Client: c, State: state, DaysOverdue: days})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysOverdue > entries[j].DaysOverdue
	})
	return entries
}

// ComingDueClients returns coming-due clients sorted soonest first.
func ComingDueClients(clients []models.Client, today time.Time) []AttentionEntry {
	var entries []AttentionEntry
	for i := range clients {
		c := &clients[i]
		state, err := Classify(c, today)
		if err != nil || state != StateComingDue {
			continue
		}
		entries = append(entries, AttentionEntry{
			Client:    c,
			State:     state,
			DaysUntil: DaysUntil(*c.NextAppointment, today),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysUntil < entries[j].DaysUntil
	})
	return entries
}
