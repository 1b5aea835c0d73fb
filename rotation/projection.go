// rotation/projection.go
package rotation

import (
	"fmt"
	"math"
	"rotationcrm-backend/models"

	"github.com/google/uuid"
)

// VisitsPerYear returns the expected visit count for a rotation interval.
// The value stays unrounded; only display code rounds it.
func VisitsPerYear(rotationWeeks int) (float64, error) {
	if rotationWeeks < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRotation, rotationWeeks)
	}
	return 52.0 / float64(rotationWeeks), nil
}

// AddOnMultiplier maps a recurrence frequency to its share of the yearly
// visit count.
func AddOnMultiplier(frequency string, visitsPerYear float64) (float64, error) {
	switch frequency {
	case models.FrequencyEveryVisit:
		return visitsPerYear, nil
	case models.FrequencyEveryOtherVisit:
		return visitsPerYear / 2, nil
	case models.FrequencyOccasionally:
		return visitsPerYear / 4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAddOnFrequency, frequency)
	}
}

// ProjectAnnualValue computes the client's projected yearly revenue:
// base service times visits per year, add-ons by their frequency share,
// plus each scheduled one-off event exactly once. Rounding happens once
// on the final sum so per-term errors don't compound.
func ProjectAnnualValue(client *models.Client) (float64, error) {
	visits, err := VisitsPerYear(client.RotationWeeks)
	if err != nil {
		return 0, err
	}

	total := 0.0
	if client.BaseServiceName != "" {
		total = client.BaseServicePrice * visits
	}

	for _, addon := range client.AddOns {
		mult, err := AddOnMultiplier(addon.Frequency, visits)
		if err != nil {
			return 0, err
		}
		total += addon.Price * mult
	}

	for _, appt := range client.Appointments {
		if appt.Status == models.ApptEvent && appt.ServiceName != "" {
			total += appt.Price
		}
	}

	rounded := math.Round(total)
	if rounded < 0 {
		rounded = 0
	}
	return rounded, nil
}

// RefreshAnnualValue recomputes the cached projection on the client
// record. Every mutation of the base service, rotation or add-ons must go
// through this so the cache never goes stale.
func RefreshAnnualValue(client *models.Client) error {
	value, err := ProjectAnnualValue(client)
	if err != nil {
		return err
	}
	client.AnnualValue = value
	return nil
}

// Forecast is the roster-level projection breakdown. Confirmed and
// Pending partition AnnualProjected exactly.
type Forecast struct {
	AnnualProjected float64     `json:"annualProjected"`
	Confirmed       float64     `json:"confirmed"`
	Pending         float64     `json:"pending"`
	Skipped         []uuid.UUID `json:"skipped,omitempty"`
}

// AggregateForecast sums projected annual value across the roster. A
// client with malformed data is skipped and reported rather than failing
// the whole aggregation.
func AggregateForecast(clients []models.Client) Forecast {
	var f Forecast
	for i := range clients {
		value, err := ProjectAnnualValue(&clients[i])
		if err != nil {
			f.Skipped = append(f.Skipped, clients[i].ID)
			continue
		}
		f.AnnualProjected += value
		if clients[i].Status == models.ClientConfirmed {
			f.Confirmed += value
		} else {
			f.Pending += value
		}
	}
	return f
}

// RevenueStats are year-to-date actuals over the appointment history.
type RevenueStats struct {
	ActualYTD      float64     `json:"actualYTD"`
	MissedYTD      float64     `json:"missedYTD"`
	CompletedCount int         `json:"completedCount"`
	MissedCount    int         `json:"missedCount"`
	CollectionRate float64     `json:"collectionRate"`
	Skipped        []uuid.UUID `json:"skipped,omitempty"`
}

// ActualRevenueStats scans every appointment dated in the given calendar
// year. Completed visits count the collected amount (falling back to the
// listed price), missed ones count the full listed price since nothing
// was collected. With no activity the collection rate is 100.
func ActualRevenueStats(clients []models.Client, year int) RevenueStats {
	var stats RevenueStats
	for i := range clients {
		ok := true
		for _, appt := range clients[i].Appointments {
			if appt.Date.IsZero() {
				ok = false
				break
			}
		}
		if !ok {
			stats.Skipped = append(stats.Skipped, clients[i].ID)
			continue
		}
		for _, appt := range clients[i].Appointments {
			if appt.Date.Year() != year {
				continue
			}
			switch appt.Status {
			case models.ApptCompleted:
				amount := appt.Price
				if appt.PaymentAmount != nil {
					amount = *appt.PaymentAmount
				}
				stats.ActualYTD += amount
				stats.CompletedCount++
			case models.ApptNoShow, models.ApptCancelled, models.ApptLateCancel:
				stats.MissedYTD += appt.Price
				stats.MissedCount++
			}
		}
	}
	denom := stats.ActualYTD + stats.MissedYTD
	if denom == 0 {
		stats.CollectionRate = 100
	} else {
		stats.CollectionRate = math.Round(stats.ActualYTD / denom * 100)
	}
	return stats
}
