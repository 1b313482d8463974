// Package stats derives the per-location summary values and the single
// descriptive trend fit consumed by the scatter overlay.
package stats

import (
	"sort"

	"github.com/statevax/statevax-go/internal/enrich"
)

// LocationMaximum carries per-location maxima taken across the full time
// series for every numeric column. This is a column-wise max aggregation,
// not a date-aligned snapshot; the values may come from different dates.
type LocationMaximum struct {
	Key                             string
	Location                        string
	MajorityParty                   string
	DisplayColor                    enrich.DisplayColor
	DemocratVotePercent             float64
	PeopleFullyVaccinated           *float64
	PeopleFullyVaccinatedPerHundred *float64
	DailyVaccinationsPerMillion     *float64
}

// LocationMaxima groups enriched records by location and takes the maximum
// of each numeric column, skipping null cells. Output is sorted by key.
func LocationMaxima(records []enrich.Record) []LocationMaximum {
	byKey := make(map[string]*LocationMaximum)
	for _, r := range records {
		m, ok := byKey[r.Key]
		if !ok {
			m = &LocationMaximum{
				Key:                 r.Key,
				Location:            r.Location,
				MajorityParty:       string(r.MajorityParty),
				DisplayColor:        r.DisplayColor,
				DemocratVotePercent: r.DemocratVotePercent,
			}
			byKey[r.Key] = m
		}
		maxInto(&m.PeopleFullyVaccinated, r.PeopleFullyVaccinated)
		maxInto(&m.PeopleFullyVaccinatedPerHundred, r.PeopleFullyVaccinatedPerHundred)
		maxInto(&m.DailyVaccinationsPerMillion, r.DailyVaccinationsPerMillion)
	}

	maxima := make([]LocationMaximum, 0, len(byKey))
	for _, m := range byKey {
		maxima = append(maxima, *m)
	}
	sort.Slice(maxima, func(i, j int) bool { return maxima[i].Key < maxima[j].Key })
	return maxima
}

// maxInto folds a nullable observation into a nullable running maximum.
func maxInto(current **float64, observed *float64) {
	if observed == nil {
		return
	}
	if *current == nil || *observed > **current {
		v := *observed
		*current = &v
	}
}
