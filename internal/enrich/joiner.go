// Package enrich joins the normalized vaccination series with the election
// summary table and derives the recency snapshot. The join is a single map
// lookup keyed on the normalized state name, not a per-row table scan.
package enrich

import (
	"fmt"
	"sort"
	"strings"

	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/election"
	"github.com/statevax/statevax-go/internal/errors"
	"github.com/statevax/statevax-go/internal/vaccination"
)

// DisplayColor is the chart color derived from the majority party.
type DisplayColor string

const (
	ColorRed   DisplayColor = "red"
	ColorBlue  DisplayColor = "blue"
	ColorGreen DisplayColor = "green"
)

// ColorFor maps a majority party onto its display color: red for
// REPUBLICAN, blue for DEMOCRAT, green otherwise.
func ColorFor(party dataset.Party) DisplayColor {
	switch party {
	case dataset.PartyRepublican:
		return ColorRed
	case dataset.PartyDemocrat:
		return ColorBlue
	default:
		return ColorGreen
	}
}

// Record is a vaccination row enriched with its state's election summary.
type Record struct {
	dataset.VaccinationRecord

	Key                 string // normalized uppercase state key
	MajorityParty       dataset.Party
	DemocratVotePercent float64
	DisplayColor        DisplayColor
}

// MissingLocationError lists every vaccination location that resolved to no
// election summary. The full list is collected before failing so one run
// surfaces all mapping gaps.
type MissingLocationError struct {
	Locations []string
}

func (e *MissingLocationError) Error() string {
	return fmt.Sprintf("no election summary for %d location(s): %s",
		len(e.Locations), strings.Join(e.Locations, ", "))
}

// Join attaches each normalized vaccination row's election summary. The
// summary table holds at most one row per state, so a successful lookup is
// unambiguous by construction; a failed lookup is a data-quality error, not
// a dropped row.
func Join(summary *election.Table, records []dataset.VaccinationRecord) ([]Record, error) {
	enriched := make([]Record, 0, len(records))
	missing := make(map[string]struct{})

	for _, r := range records {
		key := vaccination.NormalizeKey(r.Location)
		s, ok := summary.Lookup(key)
		if !ok {
			missing[key] = struct{}{}
			continue
		}
		enriched = append(enriched, Record{
			VaccinationRecord:   r,
			Key:                 key,
			MajorityParty:       s.MajorityParty,
			DemocratVotePercent: s.DemocratVotePercent,
			DisplayColor:        ColorFor(s.MajorityParty),
		})
	}

	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return nil, errors.New(&MissingLocationError{Locations: keys}).
			Category(errors.CategoryJoin).
			Context("missing_count", len(keys)).
			Build()
	}
	return enriched, nil
}
