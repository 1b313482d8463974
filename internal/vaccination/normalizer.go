// Package vaccination restricts the raw vaccination time series to U.S.
// states and provides the normalized location keys the join is keyed on.
package vaccination

import (
	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/errors"
)

// Normalize keeps only rows whose location is one of the 50 states or a
// known alias, dropping federal and territorial entities. Row order is
// preserved; no chronological ordering is required downstream, only
// max-by-date grouping. It errors when nothing survives the filter, an
// empty result can only mean the wrong input file.
func Normalize(records []dataset.VaccinationRecord) ([]dataset.VaccinationRecord, error) {
	states := make([]dataset.VaccinationRecord, 0, len(records))
	for _, r := range records {
		if IsState(r.Location) {
			states = append(states, r)
		}
	}

	if len(states) == 0 {
		return nil, errors.Newf("no state-level rows in vaccination data (%d rows read)", len(records)).
			Category(errors.CategoryDataQuality).
			Build()
	}
	return states, nil
}
