package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/errors"
)

// Output CSV file names, relative to the output directory.
const (
	FileEnrichedCSV = "enriched.csv"
	FileSnapshotCSV = "recent.csv"
)

var enrichedHeader = []string{
	"location", "state_key", "date", "majority_party", "display_color",
	"democrat_vote_percent",
	"people_fully_vaccinated", "people_fully_vaccinated_per_hundred",
	"daily_vaccinations_per_million",
}

// cell formats a nullable numeric column; null stays an empty cell, as in
// the source data.
func cell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// WriteRecordsCSV writes enriched vaccination rows to a CSV file at path.
func WriteRecordsCSV(path string, records []enrich.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New(err).
			Category(errors.CategoryReportOutput).
			Context("path", path).
			Build()
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(enrichedHeader); err != nil {
		return errors.New(err).Category(errors.CategoryReportOutput).Context("path", path).Build()
	}
	for _, r := range records {
		row := []string{
			r.Location,
			r.Key,
			r.Date.Format(time.DateOnly),
			string(r.MajorityParty),
			string(r.DisplayColor),
			strconv.FormatFloat(r.DemocratVotePercent, 'f', 4, 64),
			cell(r.PeopleFullyVaccinated),
			cell(r.PeopleFullyVaccinatedPerHundred),
			cell(r.DailyVaccinationsPerMillion),
		}
		if err := w.Write(row); err != nil {
			return errors.New(err).Category(errors.CategoryReportOutput).Context("path", path).Build()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.New(err).Category(errors.CategoryReportOutput).Context("path", path).Build()
	}
	return nil
}
