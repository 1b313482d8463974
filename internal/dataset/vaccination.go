package dataset

import (
	"fmt"
	"strconv"
	"time"
)

var errEmptyValue = fmt.Errorf("empty value")

// VaccinationRecord is one (location, date) row of the vaccination time
// series. Numeric fields are nil when the source cell is empty, the
// series has reporting gaps.
type VaccinationRecord struct {
	Location                        string
	Date                            time.Time
	PeopleFullyVaccinated           *float64
	PeopleFullyVaccinatedPerHundred *float64
	DailyVaccinationsPerMillion     *float64
}

// Required columns of the vaccination CSV.
var vaccinationColumns = []string{
	"location",
	"date",
	"people_fully_vaccinated",
	"people_fully_vaccinated_per_hundred",
	"daily_vaccinations_per_million",
}

const dateLayout = "2006-01-02"

// LoadVaccinationRecords reads the vaccination time series CSV. All
// locations are retained, including federal entities; restricting to
// states happens in the normalizer.
func LoadVaccinationRecords(path string) ([]VaccinationRecord, error) {
	var records []VaccinationRecord

	err := forEachRow(path, vaccinationColumns, func(line int, idx map[string]int, row []string) error {
		location := field(row, idx, "location")
		if location == "" {
			return malformed(path, line, "location", "", errEmptyValue)
		}

		date, err := time.Parse(dateLayout, field(row, idx, "date"))
		if err != nil {
			return malformed(path, line, "date", field(row, idx, "date"), err)
		}

		record := VaccinationRecord{Location: location, Date: date}

		numeric := []struct {
			column string
			target **float64
		}{
			{"people_fully_vaccinated", &record.PeopleFullyVaccinated},
			{"people_fully_vaccinated_per_hundred", &record.PeopleFullyVaccinatedPerHundred},
			{"daily_vaccinations_per_million", &record.DailyVaccinationsPerMillion},
		}
		for _, n := range numeric {
			cell := field(row, idx, n.column)
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return malformed(path, line, n.column, cell, err)
			}
			*n.target = &value
		}

		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
