package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/statevax/statevax-go/internal/election"
	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/errors"
	"github.com/statevax/statevax-go/internal/stats"
)

// Workbook sheet names.
const (
	sheetSummary  = "Election Summary"
	sheetSnapshot = "Recent Snapshot"
	sheetMaxima   = "Location Maxima"
	sheetTrend    = "Trend"
)

func excelError(err error, path string) error {
	return errors.New(err).
		Category(errors.CategoryReportOutput).
		Context("path", path).
		Build()
}

// excelCell converts a nullable numeric value; null maps onto an empty cell.
func excelCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// WriteWorkbook writes the full analysis result set as one xlsx workbook.
func WriteWorkbook(path string, summary *election.Table, snapshot []enrich.Record, maxima []stats.LocationMaximum, line stats.TrendLine) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, summary); err != nil {
		return excelError(err, path)
	}
	if err := writeSnapshotSheet(f, snapshot); err != nil {
		return excelError(err, path)
	}
	if err := writeMaximaSheet(f, maxima); err != nil {
		return excelError(err, path)
	}
	if err := writeTrendSheet(f, line); err != nil {
		return excelError(err, path)
	}

	// The default sheet was renamed to the summary sheet; make it active.
	index, err := f.GetSheetIndex(sheetSummary)
	if err != nil {
		return excelError(err, path)
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		return excelError(err, path)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	addr, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, addr, &values)
}

func writeSummarySheet(f *excelize.File, summary *election.Table) error {
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	header := []any{"State", "Majority Party", "Democrat %", "Republican %", "Other %", "Total Votes"}
	if err := writeRow(f, sheetSummary, 1, header); err != nil {
		return err
	}
	for i, state := range summary.States() {
		s, _ := summary.Lookup(state)
		row := []any{s.State, string(s.MajorityParty),
			s.DemocratVotePercent, s.RepublicanVotePercent, s.OtherVotePercent,
			s.TotalVotes}
		if err := writeRow(f, sheetSummary, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshotSheet(f *excelize.File, snapshot []enrich.Record) error {
	if _, err := f.NewSheet(sheetSnapshot); err != nil {
		return err
	}
	header := []any{"State", "Date", "Majority Party", "Fully Vaccinated", "Per Hundred", "Daily Per Million"}
	if err := writeRow(f, sheetSnapshot, 1, header); err != nil {
		return err
	}
	for i, r := range snapshot {
		row := []any{r.Key, r.Date.Format(time.DateOnly), string(r.MajorityParty),
			excelCell(r.PeopleFullyVaccinated),
			excelCell(r.PeopleFullyVaccinatedPerHundred),
			excelCell(r.DailyVaccinationsPerMillion)}
		if err := writeRow(f, sheetSnapshot, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeMaximaSheet(f *excelize.File, maxima []stats.LocationMaximum) error {
	if _, err := f.NewSheet(sheetMaxima); err != nil {
		return err
	}
	header := []any{"State", "Majority Party", "Democrat %", "Max Fully Vaccinated", "Max Per Hundred", "Max Daily Per Million"}
	if err := writeRow(f, sheetMaxima, 1, header); err != nil {
		return err
	}
	for i, m := range maxima {
		row := []any{m.Key, m.MajorityParty, m.DemocratVotePercent,
			excelCell(m.PeopleFullyVaccinated),
			excelCell(m.PeopleFullyVaccinatedPerHundred),
			excelCell(m.DailyVaccinationsPerMillion)}
		if err := writeRow(f, sheetMaxima, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeTrendSheet(f *excelize.File, line stats.TrendLine) error {
	if _, err := f.NewSheet(sheetTrend); err != nil {
		return err
	}
	rows := [][]any{
		{"Fit", "people_fully_vaccinated_per_hundred ~ democrat_vote_percent"},
		{"Slope", line.Slope},
		{"Intercept", line.Intercept},
		{"Points", line.N},
		{"Equation", fmt.Sprintf("y = %.4f*x + %.4f", line.Slope, line.Intercept)},
	}
	for i, row := range rows {
		if err := writeRow(f, sheetTrend, i+1, row); err != nil {
			return err
		}
	}
	return nil
}
