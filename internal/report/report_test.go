package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/election"
	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/stats"
	"github.com/xuri/excelize/v2"
)

func ptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func fixtureTable(t *testing.T) *election.Table {
	t.Helper()
	records := []dataset.ElectionRecord{
		{Year: 2020, State: "CALIFORNIA", Party: dataset.PartyDemocrat, CandidateVotes: 11110250, TotalVotes: 17500881},
		{Year: 2020, State: "CALIFORNIA", Party: dataset.PartyRepublican, CandidateVotes: 6006429, TotalVotes: 17500881},
		{Year: 2020, State: "WYOMING", Party: dataset.PartyDemocrat, CandidateVotes: 73491, TotalVotes: 278503},
		{Year: 2020, State: "WYOMING", Party: dataset.PartyRepublican, CandidateVotes: 193559, TotalVotes: 278503},
	}
	table, err := election.Summarize(records, 2020, conf.TieBreakError)
	require.NoError(t, err)
	return table
}

func fixtureSnapshot() []enrich.Record {
	return []enrich.Record{
		{
			VaccinationRecord: dataset.VaccinationRecord{
				Location:                        "California",
				Date:                            day("2021-05-15"),
				PeopleFullyVaccinated:           ptr(14816682),
				PeopleFullyVaccinatedPerHundred: ptr(37.5),
				DailyVaccinationsPerMillion:     ptr(6271),
			},
			Key:                 "CALIFORNIA",
			MajorityParty:       dataset.PartyDemocrat,
			DemocratVotePercent: 63.48,
			DisplayColor:        enrich.ColorBlue,
		},
		{
			VaccinationRecord: dataset.VaccinationRecord{
				Location: "Wyoming",
				Date:     day("2021-05-15"),
			},
			Key:                 "WYOMING",
			MajorityParty:       dataset.PartyRepublican,
			DemocratVotePercent: 26.39,
			DisplayColor:        enrich.ColorRed,
		},
	}
}

func fixtureMaxima() []stats.LocationMaximum {
	return []stats.LocationMaximum{
		{Key: "CALIFORNIA", MajorityParty: "DEMOCRAT", DemocratVotePercent: 63.48,
			PeopleFullyVaccinated: ptr(14816682), PeopleFullyVaccinatedPerHundred: ptr(37.5),
			DailyVaccinationsPerMillion: ptr(6387)},
		{Key: "WYOMING", MajorityParty: "REPUBLICAN", DemocratVotePercent: 26.39,
			PeopleFullyVaccinatedPerHundred: ptr(31.2)},
	}
}

func TestWriteRecordsCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileSnapshotCSV)
	require.NoError(t, WriteRecordsCSV(path, fixtureSnapshot()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, enrichedHeader, rows[0])
	assert.Equal(t, "California", rows[1][0])
	assert.Equal(t, "CALIFORNIA", rows[1][1])
	assert.Equal(t, "2021-05-15", rows[1][2])
	assert.Equal(t, "DEMOCRAT", rows[1][3])
	assert.Equal(t, "blue", rows[1][4])

	// Null numeric cells stay empty, matching the source data shape.
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "", rows[2][7])
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileMarkdown)
	line := stats.TrendLine{Slope: 0.17, Intercept: 26.9, N: 2}
	require.NoError(t, WriteMarkdown(path, "Test Run", fixtureTable(t), fixtureSnapshot(), fixtureMaxima(), line))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Test Run")
	assert.Contains(t, content, "## Election Summary")
	assert.Contains(t, content, "## Most Recent Observations")
	assert.Contains(t, content, "## Vote Share vs Vaccination Trend")
	assert.Contains(t, content, "## Column Statistics")
	// Large counts are written with thousand separators.
	assert.Contains(t, content, "14,816,682")
	assert.Contains(t, content, "0.1700")
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	line := stats.TrendLine{Slope: 0.17, Intercept: 26.9, N: 2}
	require.NoError(t, WriteWorkbook(path, fixtureTable(t), fixtureSnapshot(), fixtureMaxima(), line))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, sheetSummary)
	assert.Contains(t, sheets, sheetSnapshot)
	assert.Contains(t, sheets, sheetMaxima)
	assert.Contains(t, sheets, sheetTrend)

	state, err := f.GetCellValue(sheetSummary, "A2")
	require.NoError(t, err)
	assert.Equal(t, "CALIFORNIA", state)

	party, err := f.GetCellValue(sheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "DEMOCRAT", party)
}
