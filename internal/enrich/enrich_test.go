package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/election"
	"github.com/statevax/statevax-go/internal/errors"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func summaryTable(t *testing.T) *election.Table {
	t.Helper()
	records := []dataset.ElectionRecord{
		{Year: 2020, State: "CALIFORNIA", Party: dataset.PartyDemocrat, CandidateVotes: 11110250, TotalVotes: 17500881},
		{Year: 2020, State: "CALIFORNIA", Party: dataset.PartyRepublican, CandidateVotes: 6006429, TotalVotes: 17500881},
		{Year: 2020, State: "NEW YORK", Party: dataset.PartyDemocrat, CandidateVotes: 5244886, TotalVotes: 8594826},
		{Year: 2020, State: "NEW YORK", Party: dataset.PartyRepublican, CandidateVotes: 3251997, TotalVotes: 8594826},
		{Year: 2020, State: "WYOMING", Party: dataset.PartyDemocrat, CandidateVotes: 73491, TotalVotes: 278503},
		{Year: 2020, State: "WYOMING", Party: dataset.PartyRepublican, CandidateVotes: 193559, TotalVotes: 278503},
	}
	table, err := election.Summarize(records, 2020, conf.TieBreakError)
	require.NoError(t, err)
	return table
}

func TestColorFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ColorBlue, ColorFor(dataset.PartyDemocrat))
	assert.Equal(t, ColorRed, ColorFor(dataset.PartyRepublican))
	assert.Equal(t, ColorGreen, ColorFor(dataset.PartyOther))
	assert.Equal(t, ColorGreen, ColorFor(dataset.Party("INDEPENDENT")))
}

func TestJoinAttachesSummary(t *testing.T) {
	t.Parallel()

	records := []dataset.VaccinationRecord{
		{Location: "California", Date: day("2021-05-15")},
		{Location: "New York State", Date: day("2021-05-15")},
		{Location: "Wyoming", Date: day("2021-05-15")},
	}

	enriched, err := Join(summaryTable(t), records)
	require.NoError(t, err)
	require.Len(t, enriched, 3)

	byKey := make(map[string]Record)
	for _, r := range enriched {
		byKey[r.Key] = r
	}

	ca := byKey["CALIFORNIA"]
	assert.Equal(t, dataset.PartyDemocrat, ca.MajorityParty)
	assert.Equal(t, ColorBlue, ca.DisplayColor)
	assert.InDelta(t, 63.48, ca.DemocratVotePercent, 0.01)

	// "New York State" resolves to the NEW YORK summary, not a key of its own.
	ny, ok := byKey["NEW YORK"]
	require.True(t, ok)
	assert.Equal(t, "New York State", ny.Location)

	wy := byKey["WYOMING"]
	assert.Equal(t, ColorRed, wy.DisplayColor)
}

func TestJoinEveryLocationResolvesExactlyOnce(t *testing.T) {
	t.Parallel()

	records := []dataset.VaccinationRecord{
		{Location: "California", Date: day("2021-05-14")},
		{Location: "California", Date: day("2021-05-15")},
		{Location: "Wyoming", Date: day("2021-05-15")},
	}

	enriched, err := Join(summaryTable(t), records)
	require.NoError(t, err)
	assert.Len(t, enriched, len(records), "join must neither drop nor duplicate rows")
}

func TestJoinReportsAllMissingLocations(t *testing.T) {
	t.Parallel()

	records := []dataset.VaccinationRecord{
		{Location: "California", Date: day("2021-05-15")},
		{Location: "Guam", Date: day("2021-05-15")},
		{Location: "Puerto Rico", Date: day("2021-05-15")},
		{Location: "Guam", Date: day("2021-05-16")},
	}

	_, err := Join(summaryTable(t), records)
	require.Error(t, err)

	var missing *MissingLocationError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"GUAM", "PUERTO RICO"}, missing.Locations)
}

func TestRecentSnapshotKeepsMaxDateRows(t *testing.T) {
	t.Parallel()

	records := []Record{
		{VaccinationRecord: dataset.VaccinationRecord{Location: "California", Date: day("2021-05-13")}, Key: "CALIFORNIA"},
		{VaccinationRecord: dataset.VaccinationRecord{Location: "California", Date: day("2021-05-15")}, Key: "CALIFORNIA"},
		{VaccinationRecord: dataset.VaccinationRecord{Location: "California", Date: day("2021-05-14")}, Key: "CALIFORNIA"},
		{VaccinationRecord: dataset.VaccinationRecord{Location: "Wyoming", Date: day("2021-05-14")}, Key: "WYOMING"},
	}

	snapshot := RecentSnapshot(records)
	require.Len(t, snapshot, 2)

	for _, r := range snapshot {
		switch r.Key {
		case "CALIFORNIA":
			assert.Equal(t, day("2021-05-15"), r.Date)
		case "WYOMING":
			assert.Equal(t, day("2021-05-14"), r.Date)
		default:
			t.Fatalf("unexpected key %q in snapshot", r.Key)
		}
	}
}

func TestRecentSnapshotRetainsDateTies(t *testing.T) {
	t.Parallel()

	records := []Record{
		{VaccinationRecord: dataset.VaccinationRecord{Location: "Vermont", Date: day("2021-05-15")}, Key: "VERMONT"},
		{VaccinationRecord: dataset.VaccinationRecord{Location: "Vermont", Date: day("2021-05-15")}, Key: "VERMONT"},
		{VaccinationRecord: dataset.VaccinationRecord{Location: "Vermont", Date: day("2021-05-14")}, Key: "VERMONT"},
	}

	snapshot := RecentSnapshot(records)
	assert.Len(t, snapshot, 2, "all rows matching the max date stay, not exactly one")
}

func TestRecentSnapshotEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RecentSnapshot(nil))
}
