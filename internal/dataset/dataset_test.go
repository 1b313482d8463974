package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Party
	}{
		{"DEMOCRAT", PartyDemocrat},
		{"REPUBLICAN", PartyRepublican},
		{"LIBERTARIAN", PartyOther},
		{"OTHER", PartyOther},
		{"", PartyOther},
		{"democrat", PartyDemocrat},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseParty(tt.in), "ParseParty(%q)", tt.in)
	}
}

func TestLoadElectionRecords(t *testing.T) {
	t.Parallel()

	records, err := LoadElectionRecords(filepath.Join("testdata", "elections.csv"))
	require.NoError(t, err)
	require.Len(t, records, 14)

	// First 2020 California row
	var ca *ElectionRecord
	for i := range records {
		if records[i].Year == 2020 && records[i].State == "CALIFORNIA" && records[i].Party == PartyDemocrat {
			ca = &records[i]
			break
		}
	}
	require.NotNil(t, ca)
	assert.Equal(t, int64(11110250), ca.CandidateVotes)
	assert.Equal(t, int64(17500881), ca.TotalVotes)
}

func TestLoadElectionRecordsMalformedVotes(t *testing.T) {
	t.Parallel()

	_, err := LoadElectionRecords(filepath.Join("testdata", "elections_badvotes.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.Contains(t, err.Error(), "candidatevotes")
}

func TestLoadElectionRecordsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadElectionRecords(filepath.Join("testdata", "nope.csv"))
	require.Error(t, err)
}

func TestLoadVaccinationRecords(t *testing.T) {
	t.Parallel()

	records, err := LoadVaccinationRecords(filepath.Join("testdata", "vaccinations.csv"))
	require.NoError(t, err)
	require.Len(t, records, 12)

	var wyo *VaccinationRecord
	for i := range records {
		if records[i].Location == "Wyoming" && records[i].Date.Format("2006-01-02") == "2021-05-14" {
			wyo = &records[i]
			break
		}
	}
	require.NotNil(t, wyo)
	require.NotNil(t, wyo.PeopleFullyVaccinated)
	assert.InDelta(t, 180139, *wyo.PeopleFullyVaccinated, 0.001)
	require.NotNil(t, wyo.PeopleFullyVaccinatedPerHundred)
	assert.InDelta(t, 31.13, *wyo.PeopleFullyVaccinatedPerHundred, 0.001)
	assert.Nil(t, wyo.DailyVaccinationsPerMillion, "empty cell should load as nil")
}

func TestLoadVaccinationRecordsMalformedDate(t *testing.T) {
	t.Parallel()

	_, err := LoadVaccinationRecords(filepath.Join("testdata", "vaccinations_baddate.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.Contains(t, err.Error(), "date")
}
