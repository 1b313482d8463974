package dataset

import (
	"strconv"
	"strings"
)

// ElectionRecord is one (state, party) row of the presidential results
// file. State names in the source are already uppercase full names.
type ElectionRecord struct {
	Year           int
	State          string
	CandidateVotes int64
	TotalVotes     int64
	Party          Party
}

// Required columns of the election results CSV.
var electionColumns = []string{"year", "state", "candidatevotes", "totalvotes", "party_simplified"}

// LoadElectionRecords reads the election results CSV. All years are
// retained; filtering to the analysis year happens in the summarizer.
func LoadElectionRecords(path string) ([]ElectionRecord, error) {
	var records []ElectionRecord

	err := forEachRow(path, electionColumns, func(line int, idx map[string]int, row []string) error {
		year, err := strconv.Atoi(field(row, idx, "year"))
		if err != nil {
			return malformed(path, line, "year", field(row, idx, "year"), err)
		}

		state := strings.ToUpper(field(row, idx, "state"))
		if state == "" {
			return malformed(path, line, "state", "", errEmptyValue)
		}

		candidateVotes, err := strconv.ParseInt(field(row, idx, "candidatevotes"), 10, 64)
		if err != nil {
			return malformed(path, line, "candidatevotes", field(row, idx, "candidatevotes"), err)
		}

		totalVotes, err := strconv.ParseInt(field(row, idx, "totalvotes"), 10, 64)
		if err != nil {
			return malformed(path, line, "totalvotes", field(row, idx, "totalvotes"), err)
		}

		records = append(records, ElectionRecord{
			Year:           year,
			State:          state,
			CandidateVotes: candidateVotes,
			TotalVotes:     totalVotes,
			Party:          ParseParty(field(row, idx, "party_simplified")),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
