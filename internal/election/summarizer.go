// Package election collapses raw per-(state, party) presidential results
// into one summary row per state: the majority party and each party's vote
// share.
package election

import (
	"fmt"
	"sort"
	"strings"

	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/errors"
)

// Summary is the single election row for a state. The State key is the
// uppercase full name, never an abbreviation.
type Summary struct {
	State                 string
	MajorityParty         dataset.Party
	DemocratVotePercent   float64
	RepublicanVotePercent float64
	OtherVotePercent      float64
	TotalVotes            int64
}

// Table holds one Summary per state, keyed by the uppercase state name.
type Table struct {
	byState map[string]Summary
	states  []string
}

// Lookup returns the summary for an uppercase state key.
func (t *Table) Lookup(state string) (Summary, bool) {
	s, ok := t.byState[state]
	return s, ok
}

// States returns the state keys in sorted order.
func (t *Table) States() []string {
	return t.states
}

// Len returns the number of states in the table.
func (t *Table) Len() int {
	return len(t.byState)
}

// AmbiguousMajorityError reports a state whose top parties received exactly
// equal candidate votes, with no tie-break policy allowing a pick.
type AmbiguousMajorityError struct {
	State   string
	Parties []dataset.Party
	Votes   int64
}

func (e *AmbiguousMajorityError) Error() string {
	names := make([]string, len(e.Parties))
	for i, p := range e.Parties {
		names[i] = string(p)
	}
	return fmt.Sprintf("ambiguous majority in %s: %s tied at %d votes",
		e.State, strings.Join(names, " and "), e.Votes)
}

// Summarize filters records to the given year and produces one Summary per
// state. The majority party is the party with the most candidate votes;
// exact ties are resolved by tieBreak: conf.TieBreakError aborts with an
// AmbiguousMajorityError, conf.TieBreakAlphabetical keeps the
// alphabetically first tying party.
func Summarize(records []dataset.ElectionRecord, year int, tieBreak string) (*Table, error) {
	type stateVotes struct {
		votes map[dataset.Party]int64
		total int64
	}

	perState := make(map[string]*stateVotes)
	for _, r := range records {
		if r.Year != year {
			continue
		}
		sv, ok := perState[r.State]
		if !ok {
			sv = &stateVotes{votes: make(map[dataset.Party]int64), total: r.TotalVotes}
			perState[r.State] = sv
		}
		sv.votes[r.Party] += r.CandidateVotes
	}

	if len(perState) == 0 {
		return nil, errors.Newf("no election rows for year %d", year).
			Category(errors.CategoryDataQuality).
			Context("year", year).
			Build()
	}

	table := &Table{byState: make(map[string]Summary, len(perState))}
	for state, sv := range perState {
		if sv.total <= 0 {
			return nil, errors.Newf("state %s has non-positive total votes %d", state, sv.total).
				Category(errors.CategoryDataQuality).
				Context("state", state).
				Build()
		}

		majority, err := majorityParty(state, sv.votes, tieBreak)
		if err != nil {
			return nil, err
		}

		percent := func(p dataset.Party) float64 {
			return float64(sv.votes[p]) / float64(sv.total) * 100
		}
		table.byState[state] = Summary{
			State:                 state,
			MajorityParty:         majority,
			DemocratVotePercent:   percent(dataset.PartyDemocrat),
			RepublicanVotePercent: percent(dataset.PartyRepublican),
			OtherVotePercent:      percent(dataset.PartyOther),
			TotalVotes:            sv.total,
		}
		table.states = append(table.states, state)
	}
	sort.Strings(table.states)

	return table, nil
}

// majorityParty picks the party with the maximum candidate votes for one
// state, applying the configured tie-break when top parties are exactly
// equal.
func majorityParty(state string, votes map[dataset.Party]int64, tieBreak string) (dataset.Party, error) {
	var max int64 = -1
	var top []dataset.Party
	for party, v := range votes {
		switch {
		case v > max:
			max = v
			top = []dataset.Party{party}
		case v == max:
			top = append(top, party)
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i] < top[j] })

	if len(top) == 1 {
		return top[0], nil
	}

	if tieBreak == conf.TieBreakAlphabetical {
		return top[0], nil
	}
	return "", errors.New(&AmbiguousMajorityError{State: state, Parties: top, Votes: max}).
		Category(errors.CategoryDataQuality).
		Context("state", state).
		Build()
}
