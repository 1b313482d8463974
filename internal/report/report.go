// Package report writes the analysis result artifacts: CSV exports, an xlsx
// workbook, and a markdown summary report.
package report

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-gota/gota/dataframe"

	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/election"
	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/errors"
	"github.com/statevax/statevax-go/internal/stats"
)

// FileMarkdown is the default markdown report file name.
const FileMarkdown = "report.md"

// maximumRow is the flat shape of one per-state maxima row for the
// dataframe summary. Null cells become NaN so describe() can skip them.
type maximumRow struct {
	DemocratVotePercent float64 `dataframe:"democrat_vote_percent"`
	FullyVaccinated     float64 `dataframe:"people_fully_vaccinated"`
	PerHundred          float64 `dataframe:"people_fully_vaccinated_per_hundred"`
	DailyPerMillion     float64 `dataframe:"daily_vaccinations_per_million"`
}

func flatten(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// WriteMarkdown writes the markdown report to path.
func WriteMarkdown(path, runName string, summary *election.Table, snapshot []enrich.Record, maxima []stats.LocationMaximum, line stats.TrendLine) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", runName)
	fmt.Fprintf(&b, "Generated %s.\n\n", time.Now().Format("2006-01-02 15:04"))

	writeElectionSection(&b, summary)
	writeSnapshotSection(&b, snapshot)
	writeRankingSection(&b, maxima)
	writeTrendSection(&b, line)
	writeDescribeSection(&b, maxima)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.New(err).
			Category(errors.CategoryReportOutput).
			Context("path", path).
			Build()
	}
	return nil
}

func writeElectionSection(b *strings.Builder, summary *election.Table) {
	counts := make(map[dataset.Party]int)
	var totalVotes int64
	for _, state := range summary.States() {
		s, _ := summary.Lookup(state)
		counts[s.MajorityParty]++
		totalVotes += s.TotalVotes
	}

	b.WriteString("## Election Summary\n\n")
	fmt.Fprintf(b, "%d states, %s total votes cast.\n\n",
		summary.Len(), humanize.Comma(totalVotes))
	fmt.Fprintf(b, "| Majority Party | States |\n|---|---|\n")
	for _, party := range []dataset.Party{dataset.PartyDemocrat, dataset.PartyRepublican, dataset.PartyOther} {
		if counts[party] == 0 {
			continue
		}
		fmt.Fprintf(b, "| %s | %d |\n", party, counts[party])
	}
	b.WriteString("\n")
}

func writeSnapshotSection(b *strings.Builder, snapshot []enrich.Record) {
	b.WriteString("## Most Recent Observations\n\n")
	fmt.Fprintf(b, "| State | Date | Majority | Fully Vaccinated | Per 100 |\n|---|---|---|---|---|\n")
	for _, r := range snapshot {
		fully := ""
		if r.PeopleFullyVaccinated != nil {
			fully = humanize.Comma(int64(*r.PeopleFullyVaccinated))
		}
		perHundred := ""
		if r.PeopleFullyVaccinatedPerHundred != nil {
			perHundred = fmt.Sprintf("%.2f", *r.PeopleFullyVaccinatedPerHundred)
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n",
			r.Key, r.Date.Format(time.DateOnly), r.MajorityParty, fully, perHundred)
	}
	b.WriteString("\n")
}

// writeRankingSection lists the leading and trailing states by the
// per-hundred vaccination maximum.
func writeRankingSection(b *strings.Builder, maxima []stats.LocationMaximum) {
	ranked := make([]stats.LocationMaximum, 0, len(maxima))
	for _, m := range maxima {
		if m.PeopleFullyVaccinatedPerHundred != nil {
			ranked = append(ranked, m)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return *ranked[i].PeopleFullyVaccinatedPerHundred > *ranked[j].PeopleFullyVaccinatedPerHundred
	})

	const n = 5
	b.WriteString("## Vaccination Leaders and Laggards\n\n")
	b.WriteString("By peak people fully vaccinated per 100 people.\n\n")
	writeRankedList(b, "Top", ranked[:min(n, len(ranked))])
	if len(ranked) > n {
		tail := ranked[len(ranked)-min(n, len(ranked)-n):]
		writeRankedList(b, "Bottom", tail)
	}
}

func writeRankedList(b *strings.Builder, label string, entries []stats.LocationMaximum) {
	fmt.Fprintf(b, "**%s %d:**\n\n", label, len(entries))
	for i, m := range entries {
		fmt.Fprintf(b, "%d. %s (%s): %.2f per 100\n",
			i+1, m.Key, m.MajorityParty, *m.PeopleFullyVaccinatedPerHundred)
	}
	b.WriteString("\n")
}

func writeTrendSection(b *strings.Builder, line stats.TrendLine) {
	b.WriteString("## Vote Share vs Vaccination Trend\n\n")
	fmt.Fprintf(b, "OLS fit over %d states: `per_hundred = %.4f * democrat_vote_percent + %.4f`.\n\n",
		line.N, line.Slope, line.Intercept)
	fmt.Fprintf(b, "A state with a 50%% democrat vote share is estimated at %.2f fully vaccinated per 100 people.\n\n",
		line.At(50))
}

// writeDescribeSection appends a numeric summary table of the per-state
// maxima columns.
func writeDescribeSection(b *strings.Builder, maxima []stats.LocationMaximum) {
	rows := make([]maximumRow, 0, len(maxima))
	for _, m := range maxima {
		rows = append(rows, maximumRow{
			DemocratVotePercent: m.DemocratVotePercent,
			FullyVaccinated:     flatten(m.PeopleFullyVaccinated),
			PerHundred:          flatten(m.PeopleFullyVaccinatedPerHundred),
			DailyPerMillion:     flatten(m.DailyVaccinationsPerMillion),
		})
	}
	df := dataframe.LoadStructs(rows)

	b.WriteString("## Column Statistics\n\n")
	b.WriteString("```\n")
	b.WriteString(df.Describe().String())
	b.WriteString("```\n")
}
