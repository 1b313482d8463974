package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/errors"
)

// PrintSnapshot writes the recency snapshot to w in the configured console
// format, "table" or "csv".
func PrintSnapshot(w io.Writer, format string, snapshot []enrich.Record) error {
	switch format {
	case "csv":
		return printSnapshotCSV(w, snapshot)
	case "table":
		return printSnapshotTable(w, snapshot)
	default:
		return errors.Newf("unknown output format %q", format).
			Category(errors.CategoryConfiguration).
			Build()
	}
}

func printSnapshotTable(w io.Writer, snapshot []enrich.Record) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tDATE\tMAJORITY\tFULLY VACCINATED\tPER 100")
	for _, r := range snapshot {
		fully := "-"
		if r.PeopleFullyVaccinated != nil {
			fully = humanize.Comma(int64(*r.PeopleFullyVaccinated))
		}
		perHundred := "-"
		if r.PeopleFullyVaccinatedPerHundred != nil {
			perHundred = fmt.Sprintf("%.2f", *r.PeopleFullyVaccinatedPerHundred)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Key, r.Date.Format(time.DateOnly), r.MajorityParty, fully, perHundred)
	}
	return tw.Flush()
}

func printSnapshotCSV(w io.Writer, snapshot []enrich.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(enrichedHeader); err != nil {
		return err
	}
	for _, r := range snapshot {
		row := []string{
			r.Location, r.Key, r.Date.Format(time.DateOnly),
			string(r.MajorityParty), string(r.DisplayColor),
			fmt.Sprintf("%.4f", r.DemocratVotePercent),
			cell(r.PeopleFullyVaccinated),
			cell(r.PeopleFullyVaccinatedPerHundred),
			cell(r.DailyVaccinationsPerMillion),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
