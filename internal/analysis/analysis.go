// Package analysis runs the full pipeline: load both CSVs, summarize the
// election results, normalize the vaccination series, join, reduce to the
// recency snapshot, aggregate per-state maxima, and fit the trend line.
package analysis

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/statevax/statevax-go/internal/charts"
	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/dataset"
	"github.com/statevax/statevax-go/internal/election"
	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/errors"
	"github.com/statevax/statevax-go/internal/logging"
	"github.com/statevax/statevax-go/internal/report"
	"github.com/statevax/statevax-go/internal/stats"
	"github.com/statevax/statevax-go/internal/vaccination"
)

// Result bundles every stage output of one pipeline run.
type Result struct {
	Summary  *election.Table
	Records  []enrich.Record // full enriched time series
	Snapshot []enrich.Record // rows at each state's most recent date
	Maxima   []stats.LocationMaximum
	Trend    stats.TrendLine
}

// Run executes the pipeline over the configured input files.
func Run(settings *conf.Settings) (*Result, error) {
	log := logging.ForService("analysis")

	electionRecords, err := dataset.LoadElectionRecords(settings.Input.Election)
	if err != nil {
		return nil, err
	}
	log.Info("election results loaded",
		"path", settings.Input.Election, "rows", len(electionRecords))

	vaccinationRecords, err := dataset.LoadVaccinationRecords(settings.Input.Vaccination)
	if err != nil {
		return nil, err
	}
	log.Info("vaccination series loaded",
		"path", settings.Input.Vaccination, "rows", len(vaccinationRecords))

	summary, err := election.Summarize(electionRecords, settings.Analysis.Year, settings.Analysis.TieBreak)
	if err != nil {
		return nil, err
	}
	log.Info("election summary built", "year", settings.Analysis.Year, "states", summary.Len())

	states, err := vaccination.Normalize(vaccinationRecords)
	if err != nil {
		return nil, err
	}
	log.Debug("vaccination rows filtered to states",
		"kept", len(states), "dropped", len(vaccinationRecords)-len(states))

	enriched, err := enrich.Join(summary, states)
	if err != nil {
		return nil, err
	}

	snapshot := enrich.RecentSnapshot(enriched)
	maxima := stats.LocationMaxima(enriched)

	trend, err := stats.VaccinationTrend(maxima)
	if err != nil {
		return nil, err
	}
	log.Info("trend fitted", "states", trend.N, "slope", trend.Slope, "intercept", trend.Intercept)

	return &Result{
		Summary:  summary,
		Records:  enriched,
		Snapshot: snapshot,
		Maxima:   maxima,
		Trend:    trend,
	}, nil
}

// WriteOutputs writes the configured artifact set for a completed run:
// CSV exports always, workbook, markdown report and charts when enabled.
func WriteOutputs(settings *conf.Settings, result *Result) error {
	log := logging.ForService("analysis")

	if err := os.MkdirAll(settings.Output.Path, 0o755); err != nil {
		return errors.New(err).
			Category(errors.CategoryFileIO).
			Context("path", settings.Output.Path).
			Build()
	}

	if err := report.WriteRecordsCSV(filepath.Join(settings.Output.Path, report.FileEnrichedCSV), result.Records); err != nil {
		return err
	}
	if err := report.WriteRecordsCSV(filepath.Join(settings.Output.Path, report.FileSnapshotCSV), result.Snapshot); err != nil {
		return err
	}
	log.Info("CSV exports written", "path", settings.Output.Path)

	if settings.Output.Excel.Enabled {
		path := filepath.Join(settings.Output.Path, settings.Output.Excel.Filename)
		if err := report.WriteWorkbook(path, result.Summary, result.Snapshot, result.Maxima, result.Trend); err != nil {
			return err
		}
		log.Info("workbook written", "path", path)
	}

	if settings.Output.Report.Enabled {
		path := filepath.Join(settings.Output.Path, settings.Output.Report.Filename)
		if err := report.WriteMarkdown(path, settings.Main.Name, result.Summary, result.Snapshot, result.Maxima, result.Trend); err != nil {
			return err
		}
		log.Info("report written", "path", path)
	}

	if settings.Output.Charts.Enabled {
		renderer := charts.New(settings)
		if err := renderer.RenderAll(result.Records, result.Snapshot, result.Maxima, result.Trend, settings.Analysis.Overlay); err != nil {
			return err
		}
	}

	return nil
}

// Finding is one problem discovered by Validate.
type Finding struct {
	Stage  string
	Detail string
}

// Validate dry-runs the pipeline stages and collects every problem it can
// reach instead of stopping at the first error. Stages whose inputs failed
// are skipped.
func Validate(settings *conf.Settings) []Finding {
	var findings []Finding
	fail := func(stage string, err error) {
		findings = append(findings, Finding{Stage: stage, Detail: err.Error()})
	}

	if err := conf.ValidateSettings(settings); err != nil {
		fail("config", err)
	}

	electionRecords, err := dataset.LoadElectionRecords(settings.Input.Election)
	if err != nil {
		fail("election input", err)
	}

	vaccinationRecords, err := dataset.LoadVaccinationRecords(settings.Input.Vaccination)
	if err != nil {
		fail("vaccination input", err)
	}

	var summary *election.Table
	if electionRecords != nil {
		summary, err = election.Summarize(electionRecords, settings.Analysis.Year, settings.Analysis.TieBreak)
		if err != nil {
			fail("election summary", err)
		}
	}

	var states []dataset.VaccinationRecord
	if vaccinationRecords != nil {
		states, err = vaccination.Normalize(vaccinationRecords)
		if err != nil {
			fail("vaccination filter", err)
		}
	}

	if summary != nil && states != nil {
		if _, err := enrich.Join(summary, states); err != nil {
			fail("join", err)
		}
	}

	return findings
}

// LogFindings reports validation findings through the given logger.
func LogFindings(log *slog.Logger, findings []Finding) {
	for _, f := range findings {
		log.Warn("validation finding", "stage", f.Stage, "detail", f.Detail)
	}
}
