// Package charts renders the presentation artifacts of the analysis as PNG
// files: descending bar charts of vaccination levels, tiled per-state
// time-series panels, an overlay comparison of selected states, and the
// scatter plot with the fitted trend line.
package charts

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/enrich"
	"github.com/statevax/statevax-go/internal/errors"
	"github.com/statevax/statevax-go/internal/logging"
	"github.com/statevax/statevax-go/internal/stats"
	"github.com/statevax/statevax-go/internal/vaccination"
)

// Output file names, relative to the configured output directory.
const (
	FileFullyVaccinatedBar = "people_fully_vaccinated_by_state.png"
	FilePerHundredBar      = "people_fully_vaccinated_per_hundred.png"
	FileDailyRatePanels    = "daily_vaccinations_per_million.png"
	FileOverlay            = "overlay_comparison.png"
	FileScatterTrend       = "vaccination_vs_vote_share.png"
)

// Renderer writes the chart set into the output directory.
type Renderer struct {
	outputDir string
	width     vg.Length
	height    vg.Length
	log       *slog.Logger
}

// New creates a Renderer from the output settings.
func New(settings *conf.Settings) *Renderer {
	return &Renderer{
		outputDir: settings.Output.Path,
		width:     vg.Length(settings.Output.Charts.Width) * vg.Inch,
		height:    vg.Length(settings.Output.Charts.Height) * vg.Inch,
		log:       logging.ForService("charts"),
	}
}

func renderError(err error, chart string) error {
	return errors.New(err).
		Category(errors.CategoryChartRender).
		Context("chart", chart).
		Build()
}

// glyphColor maps the display color onto chart RGBA values.
func glyphColor(c enrich.DisplayColor) color.RGBA {
	switch c {
	case enrich.ColorRed:
		return color.RGBA{R: 220, G: 20, B: 60, A: 255}
	case enrich.ColorBlue:
		return color.RGBA{R: 65, G: 105, B: 225, A: 255}
	default:
		return color.RGBA{R: 34, G: 139, B: 34, A: 255}
	}
}

// RenderAll draws the full chart set.
func (r *Renderer) RenderAll(records, snapshot []enrich.Record, maxima []stats.LocationMaximum, line stats.TrendLine, overlay []string) error {
	if err := r.FullyVaccinatedBar(snapshot); err != nil {
		return err
	}
	if err := r.PerHundredBar(snapshot); err != nil {
		return err
	}
	if err := r.DailyRatePanels(records); err != nil {
		return err
	}
	if err := r.Overlay(records, overlay); err != nil {
		return err
	}
	return r.ScatterWithTrend(maxima, line)
}

// barEntry is one state bar with its party color.
type barEntry struct {
	label string
	value float64
	color color.RGBA
}

// snapshotEntries extracts one bar per location from the recency snapshot,
// sorted descending by value. Locations whose cell is null are skipped.
func snapshotEntries(snapshot []enrich.Record, value func(enrich.Record) *float64) []barEntry {
	seen := make(map[string]struct{})
	var entries []barEntry
	for _, rec := range snapshot {
		if _, ok := seen[rec.Key]; ok {
			continue
		}
		seen[rec.Key] = struct{}{}
		v := value(rec)
		if v == nil {
			continue
		}
		entries = append(entries, barEntry{
			label: rec.Key,
			value: *v,
			color: glyphColor(rec.DisplayColor),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value > entries[j].value })
	return entries
}

// barChart draws one descending bar chart, one bar per state colored by
// majority party.
func (r *Renderer) barChart(entries []barEntry, title, yLabel, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "State"
	p.Y.Label.Text = yLabel

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.label

		// One single-value bar chart per state so each bar carries its own
		// party color; XMin places it on its nominal tick.
		bar, err := plotter.NewBarChart(plotter.Values{e.value}, vg.Points(10))
		if err != nil {
			return renderError(err, filename)
		}
		bar.Color = e.color
		bar.LineStyle.Width = vg.Length(0)
		bar.XMin = float64(i)
		p.Add(bar)
	}

	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Min = 0

	path := filepath.Join(r.outputDir, filename)
	if err := p.Save(r.width, r.height, path); err != nil {
		return renderError(err, filename)
	}
	r.log.Info("chart written", "path", path, "bars", len(entries))
	return nil
}

// FullyVaccinatedBar draws people_fully_vaccinated per state, descending.
func (r *Renderer) FullyVaccinatedBar(snapshot []enrich.Record) error {
	entries := snapshotEntries(snapshot, func(rec enrich.Record) *float64 {
		return rec.PeopleFullyVaccinated
	})
	return r.barChart(entries, "People Fully Vaccinated By State", "People Fully Vaccinated", FileFullyVaccinatedBar)
}

// PerHundredBar draws people_fully_vaccinated_per_hundred per state,
// descending. This comparison levels the playing field across state
// population sizes.
func (r *Renderer) PerHundredBar(snapshot []enrich.Record) error {
	entries := snapshotEntries(snapshot, func(rec enrich.Record) *float64 {
		return rec.PeopleFullyVaccinatedPerHundred
	})
	return r.barChart(entries, "People Fully Vaccinated Per 100 People By State", "People Fully Vaccinated per 100 People", FilePerHundredBar)
}

// series is one location's (date, value) sequence in date order.
type series struct {
	key    string
	color  color.RGBA
	points plotter.XYs
}

// dailySeries extracts the daily_vaccinations_per_million series per
// location, sorted by key.
func dailySeries(records []enrich.Record) []series {
	grouped := make(map[string]*series)
	for _, rec := range records {
		if rec.DailyVaccinationsPerMillion == nil {
			continue
		}
		s, ok := grouped[rec.Key]
		if !ok {
			s = &series{key: rec.Key, color: glyphColor(rec.DisplayColor)}
			grouped[rec.Key] = s
		}
		s.points = append(s.points, plotter.XY{
			X: float64(rec.Date.Unix()),
			Y: *rec.DailyVaccinationsPerMillion,
		})
	}

	out := make([]series, 0, len(grouped))
	for _, s := range grouped {
		sort.Slice(s.points, func(i, j int) bool { return s.points[i].X < s.points[j].X })
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// DailyRatePanels draws a small-multiple grid, one panel per state, of
// daily vaccinations per million.
func (r *Renderer) DailyRatePanels(records []enrich.Record) error {
	allSeries := dailySeries(records)
	if len(allSeries) == 0 {
		return renderError(fmt.Errorf("no daily vaccination series to draw"), FileDailyRatePanels)
	}

	const cols = 5
	rows := (len(allSeries) + cols - 1) / cols

	// Shared y-axis range so panels are comparable.
	var yMax float64
	for _, s := range allSeries {
		for _, pt := range s.points {
			if pt.Y > yMax {
				yMax = pt.Y
			}
		}
	}

	plots := make([][]*plot.Plot, rows)
	idx := 0
	for row := 0; row < rows; row++ {
		plots[row] = make([]*plot.Plot, cols)
		for col := 0; col < cols; col++ {
			if idx >= len(allSeries) {
				break
			}
			s := allSeries[idx]
			idx++

			p := plot.New()
			p.Title.Text = s.key
			p.Title.TextStyle.Font.Size = vg.Points(9)
			p.X.Tick.Marker = plot.TimeTicks{Format: "Jan 02"}
			p.Y.Min = 0
			p.Y.Max = yMax * 1.05

			l, err := plotter.NewLine(s.points)
			if err != nil {
				return renderError(err, FileDailyRatePanels)
			}
			l.Color = s.color
			p.Add(l)
			plots[row][col] = p
		}
	}

	img := vgimg.New(r.width*2, r.height*2)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows,
		Cols: cols,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if plots[row][col] != nil {
				plots[row][col].Draw(canvases[row][col])
			}
		}
	}

	path := filepath.Join(r.outputDir, FileDailyRatePanels)
	f, err := os.Create(path)
	if err != nil {
		return renderError(err, FileDailyRatePanels)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return renderError(err, FileDailyRatePanels)
	}
	r.log.Info("chart written", "path", path, "panels", len(allSeries))
	return nil
}

// Overlay draws the daily vaccination rate of the configured states on a
// single plot for direct comparison.
func (r *Renderer) Overlay(records []enrich.Record, locations []string) error {
	wanted := make(map[string]struct{}, len(locations))
	for _, loc := range locations {
		wanted[vaccination.NormalizeKey(loc)] = struct{}{}
	}

	p := plot.New()
	p.Title.Text = "Daily Vaccinations Per Million, Selected States"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Daily Vaccinations Per Million"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true

	// Distinct line colors; party colors would collide for same-party states.
	palette := []color.RGBA{
		{R: 65, G: 105, B: 225, A: 255},
		{R: 220, G: 20, B: 60, A: 255},
		{R: 34, G: 139, B: 34, A: 255},
		{R: 255, G: 165, B: 0, A: 255},
		{R: 128, G: 0, B: 128, A: 255},
		{R: 0, G: 139, B: 139, A: 255},
	}

	drawn := 0
	for _, s := range dailySeries(records) {
		if _, ok := wanted[s.key]; !ok {
			continue
		}
		l, err := plotter.NewLine(s.points)
		if err != nil {
			return renderError(err, FileOverlay)
		}
		l.Color = palette[drawn%len(palette)]
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(s.key, l)
		drawn++
	}
	if drawn == 0 {
		return renderError(fmt.Errorf("no overlay states matched the data"), FileOverlay)
	}

	path := filepath.Join(r.outputDir, FileOverlay)
	if err := p.Save(r.width, r.height, path); err != nil {
		return renderError(err, FileOverlay)
	}
	r.log.Info("chart written", "path", path, "states", drawn)
	return nil
}

// ScatterWithTrend draws per-location maxima of the vaccination level
// against the democrat vote share, colored by majority party, with the OLS
// line overlaid.
func (r *Renderer) ScatterWithTrend(maxima []stats.LocationMaximum, line stats.TrendLine) error {
	p := plot.New()
	p.Title.Text = "Vaccination Level vs 2020 Democrat Vote Share"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Democrat Vote Share (%)"
	p.Y.Label.Text = "People Fully Vaccinated per 100 People"

	for _, m := range maxima {
		if m.PeopleFullyVaccinatedPerHundred == nil {
			continue
		}
		point, err := plotter.NewScatter(plotter.XYs{{X: m.DemocratVotePercent, Y: *m.PeopleFullyVaccinatedPerHundred}})
		if err != nil {
			return renderError(err, FileScatterTrend)
		}
		point.GlyphStyle.Color = glyphColor(m.DisplayColor)
		point.GlyphStyle.Radius = vg.Points(4)
		point.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(point)
	}

	trend := plotter.NewFunction(line.At)
	trend.Color = color.RGBA{A: 255}
	trend.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(trend)
	p.Add(plotter.NewGrid())

	path := filepath.Join(r.outputDir, FileScatterTrend)
	if err := p.Save(r.width, r.height, path); err != nil {
		return renderError(err, FileScatterTrend)
	}
	r.log.Info("chart written", "path", path, "points", line.N, "slope", line.Slope, "intercept", line.Intercept)
	return nil
}
