package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/statevax/statevax-go/internal/errors"
)

// TrendLine is the ordinary least-squares fit y = Slope*x + Intercept.
// It is a descriptive overlay, a single deterministic point estimate with
// no outlier handling and no confidence interval.
type TrendLine struct {
	Slope     float64
	Intercept float64
	N         int
}

// At evaluates the fitted line at x.
func (t TrendLine) At(x float64) float64 {
	return t.Slope*x + t.Intercept
}

// FitTrend fits an OLS line over the given points.
func FitTrend(xs, ys []float64) (TrendLine, error) {
	if len(xs) != len(ys) {
		return TrendLine{}, errors.Newf("mismatched point counts: %d x values, %d y values", len(xs), len(ys)).
			Category(errors.CategoryValidation).
			Build()
	}
	if len(xs) < 2 {
		return TrendLine{}, errors.Newf("need at least 2 points to fit a line, got %d", len(xs)).
			Category(errors.CategoryValidation).
			Build()
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	return TrendLine{Slope: slope, Intercept: intercept, N: len(xs)}, nil
}

// VaccinationTrend fits people_fully_vaccinated_per_hundred on
// democrat_vote_percent over the per-location maxima. Locations without a
// per-hundred observation are skipped.
func VaccinationTrend(maxima []LocationMaximum) (TrendLine, error) {
	var xs, ys []float64
	for _, m := range maxima {
		if m.PeopleFullyVaccinatedPerHundred == nil {
			continue
		}
		xs = append(xs, m.DemocratVotePercent)
		ys = append(ys, *m.PeopleFullyVaccinatedPerHundred)
	}
	return FitTrend(xs, ys)
}
