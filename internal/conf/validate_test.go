package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() *Settings {
	s := &Settings{}
	s.Input.Election = "data/1976-2020-president.csv"
	s.Input.Vaccination = "data/us_state_vaccinations.csv"
	s.Analysis.Year = 2020
	s.Analysis.TieBreak = TieBreakError
	s.Output.Path = "output/"
	s.Output.Format = "table"
	s.Output.Charts.Enabled = true
	s.Output.Charts.Width = 12
	s.Output.Charts.Height = 8
	return s
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateSettings(validSettings()))
}

func TestValidateSettingsRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		want   string
	}{
		{"missing election path", func(s *Settings) { s.Input.Election = "" }, "input.election"},
		{"missing vaccination path", func(s *Settings) { s.Input.Vaccination = "" }, "input.vaccination"},
		{"bad year", func(s *Settings) { s.Analysis.Year = 0 }, "analysis.year"},
		{"bad tiebreak", func(s *Settings) { s.Analysis.TieBreak = "coinflip" }, "analysis.tiebreak"},
		{"bad format", func(s *Settings) { s.Output.Format = "xml" }, "output.format"},
		{"bad chart size", func(s *Settings) { s.Output.Charts.Width = -1 }, "output.charts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := validSettings()
			tt.mutate(s)
			err := ValidateSettings(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
