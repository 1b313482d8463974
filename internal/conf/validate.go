// conf/validate.go settings validation
package conf

import (
	"fmt"
	"strings"
)

// ValidateSettings checks the loaded settings for values the pipeline
// cannot work with. It returns an error describing every problem found.
func ValidateSettings(settings *Settings) error {
	var problems []string

	if settings.Input.Election == "" {
		problems = append(problems, "input.election: path to election results CSV is required")
	}
	if settings.Input.Vaccination == "" {
		problems = append(problems, "input.vaccination: path to vaccination CSV is required")
	}

	if settings.Analysis.Year <= 0 {
		problems = append(problems, fmt.Sprintf("analysis.year: invalid year %d", settings.Analysis.Year))
	}

	switch settings.Analysis.TieBreak {
	case TieBreakError, TieBreakAlphabetical:
	default:
		problems = append(problems, fmt.Sprintf("analysis.tiebreak: unknown policy %q, valid values are %q and %q",
			settings.Analysis.TieBreak, TieBreakError, TieBreakAlphabetical))
	}

	switch settings.Output.Format {
	case "table", "csv":
	default:
		problems = append(problems, fmt.Sprintf("output.format: unknown format %q, valid values are \"table\" and \"csv\"",
			settings.Output.Format))
	}

	if settings.Output.Charts.Enabled {
		if settings.Output.Charts.Width <= 0 || settings.Output.Charts.Height <= 0 {
			problems = append(problems, "output.charts: width and height must be positive")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
