// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "StateVax-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "statevax.log")

	viper.SetDefault("input.election", "data/1976-2020-president.csv")
	viper.SetDefault("input.vaccination", "data/us_state_vaccinations.csv")

	viper.SetDefault("analysis.year", 2020)
	viper.SetDefault("analysis.tiebreak", TieBreakError)
	viper.SetDefault("analysis.overlay", []string{"California", "Texas", "New York State", "Florida"})

	viper.SetDefault("output.path", "output/")
	viper.SetDefault("output.format", "table")

	viper.SetDefault("output.charts.enabled", true)
	viper.SetDefault("output.charts.width", 12.0)
	viper.SetDefault("output.charts.height", 8.0)

	viper.SetDefault("output.excel.enabled", true)
	viper.SetDefault("output.excel.filename", "statevax.xlsx")

	viper.SetDefault("output.report.enabled", true)
	viper.SetDefault("output.report.filename", "report.md")
}
