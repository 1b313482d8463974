package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statevax/statevax-go/cmd/analyze"
	"github.com/statevax/statevax-go/cmd/charts"
	"github.com/statevax/statevax-go/cmd/report"
	"github.com/statevax/statevax-go/cmd/validate"
	"github.com/statevax/statevax-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "statevax-go",
		Short: "Election vs vaccination analysis CLI",
		Long: `statevax-go joins US presidential election results with the US COVID-19
vaccination time series and reports how vaccination uptake relates to the
2020 vote.`,
	}

	// Set up the global flags for the root command.
	cobra.CheckErr(setupFlags(rootCmd, settings))

	subcommands := []*cobra.Command{
		analyze.Command(settings),
		charts.Command(settings),
		report.Command(settings),
		validate.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := cmd.Flags().Parse(args); err != nil {
			return err
		}
		// Re-validate after command-line flags override the config file.
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Election, "election", viper.GetString("input.election"), "Path to the presidential election results CSV")
	rootCmd.PersistentFlags().StringVar(&settings.Input.Vaccination, "vaccination", viper.GetString("input.vaccination"), "Path to the vaccination time series CSV")
	rootCmd.PersistentFlags().IntVarP(&settings.Analysis.Year, "year", "y", viper.GetInt("analysis.year"), "Election year to analyze")
	rootCmd.PersistentFlags().StringVar(&settings.Analysis.TieBreak, "tiebreak", viper.GetString("analysis.tiebreak"), "Majority tie handling: error or alphabetical")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Path, "output", "o", viper.GetString("output.path"), "Path to output directory")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Format, "format", "f", viper.GetString("output.format"), "Console output format: table or csv")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}
