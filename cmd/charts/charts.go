package charts

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statevax/statevax-go/internal/analysis"
	"github.com/statevax/statevax-go/internal/charts"
	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/errors"
)

// Command creates the charts command, which runs the pipeline and renders
// only the chart set.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Run the analysis and render the chart set",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analysis.Run(settings)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(settings.Output.Path, 0o755); err != nil {
				return errors.New(err).
					Category(errors.CategoryFileIO).
					Context("path", settings.Output.Path).
					Build()
			}
			renderer := charts.New(settings)
			return renderer.RenderAll(result.Records, result.Snapshot, result.Maxima, result.Trend, settings.Analysis.Overlay)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the charts command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().Float64Var(&settings.Output.Charts.Width, "width", viper.GetFloat64("output.charts.width"), "Chart width in inches")
	cmd.Flags().Float64Var(&settings.Output.Charts.Height, "height", viper.GetFloat64("output.charts.height"), "Chart height in inches")
	cmd.Flags().StringSliceVar(&settings.Analysis.Overlay, "overlay", viper.GetStringSlice("analysis.overlay"), "States drawn on the overlay comparison chart")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		cobra.CheckErr(err)
	}
}
