package analyze

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statevax/statevax-go/internal/analysis"
	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/report"
)

// Command creates the analyze command, the full pipeline run: all exports,
// the workbook, the markdown report and the chart set, plus the recency
// snapshot on the console.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis and write every configured artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := analysis.Run(settings)
			if err != nil {
				return err
			}
			if err := analysis.WriteOutputs(settings, result); err != nil {
				return err
			}
			return report.PrintSnapshot(os.Stdout, settings.Output.Format, result.Snapshot)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the analyze command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVar(&settings.Output.Charts.Enabled, "charts", viper.GetBool("output.charts.enabled"), "Render the chart set")
	cmd.Flags().BoolVar(&settings.Output.Excel.Enabled, "excel", viper.GetBool("output.excel.enabled"), "Write the xlsx workbook")
	cmd.Flags().BoolVar(&settings.Output.Report.Enabled, "report", viper.GetBool("output.report.enabled"), "Write the markdown report")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		cobra.CheckErr(err)
	}
}
