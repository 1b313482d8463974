package report

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/statevax/statevax-go/internal/analysis"
	"github.com/statevax/statevax-go/internal/conf"
	"github.com/statevax/statevax-go/internal/errors"
	"github.com/statevax/statevax-go/internal/report"
)

// Command creates the report command, which runs the pipeline and writes
// the markdown report and the xlsx workbook without rendering charts.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the analysis and write the markdown report and workbook",
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

			reportPath := filepath.Join(settings.Output.Path, settings.Output.Report.Filename)
			if err := report.WriteMarkdown(reportPath, settings.Main.Name, result.Summary, result.Snapshot, result.Maxima, result.Trend); err != nil {
				return err
			}

			excelPath := filepath.Join(settings.Output.Path, settings.Output.Excel.Filename)
			return report.WriteWorkbook(excelPath, result.Summary, result.Snapshot, result.Maxima, result.Trend)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the report command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVar(&settings.Main.Name, "name", viper.GetString("main.name"), "Run name used in report headers")
	cmd.Flags().StringVar(&settings.Output.Report.Filename, "report-file", viper.GetString("output.report.filename"), "Markdown report file name")
	cmd.Flags().StringVar(&settings.Output.Excel.Filename, "excel-file", viper.GetString("output.excel.filename"), "Workbook file name")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		cobra.CheckErr(err)
	}
}
