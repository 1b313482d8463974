package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/statevax/statevax-go/internal/analysis"
	"github.com/statevax/statevax-go/internal/conf"
)

// Command creates the validate command, a dry run that checks the
// configuration and both input files without writing any artifact.
func Command(settings *conf.Settings) *cobra.Command {
	var saveConfigPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration and input files without writing output",
		RunE: func(cmd *cobra.Command, args []string) error {
			findings := analysis.Validate(settings)
			if len(findings) > 0 {
				for _, f := range findings {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Stage, f.Detail)
				}
				return fmt.Errorf("validation failed with %d finding(s)", len(findings))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "configuration and inputs OK")

			if saveConfigPath != "" {
				if err := conf.SaveSettings(settings, saveConfigPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "effective configuration written to %s\n", saveConfigPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&saveConfigPath, "save-config", "", "Write the validated effective configuration to this path")

	return cmd
}
