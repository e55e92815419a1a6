package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/livedoc/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration",
	Long: `Load the configuration and report errors and warnings, such as an
unknown code style or a README path that does not exist.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if initErr != nil {
		return initErr
	}

	// Decode without the hard checks so every problem is listed.
	var cfg config.Config
	config.SetDefaults(viper.GetViper())
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to decode configuration: %w", err)
	}

	result := config.ValidateConfigWithDetails(&cfg)
	out := cmd.OutOrStdout()
	if !result.HasErrors() && !result.HasWarnings() {
		fmt.Fprintln(out, "Configuration is valid.")
		return nil
	}
	fmt.Fprint(out, result.String())
	if result.HasErrors() {
		return fmt.Errorf("configuration has %d errors", len(result.Errors))
	}
	return nil
}
