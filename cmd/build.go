package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/livedoc/internal/build"
	"github.com/conneroisu/livedoc/internal/site"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Export the documentation as static HTML",
	Long: `Build every page and write it as static HTML together with a
manifest.yaml describing the recorded examples.

Examples:
  livedoc build                                   # Write to dist/
  livedoc build -o public --clean                 # Empty public/ first
  livedoc build --base-url https://docs.example.com # Also write sitemap.xml`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("output", "o", "dist", "Output directory")
	buildCmd.Flags().String("base-url", "", "Public URL of the site, enables sitemap.xml")
	buildCmd.Flags().Bool("clean", false, "Remove the output directory before writing")

	viper.BindPFlag("build.output_dir", buildCmd.Flags().Lookup("output"))
	viper.BindPFlag("build.base_url", buildCmd.Flags().Lookup("base-url"))
	viper.BindPFlag("build.clean", buildCmd.Flags().Lookup("clean"))
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	s, err := site.Build(cmd.Context(), siteOptions(cfg, logger))
	if err != nil {
		return err
	}

	exporter := build.NewStaticExporter(cfg.Build.OutputDir, logger)
	files, err := exporter.Export(cmd.Context(), s, build.ExportOptions{
		BaseURL: cfg.Build.BaseURL,
		Clean:   cfg.Build.Clean,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		rel, err := filepath.Rel(cfg.Build.OutputDir, f)
		if err != nil {
			rel = f
		}
		fmt.Fprintf(out, "  %s\n", rel)
	}
	fmt.Fprintf(out, "Built %d pages with %d examples into %s in %s\n",
		len(s.Pages), s.Registry.Count(), cfg.Build.OutputDir, s.Duration.Round(1e6))
	return nil
}
