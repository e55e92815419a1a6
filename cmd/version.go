package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conneroisu/livedoc/internal/version"
)

var (
	versionFormat *choiceValue
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display the livedoc version, git commit, build time, Go version and
target platform.

Examples:
  livedoc version              # Show version
  livedoc version --short      # Version number only
  livedoc version --detailed   # Show detailed version info
  livedoc version -f json      # Output as JSON`,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionFormat = addFormatFlag(versionCmd, "text", "json")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	versionCmd.Flags().Bool("detailed", false, "Show detailed version information")
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	detailed, _ := cmd.Flags().GetBool("detailed")
	out := cmd.OutOrStdout()

	switch {
	case versionFormat.String() == "json":
		return outputVersionJSON(out)
	case versionShort:
		_, err := fmt.Fprintln(out, version.GetShortVersion())
		return err
	case detailed:
		return outputVersionDetailed(out)
	default:
		return outputVersionDefault(out)
	}
}

func outputVersionDefault(w io.Writer) error {
	info := version.GetBuildInfo()

	fmt.Fprintf(w, "livedoc %s", info.Version)
	if info.GitCommit != "unknown" && len(info.GitCommit) >= 7 {
		fmt.Fprintf(w, " (%s)", info.GitCommit[:7])
	}
	if info.Dirty {
		fmt.Fprint(w, " (dirty)")
	}
	fmt.Fprintln(w)

	if !info.BuildTime.IsZero() {
		fmt.Fprintf(w, "Built: %s\n", info.BuildTime.Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(w, "Go: %s\n", info.GoVersion)
	_, err := fmt.Fprintf(w, "Platform: %s\n", info.Platform)
	return err
}

func outputVersionDetailed(w io.Writer) error {
	fmt.Fprintln(w, version.GetDetailedVersion())
	if version.IsRelease() {
		fmt.Fprintln(w, "Build type: release")
	} else {
		fmt.Fprintln(w, "Build type: development")
	}
	return nil
}

func outputVersionJSON(w io.Writer) error {
	info := version.GetBuildInfo()

	jsonInfo := map[string]interface{}{
		"version":    info.Version,
		"git_commit": info.GitCommit,
		"build_time": info.BuildTime,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
		"is_release": version.IsRelease(),
		"is_dirty":   info.Dirty,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonInfo)
}
