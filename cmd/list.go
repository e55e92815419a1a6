package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/livedoc/internal/registry"
	"github.com/conneroisu/livedoc/internal/site"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List the recorded examples",
	Long: `Build the site and list every recorded example with its page, source
location and the widgets it uses.

Examples:
  livedoc list                       # Table of all examples
  livedoc list -f json               # Output as JSON
  livedoc list --page controls       # Examples of one page
  livedoc list --widget Button -f yaml # Examples using a widget`,
	RunE: runList,
}

var (
	listFormat *choiceValue
	listPage   string
	listWidget string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listFormat = addFormatFlag(listCmd, "table", "json", "yaml")
	listCmd.Flags().StringVar(&listPage, "page", "", "Only list examples of this page")
	listCmd.Flags().StringVarP(&listWidget, "widget", "w", "", "Only list examples using this widget")
}

func runList(cmd *cobra.Command, args []string) error {
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

	examples := filterExamples(s.Registry, listPage, listWidget)
	out := cmd.OutOrStdout()
	switch listFormat.String() {
	case "json":
		return outputListJSON(out, examples)
	case "yaml":
		return outputListYAML(out, examples)
	default:
		return outputListTable(out, examples)
	}
}

func filterExamples(reg *registry.ExampleRegistry, page, widget string) []*registry.ExampleInfo {
	var examples []*registry.ExampleInfo
	if widget != "" {
		examples = reg.Using(widget)
	} else {
		examples = reg.GetAll()
	}
	if page == "" {
		return examples
	}

	filtered := examples[:0]
	for _, e := range examples {
		if e.Page == page {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func outputListJSON(w io.Writer, examples []*registry.ExampleInfo) error {
	if examples == nil {
		examples = []*registry.ExampleInfo{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(examples)
}

func outputListYAML(w io.Writer, examples []*registry.ExampleInfo) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(examples)
}

func outputListTable(w io.Writer, examples []*registry.ExampleInfo) error {
	if len(examples) == 0 {
		_, err := fmt.Fprintln(w, "No examples found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSOURCE\tWIDGETS")
	fmt.Fprintln(tw, "--\t-----\t------\t-------")
	for _, e := range examples {
		fmt.Fprintf(tw, "%s\t%s\t%s:%d-%d\t%s\n",
			e.ID, truncate(e.Title, 40), e.File, e.Begin, e.End, strings.Join(e.Widgets, ", "))
	}
	fmt.Fprintf(tw, "\nTotal: %d examples\n", len(examples))
	return tw.Flush()
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
