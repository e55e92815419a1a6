package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// choiceValue is a string flag restricted to a fixed set of values. Bad
// values are rejected while flags are parsed.
type choiceValue struct {
	value   string
	choices []string
}

var _ pflag.Value = (*choiceValue)(nil)

func newChoiceValue(def string, choices ...string) *choiceValue {
	return &choiceValue{value: def, choices: choices}
}

func (c *choiceValue) String() string { return c.value }

func (c *choiceValue) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, choice := range c.choices {
		if s == choice {
			c.value = s
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(c.choices, ", "))
}

func (c *choiceValue) Type() string { return "string" }

// addFormatFlag registers --format/-f with the given choices; the first
// choice is the default.
func addFormatFlag(cmd *cobra.Command, choices ...string) *choiceValue {
	v := newChoiceValue(choices[0], choices...)
	cmd.Flags().VarP(v, "format", "f", fmt.Sprintf("Output format (%s)", strings.Join(choices, "|")))
	return v
}
