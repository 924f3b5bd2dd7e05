package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gnolang/parsco"
	"github.com/gnolang/parsco/check"
	"github.com/gnolang/parsco/grammar/ipv4"
	"github.com/gnolang/parsco/grammar/json"
)

// registeredTypes lists, per grammar, the types it registers for
// dispatch. Grammars written as plain parsers have no entry.
var registeredTypes = map[string]func() []string{
	"json": parsco.Registered[json.Grammar],
	"ipv4": parsco.Registered[ipv4.Grammar],
}

var nameStyle = color.New(color.FgCyan, color.Bold)

var grammarsCmd = &cobra.Command{
	Use:   "grammars",
	Short: "List the available grammars and the extensions they handle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printGrammars(cmd.OutOrStdout(), check.DefaultCatalog(), config)
	},
}

func printGrammars(out io.Writer, catalog check.Catalog, cfg check.Config) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, name := range catalog.Names() {
		exts := strings.Join(cfg.Grammars[name], ", ")
		if exts == "" {
			exts = "-"
		}
		line := nameStyle.Sprint(name) + "\t" + exts
		if types, ok := registeredTypes[name]; ok {
			line += "\t" + strings.Join(types(), ", ")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
