package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lightpack/internal/markup"
	"github.com/ziadkadry99/lightpack/internal/site"
	"github.com/ziadkadry99/lightpack/internal/widget"
)

var groupsCmd = &cobra.Command{
	Use:   "groups <file>",
	Short: "List the widget groups found on a page",
	Long:  `Scans an HTML or Markdown file for tabs, accordions, collapsibles, drawers and modals and prints each group with its mode and initially open items.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := site.LoadPage(args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		engine := widget.NewEngine(widget.NewScrollLock(nil), nil)
		groups := engine.BindAll(markup.NewScanner(doc, nil))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tKIND\tMODE\tITEMS\tOPEN")
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\n", g.ID, g.Kind, g.Mode, len(g.Items), g.OpenIndexes())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
}
