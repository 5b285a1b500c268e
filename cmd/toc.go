package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lightpack/internal/markup"
	"github.com/ziadkadry99/lightpack/internal/site"
	"github.com/ziadkadry99/lightpack/internal/toc"
)

var tocCmd = &cobra.Command{
	Use:   "toc <file>",
	Short: "Print the table of contents of a page",
	Long:  `Builds the heading tree of an HTML or Markdown file and prints it as an indented outline or JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTOC,
}

func init() {
	tocCmd.Flags().String("levels", "", `heading levels, e.g. "h2,h3" (defaults to the config)`)
	tocCmd.Flags().Bool("json", false, "print the tree as JSON")
	rootCmd.AddCommand(tocCmd)
}

func runTOC(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	levels := cfg.TOC.Levels
	if v, _ := cmd.Flags().GetString("levels"); v != "" {
		if levels, err = toc.ParseLevels(v); err != nil {
			return err
		}
	}

	doc, err := site.LoadPage(args[0])
	if err != nil {
		return fmt.Errorf("loading %s: %w", args[0], err)
	}
	hs := markup.Headings(doc, levels)
	toc.AssignIDs(hs)
	forest := toc.BuildTree(hs)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(forest)
	}
	toc.Walk(forest, func(n *toc.Node, depth int) {
		fmt.Printf("%s- %s (#%s)\n", strings.Repeat("  ", depth), n.Text, n.ID)
	})
	return nil
}
