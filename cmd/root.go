package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lightpack/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lightpack",
	Short: "Interactive widgets and live tables of contents for static pages",
	Long: `Lightpack builds Markdown and HTML pages into a static site whose tabs,
accordions, collapsibles, drawers and modals are driven by a small toggle
engine, with a table of contents and scroll-spy generated from the page
headings. Serving the site runs each open page as a live session.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
