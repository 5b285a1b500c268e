package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/lightpack/internal/progress"
	"github.com/ziadkadry99/lightpack/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site",
	Long: `Converts Markdown and HTML sources into a static site. Widget groups are
stamped and normalized, tables of contents are generated and the live client
script is injected into every page.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("input", "", "override source directory")
	buildCmd.Flags().String("output", "", "override output directory")
	buildCmd.Flags().String("name", "", "site name shown in page titles (defaults to the working directory name)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetString("input"); v != "" {
		cfg.InputDir = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.OutputDir = v
	}
	if _, err := os.Stat(cfg.InputDir); err != nil {
		return fmt.Errorf("source directory %s: %w", cfg.InputDir, err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		}
	}

	generator, err := site.NewGenerator(site.Options{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		TOC:       cfg.TOC,
		SiteName:  name,
	}, progress.NewReporter(), log)
	if err != nil {
		return err
	}
	res, err := generator.Generate()
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	fmt.Printf("Site built: %s (%d pages, %d assets, %d widget groups, %d headings)\n",
		cfg.OutputDir, res.Pages, res.Assets, res.Groups, res.Headings)
	return nil
}
