package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/lightpack/internal/toc"
)

// sourceDirs are directories commonly holding site sources, in preference order.
var sourceDirs = []string{"content", "docs", "pages", "src"}

// detectInputDir returns the first conventional source directory present.
func detectInputDir() string {
	for _, d := range sourceDirs {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			return d
		}
	}
	return "content"
}

// levelChoices are the heading ranges offered by the wizard.
var levelChoices = []struct {
	Label  string
	Levels string
}{
	{"h2-h6 (default)", "h2,h3,h4,h5,h6"},
	{"h2-h3", "h2,h3"},
	{"h1-h3", "h1,h2,h3"},
	{"h2 only", "h2"},
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to lightpack! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Source and output directories.
	inputPrompt := promptui.Prompt{
		Label:   "Source directory (Markdown and HTML)",
		Default: detectInputDir(),
	}
	inputDir, err := inputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("input dir: %w", err)
	}
	cfg.InputDir = inputDir

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the built site",
		Default: cfg.OutputDir,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("output directory is required")
			}
			if s == inputDir {
				return fmt.Errorf("must differ from the source directory")
			}
			return nil
		},
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = outputDir

	// 2. Table of contents.
	labels := make([]string, len(levelChoices))
	for i, c := range levelChoices {
		labels[i] = c.Label
	}
	levelPrompt := promptui.Select{
		Label: "Headings included in the table of contents",
		Items: labels,
	}
	idx, _, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("toc levels: %w", err)
	}
	if cfg.TOC.Levels, err = toc.ParseLevels(levelChoices[idx].Levels); err != nil {
		return nil, err
	}

	offsetPrompt := promptui.Prompt{
		Label:   "Scroll offset in pixels (height of a fixed header)",
		Default: "0",
		Validate: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil || v < 0 {
				return fmt.Errorf("enter a non-negative number")
			}
			return nil
		},
	}
	offsetStr, err := offsetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scroll offset: %w", err)
	}
	cfg.TOC.ScrollOffset, _ = strconv.ParseFloat(offsetStr, 64)

	// 3. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = append(cfg.Exclude, splitAndTrim(excludeStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
