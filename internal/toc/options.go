package toc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	DefaultSelector    = "#toc"
	DefaultActiveClass = "toc-active"
)

// DefaultLevels are the heading depths included when none are configured.
var DefaultLevels = []int{2, 3, 4, 5, 6}

// Options configures TOC generation.
type Options struct {
	// Selector locates the container the TOC is rendered into ("#id").
	Selector string `yaml:"selector" koanf:"selector"`
	// Levels are the heading depths collected.
	Levels []int `yaml:"levels" koanf:"levels"`
	// ScrollOffset shifts both active detection and navigation targets.
	ScrollOffset float64 `yaml:"scroll_offset" koanf:"scroll_offset"`
	// ActiveClass marks the link of the current heading.
	ActiveClass string `yaml:"active_class" koanf:"active_class"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Selector:    DefaultSelector,
		Levels:      slices.Clone(DefaultLevels),
		ActiveClass: DefaultActiveClass,
	}
}

// WithDefaults fills zero fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	if o.Selector == "" {
		o.Selector = DefaultSelector
	}
	if len(o.Levels) == 0 {
		o.Levels = slices.Clone(DefaultLevels)
	}
	if o.ActiveClass == "" {
		o.ActiveClass = DefaultActiveClass
	}
	return o
}

// Validate checks level range and selector form.
func (o Options) Validate() error {
	for _, l := range o.Levels {
		if l < 1 || l > 6 {
			return fmt.Errorf("invalid heading level %d: must be between 1 and 6", l)
		}
	}
	if o.Selector != "" && !strings.HasPrefix(o.Selector, "#") {
		return fmt.Errorf("invalid selector %q: only #id selectors are supported", o.Selector)
	}
	if o.ScrollOffset < 0 {
		return fmt.Errorf("scroll_offset must be non-negative")
	}
	return nil
}

// Includes reports whether depth is one of the configured levels.
func (o Options) Includes(depth int) bool {
	return slices.Contains(o.Levels, depth)
}

// ParseLevels accepts "h2,h3", "2,3" or any mix of the two.
func ParseLevels(s string) ([]int, error) {
	var levels []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(part, "h"))
		if err != nil {
			return nil, fmt.Errorf("invalid heading level %q", part)
		}
		if n < 1 || n > 6 {
			return nil, fmt.Errorf("invalid heading level %d: must be between 1 and 6", n)
		}
		levels = append(levels, n)
	}
	return levels, nil
}
