package config

import "github.com/ziadkadry99/lightpack/internal/toc"

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".lightpack.yml"

// DefaultIncludes are the source files picked up by a build.
var DefaultIncludes = []string{
	"**/*.md",
	"**/*.markdown",
	"**/*.html",
	"**/*.htm",
}

// DefaultExcludes are glob patterns skipped by a build.
var DefaultExcludes = []string{
	"node_modules/**",
	".git/**",
	"vendor/**",
	"_*/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		InputDir:  "content",
		OutputDir: "site",
		Include:   append([]string(nil), DefaultIncludes...),
		Exclude:   append([]string(nil), DefaultExcludes...),
		TOC:       toc.DefaultOptions(),
		Server: ServerConfig{
			Port: 8080,
		},
		DBPath:   ".lightpack/lightpack.db",
		LogLevel: "normal",
	}
}
