package config

import "github.com/ziadkadry99/lightpack/internal/toc"

// Config is the top-level lightpack configuration, corresponding to .lightpack.yml.
type Config struct {
	InputDir  string       `yaml:"input_dir" koanf:"input_dir"`
	OutputDir string       `yaml:"output_dir" koanf:"output_dir"`
	Include   []string     `yaml:"include" koanf:"include"`
	Exclude   []string     `yaml:"exclude" koanf:"exclude"`
	TOC       toc.Options  `yaml:"toc" koanf:"toc"`
	Server    ServerConfig `yaml:"server" koanf:"server"`
	DBPath    string       `yaml:"db_path" koanf:"db_path"`
	LogLevel  string       `yaml:"log_level" koanf:"log_level"`
}

// ServerConfig holds settings for lightpack serve.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
