// internal/platform/config/loader.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = ".webenum.yaml"

// File is the YAML configuration file layout. Only non-empty values
// override the defaults.
type File struct {
	Output   string `yaml:"output"`
	Proxy    string `yaml:"burp_proxy"`
	LogLevel string `yaml:"log_level"`
	NoColor  *bool  `yaml:"no_color"`

	Analysis struct {
		Enabled  *bool  `yaml:"enabled"`
		APIKey   string `yaml:"api_key"`
		Model    string `yaml:"model"`
		Endpoint string `yaml:"endpoint"`
		Timeout  string `yaml:"timeout"`
		MaxURLs  int    `yaml:"max_urls"`
	} `yaml:"analysis"`

	History struct {
		Enabled *bool  `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"history"`

	// Tools maps a tool name to a binary path, e.g. katana: /opt/pd/katana
	Tools map[string]string `yaml:"tools"`
}

// LoadConfigFile reads and parses a YAML config file. A missing file yields
// ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Tools == nil {
		f.Tools = make(map[string]string)
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. configPath, when given
// 2. .webenum.yaml in the current directory
// 3. config.yaml in $XDG_CONFIG_HOME/webenum
//
// Returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(DefaultConfigDir(), "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}

	return ""
}

func (f *File) apply(cfg *Config) {
	if f.Output != "" {
		cfg.OutputDir = f.Output
	}
	if f.Proxy != "" {
		cfg.Proxy = f.Proxy
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.NoColor != nil {
		cfg.NoColor = *f.NoColor
	}

	if f.Analysis.Enabled != nil {
		cfg.Analysis.Enabled = *f.Analysis.Enabled
	}
	if f.Analysis.APIKey != "" {
		cfg.Analysis.APIKey = f.Analysis.APIKey
	}
	if f.Analysis.Model != "" {
		cfg.Analysis.Model = f.Analysis.Model
	}
	if f.Analysis.Endpoint != "" {
		cfg.Analysis.Endpoint = f.Analysis.Endpoint
	}
	if d, err := time.ParseDuration(strings.TrimSpace(f.Analysis.Timeout)); err == nil && d > 0 {
		cfg.Analysis.Timeout = d
	}
	if f.Analysis.MaxURLs > 0 {
		cfg.Analysis.MaxURLs = f.Analysis.MaxURLs
	}

	if f.History.Enabled != nil {
		cfg.History.Enabled = *f.History.Enabled
	}
	if f.History.Path != "" {
		cfg.History.Path = f.History.Path
	}

	for name, path := range f.Tools {
		cfg.Tools[name] = path
	}
}
