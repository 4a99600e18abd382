// internal/platform/config/flags.go
package config

import (
	"github.com/spf13/pflag"
)

// Flag names shared by the CLI and Load.
const (
	FlagDomain    = "domain"
	FlagFile      = "file"
	FlagOutput    = "output"
	FlagProxy     = "burp-proxy"
	FlagDryRun    = "dry-run"
	FlagLLM       = "llm"
	FlagLLMAPIKey = "llm-api-key"
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagVerbose   = "verbose"
	FlagNoColor   = "no-color"
	FlagHistory   = "history"
	FlagRaw       = "raw"
)

// RegisterFlags declares every run flag on fs with defaults taken from
// DefaultConfig.
func RegisterFlags(fs *pflag.FlagSet) {
	def := DefaultConfig()

	fs.StringP(FlagDomain, "d", "", "Target domain (e.g., example.com)")
	fs.StringP(FlagFile, "f", "", "File with domains, one per line (not supported yet)")
	fs.StringP(FlagOutput, "o", def.OutputDir, "Output directory")
	fs.StringP(FlagProxy, "b", "", "BurpSuite proxy address (e.g., 127.0.0.1:8080)")
	fs.Bool(FlagDryRun, false, "Show commands without executing")
	fs.Bool(FlagLLM, false, "Enable LLM analysis of the merged URL list")
	fs.String(FlagLLMAPIKey, "", "API key for LLM analysis")

	fs.String(FlagConfig, "", "Config file (default ./.webenum.yaml or $XDG_CONFIG_HOME/webenum/config.yaml)")
	fs.String(FlagLogLevel, def.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolP(FlagVerbose, "v", false, "Verbose logging (same as --log-level debug)")
	fs.Bool(FlagNoColor, false, "Disable colored output")
	fs.Bool(FlagHistory, false, "Record this run in the history database")
	fs.Bool(FlagRaw, false, "Plain line-oriented output (for logs and pipes)")
}

// loadFromFlags copies the flags the user set on the command line into cfg.
func loadFromFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagDomain:
			cfg.Target, err = fs.GetString(f.Name)
		case FlagFile:
			cfg.DomainFile, err = fs.GetString(f.Name)
		case FlagOutput:
			cfg.OutputDir, err = fs.GetString(f.Name)
		case FlagProxy:
			cfg.Proxy, err = fs.GetString(f.Name)
		case FlagDryRun:
			cfg.DryRun, err = fs.GetBool(f.Name)
		case FlagLLM:
			cfg.Analysis.Enabled, err = fs.GetBool(f.Name)
		case FlagLLMAPIKey:
			cfg.Analysis.APIKey, err = fs.GetString(f.Name)
		case FlagLogLevel:
			cfg.LogLevel, err = fs.GetString(f.Name)
		case FlagVerbose:
			cfg.Verbose, err = fs.GetBool(f.Name)
		case FlagNoColor:
			cfg.NoColor, err = fs.GetBool(f.Name)
		case FlagHistory:
			cfg.History.Enabled, err = fs.GetBool(f.Name)
		case FlagRaw:
			cfg.Raw, err = fs.GetBool(f.Name)
		}
	})
	return err
}
