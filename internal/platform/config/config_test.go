// internal/platform/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"webenum/internal/core/domain"
	"webenum/internal/platform/errors"
	"webenum/internal/testutil"
)

var envKeys = []string{
	"WEBENUM_CONFIG", "WEBENUM_DOMAIN", "WEBENUM_OUTPUT", "WEBENUM_BURP_PROXY",
	"WEBENUM_DRY_RUN", "WEBENUM_LLM", "WEBENUM_LLM_API_KEY", "WEBENUM_LLM_MODEL",
	"WEBENUM_LLM_ENDPOINT", "WEBENUM_LLM_TIMEOUT", "WEBENUM_HISTORY",
	"WEBENUM_HISTORY_PATH", "WEBENUM_LOG_LEVEL", "WEBENUM_NO_COLOR", "WEBENUM_RAW",
}

// clearEnv blanks every WEBENUM_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

// emptyConfigFile writes an empty YAML file so Load never picks up a config
// from the developer's machine.
func emptyConfigFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("webenum", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	testutil.AssertEqual(t, cfg.OutputDir, "results", "default output dir")
	testutil.AssertEqual(t, cfg.Proxy, "", "no proxy by default")
	testutil.AssertFalse(t, cfg.DryRun, "dry-run off by default")
	testutil.AssertFalse(t, cfg.Analysis.Enabled, "analysis off by default")
	testutil.AssertEqual(t, cfg.Analysis.Model, "gpt-3.5-turbo", "default model")
	testutil.AssertEqual(t, cfg.Analysis.MaxURLs, 50, "analysis URL cap")
	testutil.AssertEqual(t, cfg.Analysis.Timeout, 60*time.Second, "analysis timeout")
	testutil.AssertFalse(t, cfg.History.Enabled, "history off by default")
	testutil.AssertTrue(t, filepath.Base(cfg.History.Path) == "history.db", "history db file name")
	testutil.AssertEqual(t, cfg.LogLevel, "warn", "default log level")
}

func TestGetenv(t *testing.T) {
	t.Setenv("WEBENUM_TEST_SET", "custom")
	t.Setenv("WEBENUM_TEST_EMPTY", "")

	testutil.AssertEqual(t, getenv("WEBENUM_TEST_SET", "def"), "custom", "set variable")
	testutil.AssertEqual(t, getenv("WEBENUM_TEST_EMPTY", "def"), "def", "empty variable uses default")
	testutil.AssertEqual(t, getenv("WEBENUM_TEST_MISSING_XYZ", "def"), "def", "missing variable uses default")
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"t", true},
		{"TRUE", true},
		{"yes", true},
		{"On", true},
		{" y ", true},
		{"0", false},
		{"false", false},
		{"off", false},
		{"", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			testutil.AssertEqual(t, parseBool(tt.input), tt.expected, "parseBool")
		})
	}
}

func TestParseInt(t *testing.T) {
	testutil.AssertEqual(t, parseInt("42", 0), 42, "valid int")
	testutil.AssertEqual(t, parseInt(" 7 ", 0), 7, "trimmed int")
	testutil.AssertEqual(t, parseInt("abc", 5), 5, "invalid falls back")
	testutil.AssertEqual(t, parseInt("", 9), 9, "empty falls back")
}

func TestLoad_Flags(t *testing.T) {
	clearEnv(t)
	fs := parseFlags(t,
		"--config", emptyConfigFile(t),
		"-d", " Example.COM. ",
		"-o", "scan_results",
		"-b", "127.0.0.1:8080",
		"--dry-run",
		"--llm", "--llm-api-key", "sk-test",
	)

	cfg, err := Load(fs)
	testutil.AssertNoError(t, err, "load")

	testutil.AssertEqual(t, cfg.Target, "example.com", "target normalized")
	testutil.AssertEqual(t, cfg.OutputDir, "scan_results", "output dir")
	testutil.AssertEqual(t, cfg.Proxy, "127.0.0.1:8080", "proxy")
	testutil.AssertTrue(t, cfg.DryRun, "dry-run")
	testutil.AssertTrue(t, cfg.Analysis.Enabled, "llm enabled")
	testutil.AssertTrue(t, cfg.Analysis.Active(), "llm active with key")
	testutil.AssertNoError(t, cfg.Validate(), "valid config")
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "webenum.yaml")
	testutil.WriteLines(t, path,
		"output: from_file",
		"burp_proxy: 10.0.0.1:8080",
		"log_level: info",
		"analysis:",
		"  model: gpt-4o-mini",
		"  timeout: 5s",
		"  max_urls: 500",
		"history:",
		"  enabled: true",
		"  path: /tmp/webenum-history.db",
		"tools:",
		"  katana: /opt/pd/katana",
	)

	t.Setenv("WEBENUM_OUTPUT", "from_env")
	t.Setenv("WEBENUM_LLM_MODEL", "env-model")

	fs := parseFlags(t, "--config", path, "-d", "example.com", "-b", "127.0.0.1:9090")

	cfg, err := Load(fs)
	testutil.AssertNoError(t, err, "load")

	testutil.AssertEqual(t, cfg.ConfigFile, path, "config file recorded")
	testutil.AssertEqual(t, cfg.OutputDir, "from_env", "env overrides file")
	testutil.AssertEqual(t, cfg.Proxy, "127.0.0.1:9090", "flag overrides file")
	testutil.AssertEqual(t, cfg.Analysis.Model, "env-model", "env overrides file model")
	testutil.AssertEqual(t, cfg.Analysis.Timeout, 5*time.Second, "file timeout")
	testutil.AssertEqual(t, cfg.Analysis.MaxURLs, 50, "analysis URL cap clamped")
	testutil.AssertEqual(t, cfg.LogLevel, "info", "file log level")
	testutil.AssertTrue(t, cfg.History.Enabled, "history from file")
	testutil.AssertEqual(t, cfg.History.Path, "/tmp/webenum-history.db", "history path")
	testutil.AssertEqual(t, cfg.ToolPath("katana"), "/opt/pd/katana", "configured tool path")
	testutil.AssertEqual(t, cfg.ToolPath("httpx"), "httpx", "default tool path")
}

func TestLoad_UnchangedFlagsKeepEarlierLayers(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBENUM_OUTPUT", "env_dir")

	fs := parseFlags(t, "--config", emptyConfigFile(t), "-d", "example.com")

	cfg, err := Load(fs)
	testutil.AssertNoError(t, err, "load")
	testutil.AssertEqual(t, cfg.OutputDir, "env_dir", "default flag value must not clobber env")
}

func TestLoad_VerboseForcesDebug(t *testing.T) {
	clearEnv(t)
	fs := parseFlags(t, "--config", emptyConfigFile(t), "-d", "example.com", "-v", "--log-level", "error")

	cfg, err := Load(fs)
	testutil.AssertNoError(t, err, "load")
	testutil.AssertEqual(t, cfg.LogLevel, "debug", "verbose wins")
}

func TestLoad_RawPresenter(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(parseFlags(t, "--config", emptyConfigFile(t), "-d", "example.com"))
	testutil.AssertNoError(t, err, "load")
	testutil.AssertFalse(t, cfg.Raw, "styled output by default")

	cfg, err = Load(parseFlags(t, "--config", emptyConfigFile(t), "-d", "example.com", "--raw"))
	testutil.AssertNoError(t, err, "load with --raw")
	testutil.AssertTrue(t, cfg.Raw, "raw flag")

	t.Setenv("WEBENUM_RAW", "1")
	cfg, err = Load(parseFlags(t, "--config", emptyConfigFile(t), "-d", "example.com"))
	testutil.AssertNoError(t, err, "load with env")
	testutil.AssertTrue(t, cfg.Raw, "raw from env")
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	clearEnv(t)
	fs := parseFlags(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load(fs)
	testutil.AssertTrue(t, errors.Is(err, ErrConfigNotFound), "missing explicit config is an error")
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	testutil.WriteLines(t, path, "output: [unclosed")

	_, err := Load(parseFlags(t, "--config", path))
	testutil.AssertError(t, err, "malformed YAML")
}

func TestLoad_NilFlagSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEBENUM_CONFIG", emptyConfigFile(t))
	t.Setenv("WEBENUM_DOMAIN", "api.example.com")
	t.Setenv("WEBENUM_DRY_RUN", "yes")

	cfg, err := Load(nil)
	testutil.AssertNoError(t, err, "load without flags")
	testutil.AssertEqual(t, cfg.Target, "api.example.com", "target from env")
	testutil.AssertTrue(t, cfg.DryRun, "dry-run from env")
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Target = "example.com"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"domain file rejected", func(c *Config) { c.DomainFile = "domains.txt" }, domain.ErrMultiDomainUnsupported},
		{"domain file rejected even with target", func(c *Config) { c.DomainFile = "d.txt"; c.Target = "example.com" }, domain.ErrMultiDomainUnsupported},
		{"empty target", func(c *Config) { c.Target = "" }, domain.ErrEmptyTarget},
		{"invalid target", func(c *Config) { c.Target = "not a domain" }, domain.ErrInvalidDomain},
		{"public suffix target", func(c *Config) { c.Target = "co.uk" }, domain.ErrInvalidDomain},
		{"bad proxy", func(c *Config) { c.Proxy = "127.0.0.1" }, ErrInvalidProxy},
		{"proxy with scheme", func(c *Config) { c.Proxy = "http://127.0.0.1:8080" }, ErrInvalidProxy},
		{"good proxy", func(c *Config) { c.Proxy = "127.0.0.1:8080" }, nil},
		{"analysis without endpoint", func(c *Config) { c.Analysis.Enabled = true; c.Analysis.Endpoint = "" }, ErrInvalidEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				testutil.AssertNoError(t, err, "expected valid config")
				return
			}
			testutil.AssertTrue(t, errors.Is(err, tt.want), "expected "+tt.want.Error())
		})
	}
}

func TestAnalysisActive(t *testing.T) {
	testutil.AssertFalse(t, Analysis{Enabled: true}.Active(), "enabled without key")
	testutil.AssertFalse(t, Analysis{APIKey: "k"}.Active(), "key without enable")
	testutil.AssertFalse(t, Analysis{Enabled: true, APIKey: "  "}.Active(), "blank key")
	testutil.AssertTrue(t, Analysis{Enabled: true, APIKey: "k"}.Active(), "enabled with key")
}

func TestFindConfigFile_Explicit(t *testing.T) {
	path := emptyConfigFile(t)
	testutil.AssertEqual(t, FindConfigFile(path), path, "explicit existing path")
	testutil.AssertEqual(t, FindConfigFile(path+".missing"), "", "explicit missing path")
}

func TestLoadConfigFile_NotFound(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	testutil.AssertTrue(t, errors.Is(err, ErrConfigNotFound), "not found sentinel")
}
