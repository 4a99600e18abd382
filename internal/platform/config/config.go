// internal/platform/config/config.go
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"

	"webenum/internal/core/domain"
	"webenum/internal/platform/errors"
	"webenum/internal/platform/validator"
)

// AppName is used for the XDG config/data directories.
const AppName = "webenum"

// MaxAnalysisURLs caps how many merged URLs are sent for analysis.
const MaxAnalysisURLs = 50

// Config is the run configuration. It is built once by Load and passed by
// value afterwards.
type Config struct {
	// Target
	Target     string
	DomainFile string

	// IO
	OutputDir string

	// Intercepting proxy as host:port (Burp Suite)
	Proxy string

	DryRun bool

	Analysis Analysis
	History  History

	// Tools maps a tool name to the binary that should be executed for it.
	// Missing entries use the bare tool name.
	Tools map[string]string

	// Logging / console
	LogLevel string
	Verbose  bool
	NoColor  bool

	// Raw selects the plain presenter instead of the styled one
	Raw bool

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string
}

// Analysis configures the optional endpoint classification call.
type Analysis struct {
	Enabled  bool
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
	MaxURLs  int
}

// Active reports whether analysis was requested and has a credential.
func (a Analysis) Active() bool {
	return a.Enabled && strings.TrimSpace(a.APIKey) != ""
}

// History configures the SQLite run history.
type History struct {
	Enabled bool
	Path    string
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		OutputDir: "results",
		Analysis: Analysis{
			Model:    "gpt-3.5-turbo",
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Timeout:  60 * time.Second,
			MaxURLs:  MaxAnalysisURLs,
		},
		History: History{
			Path: DefaultHistoryPath(),
		},
		Tools:    map[string]string{},
		LogLevel: "warn",
	}
}

// DefaultHistoryPath returns $XDG_DATA_HOME/webenum/history.db.
func DefaultHistoryPath() string {
	return filepath.Join(xdg.DataHome, AppName, "history.db")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/webenum.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ToolPath returns the binary configured for tool, or the tool name itself.
func (c Config) ToolPath(tool string) string {
	if p := strings.TrimSpace(c.Tools[tool]); p != "" {
		return p
	}
	return tool
}

// Load builds the configuration: defaults -> config file -> ENV -> flags.
// Only flags the user actually set override earlier layers. fs must have
// been populated by RegisterFlags and already parsed.
func Load(fs *pflag.FlagSet) (Config, error) {
	cfg := DefaultConfig()

	explicit := getenv("WEBENUM_CONFIG", "")
	if fs != nil {
		if f := fs.Lookup(FlagConfig); f != nil && f.Changed {
			explicit = f.Value.String()
		}
	}

	if path := FindConfigFile(explicit); path != "" {
		file, err := LoadConfigFile(path)
		if err != nil {
			return cfg, errors.Wrapf(err, "config file %s", path)
		}
		file.apply(&cfg)
		cfg.ConfigFile = path
	} else if explicit != "" {
		return cfg, errors.Wrapf(ErrConfigNotFound, "config file %s", explicit)
	}

	loadFromEnv(&cfg)

	if fs != nil {
		if err := loadFromFlags(fs, &cfg); err != nil {
			return cfg, err
		}
	}

	normalize(&cfg)

	return cfg, nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv("WEBENUM_DOMAIN", ""); v != "" {
		cfg.Target = v
	}
	if v := getenv("WEBENUM_OUTPUT", ""); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("WEBENUM_BURP_PROXY", ""); v != "" {
		cfg.Proxy = v
	}
	if v := getenv("WEBENUM_DRY_RUN", ""); v != "" {
		cfg.DryRun = parseBool(v)
	}

	if v := getenv("WEBENUM_LLM", ""); v != "" {
		cfg.Analysis.Enabled = parseBool(v)
	}
	if v := getenv("WEBENUM_LLM_API_KEY", ""); v != "" {
		cfg.Analysis.APIKey = v
	}
	if v := getenv("WEBENUM_LLM_MODEL", ""); v != "" {
		cfg.Analysis.Model = v
	}
	if v := getenv("WEBENUM_LLM_ENDPOINT", ""); v != "" {
		cfg.Analysis.Endpoint = v
	}
	if v := getenv("WEBENUM_LLM_TIMEOUT", ""); v != "" {
		cfg.Analysis.Timeout = time.Duration(parseInt(v, int(cfg.Analysis.Timeout/time.Second))) * time.Second
	}

	if v := getenv("WEBENUM_HISTORY", ""); v != "" {
		cfg.History.Enabled = parseBool(v)
	}
	if v := getenv("WEBENUM_HISTORY_PATH", ""); v != "" {
		cfg.History.Path = v
	}

	if v := getenv("WEBENUM_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("WEBENUM_NO_COLOR", ""); v != "" {
		cfg.NoColor = parseBool(v)
	}
	if v := getenv("WEBENUM_RAW", ""); v != "" {
		cfg.Raw = parseBool(v)
	}
}

// normalize limpia valores inconsistentes.
func normalize(cfg *Config) {
	cfg.Target = validator.NormalizeDomain(cfg.Target)
	cfg.DomainFile = strings.TrimSpace(cfg.DomainFile)
	cfg.Proxy = strings.TrimSpace(cfg.Proxy)

	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	if cfg.OutputDir == "" {
		cfg.OutputDir = "results"
	}

	if cfg.Analysis.MaxURLs <= 0 || cfg.Analysis.MaxURLs > MaxAnalysisURLs {
		cfg.Analysis.MaxURLs = MaxAnalysisURLs
	}
	if cfg.Analysis.Timeout <= 0 {
		cfg.Analysis.Timeout = 60 * time.Second
	}
	if strings.TrimSpace(cfg.Analysis.Model) == "" {
		cfg.Analysis.Model = "gpt-3.5-turbo"
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = DefaultHistoryPath()
	}

	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]string{}
	}
}

// Validate checks the configuration. A domain file is always rejected since
// only single domain runs are supported.
func (c Config) Validate() error {
	if c.DomainFile != "" {
		return domain.ErrMultiDomainUnsupported
	}
	if _, err := domain.NewTarget(c.Target); err != nil {
		return err
	}
	if c.Proxy != "" && !validator.IsHostPort(c.Proxy) {
		return errors.Wrapf(ErrInvalidProxy, "%q", c.Proxy)
	}
	if c.Analysis.Enabled && strings.TrimSpace(c.Analysis.Endpoint) == "" {
		return ErrInvalidEndpoint
	}
	return nil
}

// Helpers

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
