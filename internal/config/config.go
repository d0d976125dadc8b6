package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`

	// HTTP
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent"`

	// Browser
	Browser     string `yaml:"browser"`
	BrowserPath string `yaml:"browser_path"`
	Headless    bool   `yaml:"headless"`

	// Search
	SearchBaseURL    string        `yaml:"search_base_url"`
	ScrollWait       time.Duration `yaml:"scroll_wait"`
	ScrollScript     string        `yaml:"scroll_script"`
	MaxScrollRounds  int           `yaml:"max_scroll_rounds"`
	ShowMoreButtonID string        `yaml:"show_more_button_id"`
	MetaSelector     string        `yaml:"meta_selector"`
	MetaURLKey       string        `yaml:"meta_url_key"`

	// Download
	OutputDir  string `yaml:"output_dir"`
	Extensions string `yaml:"extensions"` // comma-separated allow-list, empty = all
	Limit      int    `yaml:"limit"`
}

// Load builds a Config by layering defaults, an optional YAML config file,
// a .env file plus environment variables, and finally CLI flags.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		LogLevel:        DefaultLogLevel,
		JSONLog:         DefaultJSONLog,
		HTTPTimeout:     DefaultHTTPTimeout,
		UserAgent:       DefaultUserAgent,
		Browser:         DefaultBrowser,
		Headless:        DefaultHeadless,
		ScrollWait:      DefaultScrollWait,
		MaxScrollRounds: DefaultMaxScrollRounds,
		OutputDir:       DefaultOutputDir,
		Extensions:      DefaultExtensions,
	}

	// Optional config file, path from flag or env
	configPath := ""
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil {
			configPath = f.Value.String()
		}
	}
	if configPath == "" {
		configPath = os.Getenv("IMGSCRAPE_CONFIG")
	}
	if configPath != "" {
		if err := loadFile(cfg, configPath); err != nil {
			return nil, err
		}
	}

	// .env is optional; missing file is fine
	_ = godotenv.Load()
	applyEnv(cfg)

	// CLI flags win
	if cmd != nil {
		applyFlags(cfg, cmd)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("IMGSCRAPE_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("IMGSCRAPE_BROWSER"); v != "" {
		cfg.Browser = v
	}
	if v := os.Getenv("IMGSCRAPE_BROWSER_PATH"); v != "" {
		cfg.BrowserPath = v
	}
	if v := os.Getenv("IMGSCRAPE_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("IMGSCRAPE_EXTENSIONS"); v != "" {
		cfg.Extensions = v
	}
	if v := os.Getenv("IMGSCRAPE_SEARCH_BASE_URL"); v != "" {
		cfg.SearchBaseURL = v
	}
	if v := os.Getenv("IMGSCRAPE_SCROLL_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ScrollWait = d
		}
	}
	if v := os.Getenv("IMGSCRAPE_SCROLL_SCRIPT"); v != "" {
		cfg.ScrollScript = v
	}
	if v := os.Getenv("IMGSCRAPE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Limit = n
		}
	}
}

func applyFlags(cfg *Config, cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("user-agent"); f != nil {
		if s := f.Value.String(); s != "" {
			cfg.UserAgent = s
		}
	}
	if f := cmd.Flags().Lookup("browser"); f != nil {
		if s := f.Value.String(); s != "" {
			cfg.Browser = s
		}
	}
	if f := cmd.Flags().Lookup("browser-path"); f != nil {
		if s := f.Value.String(); s != "" {
			cfg.BrowserPath = s
		}
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil {
		if s := f.Value.String(); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.HTTPTimeout = d
			}
		}
	}
	if f := cmd.Flags().Lookup("json"); f != nil {
		if f.Value.String() == "true" {
			cfg.JSONLog = true
		}
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil {
		if f.Value.String() == "true" {
			cfg.LogLevel = "debug"
		}
	}
	if f := cmd.Flags().Lookup("quiet"); f != nil {
		if f.Value.String() == "true" {
			cfg.LogLevel = "error"
		}
	}
	if f := cmd.Flags().Lookup("no-headless"); f != nil {
		if f.Value.String() == "true" {
			cfg.Headless = false
		}
	}
}
