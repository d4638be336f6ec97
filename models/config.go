package models

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AnalyzePath is the classifier route every request is sent to.
const AnalyzePath = "/analyze"

type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Client  ClientConfig  `json:"client" yaml:"client"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	History HistoryConfig `json:"history" yaml:"history"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	Output  OutputConfig  `json:"output" yaml:"output"`
}

type ServerConfig struct {
	// Endpoint is the classifier base URL, e.g. "http://127.0.0.1:5000".
	Endpoint string `json:"endpoint" yaml:"endpoint"`
}

type ClientConfig struct {
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent string        `json:"user_agent" yaml:"user_agent"`
}

type UIConfig struct {
	DefaultMode Mode `json:"default_mode" yaml:"default_mode"`
	AltScreen   bool `json:"alt_screen" yaml:"alt_screen"`
}

type HistoryConfig struct {
	MaxEntries int           `json:"max_entries" yaml:"max_entries"`
	TTL        time.Duration `json:"ttl" yaml:"ttl"`
}

type LoggingConfig struct {
	// File receives diagnostics while the TUI owns the terminal. Empty
	// means DefaultLogFile inside the output directory.
	File string `json:"file" yaml:"file"`
}

// DefaultLogFile is the TUI log name used when no file is configured.
const DefaultLogFile = "threatscope.log"

type OutputConfig struct {
	Dir string `json:"dir" yaml:"dir"`
}

// Environment variables that override the config file.
const (
	EnvEndpoint = "THREATSCOPE_ENDPOINT"
	EnvTimeout  = "THREATSCOPE_TIMEOUT"
	EnvLogFile  = "THREATSCOPE_LOG_FILE"
)

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Endpoint: "http://127.0.0.1:5000",
		},
		Client: ClientConfig{
			Timeout:   30 * time.Second,
			UserAgent: "threatscope/1.0",
		},
		UI: UIConfig{
			DefaultMode: ModeEmail,
			AltScreen:   true,
		},
		History: HistoryConfig{
			MaxEntries: 50,
			TTL:        time.Hour,
		},
		Output: OutputConfig{
			Dir: "outputs",
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults and then
// applies .env and environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, &ConfigError{Field: "file", Message: "parse " + path + ": " + err.Error()}
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		c.Server.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigError{Field: EnvTimeout, Message: err.Error()}
		}
		c.Client.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.Logging.File = v
	}
	return nil
}

// Validate checks required fields and fills zero values with defaults.
func (c *Config) Validate() error {
	def := DefaultConfig()

	c.Server.Endpoint = strings.TrimRight(strings.TrimSpace(c.Server.Endpoint), "/")
	if c.Server.Endpoint == "" {
		return &ConfigError{Field: "server.endpoint", Message: "classifier endpoint is required"}
	}
	u, err := url.Parse(c.Server.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "server.endpoint", Message: "must be an http(s) URL, got " + c.Server.Endpoint}
	}

	if c.Client.Timeout <= 0 {
		c.Client.Timeout = def.Client.Timeout
	}
	if c.Client.UserAgent == "" {
		c.Client.UserAgent = def.Client.UserAgent
	}
	if !c.UI.DefaultMode.Valid() {
		return &ConfigError{Field: "ui.default_mode", Message: "must be email or url"}
	}
	if c.History.MaxEntries <= 0 {
		c.History.MaxEntries = def.History.MaxEntries
	}
	if c.History.TTL <= 0 {
		c.History.TTL = def.History.TTL
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}

	return nil
}

// LogPath is where the TUI writes diagnostics.
func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.Output.Dir, DefaultLogFile)
}

// AnalyzeURL is the full URL of the classifier route.
func (c *Config) AnalyzeURL() string {
	return c.Server.Endpoint + AnalyzePath
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
