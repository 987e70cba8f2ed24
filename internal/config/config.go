package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	Security   SecurityConfig   `yaml:"security" envconfig:"SECURITY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	CacheTTL        time.Duration `yaml:"cache_ttl" envconfig:"CACHE_TTL" default:"5m"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ConfigDir     string `yaml:"config_dir" envconfig:"CONFIG_DIR" default:"config"`
	OutputDir     string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"output"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// ExtractionConfig tunes the column-pairing heuristic. The defaults match the
// behavior of result sheets observed so far; borderline tables may need a
// lower threshold or a wider window.
type ExtractionConfig struct {
	Strategy       string  `yaml:"strategy" envconfig:"STRATEGY" default:"multi"`
	MatchThreshold float64 `yaml:"match_threshold" envconfig:"MATCH_THRESHOLD" default:"0.3"`
	SampleWindow   int     `yaml:"sample_window" envconfig:"SAMPLE_WINDOW" default:"20"`
	HeaderScanRows int     `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS" default:"5"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("GRADECLI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.CacheTTL == 0 {
		envConfig.Server.CacheTTL = fileConfig.Server.CacheTTL
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Paths.ConfigDir == "" {
		envConfig.Paths.ConfigDir = fileConfig.Paths.ConfigDir
	}
	if envConfig.Paths.OutputDir == "" {
		envConfig.Paths.OutputDir = fileConfig.Paths.OutputDir
	}
	if envConfig.Extraction.Strategy == "" {
		envConfig.Extraction.Strategy = fileConfig.Extraction.Strategy
	}
	if envConfig.Extraction.MatchThreshold == 0 {
		envConfig.Extraction.MatchThreshold = fileConfig.Extraction.MatchThreshold
	}
	if envConfig.Extraction.SampleWindow == 0 {
		envConfig.Extraction.SampleWindow = fileConfig.Extraction.SampleWindow
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Extraction.Strategy {
	case "single", "multi":
	default:
		return fmt.Errorf("invalid extraction strategy: %q (want single or multi)", c.Extraction.Strategy)
	}

	if c.Extraction.MatchThreshold <= 0 || c.Extraction.MatchThreshold > 1 {
		return fmt.Errorf("extraction match threshold must be in (0, 1], got %v", c.Extraction.MatchThreshold)
	}

	if c.Extraction.SampleWindow <= 0 {
		return fmt.Errorf("extraction sample window must be positive")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"config/config.yaml",
		"../config/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			CacheTTL:        5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:   "data",
			ConfigDir: "config",
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Extraction: ExtractionConfig{
			Strategy:       "multi",
			MatchThreshold: 0.3,
			SampleWindow:   20,
			HeaderScanRows: 5,
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
	}
}
