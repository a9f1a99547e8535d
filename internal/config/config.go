// Package config loads the pipeline and server configuration from command
// line flags and TNCUTOFFS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants for the MCP server binary
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB
	DefaultCacheDir    = "cache"
	DefaultOutputPath  = "data/tn_cutoffs.json"
)

// Config holds all configuration for the cutoffs pipeline and MCP server
type Config struct {
	// Pipeline configuration
	DocumentsDirectory string
	CacheDirectory     string
	OutputPath         string

	// Server configuration (MCP binary only)
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum source document size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		DocumentsDirectory: currentDir,
		CacheDirectory:     DefaultCacheDir,
		OutputPath:         DefaultOutputPath,
		Mode:               ModeStdio,
		Host:               DefaultHost,
		Port:               DefaultPort,
		Version:            "1.0.0",
		ServerName:         "tncutoffs",
		LogLevel:           DefaultLogLevel,
		MaxFileSize:        DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	// Expand paths if needed
	if cfg.DocumentsDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.DocumentsDirectory); err == nil {
			cfg.DocumentsDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("TNCUTOFFS")
	viper.AutomaticEnv()

	viper.SetDefault("docs", cfg.DocumentsDirectory)
	viper.SetDefault("cachedir", cfg.CacheDirectory)
	viper.SetDefault("output", cfg.OutputPath)
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("docs", cfg.DocumentsDirectory, "Directory containing the allotment PDF documents")
	pflag.String("cachedir", cfg.CacheDirectory, "Directory for cached parse results")
	pflag.String("output", cfg.OutputPath, "Output JSON file path")
	pflag.String("mode", cfg.Mode, "MCP server mode: 'stdio' or 'server'")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum source document size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("docs", pflag.Lookup("docs"))
	_ = viper.BindPFlag("cachedir", pflag.Lookup("cachedir"))
	_ = viper.BindPFlag("output", pflag.Lookup("output"))
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ntncutoffs - TN admission allotment PDFs to cutoff summaries\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s --docs=/path/to/pdfs                       # parse and write %s\n",
			os.Args[0], DefaultOutputPath)
		fmt.Fprintf(os.Stderr, "  %s --docs=/path/to/pdfs --output=out.json     # custom output path\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_DOCS         Documents directory\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_CACHEDIR     Cache directory\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_OUTPUT       Output JSON path\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_MODE         MCP server mode\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_HOST         Server host\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_PORT         Server port\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  TNCUTOFFS_MAXFILESIZE  Maximum document size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.DocumentsDirectory = viper.GetString("docs")
	cfg.CacheDirectory = viper.GetString("cachedir")
	cfg.OutputPath = viper.GetString("output")
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.DocumentsDirectory == "" {
		return errors.New("documents directory cannot be empty")
	}
	if c.CacheDirectory == "" {
		return errors.New("cache directory cannot be empty")
	}
	if c.OutputPath == "" {
		return errors.New("output path cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Docs: %s, CacheDir: %s, Output: %s, Mode: %s, LogLevel: %s, MaxFileSize: %d}",
		c.DocumentsDirectory, c.CacheDirectory, c.OutputPath, c.Mode, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the MCP server runs in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the MCP server runs in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
