package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/nt-version/internal/logger"
)

// Config holds the settings shared by the ntver commands.
type Config struct {
	// ServerAddress is the remote ntver server queried instead of the local kernel.
	ServerAddress string `yaml:"server_addr,omitempty"`
	// ListenAddress is the gRPC listen address used by `ntver serve`.
	ListenAddress string `yaml:"listen_addr,omitempty"`
	// MetricsAddress enables the Prometheus /metrics listener when set.
	MetricsAddress string `yaml:"metrics_addr,omitempty"`
	// ReportFile is where `--save` writes the report when no path is given.
	ReportFile string `yaml:"report_file,omitempty"`
	// Output selects the rendering: text, json or yaml.
	Output string `yaml:"output"`
	// LogLevel is the minimum level written to stderr.
	LogLevel string `yaml:"log_level"`
	// Timeout bounds every RPC.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is the default filename for ntver settings.
	DefaultConfigFilename = "ntver.yaml"

	// DefaultReportFilename is the default filename for saved reports.
	DefaultReportFilename = "ntver-report.json"

	// DefaultListenAddress is where `ntver serve` listens when nothing is configured.
	DefaultListenAddress = ":50551"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultFilePermissions is the file mode for settings and reports.
	DefaultFilePermissions = 0o600

	// OutputText renders "major.minor.build".
	OutputText = "text"
	// OutputJSON renders the report as protobuf JSON.
	OutputJSON = "json"
	// OutputYAML renders the report as YAML.
	OutputYAML = "yaml"
)

var (
	// ErrUnknownOutput is returned for output formats other than text, json and yaml.
	ErrUnknownOutput = errors.New("unknown output format")
	// ErrUnknownLogLevel is returned when log_level cannot be parsed.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
)

// Default returns a validated configuration with every default filled in.
func Default() *Config {
	cfg := new(Config)

	// Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is like Load but returns Default when the file does not exist.
// Querying the local kernel needs no settings at all.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save validates cfg and writes it to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks field formats and fills defaults for empty fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	for name, addr := range map[string]string{
		"server address":  cfg.ServerAddress,
		"listen address":  cfg.ListenAddress,
		"metrics address": cfg.MetricsAddress,
	} {
		if err := ValidateAddress(addr); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	if cfg.Output == "" {
		cfg.Output = OutputText
	}

	if err := ValidateOutput(cfg.Output); err != nil {
		return err
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, cfg.LogLevel)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if cfg.ReportFile == "" {
		cfg.ReportFile = DefaultReportFilename
	}

	return nil
}

// ValidateOutput accepts text, json and yaml.
func ValidateOutput(output string) error {
	if !slices.Contains([]string{OutputText, OutputJSON, OutputYAML}, output) {
		return fmt.Errorf("%w: %q", ErrUnknownOutput, output)
	}

	return nil
}

// ValidateAddress accepts an empty string or a host:port pair.
func ValidateAddress(addr string) error {
	if addr == "" {
		return nil
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		return err
	}

	return nil
}
