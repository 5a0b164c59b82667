package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/Nomadcxx/mediasort/internal/media"
	"github.com/Nomadcxx/mediasort/internal/scanner"
)

// Config holds all mediasort configuration
type Config struct {
	Paths PathsConfig `toml:"paths"`
	Scan  ScanConfig  `toml:"scan"`
	Log   LogConfig   `toml:"log"`
}

// PathsConfig defines where media is picked up and organized to
type PathsConfig struct {
	Downloads string `toml:"downloads"` // incoming files to sort
	Media     string `toml:"media"`     // organized library root
	Reports   string `toml:"reports"`   // scan reports, empty for the default data dir
}

// ScanConfig holds discovery and grouping settings
type ScanConfig struct {
	MediaExtensions     []string `toml:"media_extensions"`
	SimilarityThreshold float64  `toml:"similarity_threshold"`
	Workers             int      `toml:"workers"` // 0 = one per CPU
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			MediaExtensions:     append([]string{}, scanner.DefaultExtensions...),
			SimilarityThreshold: media.DefaultThreshold,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "mediasort", "config.toml"), nil
}

// Load reads the default config file, creating it with defaults if it
// doesn't exist
func Load() (*Config, error) {
	configFile, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configFile)
}

// LoadFrom reads the config at path, creating it with defaults if it
// doesn't exist. Keys missing from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveTo(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// Save writes the config to the default location
func Save(cfg *Config) error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, configFile)
}

// SaveTo writes the config to path, creating its directory
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Scan.SimilarityThreshold <= 0 || c.Scan.SimilarityThreshold > 1 {
		return fmt.Errorf("invalid similarity threshold: %v (must be in (0, 1])", c.Scan.SimilarityThreshold)
	}

	if len(scanner.ExtensionSet(c.Scan.MediaExtensions)) == 0 {
		return fmt.Errorf("no media extensions configured")
	}

	if c.Scan.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Scan.Workers)
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	for _, path := range []string{c.Paths.Downloads, c.Paths.Media} {
		if path == "" {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("path %s: %w", path, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("path %s is not a directory", path)
		}
	}

	return nil
}

// SetDownloadsPath sets the directory new media is picked up from
func (c *Config) SetDownloadsPath(path string) error {
	if err := checkDir(path); err != nil {
		return err
	}
	c.Paths.Downloads = path
	return nil
}

// SetMediaPath sets the organized library root
func (c *Config) SetMediaPath(path string) error {
	if err := checkDir(path); err != nil {
		return err
	}
	c.Paths.Media = path
	return nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// AddExtension adds a media extension ("mkv" or ".mkv")
func (c *Config) AddExtension(ext string) error {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return fmt.Errorf("empty extension")
	}
	if scanner.ExtensionSet(c.Scan.MediaExtensions)[ext] {
		return fmt.Errorf("extension already configured: %s", ext)
	}

	c.Scan.MediaExtensions = append(c.Scan.MediaExtensions, ext)
	sort.Strings(c.Scan.MediaExtensions)
	return nil
}

// RemoveExtension removes a media extension
func (c *Config) RemoveExtension(ext string) error {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	for i, existing := range c.Scan.MediaExtensions {
		if strings.EqualFold(strings.TrimPrefix(existing, "."), ext) {
			c.Scan.MediaExtensions = append(c.Scan.MediaExtensions[:i], c.Scan.MediaExtensions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("extension not found: %s", ext)
}

// Roots returns the configured scan roots in order: downloads, then media
func (c *Config) Roots() []string {
	var roots []string
	for _, path := range []string{c.Paths.Downloads, c.Paths.Media} {
		if path != "" {
			roots = append(roots, path)
		}
	}
	return roots
}

// ScanOptions converts the scan settings for the scanner
func (c *Config) ScanOptions() scanner.Options {
	opts := scanner.DefaultOptions()
	if len(c.Scan.MediaExtensions) > 0 {
		opts.Extensions = c.Scan.MediaExtensions
	}
	if c.Scan.SimilarityThreshold > 0 {
		opts.Threshold = c.Scan.SimilarityThreshold
	}
	if c.Scan.Workers > 0 {
		opts.Workers = c.Scan.Workers
	}
	return opts
}
