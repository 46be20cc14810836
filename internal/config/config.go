package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "winefonts", "config.yml")
}

// Path returns the config file in effect: WINEFONTS_CONFIG or the default.
func Path() string {
	if p := os.Getenv("WINEFONTS_CONFIG"); p != "" {
		return p
	}
	return DefaultPath()
}

// Load reads the config from disk (or env). A missing file is not an
// error; defaults apply.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at configPath, layered over defaults and
// WINEFONTS_* environment variables.
func LoadFrom(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.path", "")
	v.SetDefault("defaults.cache_dir", defaultCacheDir())
	v.SetDefault("defaults.fonts_dir", defaultFontsDir())
	v.SetDefault("defaults.format", "json")
	v.SetDefault("http.timeout", 5*time.Minute)
	v.SetDefault("http.user_agent", "winefonts")
	v.SetDefault("install.cabextract", "cabextract")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("WINEFONTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Defaults.CacheDir = ExpandHome(cfg.Defaults.CacheDir)
	cfg.Defaults.FontsDir = ExpandHome(cfg.Defaults.FontsDir)
	cfg.Catalog.Path = ExpandHome(cfg.Catalog.Path)

	return &cfg, nil
}

// Save writes the config to path as YAML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func defaultCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "winefonts")
}

func defaultFontsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "winefonts", "fonts")
}
