package config

import "time"

// Config is the top-level winefonts configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog" yaml:"catalog"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	HTTP     HTTPConfig     `mapstructure:"http" yaml:"http"`
	Install  InstallConfig  `mapstructure:"install" yaml:"install"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// CatalogConfig says where the font catalog comes from.
type CatalogConfig struct {
	URL  string `mapstructure:"url" yaml:"url"`   // remote index fetched by `fetch`
	Path string `mapstructure:"path" yaml:"path"` // local file that overrides the cached copy
}

// DefaultsConfig holds default values for operations.
type DefaultsConfig struct {
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir"`
	FontsDir string `mapstructure:"fonts_dir" yaml:"fonts_dir"`
	Format   string `mapstructure:"format" yaml:"format"` // "json" or "yaml"
}

// HTTPConfig tunes the download client.
type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// InstallConfig controls font extraction.
type InstallConfig struct {
	Cabextract string `mapstructure:"cabextract" yaml:"cabextract"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// EffectiveCatalogPath returns the catalog file read commands should use:
// the explicit override if set, otherwise cached (the fetched index).
func (c *Config) EffectiveCatalogPath(cached string) string {
	if c.Catalog.Path != "" {
		return c.Catalog.Path
	}
	return cached
}

// EffectiveCabextract returns the cabextract binary to run.
func (i InstallConfig) EffectiveCabextract() string {
	if i.Cabextract != "" {
		return i.Cabextract
	}
	return "cabextract"
}
