package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/nikbrunner/bmdash/internal/favicon"
)

var (
	ErrInvalidBackend = errors.New("invalid state backend")
	ErrInvalidFormat  = errors.New("invalid bookmarks format")
)

// Config holds application configuration.
type Config struct {
	Bookmarks BookmarksConfig `mapstructure:"bookmarks"`
	State     StateConfig     `mapstructure:"state"`
	Favicon   FaviconConfig   `mapstructure:"favicon"`
	Log       LogConfig       `mapstructure:"log"`
	Watch     bool            `mapstructure:"watch"`
}

// BookmarksConfig locates the host bookmark tree.
type BookmarksConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"` // auto, chrome, html
}

// StateConfig selects where collapse state is persisted.
type StateConfig struct {
	Backend string `mapstructure:"backend"` // json, sqlite
	Path    string `mapstructure:"path"`
}

// FaviconConfig describes the favicon resolution endpoint.
type FaviconConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Size     int    `mapstructure:"size"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix BMDASH_.
// The file is $BMDASH_CONFIG or ~/.config/bmdash/config.toml; a missing file
// means defaults.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("home dir: %w", err)
	}

	v := viper.New()
	setDefaults(v, home)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("BMDASH_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "bmdash"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BMDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return decode(v, home)
}

func setDefaults(v *viper.Viper, home string) {
	v.SetDefault("bookmarks.path", DefaultBookmarksPath(home, runtime.GOOS))
	v.SetDefault("bookmarks.format", "auto")
	v.SetDefault("state.backend", "json")
	v.SetDefault("state.path", "")
	v.SetDefault("favicon.endpoint", favicon.DefaultEndpoint)
	v.SetDefault("favicon.size", favicon.DefaultSize)
	v.SetDefault("watch", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

func decode(v *viper.Viper, home string) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	switch c.State.Backend {
	case "json", "sqlite":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidBackend, c.State.Backend)
	}
	switch c.Bookmarks.Format {
	case "auto", "chrome", "html":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrInvalidFormat, c.Bookmarks.Format)
	}

	// Apply defaults that depend on other fields
	if c.State.Path == "" {
		name := "state.json"
		if c.State.Backend == "sqlite" {
			name = "state.db"
		}
		c.State.Path = filepath.Join(home, ".config", "bmdash", name)
	}
	if c.Favicon.Size <= 0 {
		c.Favicon.Size = favicon.DefaultSize
	}

	c.Bookmarks.Path = expandHome(c.Bookmarks.Path, home)
	c.State.Path = expandHome(c.State.Path, home)
	c.Log.File = expandHome(c.Log.File, home)

	return c, nil
}

// DefaultBookmarksPath returns the Chromium default-profile Bookmarks file
// for the given OS.
func DefaultBookmarksPath(home, goos string) string {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default", "Bookmarks")
	case "windows":
		return filepath.Join(home, "AppData", "Local", "Google", "Chrome", "User Data", "Default", "Bookmarks")
	default:
		return filepath.Join(home, ".config", "google-chrome", "Default", "Bookmarks")
	}
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
