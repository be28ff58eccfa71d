// Package config resolves playback settings from defaults, an optional YAML
// file and command-line flags, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/oukeidos/playback/internal/apperrors"
	"github.com/oukeidos/playback/internal/logger"
	"github.com/oukeidos/playback/internal/overlay"
)

const (
	DefaultTitle    = "Playback"
	DefaultLogLevel = "info"
	MaxHideDelay    = 10 * time.Minute
)

// Config is the effective playback configuration.
type Config struct {
	HideDelay  time.Duration `yaml:"hide_delay"`
	Source     string        `yaml:"source,omitempty"`
	Title      string        `yaml:"title"`
	Fullscreen bool          `yaml:"fullscreen"`
	LogLevel   string        `yaml:"log_level"`
	LogFile    string        `yaml:"log_file,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		HideDelay: overlay.DefaultHideDelay,
		Title:     DefaultTitle,
		LogLevel:  DefaultLogLevel,
	}
}

// Validate reports the first invalid field as a KindConfig error.
func (c Config) Validate() error {
	if c.HideDelay <= 0 {
		return apperrors.Config(fmt.Sprintf("hide delay must be positive, got %s", c.HideDelay), nil)
	}
	if c.HideDelay > MaxHideDelay {
		return apperrors.Config(fmt.Sprintf("hide delay %s exceeds the maximum of %s", c.HideDelay, MaxHideDelay), nil)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return apperrors.Config(err.Error(), err)
	}
	return nil
}

// Merge decodes YAML from r on top of c. Unknown keys are rejected.
func (c *Config) Merge(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Config("config file could not be parsed", err)
	}
	return nil
}

// LoadFile merges the YAML file at path on top of c.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return apperrors.Config("config file could not be opened", err)
	}
	defer f.Close()
	return c.Merge(f)
}

// YAML renders c as a YAML document.
func (c Config) YAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Flags holds the command-line overrides registered on a flag set.
type Flags struct {
	fs     *pflag.FlagSet
	path   string
	values Config
}

// AddFlags registers the shared playback flags on fs.
func AddFlags(fs *pflag.FlagSet) *Flags {
	def := Default()
	f := &Flags{fs: fs}
	fs.StringVar(&f.path, "config", "", "YAML config file")
	fs.DurationVar(&f.values.HideDelay, "hide-delay", def.HideDelay, "Hide overlays after this much pointer inactivity")
	fs.StringVar(&f.values.Title, "title", def.Title, "Window title")
	fs.BoolVar(&f.values.Fullscreen, "fullscreen", false, "Start in fullscreen")
	fs.StringVar(&f.values.LogLevel, "log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&f.values.LogFile, "log-file", "", "Append JSONL logs to this file")
	return f
}

// Resolve builds the effective configuration. source, when non-empty,
// overrides the media source from the file.
func (f *Flags) Resolve(source string) (Config, error) {
	cfg := Default()
	if f.path != "" {
		if err := cfg.LoadFile(f.path); err != nil {
			return cfg, err
		}
	}
	if f.fs.Changed("hide-delay") {
		cfg.HideDelay = f.values.HideDelay
	}
	if f.fs.Changed("title") {
		cfg.Title = f.values.Title
	}
	if f.fs.Changed("fullscreen") {
		cfg.Fullscreen = f.values.Fullscreen
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.values.LogLevel
	}
	if f.fs.Changed("log-file") {
		cfg.LogFile = f.values.LogFile
	}
	if s := strings.TrimSpace(source); s != "" {
		cfg.Source = s
	}
	if strings.TrimSpace(cfg.Title) == "" {
		cfg.Title = DefaultTitle
	}
	return cfg, cfg.Validate()
}

// ConfigPath returns the --config value.
func (f *Flags) ConfigPath() string { return f.path }

// Explicit reports whether the user set the named flag.
func (f *Flags) Explicit(name string) bool { return f.fs.Changed(name) }
