// Package config loads the optional mdsite YAML configuration file.
//
// Values from the file sit between command-line flags and built-in defaults:
// a flag that is set always wins, a file value fills in what flags leave
// empty.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
)

// DefaultPath is read when no config file is named explicitly.
const DefaultPath = "mdsite.yaml"

// Config is the content of the configuration file.
type Config struct {
	Template        string         `yaml:"template,omitempty"`
	OutputExtension string         `yaml:"output_extension,omitempty"`
	Recurse         bool           `yaml:"recurse,omitempty"`
	GitDates        bool           `yaml:"git_dates,omitempty"`
	Extensions      []string       `yaml:"extensions,omitempty"` // source file extensions
	Markdown        MarkdownConfig `yaml:"markdown,omitempty"`
	Feed            FeedConfig     `yaml:"feed,omitempty"`
	Log             LogConfig      `yaml:"log,omitempty"`
}

// MarkdownConfig selects Markdown extensions by name.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions,omitempty"`
}

// FeedConfig holds channel metadata for the rss command.
type FeedConfig struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	URL         string `yaml:"url,omitempty"`
	Limit       int    `yaml:"limit,omitempty"`
}

// LogConfig controls logging when no flag overrides it.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Load reads the configuration at path after loading .env files into the
// environment. ${VAR} references in the file are expanded.
//
// A missing file is not an error unless explicit is set; the empty Config is
// returned instead.
func Load(path string, explicit bool) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return &Config{}, nil
		}
		return nil, ferrors.FromPathError(err, path, "cannot read configuration file")
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := ferrors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes configuration content. Unknown keys are rejected so typos do
// not go unnoticed.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.ConfigError("invalid configuration file").WithCause(err).Build()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if _, err := logLevelNormalizer.Parse(c.Log.Level); err != nil {
		return ferrors.ConfigError("invalid log.level").WithCause(err).Build()
	}
	if _, err := logFormatNormalizer.Parse(c.Log.Format); err != nil {
		return ferrors.ConfigError("invalid log.format").WithCause(err).Build()
	}
	if c.Feed.Limit < 0 {
		return ferrors.ConfigError("feed.limit must not be negative").
			WithContext("value", c.Feed.Limit).
			Build()
	}
	return nil
}
