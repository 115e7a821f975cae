package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/noders-team/thyming/pkg/timer"
)

// Config holds the CLI settings that can be provided through a YAML file.
type Config struct {
	Name      string `yaml:"name"`
	Format    string `yaml:"format"`
	Precision int    `yaml:"precision"`
	Repeat    int    `yaml:"repeat"`
	LogLevel  string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Format:    timer.DefaultFormat,
		Precision: timer.DefaultPrecision,
		Repeat:    1,
		LogLevel:  zerolog.LevelInfoValue,
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Precision < 0 || c.Precision > 9 {
		return fmt.Errorf("precision must be between 0 and 9, got %d", c.Precision)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1, got %d", c.Repeat)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// TimerOptions converts the config into options for timer.New.
func (c Config) TimerOptions() []timer.Option {
	return []timer.Option{
		timer.WithName(c.Name),
		timer.WithFormat(c.Format),
		timer.WithPrecision(c.Precision),
	}
}
