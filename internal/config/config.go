package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/on321go/wildkinCards/internal/mathgame"
)

const (
	ModeMemory = "memory"
	ModeFile   = "file"
)

type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Content ContentConfig `yaml:"content" json:"content"`
	History HistoryConfig `yaml:"history" json:"history"`
	Math    MathConfig    `yaml:"math" json:"math"`
	Reading ReadingConfig `yaml:"reading" json:"reading"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" env:"WILDKIN_ADDR"`
}

type StorageConfig struct {
	// Mode picks where the reward tracker and album live: "memory"
	// resets each sitting, "file" persists under DataDir.
	Mode    string `yaml:"mode" json:"mode" env:"WILDKIN_STORAGE_MODE"`
	DataDir string `yaml:"data_dir" json:"data_dir" env:"WILDKIN_DATA_DIR"`
}

type ContentConfig struct {
	// Dir overrides the embedded creature and passage set, for
	// authoring content without a rebuild.
	Dir string `yaml:"dir" json:"dir" env:"WILDKIN_CONTENT_DIR"`
}

type HistoryConfig struct {
	Disabled bool   `yaml:"disabled" json:"disabled" env:"WILDKIN_HISTORY_DISABLED"`
	Path     string `yaml:"path" json:"path" env:"WILDKIN_HISTORY_PATH"`
}

type MathConfig struct {
	Levels []mathgame.Level `yaml:"levels" json:"levels"`
}

type ReadingConfig struct {
	MaxColumns int `yaml:"max_columns" json:"max_columns" env:"WILDKIN_READING_COLS"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8414"
	}
	if c.Storage.Mode == "" {
		c.Storage.Mode = ModeMemory
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.Storage.DataDir, "history.db")
	}
	if len(c.Math.Levels) == 0 {
		c.Math.Levels = mathgame.DefaultLevels()
	}
	if c.Reading.MaxColumns <= 0 {
		c.Reading.MaxColumns = 28
	}
}

func (c *Config) Validate() error {
	if c.Storage.Mode != ModeMemory && c.Storage.Mode != ModeFile {
		return fmt.Errorf("config: unknown storage mode %q", c.Storage.Mode)
	}
	for _, l := range c.Math.Levels {
		if l.Level < 1 || l.MaxOperand < 1 || len(l.Operators) == 0 {
			return fmt.Errorf("config: invalid math level %+v", l)
		}
	}
	return nil
}

// Default is the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// ParseEnv overlays WILDKIN_* environment variables onto the config.
// The environment wins over the file.
func ParseEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	c.ApplyDefaults()
	return c.Validate()
}
