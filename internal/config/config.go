package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fuzzyreg/internal/inference"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed regulator.yaml
var defaultYAML []byte

const (
	DefaultHistoryPath = "fuzzyreg.db"
	DefaultAddr        = ":8080"
)

type Config struct {
	Input  VariableSet `yaml:"input"`
	Output VariableSet `yaml:"output"`
	Rules  RuleTable   `yaml:"rules"`

	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Serve   ServeConfig   `yaml:"serve"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

type HistoryConfig struct {
	Path string `yaml:"path" toml:"path"` // SQLite database of saved runs
}

type ServeConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// LoadEnv reads a .env file into the environment if one exists.
// Variables already set in the environment are not overridden.
func LoadEnv() {
	_ = godotenv.Load()
}

// LoadConfig reads a configuration file. The format follows the extension:
// .toml is TOML, anything else is YAML (which also accepts JSON).
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	LoadEnv()

	// 2. Load config file
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := Parse(file, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// 3. Override with Environment Variables if present
	cfg.ApplyEnv()

	return cfg, nil
}

// Default returns the built-in temperature regulator configuration.
func Default() *Config {
	cfg, err := Parse(defaultYAML, "yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded regulator config: %v", err))
	}
	cfg.ApplyEnv()
	return cfg
}

// Parse decodes a configuration document. format is "yaml", "json" or "toml".
func Parse(data []byte, format string) (*Config, error) {
	var cfg Config
	switch format {
	case "toml":
		if err := decodeTOML(data, &cfg); err != nil {
			return nil, err
		}
	case "yaml", "yml", "json":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistoryPath
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultAddr
	}
	return &cfg, nil
}

// ApplyEnv overrides settings from FUZZYREG_* environment variables.
func (c *Config) ApplyEnv() {
	if level := os.Getenv("FUZZYREG_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if db := os.Getenv("FUZZYREG_DB"); db != "" {
		c.History.Path = db
	}
	if addr := os.Getenv("FUZZYREG_ADDR"); addr != "" {
		c.Serve.Addr = addr
	}
}

// Build turns the configuration into a ready engine. Malformed variables or
// rules surface as *fuzzy.ConfigurationError.
func (c *Config) Build(opts ...inference.Option) (*inference.Engine, error) {
	inputs, err := c.Input.build()
	if err != nil {
		return nil, err
	}
	outputs, err := c.Output.build()
	if err != nil {
		return nil, err
	}
	return inference.NewEngine(inputs, outputs, c.Rules, opts...)
}

func formatOf(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "toml" {
		return "toml"
	}
	return "yaml"
}

// tomlDocument mirrors Config for TOML, where tables have no stable order:
// variables are sorted by name and rules use an array of tables.
type tomlDocument struct {
	Input  map[string][][]any `toml:"input"`
	Output map[string][][]any `toml:"output"`
	Rules  []inference.Rule   `toml:"rules"`

	Log     LogConfig     `toml:"log"`
	History HistoryConfig `toml:"history"`
	Serve   ServeConfig   `toml:"serve"`
}

func decodeTOML(data []byte, cfg *Config) error {
	var doc tomlDocument
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return err
	}

	var err error
	if cfg.Input, err = variableSetFromMap(doc.Input); err != nil {
		return err
	}
	if cfg.Output, err = variableSetFromMap(doc.Output); err != nil {
		return err
	}
	cfg.Rules = doc.Rules
	cfg.Log, cfg.History, cfg.Serve = doc.Log, doc.History, doc.Serve
	return nil
}
