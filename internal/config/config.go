package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by the config
const EnvPrefix = "JSONCOMPARE_"

// Output formats understood by the report generator
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the complete configuration for jsoncompare
type Config struct {
	Compare CompareConfig `yaml:"compare"`
	Output  OutputConfig  `yaml:"output"`
	Dev     DevConfig     `yaml:"dev"`
}

// CompareConfig toggles the comparison factors
type CompareConfig struct {
	Keys   bool `yaml:"keys"`
	Types  bool `yaml:"types"`
	Values bool `yaml:"values"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format      string `yaml:"format"`
	ShowMatched bool   `yaml:"show_matched"`
	Color       bool   `yaml:"color"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// CLIOverrides carries command-line values. Zero values and nil pointers mean
// "not given"; Debug can only turn debugging on.
type CLIOverrides struct {
	Factors     []string
	Format      string
	ShowMatched *bool
	Color       *bool
	Debug       bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Keys:   true,
			Types:  true,
			Values: true,
		},
		Output: OutputConfig{
			Format:      FormatText,
			ShowMatched: false,
			Color:       false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// Options returns the comparison options selected by the config
func (c *Config) Options() models.Options {
	return models.Options{
		CompareKeys:   c.Compare.Keys,
		CompareTypes:  c.Compare.Types,
		CompareValues: c.Compare.Values,
	}
}

// Validate checks values that YAML cannot constrain
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format '%s': expected text, json or yaml", c.Output.Format)
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsoncompare.yml", ".jsoncompare.yaml", "jsoncompare.yml", "jsoncompare.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// EnvName returns the environment variable for a setting, e.g.
// "compareKeys" becomes JSONCOMPARE_COMPARE_KEYS
func EnvName(setting string) string {
	return EnvPrefix + strcase.ToScreamingSnake(setting)
}

// ApplyEnv overrides settings from the environment. Variables from envFile
// (a dotenv file, ignored when missing) are used when the process environment
// does not set them.
func (c *Config) ApplyEnv(envFile string) error {
	fileVars := map[string]string{}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			vars, err := godotenv.Read(envFile)
			if err != nil {
				return fmt.Errorf("failed to read env file '%s': %w", envFile, err)
			}
			fileVars = vars
		}
	}

	lookup := func(setting string) (string, bool) {
		name := EnvName(setting)
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
		v, ok := fileVars[name]
		return v, ok
	}

	bools := []struct {
		setting string
		target  *bool
	}{
		{"compareKeys", &c.Compare.Keys},
		{"compareTypes", &c.Compare.Types},
		{"compareValues", &c.Compare.Values},
		{"showMatched", &c.Output.ShowMatched},
		{"color", &c.Output.Color},
		{"debug", &c.Dev.Debug},
	}
	for _, b := range bools {
		raw, ok := lookup(b.setting)
		if !ok {
			continue
		}
		value, err := cast.ToBoolE(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", EnvName(b.setting), err)
		}
		*b.target = value
	}

	if raw, ok := lookup("format"); ok {
		format, err := cast.ToStringE(raw)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", EnvName("format"), err)
		}
		c.Output.Format = strings.ToLower(strings.TrimSpace(format))
	}

	return c.Validate()
}

// ParseFactors turns factor names into options. Singular and plural names
// are accepted; "none" disables every factor.
func ParseFactors(factors []string) (models.Options, error) {
	var opts models.Options
	for _, raw := range factors {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "key", "keys":
			opts.CompareKeys = true
		case "type", "types":
			opts.CompareTypes = true
		case "value", "values":
			opts.CompareValues = true
		case "all":
			opts = models.AllOptions()
		case "none", "":
		default:
			return models.Options{}, fmt.Errorf("unknown comparison factor '%s': expected keys, types, values, all or none", raw)
		}
	}
	return opts, nil
}

// ApplyCLI overrides settings with explicit command-line values
func (c *Config) ApplyCLI(cli CLIOverrides) error {
	if cli.Factors != nil {
		opts, err := ParseFactors(cli.Factors)
		if err != nil {
			return err
		}
		c.Compare = CompareConfig{
			Keys:   opts.CompareKeys,
			Types:  opts.CompareTypes,
			Values: opts.CompareValues,
		}
	}
	if cli.Format != "" {
		c.Output.Format = strings.ToLower(cli.Format)
	}
	if cli.ShowMatched != nil {
		c.Output.ShowMatched = *cli.ShowMatched
	}
	if cli.Color != nil {
		c.Output.Color = *cli.Color
	}
	if cli.Debug {
		c.Dev.Debug = true
	}
	return c.Validate()
}

// LoadConfigWithCLI loads config with CLI argument precedence: defaults, then
// the config file (configPath, or one found by FindConfigFile), then .env and
// the environment, then the command line.
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath == "" {
		configPath = FindConfigFile()
	}
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyEnv(".env"); err != nil {
		return nil, err
	}

	if err := cfg.ApplyCLI(cli); err != nil {
		return nil, err
	}

	return cfg, nil
}
