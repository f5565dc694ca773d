package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds settings for the kern command line and REPL.
type Config struct {
	// Prec is the precision of calculations in bits.
	Prec int `toml:"prec" yaml:"prec"`
	// Format is the fmt verb used to print results.
	Format string `toml:"format" yaml:"format"`
	// Echo prints the parse tree of every expression alongside its result.
	Echo bool `toml:"echo" yaml:"echo"`
	// Prompt is the REPL input prompt.
	Prompt string `toml:"prompt" yaml:"prompt"`
	// NoColor disables REPL styling.
	NoColor bool `toml:"no_color" yaml:"no_color"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		// TOML is the default format, whatever the extension.
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault loads configuration from the file named by the KERN_CONFIG
// environment variable, or from the first default location that exists. If
// there is no config file, LoadDefault returns the default configuration.
func LoadDefault() (*Config, error) {
	if path := os.Getenv("KERN_CONFIG"); path != "" {
		return Load(path)
	}
	paths := []string{
		"./kern.toml",
		"./kern.yaml",
		"./kern.yml",
		filepath.Join(os.Getenv("HOME"), ".config/kern/config.toml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Prec == 0 {
		c.Prec = 64
	}
	if c.Format == "" {
		c.Format = "%g"
	}
	if c.Prompt == "" {
		c.Prompt = "> "
	}
}

// validate rejects configuration values the commands cannot work with.
func (c *Config) validate() error {
	if c.Prec < 0 {
		return fmt.Errorf("precision (%d) must be positive", c.Prec)
	}
	if !strings.Contains(c.Format, "%") {
		return fmt.Errorf("format %q has no verb", c.Format)
	}
	return nil
}
