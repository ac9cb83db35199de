// Package config holds the explicit configuration value threaded
// through constructors: filesystem layout, per-bank source directories,
// and categorization settings. Directory creation is an explicit setup
// step, never an import-time side effect.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level banklens.yaml configuration.
type Config struct {
	DataRoot string        `yaml:"data_root"`
	Banks    []BankSource  `yaml:"banks"`
	Rules    RulesConfig   `yaml:"rules"`
	Cache    CacheConfig   `yaml:"cache"`
	Model    ModelConfig   `yaml:"model"`
	Prompts  PromptsConfig `yaml:"prompts"`
}

// BankSource maps a bank nomination to its statement directory,
// relative to the data root.
type BankSource struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// RulesConfig locates the user category rule file.
type RulesConfig struct {
	File string `yaml:"file"`
}

// CacheConfig locates the extraction result cache.
type CacheConfig struct {
	File string `yaml:"file"`
}

// ModelConfig selects the classifier model for the automated oracle.
type ModelConfig struct {
	Name string `yaml:"name"`
}

// PromptsConfig controls when interactive categorization prompts fire.
type PromptsConfig struct {
	// MinAmount is the threshold below which uncategorized
	// transactions never prompt, as a decimal string.
	MinAmount string `yaml:"min_amount"`
}

// Load reads a banklens.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the conventional data layout.
func Default(dataRoot string) *Config {
	return &Config{
		DataRoot: dataRoot,
		Banks: []BankSource{
			{Name: "BNP", Dir: "bank/bnp"},
			{Name: "Hello Bank", Dir: "bank/hello_bank"},
			{Name: "SG", Dir: "bank/sg"},
			{Name: "Revolut", Dir: "bank/revolut"},
		},
		Rules: RulesConfig{File: "bank/user_category_map.json"},
		Cache: CacheConfig{File: "temp/cache/result_hash_map.json"},
		Model: ModelConfig{Name: "gemini-2.0-flash"},
		Prompts: PromptsConfig{
			MinAmount: "0",
		},
	}
}

// RulesPath returns the absolute path of the user rule file.
func (c *Config) RulesPath() string {
	return filepath.Join(c.DataRoot, c.Rules.File)
}

// CachePath returns the absolute path of the cache map file.
func (c *Config) CachePath() string {
	return filepath.Join(c.DataRoot, c.Cache.File)
}

// LedgerPath returns the absolute path of ledger.csv.
func (c *Config) LedgerPath() string {
	return filepath.Join(c.DataRoot, "result", "ledger.csv")
}

// BankDir returns the statement directory for a bank, or "" if the
// bank is not configured.
func (c *Config) BankDir(name string) string {
	for _, b := range c.Banks {
		if b.Name == name {
			return filepath.Join(c.DataRoot, b.Dir)
		}
	}
	return ""
}

// EnsureDirs creates the directory tree the configuration describes.
// Called once by the init command, not on load.
func (c *Config) EnsureDirs() error {
	dirs := []string{
		c.DataRoot,
		filepath.Join(c.DataRoot, "result"),
		filepath.Join(c.DataRoot, "logs"),
		filepath.Dir(c.RulesPath()),
		filepath.Dir(c.CachePath()),
	}
	for _, b := range c.Banks {
		dirs = append(dirs, filepath.Join(c.DataRoot, b.Dir))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}
