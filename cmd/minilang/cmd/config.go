package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the CLI's sample host configuration: the starting balances for
// the ledger every run/eval/repl command exposes to scripts as `ledger`.
//
// Grounded on original_source/rust-blockchain's account/balance model;
// wired through github.com/goccy/go-yaml, the config-loading library the
// example pack's CLI tooling uses.
type Config struct {
	Ledger map[string]int64 `yaml:"ledger"`
}

// defaultConfig is used whenever --config is not given.
func defaultConfig() Config {
	return Config{Ledger: map[string]int64{"alice": 100, "bob": 0}}
}

func loadConfig(path string) (Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Ledger == nil {
		cfg.Ledger = defaultConfig().Ledger
	}
	return cfg, nil
}
