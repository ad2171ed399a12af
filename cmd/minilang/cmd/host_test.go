package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/minilang/internal/samplehost"
)

func TestDefaultConfigHasAliceAndBob(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Ledger["alice"] != 100 || cfg.Ledger["bob"] != 0 {
		t.Fatalf("unexpected default ledger: %#v", cfg.Ledger)
	}
}

func TestLoadConfigEmptyPathUsesDefault(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig(\"\") failed: %v", err)
	}
	if cfg.Ledger["alice"] != 100 {
		t.Fatalf("want default ledger, got %#v", cfg.Ledger)
	}
}

func TestLoadConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlSrc := "ledger:\n  alice: 500\n  carol: 25\n"
	if err := os.WriteFile(path, []byte(yamlSrc), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Ledger["alice"] != 500 || cfg.Ledger["carol"] != 25 {
		t.Fatalf("unexpected ledger from YAML: %#v", cfg.Ledger)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatalf("expected an error for a missing config file")
	}
}

func TestNewHostEngineExposesLedgerAndJSON(t *testing.T) {
	e, err := newHostEngine(defaultConfig())
	if err != nil {
		t.Fatalf("newHostEngine failed: %v", err)
	}

	sc := newScopeWithLedger(samplehost.NewLedger(defaultConfig().Ledger))
	v, err := e.EvaluateWithScope(`ledger.balance_of("alice");`, sc)
	if err != nil {
		t.Fatalf("balance_of failed: %v", err)
	}
	if e.String(v) != "100" {
		t.Fatalf("want 100, got %s", e.String(v))
	}

	v, err = e.EvaluateWithScope(`json_get("{\"a\":1}", "a");`, sc)
	if err != nil {
		t.Fatalf("json_get failed: %v", err)
	}
	if e.String(v) != "1" {
		t.Fatalf("want \"1\", got %s", e.String(v))
	}
}

func TestNewHostEngineTransferMutatesLedgerInScope(t *testing.T) {
	e, err := newHostEngine(defaultConfig())
	if err != nil {
		t.Fatalf("newHostEngine failed: %v", err)
	}
	sc := newScopeWithLedger(samplehost.NewLedger(defaultConfig().Ledger))

	_, err = e.EvaluateWithScope(`ledger.transfer("alice", "bob", 30);`, sc)
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	v, err := e.EvaluateWithScope(`ledger.balance_of("bob");`, sc)
	if err != nil {
		t.Fatalf("balance_of after transfer failed: %v", err)
	}
	if e.String(v) != "30" {
		t.Fatalf("want 30 after transfer, got %s", e.String(v))
	}
}
