package cmd

import (
	"fmt"

	"github.com/cwbudde/minilang/internal/samplehost"
	"github.com/cwbudde/minilang/internal/scope"
	"github.com/cwbudde/minilang/internal/value"
	"github.com/cwbudde/minilang/pkg/minilang"
)

// newHostEngine builds an Engine with the sample host's ledger type and
// JSON helpers registered; the `ledger` binding itself is seeded separately
// by newScopeWithLedger. Every CLI subcommand shares this bootstrap so `run`,
// `eval`, and `repl` all see the same built-in surface.
func newHostEngine(cfg Config) (*minilang.Engine, error) {
	e, err := minilang.New()
	if err != nil {
		return nil, err
	}

	minilang.RegisterType[samplehost.Ledger](e, "Ledger")
	minilang.RegisterGet[samplehost.Ledger, string](e, "accounts_hint", func(l samplehost.Ledger) string {
		return fmt.Sprintf("%d account(s)", len(l.Accounts()))
	})
	minilang.RegisterMutatingMethod3[samplehost.Ledger, string, string, int64](
		e, "transfer",
		func(l samplehost.Ledger, from, to string, amount int64) (samplehost.Ledger, error) {
			return l.Transfer(from, to, amount)
		})
	minilang.RegisterMethod1[samplehost.Ledger, string, int64](
		e, "balance_of",
		func(l samplehost.Ledger, account string) (int64, error) {
			return l.Balance(account), nil
		})

	if err := e.RegisterFunction("json_get", samplehost.JSONGet); err != nil {
		return nil, err
	}
	if err := e.RegisterFunction("json_set", samplehost.JSONSet); err != nil {
		return nil, err
	}

	return e, nil
}

// newScopeWithLedger returns a Scope with `ledger` bound to l, ready to pass
// to Engine.EvaluateWithScope.
func newScopeWithLedger(l samplehost.Ledger) *scope.Scope {
	sc := scope.New()
	sc.Push("ledger", value.New(l))
	return sc
}
