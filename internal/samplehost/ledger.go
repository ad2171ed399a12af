// Package samplehost is the embedding example bundled with the CLI
// (cmd/minilang): a minimal account ledger exposed to scripts through
// minilang's dot protocol and RegisterFunction, plus JSON host functions
// built on gjson/sjson. None of this is part of the language core —
// internal/evaluator and pkg/minilang never import it — it exists to give
// the bundled `run`/`eval`/`repl` commands something concrete to demo.
//
// Grounded on original_source/rust-blockchain's transaction/ledger model
// (a named sender, receiver, and value moved between named accounts),
// reshaped into Go value semantics: Ledger is copied by value into and out
// of the dot protocol, matching minilang's clone+write-back rule.
package samplehost

import "fmt"

// Ledger is a tiny in-memory account ledger. The CLI registers it as a host
// type via minilang.RegisterType/RegisterGet/RegisterMethod1/
// RegisterMutatingMethod3, so scripts can read `ledger.accounts_hint` and
// call `ledger.balance_of(account)` and `ledger.transfer(from, to, amount)`.
type Ledger struct {
	balances map[string]int64
}

// NewLedger creates a Ledger with the given starting balances.
func NewLedger(initial map[string]int64) Ledger {
	balances := make(map[string]int64, len(initial))
	for k, v := range initial {
		balances[k] = v
	}
	return Ledger{balances: balances}
}

// CloneValue deep-copies the balances map so a script-visible Ledger clone
// never aliases another clone's ledger state (value.Value.Clone's Cloner
// path, spec.md §3).
func (l Ledger) CloneValue() any {
	return NewLedger(l.balances)
}

// Balance returns account's current balance, or 0 if the account has never
// been credited.
func (l Ledger) Balance(account string) int64 {
	return l.balances[account]
}

// Transfer moves amount from "from" to "to", returning the resulting Ledger
// (minilang native methods don't mutate a Go receiver shared with the
// script — they return the new state, which the dot-protocol write-back
// stores for the caller).
func (l Ledger) Transfer(from, to string, amount int64) (Ledger, error) {
	if amount < 0 {
		return l, fmt.Errorf("transfer amount must be non-negative, got %d", amount)
	}
	if l.balances[from] < amount {
		return l, fmt.Errorf("insufficient balance: %s has %d, needs %d", from, l.balances[from], amount)
	}
	next := NewLedger(l.balances)
	next.balances[from] -= amount
	next.balances[to] += amount
	return next, nil
}

// Accounts returns the ledger's account names in no particular order, for
// the CLI's `accounts_hint` property.
func (l Ledger) Accounts() []string {
	accounts := make([]string, 0, len(l.balances))
	for k := range l.balances {
		accounts = append(accounts, k)
	}
	return accounts
}
