package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/minilang/internal/samplehost"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive minilang session",
	Args:  cobra.NoArgs,
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl reads one line of source at a time from stdin, evaluating each
// against a Scope that persists across lines — so a `let` on one line is
// visible on the next, mirroring a script's top-level statement sequence
// rather than resetting state every iteration.
func runRepl(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	e, err := newHostEngine(cfg)
	if err != nil {
		return err
	}

	sc := newScopeWithLedger(samplehost.NewLedger(cfg.Ledger))

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("minilang> ")
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Print("minilang> ")
			continue
		}
		result, err := e.EvaluateWithScope(line, sc)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		} else {
			fmt.Println(e.String(result))
		}
		fmt.Print("minilang> ")
	}
	fmt.Println()
	return scanner.Err()
}
