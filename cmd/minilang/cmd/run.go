package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/minilang/internal/samplehost"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a minilang script file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	e, err := newHostEngine(cfg)
	if err != nil {
		return err
	}

	sc := newScopeWithLedger(samplehost.NewLedger(cfg.Ledger))

	if verbose {
		fmt.Fprintf(os.Stderr, "running %s\n", args[0])
	}

	result, err := e.EvaluateFileWithScope(args[0], sc)
	if err != nil {
		return err
	}
	fmt.Println(e.String(result))
	return nil
}

