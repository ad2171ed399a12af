package cmd

import (
	"fmt"

	"github.com/cwbudde/minilang/internal/samplehost"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <code>",
	Short: "Evaluate an inline minilang expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
}

func runEval(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	e, err := newHostEngine(cfg)
	if err != nil {
		return err
	}

	sc := newScopeWithLedger(samplehost.NewLedger(cfg.Ledger))
	result, err := e.EvaluateWithScope(args[0], sc)
	if err != nil {
		return err
	}
	fmt.Println(e.String(result))
	return nil
}
