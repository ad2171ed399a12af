// Package cmd implements the minilang CLI: a small sample host over
// pkg/minilang, demonstrating script evaluation, native function
// registration, and dot-protocol property access against a toy ledger.
//
// Grounded on the teacher's cmd/dwscript/cmd (cobra root command, version
// template, persistent --verbose flag), trimmed of the unit-search-path and
// AST-dump machinery that has no equivalent in minilang.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "minilang",
	Short:   "minilang script runner",
	Version: Version,
	Long: `minilang is a small embeddable scripting engine: a dynamically
typed, C-like expression language with a tree-walking evaluator.

This CLI is a sample host: it registers a toy account ledger and a couple
of JSON helper functions, then runs scripts against them.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML ledger config (see config.go)")
}
