package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the clonecore CLI's top-level command; every subcommand
// registers itself onto it from its own init().
var rootCmd = &cobra.Command{
	Use:   "clonecore",
	Short: "Detect duplicated code fragments via anti-unification of ASTs.",
	Long: `clonecore finds clusters of structurally similar statement
sequences across a set of parsed source files and reports them as clones,
generalized by anti-unification into a common pattern.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&argConfigOutput, "config", false, "only print the resolved configuration and terminate")
	rootCmd.PersistentFlags().BoolVar(&argJSONOutput, "json", false, "return output as JSON, not as plain text")

	w = &PlainOutput{Device: os.Stdout}
	log = &PlainOutput{Device: os.Stderr}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if cmdError != nil {
		fmt.Fprintln(os.Stderr, "Error:", cmdError)
	}
	os.Exit(exitCode)
}
