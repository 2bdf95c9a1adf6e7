package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bnfdemo",
	Short: "Drive the bnf grammar-combinator engine against the INI example grammar",
	Long: `bnfdemo provides two features:
- Parses an INI-like file against the examples/ini grammar and prints the
  sections and values it found.
- Runs an interactive REPL that parses whatever you type against the same
  grammar and reports the resulting status.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
