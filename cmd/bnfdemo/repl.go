package main

import (
	"fmt"

	prompt "github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"github.com/bnflite-go/bnf"
	"github.com/bnflite-go/bnf/examples/ini"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl",
		Short:   "Interactively parse INI snippets against the example grammar",
		Example: `  bnfdemo repl`,
		Args:    cobra.NoArgs,
		RunE:    runRepl,
	}
	rootCmd.AddCommand(cmd)
}

func replCompleter(d prompt.Document) []prompt.Suggest {
	return nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	fmt.Println("Type an INI snippet (a [section] header or a key=value line) and press enter.")
	fmt.Println("Type 'exit' to quit.")
	for {
		t := prompt.Input("bnf> ", replCompleter)
		if t == "exit" {
			break
		}
		if t == "" {
			continue
		}

		grammar, _ := ini.New()
		ctx := ini.NewContext(t + "\n")
		status, result, err := bnf.AnalyzeContext[*ini.Document](grammar, ctx)
		if err != nil {
			_, stop := ctx.Tail()
			fmt.Printf("parse failed at byte %v: %v\n", stop, err)
			continue
		}

		fmt.Printf("status=%#x sections=%v\n", uint32(status), len(result.Data.Sections))
	}
	return nil
}
