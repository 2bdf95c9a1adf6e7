package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/bnflite-go/bnf"
	"github.com/bnflite-go/bnf/diag"
	"github.com/bnflite-go/bnf/examples/ini"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse",
		Short:   "Parse an INI file",
		Example: `  cat config.ini | bnfdemo parse`,
		Args:    cobra.NoArgs,
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	sourceName := ""
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		r = f
		sourceName = *parseFlags.source
	}

	data, err := ioutil.ReadAll(r)
	if err != nil {
		return fmt.Errorf("cannot read the source: %w", err)
	}
	input := string(data)

	grammar, _ := ini.New()
	ctx := ini.NewContext(input)
	status, result, err := bnf.AnalyzeContext[*ini.Document](grammar, ctx)
	if err != nil {
		_, stop := ctx.Tail()
		fmt.Fprintf(os.Stderr, "%v\n", diag.AtStopCause(input, stop, sourceName, err))
		return err
	}

	doc := result.Data
	fmt.Printf("sections read: %v (status=%#x)\n", len(doc.Sections), uint32(status))
	for _, s := range doc.Sections {
		fmt.Printf("\n[%v] (%v values)\n", s.Name, len(s.Values))
		for _, kv := range s.Values {
			fmt.Printf("  %v = %v\n", kv.Key, kv.Value)
		}
	}
	return nil
}
