package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse [input]",
		Short: "Parse input and print the steps of the parser",
		Example: `  gramma parse "num + num * num"
  gramma parse --kind ll1 -s input.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default first argument or stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	p, err := newParser(env.g, env.cfg)
	if err != nil {
		return err
	}
	var input string
	switch {
	case len(args) > 0:
		input = args[0]
	case *parseFlags.source != "":
		src, err := os.ReadFile(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("cannot open the source file %s: %w", *parseFlags.source, err)
		}
		input = string(src)
	default:
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		input = string(src)
	}
	return parse(p, input)
}

// parse tokenizes input, runs the parser and prints its trace.
func parse(p gramma.Parser, input string) error {
	syms, err := tokenize(strings.TrimSpace(input), p.Grammar(), env.cfg)
	if err != nil {
		return err
	}
	tracer().Infof("input is %s", lr.SymbolString(syms))
	trace, err := p.Parse(syms)
	if len(trace) > 0 {
		if rerr := renderTrace(p.Kind(), trace); rerr != nil {
			return rerr
		}
	}
	if err != nil {
		if errors.Is(err, lr.ErrSyntaxError) {
			pterm.Error.Println(fmt.Sprintf("input rejected: %v", err))
			return nil
		}
		return err
	}
	pterm.Info.Println("input accepted")
	return nil
}

func renderTrace(kind gramma.ParserKind, trace lr.Trace) error {
	header := []string{"#", "matched", "stack", "input", "action"}
	if kind == gramma.LR1 {
		header = []string{"#", "symbols", "states", "input", "action"}
	}
	data := [][]string{header}
	for i, step := range trace {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1), step.Prefix, step.Stack, step.Input, step.Action,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
