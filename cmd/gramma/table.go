package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/ll1"
	"github.com/npillmayer/gramma/lr/lr1"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	html *string
	dot  *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Build the parse table of a grammar",
		Example: `  gramma table --kind ll1
  gramma table -g expr.yaml --html expr.html --dot expr.dot`,
		Args: cobra.NoArgs,
		RunE: runTable,
	}
	tableFlags.html = cmd.Flags().String("html", "", "export table(s) to an HTML file")
	tableFlags.dot = cmd.Flags().String("dot", "", "export the LR(1) state machine to a Graphviz file")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	p, err := newParser(env.g, env.cfg)
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%s parser for %v", p.Kind(), p.Grammar()))
	if llp, ok := gramma.LL1Parser(p); ok {
		return showLL1Table(llp.Table())
	}
	lrp, _ := gramma.LR1Parser(p)
	return showLR1Tables(lrp.Tables())
}

func showLL1Table(t *ll1.Table) error {
	g := t.Grammar()
	header := []string{""}
	for _, a := range t.Lookaheads() {
		header = append(header, string(a))
	}
	data := [][]string{header}
	for _, A := range g.NonTerminals() {
		row := []string{string(A)}
		for _, a := range t.Lookaheads() {
			e, ok := t.Lookup(A, a)
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, e.String())
		}
		data = append(data, row)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if *tableFlags.dot != "" {
		pterm.Info.Println("LL(1) parsers have no state machine, ignoring --dot")
	}
	if *tableFlags.html == "" {
		return nil
	}
	return writeFile(*tableFlags.html, func(f *os.File) error {
		ll1.TableAsHTML(t, f)
		return nil
	})
}

func showLR1Tables(gen *lr1.TableGenerator) error {
	g := gen.Grammar()
	terms := append(g.Terminals(), lr.EOF)
	header := []string{"state"}
	for _, a := range terms {
		header = append(header, string(a))
	}
	for _, A := range g.NonTerminals() {
		header = append(header, string(A))
	}
	data := [][]string{header}
	for _, s := range gen.CFSM().States() {
		row := []string{fmt.Sprintf("%d", s.ID)}
		for _, a := range terms {
			if action := gen.Action(s.ID, a); action.Kind != lr1.ErrorAction {
				row = append(row, action.String())
			} else {
				row = append(row, "")
			}
		}
		for _, A := range g.NonTerminals() {
			if to, ok := gen.Goto(s.ID, A); ok {
				row = append(row, fmt.Sprintf("%d", to))
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	for i, p := range gen.Productions() {
		pterm.Println(fmt.Sprintf("%3d: %v", i, p))
	}
	if *tableFlags.html != "" {
		err := writeFile(*tableFlags.html, func(f *os.File) error {
			lr1.ActionTableAsHTML(gen, f)
			lr1.GotoTableAsHTML(gen, f)
			return nil
		})
		if err != nil {
			return err
		}
	}
	if *tableFlags.dot != "" {
		return writeFile(*tableFlags.dot, func(f *os.File) error {
			return gen.CFSM().ToGraphViz(f)
		})
	}
	return nil
}
