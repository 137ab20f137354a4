package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gramma/lr"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	transform *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print nullable non-terminals, FIRST and FOLLOW sets of a grammar",
		Example: `  gramma analyze -g expr.yaml
  gramma analyze --transform leftrec`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}
	analyzeFlags.transform = cmd.Flags().String("transform", "none",
		"transform grammar before analysis [none|leftrec|epsilon]")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	g, err := transform(env.g, *analyzeFlags.transform)
	if err != nil {
		return err
	}
	mode, err := env.cfg.firstMode()
	if err != nil {
		return err
	}
	ga, err := lr.Analyze(g, lr.WithFirstMode(mode))
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%v, start symbol %s", g, g.Start()))
	if err = grammarTree(g).Render(); err != nil {
		return err
	}
	data := [][]string{{"non-terminal", "nullable", "FIRST", "FOLLOW"}}
	for _, A := range g.NonTerminals() {
		data = append(data, []string{
			string(A),
			fmt.Sprintf("%v", ga.Nullable(A)),
			ga.First(A).String(),
			ga.Follow(A).String(),
		})
	}
	if err = pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if rec := lr.LeftRecursive(g); len(rec) > 0 {
		pterm.Info.Println("left recursive: " + lr.SymbolString(rec))
	}
	return nil
}

func transform(g *lr.Grammar, how string) (*lr.Grammar, error) {
	switch strings.ToLower(how) {
	case "", "none":
		return g, nil
	case "leftrec":
		return lr.RemoveImmediateLeftRecursion(g)
	case "epsilon":
		return lr.RemoveEpsilon(g)
	}
	return nil, fmt.Errorf("unknown transformation %q", how)
}

// grammarTree displays the rules of g as a tree, one branch per non-terminal.
func grammarTree(g *lr.Grammar) *pterm.TreePrinter {
	ll := pterm.LeveledList{}
	for _, A := range g.NonTerminals() {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: string(A)})
		for _, r := range g.Rules(A) {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "→ " + r.String()})
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root)
}
