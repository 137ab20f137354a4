package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gramma",
	Short: "Analyse context-free grammars and run LL(1) or LR(1) parsers",
	Long: `gramma provides these features:
- Computes nullable non-terminals, FIRST and FOLLOW sets of a grammar.
- Builds LL(1) or LR(1) parse tables and exports them.
- Parses input and prints every step of the parser.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var rootFlags = struct {
	config    *string
	trace     *string
	grammar   *string
	kind      *string
	tokenizer *string
}{}

func init() {
	pf := rootCmd.PersistentFlags()
	rootFlags.config = pf.String("config", "gramma.toml", "configuration file")
	rootFlags.trace = pf.String("trace", "", "trace level [Debug|Info|Error] (default Error)")
	rootFlags.grammar = pf.StringP("grammar", "g", "", "grammar file (.yaml, .toml or .ebnf; default expression grammar)")
	rootFlags.kind = pf.StringP("kind", "k", "", "parser kind [ll1|lr1] (default lr1)")
	rootFlags.tokenizer = pf.String("tokenizer", "", "tokenizer [go|lex] (default go)")
}

// env is the environment shared by all commands, set up before a command runs.
var env = struct {
	cfg Config
	g   *lr.Grammar
}{}

func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	cfg, err := loadConfig(*rootFlags.config, cmd.Flags().Changed("config"))
	if err != nil {
		return err
	}
	if *rootFlags.trace != "" {
		cfg.Trace = *rootFlags.trace
	}
	if *rootFlags.kind != "" {
		cfg.Kind = *rootFlags.kind
	}
	if *rootFlags.tokenizer != "" {
		cfg.Tokenizer = *rootFlags.tokenizer
	}
	level := tracing.TraceLevelFromString(cfg.Trace)
	for _, key := range []string{"gramma.cli", "gramma.lr", "gramma.scanner"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", cfg.Trace)
	env.cfg = cfg
	if env.g, err = loadGrammar(*rootFlags.grammar); err != nil {
		return fmt.Errorf("cannot load grammar: %w", err)
	}
	env.g.Dump() // only visible in debug mode
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// writeFile creates a file and lets write fill it.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
