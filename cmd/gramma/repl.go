package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/gramma"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively, line by line",
		Long: `Every line entered is tokenized and parsed, and the parser trace is printed.
Lines starting with a colon are commands:
  :kind ll1|lr1   switch the parser kind
  :quit           leave the REPL (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp is our interpreter object
type Intp struct {
	parser gramma.Parser
	repl   *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	p, err := newParser(env.g, env.cfg)
	if err != nil {
		return err
	}
	repl, err := readline.New("gramma> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{parser: p, repl: repl}
	pterm.Info.Println(fmt.Sprintf("Welcome to gramma, %s parser for %v", p.Kind(), p.Grammar()))
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or parses a line of input.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, parse(intp.parser, line)
	}
	args := strings.Fields(line[1:])
	if len(args) == 0 {
		return false, fmt.Errorf("missing command")
	}
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "kind":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :kind ll1|lr1")
		}
		kind, err := gramma.ParserKindFromString(args[1])
		if err != nil {
			return false, err
		}
		cfg := env.cfg
		cfg.Kind = args[1]
		p, err := newParser(env.g, cfg)
		if err != nil {
			return false, err
		}
		intp.parser = p
		pterm.Info.Println(fmt.Sprintf("switched to %s parser", kind))
		return false, nil
	}
	return false, fmt.Errorf("unknown command %q", args[0])
}
