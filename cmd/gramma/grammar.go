package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/grammarfile"
	"github.com/npillmayer/gramma/lr/scanner"
	"github.com/npillmayer/gramma/lr/scanner/lexmach"
)

// We provide a simple expression grammar as a default.
//
//  E ➞ E + T  |  E - T  |  T
//  T ➞ T * F  |  T / F  |  F
//  F ➞ ( E )  |  num  |  id
//
func makeExprGrammar() (*lr.Grammar, error) {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("E").T("-").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("T").T("/").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("num").End()
	b.LHS("F").T("id").End()
	return b.Grammar()
}

// loadGrammar reads a grammar file, or returns the default grammar for an empty path.
func loadGrammar(path string) (*lr.Grammar, error) {
	if path == "" {
		return makeExprGrammar()
	}
	return grammarfile.Load(path)
}

// tokenize splits an input line into terminals of g. Input which is already
// a list of terminals is accepted as well, as every terminal is its own
// vocabulary entry.
func tokenize(input string, g *lr.Grammar, cfg Config) ([]lr.Symbol, error) {
	switch strings.ToLower(cfg.Tokenizer) {
	case "", "go":
		categories, err := cfg.categories(g)
		if err != nil {
			return nil, err
		}
		v, err := scanner.NewVocabulary(g, categories)
		if err != nil {
			return nil, err
		}
		var scanErr error
		t := scanner.GoTokenizer("input", strings.NewReader(input))
		t.SetErrorHandler(func(e error) { scanErr = e })
		syms, err := scanner.Symbols(t, v)
		if err == nil {
			err = scanErr
		}
		return syms, err
	case "lex", "lexmachine":
		lm, err := lexmach.ForGrammar(g, cfg.patterns(g))
		if err != nil {
			return nil, err
		}
		t, err := lm.Scanner(input)
		if err != nil {
			return nil, err
		}
		var scanErr error
		t.SetErrorHandler(func(e error) { scanErr = e })
		syms, err := scanner.Symbols(t, lm.Vocabulary())
		if err == nil {
			err = scanErr
		}
		return syms, err
	}
	return nil, fmt.Errorf("unknown tokenizer %q", cfg.Tokenizer)
}

// newParser creates a parser of the configured kind.
func newParser(g *lr.Grammar, cfg Config) (gramma.Parser, error) {
	kind, err := gramma.ParserKindFromString(cfg.Kind)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.parserOptions()
	if err != nil {
		return nil, err
	}
	return gramma.NewParser(kind, g, opts...)
}
