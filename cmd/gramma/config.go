package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/scanner"
)

// Config holds the settings of a gramma.toml file.
type Config struct {
	Trace      string            `toml:"trace"`
	Kind       string            `toml:"kind"`
	First      string            `toml:"first"`
	MaxStates  int               `toml:"max_states"`
	Tokenizer  string            `toml:"tokenizer"`
	Categories map[string]string `toml:"categories"`
	Patterns   map[string]string `toml:"patterns"`
}

func defaultConfig() Config {
	return Config{
		Trace:     "Error",
		Kind:      "lr1",
		First:     "textbook",
		Tokenizer: "go",
		Categories: map[string]string{
			"int":   "num",
			"float": "num",
			"ident": "id",
		},
	}
}

// loadConfig reads a configuration file over the defaults. A missing file is
// an error only if required is set.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read configuration %s: %w", path, err)
	}
	tracer().Infof("configuration read from %s", path)
	return cfg, nil
}

func (cfg Config) firstMode() (lr.FirstMode, error) {
	switch strings.ToLower(cfg.First) {
	case "", "textbook":
		return lr.TextbookFirst, nil
	case "leading":
		return lr.LeadingSymbolFirst, nil
	}
	return lr.TextbookFirst, fmt.Errorf("unknown FIRST mode %q", cfg.First)
}

// parserOptions translates configuration settings into parser options.
func (cfg Config) parserOptions() ([]gramma.Option, error) {
	mode, err := cfg.firstMode()
	if err != nil {
		return nil, err
	}
	opts := []gramma.Option{gramma.WithFirstMode(mode)}
	if cfg.MaxStates > 0 {
		opts = append(opts, gramma.MaxStates(cfg.MaxStates))
	}
	return opts, nil
}

var tokenCategories = map[string]gramma.TokType{
	"ident":     scanner.Ident,
	"int":       scanner.Int,
	"float":     scanner.Float,
	"char":      scanner.Char,
	"string":    scanner.String,
	"rawstring": scanner.RawString,
}

// categories maps token categories of the Go tokenizer to terminals of g.
// Categories whose terminal is unknown to g are ignored.
func (cfg Config) categories(g *lr.Grammar) (map[gramma.TokType]lr.Symbol, error) {
	m := make(map[gramma.TokType]lr.Symbol)
	for name, a := range cfg.Categories {
		typ, ok := tokenCategories[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown token category %q", name)
		}
		if g.IsTerminal(lr.Symbol(a)) {
			m[typ] = lr.Symbol(a)
		}
	}
	return m, nil
}

// patterns returns the lexmachine patterns for terminals of g.
func (cfg Config) patterns(g *lr.Grammar) map[lr.Symbol]string {
	m := make(map[lr.Symbol]string)
	for a, pattern := range cfg.Patterns {
		if g.IsTerminal(lr.Symbol(a)) {
			m[lr.Symbol(a)] = pattern
		}
	}
	return m
}
