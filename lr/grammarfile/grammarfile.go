/*
Package grammarfile reads grammars from files. Supported formats are YAML,
TOML and EBNF.

YAML and TOML files describe a grammar with a rule list per non-terminal.
Right hand sides are written as space separated symbols; "ε" or an empty
string denote an epsilon-rule:

	name: Expr
	start: E
	rules:
	  E: ["E + T", "T"]
	  T: ["T * F", "F"]
	  F: ["( E )", "num"]

Lists of terminals and non-terminals are optional. If omitted, every symbol
with rules is a non-terminal and every other symbol is a terminal.

EBNF files use the notation of golang.org/x/exp/ebnf. Quoted tokens are
terminals, production names are non-terminals. Options, repetitions and
groups are replaced by fresh helper non-terminals.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'gramma.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramma.lr")
}

// Spec is the file representation of a grammar in YAML or TOML format.
type Spec struct {
	Name         string              `yaml:"name" toml:"name"`
	Start        string              `yaml:"start" toml:"start"`
	Terminals    []string            `yaml:"terminals,omitempty" toml:"terminals"`
	NonTerminals []string            `yaml:"nonterminals,omitempty" toml:"nonterminals"`
	Rules        map[string][]string `yaml:"rules" toml:"rules"`
}

// Grammar creates a grammar from a spec.
func (spec *Spec) Grammar() (*lr.Grammar, error) {
	if len(spec.Rules) == 0 {
		return nil, fmt.Errorf("grammar %q has no rules", spec.Name)
	}
	rules := make(map[lr.Symbol][]lr.Rule, len(spec.Rules))
	for lhs, rhss := range spec.Rules {
		A := lr.Symbol(strings.TrimSpace(lhs))
		for _, rhs := range rhss {
			rules[A] = append(rules[A], parseRule(rhs))
		}
	}
	N := symbols(spec.NonTerminals)
	if len(N) == 0 {
		for A := range rules {
			N = append(N, A)
		}
		sort.Slice(N, func(i, j int) bool { return N[i] < N[j] })
	}
	T := symbols(spec.Terminals)
	if len(T) == 0 {
		T = inferTerminals(rules, N)
	}
	start := lr.Symbol(spec.Start)
	if start == "" {
		if len(spec.NonTerminals) == 0 {
			return nil, fmt.Errorf("grammar %q: start symbol missing", spec.Name)
		}
		start = N[0]
	}
	return lr.NewGrammar(spec.Name, N, T, rules, start)
}

func parseRule(rhs string) lr.Rule {
	fields := strings.Fields(rhs)
	r := make(lr.Rule, 0, len(fields))
	for _, f := range fields {
		if lr.Symbol(f) != lr.Epsilon {
			r = append(r, lr.Symbol(f))
		}
	}
	if len(r) == 0 {
		return lr.EpsilonRule()
	}
	return r
}

func symbols(names []string) []lr.Symbol {
	syms := make([]lr.Symbol, 0, len(names))
	for _, name := range names {
		syms = append(syms, lr.Symbol(name))
	}
	return syms
}

// inferTerminals collects all rule symbols which are not non-terminals.
func inferTerminals(rules map[lr.Symbol][]lr.Rule, N []lr.Symbol) []lr.Symbol {
	nonterms := lr.NewSymbolSet(N...)
	terms := lr.NewSymbolSet()
	for _, R := range rules {
		for _, r := range R {
			for _, X := range r.Symbols() {
				if !nonterms.Contains(X) {
					terms.Add(X)
				}
			}
		}
	}
	return terms.Values()
}

// LoadYAML reads a grammar in YAML format.
func LoadYAML(r io.Reader) (*lr.Grammar, error) {
	var spec Spec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("cannot decode YAML grammar: %w", err)
	}
	return spec.Grammar()
}

// LoadTOML reads a grammar in TOML format.
func LoadTOML(r io.Reader) (*lr.Grammar, error) {
	var spec Spec
	md, err := toml.NewDecoder(r).Decode(&spec)
	if err != nil {
		return nil, fmt.Errorf("cannot decode TOML grammar: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		tracer().Infof("ignoring unknown keys in TOML grammar: %v", undecoded)
	}
	return spec.Grammar()
}

// Load reads a grammar file. The format is selected by the file extension:
// .yaml or .yml, .toml, or .ebnf. For EBNF files the first production of the
// file is the start production.
func Load(path string) (*lr.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tracer().Infof("loading grammar from %s", path)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".toml":
		return LoadTOML(f)
	case ".ebnf":
		return LoadEBNF(path, f, "")
	default:
		return nil, fmt.Errorf("unknown grammar file format %q", ext)
	}
}
