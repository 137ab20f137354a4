package grammarfile

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/npillmayer/gramma/lr"
	"golang.org/x/exp/ebnf"
)

// LoadEBNF reads a grammar in EBNF notation. If start is empty, the first
// production of the input is the start production. The grammar is verified
// to be complete and reachable from start.
//
// Character ranges are not supported, as every token is a terminal of its own.
func LoadEBNF(filename string, r io.Reader, start string) (*lr.Grammar, error) {
	eg, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, err
	}
	if start == "" {
		start = firstProduction(eg)
	}
	if err = ebnf.Verify(eg, start); err != nil {
		return nil, err
	}
	c := &converter{
		eg:    eg,
		rules: make(map[lr.Symbol][]lr.Rule),
		terms: lr.NewSymbolSet(),
	}
	names := make([]string, 0, len(eg))
	for name := range eg {
		names = append(names, name)
	}
	sort.Strings(names) // helper names depend on conversion order
	for _, name := range names {
		c.nonterms = append(c.nonterms, lr.Symbol(name))
		R, err := c.alternatives(name, eg[name].Expr)
		if err != nil {
			return nil, err
		}
		c.rules[lr.Symbol(name)] = append(c.rules[lr.Symbol(name)], R...)
	}
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return lr.NewGrammar(name, c.nonterms, c.terms.Values(), c.rules, lr.Symbol(start))
}

func firstProduction(eg ebnf.Grammar) string {
	first, offset := "", -1
	for name, p := range eg {
		if pos := p.Name.Pos(); offset < 0 || pos.Offset < offset {
			first, offset = name, pos.Offset
		}
	}
	return first
}

type converter struct {
	eg       ebnf.Grammar
	rules    map[lr.Symbol][]lr.Rule
	nonterms []lr.Symbol
	terms    *lr.SymbolSet
	helpers  int
}

// alternatives converts an expression into a list of rules.
func (c *converter) alternatives(prod string, x ebnf.Expression) ([]lr.Rule, error) {
	alt, ok := x.(ebnf.Alternative)
	if !ok {
		alt = ebnf.Alternative{x}
	}
	R := make([]lr.Rule, 0, len(alt))
	for _, y := range alt {
		r, err := c.sequence(prod, y)
		if err != nil {
			return nil, err
		}
		R = append(R, r)
	}
	return R, nil
}

func (c *converter) sequence(prod string, x ebnf.Expression) (lr.Rule, error) {
	seq, ok := x.(ebnf.Sequence)
	if !ok {
		if x == nil {
			return lr.EpsilonRule(), nil
		}
		seq = ebnf.Sequence{x}
	}
	r := make(lr.Rule, 0, len(seq))
	for _, y := range seq {
		X, err := c.symbol(prod, y)
		if err != nil {
			return nil, err
		}
		r = append(r, X)
	}
	return r, nil
}

// symbol converts a single sequence element. Options, groups and repetitions
// get a fresh non-terminal H:
//
//	[ x ]  →  H → x | ε
//	( x )  →  H → x
//	{ x }  →  H → x H | ε
func (c *converter) symbol(prod string, x ebnf.Expression) (lr.Symbol, error) {
	switch y := x.(type) {
	case *ebnf.Name:
		return lr.Symbol(y.String), nil
	case *ebnf.Token:
		a := lr.Symbol(y.String)
		c.terms.Add(a)
		return a, nil
	case *ebnf.Option:
		H := c.helper(prod)
		R, err := c.alternatives(prod, y.Body)
		if err != nil {
			return "", err
		}
		c.rules[H] = append(R, lr.EpsilonRule())
		return H, nil
	case *ebnf.Group:
		H := c.helper(prod)
		R, err := c.alternatives(prod, y.Body)
		if err != nil {
			return "", err
		}
		c.rules[H] = R
		return H, nil
	case *ebnf.Repetition:
		H := c.helper(prod)
		R, err := c.alternatives(prod, y.Body)
		if err != nil {
			return "", err
		}
		for i, r := range R {
			R[i] = append(r.Symbols(), H)
		}
		c.rules[H] = append(R, lr.EpsilonRule())
		return H, nil
	case *ebnf.Range:
		return "", fmt.Errorf("%v: character ranges are not supported", y.Pos())
	}
	return "", fmt.Errorf("%v: unexpected EBNF expression %T", x.Pos(), x)
}

// helper creates a fresh non-terminal "prod_n".
func (c *converter) helper(prod string) lr.Symbol {
	for {
		c.helpers++
		H := fmt.Sprintf("%s_%d", prod, c.helpers)
		if _, taken := c.eg[H]; !taken && !c.terms.Contains(lr.Symbol(H)) {
			c.nonterms = append(c.nonterms, lr.Symbol(H))
			return lr.Symbol(H)
		}
	}
}
