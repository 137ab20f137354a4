package lr

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
)

// Grammar is a context-free grammar. It holds a set of terminals, a disjoint set
// of non-terminals, a set of rules for every non-terminal and a start symbol.
// Rules are kept in sets, so duplicate rules collapse and iteration order is
// independent of insertion order.
//
// Grammars are immutable once constructed. Transformations like
// RemoveImmediateLeftRecursion return a new grammar.
type Grammar struct {
	Name         string
	terminals    *SymbolSet
	nonterminals *SymbolSet
	rules        map[Symbol]*treeset.Set // A -> set of Rule
	start        Symbol
}

// NewGrammar creates a grammar from symbol lists and a rule map. It checks that
//
//  - terminals and non-terminals are disjoint and do not use ε or $
//  - start is a non-terminal
//  - every rule belongs to a non-terminal and uses known symbols only
//
// Epsilon is stripped from rules with more than one symbol; empty rules
// become the epsilon rule.
func NewGrammar(name string, nonterminals, terminals []Symbol, rules map[Symbol][]Rule,
	start Symbol) (*Grammar, error) {
	//
	g := &Grammar{
		Name:         name,
		terminals:    NewSymbolSet(),
		nonterminals: NewSymbolSet(),
		rules:        make(map[Symbol]*treeset.Set),
		start:        start,
	}
	for _, A := range nonterminals {
		if A == Epsilon || A == EOF || A == "" {
			return nil, Errorf(UnrecognizedSymbol, "%q cannot be used as a non-terminal", A)
		}
		g.nonterminals.Add(A)
	}
	for _, a := range terminals {
		if a == Epsilon || a == EOF || a == "" {
			return nil, Errorf(UnrecognizedSymbol, "%q cannot be used as a terminal", a)
		}
		if g.nonterminals.Contains(a) {
			return nil, fmt.Errorf("grammar %s: symbol %s is terminal and non-terminal", name, a)
		}
		g.terminals.Add(a)
	}
	if !g.nonterminals.Contains(start) {
		return nil, fmt.Errorf("grammar %s: start symbol %q is not a non-terminal", name, start)
	}
	for _, A := range g.nonterminals.Values() {
		g.rules[A] = treeset.NewWith(ruleComparator)
	}
	for A, rhss := range rules {
		if !g.nonterminals.Contains(A) {
			return nil, Errorf(UnrecognizedSymbol, "left hand side %s is not a non-terminal", A)
		}
		for _, rhs := range rhss {
			r := Rule{}.concat(rhs...) // copy, strip ε
			for _, X := range r.Symbols() {
				if !g.IsTerminal(X) && !g.IsNonTerminal(X) {
					return nil, Errorf(UnrecognizedSymbol, "symbol %q in rule %s → %s", X, A, r)
				}
			}
			g.rules[A].Add(r)
		}
	}
	return g, nil
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Terminals returns all terminals in ascending order.
func (g *Grammar) Terminals() []Symbol {
	return g.terminals.Values()
}

// NonTerminals returns all non-terminals in ascending order.
func (g *Grammar) NonTerminals() []Symbol {
	return g.nonterminals.Values()
}

// IsTerminal is true if sym is a terminal of g.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	return g.terminals.Contains(sym)
}

// IsNonTerminal is true if sym is a non-terminal of g.
func (g *Grammar) IsNonTerminal(sym Symbol) bool {
	return g.nonterminals.Contains(sym)
}

// Rules returns the rules of non-terminal A in ascending order.
func (g *Grammar) Rules(A Symbol) []Rule {
	R, ok := g.rules[A]
	if !ok {
		return nil
	}
	rules := make([]Rule, 0, R.Size())
	it := R.Iterator()
	for it.Next() {
		rules = append(rules, it.Value().(Rule))
	}
	return rules
}

// HasRule checks if A → rhs is a production of g.
func (g *Grammar) HasRule(A Symbol, rhs Rule) bool {
	R, ok := g.rules[A]
	return ok && R.Contains(Rule{}.concat(rhs...))
}

// Productions returns all productions of g, ordered by left hand side, then by
// right hand side. The position of a production within this slice is its
// index for parser tables.
func (g *Grammar) Productions() []Production {
	prods := make([]Production, 0, 2*g.nonterminals.Size())
	for _, A := range g.NonTerminals() {
		for _, r := range g.Rules(A) {
			prods = append(prods, Production{LHS: A, RHS: r})
		}
	}
	return prods
}

// Size returns the number of productions of g.
func (g *Grammar) Size() int {
	cnt := 0
	for _, R := range g.rules {
		cnt += R.Size()
	}
	return cnt
}

// FreshSymbol returns a non-terminal name derived from base which is not yet
// used by g. Primes are appended to base until the name is unused.
func (g *Grammar) FreshSymbol(base Symbol) Symbol {
	return freshSymbol(base, func(s Symbol) bool {
		return g.IsTerminal(s) || g.IsNonTerminal(s)
	})
}

func freshSymbol(base Symbol, taken func(Symbol) bool) Symbol {
	s := base + "'"
	for taken(s) {
		s += "'"
	}
	return s
}

// derive creates a new grammar with the symbols of g and a new rule map.
// Additional non-terminals may be given.
func (g *Grammar) derive(rules map[Symbol][]Rule, start Symbol, nonterms ...Symbol) (*Grammar, error) {
	N := append(g.NonTerminals(), nonterms...)
	return NewGrammar(g.Name, N, g.Terminals(), rules, start)
}

// ruleMap returns a copy of the rules of g as a map.
func (g *Grammar) ruleMap() map[Symbol][]Rule {
	m := make(map[Symbol][]Rule, len(g.rules))
	for _, A := range g.NonTerminals() {
		m[A] = g.Rules(A)
	}
	return m
}

// Dump traces all productions at debug level.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s -------------------------------", g.Name)
	for i, p := range g.Productions() {
		tracer().Debugf("%3d: %s", i, p)
	}
	tracer().Debugf("start = %s, terminals = %v", g.start, g.terminals)
	tracer().Debugf("---------------------------------------------")
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar %s (%d productions)", g.Name, g.Size())
}
