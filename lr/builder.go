package lr

import "fmt"

// GrammarBuilder is a builder type for grammars. Create one with NewGrammarBuilder
// and add rules with LHS(…). Symbols are classified by the builder methods used
// to add them: N(…) adds a non-terminal, T(…) a terminal. The left hand side of
// the first rule is the start symbol, unless set otherwise with StartWith.
type GrammarBuilder struct {
	name    string
	start   Symbol
	nonterm []Symbol
	term    []Symbol
	kind    map[Symbol]bool // true = non-terminal
	rules   map[Symbol][]Rule
	err     error
}

// RuleBuilder collects the right hand side of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs Symbol
	rhs Rule
}

// NewGrammarBuilder creates a builder for a grammar named name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:  name,
		kind:  make(map[Symbol]bool),
		rules: make(map[Symbol][]Rule),
	}
}

// LHS starts a new rule for non-terminal s.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	A := Symbol(s)
	gb.declare(A, true)
	if gb.start == "" {
		gb.start = A
	}
	return &RuleBuilder{gb: gb, lhs: A}
}

// StartWith sets the start symbol, overriding the first left hand side.
func (gb *GrammarBuilder) StartWith(s string) *GrammarBuilder {
	gb.start = Symbol(s)
	return gb
}

func (gb *GrammarBuilder) declare(sym Symbol, nonterm bool) {
	if k, ok := gb.kind[sym]; ok {
		if k != nonterm && gb.err == nil {
			gb.err = fmt.Errorf("grammar %s: symbol %s used as terminal and non-terminal", gb.name, sym)
		}
		return
	}
	gb.kind[sym] = nonterm
	if nonterm {
		gb.nonterm = append(gb.nonterm, sym)
	} else {
		gb.term = append(gb.term, sym)
	}
}

// N appends a non-terminal to the right hand side.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	A := Symbol(s)
	rb.gb.declare(A, true)
	rb.rhs = append(rb.rhs, A)
	return rb
}

// T appends a terminal to the right hand side.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	a := Symbol(s)
	rb.gb.declare(a, false)
	rb.rhs = append(rb.rhs, a)
	return rb
}

// End finishes the rule and returns it as a production.
func (rb *RuleBuilder) End() Production {
	r := Rule{}.concat(rb.rhs...)
	rb.gb.rules[rb.lhs] = append(rb.gb.rules[rb.lhs], r)
	return Production{LHS: rb.lhs, RHS: r}
}

// Epsilon finishes the rule as an epsilon rule, ignoring symbols added so far.
func (rb *RuleBuilder) Epsilon() Production {
	rb.rhs = nil
	return rb.End()
}

// Grammar creates the grammar. Errors from misclassified symbols are reported
// here, as well as all errors reported by NewGrammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	return NewGrammar(gb.name, gb.nonterm, gb.term, gb.rules, gb.start)
}
