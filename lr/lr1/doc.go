/*
Package lr1 provides a canonical LR(1) parser. Parse tables are constructed
from the canonical collection of LR(1) item sets, the characteristic finite
state machine (CFSM) of the grammar.

Usage

Clients construct a grammar, usually by using a grammar builder:

	b := lr.NewGrammarBuilder("Signed Variables Grammar")
	b.LHS("Var").N("Sign").T("a").End()  // Var  --> Sign a
	b.LHS("Sign").T("+").End()           // Sign --> +
	b.LHS("Sign").T("-").End()           // Sign --> -
	b.LHS("Sign").Epsilon()              // Sign -->
	g, err := b.Grammar()

NewParser augments the grammar with a new start rule S' → S, removes
epsilon-productions, analyses the result and creates the parse tables.

	p, err := lr1.NewParser(g)
	if errors.Is(err, lr.ErrGrammarConflict) { … }  // not an LR(1) grammar

Finally parse some input:

	trace, err := p.Parse([]lr.Symbol{"+", "a"})

Every shift, reduce and accept action is recorded in the trace. Syntax
errors are fatal for LR(1) parsing.

Tables may be inspected and exported for debugging: the CFSM can be exported
to Graphviz's Dot format, ACTION and GOTO tables to HTML.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramma.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramma.lr")
}
