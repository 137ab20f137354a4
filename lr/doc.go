/*
Package lr implements the grammar model and the static grammar analysis shared by
the table-driven parsers of this module (packages ll1 and lr1).

Building a Grammar

Grammars are either constructed directly from sets of symbols and rules with
NewGrammar, or with a grammar builder object. Clients add rules, consisting of
non-terminal symbols and terminals. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("E").N("E").T("+").N("T").End()  // E  ->  E + T
    b.LHS("E").N("T").End()                // E  ->  T
    b.LHS("T").T("num").End()              // T  ->  num
    b.LHS("T").T("(").N("E").T(")").End()  // T  ->  ( E )
    g, err := b.Grammar()

The first left hand side symbol is the start symbol. Grammars are immutable;
all transformations return a new grammar.

   g.Dump()

   E → E + T
   E → T
   T → ( E )
   T → num

Static Grammar Analysis

After the grammar is complete, it has to be analysed. Analyze computes FIRST
and FOLLOW sets for the grammar and determines all nullable non-terminals.

    ga, err := lr.Analyze(g)
    for _, A := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", A, ga.First(A))
    }

    // Output:
    FIRST(E) = { ( num }
    FIRST(T) = { ( num }

Grammar Transformations

Predictive parsers cannot handle left recursion. RemoveImmediateLeftRecursion
rewrites every rule A → A α into right recursive form using a fresh non-terminal
A'. RemoveEpsilon eliminates epsilon rules by adding all variants of a rule with
nullable symbols erased.

Parse Traces

Both drivers (packages ll1 and lr1) report every parse step as a Step record.
A complete parse yields a Trace.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramma.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramma.lr")
}
