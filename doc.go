/*
Package gramma is a toolbox for context-free grammars. It analyses grammars
and creates table-driven LL(1) and LR(1) parsers for them. Package structure
is as follows:

■ lr: Package lr holds the grammar model, grammar analysis (nullable, FIRST
and FOLLOW sets) and grammar transformations. Sub-packages ll1 and lr1
implement predictive LL(1) parsing and canonical LR(1) parsing.

■ lr/scanner: Package scanner defines tokenizers for feeding input into parsers,
together with a lexmachine adapter in sub-package lexmach.

■ lr/grammarfile: Package grammarfile reads grammars from YAML, TOML or EBNF.

The base package contains token types which are used by the scanners, and a
factory for parsers of either kind:

	g, err := b.Grammar()                     // see lr.NewGrammarBuilder
	p, err := gramma.NewParser(gramma.LR1, g)
	trace, err := p.Parse(input)

Both kinds of parsers share the grammar analysis, but carry their own tables
and drivers.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gramma

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramma.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramma.lr")
}
