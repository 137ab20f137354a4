package gramma

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/ll1"
	"github.com/npillmayer/gramma/lr/lr1"
)

// ParserKind selects the parsing method for a grammar.
type ParserKind int

// Parser kinds.
const (
	LL1 ParserKind = iota + 1 // predictive LL(1) parser
	LR1                       // canonical LR(1) parser
)

func (k ParserKind) String() string {
	switch k {
	case LL1:
		return "LL(1)"
	case LR1:
		return "LR(1)"
	}
	return fmt.Sprintf("parser kind %d", int(k))
}

// ParserKindFromString returns the parser kind for a name like "ll1" or "LR(1)".
func ParserKindFromString(s string) (ParserKind, error) {
	switch strings.ToLower(strings.NewReplacer("(", "", ")", "").Replace(s)) {
	case "ll1", "ll":
		return LL1, nil
	case "lr1", "lr":
		return LR1, nil
	}
	return 0, fmt.Errorf("unknown parser kind %q", s)
}

// Parser is the common interface of LL(1) and LR(1) parsers.
type Parser interface {
	Kind() ParserKind
	Grammar() *lr.Grammar   // grammar after transformations
	Analysis() *lr.Analysis // analysis of the transformed grammar
	Parse(input []lr.Symbol) (lr.Trace, error)
}

// Option configures parsers created by NewParser.
type Option func(*options)

type options struct {
	analysis    []lr.AnalysisOption
	keepEpsilon bool
	maxStates   int
}

// WithFirstMode selects how FIRST sets of symbol sequences are computed.
func WithFirstMode(m lr.FirstMode) Option {
	return func(o *options) {
		o.analysis = append(o.analysis, lr.WithFirstMode(m))
	}
}

// KeepEpsilon keeps epsilon-productions for LR(1) parsers. It has no effect on LL(1) parsers.
func KeepEpsilon() Option {
	return func(o *options) {
		o.keepEpsilon = true
	}
}

// MaxStates limits the number of LR(1) states. It has no effect on LL(1) parsers.
func MaxStates(n int) Option {
	return func(o *options) {
		o.maxStates = n
	}
}

// NewParser creates a parser of kind k for grammar g. Grammar transformations,
// analysis and table construction are performed according to the kind, and any
// error of this pipeline is returned. Conflicts match lr.ErrGrammarConflict.
func NewParser(k ParserKind, g *lr.Grammar, opts ...Option) (Parser, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	tracer().Infof("creating %s parser for %s", k, g.Name)
	switch k {
	case LL1:
		p, err := ll1.NewParser(g, ll1.AnalysisOptions(o.analysis...))
		if err != nil {
			return nil, err
		}
		return llParser{p}, nil
	case LR1:
		lropts := []lr1.Option{lr1.AnalysisOptions(o.analysis...), lr1.MaxStates(o.maxStates)}
		if o.keepEpsilon {
			lropts = append(lropts, lr1.KeepEpsilon())
		}
		p, err := lr1.NewParser(g, lropts...)
		if err != nil {
			return nil, err
		}
		return lrParser{p}, nil
	}
	return nil, fmt.Errorf("cannot create parser: %v", k)
}

type llParser struct {
	*ll1.Parser
}

func (p llParser) Kind() ParserKind {
	return LL1
}

type lrParser struct {
	*lr1.Parser
}

func (p lrParser) Kind() ParserKind {
	return LR1
}

// LL1Parser returns the LL(1) parser behind p, if p is of kind LL1.
func LL1Parser(p Parser) (*ll1.Parser, bool) {
	llp, ok := p.(llParser)
	return llp.Parser, ok
}

// LR1Parser returns the LR(1) parser behind p, if p is of kind LR1.
func LR1Parser(p Parser) (*lr1.Parser, bool) {
	lrp, ok := p.(lrParser)
	return lrp.Parser, ok
}
