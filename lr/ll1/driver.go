package ll1

import (
	"fmt"

	"github.com/npillmayer/gramma/lr"
)

// Option configures an LL(1) parser.
type Option func(p *Parser)

// AnalysisOptions passes options to the grammar analysis.
func AnalysisOptions(opts ...lr.AnalysisOption) Option {
	return func(p *Parser) {
		p.analysisOpts = append(p.analysisOpts, opts...)
	}
}

// Parser is an LL(1) parser. Create one with NewParser.
type Parser struct {
	g            *lr.Grammar // grammar after left recursion removal
	ga           *lr.Analysis
	table        *Table
	analysisOpts []lr.AnalysisOption
}

// NewParser prepares a parser for grammar g. Left recursion is removed from g,
// the result is analysed and a predictive table is built. Any error of this
// pipeline is returned, in particular conflicts for non-LL(1) grammars.
func NewParser(g *lr.Grammar, opts ...Option) (*Parser, error) {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	var err error
	if p.g, err = lr.RemoveImmediateLeftRecursion(g); err != nil {
		return nil, err
	}
	if p.ga, err = lr.Analyze(p.g, p.analysisOpts...); err != nil {
		return nil, err
	}
	if p.table, err = BuildTable(p.ga); err != nil {
		return nil, err
	}
	return p, nil
}

// NewParserFromTable creates a parser for a previously built table.
func NewParserFromTable(ga *lr.Analysis, t *Table) *Parser {
	return &Parser{g: ga.Grammar(), ga: ga, table: t}
}

// Grammar returns the grammar the parser works on, i.e. the grammar after left
// recursion has been removed.
func (p *Parser) Grammar() *lr.Grammar {
	return p.g
}

// Analysis returns the analysis of the parser's grammar.
func (p *Parser) Analysis() *lr.Analysis {
	return p.ga
}

// Table returns the predictive table.
func (p *Parser) Table() *Table {
	return p.table
}

// Parse runs the parser on a sequence of terminals until it either finishes or
// fails. It returns the trace of all steps. If the parser had to recover from
// syntax errors, the input is not part of the language and Parse returns an
// error matching lr.ErrSyntaxError together with the complete trace.
func (p *Parser) Parse(input []lr.Symbol) (lr.Trace, error) {
	run, err := p.Start(input)
	if err != nil {
		return nil, err
	}
	for {
		_, outcome, err := run.Step()
		switch outcome {
		case lr.Continue:
			continue
		case lr.Recovered:
			return run.Trace(), lr.Errorf(lr.SyntaxError, "input recovered %d times", run.Recoveries())
		}
		return run.Trace(), err
	}
}

// Run is a single parse of an input sequence. Steps are performed one at a time
// by calling Step.
type Run struct {
	p          *Parser
	stack      []lr.Symbol // bottom first
	input      []lr.Symbol // ends in $
	pos        int
	matched    []lr.Symbol
	trace      lr.Trace
	recoveries int
	outcome    lr.Outcome
	err        error
}

// Start prepares a parse of input. Input symbols have to be terminals of the
// grammar; a trailing $ is optional. Otherwise Start fails with
// lr.ErrUnrecognizedSymbol.
func (p *Parser) Start(input []lr.Symbol) (*Run, error) {
	in := make([]lr.Symbol, 0, len(input)+1)
	for i, a := range input {
		if a == lr.EOF && i == len(input)-1 {
			break
		}
		if !p.g.IsTerminal(a) {
			return nil, lr.Errorf(lr.UnrecognizedSymbol, "input symbol %q at position %d is not a terminal", a, i)
		}
		in = append(in, a)
	}
	in = append(in, lr.EOF)
	run := &Run{
		p:     p,
		stack: []lr.Symbol{lr.EOF, p.g.Start()},
		input: in,
	}
	return run, nil
}

// Step performs a single parser action. With X on top of the stack and a as the
// current input symbol:
//
//  - X = a: X is popped and the input advances (match)
//  - X is a terminal different from a: fatal, lr.ErrUnexpectedTerminal
//  - table entry (X, a) is a rule: X is replaced by the rule (predict)
//  - table entry is sync: X is popped (recovery)
//  - table entry is empty: a is skipped (recovery); at the end of input X is popped instead
//
// Step returns the step record and the outcome. After the parse has finished,
// Step returns the final step and outcome again.
func (r *Run) Step() (lr.Step, lr.Outcome, error) {
	if r.outcome != lr.Continue {
		last, _ := r.trace.Last()
		return last, r.outcome, r.err
	}
	X := r.stack[len(r.stack)-1]
	a := r.input[r.pos]
	step := lr.Step{
		Prefix: lr.SymbolString(r.matched),
		Stack:  r.stackString(),
		Input:  lr.SymbolString(r.input[r.pos:]),
	}
	switch {
	case X == a:
		r.pop()
		r.pos++
		if a != lr.EOF {
			r.matched = append(r.matched, a)
		}
		step.Kind = lr.MatchStep
		step.Action = "match " + string(a)
	case X == lr.EOF || r.p.g.IsTerminal(X):
		step.Kind = lr.ErrorStep
		step.Action = fmt.Sprintf("error, expected %s", X)
		r.err = lr.Errorf(lr.UnexpectedTerminal, "expected %s, have %s at position %d", X, a, r.pos)
		r.outcome = lr.Abort
	default:
		e, ok := r.p.table.Lookup(X, a)
		switch {
		case !ok && a != lr.EOF:
			r.pos++
			r.recoveries++
			step.Kind = lr.SkipStep
			step.Action = "error, skip " + string(a)
		case !ok || e.Sync:
			r.pop()
			r.recoveries++
			step.Kind = lr.PopStep
			step.Action = "error, pop " + string(X)
		default:
			r.pop()
			rhs := e.Rule.Symbols()
			for i := len(rhs) - 1; i >= 0; i-- {
				r.stack = append(r.stack, rhs[i])
			}
			step.Kind = lr.PredictStep
			step.Production = lr.Production{LHS: X, RHS: e.Rule}
			step.Action = "output " + step.Production.String()
		}
	}
	tracer().Debugf("%v", step)
	r.trace = append(r.trace, step)
	if r.outcome == lr.Continue && len(r.stack) == 0 {
		r.outcome = lr.Accept
		if r.recoveries > 0 {
			r.outcome = lr.Recovered
		}
	}
	return step, r.outcome, r.err
}

// Trace returns all steps performed so far.
func (r *Run) Trace() lr.Trace {
	return r.trace
}

// Recoveries returns the number of skip and pop steps performed so far.
func (r *Run) Recoveries() int {
	return r.recoveries
}

// Done is true if the run has finished, successfully or not.
func (r *Run) Done() bool {
	return r.outcome != lr.Continue
}

func (r *Run) pop() {
	r.stack = r.stack[:len(r.stack)-1]
}

// stackString lists the stack, top first.
func (r *Run) stackString() string {
	syms := make([]lr.Symbol, len(r.stack))
	for i, X := range r.stack {
		syms[len(r.stack)-1-i] = X
	}
	return lr.SymbolString(syms)
}
