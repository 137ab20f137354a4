package lr1

import (
	"fmt"

	"github.com/npillmayer/gramma/lr"
)

// Parser is an LR(1) parser. Create one with NewParser.
type Parser struct {
	g   *lr.Grammar // augmented grammar
	gen *TableGenerator
}

// NewParser prepares a parser for grammar g. The grammar is augmented and
// epsilon-productions are removed (unless option KeepEpsilon is set). The
// result is analysed and LR(1) tables are built. Any error of this pipeline is
// returned, in particular conflicts for non-LR(1) grammars.
func NewParser(g *lr.Grammar, opts ...Option) (*Parser, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	ag, err := Augment(g)
	if err != nil {
		return nil, err
	}
	if !s.keepEpsilon {
		if ag, err = lr.RemoveEpsilon(ag); err != nil {
			return nil, err
		}
	}
	ga, err := lr.Analyze(ag, s.analysisOpts...)
	if err != nil {
		return nil, err
	}
	gen := NewTableGenerator(ga, opts...)
	if err = gen.CreateTables(); err != nil {
		return nil, err
	}
	return &Parser{g: ag, gen: gen}, nil
}

// NewParserFromTables creates a parser from previously created tables.
func NewParserFromTables(gen *TableGenerator) *Parser {
	return &Parser{g: gen.Grammar(), gen: gen}
}

// Grammar returns the augmented grammar the parser works on.
func (p *Parser) Grammar() *lr.Grammar {
	return p.g
}

// Analysis returns the analysis of the parser's grammar.
func (p *Parser) Analysis() *lr.Analysis {
	return p.gen.Analysis()
}

// Tables returns the table generator holding the CFSM and the parse tables.
func (p *Parser) Tables() *TableGenerator {
	return p.gen
}

// Parse runs the parser on a sequence of terminals until it either accepts the
// input or fails. It returns the trace of all steps, including the failing one.
func (p *Parser) Parse(input []lr.Symbol) (lr.Trace, error) {
	run, err := p.Start(input)
	if err != nil {
		return nil, err
	}
	for {
		if _, outcome, err := run.Step(); outcome != lr.Continue {
			return run.Trace(), err
		}
	}
}

// Run is a single parse of an input sequence. Steps are performed one at a time
// by calling Step.
type Run struct {
	p       *Parser
	states  []int       // state stack, bottom first
	symbols []lr.Symbol // symbol stack, bottom first
	input   []lr.Symbol // ends in $
	pos     int
	trace   lr.Trace
	outcome lr.Outcome
	err     error
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
	return &Run{
		p:      p,
		states: []int{p.gen.CFSM().S0.ID},
		input:  in,
	}, nil
}

// Step performs a single parser action, determined by ACTION[s, a] for the
// state s on top of the stack and the current input symbol a:
//
//  - shift j: a and j are pushed and the input advances
//  - reduce A → γ: |γ| symbols and states are popped, A and GOTO[s', A] pushed
//  - accept: the parse finishes successfully
//  - empty: fatal, lr.ErrSyntaxError
//
// A reduction whose right hand side does not match the top of the symbol stack,
// or which finds no GOTO entry, fails with lr.ErrStackMismatch.
// After the parse has finished, Step returns the final step and outcome again.
func (r *Run) Step() (lr.Step, lr.Outcome, error) {
	if r.outcome != lr.Continue {
		last, _ := r.trace.Last()
		return last, r.outcome, r.err
	}
	s := r.states[len(r.states)-1]
	a := r.input[r.pos]
	step := lr.Step{
		Prefix: lr.SymbolString(r.symbols),
		Stack:  r.stackString(),
		Input:  lr.SymbolString(r.input[r.pos:]),
	}
	action := r.p.gen.Action(s, a)
	switch action.Kind {
	case ShiftAction:
		r.states = append(r.states, action.Value)
		r.symbols = append(r.symbols, a)
		r.pos++
		step.Kind = lr.ShiftStep
		step.Action = fmt.Sprintf("shift %d", action.Value)
	case ReduceAction:
		p := r.p.gen.Production(action.Value)
		step.Production = p
		if err := r.reduce(p); err != nil {
			r.fail(&step, err)
			break
		}
		step.Kind = lr.ReduceStep
		step.Action = "reduce " + p.String()
	case AcceptAction:
		step.Kind = lr.AcceptStep
		step.Action = "accept"
		r.outcome = lr.Accept
	default:
		r.fail(&step, lr.Errorf(lr.SyntaxError, "unexpected %s at position %d in state %d", a, r.pos, s))
	}
	tracer().Debugf("%v", step)
	r.trace = append(r.trace, step)
	return step, r.outcome, r.err
}

func (r *Run) reduce(p lr.Production) error {
	rhs := p.RHS.Symbols()
	n := len(rhs)
	if n > len(r.symbols) || n >= len(r.states) {
		return lr.Errorf(lr.StackMismatch, "cannot reduce %v, stack too short: %s", p, lr.SymbolString(r.symbols))
	}
	for k := 1; k <= n; k++ {
		if r.symbols[len(r.symbols)-k] != rhs[n-k] {
			return lr.Errorf(lr.StackMismatch, "cannot reduce %v, stack is %s", p, lr.SymbolString(r.symbols))
		}
	}
	r.symbols = r.symbols[:len(r.symbols)-n]
	r.states = r.states[:len(r.states)-n]
	s := r.states[len(r.states)-1]
	to, ok := r.p.gen.Goto(s, p.LHS)
	if !ok {
		return lr.Errorf(lr.StackMismatch, "no GOTO entry for state %d and %s", s, p.LHS)
	}
	r.symbols = append(r.symbols, p.LHS)
	r.states = append(r.states, to)
	return nil
}

func (r *Run) fail(step *lr.Step, err error) {
	step.Kind = lr.ErrorStep
	step.Action = "error"
	r.err = err
	r.outcome = lr.Abort
	tracer().Errorf(err.Error())
}

// Trace returns all steps performed so far.
func (r *Run) Trace() lr.Trace {
	return r.trace
}

// Done is true if the run has finished, successfully or not.
func (r *Run) Done() bool {
	return r.outcome != lr.Continue
}

func (r *Run) stackString() string {
	var b []byte
	for i, s := range r.states {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, fmt.Sprintf("%d", s)...)
	}
	return string(b)
}
