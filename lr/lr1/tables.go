package lr1

import (
	"fmt"
	"html"
	"io"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/sparse"
)

// ActionKind is the kind of an LR parser action.
type ActionKind int

// Parser actions. Empty table cells hold ErrorAction.
const (
	ErrorAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an entry of the ACTION table. For shift actions, Value is the
// target state; for reduce actions, Value is the index of the production.
type Action struct {
	Kind  ActionKind
	Value int
}

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("shift %d", a.Value)
	case ReduceAction:
		return fmt.Sprintf("reduce %d", a.Value)
	case AcceptAction:
		return "accept"
	}
	return "error"
}

// short form for table export
func (a Action) short() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Value)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Value)
	case AcceptAction:
		return "acc"
	}
	return "&nbsp;"
}

// Actions are encoded in the sparse ACTION matrix as follows:
// shift j = j, accept = -1, reduce p = -2-p.
func encode(a Action) int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.Value)
	case AcceptAction:
		return -1
	case ReduceAction:
		return int32(-2 - a.Value)
	}
	return sparse.DefaultNullValue
}

func decode(v int32) Action {
	switch {
	case v == sparse.DefaultNullValue:
		return Action{Kind: ErrorAction}
	case v >= 0:
		return Action{Kind: ShiftAction, Value: int(v)}
	case v == -1:
		return Action{Kind: AcceptAction}
	}
	return Action{Kind: ReduceAction, Value: int(-2 - v)}
}

// ConflictError is returned if two different actions claim the same cell of the
// ACTION table. It matches lr.ErrGrammarConflict.
type ConflictError struct {
	State     int
	Lookahead lr.Symbol
	Existing  Action
	Incoming  Action
	existing  string
	incoming  string
}

func (e *ConflictError) Error() string {
	kind := "reduce/reduce"
	if e.Existing.Kind == ShiftAction || e.Incoming.Kind == ShiftAction {
		kind = "shift/reduce"
	}
	return fmt.Sprintf("not an LR(1) grammar: %s conflict in state %d on %s between %s and %s",
		kind, e.State, e.Lookahead, e.existing, e.incoming)
}

// Unwrap makes a conflict match lr.ErrGrammarConflict.
func (e *ConflictError) Unwrap() error {
	return lr.ErrGrammarConflict
}

// Option configures table generation and LR(1) parsers.
type Option func(*settings)

type settings struct {
	maxStates    int
	keepEpsilon  bool
	analysisOpts []lr.AnalysisOption
}

// MaxStates limits the number of CFSM states. Table generation fails for
// grammars with larger canonical collections. 0 means no limit.
func MaxStates(n int) Option {
	return func(s *settings) {
		s.maxStates = n
	}
}

// KeepEpsilon tells NewParser not to remove epsilon-productions.
func KeepEpsilon() Option {
	return func(s *settings) {
		s.keepEpsilon = true
	}
}

// AnalysisOptions passes options to the grammar analysis of NewParser.
func AnalysisOptions(opts ...lr.AnalysisOption) Option {
	return func(s *settings) {
		s.analysisOpts = append(s.analysisOpts, opts...)
	}
}

// TableGenerator is a generator object to construct LR(1) parser tables.
// Clients usually create a Grammar G, augment it, then create an analysis
// for G, and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR(1)-parser recognizing grammar G.
//
// The start symbol of G must not occur on any right hand side; completing
// one of its rules with lookahead $ is the accept action.
type TableGenerator struct {
	g           *lr.Grammar
	ga          *lr.Analysis
	prods       []lr.Production
	prodIndex   map[string]int
	tcols       map[lr.Symbol]int // columns of ACTION table
	ncols       map[lr.Symbol]int // columns of GOTO table
	dfa         *CFSM
	gototable   *sparse.IntMatrix
	actiontable *sparse.IntMatrix
	settings    settings
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *lr.Analysis, opts ...Option) *TableGenerator {
	lrgen := &TableGenerator{
		g:         ga.Grammar(),
		ga:        ga,
		prodIndex: make(map[string]int),
		tcols:     make(map[lr.Symbol]int),
		ncols:     make(map[lr.Symbol]int),
	}
	for _, opt := range opts {
		opt(&lrgen.settings)
	}
	lrgen.prods = lrgen.g.Productions()
	for i, p := range lrgen.prods {
		lrgen.prodIndex[p.String()] = i
	}
	for i, a := range append(lrgen.g.Terminals(), lr.EOF) {
		lrgen.tcols[a] = i
	}
	for i, A := range lrgen.g.NonTerminals() {
		lrgen.ncols[A] = i
	}
	return lrgen
}

// Grammar returns the grammar the tables are built for.
func (lrgen *TableGenerator) Grammar() *lr.Grammar {
	return lrgen.g
}

// Analysis returns the grammar analysis the tables are built from.
func (lrgen *TableGenerator) Analysis() *lr.Analysis {
	return lrgen.ga
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
	}
	return lrgen.dfa
}

// Productions returns all productions, ordered by their index.
func (lrgen *TableGenerator) Productions() []lr.Production {
	return lrgen.prods
}

// Production returns the production with index i.
func (lrgen *TableGenerator) Production(i int) lr.Production {
	return lrgen.prods[i]
}

// CreateTables creates the CFSM and the ACTION and GOTO tables. For every state
//
//  - a completed item [A → α ·, a] creates a reduce action for a, or an accept
//    action if A is the start symbol
//  - an item [A → α · a β, b] with terminal a creates a shift action for a
//  - a transition on a non-terminal creates a GOTO entry
//
// If two different actions claim the same cell, CreateTables fails with a
// *ConflictError.
func (lrgen *TableGenerator) CreateTables() error {
	start := lrgen.g.Start()
	for _, p := range lrgen.prods {
		for _, X := range p.RHS {
			if X == start {
				return fmt.Errorf("start symbol %s occurs in %v; grammar has to be augmented", start, p)
			}
		}
	}
	dfa, err := buildCFSM(lrgen.ga, lrgen.settings.maxStates)
	if err != nil {
		tracer().Errorf(err.Error())
		return err
	}
	lrgen.dfa = dfa
	lrgen.gototable = lrgen.buildGotoTable()
	if lrgen.actiontable, err = lrgen.buildActionTable(); err != nil {
		return err
	}
	return nil
}

func (lrgen *TableGenerator) buildGotoTable() *sparse.IntMatrix {
	statescnt := lrgen.dfa.Size()
	tracer().Infof("GOTO table of size %d x %d", statescnt, len(lrgen.ncols))
	gototable := sparse.NewIntMatrix(statescnt, len(lrgen.ncols), sparse.DefaultNullValue)
	it := lrgen.dfa.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if col, ok := lrgen.ncols[e.label]; ok {
			gototable.Set(e.from.ID, col, int32(e.to.ID))
		}
	}
	return gototable
}

// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the LR(1) items within a CFSM-state.
func (lrgen *TableGenerator) buildActionTable() (*sparse.IntMatrix, error) {
	statescnt := lrgen.dfa.Size()
	tracer().Infof("ACTION table of size %d x %d", statescnt, len(lrgen.tcols))
	actions := sparse.NewIntMatrix(statescnt, len(lrgen.tcols), sparse.DefaultNullValue)
	for _, state := range lrgen.dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items.Items() {
			var la lr.Symbol
			var action Action
			if A, ok := i.PeekSymbol(); ok {
				if _, isTerm := lrgen.tcols[A]; !isTerm {
					continue
				}
				to, _ := lrgen.dfa.Transition(state.ID, A)
				la, action = A, Action{Kind: ShiftAction, Value: to}
			} else if i.Production.LHS == lrgen.g.Start() {
				la, action = i.Lookahead, Action{Kind: AcceptAction}
			} else {
				la = i.Lookahead
				action = Action{Kind: ReduceAction, Value: lrgen.prodIndex[i.Production.String()]}
			}
			if err := lrgen.setAction(actions, state.ID, la, action); err != nil {
				return nil, err
			}
		}
	}
	return actions, nil
}

func (lrgen *TableGenerator) setAction(actions *sparse.IntMatrix, state int, la lr.Symbol, action Action) error {
	col := lrgen.tcols[la]
	if v := actions.Value(state, col); v != actions.NullValue() {
		existing := decode(v)
		if existing == action {
			return nil
		}
		err := &ConflictError{
			State:     state,
			Lookahead: la,
			Existing:  existing,
			Incoming:  action,
			existing:  lrgen.describe(existing),
			incoming:  lrgen.describe(action),
		}
		tracer().Errorf(err.Error())
		return err
	}
	tracer().Debugf("    ACTION[%d, %s] = %s", state, la, lrgen.describe(action))
	actions.Set(state, col, encode(action))
	return nil
}

// describe is a short helper to stringify an action table entry.
func (lrgen *TableGenerator) describe(a Action) string {
	if a.Kind == ReduceAction {
		return "reduce " + lrgen.prods[a.Value].String()
	}
	return a.String()
}

// Action returns the ACTION table entry for a state and a lookahead.
// Unknown lookaheads and empty cells yield an error action.
func (lrgen *TableGenerator) Action(state int, la lr.Symbol) Action {
	col, ok := lrgen.tcols[la]
	if !ok || lrgen.actiontable == nil || state < 0 || state >= lrgen.actiontable.M() {
		return Action{Kind: ErrorAction}
	}
	return decode(lrgen.actiontable.Value(state, col))
}

// Goto returns the GOTO table entry for a state and a non-terminal.
func (lrgen *TableGenerator) Goto(state int, A lr.Symbol) (int, bool) {
	col, ok := lrgen.ncols[A]
	if !ok || lrgen.gototable == nil || state < 0 || state >= lrgen.gototable.M() {
		return 0, false
	}
	v := lrgen.gototable.Value(state, col)
	if v == lrgen.gototable.NullValue() {
		return 0, false
	}
	return int(v), true
}

// ActionCount returns the number of non-empty cells of the ACTION table.
func (lrgen *TableGenerator) ActionCount() int {
	cnt := 0
	if lrgen.actiontable != nil {
		lrgen.actiontable.Each(func(int, int, int32) { cnt++ })
	}
	return cnt
}

// ===========================================================================

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.gototable == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "GOTO", lrgen.g.NonTerminals(), func(state int, A lr.Symbol) string {
		if to, ok := lrgen.Goto(state, A); ok {
			return fmt.Sprintf("%d", to)
		}
		return "&nbsp;"
	}, w)
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.actiontable == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	parserTableAsHTML(lrgen, "ACTION", append(lrgen.g.Terminals(), lr.EOF), func(state int, a lr.Symbol) string {
		return lrgen.Action(state, a).short()
	}, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, symvec []lr.Symbol,
	cell func(int, lr.Symbol) string, w io.Writer) {
	//
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table for %d states<p>", tname, lrgen.dfa.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(string(A))))
	}
	io.WriteString(w, "</tr>\n")
	for _, state := range lrgen.dfa.States() {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", state.ID))
		for _, A := range symvec {
			io.WriteString(w, "<td>")
			io.WriteString(w, cell(state.ID, A))
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
