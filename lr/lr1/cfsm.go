package lr1

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/gramma/lr"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     int      // serial ID of this state
	Items  *ItemSet // LR(1) items within this state
	Accept bool     // is this an accepting state?
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label lr.Symbol
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	s.Items.Dump()
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.Items.Size())
}

// Create a state from an item set
func state(id int, iset *ItemSet, start lr.Symbol) *CFSMState {
	s := &CFSMState{ID: id, Items: iset}
	for _, i := range iset.Items() {
		if i.Production.LHS == start && i.Completed() && i.Lookahead == lr.EOF {
			s.Accept = true
		}
	}
	return s
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e. the
// canonical collection of LR(1) item sets together with the goto transitions.
// It will be constructed by a TableGenerator and is frozen afterwards.
// Clients normally do not use it directly. Nevertheless, there are some methods
// defined on it, e.g, for debugging purposes.
type CFSM struct {
	g        *lr.Grammar
	states   *treeset.Set              // all the states
	edges    *arraylist.List           // all the edges between states
	byDigest map[string][]*CFSMState   // states by digest of their item set
	next     map[int]map[lr.Symbol]int // transitions
	S0       *CFSMState                // start state
	cfsmIds  int                       // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *lr.Grammar) *CFSM {
	return &CFSM{
		g:        g,
		states:   treeset.NewWith(stateComparator),
		edges:    arraylist.New(),
		byDigest: make(map[string][]*CFSMState),
		next:     make(map[int]map[lr.Symbol]int),
	}
}

// Add a state to the CFSM. Checks first if an equal state is present.
// Returns the state and true if it has been newly created.
func (c *CFSM) addState(iset *ItemSet) (*CFSMState, bool) {
	digest := iset.Digest()
	for _, s := range c.byDigest[digest] {
		if s.Items.Equals(iset) {
			return s, false
		}
	}
	s := state(c.cfsmIds, iset, c.g.Start())
	c.cfsmIds++
	c.states.Add(s)
	c.byDigest[digest] = append(c.byDigest[digest], s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym lr.Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
	if c.next[s0.ID] == nil {
		c.next[s0.ID] = make(map[lr.Symbol]int)
	}
	c.next[s0.ID][sym] = s1.ID
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	states := make([]*CFSMState, 0, c.states.Size())
	it := c.states.Iterator()
	for it.Next() {
		states = append(states, it.Value().(*CFSMState))
	}
	return states
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.states.Size() {
		return nil
	}
	return c.States()[id]
}

// Transition returns the state reached from state from by symbol X.
func (c *CFSM) Transition(from int, X lr.Symbol) (int, bool) {
	to, ok := c.next[from][X]
	return to, ok
}

// EdgeCount returns the number of transitions.
func (c *CFSM) EdgeCount() int {
	return c.edges.Size()
}

// Construct the canonical collection of LR(1) item sets. State 0 is the closure of
// the start items [S' → · γ, $]. Every state is checked for transitions on
// terminals, $ and non-terminals (in this order), until no new state appears.
// If maxStates is positive and the collection grows larger, construction fails.
func buildCFSM(ga *lr.Analysis, maxStates int) (*CFSM, error) {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.Grammar()
	cfsm := emptyCFSM(G)
	start := NewItemSet()
	for _, r := range G.Rules(G.Start()) {
		start.Add(StartItem(lr.Production{LHS: G.Start(), RHS: r}, lr.EOF))
	}
	cfsm.S0, _ = cfsm.addState(Closure(ga, start))
	cfsm.S0.Dump()
	symbols := append(G.Terminals(), lr.EOF)
	symbols = append(symbols, G.NonTerminals()...)
	worklist := []*CFSMState{cfsm.S0}
	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]
		for _, A := range symbols {
			gotoset := Goto(ga, s.Items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				if maxStates > 0 && cfsm.Size() > maxStates {
					return nil, fmt.Errorf("LR(1) collection for %s exceeds %d states", G.Name, maxStates)
				}
				tracer().Debugf("goto(%d, %s) = new state %d", s.ID, A, snew.ID)
				snew.Dump()
				worklist = append(worklist, snew)
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for %s has %d states and %d edges", G.Name, cfsm.Size(), cfsm.EdgeCount())
	return cfsm, nil
}

// ToGraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.Items)))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			escapeGraphviz(string(edge.label))))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(iset *ItemSet) string {
	var b strings.Builder
	for _, i := range iset.Items() {
		b.WriteString(escapeGraphviz(i.String()))
		b.WriteString("\\l")
	}
	return b.String()
}

var graphvizEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeGraphviz(s string) string {
	return graphvizEscaper.Replace(s)
}
