package lr

// FirstMode selects how FIRST of a symbol sequence is computed.
type FirstMode int

const (
	// TextbookFirst concatenates FIRST sets across leading nullable symbols.
	TextbookFirst FirstMode = iota
	// LeadingSymbolFirst considers the first symbol of a sequence only.
	LeadingSymbolFirst
)

func (m FirstMode) String() string {
	if m == LeadingSymbolFirst {
		return "leading"
	}
	return "textbook"
}

// AnalysisOption configures an analysis.
type AnalysisOption func(*Analysis)

// WithFirstMode sets the mode for FIRST-sets of symbol sequences. The default is
// TextbookFirst.
func WithFirstMode(m FirstMode) AnalysisOption {
	return func(ga *Analysis) {
		ga.mode = m
	}
}

// Analysis holds FIRST- and FOLLOW-sets for the non-terminals of a grammar, as
// well as the set of nullable non-terminals. An analysis is computed once for a
// grammar and never changes afterwards. A transformed grammar needs a new analysis.
type Analysis struct {
	g        *Grammar
	mode     FirstMode
	nullable *SymbolSet
	first    map[Symbol]*SymbolSet
	follow   map[Symbol]*SymbolSet
}

// Analyze computes the nullable set, FIRST- and FOLLOW-sets for g.
// All sets are computed with worklist algorithms.
func Analyze(g *Grammar, opts ...AnalysisOption) (*Analysis, error) {
	ga := &Analysis{
		g:        g,
		nullable: NewSymbolSet(),
		first:    make(map[Symbol]*SymbolSet),
		follow:   make(map[Symbol]*SymbolSet),
	}
	for _, opt := range opts {
		opt(ga)
	}
	if err := ga.checkSymbols(); err != nil {
		tracer().Errorf(err.Error())
		return nil, err
	}
	for _, A := range g.NonTerminals() {
		ga.first[A] = NewSymbolSet()
		ga.follow[A] = NewSymbolSet()
	}
	ga.computeNullable()
	ga.computeFirstSets()
	if err := ga.computeFollowSets(); err != nil {
		return nil, err
	}
	tracer().Infof("analysis of %s: %d nullable, mode %s", g.Name, ga.nullable.Size(), ga.mode)
	return ga, nil
}

// Grammar returns the grammar this analysis is for.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

// Mode returns the FIRST mode of the analysis.
func (ga *Analysis) Mode() FirstMode {
	return ga.mode
}

// Nullable is true if non-terminal A derives ε.
func (ga *Analysis) Nullable(A Symbol) bool {
	return ga.nullable.Contains(A)
}

// NullableSet returns the set of nullable non-terminals.
func (ga *Analysis) NullableSet() *SymbolSet {
	return ga.nullable.Copy()
}

// First returns FIRST(A) for a non-terminal A, possibly containing ε.
// For symbols other than non-terminals, First returns an empty set.
func (ga *Analysis) First(A Symbol) *SymbolSet {
	if F, ok := ga.first[A]; ok {
		return F.Copy()
	}
	return NewSymbolSet()
}

// Follow returns FOLLOW(A) for a non-terminal A, possibly containing $.
func (ga *Analysis) Follow(A Symbol) *SymbolSet {
	if F, ok := ga.follow[A]; ok {
		return F.Copy()
	}
	return NewSymbolSet()
}

// FirstOfSymbol returns FIRST(X) for any grammar symbol X, including ε and $.
// It fails with UnrecognizedSymbol for unknown symbols.
func (ga *Analysis) FirstOfSymbol(X Symbol) (*SymbolSet, error) {
	switch {
	case X == Epsilon || X == EOF || ga.g.IsTerminal(X):
		return NewSymbolSet(X), nil
	case ga.g.IsNonTerminal(X):
		return ga.first[X].Copy(), nil
	}
	return nil, Errorf(UnrecognizedSymbol, "symbol %q is not part of grammar %s", X, ga.g.Name)
}

// FirstOfSequence returns FIRST(X1 … Xn). With TextbookFirst, the result
// contains the FIRST sets of all symbols up to the first non-nullable one, and
// ε only if all symbols are nullable. With LeadingSymbolFirst, it is FIRST(X1).
// FIRST of the empty sequence is { ε }.
func (ga *Analysis) FirstOfSequence(seq Rule) (*SymbolSet, error) {
	syms := Rule{}.concat(seq...).Symbols()
	if len(syms) == 0 {
		return NewSymbolSet(Epsilon), nil
	}
	if ga.mode == LeadingSymbolFirst {
		return ga.FirstOfSymbol(syms[0])
	}
	F := NewSymbolSet()
	for _, X := range syms {
		fx, err := ga.FirstOfSymbol(X)
		if err != nil {
			return nil, err
		}
		F.Union(fx, Epsilon)
		if !fx.Contains(Epsilon) {
			return F, nil
		}
	}
	F.Add(Epsilon)
	return F, nil
}

// Lookaheads returns FIRST(β b), where b is a terminal or $. It always
// concatenates across nullable symbols, independent of the analysis mode, as
// LR(1) lookaheads have to be terminals. Unknown symbols in β are ignored.
func (ga *Analysis) Lookaheads(beta []Symbol, b Symbol) *SymbolSet {
	L := NewSymbolSet()
	for _, X := range beta {
		if X == Epsilon {
			continue
		}
		if !ga.g.IsNonTerminal(X) {
			L.Add(X)
			return L
		}
		L.Union(ga.first[X], Epsilon)
		if !ga.nullable.Contains(X) {
			return L
		}
	}
	L.Add(b)
	return L
}

// checkSymbols makes sure every rule symbol is known. Grammars created by
// NewGrammar never fail this check.
func (ga *Analysis) checkSymbols() error {
	for _, p := range ga.g.Productions() {
		for _, X := range p.RHS {
			if X != Epsilon && !ga.g.IsTerminal(X) && !ga.g.IsNonTerminal(X) {
				return Errorf(UnrecognizedSymbol, "symbol %q in %v", X, p)
			}
		}
	}
	return nil
}

// --- Nullable --------------------------------------------------------------

// computeNullable finds all non-terminals deriving ε. For every production we
// count the symbols not yet known to be nullable. Whenever a non-terminal becomes
// nullable, the counters of all productions using it are decremented. A
// production with a counter of 0 makes its left hand side nullable.
func (ga *Analysis) computeNullable() {
	prods := ga.g.Productions()
	pending := make([]int, len(prods))
	users := make(map[Symbol][]int)
	var worklist []Symbol
	for i, p := range prods {
		if p.RHS.IsEpsilon() {
			if ga.nullable.Add(p.LHS) {
				worklist = append(worklist, p.LHS)
			}
			continue
		}
		for _, X := range p.RHS {
			if ga.g.IsTerminal(X) {
				pending[i] = -1 // never nullable
				break
			}
			pending[i]++
			users[X] = append(users[X], i)
		}
	}
	for len(worklist) > 0 {
		B := worklist[0]
		worklist = worklist[1:]
		for _, i := range users[B] {
			if pending[i] <= 0 {
				continue
			}
			pending[i]--
			if pending[i] == 0 && ga.nullable.Add(prods[i].LHS) {
				tracer().Debugf("%s is nullable by %v", prods[i].LHS, prods[i])
				worklist = append(worklist, prods[i].LHS)
			}
		}
	}
}

// --- FIRST -----------------------------------------------------------------

// computeFirstSets collects the terminals directly starting a rule of A and
// records for every non-terminal B leading a rule of A that FIRST(B) flows into
// FIRST(A). With TextbookFirst, all symbols up to the first non-nullable one
// lead a rule. The flow edges are then followed with a worklist until no set
// grows any more.
func (ga *Analysis) computeFirstSets() {
	flowsInto := make(map[Symbol][]Symbol) // B -> all A with FIRST(B) ⊆ FIRST(A)
	for _, p := range ga.g.Productions() {
		A := p.LHS
		for _, X := range p.RHS.Symbols() {
			if ga.g.IsTerminal(X) {
				ga.first[A].Add(X)
				break
			}
			if X != A {
				flowsInto[X] = append(flowsInto[X], A)
			}
			if ga.mode == LeadingSymbolFirst || !ga.nullable.Contains(X) {
				break
			}
		}
	}
	for _, A := range ga.nullable.Values() {
		ga.first[A].Add(Epsilon)
	}
	worklist := ga.g.NonTerminals()
	for len(worklist) > 0 {
		B := worklist[0]
		worklist = worklist[1:]
		for _, A := range flowsInto[B] {
			if ga.first[A].Union(ga.first[B], Epsilon) {
				tracer().Debugf("FIRST(%s) = %v", A, ga.first[A])
				worklist = append(worklist, A)
			}
		}
	}
}

// --- FOLLOW ----------------------------------------------------------------

// computeFollowSets seeds FOLLOW(start) with $. For every production A → α and
// every non-terminal B in α, FIRST of the remainder of α after B (without ε)
// is added to FOLLOW(B). Walking α from right to left, every non-terminal
// reached before a terminal or a non-nullable non-terminal (and including the
// latter) receives FOLLOW(A). These trailing relations are recorded as flow
// edges and resolved with a worklist.
func (ga *Analysis) computeFollowSets() error {
	ga.follow[ga.g.Start()].Add(EOF)
	flowsInto := make(map[Symbol][]Symbol) // A -> all B with FOLLOW(A) ⊆ FOLLOW(B)
	for _, p := range ga.g.Productions() {
		rhs := p.RHS.Symbols()
		for i, B := range rhs {
			if !ga.g.IsNonTerminal(B) || i == len(rhs)-1 {
				continue
			}
			F, err := ga.FirstOfSequence(rhs[i+1:])
			if err != nil {
				return err
			}
			ga.follow[B].Union(F, Epsilon)
		}
		for i := len(rhs) - 1; i >= 0; i-- {
			X := rhs[i]
			if !ga.g.IsNonTerminal(X) {
				break
			}
			if X != p.LHS {
				flowsInto[p.LHS] = append(flowsInto[p.LHS], X)
			}
			if !ga.nullable.Contains(X) {
				break
			}
		}
	}
	worklist := ga.g.NonTerminals()
	for len(worklist) > 0 {
		A := worklist[0]
		worklist = worklist[1:]
		for _, B := range flowsInto[A] {
			if ga.follow[B].Union(ga.follow[A]) {
				tracer().Debugf("FOLLOW(%s) = %v", B, ga.follow[B])
				worklist = append(worklist, B)
			}
		}
	}
	return nil
}
