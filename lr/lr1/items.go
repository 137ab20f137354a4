package lr1

import (
	"bytes"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/gramma/lr"
)

// Augment returns a grammar with a fresh start symbol S' and an additional
// rule S' → S, where S is the start symbol of g. Completing S' → S with
// lookahead $ is the accept action of an LR parser.
func Augment(g *lr.Grammar) (*lr.Grammar, error) {
	S1 := g.FreshSymbol(g.Start())
	rules := map[lr.Symbol][]lr.Rule{
		S1: {{g.Start()}},
	}
	for _, p := range g.Productions() {
		rules[p.LHS] = append(rules[p.LHS], p.RHS)
	}
	N := append(g.NonTerminals(), S1)
	return lr.NewGrammar(g.Name, N, g.Terminals(), rules, S1)
}

// --- Items -----------------------------------------------------------------

// Item is an LR(1) item [A → α · β, a]: a production, a position within
// the right hand side and a lookahead terminal.
type Item struct {
	Production lr.Production
	Dot        int
	Lookahead  lr.Symbol
}

// StartItem creates an item with the dot at the start of the right hand side.
func StartItem(p lr.Production, la lr.Symbol) Item {
	return Item{Production: p, Lookahead: la}
}

func (i Item) rhs() []lr.Symbol {
	return i.Production.RHS.Symbols()
}

// PeekSymbol returns the symbol after the dot. For completed items, the
// second return value is false.
func (i Item) PeekSymbol() (lr.Symbol, bool) {
	rhs := i.rhs()
	if i.Dot >= len(rhs) {
		return "", false
	}
	return rhs[i.Dot], true
}

// Completed is true if the dot is behind the right hand side.
func (i Item) Completed() bool {
	return i.Dot >= len(i.rhs())
}

// Advance moves the dot over the next symbol.
func (i Item) Advance() Item {
	if i.Completed() {
		return i
	}
	i.Dot++
	return i
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []lr.Symbol {
	return i.rhs()[:i.Dot]
}

// rest returns the symbols behind the symbol after the dot.
func (i Item) rest() []lr.Symbol {
	rhs := i.rhs()
	if i.Dot+1 >= len(rhs) {
		return nil
	}
	return rhs[i.Dot+1:]
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString("[")
	b.WriteString(string(i.Production.LHS))
	b.WriteString(" →")
	for k, X := range i.rhs() {
		if k == i.Dot {
			b.WriteString(" ·")
		}
		b.WriteString(" ")
		b.WriteString(string(X))
	}
	if i.Completed() {
		b.WriteString(" ·")
	}
	b.WriteString(", ")
	b.WriteString(string(i.Lookahead))
	b.WriteString("]")
	return b.String()
}

// CompareItems orders items by production, then dot position, then lookahead.
func CompareItems(i1, i2 Item) int {
	if c := lr.CompareProductions(i1.Production, i2.Production); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.Dot, i2.Dot); c != 0 {
		return c
	}
	return strings.Compare(string(i1.Lookahead), string(i2.Lookahead))
}

func itemComparator(i1, i2 interface{}) int {
	return CompareItems(i1.(Item), i2.(Item))
}

// --- Item sets -------------------------------------------------------------

// ItemSet is an ordered set of LR(1) items. Item sets are compared by value.
type ItemSet struct {
	items *treeset.Set
}

// NewItemSet creates an item set containing items.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{items: treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.items.Add(i)
	}
	return S
}

// Add inserts an item and reports if it has not been present before.
func (S *ItemSet) Add(i Item) bool {
	if S.items.Contains(i) {
		return false
	}
	S.items.Add(i)
	return true
}

// Contains checks if item i is in S.
func (S *ItemSet) Contains(i Item) bool {
	return S.items.Contains(i)
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return S.items.Size()
}

// Empty is true for an item set without items.
func (S *ItemSet) Empty() bool {
	return S.items.Empty()
}

// Items returns the items of S in order.
func (S *ItemSet) Items() []Item {
	items := make([]Item, 0, S.items.Size())
	it := S.items.Iterator()
	for it.Next() {
		items = append(items, it.Value().(Item))
	}
	return items
}

// Copy returns a copy of S.
func (S *ItemSet) Copy() *ItemSet {
	return NewItemSet(S.Items()...)
}

// Equals compares two item sets by value.
func (S *ItemSet) Equals(other *ItemSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it1, it2 := S.items.Iterator(), other.items.Iterator()
	for it1.Next() && it2.Next() {
		if CompareItems(it1.Value().(Item), it2.Value().(Item)) != 0 {
			return false
		}
	}
	return true
}

// itemSetDigest is the hashable form of an item set.
type itemSetDigest struct {
	Items []string
}

// Digest returns a hash of the items of S. Equal item sets have equal digests.
func (S *ItemSet) Digest() string {
	d := itemSetDigest{Items: make([]string, 0, S.Size())}
	for _, i := range S.Items() {
		d.Items = append(d.Items, i.String())
	}
	h, err := structhash.Hash(d, 1)
	if err != nil {
		tracer().Errorf("cannot hash item set: %v", err)
		return strings.Join(d.Items, "\n")
	}
	return h
}

func (S *ItemSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, i := range S.Items() {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}

// Dump traces the items of S at debug level.
func (S *ItemSet) Dump() {
	for _, i := range S.Items() {
		tracer().Debugf("    %v", i)
	}
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.3 LR(1) Parsing

// Closure computes the closure of an item set: for every item [A → α · B β, a]
// with B a non-terminal, items [B → · γ, b] are added for every rule B → γ and
// every b in FIRST(β a). Items are processed with a worklist until no new item
// appears.
func Closure(ga *lr.Analysis, S *ItemSet) *ItemSet {
	g := ga.Grammar()
	C := S.Copy()
	worklist := S.Items()
	for len(worklist) > 0 {
		i := worklist[0]
		worklist = worklist[1:]
		B, ok := i.PeekSymbol()
		if !ok || !g.IsNonTerminal(B) {
			continue
		}
		lookaheads := ga.Lookaheads(i.rest(), i.Lookahead).Values()
		for _, r := range g.Rules(B) {
			for _, b := range lookaheads {
				j := StartItem(lr.Production{LHS: B, RHS: r}, b)
				if C.Add(j) {
					worklist = append(worklist, j)
				}
			}
		}
	}
	return C
}

// Goto computes the closure of all items of S with the dot moved over X.
// If no item of S has X after the dot, the result is empty.
func Goto(ga *lr.Analysis, S *ItemSet, X lr.Symbol) *ItemSet {
	G := NewItemSet()
	for _, i := range S.Items() {
		if A, ok := i.PeekSymbol(); ok && A == X {
			G.Add(i.Advance())
		}
	}
	if G.Empty() {
		return G
	}
	return Closure(ga, G)
}
