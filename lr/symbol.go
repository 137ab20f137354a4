package lr

import (
	"bytes"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// Symbol is a grammar symbol, i.e. either a terminal or a non-terminal.
// Terminals and non-terminals are distinguished by the grammar they belong to.
type Symbol string

// Reserved symbols.
const (
	Epsilon Symbol = "ε" // the empty word
	EOF     Symbol = "$" // end of input marker
)

func (s Symbol) String() string {
	return string(s)
}

// IsEpsilon is true for the empty word.
func (s Symbol) IsEpsilon() bool {
	return s == Epsilon
}

// SymbolComparator orders symbols lexicographically. It is used for gods containers.
func SymbolComparator(s1, s2 interface{}) int {
	return utils.StringComparator(string(s1.(Symbol)), string(s2.(Symbol)))
}

// --- Rules -----------------------------------------------------------------

// Rule is the right hand side of a production. The epsilon rule is
//
//     Rule{Epsilon}
//
type Rule []Symbol

// EpsilonRule returns a new epsilon rule.
func EpsilonRule() Rule {
	return Rule{Epsilon}
}

// IsEpsilon is true if r derives the empty word directly.
func (r Rule) IsEpsilon() bool {
	return len(r) == 0 || len(r) == 1 && r[0] == Epsilon
}

// Symbols returns the symbols of r, with the epsilon rule returning an
// empty slice.
func (r Rule) Symbols() []Symbol {
	if r.IsEpsilon() {
		return []Symbol{}
	}
	return r
}

// Len is the number of symbols a parser consumes for r. The epsilon rule has length 0.
func (r Rule) Len() int {
	return len(r.Symbols())
}

// Equals compares two rules symbol by symbol.
func (r Rule) Equals(other Rule) bool {
	return CompareRules(r, other) == 0
}

func (r Rule) String() string {
	if r.IsEpsilon() {
		return string(Epsilon)
	}
	return SymbolString(r)
}

// CompareRules compares two rules lexicographically, symbol by symbol.
func CompareRules(r1, r2 Rule) int {
	for i := 0; i < len(r1) && i < len(r2); i++ {
		if c := strings.Compare(string(r1[i]), string(r2[i])); c != 0 {
			return c
		}
	}
	return utils.IntComparator(len(r1), len(r2))
}

func ruleComparator(r1, r2 interface{}) int {
	return CompareRules(r1.(Rule), r2.(Rule))
}

// concat returns a fresh rule consisting of the symbols of r followed by syms.
func (r Rule) concat(syms ...Symbol) Rule {
	c := make(Rule, 0, len(r)+len(syms))
	c = append(c, r.Symbols()...)
	for _, s := range syms {
		if s != Epsilon {
			c = append(c, s)
		}
	}
	if len(c) == 0 {
		return EpsilonRule()
	}
	return c
}

// --- Productions -----------------------------------------------------------

// Production is a grammar rule together with its left hand side non-terminal.
type Production struct {
	LHS Symbol
	RHS Rule
}

func (p Production) String() string {
	return string(p.LHS) + " → " + p.RHS.String()
}

// CompareProductions orders productions by LHS first, then by RHS.
func CompareProductions(p1, p2 Production) int {
	if c := strings.Compare(string(p1.LHS), string(p2.LHS)); c != 0 {
		return c
	}
	return CompareRules(p1.RHS, p2.RHS)
}

// ProductionComparator is CompareProductions for gods containers.
func ProductionComparator(p1, p2 interface{}) int {
	return CompareProductions(p1.(Production), p2.(Production))
}

// --- Symbol sets -----------------------------------------------------------

// SymbolSet is an ordered set of grammar symbols. FIRST and FOLLOW sets are
// symbol sets. The zero value is not usable; create one with NewSymbolSet.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing syms.
func NewSymbolSet(syms ...Symbol) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(SymbolComparator)}
	S.Add(syms...)
	return S
}

// Add inserts symbols and reports if the set has grown.
func (S *SymbolSet) Add(syms ...Symbol) bool {
	before := S.set.Size()
	for _, s := range syms {
		S.set.Add(s)
	}
	return S.set.Size() > before
}

// Union adds every symbol of other, except the ones listed in without. It
// reports if S has grown.
func (S *SymbolSet) Union(other *SymbolSet, without ...Symbol) bool {
	if other == nil {
		return false
	}
	changed := false
	it := other.set.Iterator()
	for it.Next() {
		sym := it.Value().(Symbol)
		if contains(without, sym) {
			continue
		}
		if !S.set.Contains(sym) {
			S.set.Add(sym)
			changed = true
		}
	}
	return changed
}

// Remove deletes symbols from S.
func (S *SymbolSet) Remove(syms ...Symbol) {
	for _, s := range syms {
		S.set.Remove(s)
	}
}

// Contains checks for membership of sym.
func (S *SymbolSet) Contains(sym Symbol) bool {
	return S.set.Contains(sym)
}

// Size returns the number of symbols in S.
func (S *SymbolSet) Size() int {
	return S.set.Size()
}

// Empty is true for a set without symbols.
func (S *SymbolSet) Empty() bool {
	return S.set.Empty()
}

// Values returns the symbols of S in ascending order.
func (S *SymbolSet) Values() []Symbol {
	syms := make([]Symbol, 0, S.set.Size())
	it := S.set.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(Symbol))
	}
	return syms
}

// Copy returns a shallow copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	return NewSymbolSet(S.Values()...)
}

// Equals compares the contents of two sets.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	it := S.set.Iterator()
	for it.Next() {
		if !other.set.Contains(it.Value()) {
			return false
		}
	}
	return true
}

func (S *SymbolSet) String() string {
	var b bytes.Buffer
	b.WriteString("{")
	it := S.set.Iterator()
	for it.Next() {
		b.WriteString(" ")
		b.WriteString(string(it.Value().(Symbol)))
	}
	b.WriteString(" }")
	return b.String()
}

// ---------------------------------------------------------------------------

// SymbolString joins symbols with blanks.
func SymbolString(syms []Symbol) string {
	var b bytes.Buffer
	for i, s := range syms {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(string(s))
	}
	return b.String()
}

func contains(syms []Symbol, sym Symbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
