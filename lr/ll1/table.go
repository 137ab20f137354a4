/*
Package ll1 implements a table driven predictive parser for LL(1) grammars.

Grammars are prepared in a pipeline: left recursion is removed, the resulting
grammar is analysed, and a predictive table is built from the FIRST and FOLLOW
sets. Table construction fails with a conflict error if the grammar is not LL(1).

    p, err := ll1.NewParser(g)
    if errors.Is(err, lr.ErrGrammarConflict) { … } // not an LL(1) grammar
    trace, err := p.Parse([]lr.Symbol{"num", "+", "num"})

The parser recovers from syntax errors in panic mode: input symbols without
table entry are skipped, and stack symbols with a sync entry are popped.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"fmt"
	"html"
	"io"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramma.lr'.
func tracer() tracing.Trace {
	return tracing.Select("gramma.lr")
}

// Entry is a cell of a predictive table: either a rule to predict or a
// sync marker for error recovery.
type Entry struct {
	Rule lr.Rule
	Sync bool
}

func (e Entry) String() string {
	if e.Sync {
		return "sync"
	}
	return e.Rule.String()
}

// Table is a predictive parser table, mapping pairs of (non-terminal, lookahead)
// to rules. Lookaheads are terminals or $. Tables are immutable once built.
type Table struct {
	g     *lr.Grammar
	cells map[lr.Symbol]map[lr.Symbol]Entry
}

// ConflictError is returned if two rules claim the same table cell.
// It matches lr.ErrGrammarConflict.
type ConflictError struct {
	NonTerminal lr.Symbol
	Lookahead   lr.Symbol
	Existing    lr.Rule
	Incoming    lr.Rule
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("not an LL(1) grammar: conflict at (%s, %s) between %s → %s and %s → %s",
		e.NonTerminal, e.Lookahead, e.NonTerminal, e.Existing, e.NonTerminal, e.Incoming)
}

// Unwrap makes a conflict match lr.ErrGrammarConflict.
func (e *ConflictError) Unwrap() error {
	return lr.ErrGrammarConflict
}

// BuildTable builds the predictive table for an analysed grammar. For every
// rule A → r, r is entered at (A, a) for every terminal a in FIRST(r). If r is
// nullable, it is entered at (A, b) for every b in FOLLOW(A). Afterwards, all
// empty cells (A, b) with b in FOLLOW(A) receive a sync marker.
//
// If a cell is claimed twice, BuildTable returns a *ConflictError.
func BuildTable(ga *lr.Analysis) (*Table, error) {
	g := ga.Grammar()
	t := &Table{
		g:     g,
		cells: make(map[lr.Symbol]map[lr.Symbol]Entry),
	}
	for _, A := range g.NonTerminals() {
		t.cells[A] = make(map[lr.Symbol]Entry)
		for _, r := range g.Rules(A) {
			F, err := ga.FirstOfSequence(r)
			if err != nil {
				return nil, err
			}
			for _, a := range F.Values() {
				if a == lr.Epsilon {
					continue
				}
				if err := t.insert(A, a, r); err != nil {
					return nil, err
				}
			}
			if F.Contains(lr.Epsilon) {
				for _, b := range ga.Follow(A).Values() {
					if err := t.insert(A, b, r); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	for _, A := range g.NonTerminals() {
		for _, b := range ga.Follow(A).Values() {
			if _, ok := t.cells[A][b]; !ok {
				t.cells[A][b] = Entry{Sync: true}
			}
		}
	}
	tracer().Infof("LL(1) table for %s has %d entries", g.Name, t.Size())
	return t, nil
}

func (t *Table) insert(A, a lr.Symbol, r lr.Rule) error {
	if e, ok := t.cells[A][a]; ok {
		if e.Rule.Equals(r) {
			return nil
		}
		err := &ConflictError{NonTerminal: A, Lookahead: a, Existing: e.Rule, Incoming: r}
		tracer().Errorf(err.Error())
		return err
	}
	tracer().Debugf("M[%s, %s] = %s → %s", A, a, A, r)
	t.cells[A][a] = Entry{Rule: r}
	return nil
}

// Grammar returns the grammar the table has been built for.
func (t *Table) Grammar() *lr.Grammar {
	return t.g
}

// Lookup returns the entry at (A, a). The second return value is false for
// empty cells.
func (t *Table) Lookup(A, a lr.Symbol) (Entry, bool) {
	row, ok := t.cells[A]
	if !ok {
		return Entry{}, false
	}
	e, ok := row[a]
	return e, ok
}

// Size returns the number of non-empty cells.
func (t *Table) Size() int {
	cnt := 0
	for _, row := range t.cells {
		cnt += len(row)
	}
	return cnt
}

// Lookaheads returns the column labels of the table: all terminals, followed by $.
func (t *Table) Lookaheads() []lr.Symbol {
	return append(t.g.Terminals(), lr.EOF)
}

// TableAsHTML exports a predictive table in HTML format.
func TableAsHTML(t *Table, w io.Writer) {
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table for %s, %d entries<p>", html.EscapeString(t.g.Name), t.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	cols := t.Lookaheads()
	for _, a := range cols {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(string(a))))
	}
	io.WriteString(w, "</tr>\n")
	for _, A := range t.g.NonTerminals() {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(string(A))))
		for _, a := range cols {
			td := "&nbsp;"
			if e, ok := t.Lookup(A, a); ok {
				td = html.EscapeString(e.String())
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
