package ll1

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func makeExprGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("E").T("-").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("T").T("/").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot create expression grammar: %v", err)
	}
	return g
}

func symbols(s string) []lr.Symbol {
	var syms []lr.Symbol
	for _, f := range strings.Fields(s) {
		syms = append(syms, lr.Symbol(f))
	}
	return syms
}

func TestTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeExprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	table := p.Table()
	ga := p.Analysis()
	for _, A := range p.Grammar().NonTerminals() {
		for _, b := range ga.Follow(A).Values() {
			if _, ok := table.Lookup(A, b); !ok {
				t.Errorf("Expected M[%s, %s] to hold a rule or sync", A, b)
			}
		}
	}
	e, ok := table.Lookup("E", "num")
	assert.True(t, ok)
	assert.Equal(t, lr.Rule{"T", "E'"}, e.Rule)
	e, _ = table.Lookup("E", ")")
	assert.True(t, e.Sync)
	e, _ = table.Lookup("E'", "$")
	assert.True(t, e.Rule.IsEpsilon())
	e, _ = table.Lookup("T'", "*")
	assert.Equal(t, "* F T'", e.String())
	_, ok = table.Lookup("F", "+")
	assert.True(t, ok) // sync
	_, ok = table.Lookup("E", "+")
	assert.False(t, ok)
	var buf bytes.Buffer
	TableAsHTML(table, &buf)
	if !strings.Contains(buf.String(), "<td>sync</td>") {
		t.Errorf("Expected HTML table to contain sync entries")
	}
}

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeExprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	trace, err := p.Parse(symbols("num + num * num"))
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("\n%s", trace)
	last, ok := trace.Last()
	if !ok || last.Kind != lr.MatchStep || last.Action != "match $" {
		t.Errorf("Expected last step to be a match of $, is %v", last)
	}
	assert.Equal(t, 6, trace.Count(lr.MatchStep))
	assert.Equal(t, 11, trace.Count(lr.PredictStep))
	assert.Equal(t, "E → T E'", trace[0].Action[len("output "):])
	assert.Equal(t, "E $", trace[0].Stack)
	assert.Equal(t, "num + num * num $", trace[0].Input)
	assert.Equal(t, "num + num * num", last.Prefix)
}

func TestParseStepwise(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeExprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	run, err := p.Start(symbols("( num ) $"))
	if err != nil {
		t.Fatal(err)
	}
	steps := 0
	for !run.Done() {
		_, outcome, err := run.Step()
		if err != nil {
			t.Fatal(err)
		}
		steps++
		if outcome == lr.Accept {
			break
		}
	}
	assert.Equal(t, len(run.Trace()), steps)
	step, outcome, err := run.Step()
	assert.NoError(t, err)
	assert.Equal(t, lr.Accept, outcome)
	assert.Equal(t, "match $", step.Action)
	assert.Equal(t, steps, len(run.Trace()))
}

func TestParseRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeExprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	trace, err := p.Parse(symbols("num num"))
	if !errors.Is(err, lr.ErrSyntaxError) {
		t.Errorf("Expected recovered parse to report a syntax error, is %v", err)
	}
	assert.Equal(t, 1, trace.Count(lr.SkipStep))
	last, _ := trace.Last()
	assert.Equal(t, "match $", last.Action)
}

func TestParseUnexpectedTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeExprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{")", "( num"} {
		trace, err := p.Parse(symbols(input))
		if !errors.Is(err, lr.ErrUnexpectedTerminal) {
			t.Errorf("Expected %q to fail with UnexpectedTerminal, is %v", input, err)
		}
		last, _ := trace.Last()
		assert.Equal(t, lr.ErrorStep, last.Kind)
	}
	trace, _ := p.Parse(symbols(")"))
	assert.Equal(t, "error, pop E", trace[0].Action)
}

func TestUnrecognizedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeExprGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, input := range []string{"num % num", "num $ num", "E"} {
		if _, err := p.Parse(symbols(input)); !errors.Is(err, lr.ErrUnrecognizedSymbol) {
			t.Errorf("Expected %q to be rejected as unrecognized, is %v", input, err)
		}
	}
}

func TestConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Conflict")
	b.LHS("A").T("a").End()
	b.LHS("A").T("a").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewParser(g)
	if !errors.Is(err, lr.ErrGrammarConflict) {
		t.Fatalf("Expected A → a | a b to be rejected with a conflict, is %v", err)
	}
	var conflict *ConflictError
	if assert.True(t, errors.As(err, &conflict)) {
		assert.Equal(t, lr.Symbol("A"), conflict.NonTerminal)
		assert.Equal(t, lr.Symbol("a"), conflict.Lookahead)
	}
}

func TestFirstModeMatters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	// S → A c | b ; A → a | ε
	b := lr.NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").T("c").End()
	b.LHS("S").T("b").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewParser(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(symbols("c")); err != nil {
		t.Errorf("Expected c to be accepted, is %v", err)
	}
	p, err = NewParser(g, AnalysisOptions(lr.WithFirstMode(lr.LeadingSymbolFirst)))
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Parse(symbols("c"))
	assert.Error(t, err) // M[S, c] is empty with leading symbol FIRST sets
}

// S → < S > | &
func makeMarkupGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Markup")
	b.LHS("S").T("<").N("S").T(">").End()
	b.LHS("S").T("&").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot create markup grammar: %v", err)
	}
	return g
}

func TestTableAsHTMLEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, err := NewParser(makeMarkupGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	TableAsHTML(p.Table(), &buf)
	out := buf.String()
	assert.Contains(t, out, "<td>&lt;</td>")
	assert.Contains(t, out, "<td>&amp;</td>")
	assert.Contains(t, out, "<td>&lt; S &gt;</td>")
	assert.NotContains(t, out, "<td><</td>")
}
