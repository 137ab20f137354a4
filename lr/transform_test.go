package lr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestRemoveImmediateLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	g := makeExprGrammar(t)
	assert.Equal(t, []Symbol{"E", "T"}, LeftRecursive(g))
	gnew, err := RemoveImmediateLeftRecursion(g)
	if err != nil {
		t.Fatal(err)
	}
	gnew.Dump()
	for _, p := range gnew.Productions() {
		if p.RHS[0] == p.LHS {
			t.Errorf("Expected no left recursive rules, have %v", p)
		}
	}
	assert.Empty(t, LeftRecursive(gnew))
	assert.Equal(t, []Symbol{"E", "E'", "F", "T", "T'"}, gnew.NonTerminals())
	assert.Equal(t, []Rule{{"T", "E'"}}, gnew.Rules("E"))
	assert.Equal(t, []Rule{{"+", "T", "E'"}, {"-", "T", "E'"}, {Epsilon}}, gnew.Rules("E'"))
	assert.Equal(t, 10, gnew.Size())
	if g.Size() != 8 {
		t.Errorf("Expected original grammar to be unchanged")
	}
	ga, err := Analyze(gnew)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []Symbol{"+", "-", Epsilon}, ga.First("E'").Values())
	assert.Equal(t, []Symbol{"$", ")"}, ga.Follow("E").Values())
	assert.Equal(t, []Symbol{"$", ")"}, ga.Follow("E'").Values())
	assert.Equal(t, []Symbol{"E'", "T'"}, ga.NullableSet().Values())
}

func TestLeftRecursionEdgeCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("A").N("A").T("x").End()
	b.LHS("A").N("A").End()
	b.LHS("A").Epsilon()
	b.LHS("A").N("A'").End()
	b.LHS("A'").T("y").End()
	b.LHS("L").N("L").T("z").End() // recursive only
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gnew, err := RemoveImmediateLeftRecursion(g)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []Rule{{"A'", "A''"}, {"A''"}}, gnew.Rules("A"))
	assert.Equal(t, []Rule{{"x", "A''"}, {Epsilon}}, gnew.Rules("A''"))
	assert.Equal(t, []Rule{{"L", "z"}}, gnew.Rules("L"))
}

func TestIndirectLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a").End()
	b.LHS("A").N("N").N("S").T("b").End()
	b.LHS("A").T("c").End()
	b.LHS("N").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []Symbol{"A", "S"}, LeftRecursive(g))
	gnew, err := RemoveImmediateLeftRecursion(g)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, g.Size(), gnew.Size()) // untouched
}

func TestRemoveEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	gnew, err := RemoveEpsilon(makeNullableGrammar(t))
	if err != nil {
		t.Fatal(err)
	}
	gnew.Dump()
	assert.Equal(t, []Rule{{"A", "B", "c"}, {"A", "c"}, {"B", "c"}, {"c"}}, gnew.Rules("S"))
	assert.Equal(t, []Rule{{"a"}}, gnew.Rules("A"))
	assert.Equal(t, []Rule{{"b"}}, gnew.Rules("B"))
	ga, err := Analyze(gnew)
	if err != nil {
		t.Fatal(err)
	}
	assert.True(t, ga.NullableSet().Empty())
	//
	// A derives ε only through B, which sorts after A
	b := NewGrammarBuilder("Chain")
	b.LHS("S").T("a").N("A").End()
	b.LHS("A").N("B").End()
	b.LHS("B").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gnew, err = RemoveEpsilon(g)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []Rule{{"a"}}, gnew.Rules("S"))
	assert.Empty(t, gnew.Rules("A"))
	assert.Empty(t, gnew.Rules("B"))
}

func TestRemoveEpsilonNullableStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").N("X").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	b.LHS("X").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	gnew, err := RemoveEpsilon(g)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []Rule{{"A"}, {Epsilon}}, gnew.Rules("S"))
	assert.Empty(t, gnew.Rules("X"))
}
