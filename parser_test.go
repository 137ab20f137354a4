package gramma

import (
	"errors"
	"testing"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func makeExprGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot create expression grammar: %v", err)
	}
	return g
}

func TestParserKinds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	input := []lr.Symbol{"id", "+", "id", "*", "id"}
	for _, k := range []ParserKind{LL1, LR1} {
		p, err := NewParser(k, makeExprGrammar(t))
		if err != nil {
			t.Fatalf("cannot create %s parser: %v", k, err)
		}
		assert.Equal(t, k, p.Kind())
		trace, err := p.Parse(input)
		assert.NoError(t, err, k.String())
		assert.Greater(t, len(trace), 0)
	}
}

func TestParserAccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	p, _ := NewParser(LL1, makeExprGrammar(t))
	llp, ok := LL1Parser(p)
	assert.True(t, ok)
	assert.NotNil(t, llp.Table())
	_, ok = LR1Parser(p)
	assert.False(t, ok)
	assert.True(t, p.Grammar().IsNonTerminal("E'")) // left recursion removed
	p, _ = NewParser(LR1, makeExprGrammar(t))
	lrp, ok := LR1Parser(p)
	assert.True(t, ok)
	assert.Equal(t, lr.Symbol("E'"), lrp.Grammar().Start()) // augmented
}

func TestParserKindFromString(t *testing.T) {
	for s, k := range map[string]ParserKind{"ll1": LL1, "LL(1)": LL1, "lr1": LR1, "LR": LR1} {
		kind, err := ParserKindFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, k, kind, s)
	}
	_, err := ParserKindFromString("glr")
	assert.Error(t, err)
	_, err = NewParser(ParserKind(7), makeExprGrammar(t))
	assert.Error(t, err)
}

func TestParserConflicts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Prefix")
	b.LHS("A").T("a").End()
	b.LHS("A").T("a").T("b").End()
	g, _ := b.Grammar()
	_, err := NewParser(LL1, g)
	assert.True(t, errors.Is(err, lr.ErrGrammarConflict))
	_, err = NewParser(LR1, g) // not LL(1), but LR(1)
	assert.NoError(t, err)
}
