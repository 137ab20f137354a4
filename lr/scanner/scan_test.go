package scanner

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestScanComments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	sc := GoTokenizer("comments", strings.NewReader("x // note"), SkipComments(false))
	sc.NextToken()
	tok := sc.NextToken()
	assert.Equal(t, gramma.TokType(Comment), tok.TokType())
	sc = GoTokenizer("strings", strings.NewReader("'c'"), UnifyStrings(true))
	assert.Equal(t, gramma.TokType(String), sc.NextToken().TokType())
}

func makeExprGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("Expr")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("num").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot create expression grammar: %v", err)
	}
	return g
}

func TestVocabulary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	g := makeExprGrammar(t)
	v, err := NewVocabulary(g, map[gramma.TokType]lr.Symbol{
		Int:   "num",
		Ident: "id",
	})
	if err != nil {
		t.Fatal(err)
	}
	syms, err := Symbols(GoTokenizer("expr", strings.NewReader("(x + 12) * 3")), v)
	assert.NoError(t, err)
	assert.Equal(t, []lr.Symbol{"(", "id", "+", "num", ")", "*", "num"}, syms)
	_, err = Symbols(GoTokenizer("expr", strings.NewReader("x - 1")), v)
	assert.True(t, errors.Is(err, lr.ErrUnrecognizedSymbol))
	_, err = NewVocabulary(g, map[gramma.TokType]lr.Symbol{Float: "float"})
	assert.True(t, errors.Is(err, lr.ErrUnrecognizedSymbol))
}

func TestTypeVocabulary(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	g := makeExprGrammar(t)
	categories := map[gramma.TokType]lr.Symbol{Ident: "id", Int: "num"}
	byText, _ := NewVocabulary(g, categories)
	byType, err := NewTypeVocabulary(g, categories)
	if err != nil {
		t.Fatal(err)
	}
	tok := MakeDefaultToken(Ident, "num", gramma.Span{0, 3})
	a, err := byText.Terminal(tok)
	assert.NoError(t, err)
	assert.Equal(t, lr.Symbol("num"), a)
	a, err = byType.Terminal(tok)
	assert.NoError(t, err)
	assert.Equal(t, lr.Symbol("id"), a)
	_, err = byType.Terminal(MakeDefaultToken(Float, "1.5", gramma.Span{0, 3}))
	assert.True(t, errors.Is(err, lr.ErrUnrecognizedSymbol))
	_, err = NewTypeVocabulary(g, map[gramma.TokType]lr.Symbol{Float: "float"})
	assert.Error(t, err)
}
