package lexmach

import (
	"errors"
	"testing"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/timtadh/lexmachine"
)

// rules in yacc-like notation
var ruleLines = []string{
	"E",
	`E : E "+" T`,
	"T : F | %empty ;",
	`F : "(" E ")" // nested`,
	"S' : S ;",
}

var ruleTokenCounts = []int{1, 5, 6, 5, 4}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	literals, keywords, tokenIds := ruleTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`"[^"]*"`), MakeToken("TERMINAL", tokenIds["TERMINAL"]))
		lexer.Add([]byte(`([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|')*`), MakeToken("NAME", tokenIds["NAME"]))
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Fatal(err)
	}
	for i, line := range ruleLines {
		sc, err := LM.Scanner(line)
		if err != nil {
			t.Fatal(err)
		}
		var types []int
		for token := sc.NextToken(); token.TokType() != scanner.EOF; token = sc.NextToken() {
			t.Logf(" %4d | %10s | @%3d", token.TokType(), token.Lexeme(), token.Span().From())
			types = append(types, int(token.TokType()))
		}
		assert.Equal(t, ruleTokenCounts[i], len(types), "token count for %q", line)
		if i == 1 {
			assert.Equal(t, []int{scanner.Ident, tokenIds[":"], scanner.Ident, scanner.String, scanner.Ident}, types)
		}
	}
}

// ruleTokens returns the literals, keywords and token IDs of yacc-like rules.
func ruleTokens() ([]string, []string, map[string]int) {
	literals := []string{":", "|", ";"}
	keywords := []string{"%empty"}
	tokenIds := map[string]int{
		"NAME":     scanner.Ident,
		"TERMINAL": scanner.String,
	}
	for i, tok := range append(literals, keywords...) {
		tokenIds[tok] = i + 10
	}
	return literals, keywords, tokenIds
}

func makeIfGrammar(t *testing.T) *lr.Grammar {
	b := lr.NewGrammarBuilder("If")
	b.LHS("S").T("if").N("E").T("then").N("S").End()
	b.LHS("S").T("id").T(":=").N("E").End()
	b.LHS("E").T("id").End()
	b.LHS("E").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("cannot create grammar: %v", err)
	}
	return g
}

func TestForGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	LM, err := ForGrammar(makeIfGrammar(t), map[lr.Symbol]string{
		"id":  `([a-z]|[A-Z])([a-z]|[A-Z]|[0-9])*`,
		"num": `[0-9]+`,
	})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("if x then\n  y := 42")
	if err != nil {
		t.Fatal(err)
	}
	syms, err := scanner.Symbols(sc, LM.Vocabulary())
	assert.NoError(t, err)
	assert.Equal(t, []lr.Symbol{"if", "id", "then", "id", ":=", "num"}, syms)
}

func TestForGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	g := makeIfGrammar(t)
	_, err := ForGrammar(g, map[lr.Symbol]string{"float": `[0-9]+\.[0-9]+`})
	assert.True(t, errors.Is(err, lr.ErrUnrecognizedSymbol))
	LM, err := ForGrammar(g, map[lr.Symbol]string{"id": `[a-z]+`, "num": `[0-9]+`})
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("x := ? 7")
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	syms, err := scanner.Symbols(sc, LM.Vocabulary())
	assert.NoError(t, err)
	assert.Equal(t, []lr.Symbol{"id", ":=", "num"}, syms)
	assert.Equal(t, 1, len(errs))
}

func TestForGrammarPatternsWin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.scanner")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Sum")
	b.LHS("E").T("id").T("+").T("num").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	LM, err := ForGrammar(g, map[lr.Symbol]string{"id": `[a-z]+`, "num": `[0-9]+`})
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner("num + 1 id")
	syms, err := scanner.Symbols(sc, LM.Vocabulary())
	assert.NoError(t, err)
	assert.Equal(t, []lr.Symbol{"id", "+", "num", "id"}, syms)
}
