package grammarfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

const exprYAML = `
name: Expr
start: E
rules:
  E: ["E + T", "T"]
  T: ["T * F", "F"]
  F: ["( E )", "num"]
`

const listTOML = `
name = "List"
start = "L"
terminals = ["a", ","]

[rules]
L = ["a R"]
R = [", a R", "ε"]
`

const exprEBNF = `
Expr   = Term { ( "+" | "-" ) Term } .
Term   = Factor [ "*" Factor ] .
Factor = "(" Expr ")" | "num" .
`

func TestLoadYAML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	g, err := LoadYAML(strings.NewReader(exprYAML))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "Expr", g.Name)
	assert.Equal(t, lr.Symbol("E"), g.Start())
	assert.Equal(t, []lr.Symbol{"E", "F", "T"}, g.NonTerminals())
	assert.Equal(t, 6, g.Size())
	assert.True(t, g.IsTerminal("num"))
	assert.True(t, g.HasRule("E", lr.Rule{"E", "+", "T"}))
}

func TestLoadTOML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	g, err := LoadTOML(strings.NewReader(listTOML))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, lr.Symbol("L"), g.Start())
	assert.True(t, g.HasRule("R", lr.EpsilonRule()))
	assert.Equal(t, 2, len(g.Terminals()))
}

func TestSpecErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	spec := &Spec{Name: "NoStart", Rules: map[string][]string{"S": {"a"}}}
	_, err := spec.Grammar()
	assert.Error(t, err)
	spec = &Spec{Name: "Empty", Start: "S"}
	_, err = spec.Grammar()
	assert.Error(t, err)
	spec = &Spec{
		Name:         "Undeclared",
		Start:        "S",
		Terminals:    []string{"a"},
		NonTerminals: []string{"S"},
		Rules:        map[string][]string{"S": {"a b"}},
	}
	_, err = spec.Grammar()
	assert.True(t, errors.Is(err, lr.ErrUnrecognizedSymbol))
	spec.NonTerminals = nil
	spec.Terminals = nil
	spec.Start = ""
	spec.Rules = map[string][]string{"S": {"a b"}}
	_, err = spec.Grammar()
	assert.Error(t, err)
}

func TestLoadEBNF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	g, err := LoadEBNF("expr.ebnf", strings.NewReader(exprEBNF), "")
	if err != nil {
		t.Fatal(err)
	}
	g.Dump()
	assert.Equal(t, "expr", g.Name)
	assert.Equal(t, lr.Symbol("Expr"), g.Start())
	assert.Equal(t, []lr.Symbol{"(", ")", "*", "+", "-", "num"}, g.Terminals())
	assert.Equal(t, 6, len(g.NonTerminals())) // 3 productions + 3 helpers
	rules := g.Rules("Expr")
	if assert.Equal(t, 1, len(rules)) {
		H := rules[0][1]
		assert.True(t, g.HasRule(H, lr.EpsilonRule()))
		for _, r := range g.Rules(H) {
			if !r.IsEpsilon() {
				assert.Equal(t, H, r[len(r)-1]) // right recursive repetition
			}
		}
	}
	assert.True(t, g.HasRule("Factor", lr.Rule{"(", "Expr", ")"}))
}

func TestLoadEBNFHelperNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	var first []lr.Production
	for i := 0; i < 20; i++ {
		g, err := LoadEBNF("expr.ebnf", strings.NewReader(exprEBNF), "")
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			first = g.Productions()
			assert.True(t, g.HasRule("Expr", lr.Rule{"Term", "Expr_1"}))
			assert.True(t, g.HasRule("Expr_1", lr.Rule{"Expr_2", "Term", "Expr_1"}))
			assert.True(t, g.HasRule("Term", lr.Rule{"Factor", "Term_3"}))
			continue
		}
		assert.Equal(t, first, g.Productions())
	}
}

func TestLoadEBNFErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	_, err := LoadEBNF("bad.ebnf", strings.NewReader(`S = "a" | T .`), "S")
	assert.Error(t, err) // T undefined
	_, err = LoadEBNF("range.ebnf", strings.NewReader(`S = "a" … "z" .`), "S")
	assert.Error(t, err)
	_, err = LoadEBNF("start.ebnf", strings.NewReader(exprEBNF), "Start")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.lr")
	defer teardown()
	//
	dir := t.TempDir()
	files := map[string]string{
		"expr.yaml": exprYAML,
		"list.toml": listTOML,
		"expr.ebnf": exprEBNF,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		g, err := Load(path)
		assert.NoError(t, err, name)
		assert.NotNil(t, g, name)
	}
	_, err := Load(filepath.Join(dir, "expr.json"))
	assert.Error(t, err)
	path := filepath.Join(dir, "expr.txt")
	os.WriteFile(path, []byte(exprYAML), 0644)
	_, err = Load(path)
	assert.Error(t, err)
}
