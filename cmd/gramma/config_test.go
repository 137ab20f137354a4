package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.cli")
	defer teardown()
	//
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml"), false)
	assert.NoError(t, err)
	assert.Equal(t, "lr1", cfg.Kind)
	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"), true)
	assert.Error(t, err)
	path := filepath.Join(t.TempDir(), "gramma.toml")
	content := `
kind = "ll1"
first = "leading"
tokenizer = "lex"

[patterns]
num = "[0-9]+"
id = "[a-z]+"
`
	if err = os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(path, true)
	assert.NoError(t, err)
	assert.Equal(t, "ll1", cfg.Kind)
	mode, err := cfg.firstMode()
	assert.NoError(t, err)
	assert.Equal(t, lr.LeadingSymbolFirst, mode)
	assert.Equal(t, "num", cfg.Categories["int"]) // default kept
}

func TestTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.cli")
	defer teardown()
	//
	g, err := makeExprGrammar()
	if err != nil {
		t.Fatal(err)
	}
	patterns := map[string]string{"num": "[0-9]+", "id": "[a-z]+"}
	tests := []struct {
		tokenizer string
		patterns  map[string]string
		input     string
		expected  []lr.Symbol
		fails     bool
	}{
		{"go", nil, "x + 12 * (y)", []lr.Symbol{"id", "+", "num", "*", "(", "id", ")"}, false},
		{"go", nil, "num / id", []lr.Symbol{"num", "/", "id"}, false},
		{"go", nil, "x % 2", nil, true},
		{"lex", patterns, "x+12", []lr.Symbol{"id", "+", "num"}, false},
		{"lex", patterns, "num - (id)", []lr.Symbol{"id", "-", "(", "id", ")"}, false},
		{"lexmachine", patterns, "a*b", []lr.Symbol{"id", "*", "id"}, false},
		{"python", nil, "x", nil, true},
	}
	for i, test := range tests {
		cfg := defaultConfig()
		cfg.Tokenizer = test.tokenizer
		cfg.Patterns = test.patterns
		syms, err := tokenize(test.input, g, cfg)
		if test.fails {
			assert.Error(t, err, "test #%d: %q", i, test.input)
			continue
		}
		if assert.NoError(t, err, "test #%d: %q", i, test.input) {
			assert.Equal(t, test.expected, syms, "test #%d: %q", i, test.input)
		}
	}
}

func TestTransform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.cli")
	defer teardown()
	//
	g, err := makeExprGrammar()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		how     string
		leftrec int // left recursive non-terminals after transformation
		size    int
		fails   bool
	}{
		{"none", 2, 9, false},
		{"", 2, 9, false},
		{"LeftRec", 0, 11, false},
		{"epsilon", 2, 9, false},
		{"unfold", 0, 0, true},
	}
	for _, test := range tests {
		gnew, err := transform(g, test.how)
		if test.fails {
			assert.Error(t, err, "transformation %q", test.how)
			continue
		}
		if assert.NoError(t, err, "transformation %q", test.how) {
			assert.Equal(t, test.leftrec, len(lr.LeftRecursive(gnew)), "transformation %q", test.how)
			assert.Equal(t, test.size, gnew.Size(), "transformation %q", test.how)
		}
	}
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.cli")
	defer teardown()
	//
	g, _ := makeExprGrammar()
	env.cfg = defaultConfig()
	for _, kind := range []string{"ll1", "lr1"} {
		cfg := defaultConfig()
		cfg.Kind = kind
		p, err := newParser(g, cfg)
		if err != nil {
			t.Fatal(err)
		}
		assert.NoError(t, parse(p, "x + 12 * (y)"), kind)
		assert.NoError(t, parse(p, "x + * y"), kind) // rejected input is reported, not an error
		assert.Error(t, parse(p, "x % y"), kind)     // cannot be tokenized
	}
}

func TestNewParserFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "gramma.cli")
	defer teardown()
	//
	g, _ := makeExprGrammar()
	cfg := defaultConfig()
	cfg.Kind = "ll1"
	p, err := newParser(g, cfg)
	if assert.NoError(t, err) {
		assert.Equal(t, gramma.LL1, p.Kind())
	}
	cfg.Kind = "slr"
	_, err = newParser(g, cfg)
	assert.Error(t, err)
	cfg.Kind, cfg.First = "lr1", "other"
	_, err = newParser(g, cfg)
	assert.Error(t, err)
}
