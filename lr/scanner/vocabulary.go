package scanner

import (
	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
)

// Vocabulary translates tokens into terminals of a grammar.
type Vocabulary struct {
	g          *lr.Grammar
	categories map[gramma.TokType]lr.Symbol
	typeOnly   bool // ignore lexemes
}

// NewVocabulary creates a vocabulary for g. Categories map token types to
// terminals, e.g. Int to "num". Category terminals have to be terminals of g.
func NewVocabulary(g *lr.Grammar, categories map[gramma.TokType]lr.Symbol) (*Vocabulary, error) {
	v := &Vocabulary{g: g, categories: make(map[gramma.TokType]lr.Symbol, len(categories))}
	for typ, a := range categories {
		if !g.IsTerminal(a) {
			return nil, lr.Errorf(lr.UnrecognizedSymbol, "category terminal %q is not a terminal of %s", a, g.Name)
		}
		v.categories[typ] = a
	}
	return v, nil
}

// NewTypeVocabulary creates a vocabulary for tokenizers which tell terminals
// apart by token type, e.g. lexers generated for the terminals of g. Tokens
// are translated by their type only, whatever their text.
func NewTypeVocabulary(g *lr.Grammar, categories map[gramma.TokType]lr.Symbol) (*Vocabulary, error) {
	v, err := NewVocabulary(g, categories)
	if err != nil {
		return nil, err
	}
	v.typeOnly = true
	return v, nil
}

// Terminal returns the terminal for a token. A token whose text is a terminal
// of the grammar maps to this terminal; otherwise the category of the token
// is looked up. Vocabularies created by NewTypeVocabulary look up the category
// only.
func (v *Vocabulary) Terminal(tok gramma.Token) (lr.Symbol, error) {
	if a := lr.Symbol(tok.Lexeme()); !v.typeOnly && v.g.IsTerminal(a) {
		return a, nil
	}
	if a, ok := v.categories[tok.TokType()]; ok {
		return a, nil
	}
	return "", lr.Errorf(lr.UnrecognizedSymbol, "token %q at %v is not a terminal of %s",
		tok.Lexeme(), tok.Span(), v.g.Name)
}

// Symbols reads all tokens from t and translates them into terminals.
// The result does not contain the end marker $.
func Symbols(t Tokenizer, v *Vocabulary) ([]lr.Symbol, error) {
	var syms []lr.Symbol
	for tok := t.NextToken(); tok.TokType() != EOF; tok = t.NextToken() {
		a, err := v.Terminal(tok)
		if err != nil {
			return syms, err
		}
		tracer().Debugf("token %q → %s", tok.Lexeme(), a)
		syms = append(syms, a)
	}
	return syms, nil
}
