package lexmach

import (
	"fmt"
	"strings"

	"github.com/npillmayer/gramma"
	"github.com/npillmayer/gramma/lr"
	"github.com/npillmayer/gramma/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'gramma.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("gramma.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	vocab *scanner.Vocabulary
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(escapeLiteral(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// ForGrammar creates a lexmachine adapter recognizing the terminals of g.
// Terminals with an entry in patterns are matched by the given regular
// expression (lexmachine syntax), all other terminals are matched literally.
// Whitespace between tokens is skipped. Literals take precedence over patterns
// for matches of equal length, e.g. keyword "if" over an identifier pattern.
//
// The token type of a terminal is its position in g.Terminals(), starting at 1.
// The adapter's vocabulary translates tokens back into terminals by token type,
// so a word matched by a pattern is never taken for a terminal of the same name.
func ForGrammar(g *lr.Grammar, patterns map[lr.Symbol]string) (*LMAdapter, error) {
	tokenIds := make(map[string]int)
	categories := make(map[gramma.TokType]lr.Symbol)
	var literals []string
	for i, a := range g.Terminals() {
		tokenIds[string(a)] = i + 1
		categories[gramma.TokType(i+1)] = a
		if _, ok := patterns[a]; !ok {
			literals = append(literals, string(a))
		}
	}
	for a := range patterns {
		if !g.IsTerminal(a) {
			return nil, lr.Errorf(lr.UnrecognizedSymbol, "pattern for %q, which is not a terminal of %s", a, g.Name)
		}
	}
	init := func(lexer *lexmachine.Lexer) {
		for _, a := range g.Terminals() {
			if pattern, ok := patterns[a]; ok {
				lexer.Add([]byte(pattern), MakeToken(string(a), tokenIds[string(a)]))
			}
		}
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	adapter, err := NewLMAdapter(init, literals, nil, tokenIds)
	if err != nil {
		return nil, fmt.Errorf("cannot create lexer for %s: %w", g.Name, err)
	}
	if adapter.vocab, err = scanner.NewTypeVocabulary(g, categories); err != nil {
		return nil, err
	}
	return adapter, nil
}

// Vocabulary returns the vocabulary for adapters created by ForGrammar, or nil.
func (lm *LMAdapter) Vocabulary() *scanner.Vocabulary {
	return lm.vocab
}

// escapeLiteral creates a regular expression matching lit literally.
func escapeLiteral(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if strings.ContainsRune(`\.+*?()|[]{}^$-`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface. Input which does not match any
// pattern is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() gramma.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", gramma.Span{})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		gramma.TokType(token.Type),
		string(token.Lexeme),
		gramma.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
