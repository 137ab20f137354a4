package lr

import "fmt"

// ErrorKind categorizes failures of grammar analysis, table construction and parsing.
type ErrorKind int

// Error kinds. Construction errors (UnrecognizedSymbol, GrammarConflict) are
// fatal to analysis or table construction; the others are reported by parsers.
const (
	UnrecognizedSymbol ErrorKind = iota + 1 // neither terminal, non-terminal, ε nor $
	GrammarConflict                         // two actions or rules for one table cell
	UnexpectedTerminal                      // LL(1): terminal on stack does not match input
	StackMismatch                           // LR(1): handle does not match the symbol stack
	SyntaxError                             // input is not part of the language
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedSymbol:
		return "unrecognized symbol"
	case GrammarConflict:
		return "grammar conflict"
	case UnexpectedTerminal:
		return "unexpected terminal"
	case StackMismatch:
		return "stack mismatch"
	case SyntaxError:
		return "syntax error"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is the error type of this module's grammar and parser packages.
// Errors match each other with errors.Is if their kinds are equal; thus
//
//     errors.Is(err, lr.ErrGrammarConflict)
//
// checks for a conflict, whatever the message.
type Error struct {
	Kind ErrorKind
	Msg  string
}

// Sentinel errors, one per kind.
var (
	ErrUnrecognizedSymbol = &Error{Kind: UnrecognizedSymbol}
	ErrGrammarConflict    = &Error{Kind: GrammarConflict}
	ErrUnexpectedTerminal = &Error{Kind: UnexpectedTerminal}
	ErrStackMismatch      = &Error{Kind: StackMismatch}
	ErrSyntaxError        = &Error{Kind: SyntaxError}
)

// Errorf creates an error of kind k with a formatted message.
func Errorf(k ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
