/*
Package lexmach builds tokenizers for grammars with the lexmachine DFA
generator (https://github.com/timtadh/lexmachine).

The usual way is to let ForGrammar create a lexer for the terminals of a
grammar. Terminals may be bound to a regular expression in lexmachine
syntax; all other terminals are matched literally, and whitespace is skipped.

	LM, err := lexmach.ForGrammar(g, map[lr.Symbol]string{"num": `[0-9]+`})
	scan, err := LM.Scanner("12 + 3")
	input, err := scanner.Symbols(scan, LM.Vocabulary())

The resulting symbols are ready to be parsed by lr/ll1 or lr/lr1 parsers.

Lexers for other token sets are set up with NewLMAdapter. It receives literals
(";", "|", …), keywords and a map from token names to token types, plus an
init function adding patterns with the pre-defined actions Skip and MakeToken:

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), lexmach.Skip)
		lexer.Add([]byte(`[a-z]+`), lexmach.MakeToken("NAME", tokenIds["NAME"]))
	}
	LM, err := lexmach.NewLMAdapter(init, literals, keywords, tokenIds)

NewLMAdapter fails if the DFA cannot be compiled. Scanners created by
LM.Scanner(input) implement scanner.Tokenizer; input matching no pattern is
reported to the scanner's error handler and skipped.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
