/*
Command gramma analyses context-free grammars and runs LL(1) or LR(1) parsers
on them.

	gramma analyze -g expr.yaml               # nullable, FIRST and FOLLOW sets
	gramma table --kind ll1 --html ll1.html   # build and export parse tables
	gramma parse "num + num * num"            # print the parser trace
	gramma repl                               # parse input line by line

Without a grammar file, a default expression grammar is used. Settings may be
given in a TOML configuration file (default "gramma.toml"):

	kind = "ll1"
	trace = "Info"
	first = "textbook"
	max_states = 1000
	tokenizer = "lex"

	[categories]            # token categories of the Go tokenizer
	int = "num"

	[patterns]              # regular expressions for the lexmachine tokenizer
	num = "[0-9]+"

Command line flags take precedence over the configuration file.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'gramma.cli'
func tracer() tracing.Trace {
	return tracing.Select("gramma.cli")
}
