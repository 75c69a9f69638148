// Command ferritec is the CLI front end over pkg/ferritec. It has no
// lexer or parser of its own (spec §1 Non-goals): every build runs one
// of the hand-built ASTs in internal/fixtures, selected by --fixture,
// standing in for whatever a real frontend would have produced.
package main

import (
	"os"

	"github.com/ferrite-lang/ferritec/cmd/ferritec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
