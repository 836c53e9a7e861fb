// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2text

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cqlerr"
)

// DefaultMaxDepth is the nesting-depth budget applied when a caller does
// not supply one explicitly (spec §5).
const DefaultMaxDepth = 256

// NewGrammarParser builds the participle parser for CQL2-Text.
func NewGrammarParser() (*participle.Parser[filterG], error) {
	return participle.Build[filterG](
		participle.Lexer(cqlLexer),
		participle.Elide("whitespace"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}

var grammarParser *participle.Parser[filterG]

func init() {
	var err error
	grammarParser, err = NewGrammarParser()
	if err != nil {
		panic(fmt.Sprintf("failed to build CQL2-Text parser: %v", err))
	}
}

// Parse parses a CQL2-Text filter string into a Filter AST. maxDepth <= 0
// selects DefaultMaxDepth.
func Parse(text string, maxDepth int) (*ast.Filter, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	tree, err := grammarParser.ParseString("", text)
	if err != nil {
		return nil, translateParseError(err)
	}

	lo := newLowerer(maxDepth)
	return lo.lowerFilter(tree)
}

// translateParseError maps a participle parse failure to the closed error
// taxonomy's SyntaxError. participle.Error carries the offending token's
// position; plain errors (rare, e.g. empty input) get a zero position.
func translateParseError(err error) error {
	if perr, ok := err.(participle.Error); ok {
		p := perr.Position()
		return &cqlerr.SyntaxError{
			Pos:     cqlerr.Position{Offset: p.Offset, Line: p.Line, Column: p.Column},
			Message: perr.Message(),
		}
	}
	return &cqlerr.SyntaxError{Message: err.Error()}
}
