// Licensed to Apache Software Foundation (ASF) under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. Apache Software Foundation (ASF) licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package filterql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	pkgerrors "github.com/pkg/errors"
)

// filterKeywords is the single source of truth for reserved words. IS and NULL
// are reserved but not yet exercised by any grammar production; they tokenize
// as keywords so they cannot be mistaken for field identifiers.
var filterKeywords = []string{
	"AND", "OR", "NOT", "BETWEEN", "LIKE", "MATCH", "IS", "NULL", "TRUE", "FALSE",
}

var (
	filterLexer    lexer.Definition
	filterParser   *participle.Parser[grammarExpr]
	literalParser  *participle.Parser[grammarLiteral]
)

func init() {
	keywordStr := strings.Join(filterKeywords, "|")
	filterLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Keyword", Pattern: fmt.Sprintf(`(?i)(%s)\b`, keywordStr)},
		{Name: "Hex", Pattern: `0[xX][0-9a-fA-F]+`},
		{Name: "Float", Pattern: `[-+]?\d+\.\d+([eE][-+]?\d+)?`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "String", Pattern: `'(?:[^'\\]|\\.)*'`},
		{Name: "Param", Pattern: `%[0-9]+`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Operators", Pattern: `<>|>=|<=|[=<>(),.\[\]]`},
		{Name: "whitespace", Pattern: `\s+`},
	})

	var err error
	filterParser, err = participle.Build[grammarExpr](
		participle.Lexer(filterLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build filter expression parser: %v", err))
	}

	literalParser, err = participle.Build[grammarLiteral](
		participle.Lexer(filterLexer),
		participle.Unquote("String"),
		participle.CaseInsensitive("Keyword"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to build filter literal parser: %v", err))
	}
}

// ParseLiteralText parses text as a standalone Literal, the same production
// used for grammar-embedded literals. The binder uses this to re-parse a `%N`
// parameter's textual value, per §4.2's "the binder fetches the textual
// parameter and re-parses it as a literal".
func ParseLiteralText(text string) (*Literal, error) {
	g, err := literalParser.ParseString("", text)
	if err != nil {
		return nil, annotate(text, lexer.Position{}, err)
	}
	return normalizeLiteral(g)
}

// Parse parses text as a FilterExpr and normalizes it into a Node tree. Syntax
// errors from the grammar and semantic errors found while normalizing literals
// or parameter references are both reported with a byte offset, line/column
// and the offending source line, per the language's parser error contract.
func Parse(text string) (Node, error) {
	g, err := filterParser.ParseString("", text)
	if err != nil {
		var pos lexer.Position
		var perr participle.Error
		if errors.As(err, &perr) {
			pos = perr.Position()
		}
		return nil, annotate(text, pos, err)
	}
	n, err := normalize(g)
	if err != nil {
		var pe *parseError
		if errors.As(err, &pe) {
			return nil, annotate(text, pe.Pos, pkgerrors.New(pe.Msg))
		}
		return nil, annotate(text, lexer.Position{}, err)
	}
	return n, nil
}

// annotate wraps err with the source line at pos, so callers get the
// offending text alongside the line/column/byte-offset participle already
// carries on syntax errors.
func annotate(text string, pos lexer.Position, err error) error {
	line := sourceLine(text, pos.Line)
	if line == "" {
		return err
	}
	return pkgerrors.Errorf("%v\n  line %d: %s", err, pos.Line, line)
}

func sourceLine(text string, lineNo int) string {
	if lineNo <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if lineNo > len(lines) {
		return ""
	}
	return lines[lineNo-1]
}
