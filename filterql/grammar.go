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

// Package filterql implements the filter sub-language's PEG grammar and parser:
// participle-driven grammar structs, an intermediate AST, a tree normalizer that
// folds left-associative AND/OR chains into binary subtrees, and literal-value
// attachment.
//
//nolint:govet // field alignment is the grammar's documentation; don't reorder
package filterql

import "github.com/alecthomas/participle/v2/lexer"

// grammarExpr is the root ConditionList production: a left-associative chain of
// Condition nodes joined by AND/OR.
type grammarExpr struct {
	Pos   lexer.Position
	Left  *grammarCondition   `parser:"@@"`
	Right []*grammarExprRight `parser:"@@*"`
}

// grammarExprRight is one `(AND|OR) Condition` link of the chain.
type grammarExprRight struct {
	Op    string            `parser:"@('AND'|'OR')"`
	Right *grammarCondition `parser:"@@"`
}

// grammarCondition is `NOT? (Predicate | '(' ConditionList ')')`.
type grammarCondition struct {
	Pos       lexer.Position
	Not       bool              `parser:"@'NOT'?"`
	Paren     *grammarExpr      `parser:"(  '(' @@ ')'"`
	Predicate *grammarPredicate `parser:" | @@ )"`
}

// grammarPredicate is a left operand followed by either a BETWEEN tail or a
// comparison tail, mirroring the teacher's binary-predicate/tail-dispatch shape.
type grammarPredicate struct {
	Left *grammarOperand      `parser:"@@"`
	Tail *grammarPredicateTail `parser:"@@"`
}

// grammarPredicateTail dispatches between BetweenPred and Comparison.
type grammarPredicateTail struct {
	Between *grammarBetweenTail `parser:"  @@"`
	Compare *grammarCompareTail `parser:"| @@"`
}

// grammarBetweenTail is `(NOT)? BETWEEN Operand AND Operand`.
type grammarBetweenTail struct {
	Not     bool            `parser:"@'NOT'?"`
	Between string          `parser:"@'BETWEEN'"`
	Low     *grammarOperand `parser:"@@"`
	And     string          `parser:"@'AND'"`
	High    *grammarOperand `parser:"@@"`
}

// grammarCompareTail is `CmpOp Operand`.
type grammarCompareTail struct {
	Op    string          `parser:"@('<>'|'>='|'<='|'='|'<'|'>'|'LIKE'|'MATCH')"`
	Right *grammarOperand `parser:"@@"`
}

// grammarOperand is `FieldName | Literal | ParamRef`.
type grammarOperand struct {
	Field   *grammarFieldPath `parser:"  @@"`
	Literal *grammarLiteral   `parser:"| @@"`
	Param   *grammarParamRef  `parser:"| @@"`
}

// grammarFieldSegment is one dotted segment of a FieldName, with an optional
// `[N]` subscript, per §4.1's "dotted paths with optional [N] subscripts at any
// segment".
type grammarFieldSegment struct {
	Name  string `parser:"@Ident"`
	Index *int64 `parser:"( '[' @Int ']' )?"`
}

// grammarFieldPath is `Ident ( '[' Int ']' )? ( '.' Ident ( '[' Int ']' )? )*`.
type grammarFieldPath struct {
	Pos      lexer.Position
	Segments []*grammarFieldSegment `parser:"@@ ( '.' @@ )*"`
}

// grammarParamRef is a `%N` parameter reference.
type grammarParamRef struct {
	Pos  lexer.Position
	Text string `parser:"@Param"`
}

// grammarLiteral is `Bool | Int | Float | Char | String`. Hex and decimal
// integers are separate token alternatives that the normalizer turns into the
// same integer literal kind; a single-quoted literal's Char-vs-String
// classification happens later, in the normalizer, based on its decoded length.
type grammarLiteral struct {
	Pos    lexer.Position
	Bool   *string `parser:"(  @('TRUE'|'FALSE')"`
	Hex    *string `parser:" | @Hex"`
	Float  *string `parser:" | @Float"`
	Int    *string `parser:" | @Int"`
	Quoted *string `parser:" | @String )"`
}
