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
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/banyanfilter/contentfilter/filterval"
)

// normalize folds g's left-associative AND/OR chain into a right-biased binary
// tree and converts every predicate and operand beneath it.
func normalize(g *grammarExpr) (Node, error) {
	nodes := make([]Node, 0, len(g.Right)+1)
	ops := make([]string, 0, len(g.Right))

	left, err := normalizeCondition(g.Left)
	if err != nil {
		return nil, err
	}
	nodes = append(nodes, left)
	for _, r := range g.Right {
		n, err := normalizeCondition(r.Right)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		ops = append(ops, r.Op)
	}

	result := nodes[len(nodes)-1]
	for i := len(nodes) - 2; i >= 0; i-- {
		result = combine(ops[i], nodes[i], result)
	}
	return result, nil
}

func combine(op string, left, right Node) Node {
	if strings.EqualFold(op, "OR") {
		return &Or{Left: left, Right: right}
	}
	return &And{Left: left, Right: right}
}

func normalizeCondition(c *grammarCondition) (Node, error) {
	var n Node
	var err error
	switch {
	case c.Paren != nil:
		n, err = normalize(c.Paren)
	case c.Predicate != nil:
		n, err = normalizePredicate(c.Predicate)
	default:
		return nil, newParseError(c.Pos, "empty condition")
	}
	if err != nil {
		return nil, err
	}
	if c.Not {
		return &Not{Child: n}, nil
	}
	return n, nil
}

func normalizePredicate(p *grammarPredicate) (Node, error) {
	left, err := normalizeOperand(p.Left)
	if err != nil {
		return nil, err
	}
	switch {
	case p.Tail.Between != nil:
		low, err := normalizeOperand(p.Tail.Between.Low)
		if err != nil {
			return nil, err
		}
		high, err := normalizeOperand(p.Tail.Between.High)
		if err != nil {
			return nil, err
		}
		return &Between{Field: left, Not: p.Tail.Between.Not, Low: low, High: high}, nil
	case p.Tail.Compare != nil:
		right, err := normalizeOperand(p.Tail.Compare.Right)
		if err != nil {
			return nil, err
		}
		op, err := compareOp(p.Tail.Compare.Op)
		if err != nil {
			return nil, err
		}
		return &Comparison{Left: left, Op: op, Right: right}, nil
	default:
		return nil, errors.New("predicate has neither a BETWEEN nor a comparison tail")
	}
}

func compareOp(text string) (filterval.Op, error) {
	switch strings.ToUpper(text) {
	case "=":
		return filterval.OpEQ, nil
	case "<>":
		return filterval.OpNE, nil
	case "<":
		return filterval.OpLT, nil
	case "<=":
		return filterval.OpLE, nil
	case ">":
		return filterval.OpGT, nil
	case ">=":
		return filterval.OpGE, nil
	case "LIKE":
		return filterval.OpLike, nil
	case "MATCH":
		return filterval.OpMatch, nil
	default:
		return 0, errors.Errorf("unknown comparison operator %q", text)
	}
}

func normalizeOperand(o *grammarOperand) (Operand, error) {
	switch {
	case o.Field != nil:
		return normalizeFieldPath(o.Field), nil
	case o.Literal != nil:
		return normalizeLiteral(o.Literal)
	case o.Param != nil:
		return normalizeParam(o.Param)
	default:
		return nil, errors.New("empty operand")
	}
}

func normalizeFieldPath(f *grammarFieldPath) *FieldPath {
	segs := make([]FieldSegment, len(f.Segments))
	for i, s := range f.Segments {
		segs[i] = FieldSegment{Name: s.Name, Index: s.Index}
	}
	return &FieldPath{Segments: segs}
}

// normalizeLiteral resolves the grammar's literal alternatives to an AST
// Literal. A quoted literal whose decoded content is exactly one byte is
// classified CHAR; any other length (including zero) is STRING. This
// deterministic, length-based rule replaces the original's context-dependent
// char/string disambiguation (see DESIGN.md).
func normalizeLiteral(l *grammarLiteral) (*Literal, error) {
	switch {
	case l.Bool != nil:
		return &Literal{Kind: filterval.KindBoolean, Text: *l.Bool}, nil
	case l.Hex != nil:
		return &Literal{Kind: filterval.KindSignedInteger, Text: *l.Hex}, nil
	case l.Float != nil:
		return &Literal{Kind: filterval.KindFloatConst, Text: *l.Float}, nil
	case l.Int != nil:
		return &Literal{Kind: filterval.KindSignedInteger, Text: *l.Int}, nil
	case l.Quoted != nil:
		if len(*l.Quoted) == 1 {
			return &Literal{Kind: filterval.KindChar, Text: *l.Quoted}, nil
		}
		return &Literal{Kind: filterval.KindString, Text: *l.Quoted}, nil
	default:
		return nil, newParseError(l.Pos, "empty literal")
	}
}

func normalizeParam(p *grammarParamRef) (*ParamRef, error) {
	idx, err := parseParamIndex(p.Text)
	if err != nil {
		return nil, newParseError(p.Pos, err.Error())
	}
	return &ParamRef{Index: idx}, nil
}

func parseParamIndex(text string) (int, error) {
	if len(text) < 2 || text[0] != '%' {
		return 0, errors.Errorf("malformed parameter reference %q", text)
	}
	n := 0
	for _, c := range text[1:] {
		if c < '0' || c > '9' {
			return 0, errors.Errorf("malformed parameter reference %q", text)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// parseError carries a source position alongside its message so the parser's
// entry point can attach the offending line.
type parseError struct {
	Pos lexer.Position
	Msg string
}

func (e *parseError) Error() string { return e.Msg }

func newParseError(pos lexer.Position, msg string) error {
	return &parseError{Pos: pos, Msg: msg}
}
