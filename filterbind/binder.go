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

// Package filterbind implements the semantic binder: it walks a filterql.Node
// tree against a message introspect.Descriptor, resolving field paths,
// checking array bounds, inferring value-kinds, verifying operand
// compatibility, and building the final filtertree expression.
package filterbind

import (
	"strconv"
	"strings"

	"github.com/banyanfilter/contentfilter/filterql"
	"github.com/banyanfilter/contentfilter/filtertree"
	"github.com/banyanfilter/contentfilter/filterval"
	"github.com/banyanfilter/contentfilter/introspect"
	"github.com/banyanfilter/contentfilter/pkg/logger"
)

var bindLog = logger.GetLogger("filterbind")

// Bind walks node against root, re-parsing each %N in params as a literal,
// and returns the compiled expression. On any error the caller must discard
// the partially built tree and keep whatever expression was previously
// installed; Bind never mutates anything outside the tree it is building.
func Bind(node filterql.Node, root introspect.Descriptor, params []string) (*Compiled, error) {
	b := &binder{root: root, paramTexts: params, fieldsByPath: map[string]*boundField{}}
	cond, err := b.bindNode(node)
	if err != nil {
		bindLog.Warn().Err(err).Msg("bind failed")
		return nil, err
	}
	return &Compiled{
		ParamTexts: params,
		Root:       cond,
		fields:     b.fieldOrder,
		parameters: b.parameters,
	}, nil
}

type binder struct {
	root         introspect.Descriptor
	paramTexts   []string
	fieldsByPath map[string]*boundField
	fieldOrder   []*boundField
	parameters   map[int]*filtertree.FilterParameter
}

func (b *binder) bindNode(n filterql.Node) (filtertree.Condition, error) {
	switch v := n.(type) {
	case *filterql.And:
		left, err := b.bindNode(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.bindNode(v.Right)
		if err != nil {
			return nil, err
		}
		return filtertree.NewAnd(left, right), nil
	case *filterql.Or:
		left, err := b.bindNode(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := b.bindNode(v.Right)
		if err != nil {
			return nil, err
		}
		return filtertree.NewOr(left, right), nil
	case *filterql.Not:
		child, err := b.bindNode(v.Child)
		if err != nil {
			return nil, err
		}
		return filtertree.NewNot(child), nil
	case *filterql.Comparison:
		return b.bindComparison(v)
	case *filterql.Between:
		return b.bindBetween(v)
	default:
		return nil, bindErrorf("unrecognized expression node %T", n)
	}
}

func (b *binder) bindComparison(c *filterql.Comparison) (filtertree.Condition, error) {
	left, leftKind, err := b.resolveOperand(c.Left)
	if err != nil {
		return nil, err
	}
	right, rightKind, err := b.resolveOperand(c.Right)
	if err != nil {
		return nil, err
	}
	if !filterval.Compatible(leftKind, rightKind) {
		return nil, bindErrorf("incompatible operand kinds %s and %s", leftKind, rightKind)
	}
	if c.Op == filterval.OpLike || c.Op == filterval.OpMatch {
		if !leftKind.IsTextual() || !rightKind.IsTextual() {
			return nil, bindErrorf("LIKE/MATCH requires string-compatible operands, got %s and %s", leftKind, rightKind)
		}
		_, leftIsField := c.Left.(*filterql.FieldPath)
		_, rightIsField := c.Right.(*filterql.FieldPath)
		if !leftIsField && !rightIsField {
			return nil, bindErrorf("LIKE/MATCH requires a string-typed field operand")
		}
		markAsRegexTemplate(c.Op, right)
	}
	return filtertree.NewPredicate(c.Op, left, right), nil
}

// markAsRegexTemplate flags the right-hand value node's Value as a LIKE or
// MATCH regex template, per §4.4.
func markAsRegexTemplate(op filterval.Op, right filtertree.ValueNode) {
	mode := filterval.RegexLike
	if op == filterval.OpMatch {
		mode = filterval.RegexMatch
	}
	if m, ok := right.(interface{ MarkRegex(filterval.RegexMode) }); ok {
		m.MarkRegex(mode)
	}
}

// bindBetween desugars BETWEEN into `(op1 <= field) AND (field <= op2)` and
// NOT BETWEEN into `(op1 > field) OR (field > op2)`, matching the source's
// construction literally. The NOT BETWEEN form is the exact complement of the
// BETWEEN form: at field == op1 or field == op2 it is false. See DESIGN.md for
// the boundary discussion.
func (b *binder) bindBetween(bt *filterql.Between) (filtertree.Condition, error) {
	fieldPath, ok := bt.Field.(*filterql.FieldPath)
	if !ok {
		return nil, bindErrorf("BETWEEN requires a field name on the left")
	}
	field, fieldKind, err := b.resolveOperand(fieldPath)
	if err != nil {
		return nil, err
	}
	op1, op1Kind, err := b.resolveOperand(bt.Low)
	if err != nil {
		return nil, err
	}
	op2, op2Kind, err := b.resolveOperand(bt.High)
	if err != nil {
		return nil, err
	}
	if !filterval.Compatible(fieldKind, op1Kind) || !filterval.Compatible(fieldKind, op2Kind) ||
		!filterval.Compatible(op1Kind, op2Kind) {
		return nil, bindErrorf("BETWEEN operands are not mutually compatible")
	}

	op := filterval.OpLE
	logical := func(l, r filtertree.Condition) filtertree.Condition { return filtertree.NewAnd(l, r) }
	if bt.Not {
		op = filterval.OpGT
		logical = func(l, r filtertree.Condition) filtertree.Condition { return filtertree.NewOr(l, r) }
	}
	left := filtertree.NewPredicate(op, op1, field)
	right := filtertree.NewPredicate(op, field, op2)
	return logical(left, right), nil
}

func (b *binder) resolveOperand(op filterql.Operand) (filtertree.ValueNode, filterval.Kind, error) {
	switch v := op.(type) {
	case *filterql.FieldPath:
		return b.resolveFieldPath(v)
	case *filterql.Literal:
		val, err := filterval.ParseLiteral(v.Kind, v.Text)
		if err != nil {
			return nil, 0, bindErrorf("invalid literal %q: %v", v.Text, err)
		}
		return filtertree.NewConstant(val), val.Kind, nil
	case *filterql.ParamRef:
		return b.resolveParam(v)
	default:
		return nil, 0, bindErrorf("unrecognized operand %T", op)
	}
}

func (b *binder) resolveParam(p *filterql.ParamRef) (filtertree.ValueNode, filterval.Kind, error) {
	if p.Index < 0 || p.Index >= len(b.paramTexts) {
		return nil, 0, badParameterf("parameter index %d out of range (have %d)", p.Index, len(b.paramTexts))
	}
	lit, err := filterql.ParseLiteralText(b.paramTexts[p.Index])
	if err != nil {
		return nil, 0, badParameterf("parameter %%%d re-parse failed: %v", p.Index, err)
	}
	val, err := filterval.ParseLiteral(lit.Kind, lit.Text)
	if err != nil {
		return nil, 0, badParameterf("parameter %%%d re-parse failed: %v", p.Index, err)
	}
	if b.parameters == nil {
		b.parameters = map[int]*filtertree.FilterParameter{}
	}
	if existing, ok := b.parameters[p.Index]; ok {
		return existing, existing.Value().Kind, nil
	}
	param := filtertree.NewParameter(p.Index, val)
	b.parameters[p.Index] = param
	return param, val.Kind, nil
}

// resolveFieldPath binds a dotted, optionally-subscripted field reference,
// threading the descriptor state described by §4.3's CurrentIdentifierState,
// and dedups against any FilterField already bound for the same canonical
// path, per §3's "each FilterField appears at most once in fields".
func (b *binder) resolveFieldPath(fp *filterql.FieldPath) (filtertree.ValueNode, filterval.Kind, error) {
	path, kind, canon, err := b.walkSegments(fp.Segments)
	if err != nil {
		return nil, 0, err
	}
	if bf, ok := b.fieldsByPath[canon]; ok {
		return bf.field, kind, nil
	}
	field := filtertree.NewField(canon, kind)
	bf := &boundField{field: field, path: path}
	b.fieldsByPath[canon] = bf
	b.fieldOrder = append(b.fieldOrder, bf)
	return field, kind, nil
}

func (b *binder) walkSegments(segments []filterql.FieldSegment) ([]introspect.Step, filterval.Kind, string, error) {
	cur := b.root
	path := make([]introspect.Step, 0, len(segments))
	var canon strings.Builder
	var finalTag introspect.TypeTag

	for i, seg := range segments {
		member, idx, found := cur.MemberByName(seg.Name)
		if !found {
			return nil, 0, "", bindErrorf("field %q not found", seg.Name)
		}
		hasIndex := seg.Index != nil
		if hasIndex && !member.IsIndexable() {
			return nil, 0, "", bindErrorf("field %q is not an array or sequence", seg.Name)
		}
		if !hasIndex && member.IsIndexable() {
			return nil, 0, "", bindErrorf("field %q is an array or sequence and requires an index", seg.Name)
		}

		arrIdx := uint32(introspect.NoIndex)
		if hasIndex {
			n := *seg.Index
			if n < 0 {
				return nil, 0, "", bindErrorf("field %q index %d is negative", seg.Name, n)
			}
			if member.FixedSize() > 0 && int(n) >= member.FixedSize() {
				return nil, 0, "", bindErrorf("field %q index %d out of range (size %d)", seg.Name, n, member.FixedSize())
			}
			// Upper-bounded and unbounded sequences defer the bounds check to
			// evaluation time, per §4.3 step 3.
			arrIdx = uint32(n)
		}

		path = append(path, introspect.Step{Descriptor: cur, ArrayIndex: arrIdx, MemberIndex: idx})

		tag := member.TypeTag()
		isLast := i == len(segments)-1
		if tag == introspect.TagMessage {
			nested, ok := member.NestedDescriptor()
			if !ok {
				return nil, 0, "", bindErrorf("field %q has no nested descriptor", seg.Name)
			}
			cur = nested
		} else if !isLast {
			return nil, 0, "", bindErrorf("field %q is not a message and cannot be descended into", seg.Name)
		}
		finalTag = tag
		canon.WriteString(seg.Name)
		if hasIndex {
			canon.WriteByte('[')
			canon.WriteString(strconv.FormatInt(*seg.Index, 10))
			canon.WriteByte(']')
		}
		if !isLast {
			canon.WriteByte('.')
		}
	}

	if !finalTag.IsPrimitive() {
		return nil, 0, "", bindErrorf("field path terminal type is not primitive")
	}
	kind, ok := finalTag.ValueKind()
	if !ok {
		return nil, 0, "", bindErrorf("field path terminal type has no value-kind mapping")
	}
	return path, kind, canon.String(), nil
}

// boundField pairs a materialized FilterField with the access path the
// evaluator walks to fill it in from a payload.
type boundField struct {
	field *filtertree.FilterField
	path  []introspect.Step
}
