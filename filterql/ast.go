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
	"github.com/banyanfilter/contentfilter/filterval"
)

// Node is a normalized AST node: And, Or, Not, Comparison or Between. It is
// implemented only by types in this package.
type Node interface {
	node()
}

// And is a binary logical conjunction.
type And struct{ Left, Right Node }

// Or is a binary logical disjunction.
type Or struct{ Left, Right Node }

// Not is a logical negation of a single child.
type Not struct{ Child Node }

// Comparison is `Left <Op> Right`.
type Comparison struct {
	Left  Operand
	Op    filterval.Op
	Right Operand
}

// Between is `Field (NOT)? BETWEEN Low AND High`. Not is carried rather than
// desugared here: the binder owns the decision of how to desugar it (see
// the doc comment on its bindBetween).
type Between struct {
	Field Operand
	Not   bool
	Low   Operand
	High  Operand
}

func (*And) node()        {}
func (*Or) node()         {}
func (*Not) node()        {}
func (*Comparison) node() {}
func (*Between) node()    {}

// Operand is a FieldName, Literal or ParamRef appearing in a Comparison or
// Between node.
type Operand interface {
	operand()
}

// FieldSegment is one `name` or `name[index]` path segment.
type FieldSegment struct {
	Name  string
	Index *int64
}

// FieldPath is a dotted, optionally-subscripted field reference, e.g. `a.b[2].c`.
type FieldPath struct {
	Segments []FieldSegment
}

// Literal is a constant value attached at parse time. Kind is one of
// KindBoolean, KindChar, KindString, KindFloatConst, or KindSignedInteger used
// as a sentinel requesting integer auto-detection (see filterval.ParseLiteral).
type Literal struct {
	Kind filterval.Kind
	Text string
}

// ParamRef is a `%N` parameter reference.
type ParamRef struct {
	Index int
}

func (*FieldPath) operand() {}
func (*Literal) operand()   {}
func (*ParamRef) operand()  {}
