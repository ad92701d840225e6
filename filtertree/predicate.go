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

package filtertree

import "github.com/banyanfilter/contentfilter/filterval"

// Predicate is a binary condition `left <op> right`. It stays Undecided until
// both operands have a value; whenever either operand changes it recomputes
// the comparison and transitions to True/False, per §4.5.
type Predicate struct {
	base
	Left  ValueNode
	Right ValueNode
	Op    filterval.Op
}

// NewPredicate builds a Predicate and registers it as a dependent of any
// FilterField operand, so the field notifies this predicate on materialization.
func NewPredicate(op filterval.Op, left, right ValueNode) *Predicate {
	p := &Predicate{Op: op, Left: left, Right: right}
	left.addDependent(p)
	right.addDependent(p)
	return p
}

// valueChanged is the operand-change hook: called by a FilterField operand
// when SetValue notifies it. If both operands now have a value, the
// comparison is computed and the predicate transitions out of Undecided.
func (p *Predicate) valueChanged() {
	if !p.Left.HasValue() || !p.Right.HasValue() {
		return
	}
	result, ok := filterval.Compare(p.Op, p.Left.Value(), p.Right.Value())
	if !ok {
		// The binder should have rejected an incompatible operand pairing at
		// bind time; treat any that slip through as a conservative reject.
		p.setState(p, False)
		return
	}
	if result {
		p.setState(p, True)
	} else {
		p.setState(p, False)
	}
}

// Reset restores Undecided and, per §4.5, also resets both operands: this is
// what clears has_value on a field operand so the evaluator must re-materialize
// it before this predicate can decide again.
func (p *Predicate) Reset() {
	p.resetState()
	p.Left.Reset()
	p.Right.Reset()
}

func (p *Predicate) childChanged(Condition) {
	// Predicates have no child Conditions; only Compound nodes do.
}
