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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banyanfilter/contentfilter/filterval"
)

func eqPredicate(fieldVal, lit int64) (*Predicate, *FilterField) {
	f := NewField("f", filterval.KindSignedInteger)
	c := NewConstant(filterval.NewSignedInt(lit))
	p := NewPredicate(filterval.OpEQ, f, c)
	_ = fieldVal
	return p, f
}

func TestPredicateUndecidedUntilBothOperandsSet(t *testing.T) {
	p, f := eqPredicate(0, 4)
	assert.Equal(t, Undecided, p.State())
	f.SetValue(filterval.NewSignedInt(4))
	assert.Equal(t, True, p.State())
}

func TestPredicateResetClearsFieldValue(t *testing.T) {
	p, f := eqPredicate(0, 4)
	f.SetValue(filterval.NewSignedInt(4))
	require.Equal(t, True, p.State())
	p.Reset()
	assert.Equal(t, Undecided, p.State())
	assert.False(t, f.HasValue())
}

func TestAndShortCircuitsOnFalse(t *testing.T) {
	pLeft, fLeft := eqPredicate(0, 1)
	pRight, fRight := eqPredicate(0, 2)
	and := NewAnd(pLeft, pRight)

	fLeft.SetValue(filterval.NewSignedInt(999)) // != 1 -> false
	assert.Equal(t, False, and.State())

	// fRight never materialized; AND already decided.
	assert.False(t, fRight.HasValue())
}

func TestAndWaitsForBothOnTrue(t *testing.T) {
	pLeft, fLeft := eqPredicate(0, 1)
	pRight, fRight := eqPredicate(0, 2)
	and := NewAnd(pLeft, pRight)

	fLeft.SetValue(filterval.NewSignedInt(1))
	assert.Equal(t, Undecided, and.State())
	fRight.SetValue(filterval.NewSignedInt(2))
	assert.Equal(t, True, and.State())
}

func TestOrShortCircuitsOnTrue(t *testing.T) {
	pLeft, fLeft := eqPredicate(0, 1)
	_, fRight := eqPredicate(0, 2)
	or := NewOr(pLeft, NewPredicate(filterval.OpEQ, fRight, NewConstant(filterval.NewSignedInt(2))))

	fLeft.SetValue(filterval.NewSignedInt(1))
	assert.Equal(t, True, or.State())
	assert.False(t, fRight.HasValue())
}

func TestNotFlipsChildState(t *testing.T) {
	p, f := eqPredicate(0, 1)
	not := NewNot(p)
	f.SetValue(filterval.NewSignedInt(999))
	assert.Equal(t, False, p.State())
	assert.Equal(t, True, not.State())
}

func TestDeMorgan(t *testing.T) {
	for _, av := range []int64{1, 999} {
		for _, bv := range []int64{2, 999} {
			pa, fa := eqPredicate(0, 1)
			pb, fb := eqPredicate(0, 2)
			and := NewAnd(pa, pb)
			notAnd := NewNot(and)
			fa.SetValue(filterval.NewSignedInt(av))
			fb.SetValue(filterval.NewSignedInt(bv))
			lhs := notAnd.State()

			pa2, fa2 := eqPredicate(0, 1)
			pb2, fb2 := eqPredicate(0, 2)
			notA := NewNot(pa2)
			notB := NewNot(pb2)
			or := NewOr(notA, notB)
			fa2.SetValue(filterval.NewSignedInt(av))
			fb2.SetValue(filterval.NewSignedInt(bv))
			rhs := or.State()

			assert.Equal(t, lhs, rhs)
		}
	}
}

func TestEmptyConditionAlwaysTrue(t *testing.T) {
	assert.Equal(t, True, Empty.State())
	Empty.Reset()
	assert.Equal(t, True, Empty.State())
}
