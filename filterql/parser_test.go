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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banyanfilter/contentfilter/filterval"
)

func TestParseSimpleComparison(t *testing.T) {
	n, err := Parse("speed > 10")
	require.NoError(t, err)
	cmp, ok := n.(*Comparison)
	require.True(t, ok)
	assert.Equal(t, filterval.OpGT, cmp.Op)
	field, ok := cmp.Left.(*FieldPath)
	require.True(t, ok)
	require.Len(t, field.Segments, 1)
	assert.Equal(t, "speed", field.Segments[0].Name)
	lit, ok := cmp.Right.(*Literal)
	require.True(t, ok)
	assert.Equal(t, "10", lit.Text)
}

func TestParseRightBiasedChain(t *testing.T) {
	n, err := Parse("a = 1 AND b = 2 OR c = 3")
	require.NoError(t, err)
	// Right-biased: a AND (b OR c).
	and, ok := n.(*And)
	require.True(t, ok)
	_, leftIsCmp := and.Left.(*Comparison)
	assert.True(t, leftIsCmp)
	or, ok := and.Right.(*Or)
	require.True(t, ok)
	_, ok = or.Left.(*Comparison)
	assert.True(t, ok)
	_, ok = or.Right.(*Comparison)
	assert.True(t, ok)
}

func TestParseParenthesizedGrouping(t *testing.T) {
	n, err := Parse("(a = 1 AND b = 2) OR c = 3")
	require.NoError(t, err)
	or, ok := n.(*Or)
	require.True(t, ok)
	_, ok = or.Left.(*And)
	assert.True(t, ok)
}

func TestParseNot(t *testing.T) {
	n, err := Parse("NOT a = 1")
	require.NoError(t, err)
	not, ok := n.(*Not)
	require.True(t, ok)
	_, ok = not.Child.(*Comparison)
	assert.True(t, ok)
}

func TestParseBetween(t *testing.T) {
	n, err := Parse("x BETWEEN 1 AND 10")
	require.NoError(t, err)
	b, ok := n.(*Between)
	require.True(t, ok)
	assert.False(t, b.Not)
	assert.Equal(t, "1", b.Low.(*Literal).Text)
	assert.Equal(t, "10", b.High.(*Literal).Text)
}

func TestParseNotBetween(t *testing.T) {
	n, err := Parse("x NOT BETWEEN 1 AND 10")
	require.NoError(t, err)
	b, ok := n.(*Between)
	require.True(t, ok)
	assert.True(t, b.Not)
}

func TestParseFieldPathWithIndex(t *testing.T) {
	n, err := Parse("data.names[0] = 'abc'")
	require.NoError(t, err)
	cmp := n.(*Comparison)
	field := cmp.Left.(*FieldPath)
	require.Len(t, field.Segments, 2)
	assert.Equal(t, "data", field.Segments[0].Name)
	assert.Nil(t, field.Segments[0].Index)
	assert.Equal(t, "names", field.Segments[1].Name)
	require.NotNil(t, field.Segments[1].Index)
	assert.EqualValues(t, 0, *field.Segments[1].Index)
}

func TestParseParamRef(t *testing.T) {
	n, err := Parse("speed > %0")
	require.NoError(t, err)
	cmp := n.(*Comparison)
	param := cmp.Right.(*ParamRef)
	assert.Equal(t, 0, param.Index)
}

func TestLiteralCharVsStringClassification(t *testing.T) {
	n, err := Parse("c = 'x'")
	require.NoError(t, err)
	lit := n.(*Comparison).Right.(*Literal)
	assert.Equal(t, filterval.KindChar, lit.Kind)

	n, err = Parse("s = 'hello'")
	require.NoError(t, err)
	lit = n.(*Comparison).Right.(*Literal)
	assert.Equal(t, filterval.KindString, lit.Kind)
}

func TestParseHexLiteral(t *testing.T) {
	n, err := Parse("flags = 0xFF")
	require.NoError(t, err)
	lit := n.(*Comparison).Right.(*Literal)
	assert.Equal(t, "0xFF", lit.Text)
}

func TestParseLikeAndMatch(t *testing.T) {
	n, err := Parse("name LIKE 'a%'")
	require.NoError(t, err)
	assert.Equal(t, filterval.OpLike, n.(*Comparison).Op)

	n, err = Parse("name MATCH 'a.*'")
	require.NoError(t, err)
	assert.Equal(t, filterval.OpMatch, n.(*Comparison).Op)
}

func TestParseSyntaxErrorReportsLine(t *testing.T) {
	_, err := Parse("a = ")
	require.Error(t, err)
}
