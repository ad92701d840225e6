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

package filterval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b Kind
		want bool
	}{
		{"bool-bool", KindBoolean, KindBoolean, true},
		{"bool-signed", KindBoolean, KindSignedInteger, true},
		{"bool-float", KindBoolean, KindFloatConst, false},
		{"bool-text", KindBoolean, KindString, false},
		{"signed-unsigned", KindSignedInteger, KindUnsignedInteger, true},
		{"signed-float", KindSignedInteger, KindDoubleField, true},
		{"float-float", KindFloatConst, KindDoubleField, true},
		{"float-text", KindFloatConst, KindString, false},
		{"char-string", KindChar, KindString, true},
		{"string-signed", KindString, KindSignedInteger, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compatible(tt.a, tt.b))
			assert.Equal(t, tt.want, Compatible(tt.b, tt.a))
		})
	}
}

func TestCompareNumericPromotion(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		lhs  Value
		rhs  Value
		want bool
	}{
		{"signed-eq-unsigned", OpEQ, NewSignedInt(4), NewUnsignedInt(4), true},
		{"signed-lt-float", OpLT, NewSignedInt(3), NewFloat(KindDoubleField, 3.5), true},
		{"bool-eq-int", OpEQ, NewBool(true), NewSignedInt(1), true},
		{"bool-ne-int", OpNE, NewBool(false), NewSignedInt(1), true},
		{"string-eq", OpEQ, NewString("abc"), NewString("abc"), true},
		{"string-lt", OpLT, NewString("abc"), NewString("abd"), true},
		{"char-as-string", OpEQ, NewChar('a'), NewString("a"), true},
		{"large-unsigned-gt-signed", OpGT, NewUnsignedInt(1 << 62), NewSignedInt(100), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.op, tt.lhs, tt.rhs)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareIncompatibleKinds(t *testing.T) {
	_, ok := Compare(OpEQ, NewString("x"), NewSignedInt(1))
	assert.False(t, ok)
}

func TestParseLiteral(t *testing.T) {
	v, err := ParseLiteral(KindSignedInteger, "-42")
	require.NoError(t, err)
	assert.Equal(t, KindSignedInteger, v.Kind)
	assert.Equal(t, int64(-42), v.Signed())

	v, err = ParseLiteral(KindSignedInteger, "0xFF")
	require.NoError(t, err)
	assert.Equal(t, KindUnsignedInteger, v.Kind)
	assert.Equal(t, uint64(0xFF), v.Unsigned())

	v, err = ParseLiteral(KindFloatConst, "3.14")
	require.NoError(t, err)
	assert.InDelta(t, 3.14, v.Float(), 0.0001)

	v, err = ParseLiteral(KindBoolean, "true")
	require.NoError(t, err)
	assert.True(t, v.Bool())

	_, err = ParseLiteral(KindChar, "ab")
	require.Error(t, err)
}

func TestStringTruncation(t *testing.T) {
	long := strings.Repeat("x", 300)
	v := NewString(long)
	assert.Len(t, v.String(), maxStringBytes)
}

func TestCopyFromPreservesRegex(t *testing.T) {
	var v Value
	v.SetString("foo%")
	v.MarkRegex(RegexLike)
	_, err := v.Regexp()
	require.NoError(t, err)

	var rollback Value
	rollback.CopyFrom(v, true)
	re, err := rollback.Regexp()
	require.NoError(t, err)
	assert.True(t, re.MatchString("foobar"))

	var noRegex Value
	noRegex.CopyFrom(v, false)
	_, err = noRegex.Regexp()
	assert.Error(t, err)
}
