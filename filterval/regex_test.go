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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToRegexPattern(t *testing.T) {
	tests := []struct {
		like string
		want string
	}{
		{"foo%", "foo.*"},
		{"f_o", "f.o"},
		{"a.b", `a\.b`},
		{"100%", `100.*`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, likeToRegexPattern(tt.like))
	}
}

func TestLikeMatchPredicate(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		pattern string
		subject string
		want    bool
	}{
		{"like-prefix", OpLike, "foo%", "foobar", true},
		{"like-prefix-miss", OpLike, "foo%", "xfoo", false},
		{"match-anchored", OpMatch, "[a-z]+[0-9]+", "abc123", true},
		{"match-anchored-miss", OpMatch, "[a-z]+[0-9]+", "abc123x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rhs := NewString(tt.pattern)
			mode := RegexLike
			if tt.op == OpMatch {
				mode = RegexMatch
			}
			rhs.MarkRegex(mode)
			lhs := NewString(tt.subject)
			got, ok := Compare(tt.op, lhs, rhs)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegexpLazyRecompileOnChange(t *testing.T) {
	var v Value
	v.SetString("a%")
	v.MarkRegex(RegexLike)
	re1, err := v.Regexp()
	require.NoError(t, err)
	assert.True(t, re1.MatchString("abc"))

	v.SetString("b%")
	re2, err := v.Regexp()
	require.NoError(t, err)
	assert.False(t, re2.MatchString("abc"))
	assert.True(t, re2.MatchString("bcd"))
}

func TestRegexpCompileFailureYieldsError(t *testing.T) {
	var v Value
	v.SetString("[")
	v.MarkRegex(RegexMatch)
	_, err := v.Regexp()
	assert.Error(t, err)
}
