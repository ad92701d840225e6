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
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// RegexMode selects how a STRING/CHAR value's text is translated into a regex
// pattern when it is the right operand of a LIKE or MATCH predicate.
type RegexMode uint8

// Regex modes.
const (
	RegexNone RegexMode = iota
	RegexLike
	RegexMatch
)

// compiledRegex remembers the last compiled pattern for a Value and whether the
// underlying text has changed since, so Regexp() only recompiles on demand.
type compiledRegex struct {
	re    *regexp.Regexp
	err   error
	dirty bool
}

// cacheSize bounds the process-wide compiled-pattern cache. Filter expressions
// tend to reuse a handful of LIKE/MATCH templates across many predicates and
// across re-binds of the same expression with new parameters, so a shared cache
// avoids recompiling the same pattern per Value.
const cacheSize = 512

var patternCache, _ = lru.New[uint64, *regexp.Regexp](cacheSize)

// Regexp returns the compiled regex for v's current string content, compiling it
// (and populating the process-wide pattern cache) only if it was never compiled
// or the value changed since the last compilation. Returns an error if v carries
// no regex mode or the translated pattern fails to compile; callers (Compare)
// treat a compile error as a FALSE predicate result, not a panic.
func (v *Value) Regexp() (*regexp.Regexp, error) {
	if v.regexMode == RegexNone {
		return nil, errRegexModeUnset
	}
	if v.regex != nil && !v.regex.dirty {
		return v.regex.re, v.regex.err
	}
	pattern := v.String()
	if v.regexMode == RegexLike {
		pattern = likeToRegexPattern(pattern)
	}
	key := xxhash.Sum64String(pattern)
	if cached, ok := patternCache.Get(key); ok {
		v.regex = &compiledRegex{re: cached}
		return cached, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	v.regex = &compiledRegex{re: re, err: err}
	if err == nil {
		patternCache.Add(key, re)
	}
	return re, err
}

var errRegexModeUnset = regexpModeError{}

type regexpModeError struct{}

func (regexpModeError) Error() string { return "value has no regex mode set" }

// likeToRegexPattern translates SQL LIKE wildcards into a regex body: '%' becomes
// '.*', '_' becomes '.', and every other regex metacharacter is escaped so it
// matches itself literally.
func likeToRegexPattern(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) * 2)
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteByte('.')
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String()
}
