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
	"strconv"

	"github.com/pkg/errors"
)

// maxStringBytes is the fixed capacity of a STRING/CHAR-as-string payload. It is a
// source-preserved wart: strings longer than this are truncated and only the
// leading bytes participate in comparison.
const maxStringBytes = 254

// Value is a tagged value carried by a filter field, parameter or constant.
// It is a plain value type: Go copies it on assignment, which plays the role
// the original's move semantics played for everything except the one place
// (parameter rollback) that needs an explicit, regex-preserving copy; see CopyFrom.
type Value struct {
	str         string
	regex       *compiledRegex
	Kind        Kind
	boolVal     bool
	charVal     byte
	signedVal   int64
	unsignedVal uint64
	floatVal    float64
	regexMode   RegexMode
}

// Zero returns a Value of the given kind with its payload zeroed.
func Zero(k Kind) Value {
	return Value{Kind: k}
}

// NewBool constructs a BOOLEAN value.
func NewBool(v bool) Value {
	return Value{Kind: KindBoolean, boolVal: v}
}

// NewChar constructs a CHAR value.
func NewChar(v byte) Value {
	return Value{Kind: KindChar, charVal: v}
}

// NewSignedInt constructs a SIGNED_INTEGER value.
func NewSignedInt(v int64) Value {
	return Value{Kind: KindSignedInteger, signedVal: v}
}

// NewUnsignedInt constructs an UNSIGNED_INTEGER value.
func NewUnsignedInt(v uint64) Value {
	return Value{Kind: KindUnsignedInteger, unsignedVal: v}
}

// NewFloat constructs a floating point value of the given float kind
// (FLOAT_CONST, FLOAT_FIELD, DOUBLE_FIELD or LONG_DOUBLE_FIELD).
func NewFloat(k Kind, v float64) Value {
	return Value{Kind: k, floatVal: v}
}

// NewString constructs a STRING value, truncating at maxStringBytes as the
// original's fixed 255-byte buffer does.
func NewString(v string) Value {
	return Value{Kind: KindString, str: truncate(v)}
}

func truncate(s string) string {
	if len(s) <= maxStringBytes {
		return s
	}
	return s[:maxStringBytes]
}

// SetString overwrites v in place with a new STRING payload, invalidating any
// cached regex so it is recompiled lazily on the next Regexp() call. This mirrors
// value_has_changed in the original: the regex is not rebuilt here, only marked stale.
func (v *Value) SetString(s string) {
	v.str = truncate(s)
	v.Kind = KindString
	if v.regex != nil {
		v.regex.dirty = true
	}
}

// Bool returns the boolean payload, valid only when Kind == KindBoolean.
func (v Value) Bool() bool { return v.boolVal }

// Char returns the char payload, valid only when Kind == KindChar.
func (v Value) Char() byte { return v.charVal }

// Signed returns the signed integer payload, valid only when Kind == KindSignedInteger.
func (v Value) Signed() int64 { return v.signedVal }

// Unsigned returns the unsigned integer payload, valid only when Kind == KindUnsignedInteger.
func (v Value) Unsigned() uint64 { return v.unsignedVal }

// Float returns the floating point payload, valid only when Kind.IsFloat().
func (v Value) Float() float64 { return v.floatVal }

// String returns the textual payload, valid only when Kind.IsTextual(). For CHAR
// it returns a single-character string, matching the original's "CHAR compares
// as a single-character string" rule.
func (v Value) String() string {
	if v.Kind == KindChar {
		return string(v.charVal)
	}
	return v.str
}

// CopyFrom overwrites v's content with other's, optionally carrying over the
// cached compiled regex. This is the explicit copy the original requires because
// its FilterValue is move-only; used by the top-level filter's parameter rollback
// on a partially-failed Set, where the prior regex must survive byte for byte.
func (v *Value) CopyFrom(other Value, copyRegex bool) {
	*v = other
	if !copyRegex {
		v.regex = nil
		v.regexMode = RegexNone
	}
}

// MarkRegex records that v's (future) string content should be interpreted as a
// regex template, per the given mode. It does not compile anything; compilation
// happens lazily the first time Regexp() is called after a value change.
func (v *Value) MarkRegex(mode RegexMode) {
	v.regexMode = mode
	if v.regex != nil {
		v.regex.dirty = true
	}
}

// ParseLiteral converts token text produced by the grammar's Literal rule into a
// Value of the appropriate kind. kindHint distinguishes a bare Bool/Int/Float/Char/
// String literal; used both for grammar-attached literals and for re-parsing a
// %N parameter's textual value.
func ParseLiteral(kindHint Kind, text string) (Value, error) {
	switch kindHint {
	case KindBoolean:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, errors.Wrapf(err, "invalid bool literal %q", text)
		}
		return NewBool(b), nil
	case KindChar:
		if len(text) != 1 {
			return Value{}, errors.Errorf("invalid char literal %q", text)
		}
		return NewChar(text[0]), nil
	case KindString:
		return NewString(text), nil
	case KindFloatConst:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, "invalid float literal %q", text)
		}
		return NewFloat(KindFloatConst, f), nil
	default:
		return parseIntLiteral(text)
	}
}

// parseIntLiteral parses a decimal or 0x-prefixed hex integer literal, choosing
// SIGNED_INTEGER or UNSIGNED_INTEGER per §4.2: negative or plain decimal values
// become signed; hex literals, or decimals that overflow int64, become unsigned.
func parseIntLiteral(text string) (Value, error) {
	if len(text) > 2 && (text[0:2] == "0x" || text[0:2] == "0X") {
		u, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return Value{}, errors.Wrapf(err, "invalid hex literal %q", text)
		}
		return NewUnsignedInt(u), nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return NewSignedInt(i), nil
	}
	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return Value{}, errors.Wrapf(err, "invalid integer literal %q", text)
	}
	return NewUnsignedInt(u), nil
}
