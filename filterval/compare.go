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

import "strings"

// Op is a predicate comparison operator.
type Op uint8

// Comparison operators, matching §4.1's CmpOp.
const (
	OpEQ Op = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
	OpLike
	OpMatch
)

// Compare evaluates lhs <op> rhs. It assumes Compatible(lhs.Kind, rhs.Kind) was
// already verified at bind time; ok is false only for LIKE/MATCH misused against
// an incompatible kind pair, which the binder should have already rejected.
func Compare(op Op, lhs, rhs Value) (result bool, ok bool) {
	switch op {
	case OpLike, OpMatch:
		return likeOrMatch(lhs, rhs)
	default:
		c, comparable := compareValues(lhs, rhs)
		if !comparable {
			return false, false
		}
		switch op {
		case OpEQ:
			return c == 0, true
		case OpNE:
			return c != 0, true
		case OpLT:
			return c < 0, true
		case OpLE:
			return c <= 0, true
		case OpGT:
			return c > 0, true
		case OpGE:
			return c >= 0, true
		default:
			return false, false
		}
	}
}

// compareValues implements the promotion rules of §4.4: numeric kinds promote to
// a common representation (signed if both fit signed, else unsigned; any float
// involvement promotes both sides to float64, standing in for the original's long
// double — see §9 design note 3 on precision loss above 2^53). Boolean compares as
// 0/1 against an integer. Text compares lexicographically byte-by-byte.
func compareValues(lhs, rhs Value) (int, bool) {
	lg, rg := lhs.Kind.group(), rhs.Kind.group()

	if lg == groupText && rg == groupText {
		return strings.Compare(lhs.String(), rhs.String()), true
	}
	if lg == groupText || rg == groupText {
		return 0, false
	}

	if lg == groupBool && rg == groupBool {
		return boolAsInt(lhs.boolVal) - boolAsInt(rhs.boolVal), true
	}

	if lg == groupFloat || rg == groupFloat {
		return compareFloat(asFloat(lhs), asFloat(rhs)), true
	}

	// Both are boolean/signed/unsigned integers: promote bool to 0/1, then compare
	// as signed unless either side does not fit in an int64.
	ls, lok := asSigned(lhs)
	rs, rok := asSigned(rhs)
	if lok && rok {
		return compareInt64(ls, rs), true
	}
	return compareUint64(asUnsigned(lhs), asUnsigned(rhs)), true
}

func boolAsInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func asFloat(v Value) float64 {
	switch v.Kind.group() {
	case groupFloat:
		return v.floatVal
	case groupBool:
		return float64(boolAsInt(v.boolVal))
	default:
		if v.Kind == KindUnsignedInteger {
			return float64(v.unsignedVal)
		}
		return float64(v.signedVal)
	}
}

// asSigned reports v's value as an int64 and whether it fits without overflow.
func asSigned(v Value) (int64, bool) {
	if v.Kind == KindBoolean {
		return int64(boolAsInt(v.boolVal)), true
	}
	if v.Kind == KindUnsignedInteger {
		if v.unsignedVal > 1<<63-1 {
			return 0, false
		}
		return int64(v.unsignedVal), true
	}
	return v.signedVal, true
}

func asUnsigned(v Value) uint64 {
	if v.Kind == KindBoolean {
		return uint64(boolAsInt(v.boolVal))
	}
	if v.Kind == KindUnsignedInteger {
		return v.unsignedVal
	}
	return uint64(v.signedVal)
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// likeOrMatch evaluates LIKE/MATCH: rhs is the regex template operand. Pattern
// compilation failure yields FALSE for the predicate, per §4.4, rather than an error.
func likeOrMatch(lhs, rhs Value) (bool, bool) {
	if !lhs.Kind.IsTextual() || !rhs.Kind.IsTextual() {
		return false, false
	}
	re, err := rhs.Regexp()
	if err != nil {
		return false, true
	}
	return re.MatchString(lhs.String()), true
}
