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

// Package introspect normalizes two message-descriptor flavors (a struct-reflect
// flavor and a protobuf/dynamicpb flavor) behind one read-only Descriptor interface,
// so the rest of the engine never switches on flavor itself.
package introspect

import (
	"math"

	"github.com/pkg/errors"

	"github.com/banyanfilter/contentfilter/filterval"
)

// TypeTag is a one-byte tag for a member's primitive type, plus the three
// non-primitive markers MESSAGE, WCHAR and WSTRING that the binder rejects as
// terminal field types.
type TypeTag uint8

// Type tags.
const (
	TagBool TypeTag = iota
	TagChar
	TagInt8
	TagInt16
	TagInt32
	TagInt64
	TagUint8
	TagUint16
	TagUint32
	TagUint64
	TagFloat32
	TagFloat64
	TagLongDouble
	TagString
	TagMessage
	TagWChar
	TagWString
)

// IsPrimitive reports whether t is a terminal, filterable scalar type. MESSAGE,
// WCHAR and WSTRING are not: MESSAGE must be descended into further, and WCHAR/
// WSTRING have no representation in the value model.
func (t TypeTag) IsPrimitive() bool {
	switch t {
	case TagMessage, TagWChar, TagWString:
		return false
	default:
		return true
	}
}

// ValueKind maps a primitive TypeTag to the filterval.Kind used to represent it.
// ok is false for a non-primitive tag.
func (t TypeTag) ValueKind() (kind filterval.Kind, ok bool) {
	switch t {
	case TagBool:
		return filterval.KindBoolean, true
	case TagChar:
		return filterval.KindChar, true
	case TagInt8, TagInt16, TagInt32, TagInt64:
		return filterval.KindSignedInteger, true
	case TagUint8, TagUint16, TagUint32, TagUint64:
		return filterval.KindUnsignedInteger, true
	case TagFloat32:
		return filterval.KindFloatField, true
	case TagFloat64:
		return filterval.KindDoubleField, true
	case TagLongDouble:
		return filterval.KindLongDoubleField, true
	case TagString:
		return filterval.KindString, true
	default:
		return 0, false
	}
}

// String returns a human-readable tag name.
func (t TypeTag) String() string {
	switch t {
	case TagBool:
		return "bool"
	case TagChar:
		return "char"
	case TagInt8:
		return "int8"
	case TagInt16:
		return "int16"
	case TagInt32:
		return "int32"
	case TagInt64:
		return "int64"
	case TagUint8:
		return "uint8"
	case TagUint16:
		return "uint16"
	case TagUint32:
		return "uint32"
	case TagUint64:
		return "uint64"
	case TagFloat32:
		return "float32"
	case TagFloat64:
		return "float64"
	case TagLongDouble:
		return "long double"
	case TagString:
		return "string"
	case TagMessage:
		return "message"
	case TagWChar:
		return "wchar"
	case TagWString:
		return "wstring"
	default:
		return "unknown"
	}
}

// NoIndex is the FieldAccessor.array_index sentinel meaning "this access step is
// not indexed". It mirrors §3's "array_index = MAX encodes not an array".
const NoIndex = math.MaxUint32

// Addr is an opaque, flavor-specific handle to a location inside a payload of a
// particular Descriptor. It is produced and consumed only by the Member
// implementations of the flavor that created it; the core never inspects it.
type Addr interface{}

// ErrIndexOutOfRange is returned by Member.ElementAddr when a runtime
// sequence index exceeds the sequence's current length. The
// evaluator treats this as an EvaluationMiss: the whole evaluation returns false.
var ErrIndexOutOfRange = errors.New("introspect: sequence index out of range")

// ErrNotPrimitive is returned when a terminal field access path step resolves to
// a MESSAGE, WCHAR or WSTRING member; the binder rejects these as "type is not
// primitive" per §4.3.
var ErrNotPrimitive = errors.New("introspect: type is not primitive")
