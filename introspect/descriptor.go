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

package introspect

import "github.com/banyanfilter/contentfilter/filterval"

// Descriptor is the read-only, flavor-agnostic view of a message type that the
// binder and evaluator consume. Two concrete flavors implement it: a
// struct-reflect flavor (NewStructDescriptor) and a protobuf flavor
// (NewProtoDescriptor).
type Descriptor interface {
	// MemberCount returns the number of members at this nesting level.
	MemberCount() int
	// MemberByIndex returns the member at i, or ok=false if i is out of range.
	MemberByIndex(i int) (Member, bool)
	// MemberByName performs the binder's step-1 linear scan by name, returning
	// the member, its index, and whether it was found.
	MemberByName(name string) (member Member, index int, found bool)
	// RootAddr wraps payload as an Addr usable as the starting point of a Walk
	// over this descriptor's members.
	RootAddr(payload interface{}) (Addr, error)
}

// Member is a single field of a Descriptor.
type Member interface {
	// Name is the member's field name, as looked up by FieldName segments.
	Name() string
	// TypeTag is the member's primitive type, or MESSAGE/WCHAR/WSTRING.
	TypeTag() TypeTag
	// IsIndexable reports whether a `[N]` subscript is valid on this member,
	// i.e. it is a fixed-size array or a runtime sequence.
	IsIndexable() bool
	// FixedSize returns the member's static array size, or 0 if it is a
	// runtime-sized sequence (§3: "array_index = MAX encodes not an array";
	// here, FixedSize()==0 together with IsIndexable()==true encodes a sequence).
	FixedSize() int
	// HasUpperBound reports whether a runtime sequence declares an upper bound.
	// Meaningless when FixedSize() > 0.
	HasUpperBound() bool
	// UpperBound returns the declared upper bound; valid only when HasUpperBound().
	UpperBound() int
	// NestedDescriptor returns the descriptor of a MESSAGE-typed member.
	NestedDescriptor() (Descriptor, bool)
	// FieldAddr descends into this (non-indexed) member from base, returning the
	// Addr of the member itself: either a nested-message Addr (if TypeTag is
	// MESSAGE, ready for the next path step) or a terminal scalar Addr.
	FieldAddr(base Addr) (Addr, error)
	// ElementAddr descends into element index of this array/sequence member from
	// base. Returns ErrIndexOutOfRange if index exceeds a sequence's runtime size.
	ElementAddr(base Addr, index int) (Addr, error)
	// SequenceSize returns a runtime sequence member's current length. Only
	// valid when IsIndexable() && FixedSize() == 0.
	SequenceSize(base Addr) (int, error)
	// ReadPrimitive reads the scalar value at addr (the Addr of a terminal step)
	// into a filterval.Value of this member's ValueKind.
	ReadPrimitive(addr Addr) (filterval.Value, error)
}

// Step is one element of a bound field access path: a member index into a
// Descriptor, plus an optional array index (NoIndex when the segment carries
// no subscript).
type Step struct {
	Descriptor Descriptor
	ArrayIndex uint32
	MemberIndex int
}

// Walk traverses path one step at a time starting from root, exactly as the
// original FilterField::set_value descends its access path: at each step it
// resolves the member, optionally applies its array index (surfacing an
// ErrIndexOutOfRange as soon as a runtime sequence bound is violated, rather
// than deferring it to the end), and advances to the next step's base Addr.
// It returns the terminal Addr and the Member that addr belongs to, ready for
// ReadPrimitive.
func Walk(root Addr, path []Step) (Addr, Member, error) {
	addr := root
	var m Member
	for _, step := range path {
		member, ok := step.Descriptor.MemberByIndex(step.MemberIndex)
		if !ok {
			return nil, nil, ErrNotPrimitive
		}
		m = member
		var next Addr
		var err error
		if step.ArrayIndex != NoIndex {
			next, err = member.ElementAddr(addr, int(step.ArrayIndex))
		} else {
			next, err = member.FieldAddr(addr)
		}
		if err != nil {
			return nil, nil, err
		}
		addr = next
	}
	return addr, m, nil
}
