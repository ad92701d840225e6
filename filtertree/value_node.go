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

// ValueNode is an operand of a Predicate: a FilterField, FilterParameter or
// FilterConstant. Constants and parameters always have a value; only fields
// need the lazy has-value tracking the evaluator relies on for short-circuiting.
type ValueNode interface {
	HasValue() bool
	Value() filterval.Value
	Reset()
	addDependent(p *Predicate)
}

// FilterConstant is a ValueNode baked from a grammar-parsed literal. Its value
// never changes after bind time.
type FilterConstant struct {
	value filterval.Value
}

// NewConstant wraps v as a FilterConstant.
func NewConstant(v filterval.Value) *FilterConstant { return &FilterConstant{value: v} }

// HasValue always returns true: constants are always usable.
func (c *FilterConstant) HasValue() bool { return true }

// Value returns the constant's value.
func (c *FilterConstant) Value() filterval.Value { return c.value }

// Reset is a no-op: constants are unaffected by evaluation resets (§4.5).
func (c *FilterConstant) Reset() {}

// MarkRegex flags the constant's value as a LIKE/MATCH regex template.
func (c *FilterConstant) MarkRegex(mode filterval.RegexMode) { c.value.MarkRegex(mode) }

func (c *FilterConstant) addDependent(*Predicate) {}

// FilterParameter is a ValueNode pre-populated from a textual %N parameter.
// Re-binding parameter values (the top-level filter's "Special case" re-bind,
// §4.7) replaces its Value directly via SetValue.
type FilterParameter struct {
	value     filterval.Value
	Index     int
	regexMode filterval.RegexMode
}

// NewParameter wraps v as the FilterParameter for parameter index idx.
func NewParameter(idx int, v filterval.Value) *FilterParameter {
	return &FilterParameter{Index: idx, value: v}
}

// HasValue always returns true: a bound parameter always carries a value.
func (p *FilterParameter) HasValue() bool { return true }

// Value returns the parameter's current value.
func (p *FilterParameter) Value() filterval.Value { return p.value }

// SetValue overwrites the parameter's value, e.g. on a parameter-only re-bind.
// A regex-template marking from MarkRegex carries over to the new value.
func (p *FilterParameter) SetValue(v filterval.Value) {
	p.value = v
	if p.regexMode != filterval.RegexNone {
		p.value.MarkRegex(p.regexMode)
	}
}

// Reset is a no-op: parameters are unaffected by evaluation resets (§4.5).
func (p *FilterParameter) Reset() {}

// MarkRegex flags the parameter's value as a LIKE/MATCH regex template.
func (p *FilterParameter) MarkRegex(mode filterval.RegexMode) {
	p.regexMode = mode
	p.value.MarkRegex(mode)
}

func (p *FilterParameter) addDependent(*Predicate) {}

// FilterField is a ValueNode materialized lazily from the payload during
// evaluation, once per field per evaluation. A single field may be shared by
// several predicates (§3 invariant: each FilterField appears once in `fields`);
// SetValue notifies every one of them.
type FilterField struct {
	value      filterval.Value
	Path       string
	Kind       filterval.Kind
	hasValue   bool
	regexMode  filterval.RegexMode
	dependents []*Predicate
}

// NewField constructs an unmaterialized FilterField of the given kind, keyed by
// its canonical field-path string (the binder's dedup key for shared fields).
func NewField(path string, kind filterval.Kind) *FilterField {
	return &FilterField{Path: path, Kind: kind, value: filterval.Zero(kind)}
}

// HasValue reports whether SetValue has been called since the last Reset.
func (f *FilterField) HasValue() bool { return f.hasValue }

// Value returns the field's materialized value; only meaningful when HasValue().
func (f *FilterField) Value() filterval.Value { return f.value }

// SetValue installs v as the field's materialized value and notifies every
// predicate that references this field, mirroring FilterField::set_value's
// "will notify the predicates where this FilterField is being used". A
// regex-template marking from MarkRegex survives re-materialization, since
// LIKE/MATCH status is a property of the predicate, not of any one payload's
// field content.
func (f *FilterField) SetValue(v filterval.Value) {
	f.value = v
	if f.regexMode != filterval.RegexNone {
		f.value.MarkRegex(f.regexMode)
	}
	f.hasValue = true
	for _, p := range f.dependents {
		p.valueChanged()
	}
}

// MarkRegex flags this field's (future) materialized values as a LIKE/MATCH
// regex template.
func (f *FilterField) MarkRegex(mode filterval.RegexMode) {
	f.regexMode = mode
	f.value.MarkRegex(mode)
}

// Reset clears has_value, so the next evaluation must re-materialize this
// field from the payload before any predicate referencing it can decide.
func (f *FilterField) Reset() {
	f.hasValue = false
}

func (f *FilterField) addDependent(p *Predicate) {
	f.dependents = append(f.dependents, p)
}
