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

package filterbind

import (
	"sort"

	"github.com/banyanfilter/contentfilter/filterql"
	"github.com/banyanfilter/contentfilter/filtertree"
	"github.com/banyanfilter/contentfilter/filterval"
	"github.com/banyanfilter/contentfilter/introspect"
)

// Compiled is a bound expression: a filtertree root plus every FilterField
// it references (in bind order) and every FilterParameter created while
// resolving %N operands. It is what the top-level filter instance installs
// on a successful Set and hands to Evaluate on every payload.
type Compiled struct {
	ParamTexts []string
	Root       filtertree.Condition
	fields     []*boundField
	parameters map[int]*filtertree.FilterParameter
}

// Empty returns the distinguished accept-all compiled expression installed
// by create() and by set("") per §4.7.
func Empty() *Compiled {
	return &Compiled{Root: filtertree.Empty}
}

// Evaluate implements §4.6's algorithm: reset the tree, materialize fields in
// bind order until the root decides, and return true iff the root is True.
// Any introspection error (sequence bounds, a nil payload) is an
// EvaluationMiss: the single evaluation returns false rather than propagating
// an error.
func (c *Compiled) Evaluate(payload interface{}, root introspect.Descriptor) bool {
	c.Root.Reset()
	if len(c.fields) == 0 {
		return c.Root.State() == filtertree.True
	}
	rootAddr, err := root.RootAddr(payload)
	if err != nil {
		return false
	}
	for _, bf := range c.fields {
		if c.Root.State() != filtertree.Undecided {
			break
		}
		addr, member, err := introspect.Walk(rootAddr, bf.path)
		if err != nil {
			return false
		}
		v, err := member.ReadPrimitive(addr)
		if err != nil {
			return false
		}
		bf.field.SetValue(v)
	}
	return c.Root.State() == filtertree.True
}

// Rebind re-parses newParamTexts for every parameter actually referenced by
// this compiled expression and installs them in place, without rebuilding
// the tree. Parameters are applied one at a time, in index order; the moment
// one fails to re-parse, every parameter already applied during this call is
// restored from its pre-call snapshot (via Value.CopyFrom, which preserves
// any cached regex) so a partially-applied update never lands, per §4.7's
// "if any re-parse fails, all parameter values are rolled back".
func (c *Compiled) Rebind(newParamTexts []string) error {
	indices := make([]int, 0, len(c.parameters))
	for idx := range c.parameters {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	applied := make([]*filtertree.FilterParameter, 0, len(indices))
	snapshots := make(map[*filtertree.FilterParameter]filterval.Value, len(indices))
	for _, idx := range indices {
		p := c.parameters[idx]
		snapshots[p] = p.Value()
		if idx >= len(newParamTexts) {
			c.rollback(applied, snapshots)
			return badParameterf("parameter index %d out of range (have %d)", idx, len(newParamTexts))
		}
		lit, err := filterql.ParseLiteralText(newParamTexts[idx])
		if err != nil {
			c.rollback(applied, snapshots)
			return badParameterf("parameter %%%d re-parse failed: %v", idx, err)
		}
		v, err := filterval.ParseLiteral(lit.Kind, lit.Text)
		if err != nil {
			c.rollback(applied, snapshots)
			return badParameterf("parameter %%%d re-parse failed: %v", idx, err)
		}
		p.SetValue(v)
		applied = append(applied, p)
	}
	c.ParamTexts = newParamTexts
	return nil
}

func (c *Compiled) rollback(applied []*filtertree.FilterParameter, snapshots map[*filtertree.FilterParameter]filterval.Value) {
	for _, p := range applied {
		var restored filterval.Value
		restored.CopyFrom(snapshots[p], true)
		p.SetValue(restored)
	}
}

// Clear empties c so it is safe to hand back to filterpool: parameters and
// fields are dropped and the root reverts to the always-true empty
// expression, per spec.md §3's "Compiled expressions returning to the pool
// are cleared (parameters/fields emptied, root released)".
func (c *Compiled) Clear() {
	c.ParamTexts = nil
	c.Root = filtertree.Empty
	c.fields = nil
	c.parameters = nil
}
