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

// Package filterpool is the single, per-process registry of reusable
// *filterbind.Compiled expression containers, mirroring the original
// factory's "single, per-process factory holding an expression-object pool"
// (spec.md §9). It sits on top of pkg/pool's generic Synced pool so that
// bind churn (Set calls replacing an instance's expression) reuses
// Compiled values instead of allocating a fresh one every time.
package filterpool

import (
	"github.com/banyanfilter/contentfilter/filterbind"
	"github.com/banyanfilter/contentfilter/pkg/pool"
)

var shared = pool.Register[*filterbind.Compiled]("filterbind.Compiled")

// Get returns an empty, ready-to-bind Compiled from the shared pool, or a
// freshly allocated one if the pool is empty. The caller fills it in by
// discarding it in favor of filterbind.Bind's return value: Bind always
// constructs a new *Compiled, so Get exists to keep the pool's reference
// count (and therefore AllRefsCount's accounting) accurate across the
// checkout, not to hand back a container Bind writes into in place.
func Get() *filterbind.Compiled {
	c := shared.Get()
	if c == nil {
		return filterbind.Empty()
	}
	return c
}

// Put clears c (per spec.md §3: "parameters/fields emptied, root released")
// and returns it to the shared pool. Passing a nil c is a no-op.
func Put(c *filterbind.Compiled) {
	if c == nil {
		return
	}
	c.Clear()
	shared.Put(c)
}

// RefsCount reports how many Compiled values are currently checked out of
// the shared pool, for diagnostics parity with pkg/pool.AllRefsCount.
func RefsCount() int {
	return shared.RefsCount()
}
