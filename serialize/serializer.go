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

// Package serialize provides the external payload codec spec.md §6 keeps out
// of the filter engine's core: decoding raw message bytes into a structured
// value the introspect package can walk. Two flavors are provided, one per
// introspect.Descriptor flavor; both are narrow enough to be swapped for a
// caller's own codec without touching the engine.
package serialize

// Serializer decodes raw payload bytes into scratch, a value previously
// produced by NewScratch. It reports ok=false (never an error) on any
// decode failure, matching the evaluator's EvaluationMiss policy (§4.6): a
// malformed payload rejects the single message rather than propagating.
type Serializer interface {
	// NewScratch allocates the reusable decode target this Serializer's
	// Decode expects, once per filter Handle (spec.md §4.7 "evaluate":
	// "allocated once, reused").
	NewScratch() interface{}
	// Decode fills scratch from data, overwriting whatever it held before.
	Decode(data []byte, scratch interface{}) (ok bool)
}
