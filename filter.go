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

// Package contentfilter is the top-level boundary API (spec.md §4.7, §6): a
// mutex-guarded Handle wrapping one bound filter expression per message
// type, built from the grammar/binder/evaluator packages underneath it.
package contentfilter

import (
	"sync"

	"github.com/banyanfilter/contentfilter/filterbind"
	"github.com/banyanfilter/contentfilter/filterpool"
	"github.com/banyanfilter/contentfilter/filterql"
	"github.com/banyanfilter/contentfilter/introspect"
	"github.com/banyanfilter/contentfilter/pkg/logger"
	"github.com/banyanfilter/contentfilter/serialize"
)

// magicWord identifies a Handle built by Create, reproducing api.cpp's
// MAGIC constant (§11.4) so a zero-value or destroyed Handle is rejected by
// every boundary method before any other field is read.
const magicWord = 0x434654

var filterLog = logger.GetLogger("filter")

// Handle is the opaque, per-message-type filter instance. Every exported
// method takes mu, so Evaluate and Set are mutually exclusive on a given
// instance (§4.7 "Concurrency").
type Handle struct {
	mu         sync.Mutex
	magic      uint32
	descriptor introspect.Descriptor
	serializer serialize.Serializer
	scratch    interface{}
	compiled   *filterbind.Compiled
	exprText   string
	paramTexts []string
	enabled    bool
}

// Create returns a new Handle bound to descriptor, with no expression
// attached: IsEnabled reports false and Evaluate accepts everything, per
// §4.7's "no expression attached".
func Create(descriptor introspect.Descriptor) *Handle {
	return &Handle{
		magic:      magicWord,
		descriptor: descriptor,
		compiled:   filterpool.Get(),
	}
}

// SetSerializer installs the codec Evaluate uses when called with
// serialized=true. A Handle with no serializer treats every serialized
// Evaluate call as an EvaluationMiss.
func (h *Handle) SetSerializer(s serialize.Serializer) {
	if !h.valid() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.serializer = s
	h.scratch = nil
}

func (h *Handle) valid() bool {
	return h != nil && h.magic == magicWord
}

// IsEnabled reports whether a non-empty expression is currently installed.
func (h *Handle) IsEnabled() bool {
	if !h.valid() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enabled
}

// Set parses, binds and installs expression against h's descriptor. An
// empty expression detaches the current one and reverts to accept-all. On
// any failure the previously installed expression (or accept-all) is left
// in place, per §4.7's "on failure, the previous expression is preserved".
func (h *Handle) Set(expression string, params []string) bool {
	if !h.valid() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if expression == "" {
		h.install(filterpool.Get(), "", nil)
		return true
	}

	node, err := filterql.Parse(expression)
	if err != nil {
		filterLog.Warn().Err(err).Str("expr", expression).Msg("parse failed")
		return false
	}
	compiled, err := filterbind.Bind(node, h.descriptor, params)
	if err != nil {
		filterLog.Warn().Err(err).Str("expr", expression).Msg("bind failed")
		return false
	}
	h.install(compiled, expression, params)
	return true
}

// SetParams re-binds only the parameter values of the currently installed
// expression, without reparsing or rebuilding the tree — the original's
// "Special case" (§4.7) for updating parameters without recompilation. If
// any parameter fails to re-parse, every parameter already applied during
// this call is rolled back and the previous parameter values are retained.
func (h *Handle) SetParams(params []string) bool {
	if !h.valid() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.enabled {
		return false
	}
	if err := h.compiled.Rebind(params); err != nil {
		filterLog.Warn().Err(err).Msg("param rebind failed")
		return false
	}
	h.paramTexts = cloneParams(params)
	return true
}

func (h *Handle) install(compiled *filterbind.Compiled, expr string, params []string) {
	if h.compiled != nil {
		filterpool.Put(h.compiled)
	}
	h.compiled = compiled
	h.exprText = expr
	h.paramTexts = cloneParams(params)
	h.enabled = expr != ""
}

func cloneParams(params []string) []string {
	if params == nil {
		return nil
	}
	out := make([]string, len(params))
	copy(out, params)
	return out
}

// Get returns a copy of the currently installed expression text and
// parameter texts. ok is false when no expression is installed, in which
// case the other return values are zero.
func (h *Handle) Get() (expression string, params []string, ok bool) {
	if !h.valid() {
		return "", nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.enabled {
		return "", nil, false
	}
	return h.exprText, cloneParams(h.paramTexts), true
}

// Evaluate reports whether payload satisfies the installed expression. If
// serialized, payload must be a []byte decoded via the installed Serializer
// into a scratch buffer allocated once and reused across calls (§4.7); a
// missing serializer or a decode failure is an EvaluationMiss (returns
// false without touching the expression tree).
func (h *Handle) Evaluate(payload interface{}, serialized bool) bool {
	if !h.valid() {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if serialized {
		data, ok := payload.([]byte)
		if !ok || h.serializer == nil {
			return false
		}
		if h.scratch == nil {
			h.scratch = h.serializer.NewScratch()
		}
		if !h.serializer.Decode(data, h.scratch) {
			return false
		}
		payload = h.scratch
	}
	return h.compiled.Evaluate(payload, h.descriptor)
}

// Destroy releases the installed expression back to the shared pool, drops
// the scratch buffer, and invalidates h so every subsequent boundary call
// on it returns false, per §4.7's "destroy releases expression, scratch
// buffer, and the instance".
func (h *Handle) Destroy() {
	if !h.valid() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.compiled != nil {
		filterpool.Put(h.compiled)
	}
	h.compiled = nil
	h.scratch = nil
	h.descriptor = nil
	h.serializer = nil
	h.magic = 0
}
