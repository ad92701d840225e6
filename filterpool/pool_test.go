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

package filterpool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banyanfilter/contentfilter/filterbind"
)

func TestGetReturnsUsableEmptyCompiled(t *testing.T) {
	c := Get()
	assert.True(t, c.Evaluate(struct{}{}, nil))
}

func TestPutClearsBeforeReturning(t *testing.T) {
	c := filterbind.Empty()
	Put(c)
	assert.Nil(t, c.ParamTexts)
}

func TestPutNilIsNoOp(t *testing.T) {
	assert.NotPanics(t, func() { Put(nil) })
}

func TestRefsCountTracksCheckouts(t *testing.T) {
	before := RefsCount()
	c := Get()
	assert.Equal(t, before+1, RefsCount())
	Put(c)
	assert.Equal(t, before, RefsCount())
}
