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

package serialize

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serializablePayload struct {
	X    int32  `json:"x"`
	Name string `json:"name"`
}

func TestStructSerializerDecode(t *testing.T) {
	s := NewStructSerializer(reflect.TypeOf(serializablePayload{}))
	scratch := s.NewScratch()
	require.True(t, s.Decode([]byte(`{"x":4,"name":"foo"}`), scratch))
	p, ok := scratch.(*serializablePayload)
	require.True(t, ok)
	assert.Equal(t, int32(4), p.X)
	assert.Equal(t, "foo", p.Name)
}

func TestStructSerializerDecodeFailure(t *testing.T) {
	s := NewStructSerializer(reflect.TypeOf(serializablePayload{}))
	scratch := s.NewScratch()
	assert.False(t, s.Decode([]byte(`not json`), scratch))
}

func TestStructSerializerReusesScratch(t *testing.T) {
	s := NewStructSerializer(reflect.TypeOf(serializablePayload{}))
	scratch := s.NewScratch()
	require.True(t, s.Decode([]byte(`{"x":1}`), scratch))
	require.True(t, s.Decode([]byte(`{"x":2}`), scratch))
	assert.Equal(t, int32(2), scratch.(*serializablePayload).X)
}
