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
	"encoding/json"
	"reflect"
)

// StructSerializer decodes JSON payload bytes into a fresh value of the
// struct type an introspect.NewStructDescriptor was built from. There is no
// third-party JSON library in the retrieval pack (the teacher's own wire
// format is protobuf, covered by ProtoSerializer); encoding/json is the
// standard-library choice for this flavor, recorded as such in DESIGN.md.
type StructSerializer struct {
	typ reflect.Type
}

// NewStructSerializer returns a Serializer producing and decoding into
// values of t, which must be the same struct type passed to
// introspect.NewStructDescriptor.
func NewStructSerializer(t reflect.Type) *StructSerializer {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return &StructSerializer{typ: t}
}

// NewScratch allocates a *T, zero-valued, ready to be overwritten by Decode.
func (s *StructSerializer) NewScratch() interface{} {
	return reflect.New(s.typ).Interface()
}

// Decode zeroes scratch, which must be a *T from NewScratch, and unmarshals
// data into it, so fields absent from data do not keep a previous payload's
// values.
func (s *StructSerializer) Decode(data []byte, scratch interface{}) bool {
	if v := reflect.ValueOf(scratch); v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Type() == s.typ {
		v.Elem().Set(reflect.Zero(s.typ))
	}
	return json.Unmarshal(data, scratch) == nil
}
