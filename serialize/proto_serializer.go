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
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// ProtoSerializer decodes wire-format protobuf bytes into a dynamicpb
// message matching the descriptor an introspect.NewProtoDescriptor was built
// from, the "C++-style" flavor's own wire format (§10).
type ProtoSerializer struct {
	md protoreflect.MessageDescriptor
}

// NewProtoSerializer returns a Serializer producing and decoding into
// dynamicpb messages of md.
func NewProtoSerializer(md protoreflect.MessageDescriptor) *ProtoSerializer {
	return &ProtoSerializer{md: md}
}

// NewScratch allocates a dynamicpb.Message of this serializer's descriptor.
func (s *ProtoSerializer) NewScratch() interface{} {
	return dynamicpb.NewMessage(s.md)
}

// Decode resets scratch (a proto.Message from NewScratch) and unmarshals
// data into it.
func (s *ProtoSerializer) Decode(data []byte, scratch interface{}) bool {
	msg, ok := scratch.(proto.Message)
	if !ok {
		return false
	}
	proto.Reset(msg)
	return proto.Unmarshal(data, msg) == nil
}
