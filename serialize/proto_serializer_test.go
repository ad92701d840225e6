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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

func buildLeafMessageDescriptor(t *testing.T) protoreflect.MessageDescriptor {
	t.Helper()
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	int32Type := descriptorpb.FieldDescriptorProto_TYPE_INT32
	fdProto := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("serialize_test.proto"),
		Package: strPtr("serializetest"),
		Syntax:  strPtr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Leaf"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("x"), Number: int32Ptr(1), Label: &label, Type: &int32Type},
				},
			},
		},
	}
	file, err := protodesc.NewFile(fdProto, nil)
	require.NoError(t, err)
	return file.Messages().ByName("Leaf")
}

func strPtr(s string) *string { return &s }
func int32Ptr(i int32) *int32 { return &i }

func TestProtoSerializerDecode(t *testing.T) {
	md := buildLeafMessageDescriptor(t)
	source := dynamicpb.NewMessage(md)
	source.Set(md.Fields().ByName("x"), protoreflect.ValueOfInt32(9))
	data, err := proto.Marshal(source)
	require.NoError(t, err)

	s := NewProtoSerializer(md)
	scratch := s.NewScratch()
	require.True(t, s.Decode(data, scratch))
	msg := scratch.(proto.Message)
	assert.EqualValues(t, 9, msg.ProtoReflect().Get(md.Fields().ByName("x")).Int())
}

func TestProtoSerializerDecodeFailure(t *testing.T) {
	md := buildLeafMessageDescriptor(t)
	s := NewProtoSerializer(md)
	scratch := s.NewScratch()
	// Field 1, varint wire type, with the value byte truncated off.
	assert.False(t, s.Decode([]byte{0x08}, scratch))
}

func TestProtoSerializerRejectsNonMessageScratch(t *testing.T) {
	md := buildLeafMessageDescriptor(t)
	s := NewProtoSerializer(md)
	assert.False(t, s.Decode([]byte{}, "not a message"))
}
