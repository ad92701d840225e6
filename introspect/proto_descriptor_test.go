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

package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/dynamicpb"
)

// buildTestMessageDescriptor assembles, without protoc, a small FileDescriptorProto
// describing:
//
//	message Inner { repeated string tags = 1; }
//	message Outer { int32 x = 1; Inner data = 2; }
func buildTestMessageDescriptor(t *testing.T) protoreflect.MessageDescriptor {
	label := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	int32Type := descriptorpb.FieldDescriptorProto_TYPE_INT32
	stringType := descriptorpb.FieldDescriptorProto_TYPE_STRING
	msgType := descriptorpb.FieldDescriptorProto_TYPE_MESSAGE

	fdProto := &descriptorpb.FileDescriptorProto{
		Name:    strPtr("introspect_test.proto"),
		Package: strPtr("introspecttest"),
		Syntax:  strPtr("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: strPtr("Inner"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("tags"), Number: int32Ptr(1), Label: &repeated, Type: &stringType},
				},
			},
			{
				Name: strPtr("Outer"),
				Field: []*descriptorpb.FieldDescriptorProto{
					{Name: strPtr("x"), Number: int32Ptr(1), Label: &label, Type: &int32Type},
					{Name: strPtr("data"), Number: int32Ptr(2), Label: &label, Type: &msgType, TypeName: strPtr(".introspecttest.Inner")},
				},
			},
		},
	}

	file, err := protodesc.NewFile(fdProto, nil)
	require.NoError(t, err)
	return file.Messages().ByName("Outer")
}

func strPtr(s string) *string { return &s }
func int32Ptr(i int32) *int32 { return &i }

func TestProtoDescriptorWalk(t *testing.T) {
	outerDesc := buildTestMessageDescriptor(t)
	d, err := NewProtoDescriptor(outerDesc)
	require.NoError(t, err)
	assert.Equal(t, 2, d.MemberCount())

	msg := dynamicpb.NewMessage(outerDesc)
	xField := outerDesc.Fields().ByName("x")
	msg.Set(xField, protoreflect.ValueOfInt32(7))

	dataField := outerDesc.Fields().ByName("data")
	innerMsg := dynamicpb.NewMessage(dataField.Message())
	tagsField := dataField.Message().Fields().ByName("tags")
	list := innerMsg.Mutable(tagsField).List()
	list.Append(protoreflect.ValueOfString("hello"))
	list.Append(protoreflect.ValueOfString("world"))
	msg.Set(dataField, protoreflect.ValueOfMessage(innerMsg))

	addr, err := d.RootAddr(msg)
	require.NoError(t, err)

	_, xIdx, ok := d.MemberByName("x")
	require.True(t, ok)
	termAddr, member, err := Walk(addr, []Step{{Descriptor: d, MemberIndex: xIdx, ArrayIndex: NoIndex}})
	require.NoError(t, err)
	v, err := member.ReadPrimitive(termAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Signed())

	_, dataIdx, _ := d.MemberByName("data")
	dataMember, _ := d.MemberByIndex(dataIdx)
	nestedDesc, ok := dataMember.NestedDescriptor()
	require.True(t, ok)
	_, tagsIdx, _ := nestedDesc.MemberByName("tags")

	path := []Step{
		{Descriptor: d, MemberIndex: dataIdx, ArrayIndex: NoIndex},
		{Descriptor: nestedDesc, MemberIndex: tagsIdx, ArrayIndex: 1},
	}
	termAddr, member, err = Walk(addr, path)
	require.NoError(t, err)
	v, err = member.ReadPrimitive(termAddr)
	require.NoError(t, err)
	assert.Equal(t, "world", v.String())

	path[1].ArrayIndex = 5
	_, _, err = Walk(addr, path)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}
