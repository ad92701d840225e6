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
	"sync"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/banyanfilter/contentfilter/filterval"
)

// protoDescriptor is the "C++-style" flavor: a Descriptor backed by a protobuf
// MessageDescriptor, read through protoreflect rather than raw struct layout.
// It is the analog of the original's TypeSupport-based introspection path.
type protoDescriptor struct {
	desc    protoreflect.MessageDescriptor
	members []*protoMember
	byName  map[string]int
}

type protoMember struct {
	fd     protoreflect.FieldDescriptor
	nested Descriptor
	tag    TypeTag
}

var protoDescriptorCache sync.Map // protoreflect.FullName -> Descriptor

// NewProtoDescriptor builds (or returns a cached) Descriptor for a protobuf
// message descriptor.
func NewProtoDescriptor(desc protoreflect.MessageDescriptor) (Descriptor, error) {
	if cached, ok := protoDescriptorCache.Load(desc.FullName()); ok {
		return cached.(Descriptor), nil
	}
	d := &protoDescriptor{desc: desc, byName: map[string]int{}}
	protoDescriptorCache.Store(desc.FullName(), d)

	fields := desc.Fields()
	for i := 0; i < fields.Len(); i++ {
		fd := fields.Get(i)
		tag, err := protoKindToTag(fd.Kind())
		if err != nil {
			return nil, errors.Wrapf(err, "introspect: field %s", fd.Name())
		}
		m := &protoMember{fd: fd, tag: tag}
		if tag == TagMessage {
			nested, err := NewProtoDescriptor(fd.Message())
			if err != nil {
				return nil, err
			}
			m.nested = nested
		}
		d.byName[string(fd.Name())] = len(d.members)
		d.members = append(d.members, m)
	}
	return d, nil
}

func protoKindToTag(k protoreflect.Kind) (TypeTag, error) {
	switch k {
	case protoreflect.BoolKind:
		return TagBool, nil
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind, protoreflect.EnumKind:
		return TagInt32, nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return TagInt64, nil
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return TagUint32, nil
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return TagUint64, nil
	case protoreflect.FloatKind:
		return TagFloat32, nil
	case protoreflect.DoubleKind:
		return TagFloat64, nil
	case protoreflect.StringKind, protoreflect.BytesKind:
		return TagString, nil
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return TagMessage, nil
	default:
		return 0, errors.Errorf("unsupported protobuf kind %s", k)
	}
}

func (d *protoDescriptor) MemberCount() int { return len(d.members) }

func (d *protoDescriptor) MemberByIndex(i int) (Member, bool) {
	if i < 0 || i >= len(d.members) {
		return nil, false
	}
	return d.members[i], true
}

func (d *protoDescriptor) MemberByName(name string) (Member, int, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, 0, false
	}
	return d.members[i], i, true
}

func (d *protoDescriptor) RootAddr(payload interface{}) (Addr, error) {
	msg, ok := payload.(proto.Message)
	if !ok {
		return nil, errors.New("introspect: payload is not a proto.Message")
	}
	refl := msg.ProtoReflect()
	if refl.Descriptor().FullName() != d.desc.FullName() {
		return nil, errors.Errorf("introspect: payload type %s does not match descriptor %s", refl.Descriptor().FullName(), d.desc.FullName())
	}
	return refl, nil
}

func (m *protoMember) Name() string        { return string(m.fd.Name()) }
func (m *protoMember) TypeTag() TypeTag    { return m.tag }
func (m *protoMember) IsIndexable() bool   { return m.fd.IsList() }
func (m *protoMember) FixedSize() int      { return 0 }
func (m *protoMember) HasUpperBound() bool { return false }
func (m *protoMember) UpperBound() int     { return 0 }

func (m *protoMember) NestedDescriptor() (Descriptor, bool) {
	if m.tag != TagMessage {
		return nil, false
	}
	return m.nested, true
}

func (m *protoMember) parentMessage(base Addr) (protoreflect.Message, error) {
	msg, ok := base.(protoreflect.Message)
	if !ok {
		return nil, errors.New("introspect: addr is not a protobuf message")
	}
	return msg, nil
}

// protoElemAddr addresses one scalar element of a repeated field, since a
// protoreflect.List by itself has no Addr-shaped "location" the way a struct
// field does.
type protoElemAddr struct {
	list protoreflect.List
	idx  int
}

func (m *protoMember) FieldAddr(base Addr) (Addr, error) {
	msg, err := m.parentMessage(base)
	if err != nil {
		return nil, err
	}
	if m.tag == TagMessage {
		return msg.Get(m.fd).Message(), nil
	}
	return msg, nil
}

func (m *protoMember) ElementAddr(base Addr, index int) (Addr, error) {
	msg, err := m.parentMessage(base)
	if err != nil {
		return nil, err
	}
	list := msg.Get(m.fd).List()
	if index < 0 || index >= list.Len() {
		return nil, ErrIndexOutOfRange
	}
	if m.tag == TagMessage {
		return list.Get(index).Message(), nil
	}
	return protoElemAddr{list: list, idx: index}, nil
}

func (m *protoMember) SequenceSize(base Addr) (int, error) {
	msg, err := m.parentMessage(base)
	if err != nil {
		return 0, err
	}
	return msg.Get(m.fd).List().Len(), nil
}

func (m *protoMember) ReadPrimitive(addr Addr) (filterval.Value, error) {
	kind, ok := m.tag.ValueKind()
	if !ok {
		return filterval.Value{}, ErrNotPrimitive
	}
	var pv protoreflect.Value
	switch a := addr.(type) {
	case protoreflect.Message:
		pv = a.Get(m.fd)
	case protoElemAddr:
		pv = a.list.Get(a.idx)
	default:
		return filterval.Value{}, errors.New("introspect: addr is not a protobuf value location")
	}
	switch kind {
	case filterval.KindBoolean:
		return filterval.NewBool(pv.Bool()), nil
	case filterval.KindSignedInteger:
		return filterval.NewSignedInt(pv.Int()), nil
	case filterval.KindUnsignedInteger:
		return filterval.NewUnsignedInt(pv.Uint()), nil
	case filterval.KindFloatField, filterval.KindDoubleField:
		return filterval.NewFloat(kind, pv.Float()), nil
	case filterval.KindString:
		if m.fd.Kind() == protoreflect.BytesKind {
			return filterval.NewString(string(pv.Bytes())), nil
		}
		return filterval.NewString(pv.String()), nil
	default:
		return filterval.Value{}, ErrNotPrimitive
	}
}
