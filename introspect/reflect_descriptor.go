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
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/banyanfilter/contentfilter/filterval"
)

// structDescriptor is the "C-style" flavor: a Descriptor built directly from a
// Go struct's reflect.Type and `filter:"..."` tags, the analog of the original's
// rosidl_typesupport_introspection_c member array.
type structDescriptor struct {
	typ     reflect.Type
	members []*structMember
	byName  map[string]int
}

type structMember struct {
	name         string
	elemType     reflect.Type
	nested       Descriptor
	tag          TypeTag
	fieldIndex   int
	fixedSize    int
	upperBound   int
	isChar       bool
	isIndexable  bool
	hasUpperBnd  bool
}

var structDescriptorCache sync.Map // reflect.Type -> Descriptor

// NewStructDescriptor builds (or returns a cached) Descriptor for t, a struct
// type whose filterable fields carry a `filter:"name[,char][,upperbound=N]"` tag.
func NewStructDescriptor(t reflect.Type) (Descriptor, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Errorf("introspect: %s is not a struct type", t)
	}
	if cached, ok := structDescriptorCache.Load(t); ok {
		return cached.(Descriptor), nil
	}
	d := &structDescriptor{typ: t, byName: map[string]int{}}
	// Store a placeholder before recursing so a struct that (directly or
	// indirectly) nests itself does not recurse infinitely.
	structDescriptorCache.Store(t, d)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, opts, ok := parseFilterTag(f.Tag.Get("filter"))
		if !ok {
			continue
		}
		m, err := newStructMember(f, i, name, opts)
		if err != nil {
			return nil, err
		}
		d.byName[name] = len(d.members)
		d.members = append(d.members, m)
	}
	return d, nil
}

func parseFilterTag(tag string) (name string, opts []string, ok bool) {
	if tag == "" || tag == "-" {
		return "", nil, false
	}
	parts := strings.Split(tag, ",")
	return parts[0], parts[1:], true
}

func newStructMember(f reflect.StructField, fieldIndex int, name string, opts []string) (*structMember, error) {
	m := &structMember{name: name, fieldIndex: fieldIndex}
	ft := f.Type
	for _, opt := range opts {
		switch {
		case opt == "char":
			m.isChar = true
		case strings.HasPrefix(opt, "upperbound="):
			n, err := strconv.Atoi(strings.TrimPrefix(opt, "upperbound="))
			if err != nil {
				return nil, errors.Wrapf(err, "introspect: invalid upperbound tag on field %s", name)
			}
			m.hasUpperBnd = true
			m.upperBound = n
		}
	}

	switch ft.Kind() {
	case reflect.Array:
		m.isIndexable = true
		m.fixedSize = ft.Len()
		m.elemType = ft.Elem()
	case reflect.Slice:
		m.isIndexable = true
		m.fixedSize = 0
		m.elemType = ft.Elem()
	default:
		m.elemType = ft
	}

	tag, err := goKindToTag(m.elemType, m.isChar)
	if err != nil {
		return nil, errors.Wrapf(err, "introspect: field %s", name)
	}
	m.tag = tag
	if tag == TagMessage {
		nested, err := NewStructDescriptor(m.elemType)
		if err != nil {
			return nil, err
		}
		m.nested = nested
	}
	return m, nil
}

func goKindToTag(t reflect.Type, isChar bool) (TypeTag, error) {
	switch t.Kind() {
	case reflect.Bool:
		return TagBool, nil
	case reflect.Int8:
		if isChar {
			return TagChar, nil
		}
		return TagInt8, nil
	case reflect.Uint8:
		if isChar {
			return TagChar, nil
		}
		return TagUint8, nil
	case reflect.Int16:
		return TagInt16, nil
	case reflect.Uint16:
		return TagUint16, nil
	case reflect.Int32:
		return TagInt32, nil
	case reflect.Uint32:
		return TagUint32, nil
	case reflect.Int, reflect.Int64:
		return TagInt64, nil
	case reflect.Uint, reflect.Uint64:
		return TagUint64, nil
	case reflect.Float32:
		return TagFloat32, nil
	case reflect.Float64:
		return TagFloat64, nil
	case reflect.String:
		return TagString, nil
	case reflect.Struct:
		return TagMessage, nil
	default:
		return 0, errors.Errorf("unsupported field type %s", t)
	}
}

func (d *structDescriptor) MemberCount() int { return len(d.members) }

func (d *structDescriptor) MemberByIndex(i int) (Member, bool) {
	if i < 0 || i >= len(d.members) {
		return nil, false
	}
	return d.members[i], true
}

func (d *structDescriptor) MemberByName(name string) (Member, int, bool) {
	i, ok := d.byName[name]
	if !ok {
		return nil, 0, false
	}
	return d.members[i], i, true
}

func (d *structDescriptor) RootAddr(payload interface{}) (Addr, error) {
	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, errors.New("introspect: nil payload")
		}
		v = v.Elem()
	}
	if v.Type() != d.typ {
		return nil, errors.Errorf("introspect: payload type %s does not match descriptor type %s", v.Type(), d.typ)
	}
	return v, nil
}

func (m *structMember) Name() string          { return m.name }
func (m *structMember) TypeTag() TypeTag      { return m.tag }
func (m *structMember) IsIndexable() bool     { return m.isIndexable }
func (m *structMember) FixedSize() int        { return m.fixedSize }
func (m *structMember) HasUpperBound() bool   { return m.hasUpperBnd }
func (m *structMember) UpperBound() int       { return m.upperBound }

func (m *structMember) NestedDescriptor() (Descriptor, bool) {
	if m.tag != TagMessage {
		return nil, false
	}
	return m.nested, true
}

func (m *structMember) FieldAddr(base Addr) (Addr, error) {
	bv, err := m.baseValue(base)
	if err != nil {
		return nil, err
	}
	return bv.Field(m.fieldIndex), nil
}

func (m *structMember) ElementAddr(base Addr, index int) (Addr, error) {
	bv, err := m.baseValue(base)
	if err != nil {
		return nil, err
	}
	fv := bv.Field(m.fieldIndex)
	if index < 0 || index >= fv.Len() {
		return nil, ErrIndexOutOfRange
	}
	return fv.Index(index), nil
}

func (m *structMember) SequenceSize(base Addr) (int, error) {
	bv, err := m.baseValue(base)
	if err != nil {
		return 0, err
	}
	return bv.Field(m.fieldIndex).Len(), nil
}

func (m *structMember) baseValue(base Addr) (reflect.Value, error) {
	v, ok := base.(reflect.Value)
	if !ok {
		return reflect.Value{}, errors.New("introspect: addr is not a struct-reflect value")
	}
	return v, nil
}

func (m *structMember) ReadPrimitive(addr Addr) (filterval.Value, error) {
	v, ok := addr.(reflect.Value)
	if !ok {
		return filterval.Value{}, errors.New("introspect: addr is not a struct-reflect value")
	}
	kind, ok := m.tag.ValueKind()
	if !ok {
		return filterval.Value{}, ErrNotPrimitive
	}
	switch kind {
	case filterval.KindBoolean:
		return filterval.NewBool(v.Bool()), nil
	case filterval.KindChar:
		if v.Kind() == reflect.Int8 {
			return filterval.NewChar(byte(v.Int())), nil
		}
		return filterval.NewChar(byte(v.Uint())), nil
	case filterval.KindSignedInteger:
		return filterval.NewSignedInt(v.Int()), nil
	case filterval.KindUnsignedInteger:
		return filterval.NewUnsignedInt(v.Uint()), nil
	case filterval.KindFloatField, filterval.KindDoubleField, filterval.KindLongDoubleField:
		return filterval.NewFloat(kind, v.Float()), nil
	case filterval.KindString:
		return filterval.NewString(v.String()), nil
	default:
		return filterval.Value{}, ErrNotPrimitive
	}
}
