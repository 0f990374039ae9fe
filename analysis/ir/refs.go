// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ir

import "fmt"

// MethodRef identifies a method by its owner class, name and prototype descriptor.
// MethodRefs are interned by a Refs table: within one table, two references to the same method
// are the same pointer, so pointer comparison is semantic identity.
type MethodRef struct {
	Class string
	Name  string
	Proto string
}

func (m *MethodRef) String() string {
	return fmt.Sprintf("%s.%s%s", m.Class, m.Name, m.Proto)
}

// FieldRef identifies a field by its owner class, name and type descriptor. Final records the
// externally supplied "declared final" fact. FieldRefs are interned like MethodRefs.
type FieldRef struct {
	Class string
	Name  string
	Type  string
	Final bool
}

func (f *FieldRef) String() string {
	return fmt.Sprintf("%s.%s:%s", f.Class, f.Name, f.Type)
}

// Refs interns method and field references so that reference identity is pointer identity.
// A Refs table is not safe for concurrent mutation.
type Refs struct {
	methods map[string]*MethodRef
	fields  map[string]*FieldRef
}

// NewRefs returns an empty reference table.
func NewRefs() *Refs {
	return &Refs{
		methods: map[string]*MethodRef{},
		fields:  map[string]*FieldRef{},
	}
}

// Method returns the unique MethodRef for (class, name, proto), creating it on first use.
func (r *Refs) Method(class, name, proto string) *MethodRef {
	key := class + "." + name + proto
	if m, ok := r.methods[key]; ok {
		return m
	}
	m := &MethodRef{Class: class, Name: name, Proto: proto}
	r.methods[key] = m
	return m
}

// Field returns the unique FieldRef for (class, name, typ), creating it on first use.
// Registering the same field twice with a different final flag is a caller bug.
func (r *Refs) Field(class, name, typ string, final bool) *FieldRef {
	key := class + "." + name + ":" + typ
	if f, ok := r.fields[key]; ok {
		if f.Final != final {
			panic(fmt.Sprintf("ir: field %s registered with conflicting final flags", key))
		}
		return f
	}
	f := &FieldRef{Class: class, Name: name, Type: typ, Final: final}
	r.fields[key] = f
	return f
}
