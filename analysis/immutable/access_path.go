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

package immutable

import (
	"fmt"
	"hash/fnv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/sawwas/redex/analysis/ir"
)

//go:generate go tool stringer -type=AccessPathKind

// AccessPathKind classifies the root of an access path.
type AccessPathKind uint8

const (
	// Unknown is the top element of the lattice: no information. It is the zero value, so an
	// uninitialized AccessPath is the top element, as required by the lattice combinators.
	Unknown AccessPathKind = iota
	// Parameter roots the path at a formal parameter of the analyzed method.
	Parameter
	// Local roots the path at a register that is not provably a parameter but still tracked.
	Local
	// FinalField roots the path at a read of a field declared final.
	FinalField
)

// NoParameter is the parameter index of paths that are not rooted at a parameter.
const NoParameter = -1

// AccessPath is a sequence of getters originating from an unambiguous register (for instance, a
// param register) of the method analyzed.
//
// Examples:
//
//	p0.getA().getB()
//	p1.getC()
//	p2               (an empty access path, i.e., the value of parameter #2)
//
// AccessPath values are immutable. The zero value is the top element (kind Unknown).
type AccessPath struct {
	kind      AccessPathKind
	parameter int
	getters   []*ir.MethodRef
	field     *ir.FieldRef
}

// Top returns the top element: an impossible access path carrying no information.
func Top() AccessPath {
	return AccessPath{}
}

// NewAccessPath returns an empty access path rooted at the given parameter index. Kind must not
// be FinalField (a field root always carries a field reference). Kind Unknown yields the top
// element regardless of the index.
func NewAccessPath(kind AccessPathKind, parameter int) AccessPath {
	return NewAccessPathWithGetters(kind, parameter, nil)
}

// NewAccessPathWithGetters returns a path rooted at the given parameter index extended with the
// getter sequence. Kind must not be FinalField, and kind Unknown does not admit getters;
// violations are contract errors and panic.
func NewAccessPathWithGetters(kind AccessPathKind, parameter int, getters []*ir.MethodRef) AccessPath {
	if kind == FinalField {
		panic("immutable: must specify a field ref")
	}
	if kind == Unknown {
		if len(getters) > 0 {
			panic("immutable: the top access path has no getters")
		}
		return Top()
	}
	return AccessPath{kind: kind, parameter: parameter, getters: slices.Clone(getters)}
}

// NewFinalFieldPath returns a path rooted at a read of the given final field, reached off the
// getter sequence starting at the given parameter index. The field must be non-nil and declared
// final; violations are contract errors and panic.
func NewFinalFieldPath(parameter int, field *ir.FieldRef, getters []*ir.MethodRef) AccessPath {
	if field == nil {
		panic("immutable: must specify a field")
	}
	if !field.Final {
		panic(fmt.Sprintf("immutable: field %v should be final", field))
	}
	return AccessPath{kind: FinalField, parameter: parameter, getters: slices.Clone(getters), field: field}
}

// Kind returns the kind of the root of the path.
func (p AccessPath) Kind() AccessPathKind { return p.kind }

// IsUnknown returns true when the path is the top element.
func (p AccessPath) IsUnknown() bool { return p.kind == Unknown }

// Parameter returns the parameter index of the root, or NoParameter when the path is unknown.
func (p AccessPath) Parameter() int {
	if p.kind == Unknown {
		return NoParameter
	}
	return p.parameter
}

// Getters returns a copy of the getter sequence appended after the root.
func (p AccessPath) Getters() []*ir.MethodRef {
	return slices.Clone(p.getters)
}

// Field returns the final field of a FinalField-rooted path and nil for every other kind.
func (p AccessPath) Field() *ir.FieldRef { return p.field }

// Equal reports structural equality: same kind, parameter index, getter sequence (elementwise
// reference identity) and field identity.
func (p AccessPath) Equal(o AccessPath) bool {
	if p.kind != o.kind || p.Parameter() != o.Parameter() || p.field != o.field {
		return false
	}
	return slices.Equal(p.getters, o.getters)
}

// Hash returns a hash consistent with Equal: equal paths hash identically.
func (p AccessPath) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%d", p.kind, p.Parameter())
	for _, g := range p.getters {
		fmt.Fprintf(h, ".%s", g)
	}
	if p.field != nil {
		fmt.Fprintf(h, ";%s", p.field)
	}
	return h.Sum64()
}

// String renders the path for diagnostics. Equal paths render identically.
func (p AccessPath) String() string {
	if p.kind == Unknown {
		return "<unknown>"
	}
	var b strings.Builder
	if p.kind == Local {
		fmt.Fprintf(&b, "local%d", p.parameter)
	} else {
		fmt.Fprintf(&b, "p%d", p.parameter)
	}
	for _, g := range p.getters {
		fmt.Fprintf(&b, ".%s()", g.Name)
	}
	if p.kind == FinalField {
		fmt.Fprintf(&b, ".%s", p.field.Name)
	}
	return b.String()
}
