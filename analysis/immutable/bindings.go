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
	"strings"

	"github.com/sawwas/redex/internal/funcutil"
)

// BindingSnapshot maps a register number to the access path it holds at a program point. The
// representation is sparse: a register absent from the map is bound to the top element, and the
// map never stores an Unknown path. Absence is a lattice value, not a lookup failure.
type BindingSnapshot map[uint32]AccessPath

// Get returns the binding of reg, or the top element when the register is untracked.
func (b BindingSnapshot) Get(reg uint32) AccessPath {
	if p, ok := b[reg]; ok {
		return p
	}
	return Top()
}

// bind records reg -> path, erasing the entry when path is the top element so the sparse
// invariant is maintained.
func (b BindingSnapshot) bind(reg uint32, path AccessPath) {
	if path.IsUnknown() {
		delete(b, reg)
	} else {
		b[reg] = path
	}
}

// Copy returns an independent copy of the snapshot.
func (b BindingSnapshot) Copy() BindingSnapshot {
	c := make(BindingSnapshot, len(b))
	for reg, p := range b {
		c[reg] = p
	}
	return c
}

// Equal reports whether two snapshots bind every register to equal paths. Because neither side
// stores Unknown entries, map equality is binding equality.
func (b BindingSnapshot) Equal(o BindingSnapshot) bool {
	if len(b) != len(o) {
		return false
	}
	for reg, p := range b {
		q, ok := o[reg]
		if !ok || !p.Equal(q) {
			return false
		}
	}
	return true
}

func (b BindingSnapshot) String() string {
	var parts []string
	for _, reg := range funcutil.SortedKeys(b) {
		parts = append(parts, fmt.Sprintf("v%d=%s", reg, b[reg]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// joinPath is the join of the flat lattice over access paths: equal elements join to themselves,
// disagreeing elements join to the top.
func joinPath(a, b AccessPath) AccessPath {
	if a.Equal(b) {
		return a
	}
	return Top()
}

// joinBindings joins two environments register-by-register over the union of their registers. A
// register absent from one side is Unknown there, so only registers both sides bind to the same
// concrete path survive.
func joinBindings(a, b BindingSnapshot) BindingSnapshot {
	r := make(BindingSnapshot)
	for reg, pa := range a {
		if pb, ok := b[reg]; ok {
			r.bind(reg, joinPath(pa, pb))
		}
	}
	return r
}

// BlockStateSnapshot holds the register to access path mappings for a block's entry state and
// exit state at the computed fixed point.
type BlockStateSnapshot struct {
	EntryStateBindings BindingSnapshot
	ExitStateBindings  BindingSnapshot
}
