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

// BlockDef is one basic block of a method body: an ordered instruction list and the IDs of the
// successor blocks. Block IDs are method-local and stable.
type BlockDef struct {
	ID     int
	Instrs []*Instruction
	Succs  []int
}

// Method is a method body in the IR. The first block listed is the entry block. A method with no
// blocks has no usable control-flow representation (abstract or external method).
//
// Params counts the formal parameters; for an instance method (Static false) the implicit
// receiver is included and numbered as parameter 0.
type Method struct {
	Class  string
	Name   string
	Params int
	Static bool
	Blocks []BlockDef
}

// HasCode returns true when the method carries a usable body.
func (m *Method) HasCode() bool {
	return len(m.Blocks) > 0
}

// Validate checks the structural conventions the analyses rely on: unique block IDs, successor
// IDs that exist, well-shaped instruction operands, and LoadParam instructions appearing only as
// a prefix of the entry block, one per formal in parameter order.
func (m *Method) Validate() error {
	if !m.HasCode() {
		return nil
	}
	ids := make(map[int]bool, len(m.Blocks))
	for _, b := range m.Blocks {
		if ids[b.ID] {
			return fmt.Errorf("duplicate block id %d in %s.%s", b.ID, m.Class, m.Name)
		}
		ids[b.ID] = true
	}
	for _, b := range m.Blocks {
		for _, s := range b.Succs {
			if !ids[s] {
				return fmt.Errorf("block %d has unknown successor %d in %s.%s", b.ID, s, m.Class, m.Name)
			}
		}
	}
	for bi, b := range m.Blocks {
		for ii, in := range b.Instrs {
			if err := in.checkShape(); err != nil {
				return fmt.Errorf("block %d instruction %d in %s.%s: %w", b.ID, ii, m.Class, m.Name, err)
			}
			if in.Op != LoadParam {
				continue
			}
			if bi != 0 {
				return fmt.Errorf("LoadParam outside entry block %d in %s.%s", b.ID, m.Class, m.Name)
			}
			if ii != int(in.Lit) {
				return fmt.Errorf("LoadParam for parameter %d at position %d in %s.%s", in.Lit, ii, m.Class, m.Name)
			}
			if int(in.Lit) >= m.Params {
				return fmt.Errorf("LoadParam index %d out of range in %s.%s (%d params)", in.Lit, m.Class, m.Name, m.Params)
			}
		}
	}
	return nil
}

func (m *Method) String() string {
	return fmt.Sprintf("%s.%s/%d", m.Class, m.Name, m.Params)
}
