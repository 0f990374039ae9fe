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

// Package iryaml decodes ir.Method bodies from a yaml description. It is used by command-line
// tools and test fixtures.
package iryaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sawwas/redex/analysis/ir"
)

type fileSpec struct {
	Method methodSpec  `yaml:"method"`
	Blocks []blockSpec `yaml:"blocks"`
}

type methodSpec struct {
	Class  string `yaml:"class"`
	Name   string `yaml:"name"`
	Params int    `yaml:"params"`
	Static bool   `yaml:"static"`
}

type blockSpec struct {
	ID     int         `yaml:"id"`
	Succs  []int       `yaml:"succs"`
	Instrs []instrSpec `yaml:"instrs"`
}

type instrSpec struct {
	Op     string         `yaml:"op"`
	Dest   *uint32        `yaml:"dest"`
	Srcs   []uint32       `yaml:"srcs"`
	Method *methodRefSpec `yaml:"method"`
	Field  *fieldRefSpec  `yaml:"field"`
	Lit    int64          `yaml:"lit"`
}

type methodRefSpec struct {
	Class string `yaml:"class"`
	Name  string `yaml:"name"`
	Proto string `yaml:"proto"`
}

type fieldRefSpec struct {
	Class string `yaml:"class"`
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Final bool   `yaml:"final"`
}

// Decode parses a yaml method description. References are interned in the returned Refs table,
// so two instructions naming the same method or field share one reference identity.
func Decode(data []byte) (*ir.Method, *ir.Refs, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, nil, fmt.Errorf("iryaml: %w", err)
	}
	refs := ir.NewRefs()
	m := &ir.Method{
		Class:  spec.Method.Class,
		Name:   spec.Method.Name,
		Params: spec.Method.Params,
		Static: spec.Method.Static,
	}
	for _, bs := range spec.Blocks {
		def := ir.BlockDef{ID: bs.ID, Succs: bs.Succs}
		for i, is := range bs.Instrs {
			in, err := is.instruction(refs)
			if err != nil {
				return nil, nil, fmt.Errorf("iryaml: block %d instruction %d: %w", bs.ID, i, err)
			}
			def.Instrs = append(def.Instrs, in)
		}
		m.Blocks = append(m.Blocks, def)
	}
	if err := m.Validate(); err != nil {
		return nil, nil, fmt.Errorf("iryaml: %w", err)
	}
	return m, refs, nil
}

// DecodeFile reads and decodes a yaml method description from a file.
func DecodeFile(filename string) (*ir.Method, *ir.Refs, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("iryaml: %w", err)
	}
	return Decode(data)
}

func (is instrSpec) instruction(refs *ir.Refs) (*ir.Instruction, error) {
	op, err := parseOpcode(is.Op)
	if err != nil {
		return nil, err
	}
	in := &ir.Instruction{Op: op, Srcs: is.Srcs, Lit: is.Lit}
	if is.Dest != nil {
		in.Dest = *is.Dest
		in.HasDest = true
	}
	if op.IsInvoke() {
		if is.Method == nil {
			return nil, fmt.Errorf("%s requires a method reference", op)
		}
		in.Method = refs.Method(is.Method.Class, is.Method.Name, is.Method.Proto)
	}
	if op == ir.IGet || op == ir.IPut {
		if is.Field == nil {
			return nil, fmt.Errorf("%s requires a field reference", op)
		}
		in.Field = refs.Field(is.Field.Class, is.Field.Name, is.Field.Type, is.Field.Final)
	}
	return in, nil
}

func parseOpcode(name string) (ir.Opcode, error) {
	for op := ir.Nop; op <= ir.ReturnVoid; op++ {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown opcode %q", name)
}
