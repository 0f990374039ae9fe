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

package iryaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sawwas/redex/analysis/ir"
)

const chainMethod = `
method:
  class: "LExample;"
  name: "doSomething"
  params: 1
blocks:
  - id: 0
    instrs:
      - op: LoadParam
        dest: 0
        lit: 0
      - op: InvokeVirtual
        dest: 1
        srcs: [0]
        method: {class: "LA;", name: "getB", proto: "()LB;"}
      - op: InvokeVirtual
        dest: 2
        srcs: [1]
        method: {class: "LB;", name: "getC", proto: "()LC;"}
      - op: IGet
        dest: 3
        srcs: [2]
        field: {class: "LC;", name: "count", type: "I", final: true}
      - op: Return
        srcs: [3]
`

func TestDecode(t *testing.T) {
	m, refs, err := Decode([]byte(chainMethod))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.Class != "LExample;" || m.Name != "doSomething" || m.Params != 1 || m.Static {
		t.Errorf("method header = %+v", m)
	}
	if len(m.Blocks) != 1 || len(m.Blocks[0].Instrs) != 5 {
		t.Fatalf("got %d blocks, want 1 with 5 instructions", len(m.Blocks))
	}
	instrs := m.Blocks[0].Instrs
	if instrs[0].Op != ir.LoadParam || instrs[0].Dest != 0 || instrs[0].Lit != 0 {
		t.Errorf("instruction 0 = %v", instrs[0])
	}
	getB := instrs[1].Method
	if getB == nil || getB.Name != "getB" || getB.Proto != "()LB;" {
		t.Errorf("instruction 1 method = %v", getB)
	}
	if getB != refs.Method("LA;", "getB", "()LB;") {
		t.Errorf("decoded reference not interned in the returned table")
	}
	count := instrs[3].Field
	if count == nil || !count.Final || count.Type != "I" {
		t.Errorf("instruction 3 field = %v", count)
	}
	if recv, ok := instrs[1].Receiver(); !ok || recv != 0 {
		t.Errorf("Receiver() = %d, %v; want 0, true", recv, ok)
	}
}

func TestDecodeInterning(t *testing.T) {
	doc := `
method: {class: "LFoo;", name: "f", params: 1}
blocks:
  - id: 0
    instrs:
      - {op: LoadParam, dest: 0, lit: 0}
      - op: InvokeVirtual
        dest: 1
        srcs: [0]
        method: {class: "LA;", name: "getB", proto: "()LB;"}
      - op: InvokeVirtual
        dest: 2
        srcs: [0]
        method: {class: "LA;", name: "getB", proto: "()LB;"}
      - {op: ReturnVoid}
`
	m, _, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	instrs := m.Blocks[0].Instrs
	if instrs[1].Method != instrs[2].Method {
		t.Errorf("two references to the same method decode to distinct pointers")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not yaml",
			doc:  "{{",
			want: "iryaml",
		},
		{
			name: "unknown opcode",
			doc: `
method: {class: "LFoo;", name: "f", params: 0}
blocks:
  - id: 0
    instrs:
      - {op: Frobnicate}
`,
			want: "unknown opcode",
		},
		{
			name: "invoke without method reference",
			doc: `
method: {class: "LFoo;", name: "f", params: 0}
blocks:
  - id: 0
    instrs:
      - {op: InvokeStatic, dest: 0}
      - {op: ReturnVoid}
`,
			want: "requires a method reference",
		},
		{
			name: "field access without field reference",
			doc: `
method: {class: "LFoo;", name: "f", params: 0}
blocks:
  - id: 0
    instrs:
      - {op: IGet, dest: 1, srcs: [0]}
      - {op: ReturnVoid}
`,
			want: "requires a field reference",
		},
		{
			name: "move without sources",
			doc: `
method: {class: "LFoo;", name: "f", params: 1}
blocks:
  - id: 0
    instrs:
      - {op: LoadParam, dest: 0, lit: 0}
      - {op: Move, dest: 1}
      - {op: ReturnVoid}
`,
			want: "takes 1 source",
		},
		{
			name: "field read without destination",
			doc: `
method: {class: "LFoo;", name: "f", params: 1}
blocks:
  - id: 0
    instrs:
      - {op: LoadParam, dest: 0, lit: 0}
      - op: IGet
        srcs: [0]
        field: {class: "LFoo;", name: "count", type: "I", final: true}
      - {op: ReturnVoid}
`,
			want: "needs a destination register",
		},
		{
			name: "structurally invalid method",
			doc: `
method: {class: "LFoo;", name: "f", params: 0}
blocks:
  - id: 0
    succs: [3]
    instrs:
      - {op: Goto}
`,
			want: "unknown successor",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.doc))
			if err == nil {
				t.Fatalf("Decode succeeded, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "method.yaml")
	if err := os.WriteFile(path, []byte(chainMethod), 0600); err != nil {
		t.Fatal(err)
	}
	m, _, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if m.Name != "doSomething" {
		t.Errorf("decoded method %q, want doSomething", m.Name)
	}
	if _, _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("DecodeFile on a missing file succeeded")
	}
}
