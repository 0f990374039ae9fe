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

package cfg

import (
	"testing"

	"github.com/sawwas/redex/analysis/ir"
)

// diamond builds
//
//	B0 -> B1, B2
//	B1 -> B3
//	B2 -> B3
func diamond(t *testing.T) *Graph {
	t.Helper()
	m := &ir.Method{
		Class: "LFoo;", Name: "f", Params: 1,
		Blocks: []ir.BlockDef{
			{ID: 0, Instrs: []*ir.Instruction{ir.NewLoadParam(0, 0), ir.NewIfEqz(0)}, Succs: []int{1, 2}},
			{ID: 1, Instrs: []*ir.Instruction{ir.NewConst(1, 1), ir.NewGoto()}, Succs: []int{3}},
			{ID: 2, Instrs: []*ir.Instruction{ir.NewConst(1, 2), ir.NewGoto()}, Succs: []int{3}},
			{ID: 3, Instrs: []*ir.Instruction{ir.NewReturn(1)}},
		},
	}
	g, err := New(m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestGraphStructure(t *testing.T) {
	g := diamond(t)
	if got := len(g.Blocks()); got != 4 {
		t.Fatalf("got %d blocks, want 4", got)
	}
	if g.Entry() != g.Block(0) {
		t.Errorf("entry is %v, want B0", g.Entry())
	}
	b0, b1, b2, b3 := g.Block(0), g.Block(1), g.Block(2), g.Block(3)
	if len(b0.Succs()) != 2 || b0.Succs()[0] != b1 || b0.Succs()[1] != b2 {
		t.Errorf("B0 successors = %v", b0.Succs())
	}
	if len(b3.Preds()) != 2 || b3.Preds()[0] != b1 || b3.Preds()[1] != b2 {
		t.Errorf("B3 predecessors = %v", b3.Preds())
	}
	if len(b3.Succs()) != 0 {
		t.Errorf("B3 successors = %v, want none", b3.Succs())
	}
}

func TestBlockOf(t *testing.T) {
	g := diamond(t)
	for _, b := range g.Blocks() {
		for _, in := range b.Instrs() {
			if got := g.BlockOf(in); got != b {
				t.Errorf("BlockOf(%v) = %v, want %v", in, got, b)
			}
		}
	}
	if got := g.BlockOf(ir.NewNop()); got != nil {
		t.Errorf("BlockOf(foreign) = %v, want nil", got)
	}
}

func TestNewErrors(t *testing.T) {
	shared := ir.NewConst(0, 1)
	tests := []struct {
		name   string
		method *ir.Method
	}{
		{
			name: "invalid method",
			method: &ir.Method{
				Class: "LFoo;", Name: "f", Params: 0,
				Blocks: []ir.BlockDef{
					{ID: 0, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{9}},
				},
			},
		},
		{
			name: "shared instruction pointer",
			method: &ir.Method{
				Class: "LFoo;", Name: "f", Params: 0,
				Blocks: []ir.BlockDef{
					{ID: 0, Instrs: []*ir.Instruction{shared, shared, ir.NewReturnVoid()}},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.method); err == nil {
				t.Errorf("New() succeeded, want error")
			}
		})
	}
}

func TestNoCode(t *testing.T) {
	g, err := New(&ir.Method{Class: "LFoo;", Name: "abstract", Params: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if g.Entry() != nil {
		t.Errorf("entry of empty graph is %v, want nil", g.Entry())
	}
	if rpo := g.ReversePostorder(); rpo != nil {
		t.Errorf("ReversePostorder of empty graph = %v, want nil", rpo)
	}
}

func TestReversePostorder(t *testing.T) {
	g := diamond(t)
	rpo := g.ReversePostorder()
	if len(rpo) != 4 {
		t.Fatalf("got %d blocks in order, want 4", len(rpo))
	}
	pos := map[BlockID]int{}
	for i, b := range rpo {
		pos[b.ID()] = i
	}
	// Every edge except back edges goes forward in reverse postorder.
	for _, from := range []BlockID{1, 2} {
		if pos[0] >= pos[from] || pos[from] >= pos[3] {
			t.Errorf("order %v does not topologically sort the diamond", rpo)
		}
	}
}

func TestReversePostorderSkipsUnreachable(t *testing.T) {
	m := &ir.Method{
		Class: "LFoo;", Name: "f", Params: 0,
		Blocks: []ir.BlockDef{
			{ID: 0, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
			{ID: 1, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
		},
	}
	g, err := New(m)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rpo := g.ReversePostorder()
	if len(rpo) != 1 || rpo[0].ID() != 0 {
		t.Errorf("ReversePostorder = %v, want just B0", rpo)
	}
}

func TestHasPathTo(t *testing.T) {
	g := diamond(t)
	b0, b1, b2, b3 := g.Block(0), g.Block(1), g.Block(2), g.Block(3)
	if !g.HasPathTo(b0, b3) {
		t.Errorf("no path B0 -> B3")
	}
	if !g.HasPathTo(b1, b1) {
		t.Errorf("no trivial path B1 -> B1")
	}
	if g.HasPathTo(b1, b2) {
		t.Errorf("unexpected path B1 -> B2")
	}
	if g.HasPathTo(b3, b0) {
		t.Errorf("unexpected path B3 -> B0")
	}
}
