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

package graphutil

import (
	"sort"
	"testing"

	"github.com/sawwas/redex/analysis/cfg"
	"github.com/sawwas/redex/analysis/ir"
)

func buildGraph(t *testing.T, blocks []ir.BlockDef) *cfg.Graph {
	t.Helper()
	g, err := cfg.New(&ir.Method{Class: "LFoo;", Name: "f", Params: 0, Blocks: blocks})
	if err != nil {
		t.Fatalf("cfg.New: %v", err)
	}
	return g
}

// cycleNodes returns the distinct node ids of a cycle, sorted.
func cycleNodes(cycle []int64) []int64 {
	seen := map[int64]bool{}
	var nodes []int64
	for _, v := range cycle {
		if !seen[v] {
			seen[v] = true
			nodes = append(nodes, v)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

func TestFlowIterator(t *testing.T) {
	g := buildGraph(t, []ir.BlockDef{
		{ID: 0, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{1}},
		{ID: 1, Instrs: []*ir.Instruction{ir.NewIfEqz(0)}, Succs: []int{0, 2}},
		{ID: 2, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
	})
	fg := NewFlowIterator(g)
	if fg.Order() != 3 {
		t.Errorf("Order() = %d, want 3", fg.Order())
	}
	if !fg.Edges[0][1] || !fg.Edges[1][0] || !fg.Edges[1][2] {
		t.Errorf("edges = %v", fg.Edges)
	}
	if fg.Edges[2][0] || fg.Edges[0][2] {
		t.Errorf("unexpected edges in %v", fg.Edges)
	}

	var visited []int
	fg.Visit(1, func(w int, _ int64) bool {
		visited = append(visited, w)
		return false
	})
	sort.Ints(visited)
	if len(visited) != 2 || visited[0] != 0 || visited[1] != 2 {
		t.Errorf("Visit(1) reached %v, want [0 2]", visited)
	}

	if fg.Node(1).(FNode).Block != g.Block(1) {
		t.Errorf("Node(1) does not wrap block B1")
	}
	if e := fg.Edge(1, 2); e == nil || e.From().ID() != 1 || e.To().ID() != 2 {
		t.Errorf("Edge(1, 2) = %v", e)
	}
	if fg.Edge(2, 1) != nil {
		t.Errorf("Edge(2, 1) exists, want nil")
	}
}

func TestSubgraph(t *testing.T) {
	g := buildGraph(t, []ir.BlockDef{
		{ID: 0, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{1}},
		{ID: 1, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{2}},
		{ID: 2, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
	})
	sub := Subgraph(NewFlowIterator(g), []int64{1, 2})
	if sub.Edges[0] != nil {
		t.Errorf("excluded node 0 kept its edges: %v", sub.Edges[0])
	}
	if !sub.Edges[1][2] {
		t.Errorf("edge 1 -> 2 dropped from the subgraph")
	}
	if len(sub.Keys) != 2 {
		t.Errorf("Keys = %v, want two entries", sub.Keys)
	}
}

func TestFindAllElementaryCycles(t *testing.T) {
	tests := []struct {
		name   string
		blocks []ir.BlockDef
		want   [][]int64
	}{
		{
			name: "acyclic diamond",
			blocks: []ir.BlockDef{
				{ID: 0, Instrs: []*ir.Instruction{ir.NewIfEqz(0)}, Succs: []int{1, 2}},
				{ID: 1, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{3}},
				{ID: 2, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{3}},
				{ID: 3, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
			},
			want: nil,
		},
		{
			name: "single loop",
			blocks: []ir.BlockDef{
				{ID: 0, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{1}},
				{ID: 1, Instrs: []*ir.Instruction{ir.NewIfEqz(0)}, Succs: []int{2, 3}},
				{ID: 2, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{1}},
				{ID: 3, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
			},
			want: [][]int64{{1, 2}},
		},
		{
			name: "self loop",
			blocks: []ir.BlockDef{
				{ID: 0, Instrs: []*ir.Instruction{ir.NewIfEqz(0)}, Succs: []int{0, 1}},
				{ID: 1, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
			},
			want: [][]int64{{0}},
		},
		{
			name: "nested loops",
			blocks: []ir.BlockDef{
				{ID: 0, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{1}},
				{ID: 1, Instrs: []*ir.Instruction{ir.NewIfEqz(0)}, Succs: []int{2, 4}},
				{ID: 2, Instrs: []*ir.Instruction{ir.NewIfEqz(0)}, Succs: []int{2, 3}},
				{ID: 3, Instrs: []*ir.Instruction{ir.NewGoto()}, Succs: []int{1}},
				{ID: 4, Instrs: []*ir.Instruction{ir.NewReturnVoid()}},
			},
			want: [][]int64{{1, 2, 3}, {2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cycles := FindAllElementaryCycles(NewFlowIterator(buildGraph(t, tt.blocks)))
			var got [][]int64
			for _, c := range cycles {
				got = append(got, cycleNodes(c))
			}
			sort.Slice(got, func(i, j int) bool {
				a, b := got[i], got[j]
				for k := 0; k < len(a) && k < len(b); k++ {
					if a[k] != b[k] {
						return a[k] < b[k]
					}
				}
				return len(a) < len(b)
			})
			if len(got) != len(tt.want) {
				t.Fatalf("found %d cycles %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if len(got[i]) != len(tt.want[i]) {
					t.Errorf("cycle %d = %v, want nodes %v", i, got[i], tt.want[i])
					continue
				}
				for k := range got[i] {
					if got[i][k] != tt.want[i][k] {
						t.Errorf("cycle %d = %v, want nodes %v", i, got[i], tt.want[i])
						break
					}
				}
			}
		})
	}
}
