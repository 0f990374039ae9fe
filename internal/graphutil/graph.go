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

// Package graphutil adapts a control-flow graph to the interfaces of existing graph libraries
// and implements graph algorithms over that adapter.
package graphutil

import (
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/sawwas/redex/analysis/cfg"
)

// FGraph is an abstraction over a control-flow graph to work with existing graph libraries. It
// implements the methods to satisfy yourbasic's graph.Iterator and Gonum's graph.Graph. Node
// indices are dense: block i of the underlying graph's Blocks() slice is node i.
type FGraph struct {
	// The order of the graph
	order int

	// The original control-flow graph the FGraph was constructed from
	Graph *cfg.Graph

	// IDMap maps from node IDs to FNodes
	IDMap map[int64]FNode

	// Keys are all the node IDs
	Keys []int64

	// Edges is an adjacency matrix: Edges[x][y] means there is a directed edge between IDMap[x] and IDMap[y]
	Edges map[int64]map[int64]bool
}

// NewFlowIterator returns a new control-flow graph iterator where node ids are the positions of
// the blocks in g.Blocks().
func NewFlowIterator(g *cfg.Graph) FGraph {
	blocks := g.Blocks()
	n := len(blocks)
	idmap := make(map[int64]FNode, n)
	edges := make(map[int64]map[int64]bool, n)
	keys := make([]int64, n)
	index := make(map[*cfg.Block]int64, n)

	for i, b := range blocks {
		index[b] = int64(i)
	}
	for i, b := range blocks {
		keys[i] = int64(i)
		idmap[int64(i)] = FNode{id: int64(i), Block: b}
		edges[int64(i)] = map[int64]bool{}
		for _, s := range b.Succs() {
			edges[int64(i)][index[s]] = true
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return FGraph{
		order: n,
		Graph: g,
		IDMap: idmap,
		Edges: edges,
		Keys:  keys,
	}
}

// Subgraph returns a new graph that is the original graph with only the nodes in include. Only
// the edges that have both the origin and destination nodes in the include nodes are kept in the
// resulting graph. The subgraph's order, Graph and IDMap are the same as in the original,
// meaning that node indices stay consistent across subgraphs.
func Subgraph(original FGraph, include []int64) FGraph {
	idmap := make(map[int64]FNode, len(include))
	edges := make(map[int64]map[int64]bool, len(include))
	keys := make([]int64, len(include))

	for j, i := range include {
		keys[j] = i
		idmap[i] = original.IDMap[i]
	}

	for _, i := range include {
		edges[i] = map[int64]bool{}
		for e := range original.Edges[i] {
			if _, ok := idmap[e]; ok {
				edges[i][e] = true
			}
		}
	}

	return FGraph{
		order: original.Order(),
		Graph: original.Graph,
		IDMap: original.IDMap,
		Edges: edges,
		Keys:  keys,
	}
}

// Order implements the order of the graph.Iterator interface for the FGraph
func (c FGraph) Order() int {
	return c.order
}

// Visit implements the graph.Iterator interface for the FGraph
func (c FGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := c.IDMap[int64(v)]; !ok {
		return false
	}
	for w := range c.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}

// *************** Graph interface implementation **********************

// Node implements the Graph interface
func (c FGraph) Node(v int64) graph.Node {
	return c.IDMap[v]
}

// Nodes returns the set of nodes in the graph
func (c FGraph) Nodes() graph.Nodes {
	keys := make([]int64, len(c.IDMap))

	i := 0
	for k := range c.IDMap {
		keys[i] = k
		i++
	}
	return &NodeSet{
		nodes: c.IDMap,
		ids:   keys,
		cur:   0,
	}
}

// From returns the set of nodes reachable from the id
func (c FGraph) From(id int64) graph.Nodes {
	var keys []int64

	for out := range c.Edges[id] {
		keys = append(keys, out)
	}
	return &NodeSet{
		nodes: c.IDMap,
		ids:   keys,
		cur:   0,
	}
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two node identifiers
func (c FGraph) HasEdgeBetween(xid, yid int64) bool {
	xe := c.Edges[xid]
	ye := c.Edges[yid]
	return xe[yid] || ye[xid]
}

// Edge returns the edge between the two identifiers (nil if none exists)
func (c FGraph) Edge(uid, vid int64) graph.Edge {
	ue := c.Edges[uid]
	if ue != nil {
		if ue[vid] {
			return FEdge{from: c.IDMap[uid], to: c.IDMap[vid]}
		}
	}
	return nil
}

// *************** Nodes implementation **********************

// FNode is a wrapper around a *cfg.Block that implements the graph.Node interface
type FNode struct {
	id    int64
	Block *cfg.Block
}

// ID returns the id of the node
func (n FNode) ID() int64 {
	return n.id
}

func (n FNode) String() string {
	if n.Block == nil {
		return ""
	}
	return n.Block.String()
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of nodes
type NodeSet struct {
	nodes map[int64]FNode
	ids   []int64
	cur   int
}

// Len returns the number of remaining nodes
func (s *NodeSet) Len() int {
	return len(s.ids) - s.cur
}

// Next advances the iterator and returns whether a node is available
func (s *NodeSet) Next() bool {
	if s.cur < len(s.ids) {
		s.cur++
		return s.cur <= len(s.ids)
	}
	return false
}

// Node returns the current node
func (s *NodeSet) Node() graph.Node {
	if s.cur >= 1 && s.cur <= len(s.ids) {
		return s.nodes[s.ids[s.cur-1]]
	}
	return nil
}

// Reset rewinds the iterator
func (s *NodeSet) Reset() {
	s.cur = 0
}

// *************** Edge implementation **********************

// FEdge is a directed edge between two FNodes implementing the graph.Edge interface
type FEdge struct {
	from FNode
	to   FNode
}

// From returns the origin of the edge
func (e FEdge) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e FEdge) To() graph.Node {
	return e.to
}

// ReversedEdge returns the edge with origin and destination swapped
func (e FEdge) ReversedEdge() graph.Edge {
	return FEdge{from: e.to, to: e.from}
}
