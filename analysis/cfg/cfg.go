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

// Package cfg builds a control-flow graph over an ir.Method and provides the block orderings
// used by the dataflow analyses.
package cfg

import (
	"fmt"

	"github.com/sawwas/redex/analysis/ir"
)

// BlockID is the stable, method-local identity of a basic block.
type BlockID uint32

// Block is a basic block in the graph. Blocks are created by New and never mutated afterwards.
type Block struct {
	id    BlockID
	insns []*ir.Instruction
	preds []*Block
	succs []*Block
}

// ID returns the block's identity.
func (b *Block) ID() BlockID { return b.id }

// Instrs returns the block's ordered instruction list. Callers must not modify it.
func (b *Block) Instrs() []*ir.Instruction { return b.insns }

// Preds returns the predecessor blocks.
func (b *Block) Preds() []*Block { return b.preds }

// Succs returns the successor blocks.
func (b *Block) Succs() []*Block { return b.succs }

func (b *Block) String() string { return fmt.Sprintf("B%d", b.id) }

// Graph is the control-flow graph of one method. It borrows the method's instructions: the
// caller must keep the method alive and unmodified for the lifetime of the graph and of any
// analysis built over it.
type Graph struct {
	method *ir.Method
	blocks []*Block
	byID   map[BlockID]*Block
	byInsn map[*ir.Instruction]*Block
}

// New builds the control-flow graph of m. It returns an error when the method body violates the
// IR's structural conventions. A method without code yields a graph with no blocks.
func New(m *ir.Method) (*Graph, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cfg: %w", err)
	}
	g := &Graph{
		method: m,
		byID:   make(map[BlockID]*Block, len(m.Blocks)),
		byInsn: make(map[*ir.Instruction]*Block),
	}
	for _, def := range m.Blocks {
		b := &Block{id: BlockID(def.ID), insns: def.Instrs}
		g.blocks = append(g.blocks, b)
		g.byID[b.id] = b
		for _, in := range def.Instrs {
			if _, dup := g.byInsn[in]; dup {
				return nil, fmt.Errorf("cfg: instruction %v appears twice in %s", in, m)
			}
			g.byInsn[in] = b
		}
	}
	for i, def := range m.Blocks {
		b := g.blocks[i]
		for _, s := range def.Succs {
			succ := g.byID[BlockID(s)]
			b.succs = append(b.succs, succ)
			succ.preds = append(succ.preds, b)
		}
	}
	return g, nil
}

// Method returns the method the graph was built from.
func (g *Graph) Method() *ir.Method { return g.method }

// Entry returns the entry block, or nil when the method has no code.
func (g *Graph) Entry() *Block {
	if len(g.blocks) == 0 {
		return nil
	}
	return g.blocks[0]
}

// Blocks returns all blocks in definition order.
func (g *Graph) Blocks() []*Block { return g.blocks }

// Block returns the block with the given ID, or nil.
func (g *Graph) Block(id BlockID) *Block { return g.byID[id] }

// BlockOf returns the block containing the instruction, or nil when the instruction does not
// belong to the method.
func (g *Graph) BlockOf(in *ir.Instruction) *Block { return g.byInsn[in] }
