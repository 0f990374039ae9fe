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
	"sort"

	"github.com/sawwas/redex/analysis/cfg"
	"github.com/sawwas/redex/analysis/config"
	"github.com/sawwas/redex/analysis/ir"
)

// Analyzer answers access-path queries over one method at the computed fixed point. It is
// created by NewAnalyzer, which runs the solver to completion; afterwards the Analyzer is
// immutable and its query methods are safe for concurrent use.
//
// The Analyzer borrows the control-flow graph and its instructions: the caller must keep them
// alive and unmodified for the lifetime of the Analyzer.
type Analyzer struct {
	graph     *cfg.Graph
	transfer  transferFunc
	snapshots map[cfg.BlockID]BlockStateSnapshot
}

// Option configures an Analyzer under construction.
type Option func(*analyzerOptions)

type analyzerOptions struct {
	logger  *config.LogGroup
	maxIter int
}

// WithLogger routes solver diagnostics to the given log group.
func WithLogger(l *config.LogGroup) Option {
	return func(o *analyzerOptions) { o.logger = l }
}

// WithMaxIterations bounds the number of solver passes per block. The solver always converges;
// this is a debugging safety valve, not a correctness requirement.
func WithMaxIterations(n int) Option {
	return func(o *analyzerOptions) { o.maxIter = n }
}

// NewAnalyzer runs the analysis over the method's control-flow graph, blocking until the solver
// converges. The predicate decides whether a method referenced in an invoke operation is a
// getter for an immutable structure. A graph without blocks (a method with no usable
// control-flow representation) yields an analyzer whose every snapshot is vacuous.
func NewAnalyzer(g *cfg.Graph, isGetter GetterPredicate, opts ...Option) *Analyzer {
	options := analyzerOptions{
		logger: config.NewLogGroup(&config.Config{LogLevel: int(config.ErrLevel)}),
	}
	for _, opt := range opts {
		opt(&options)
	}
	s := newSolver(g, isGetter, options.logger, options.maxIter)
	s.run()
	return &Analyzer{
		graph:     g,
		transfer:  transferFunc{isGetter: isGetter},
		snapshots: s.snapshots(),
	}
}

// AnalyzeMethod builds the control-flow graph of m and runs the analysis over it. It returns an
// error only when the method body violates the IR's structural conventions.
func AnalyzeMethod(m *ir.Method, isGetter GetterPredicate, opts ...Option) (*Analyzer, error) {
	g, err := cfg.New(m)
	if err != nil {
		return nil, err
	}
	return NewAnalyzer(g, isGetter, opts...), nil
}

// Graph returns the control-flow graph the analyzer was built over.
func (a *Analyzer) Graph() *cfg.Graph { return a.graph }

// blockOf returns the block containing the instruction. Querying with an instruction that does
// not belong to the analyzed method is a contract violation.
func (a *Analyzer) blockOf(in *ir.Instruction) *cfg.Block {
	b := a.graph.BlockOf(in)
	if b == nil {
		panic(fmt.Sprintf("immutable: instruction %v does not belong to %s", in, a.graph.Method()))
	}
	return b
}

// GetAccessPath returns the access path to a subcomponent of an immutable structure (if any)
// referenced by the register at the given instruction. Note that if the instruction overwrites
// the register, the access path returned is the value held by the register before that
// instruction is executed. The second result is false when the register holds no known path.
func (a *Analyzer) GetAccessPath(reg uint32, in *ir.Instruction) (AccessPath, bool) {
	block := a.blockOf(in)
	env := a.snapshots[block.ID()].EntryStateBindings.Copy()
	for _, cur := range block.Instrs() {
		if cur == in {
			break
		}
		a.transfer.apply(env, cur)
	}
	p := env.Get(reg)
	return p, !p.IsUnknown()
}

// FindAccessPathRegisters returns the registers that store the given access path in the entry
// state of the instruction's block, in increasing order. The lookup is restricted to the block
// entry: a path that first appears mid-block is not reported.
func (a *Analyzer) FindAccessPathRegisters(in *ir.Instruction, path AccessPath) []uint32 {
	block := a.blockOf(in)
	regs := []uint32{}
	for reg, bound := range a.snapshots[block.ID()].EntryStateBindings {
		if bound.Equal(path) {
			regs = append(regs, reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i] < regs[j] })
	return regs
}

// BlockStateSnapshots returns the complete computed fixed point: the entry and exit binding
// environments of every block. The returned snapshots are copies; mutating them does not affect
// the analyzer.
func (a *Analyzer) BlockStateSnapshots() map[cfg.BlockID]BlockStateSnapshot {
	result := make(map[cfg.BlockID]BlockStateSnapshot, len(a.snapshots))
	for id, snap := range a.snapshots {
		result[id] = BlockStateSnapshot{
			EntryStateBindings: snap.EntryStateBindings.Copy(),
			ExitStateBindings:  snap.ExitStateBindings.Copy(),
		}
	}
	return result
}
