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
	"github.com/sawwas/redex/analysis/cfg"
	"github.com/sawwas/redex/analysis/config"
	"github.com/sawwas/redex/analysis/ir"
	"github.com/sawwas/redex/internal/funcutil"
)

// solver iterates the transfer function over the control-flow graph until every block's entry
// and exit environments stabilize.
//
// Termination: the join only ever demotes a register's binding (a concrete path joined with a
// disagreeing one is Unknown forever), so each register's value at each block moves through at
// most two states. The number of times any block can change is therefore bounded, regardless of
// the loop structure of the graph.
type solver struct {
	graph    *cfg.Graph
	transfer transferFunc
	logger   *config.LogGroup
	maxIter  int

	entry map[cfg.BlockID]BindingSnapshot
	exit  map[cfg.BlockID]BindingSnapshot
}

func newSolver(g *cfg.Graph, isGetter GetterPredicate, logger *config.LogGroup, maxIter int) *solver {
	return &solver{
		graph:    g,
		transfer: transferFunc{isGetter: isGetter},
		logger:   logger,
		maxIter:  maxIter,
		entry:    map[cfg.BlockID]BindingSnapshot{},
		exit:     map[cfg.BlockID]BindingSnapshot{},
	}
}

// initialEntryState binds every formal parameter register of the entry block to a fresh
// Parameter path. The parameter registers and their numbering, including an implicit receiver
// as parameter 0 for instance methods, come from the host IR's LoadParam prefix.
func (s *solver) initialEntryState() BindingSnapshot {
	init := make(BindingSnapshot)
	entry := s.graph.Entry()
	if entry == nil {
		return init
	}
	for _, in := range entry.Instrs() {
		if in.Op != ir.LoadParam {
			break
		}
		init.bind(in.Dest, NewAccessPath(Parameter, int(in.Lit)))
	}
	return init
}

// applyBlock runs the transfer function across the block's instructions starting from entryEnv,
// returning the exit environment. entryEnv is not modified.
func (s *solver) applyBlock(b *cfg.Block, entryEnv BindingSnapshot) BindingSnapshot {
	env := entryEnv.Copy()
	for _, in := range b.Instrs() {
		s.transfer.apply(env, in)
	}
	return env
}

// run computes the fixed point. Blocks are processed in reverse-postorder for fast convergence;
// a block whose exit environment changed re-queues its successors.
func (s *solver) run() {
	rpo := s.graph.ReversePostorder()
	if len(rpo) == 0 {
		return
	}
	start := s.graph.Entry()
	startEntry := s.initialEntryState()

	worklist := make([]*cfg.Block, len(rpo))
	copy(worklist, rpo)

	visits := 0
	limit := 0
	if s.maxIter > 0 {
		limit = s.maxIter * len(rpo)
	}
	for len(worklist) > 0 {
		if limit > 0 && visits >= limit {
			s.logger.Warnf("solver for %s stopped after %d block visits", s.graph.Method(), visits)
			break
		}
		visits++
		block := worklist[0]
		worklist = worklist[1:]

		var entryEnv BindingSnapshot
		if block == start {
			// The start block keeps its initialized entry.
			entryEnv = startEntry.Copy()
		} else {
			entryEnv = s.joinPredecessors(block)
		}
		exitEnv := s.applyBlock(block, entryEnv)

		prev, seen := s.exit[block.ID()]
		s.entry[block.ID()] = entryEnv
		s.exit[block.ID()] = exitEnv
		if !seen || !exitEnv.Equal(prev) {
			s.logger.Tracef("block %s exit changed: %s", block, exitEnv)
			for _, succ := range block.Succs() {
				if !funcutil.Contains(worklist, succ) {
					worklist = append(worklist, succ)
				}
			}
		}
	}
	s.logger.Debugf("solver for %s converged after %d block visits", s.graph.Method(), visits)
}

// joinPredecessors folds the environment join over the exit environments of all predecessors.
// A predecessor whose exit has not been computed yet contributes nothing: on the first pass a
// loop header sees only its forward predecessors, and the back edges demote the disagreeing
// registers on later passes.
func (s *solver) joinPredecessors(block *cfg.Block) BindingSnapshot {
	var env BindingSnapshot
	for _, pred := range block.Preds() {
		prev, ok := s.exit[pred.ID()]
		if !ok {
			continue
		}
		if env == nil {
			env = prev.Copy()
		} else {
			env = joinBindings(env, prev)
		}
	}
	if env == nil {
		return make(BindingSnapshot)
	}
	return env
}

// snapshots freezes the computed fixed point, one entry/exit pair per block. Blocks never
// reached by the solver get vacuous (all-Unknown) snapshots.
func (s *solver) snapshots() map[cfg.BlockID]BlockStateSnapshot {
	result := make(map[cfg.BlockID]BlockStateSnapshot, len(s.graph.Blocks()))
	for _, b := range s.graph.Blocks() {
		snap := BlockStateSnapshot{
			EntryStateBindings: BindingSnapshot{},
			ExitStateBindings:  BindingSnapshot{},
		}
		if e, ok := s.entry[b.ID()]; ok {
			snap.EntryStateBindings = e
		}
		if x, ok := s.exit[b.ID()]; ok {
			snap.ExitStateBindings = x
		}
		result[b.ID()] = snap
	}
	return result
}
