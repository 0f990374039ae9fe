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
	"github.com/sawwas/redex/analysis/ir"
)

// GetterPredicate decides whether a method referenced in an invoke operation is a getter for an
// immutable structure. It must be a pure function of the method reference.
type GetterPredicate func(*ir.MethodRef) bool

// transferFunc is the per-instruction state transformer. apply mutates env into the binding
// environment holding immediately after the instruction.
type transferFunc struct {
	isGetter GetterPredicate
}

// apply classifies the instruction's effect on its destination register. Instructions without a
// destination leave the environment untouched; instructions outside the modeled vocabulary
// (arithmetic, allocation, array and non-final field accesses, non-getter calls) demote their
// destination to Unknown. Instructions whose operand shape does not match the modeled one are
// treated like the unmodeled vocabulary.
func (t transferFunc) apply(env BindingSnapshot, in *ir.Instruction) {
	switch {
	case in.Op.IsInvoke():
		t.applyInvoke(env, in)

	case !in.HasDest:
		// No destination, no effect.

	case in.Op == ir.LoadParam:
		env.bind(in.Dest, NewAccessPath(Parameter, int(in.Lit)))

	case in.Op == ir.Move && len(in.Srcs) == 1:
		env.bind(in.Dest, env.Get(in.Srcs[0]))

	case in.Op == ir.IGet && len(in.Srcs) == 1 && in.Field != nil && in.Field.Final:
		t.applyFieldGet(env, in)

	default:
		env.bind(in.Dest, Top())
	}
}

// applyFieldGet handles reads of final fields. When the receiver holds a path rooted at a
// parameter or a local, the destination becomes a field root carrying the receiver's getter
// chain. Field roots are terminal: a read off an Unknown receiver, or off a path that is
// already a field root, demotes the destination instead of chaining.
func (t transferFunc) applyFieldGet(env BindingSnapshot, in *ir.Instruction) {
	receiver := env.Get(in.Srcs[0])
	switch receiver.Kind() {
	case Parameter, Local:
		env.bind(in.Dest, NewFinalFieldPath(receiver.Parameter(), in.Field, receiver.getters))
	default:
		env.bind(in.Dest, Top())
	}
}

// applyInvoke handles call instructions. A call to a getter whose receiver holds a concrete,
// non-field-rooted path extends that path with the callee; every other call invalidates the
// destination register, if any.
func (t transferFunc) applyInvoke(env BindingSnapshot, in *ir.Instruction) {
	// The predicate is consulted once per call instruction.
	getter := t.isGetter(in.Method)
	if getter {
		if recv, ok := in.Receiver(); ok {
			receiver := env.Get(recv)
			if k := receiver.Kind(); k == Parameter || k == Local {
				if in.HasDest {
					env.bind(in.Dest, NewAccessPathWithGetters(k, receiver.Parameter(),
						append(receiver.Getters(), in.Method)))
				}
				return
			}
		}
	}
	if in.HasDest {
		env.bind(in.Dest, Top())
	}
}
