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

import (
	"fmt"
	"strings"

	"github.com/sawwas/redex/internal/funcutil"
)

// Instruction is one operation of a method body. Instructions are identified by pointer: the
// same *Instruction must not appear twice in a method. The destination register is optional;
// HasDest reports whether the instruction writes one.
//
// For non-static invokes, source register 0 holds the implicit `this` argument, the explicit
// arguments follow.
type Instruction struct {
	Op      Opcode
	Dest    uint32
	HasDest bool
	Srcs    []uint32
	Method  *MethodRef
	Field   *FieldRef
	// Lit is an opcode-dependent literal. For LoadParam it is the formal parameter index,
	// for Const the constant value.
	Lit int64
}

// NewNop returns a nop instruction.
func NewNop() *Instruction {
	return &Instruction{Op: Nop}
}

// NewLoadParam returns the entry-only instruction binding formal parameter param to register dest.
func NewLoadParam(dest uint32, param int) *Instruction {
	return &Instruction{Op: LoadParam, Dest: dest, HasDest: true, Lit: int64(param)}
}

// NewMove returns a register copy dest := src.
func NewMove(dest, src uint32) *Instruction {
	return &Instruction{Op: Move, Dest: dest, HasDest: true, Srcs: []uint32{src}}
}

// NewConst returns a constant load dest := v.
func NewConst(dest uint32, v int64) *Instruction {
	return &Instruction{Op: Const, Dest: dest, HasDest: true, Lit: v}
}

// NewInvoke returns an invoke instruction whose result, if any, is discarded.
func NewInvoke(op Opcode, m *MethodRef, srcs ...uint32) *Instruction {
	if !op.IsInvoke() {
		panic(fmt.Sprintf("ir: opcode %v is not an invoke", op))
	}
	return &Instruction{Op: op, Srcs: srcs, Method: m}
}

// NewInvokeResult returns an invoke instruction whose result is written to dest.
func NewInvokeResult(op Opcode, dest uint32, m *MethodRef, srcs ...uint32) *Instruction {
	in := NewInvoke(op, m, srcs...)
	in.Dest = dest
	in.HasDest = true
	return in
}

// NewIGet returns an instance-field read dest := obj.f.
func NewIGet(dest uint32, f *FieldRef, obj uint32) *Instruction {
	return &Instruction{Op: IGet, Dest: dest, HasDest: true, Srcs: []uint32{obj}, Field: f}
}

// NewIPut returns an instance-field write obj.f := src.
func NewIPut(f *FieldRef, src, obj uint32) *Instruction {
	return &Instruction{Op: IPut, Srcs: []uint32{src, obj}, Field: f}
}

// NewBinOp returns a two-operand arithmetic instruction dest := a op b.
func NewBinOp(op Opcode, dest, a, b uint32) *Instruction {
	return &Instruction{Op: op, Dest: dest, HasDest: true, Srcs: []uint32{a, b}}
}

// NewNewInstance returns an object allocation writing dest.
func NewNewInstance(dest uint32) *Instruction {
	return &Instruction{Op: NewInstance, Dest: dest, HasDest: true}
}

// NewIfEqz returns a conditional branch on src.
func NewIfEqz(src uint32) *Instruction {
	return &Instruction{Op: IfEqz, Srcs: []uint32{src}}
}

// NewGoto returns an unconditional branch.
func NewGoto() *Instruction {
	return &Instruction{Op: Goto}
}

// NewReturn returns a value-returning return instruction.
func NewReturn(src uint32) *Instruction {
	return &Instruction{Op: Return, Srcs: []uint32{src}}
}

// NewReturnVoid returns a void return instruction.
func NewReturnVoid() *Instruction {
	return &Instruction{Op: ReturnVoid}
}

// checkShape verifies the operand shape of the instruction: source-register arity, whether the
// opcode writes a destination, and the presence of the method or field reference it needs.
// Invokes take any number of explicit arguments, with the receiver in source register 0 for the
// non-static forms, and may or may not write a destination.
func (in *Instruction) checkShape() error {
	if in.Op.IsInvoke() {
		if in.Method == nil {
			return fmt.Errorf("%v needs a method reference", in.Op)
		}
		if in.Op.HasReceiver() && len(in.Srcs) == 0 {
			return fmt.Errorf("%v needs a receiver in source register 0", in.Op)
		}
		return nil
	}
	if (in.Op == IGet || in.Op == IPut) && in.Field == nil {
		return fmt.Errorf("%v needs a field reference", in.Op)
	}
	needDest, nsrcs := false, 0
	switch in.Op {
	case Nop, Goto, ReturnVoid:
	case LoadParam, Const, NewInstance:
		needDest = true
	case Move, IGet:
		needDest, nsrcs = true, 1
	case AGet, Add:
		needDest, nsrcs = true, 2
	case IfEqz, Return:
		nsrcs = 1
	case IPut:
		nsrcs = 2
	case APut:
		nsrcs = 3
	}
	if in.HasDest != needDest {
		if needDest {
			return fmt.Errorf("%v needs a destination register", in.Op)
		}
		return fmt.Errorf("%v does not write a destination register", in.Op)
	}
	if len(in.Srcs) != nsrcs {
		return fmt.Errorf("%v takes %d source registers, got %d", in.Op, nsrcs, len(in.Srcs))
	}
	return nil
}

// Receiver returns the register holding the implicit `this` argument of a non-static invoke.
func (in *Instruction) Receiver() (uint32, bool) {
	if in.Op.HasReceiver() && len(in.Srcs) > 0 {
		return in.Srcs[0], true
	}
	return 0, false
}

// Equal reports structural equality: same opcode, registers, literal and reference identities.
func (in *Instruction) Equal(o *Instruction) bool {
	if in.Op != o.Op || in.HasDest != o.HasDest || in.Lit != o.Lit ||
		in.Method != o.Method || in.Field != o.Field {
		return false
	}
	if in.HasDest && in.Dest != o.Dest {
		return false
	}
	if len(in.Srcs) != len(o.Srcs) {
		return false
	}
	for i, s := range in.Srcs {
		if o.Srcs[i] != s {
			return false
		}
	}
	return true
}

// Hash folds the opcode, registers and literal into a hash consistent with Equal.
func (in *Instruction) Hash() uint64 {
	result := uint64(in.Op)
	for _, s := range in.Srcs {
		result ^= uint64(s)
	}
	if in.HasDest {
		result ^= uint64(in.Dest)
	}
	result ^= uint64(in.Lit)
	return result
}

func (in *Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Op.String())
	if in.HasDest {
		fmt.Fprintf(&b, " v%d", in.Dest)
	}
	if len(in.Srcs) > 0 {
		if in.HasDest {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(strings.Join(funcutil.Map(in.Srcs, func(r uint32) string {
			return fmt.Sprintf("v%d", r)
		}), ", "))
	}
	switch {
	case in.Method != nil:
		fmt.Fprintf(&b, " %s", in.Method)
	case in.Field != nil:
		fmt.Fprintf(&b, " %s", in.Field)
	case in.Op == LoadParam || in.Op == Const:
		fmt.Fprintf(&b, " %d", in.Lit)
	}
	return b.String()
}
