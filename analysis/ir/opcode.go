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

// Package ir defines a small register-based intermediate representation: opcodes, instructions,
// interned method and field references, and method bodies organized as basic blocks. It is the
// host IR the analyses in this module operate on.
package ir

//go:generate go tool stringer -type=Opcode

// Opcode identifies the operation an Instruction performs.
type Opcode uint8

// The opcode vocabulary. LoadParam is an entry-only pseudo-instruction binding a formal
// parameter to a register; there is exactly one per formal, as a prefix of the entry block.
const (
	Nop Opcode = iota
	LoadParam
	Move
	Const
	InvokeVirtual
	InvokeDirect
	InvokeStatic
	IGet
	IPut
	AGet
	APut
	NewInstance
	Add
	IfEqz
	Goto
	Return
	ReturnVoid
)

// IsInvoke returns true for the invoke-style opcodes.
func (op Opcode) IsInvoke() bool {
	switch op {
	case InvokeVirtual, InvokeDirect, InvokeStatic:
		return true
	default:
		return false
	}
}

// HasReceiver returns true for invoke opcodes whose source register 0 is the implicit `this`
// argument. Static invokes pass no receiver.
func (op Opcode) HasReceiver() bool {
	return op == InvokeVirtual || op == InvokeDirect
}

// IsTerminator returns true for opcodes that end a basic block.
func (op Opcode) IsTerminator() bool {
	switch op {
	case IfEqz, Goto, Return, ReturnVoid:
		return true
	default:
		return false
	}
}
