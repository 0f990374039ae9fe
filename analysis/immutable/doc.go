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

// Package immutable identifies the components and subcomponents of immutable data structures
// accessed via sequences of getters. For example, consider the following method:
//
//	void doSomething(ImmutableStructure s) {
//	  A a = s.getA();
//	  B b = s.getB();
//	  ...
//	  C c = b.getC();
//	  doSomethingElse(c, a.getD().getE());
//	  ...
//	}
//
// The analysis discovers that in the call to doSomethingElse, the first argument is the
// subcomponent s.getB().getC(), whereas the second argument refers to s.getA().getD().getE().
// The analysis assumes that the immutable structures are passed as arguments to the method
// analyzed. The identification of calls to getter methods is done via a user-provided predicate
// on method references.
//
// There is no set notion of immutability here: what we mean is an object that behaves as if its
// subcomponents were constant in a given context, even though the getters might alter its
// internal structure under the hood. This analysis should only be used in well-defined
// situations where it has been established that some parameters of certain methods are
// immutable.
//
// The analysis is a forward dataflow analysis over the method's control-flow graph. Each
// register is mapped to an AccessPath in a flat lattice: two distinct concrete paths join to
// Unknown, the top element. The per-block entry and exit environments computed at the fixed
// point are retained by the Analyzer, which answers point queries (which path does this register
// hold at this instruction) and reverse queries (which registers hold this path at block entry).
package immutable
