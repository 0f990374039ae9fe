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

// ReversePostorder returns the blocks reachable from the entry in reverse postorder of a
// depth-first traversal. Forward dataflow analyses iterating in this order converge faster.
func (g *Graph) ReversePostorder() []*Block {
	entry := g.Entry()
	if entry == nil {
		return nil
	}
	seen := make(map[*Block]bool, len(g.blocks))
	var post []*Block
	var visit func(b *Block)
	visit = func(b *Block) {
		seen[b] = true
		for _, s := range b.succs {
			if !seen[s] {
				visit(s)
			}
		}
		post = append(post, b)
	}
	visit(entry)
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

// HasPathTo returns true if there is a control-flow path from b1 to b2.
func (g *Graph) HasPathTo(b1, b2 *Block) bool {
	vis := map[*Block]bool{}
	que := []*Block{b1}
	for len(que) > 0 {
		cur := que[0]
		que = que[1:]
		if cur == b2 {
			return true
		}
		vis[cur] = true
		for _, nb := range cur.succs {
			if !vis[nb] {
				que = append(que, nb)
			}
		}
	}
	return false
}
