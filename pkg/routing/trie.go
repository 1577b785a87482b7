// Copyright 2026 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routing

import (
	"github.com/scionproto/lpmsim/pkg/addr"
)

// trie is a binary trie over the address bits. The route for a prefix of
// length l is stored at depth l along the path spelled by its network bits.
// The zero value is an empty trie.
type trie struct {
	root trieNode
}

type trieNode struct {
	children [2]*trieNode
	entry    *entry
}

func bit(a addr.Addr, depth uint8) int {
	return int(a>>(addr.Width-1-uint32(depth))) & 1
}

func (t *trie) insert(e *entry) {
	n := &t.root
	network := e.Dest.Network()
	for depth := uint8(0); depth < e.Dest.Len(); depth++ {
		b := bit(network, depth)
		if n.children[b] == nil {
			n.children[b] = &trieNode{}
		}
		n = n.children[b]
	}
	n.entry = e
}

// remove clears the entry for p and prunes nodes that became empty.
func (t *trie) remove(p addr.Prefix) {
	path := make([]*trieNode, 0, p.Len()+1)
	n := &t.root
	path = append(path, n)
	for depth := uint8(0); depth < p.Len(); depth++ {
		n = n.children[bit(p.Network(), depth)]
		if n == nil {
			return
		}
		path = append(path, n)
	}
	n.entry = nil
	for depth := int(p.Len()); depth > 0; depth-- {
		child := path[depth]
		if child.entry != nil || child.children[0] != nil || child.children[1] != nil {
			return
		}
		path[depth-1].children[bit(p.Network(), uint8(depth-1))] = nil
	}
}

// longest returns the deepest entry on the path of a.
func (t *trie) longest(a addr.Addr) *entry {
	n := &t.root
	best := n.entry
	for depth := uint8(0); depth < addr.Width; depth++ {
		n = n.children[bit(a, depth)]
		if n == nil {
			break
		}
		if n.entry != nil {
			best = n.entry
		}
	}
	return best
}
