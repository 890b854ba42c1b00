// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tree

import (
	"code.bundlemart.io/earnings/types"
)

// Node is a member of the referral (n-ary) tree. Children are ordered by
// member ID.
type Node struct {
	Member   types.Member `json:"member"`
	Depth    int          `json:"depth"`
	Children []*Node      `json:"children"`
}

// Size is the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Edges returns the parent -> child code pairs of the tree, depth first.
func (n *Node) Edges() [][2]string {
	var out [][2]string
	var walk func(*Node)
	walk = func(p *Node) {
		for _, c := range p.Children {
			out = append(out, [2]string{p.Member.Code, c.Member.Code})
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

// BinaryNode is a member of the binary placement tree.
type BinaryNode struct {
	Member types.Member `json:"member"`
	Depth  int          `json:"depth"`
	Left   *BinaryNode  `json:"left,omitempty"`
	Right  *BinaryNode  `json:"right,omitempty"`
}

func (b *BinaryNode) Size() int {
	if b == nil {
		return 0
	}
	return 1 + b.Left.Size() + b.Right.Size()
}
