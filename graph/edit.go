// elGraph: a tool for querying assembly graphs.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgraph/blob/master/LICENSE.txt>.

package graph

import (
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// DeleteEdges removes the given edges and their reverse complements
// from the graph.
func (g *AssemblyGraph) DeleteEdges(edges []*Edge) {
	var ids []EdgeID
	seen := make(map[EdgeID]bool)
	for _, e := range edges {
		for _, id := range [2]EdgeID{e.id, e.rc} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	for _, id := range ids {
		e := g.edges[id]
		if e == nil {
			continue
		}
		delete(g.edgeIndex, [2]NodeID{e.start, e.end})
		e.Start().removeEdge(id)
		e.End().removeEdge(id)
		g.edges[id] = nil
	}
	g.touch()
}

// DeleteNodes removes the given nodes, their reverse complements, and
// all edges that touch them. Named paths that pass through any of the
// removed nodes are removed as well.
func (g *AssemblyGraph) DeleteNodes(nodes []*Node) {
	deleted := make(map[NodeID]bool)
	var edges []*Edge
	for _, n := range nodes {
		for _, m := range [2]*Node{n, n.ReverseComplement()} {
			if !deleted[m.id] {
				deleted[m.id] = true
				edges = append(edges, m.Edges()...)
			}
		}
	}
	g.DeleteEdges(edges)
	for id := range deleted {
		if n := g.nodes[id]; n != nil {
			delete(g.names, n.Name())
			g.nodes[id] = nil
		}
	}
	for name, p := range g.paths {
		for _, n := range p.nodes {
			if deleted[n.id] {
				delete(g.paths, name)
				break
			}
		}
	}
	g.touch()
}

// ChangeNodeName renames a node pair. The graph is unchanged if the
// new base name is not valid.
func (g *AssemblyGraph) ChangeNodeName(node *Node, newBaseName string) NodeNameStatus {
	if status := g.CheckNodeNameValidity(newBaseName); status != NodeNameOkay {
		return status
	}
	pos, neg := node.Positive(), node.Positive().ReverseComplement()
	delete(g.names, pos.Name())
	delete(g.names, neg.Name())
	pos.baseName, neg.baseName = newBaseName, newBaseName
	g.names[pos.Name()] = pos.id
	g.names[neg.Name()] = neg.id
	g.touch()
	return NodeNameOkay
}

// ChangeNodeDepth sets the depth of the given nodes and their reverse
// complements.
func (g *AssemblyGraph) ChangeNodeDepth(nodes []*Node, depth float64) {
	for _, n := range nodes {
		n.setDepthPair(depth)
	}
	g.touch()
}

// DuplicateNodePair splits a node pair into two pairs with the same
// sequence and the same edges. The depth is divided evenly between
// the original and the copy. It returns the positive strand of the
// copy.
func (g *AssemblyGraph) DuplicateNodePair(node *Node) (*Node, bool) {
	original := node.Positive()
	base := original.baseName + "_copy"
	name := base
	for suffix := 2; g.CheckNodeNameValidity(name) == NodeNameTaken; suffix++ {
		name = base + strconv.Itoa(suffix)
	}
	depth := original.depth / 2
	pos, _, ok := g.AddNodePair(name, depth, original.seq)
	if !ok {
		return nil, false
	}
	if original.length >= 0 {
		pos.SetLength(original.length)
	}
	original.setDepthPair(depth)

	for _, e := range original.LeavingEdges() {
		g.CreateEdge(pos.Name(), e.End().Name(), e.overlap, e.overlapType)
	}
	for _, e := range original.EnteringEdges() {
		g.CreateEdge(e.Start().Name(), pos.Name(), e.overlap, e.overlapType)
	}
	return pos, true
}

func canAddToEnd(list []*Node, candidate *Node) bool {
	last := list[len(list)-1]
	leaving := last.LeavingEdges()
	entering := candidate.EnteringEdges()
	return len(leaving) == 1 && len(entering) == 1 &&
		leaving[0].End() == candidate && entering[0].Start() == last
}

func canAddToStart(list []*Node, candidate *Node) bool {
	first := list[0]
	entering := first.EnteringEdges()
	leaving := candidate.LeavingEdges()
	return len(entering) == 1 && len(leaving) == 1 &&
		entering[0].Start() == candidate && leaving[0].End() == first
}

// orderForMerge returns the nodes as a simple chain, trying reverse
// complements where needed, or nil if they do not form one.
func orderForMerge(nodes []*Node) []*Node {
	ordered := []*Node{nodes[0]}
	remaining := append([]*Node(nil), nodes[1:]...)
	for added := true; added; {
		added = false
	search:
		for i, n := range remaining {
			for _, candidate := range [2]*Node{n, n.ReverseComplement()} {
				switch {
				case canAddToEnd(ordered, candidate):
					ordered = append(ordered, candidate)
				case canAddToStart(ordered, candidate):
					ordered = append([]*Node{candidate}, ordered...)
				default:
					continue
				}
				remaining = append(remaining[:i], remaining[i+1:]...)
				added = true
				break search
			}
		}
	}
	if len(remaining) > 0 {
		return nil
	}
	present := make(map[NodeID]bool, len(ordered))
	for _, n := range ordered {
		if present[n.rc] {
			return nil
		}
		present[n.id] = true
	}
	return ordered
}

// MergeNodes replaces a simple chain of nodes by a single node pair.
// The nodes may be given in any order and on either strand, but each
// connection in the chain must be the only edge leaving and entering
// the nodes it connects. With recalculateDepth, the new depth is the
// length-weighted mean of the merged depths. Otherwise, it is the
// depth of the first node of the chain. It returns the positive
// strand of the new node.
func (g *AssemblyGraph) MergeNodes(nodes []*Node, recalculateDepth bool) (*Node, bool) {
	if len(nodes) < 2 {
		return nil, false
	}
	ordered := orderForMerge(nodes)
	if ordered == nil {
		return nil, false
	}
	first, last := ordered[0], ordered[len(ordered)-1]

	depth := first.depth
	if recalculateDepth {
		totalLength, weighted := 0, 0.0
		for _, n := range ordered {
			totalLength += n.Length()
			weighted += float64(n.Length()) * n.depth
		}
		if totalLength > 0 {
			depth = weighted / float64(totalLength)
		}
	}

	path := PathFromOrderedNodes(ordered, false)
	names := make([]string, len(ordered))
	for i, n := range ordered {
		names[i] = n.baseName
	}
	pos, neg, ok := g.AddNodePair(g.UniqueNodeName(strings.Join(names, "_")), depth, path.Sequence())
	if !ok {
		return nil, false
	}
	if pos.Sequence().IsMissing() {
		pos.SetLength(path.Length())
	}

	replace := func(n *Node) *Node {
		switch n {
		case first, last:
			return pos
		case first.ReverseComplement(), last.ReverseComplement():
			return neg
		}
		return n
	}
	for _, e := range last.LeavingEdges() {
		g.CreateEdge(pos.Name(), replace(e.End()).Name(), e.overlap, e.overlapType)
	}
	for _, e := range first.EnteringEdges() {
		g.CreateEdge(replace(e.Start()).Name(), pos.Name(), e.overlap, e.overlapType)
	}

	g.DeleteNodes(ordered)
	return pos, true
}

// MergeAllPossible merges every maximal simple chain of nodes in the
// graph, and returns the number of merges performed.
func (g *AssemblyGraph) MergeAllPossible() int {
	unchecked := bitset.New(uint(len(g.nodes)))
	for _, n := range g.nodes {
		if n != nil {
			unchecked.Set(uint(n.id))
		}
	}
	check := func(n *Node) {
		unchecked.Clear(uint(n.id))
		unchecked.Clear(uint(n.rc))
	}
	contains := func(list []*Node, n *Node) bool {
		for _, m := range list {
			if m == n {
				return true
			}
		}
		return false
	}

	var merges [][]*Node
	for i, ok := unchecked.NextSet(0); ok; i, ok = unchecked.NextSet(0) {
		node := g.nodes[i]
		check(node)
		chain := []*Node{node}

		for {
			leaving := chain[len(chain)-1].LeavingEdges()
			if len(leaving) != 1 {
				break
			}
			next := leaving[0].End()
			entering := next.EnteringEdges()
			if len(entering) != 1 || entering[0] != leaving[0] ||
				contains(chain, next) || !unchecked.Test(uint(next.id)) {
				break
			}
			chain = append(chain, next)
			check(next)
		}
		for {
			entering := chain[0].EnteringEdges()
			if len(entering) != 1 {
				break
			}
			previous := entering[0].Start()
			leaving := previous.LeavingEdges()
			if len(leaving) != 1 || leaving[0] != entering[0] ||
				contains(chain, previous) || !unchecked.Test(uint(previous.id)) {
				break
			}
			chain = append([]*Node{previous}, chain...)
			check(previous)
		}

		if len(chain) > 1 {
			merges = append(merges, chain)
		}
	}

	count := 0
	for _, chain := range merges {
		if _, ok := g.MergeNodes(chain, true); ok {
			count++
		}
	}
	return count
}
