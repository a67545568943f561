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

import "context"

// DefaultContiguitySteps is the default search depth for
// DetermineContiguity.
const DefaultContiguitySteps = 15

// ResetContiguity sets the contiguity status of all nodes to
// NotContiguous.
func (g *AssemblyGraph) ResetContiguity() {
	for _, n := range g.nodes {
		if n != nil {
			n.contiguity = NotContiguous
		}
	}
}

// DetermineContiguity resets all contiguity statuses, and then
// classifies every node within the given number of steps of the
// starting nodes by how certainly it lies on the same underlying
// sequence. The context is checked once per traced edge and once per
// back-checked node.
func (g *AssemblyGraph) DetermineContiguity(ctx context.Context, nodes []*Node, steps int) error {
	g.ResetContiguity()
	for _, n := range nodes {
		if err := n.determineContiguity(ctx, steps); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) determineContiguity(ctx context.Context, steps int) error {
	n.upgradeContiguityStatus(Starting)

	var checked []*Node
	seen := make(map[NodeID]bool)
	for _, e := range n.Edges() {
		if err := ctx.Err(); err != nil {
			return err
		}
		paths := e.tracePaths(e.start == n.id, steps, n)
		for _, path := range paths {
			for _, m := range path {
				m.upgradeContiguityStatus(MaybeContiguous)
				if !seen[m.id] {
					seen[m.id] = true
					checked = append(checked, m)
				}
			}
		}
		for _, m := range nodesCommonToAllPaths(paths, false) {
			m.upgradeContiguityStatus(ContiguousStrandSpecific)
		}
		for _, m := range nodesCommonToAllPaths(paths, true) {
			m.upgradeContiguityStatus(ContiguousEitherStrand)
			m.ReverseComplement().upgradeContiguityStatus(ContiguousEitherStrand)
		}
	}

	for _, m := range checked {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.contiguity != ContiguousStrandSpecific && m.pathLeadsOnlyToNode(n, false, steps) {
			m.upgradeContiguityStatus(ContiguousStrandSpecific)
		}
		if m.contiguity != ContiguousStrandSpecific && m.contiguity != ContiguousEitherStrand &&
			m.pathLeadsOnlyToNode(n, true, steps) {
			m.upgradeContiguityStatus(ContiguousEitherStrand)
			m.ReverseComplement().upgradeContiguityStatus(ContiguousEitherStrand)
		}
	}
	return nil
}

// nextEdges returns the edges that continue a walk through n in the
// given direction.
func (n *Node) nextEdges(forward bool) []*Edge {
	if forward {
		return n.LeavingEdges()
	}
	return n.EnteringEdges()
}

func (e *Edge) nextNode(forward bool) *Node {
	if forward {
		return e.End()
	}
	return e.Start()
}

type traceFrame struct {
	edge  *Edge
	steps int
	path  []*Node
}

// tracePaths follows all walks that begin with this edge, for at
// most steps nodes. A walk ends when it runs out of steps, returns
// to the starting node, or reaches a dead end.
func (e *Edge) tracePaths(forward bool, steps int, starting *Node) (paths [][]*Node) {
	stack := []traceFrame{{edge: e, steps: steps}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := top.edge.nextNode(forward)
		path := append(append([]*Node(nil), top.path...), next)
		remaining := top.steps - 1
		if next == starting || remaining <= 0 {
			paths = append(paths, path)
			continue
		}
		edges := next.nextEdges(forward)
		if len(edges) == 0 {
			paths = append(paths, path)
			continue
		}
		for i := len(edges) - 1; i >= 0; i-- {
			stack = append(stack, traceFrame{edge: edges[i], steps: remaining, path: path})
		}
	}
	return paths
}

func nodesCommonToAllPaths(paths [][]*Node, includeReverseComplements bool) (common []*Node) {
	if len(paths) == 0 {
		return nil
	}
	contains := func(path []*Node, n *Node) bool {
		for _, m := range path {
			if m == n || (includeReverseComplements && m == n.ReverseComplement()) {
				return true
			}
		}
		return false
	}
	for _, n := range paths[0] {
		inAll := true
		for _, path := range paths[1:] {
			if !contains(path, n) {
				inAll = false
				break
			}
		}
		if inAll {
			common = append(common, n)
		}
	}
	return common
}

// pathLeadsOnlyToNode returns true if, for at least one edge of n,
// every walk that begins with that edge reaches the target within
// the given number of steps.
func (n *Node) pathLeadsOnlyToNode(target *Node, includeReverseComplement bool, steps int) bool {
	for _, e := range n.Edges() {
		if e.leadsOnlyToNode(e.start == n.id, steps, target, n, includeReverseComplement) {
			return true
		}
	}
	return false
}

func (e *Edge) leadsOnlyToNode(forward bool, steps int, target, origin *Node, includeReverseComplement bool) bool {
	stack := []traceFrame{{edge: e, steps: steps}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		next := top.edge.nextNode(forward)
		if next == target || (includeReverseComplement && next == target.ReverseComplement()) {
			continue
		}
		remaining := top.steps - 1
		if next == origin || remaining <= 0 {
			return false
		}
		edges := next.nextEdges(forward)
		if len(edges) == 0 {
			return false
		}
		for _, nextEdge := range edges {
			stack = append(stack, traceFrame{edge: nextEdge, steps: remaining})
		}
	}
	return true
}
