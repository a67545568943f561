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

import "strings"

// A Scope selects which part of the graph MarkNodesToDraw marks.
type Scope int

// Graph scopes.
const (
	WholeGraph Scope = iota
	AroundNodes
	AroundHits
	DepthRange
)

func (scope Scope) String() string {
	switch scope {
	case WholeGraph:
		return "whole-graph"
	case AroundNodes:
		return "around-nodes"
	case AroundHits:
		return "around-hits"
	default:
		return "depth-range"
	}
}

// ResetDrawn clears the drawn and special flags of all nodes and
// edges.
func (g *AssemblyGraph) ResetDrawn() {
	for _, n := range g.nodes {
		if n != nil {
			n.drawn, n.special = false, false
		}
	}
	for _, e := range g.edges {
		if e != nil {
			e.drawn = false
		}
	}
}

// MarkNodesToDraw marks the part of the graph selected by scope as
// drawn. For scopes other than WholeGraph, the starting nodes and all
// nodes within distance edges of them are drawn, and the starting
// nodes are marked special. DepthRange scope ignores the distance. In
// single mode only positive nodes are drawn. Edges are drawn when
// both of their nodes are.
func (g *AssemblyGraph) MarkNodesToDraw(scope Scope, startingNodes []*Node, distance int, doubleMode bool) {
	g.ResetDrawn()

	if scope == WholeGraph {
		for _, n := range g.nodes {
			if n != nil && (doubleMode || n.IsPositive()) {
				n.drawn = true
			}
		}
	} else {
		if scope == DepthRange {
			distance = 0
		}
		type item struct {
			node   *Node
			budget int
		}
		best := make(map[NodeID]int)
		var stack []item
		for _, n := range startingNodes {
			if !doubleMode {
				n = n.Positive()
			}
			n.drawn, n.special = true, true
			stack = append(stack, item{n, distance})
		}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.budget <= 0 {
				continue
			}
			if b, seen := best[top.node.id]; seen && b >= top.budget {
				continue
			}
			best[top.node.id] = top.budget
			for _, e := range top.node.Edges() {
				other := e.OtherNode(top.node)
				if doubleMode {
					other.drawn = true
				} else {
					other.Positive().drawn = true
				}
				stack = append(stack, item{other, top.budget - 1})
			}
		}
	}

	for _, e := range g.edges {
		if e != nil {
			e.determineIfDrawn(doubleMode)
		}
	}
}

// NodesFromString looks up a comma-separated list of node names. A
// name without a trailing sign selects both strands. With exact set
// to false, every node whose name contains the given text is
// selected. Names that match no node are returned separately.
func (g *AssemblyGraph) NodesFromString(text string, exact bool) (nodes []*Node, missing []string) {
	seen := make(map[NodeID]bool)
	add := func(n *Node) {
		if !seen[n.id] {
			seen[n.id] = true
			nodes = append(nodes, n)
		}
	}
	for _, name := range strings.Split(text, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		found := false
		_, _, signed := SplitNodeName(name)
		if exact {
			if signed {
				if n := g.NodeByName(name); n != nil {
					add(n)
					found = true
				}
			} else if n := g.NodeByName(name + "+"); n != nil {
				add(n)
				add(n.ReverseComplement())
				found = true
			}
		} else {
			for _, n := range g.nodes {
				if n == nil {
					continue
				}
				candidate := n.baseName
				if signed {
					candidate = n.Name()
				}
				if strings.Contains(candidate, name) {
					add(n)
					found = true
				}
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return nodes, missing
}

// NodesInDepthRange returns the nodes of both strands whose depth
// lies in [minDepth, maxDepth].
func (g *AssemblyGraph) NodesInDepthRange(minDepth, maxDepth float64) (result []*Node) {
	for _, n := range g.nodes {
		if n != nil && n.depth >= minDepth && n.depth <= maxDepth {
			result = append(result, n)
		}
	}
	return
}

// DrawnNodes returns the nodes that are marked drawn, in creation
// order.
func (g *AssemblyGraph) DrawnNodes() (result []*Node) {
	for _, n := range g.nodes {
		if n != nil && n.drawn {
			result = append(result, n)
		}
	}
	return
}

// DrawnEdges returns the edges that are marked drawn, in creation
// order.
func (g *AssemblyGraph) DrawnEdges() (result []*Edge) {
	for _, e := range g.edges {
		if e != nil && e.drawn {
			result = append(result, e)
		}
	}
	return
}
