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

import "testing"

func drawnNames(g *AssemblyGraph) (names []string) {
	for _, n := range g.DrawnNodes() {
		names = append(names, n.Name())
	}
	return
}

func sameNames(names []string, expected ...string) bool {
	if len(names) != len(expected) {
		return false
	}
	for i, name := range names {
		if name != expected[i] {
			return false
		}
	}
	return true
}

func scopeGraph(t *testing.T) *AssemblyGraph {
	g := chainGraph(t)
	addTestNode(t, g, "D", "ACGTACGT", 2)
	return g
}

func TestMarkNodesToDraw(t *testing.T) {
	g := scopeGraph(t)
	a := g.NodeByName("A+")

	g.MarkNodesToDraw(AroundNodes, []*Node{a.ReverseComplement()}, 1, false)
	if names := drawnNames(g); !sameNames(names, "A+", "B+") {
		t.Error("MarkNodesToDraw 1 failed", names)
	}
	if !a.IsSpecial() || g.NodeByName("B+").IsSpecial() {
		t.Error("special flags failed")
	}
	drawnEdges := g.DrawnEdges()
	if len(drawnEdges) != 1 || drawnEdges[0] != g.Edge(a, g.NodeByName("B+")) {
		t.Error("drawn edges failed")
	}

	g.MarkNodesToDraw(AroundNodes, []*Node{a}, 2, false)
	if names := drawnNames(g); !sameNames(names, "A+", "B+", "C+") {
		t.Error("MarkNodesToDraw 2 failed", names)
	}

	g.MarkNodesToDraw(AroundNodes, []*Node{a.ReverseComplement()}, 1, true)
	if names := drawnNames(g); !sameNames(names, "A-", "B-") {
		t.Error("MarkNodesToDraw 3 failed", names)
	}
	if len(g.DrawnEdges()) != 1 || g.DrawnEdges()[0].Start().Name() != "B-" {
		t.Error("double mode drawn edges failed")
	}

	g.MarkNodesToDraw(WholeGraph, nil, 0, false)
	if names := drawnNames(g); !sameNames(names, "A+", "B+", "C+", "D+") {
		t.Error("MarkNodesToDraw 4 failed", names)
	}
	if len(g.DrawnEdges()) != 2 {
		t.Error("whole graph drawn edges failed")
	}

	g.MarkNodesToDraw(DepthRange, g.NodesInDepthRange(1.5, 2.5), 5, false)
	if names := drawnNames(g); !sameNames(names, "B+", "D+") {
		t.Error("MarkNodesToDraw 5 failed", names)
	}
}

func TestNodesFromString(t *testing.T) {
	g := scopeGraph(t)
	nodes, missing := g.NodesFromString("A, C-", true)
	if len(nodes) != 3 || len(missing) != 0 {
		t.Error("NodesFromString 1 failed")
	}
	if _, missing = g.NodesFromString("A+, Z", true); !sameNames(missing, "Z") {
		t.Error("NodesFromString 2 failed", missing)
	}
	nodes, _ = g.NodesFromString("B", false)
	if len(nodes) != 2 || nodes[0].Name() != "B+" || nodes[1].Name() != "B-" {
		t.Error("NodesFromString 3 failed")
	}
	if nodes, _ = g.NodesFromString("D-", false); len(nodes) != 1 || nodes[0].Name() != "D-" {
		t.Error("NodesFromString 4 failed")
	}
}

func TestScopeString(t *testing.T) {
	if WholeGraph.String() != "whole-graph" || AroundNodes.String() != "around-nodes" ||
		AroundHits.String() != "around-hits" || DepthRange.String() != "depth-range" {
		t.Error("Scope String failed")
	}
}

// A node first reached over a long route must be expanded again when
// it is reached over a shorter route.
func TestMarkNodesToDrawRevisit(t *testing.T) {
	g := New()
	for _, name := range []string{"S", "X1", "X2", "T", "U", "V", "W"} {
		addTestNode(t, g, name, "ACGT", 1)
	}
	addTestEdge(t, g, "S+", "T+", 0)
	addTestEdge(t, g, "S+", "X1+", 0)
	addTestEdge(t, g, "X1+", "X2+", 0)
	addTestEdge(t, g, "X2+", "T+", 0)
	addTestEdge(t, g, "T+", "U+", 0)
	addTestEdge(t, g, "U+", "V+", 0)
	addTestEdge(t, g, "V+", "W+", 0)
	s := g.NodeByName("S+")

	g.MarkNodesToDraw(AroundNodes, []*Node{s}, 4, false)
	if names := drawnNames(g); !sameNames(names, "S+", "X1+", "X2+", "T+", "U+", "V+", "W+") {
		t.Error("MarkNodesToDrawRevisit 1 failed", names)
	}

	g.MarkNodesToDraw(AroundNodes, []*Node{s}, 3, false)
	if names := drawnNames(g); !sameNames(names, "S+", "X1+", "X2+", "T+", "U+", "V+") {
		t.Error("MarkNodesToDrawRevisit 2 failed", names)
	}
}
