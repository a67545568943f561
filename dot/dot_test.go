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

package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/sequence"
)

func chainGraph(t *testing.T) *graph.AssemblyGraph {
	g := graph.New()
	for _, node := range []struct{ name, bases string }{
		{"A", "AAAAACCCGG"},
		{"B", "CGGTTTTTAA"},
		{"C", "TAAGGGGGCC"},
	} {
		if _, _, ok := g.AddNodePair(node.name, 2, sequence.FromString(node.bases)); !ok {
			t.Fatal("AddNodePair failed")
		}
	}
	if !g.CreateEdge("A+", "B+", 3, graph.ExactOverlap) || !g.CreateEdge("B+", "C+", 3, graph.ExactOverlap) {
		t.Fatal("CreateEdge failed")
	}
	return g
}

func TestGraphSingleMode(t *testing.T) {
	g := chainGraph(t)
	g.MarkNodesToDraw(graph.WholeGraph, nil, 0, false)
	gv, err := Graph(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if gv.Directed {
		t.Error("Graph single mode directed")
	}
	if len(gv.Nodes.Nodes) != 3 || len(gv.Edges.Edges) != 2 {
		t.Fatal("Graph single mode counts failed", len(gv.Nodes.Nodes), len(gv.Edges.Edges))
	}
	for _, name := range []string{`"A"`, `"B"`, `"C"`} {
		if gv.Nodes.Lookup[name] == nil {
			t.Error("Graph single mode missing node", name)
		}
	}
	var buf bytes.Buffer
	if err := Write(&buf, g, Options{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"A"--"B"`) {
		t.Error("Write single mode failed")
	}
}

func TestGraphDoubleMode(t *testing.T) {
	g := chainGraph(t)
	a, b := g.NodeByName("A+"), g.NodeByName("B+")
	g.MarkNodesToDraw(graph.AroundNodes, []*graph.Node{a}, 1, true)
	gv, err := Graph(g, Options{DoubleMode: true, Highlight: []*graph.Node{b}})
	if err != nil {
		t.Fatal(err)
	}
	if !gv.Directed {
		t.Error("Graph double mode undirected")
	}
	if len(gv.Nodes.Nodes) != 2 || len(gv.Edges.Edges) != 1 {
		t.Fatal("Graph double mode counts failed", len(gv.Nodes.Nodes), len(gv.Edges.Edges))
	}
	nodeA, nodeB := gv.Nodes.Lookup[`"A+"`], gv.Nodes.Lookup[`"B+"`]
	if nodeA == nil || nodeB == nil {
		t.Fatal("Graph double mode nodes failed")
	}
	if nodeA.Attrs["style"] != "bold" {
		t.Error("Graph double mode special failed")
	}
	if nodeB.Attrs["style"] != "filled" || nodeB.Attrs["fillcolor"] != "gold" {
		t.Error("Graph double mode highlight failed")
	}
	if e := gv.Edges.Edges[0]; e.Src != `"A+"` || e.Dst != `"B+"` || e.Attrs["label"] != `"3"` {
		t.Error("Graph double mode edge failed")
	}
}
