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
	"context"
	"testing"
)

func nodesByName(g *AssemblyGraph, names ...string) (nodes []*Node) {
	for _, name := range names {
		nodes = append(nodes, g.NodeByName(name))
	}
	return
}

func TestPathSequence(t *testing.T) {
	g := chainGraph(t)
	p := PathFromOrderedNodes(nodesByName(g, "A+", "B+", "C+"), false)
	if p.IsEmpty() || p.IsCircular() {
		t.Fatal("PathFromOrderedNodes failed")
	}
	if seq := p.Sequence().String(); seq != "AAAAACCCGGTTTTTAAGGGGGCC" {
		t.Error("Sequence failed", seq)
	}
	if p.Length() != 24 {
		t.Error("Length failed", p.Length())
	}
	if p.String() != "A+, B+, C+" {
		t.Error("String failed", p.String())
	}

	again := PathFromOrderedNodes(p.Nodes(), false)
	if !again.Equal(p) || again.Sequence().String() != p.Sequence().String() {
		t.Error("ordered nodes round trip failed")
	}

	rc := PathFromOrderedNodes(nodesByName(g, "C-", "B-", "A-"), false)
	if rc.Sequence().String() != p.Sequence().ReverseComplement().String() {
		t.Error("reverse complement path sequence failed", rc.Sequence().String())
	}

	if !PathFromOrderedNodes(nodesByName(g, "A+", "C+"), false).IsEmpty() {
		t.Error("unconnected nodes formed a path")
	}
	if !PathFromOrderedNodes(nodesByName(g, "A+", "B+"), true).IsEmpty() {
		t.Error("linear nodes formed a circular path")
	}
}

func TestPathSequenceOverlaps(t *testing.T) {
	g := New()
	addTestNode(t, g, "X", "ACGT", 1)
	addTestNode(t, g, "Y", "TTGG", 1)
	addTestEdge(t, g, "X+", "Y+", -2)
	if seq := PathFromOrderedNodes(nodesByName(g, "X+", "Y+"), false).Sequence().String(); seq != "ACGTNNTTGG" {
		t.Error("negative overlap failed", seq)
	}

	g = New()
	addTestNode(t, g, "A", "ACGTAC", 1)
	addTestNode(t, g, "B", "ACGGAC", 1)
	addTestEdge(t, g, "A+", "B+", 2)
	addTestEdge(t, g, "B+", "A+", 2)
	circular := PathFromOrderedNodes(nodesByName(g, "A+", "B+"), true)
	if !circular.IsCircular() {
		t.Fatal("circular path failed")
	}
	if seq := circular.Sequence().String(); seq != "GTACGGAC" {
		t.Error("circular sequence failed", seq)
	}
	if circular.Length() != 8 {
		t.Error("circular length failed", circular.Length())
	}

	g = New()
	g.AddNodePair("M", 1, nil)
	g.NodeByName("M+").SetLength(5)
	addTestNode(t, g, "N", "ACGTA", 1)
	addTestEdge(t, g, "M+", "N+", 0)
	p := PathFromOrderedNodes(nodesByName(g, "M+", "N+"), false)
	if !p.Sequence().IsMissing() || p.Length() != 10 {
		t.Error("missing sequence failed")
	}
}

func TestPathFromString(t *testing.T) {
	g := chainGraph(t)
	p, err := PathFromString("(3) A+, B+, C+ (5)", g, false)
	if err != nil {
		t.Fatal(err)
	}
	if p.Length() != 17 {
		t.Error("PathFromString length failed", p.Length())
	}
	if seq := p.Sequence().String(); seq != "AAACCCGGTTTTTAAGG" {
		t.Error("PathFromString sequence failed", seq)
	}
	if p.String() != "(3) A+, B+, C+ (5)" {
		t.Error("PathFromString round trip failed", p.String())
	}
	if q, err := PathFromString(p.String(), g, false); err != nil || !q.Equal(p) {
		t.Error("String does not parse back to the same path")
	}
	if q, err := PathFromString("A+,B+", g, false); err != nil || q.String() != "A+, B+" {
		t.Error("PathFromString without spaces failed")
	}

	failures := []struct {
		text     string
		circular bool
		message  string
	}{
		{"A", false, "the text is not formatted correctly"},
		{"(2) A+", true, "circular paths cannot contain start or end positions"},
		{"A+, Z+, Y-", false, "the following nodes are not in the graph: Z+, Y-"},
		{"A+, C+", false, "the nodes do not form a path"},
		{"A+, B+", true, "the nodes do not form a circular path"},
		{"(5) A+ (3)", false, "the end position must be greater than or equal to the start position"},
	}
	for _, failure := range failures {
		q, err := PathFromString(failure.text, g, failure.circular)
		if err == nil || err.Error() != failure.message || !q.IsEmpty() {
			t.Errorf("PathFromString %q failed: %v", failure.text, err)
		}
	}
	if _, err := PathFromString("(11) A+", g, false); err == nil {
		t.Error("out-of-range start position accepted")
	}
	if _, err := PathFromString("A+ (0)", g, false); err == nil {
		t.Error("out-of-range end position accepted")
	}
}

func TestPathFromUnorderedNodes(t *testing.T) {
	g := chainGraph(t)
	p := PathFromUnorderedNodes(nodesByName(g, "C+", "A+", "B+"), true)
	if p.String() != "A+, B+, C+" {
		t.Error("PathFromUnorderedNodes 1 failed", p.String())
	}
	p = PathFromUnorderedNodes(nodesByName(g, "C-", "A+", "B+"), false)
	if p.String() != "C-, B-, A-" {
		t.Error("PathFromUnorderedNodes 2 failed", p.String())
	}
	if !PathFromUnorderedNodes(nodesByName(g, "C-", "A+", "B+"), true).IsEmpty() {
		t.Error("PathFromUnorderedNodes 3 failed")
	}
	if !PathFromUnorderedNodes(nodesByName(g, "A+", "C+"), true).IsEmpty() {
		t.Error("PathFromUnorderedNodes 4 failed")
	}

	addTestEdge(t, g, "C+", "A+", 0)
	p = PathFromUnorderedNodes(nodesByName(g, "B+", "C+", "A+"), true)
	if !p.IsCircular() || len(p.Nodes()) != 3 {
		t.Error("PathFromUnorderedNodes 5 failed", p.String())
	}

	g = chainGraph(t)
	addTestEdge(t, g, "A+", "C+", 0)
	if !PathFromUnorderedNodes(nodesByName(g, "A+", "B+", "C+"), true).IsEmpty() {
		t.Error("path with an unused connecting edge accepted")
	}
}

func TestAddNode(t *testing.T) {
	g := New()
	addTestNode(t, g, "L", "ACGT", 1)
	addTestEdge(t, g, "L+", "L+", 0)
	var p Path
	if !p.AddNode(g.NodeByName("L+"), true, true) || !p.IsCircular() {
		t.Error("self loop did not form a circular path")
	}
	if p.AddNode(g.NodeByName("L-"), false, true) {
		t.Error("node added to a circular path")
	}

	g = chainGraph(t)
	p = Path{}
	p.AddNode(g.NodeByName("B+"), true, false)
	if !p.AddNode(g.NodeByName("A+"), true, false) || p.Nodes()[0] != g.NodeByName("A+") {
		t.Error("AddNode at the front failed")
	}
	if !p.AddNode(g.NodeByName("C-"), false, false) || p.Nodes()[2] != g.NodeByName("C+") {
		t.Error("AddNode of reverse complement at the end failed")
	}

	g = New()
	addTestNode(t, g, "A", "ACGTAC", 1)
	addTestNode(t, g, "N", "GGATCC", 1)
	addTestEdge(t, g, "A+", "N+", 0)
	addTestEdge(t, g, "N+", "A+", 0)
	p = Path{}
	p.AddNode(g.NodeByName("A+"), true, false)
	if !p.AddNode(g.NodeByName("N+"), false, true) || !p.IsCircular() || p.String() != "A+, N+" {
		t.Error("AddNode circular close failed", p.String())
	}

	addTestEdge(t, g, "N-", "A+", 0)
	p = Path{}
	p.AddNode(g.NodeByName("A+"), true, false)
	if p.AddNode(g.NodeByName("N+"), false, true) {
		t.Error("ambiguous circular close accepted", p.String())
	}
	if len(p.Nodes()) != 1 || p.IsCircular() {
		t.Error("ambiguous circular close changed the path")
	}
	if !p.AddNode(g.NodeByName("N+"), true, true) || !p.IsCircular() {
		t.Error("strand specific circular close failed")
	}
}

func TestHasNodeSubset(t *testing.T) {
	g := chainGraph(t)
	abc := PathFromOrderedNodes(nodesByName(g, "A+", "B+", "C+"), false)
	ab := PathFromOrderedNodes(nodesByName(g, "A+", "B+"), false)
	bc := PathFromOrderedNodes(nodesByName(g, "B+", "C+"), false)
	if !ab.HasNodeSubset(abc) || !bc.HasNodeSubset(abc) {
		t.Error("HasNodeSubset 1 failed")
	}
	if abc.HasNodeSubset(ab) || abc.HasNodeSubset(abc) {
		t.Error("HasNodeSubset 2 failed")
	}
	if ab.HasNodeSubset(bc) {
		t.Error("HasNodeSubset 3 failed")
	}
	if !abc.ContainsNode(g.NodeByName("B+")) || abc.ContainsNode(g.NodeByName("B-")) {
		t.Error("ContainsNode failed")
	}
}

func TestAllPossiblePaths(t *testing.T) {
	g := chainGraph(t)
	a, c := g.NodeByName("A+"), g.NodeByName("C+")
	ctx := context.Background()

	paths, err := AllPossiblePaths(ctx, NewLocation(a, 2), NewLocation(a, 8), 0, 1, 100)
	if err != nil || len(paths) != 1 || paths[0].Length() != 7 {
		t.Error("AllPossiblePaths 1 failed")
	}
	paths, _ = AllPossiblePaths(ctx, NewLocation(a, 2), NewLocation(a, 8), 0, 1, 5)
	if len(paths) != 0 {
		t.Error("AllPossiblePaths 2 failed")
	}

	paths, _ = AllPossiblePaths(ctx, StartOf(a), EndOf(c), 2, 1, 100)
	if len(paths) != 1 || paths[0].Length() != 24 || paths[0].String() != "A+, B+, C+" {
		t.Error("AllPossiblePaths 3 failed")
	}
	paths, _ = AllPossiblePaths(ctx, StartOf(a), EndOf(c), 1, 1, 100)
	if len(paths) != 0 {
		t.Error("AllPossiblePaths 4 failed")
	}
	paths, _ = AllPossiblePaths(ctx, StartOf(a), EndOf(c), 2, 1, 23)
	if len(paths) != 0 {
		t.Error("AllPossiblePaths 5 failed")
	}

	addTestEdge(t, g, "C+", "A+", 0)
	paths, _ = AllPossiblePaths(ctx, StartOf(a), NewLocation(a, 5), 3, 1, 1000)
	if len(paths) != 2 {
		t.Error("AllPossiblePaths 6 failed", len(paths))
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := AllPossiblePaths(cancelled, StartOf(a), EndOf(c), 2, 1, 100); err == nil {
		t.Error("cancelled AllPossiblePaths did not fail")
	}
}
