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
	"math"
	"testing"
)

func TestAutoDetermineAllEdgesExactOverlap(t *testing.T) {
	g := New()
	addTestNode(t, g, "A", "GGGGGACGT", 1)
	addTestNode(t, g, "B", "ACGTTTTTT", 1)
	addTestNode(t, g, "Z", "ACGTCCCCCC", 1)
	addTestNode(t, g, "X", "TTTTACACAC", 1)
	addTestNode(t, g, "Y", "ACACACGGGG", 1)
	g.CreateEdge("A+", "B+", 0, UnknownOverlap)
	g.CreateEdge("A+", "Z+", 0, UnknownOverlap)
	g.CreateEdge("X+", "Y+", 0, UnknownOverlap)

	xy := g.Edge(g.NodeByName("X+"), g.NodeByName("Y+"))
	xy.AutoDetermineExactOverlap(1, 10)
	if xy.Overlap() != 6 {
		t.Error("AutoDetermineExactOverlap failed", xy.Overlap())
	}

	g.AutoDetermineAllEdgesExactOverlap(1, 10)
	for _, e := range g.Edges() {
		if e.Overlap() != 4 || e.OverlapType() != AutoDeterminedExactOverlap {
			t.Errorf("edge %v -> %v has overlap %v", e.Start().Name(), e.End().Name(), e.Overlap())
		}
	}
	if !xy.TestExactOverlap(6) || xy.TestExactOverlap(7) {
		t.Error("TestExactOverlap failed")
	}

	g.AutoDetermineAllEdgesExactOverlap(1, math.MaxInt32)
	for _, e := range g.Edges() {
		if e.Overlap() != 4 {
			t.Error("unbounded AutoDetermineAllEdgesExactOverlap failed", e.Overlap())
		}
	}
	g.AutoDetermineAllEdgesExactOverlap(20, math.MaxInt32)
	for _, e := range g.Edges() {
		if e.Overlap() != 0 {
			t.Error("AutoDetermineAllEdgesExactOverlap above node length failed", e.Overlap())
		}
	}
}

func TestDetermineContiguity(t *testing.T) {
	g := New()
	for _, name := range []string{"A", "B", "C", "E", "Y"} {
		addTestNode(t, g, name, "ACGTACGT", 1)
	}
	addTestEdge(t, g, "A+", "B+", 0)
	addTestEdge(t, g, "E+", "B+", 0)
	addTestEdge(t, g, "B+", "C+", 0)
	addTestEdge(t, g, "B+", "Y+", 0)

	if err := g.DetermineContiguity(context.Background(), nodesByName(g, "C+"), DefaultContiguitySteps); err != nil {
		t.Fatal(err)
	}
	expected := map[string]ContiguityStatus{
		"C+": Starting,
		"B+": ContiguousStrandSpecific,
		"B-": ContiguousEitherStrand,
		"A+": MaybeContiguous,
		"E+": MaybeContiguous,
		"Y+": NotContiguous,
		"C-": NotContiguous,
	}
	for name, status := range expected {
		if got := g.NodeByName(name).ContiguityStatus(); got != status {
			t.Errorf("contiguity of %v is %v, expected %v", name, got, status)
		}
	}

	g = chainGraph(t)
	if err := g.DetermineContiguity(context.Background(), nodesByName(g, "A+"), DefaultContiguitySteps); err != nil {
		t.Fatal(err)
	}
	if g.NodeByName("C+").ContiguityStatus() != ContiguousStrandSpecific ||
		g.NodeByName("C-").ContiguityStatus() != ContiguousEitherStrand ||
		g.NodeByName("A-").ContiguityStatus() != NotContiguous {
		t.Error("chain contiguity failed")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.DetermineContiguity(cancelled, nodesByName(g, "A+"), DefaultContiguitySteps); err == nil {
		t.Error("cancelled DetermineContiguity did not fail")
	}
}
