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

package search

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/sequence"
)

const chainSequence = "AAAAACCCGGTTTTTAAGGGGGCC"

// chainGraph returns A -> B -> C, each 10 bases long and overlapping
// by 3 bases, spelling chainSequence.
func chainGraph(t *testing.T) *graph.AssemblyGraph {
	g := graph.New()
	for _, node := range [][2]string{{"A", "AAAAACCCGG"}, {"B", "CGGTTTTTAA"}, {"C", "TAAGGGGGCC"}} {
		if _, _, ok := g.AddNodePair(node[0], 1, sequence.FromString(node[1])); !ok {
			t.Fatal("AddNodePair failed")
		}
	}
	if !g.CreateEdge("A+", "B+", 3, graph.ExactOverlap) || !g.CreateEdge("B+", "C+", 3, graph.ExactOverlap) {
		t.Fatal("CreateEdge failed")
	}
	return g
}

func exactHit(q *Query, node *graph.Node, queryStart, queryEnd, nodeStart, nodeEnd int) *Hit {
	hit := &Hit{
		Node:            node,
		PercentIdentity: 100,
		AlignmentLength: queryEnd - queryStart + 1,
		QueryStart:      queryStart,
		QueryEnd:        queryEnd,
		NodeStart:       nodeStart,
		NodeEnd:         nodeEnd,
		EValue:          NewSciNot(1e-5),
		BitScore:        20,
	}
	q.AddHit(hit)
	return hit
}

func TestDetectSequenceType(t *testing.T) {
	if DetectSequenceType([]byte("ACGTACGTRR")) != Nucleotide {
		t.Error("DetectSequenceType 1 failed")
	}
	if DetectSequenceType([]byte("ACGTAECGTRR")) != Protein {
		t.Error("DetectSequenceType 2 failed")
	}
	if DetectSequenceType([]byte("acgtnacgtn")) != Nucleotide {
		t.Error("DetectSequenceType 3 failed")
	}
	if DetectSequenceType([]byte("ACGTRRRR")) != Protein {
		t.Error("DetectSequenceType 4 failed")
	}
	if DetectSequenceType([]byte("MKVq")) != Protein {
		t.Error("DetectSequenceType 5 failed")
	}
	if DetectSequenceType(nil) != Protein || DetectSequenceType([]byte{}) != Protein {
		t.Error("DetectSequenceType 6 failed")
	}
	q := NewQuery("p", sequence.FromString("MKWVTFISLL"))
	if q.Type() != Protein || q.NucleotideLength() != 30 {
		t.Error("protein query failed")
	}
}

func TestFractionCoveredByHits(t *testing.T) {
	g := chainGraph(t)
	q := NewQuery("q", sequence.FromString(strings.Repeat("A", 100)))
	if q.FractionCoveredByHits(nil) != 0 {
		t.Error("FractionCoveredByHits without hits failed")
	}
	a := g.NodeByName("A+")
	exactHit(q, a, 10, 50, 1, 10)
	exactHit(q, a, 40, 80, 1, 10)
	if c := q.FractionCoveredByHits(nil); math.Abs(c-0.71) > 1e-9 {
		t.Error("FractionCoveredByHits 1 failed", c)
	}
	full := NewQuery("full", sequence.FromString(strings.Repeat("A", 100)))
	exactHit(full, a, 1, 100, 1, 10)
	if full.FractionCoveredByHits(nil) != 1 {
		t.Error("FractionCoveredByHits 2 failed")
	}
}

func TestSciNot(t *testing.T) {
	tiny, err := ParseSciNot("2e-300")
	if err != nil {
		t.Fatal(err)
	}
	product := tiny.Mul(tiny)
	if product.Exponent != -600 || math.Abs(product.Mantissa-4) > 1e-9 {
		t.Error("SciNot product failed", product)
	}
	if !product.Less(NewSciNot(1e-10)) || NewSciNot(1e-10).Less(product) {
		t.Error("SciNot Less failed")
	}
	if !(SciNot{}).Less(product) || product.Less(SciNot{}) {
		t.Error("SciNot zero failed")
	}
	small, _ := ParseSciNot("0.004")
	if small.Exponent != -3 || math.Abs(small.Mantissa-4) > 1e-9 {
		t.Error("ParseSciNot failed", small)
	}
	if small.String() != "4e-3" {
		t.Error("SciNot String failed", small.String())
	}
	if _, err := ParseSciNot("e-5x"); err == nil {
		t.Error("invalid SciNot accepted")
	}
}

func chainQuery(t *testing.T, g *graph.AssemblyGraph) *Query {
	q := NewQuery("q", sequence.FromString(chainSequence))
	exactHit(q, g.NodeByName("A+"), 1, 10, 1, 10)
	exactHit(q, g.NodeByName("B+"), 8, 17, 1, 10)
	exactHit(q, g.NodeByName("C+"), 15, 24, 1, 10)
	return q
}

func TestFindQueryPaths(t *testing.T) {
	g := chainGraph(t)
	q := chainQuery(t, g)
	paths, err := q.FindQueryPaths(context.Background(), g, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 {
		t.Fatal("FindQueryPaths found", len(paths), "paths")
	}
	qp := paths[0]
	if qp.Path().String() != "A+, B+, C+" || qp.Path().Sequence().String() != chainSequence {
		t.Error("query path failed", qp.Path().String())
	}
	if len(qp.Hits()) != 3 {
		t.Error("query path hits failed", len(qp.Hits()))
	}
	if qp.PathQueryCoverage() != 1 || qp.HitsQueryCoverage() != 1 {
		t.Error("query path coverage failed")
	}
	if qp.HitQueryLength() != 24 || qp.RelativePathLength() != 1 || qp.AbsolutePathLengthDifference() != 0 {
		t.Error("query path length failed")
	}
	if qp.MeanHitIdentity() != 100 || qp.EValueProduct().Exponent != -15 {
		t.Error("query path identity or e-value failed")
	}
	if q.State() != PathsReconstructed || q.IsStale(g) {
		t.Error("query state failed")
	}
	g.ChangeNodeDepth([]*graph.Node{g.NodeByName("A+")}, 3)
	if !q.IsStale(g) {
		t.Error("query not stale after graph change")
	}

	settings := DefaultSettings()
	settings.MaxHitsForQueryPath = 2
	if paths, _ := q.FindQueryPaths(context.Background(), g, settings); len(paths) != 0 {
		t.Error("too many hits not rejected")
	}

	settings = DefaultSettings()
	settings.MaxQueryPathNodes = 2
	if paths, _ := q.FindQueryPaths(context.Background(), g, settings); len(paths) != 0 {
		t.Error("path with too many nodes found")
	}

	settings = DefaultSettings()
	settings.MaxEValueProduct.Value = 1e-20
	if paths, _ := q.FindQueryPaths(context.Background(), g, settings); len(paths) != 0 {
		t.Error("e-value product filter failed")
	}
	settings.MaxEValueProduct.On = false
	if paths, _ := q.FindQueryPaths(context.Background(), g, settings); len(paths) != 1 {
		t.Error("disabled e-value product filter failed")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := q.FindQueryPaths(cancelled, g, DefaultSettings()); err == nil {
		t.Error("cancelled FindQueryPaths did not fail")
	}
}

func TestLengthBounds(t *testing.T) {
	settings := DefaultSettings()
	if minLength, maxLength := lengthBounds(1000, settings); minLength != 950 || maxLength != 1050 {
		t.Error("lengthBounds 1 failed", minLength, maxLength)
	}
	if minLength, maxLength := lengthBounds(10000, settings); minLength != 9900 || maxLength != 10100 {
		t.Error("lengthBounds 2 failed", minLength, maxLength)
	}
	settings.MinLengthPercentage.On = false
	settings.MinLengthBaseDiscrepancy.On = false
	settings.MaxLengthPercentage.On = false
	settings.MaxLengthBaseDiscrepancy.On = false
	if minLength, maxLength := lengthBounds(1000, settings); minLength != 1 || maxLength != math.MaxInt {
		t.Error("lengthBounds 3 failed", minLength, maxLength)
	}
}

func TestQueryPathLess(t *testing.T) {
	g := chainGraph(t)
	q := chainQuery(t, g)
	abc := graph.PathFromOrderedNodes([]*graph.Node{g.NodeByName("A+"), g.NodeByName("B+"), g.NodeByName("C+")}, false)
	ab := graph.PathFromOrderedNodes([]*graph.Node{g.NodeByName("A+"), g.NodeByName("B+")}, false)
	long, short := NewQueryPath(abc, q), NewQueryPath(ab, q)
	if len(short.Hits()) != 2 {
		t.Error("NewQueryPath failed", len(short.Hits()))
	}
	if !long.Less(short) || short.Less(long) {
		t.Error("Less failed")
	}
}

func TestWriteQueryPaths(t *testing.T) {
	g := chainGraph(t)
	queries := NewQueries()
	q := queries.AddQuery("q", sequence.FromString(chainSequence))
	exactHit(q, g.NodeByName("A+"), 1, 10, 1, 10)
	exactHit(q, g.NodeByName("B+"), 8, 17, 1, 10)
	exactHit(q, g.NodeByName("C+"), 15, 24, 1, 10)
	queries.AddQuery("unmatched", sequence.FromString("GATTACA"))
	if err := queries.FindAllQueryPaths(context.Background(), g, DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if err := WriteQueryPaths(&buf, queries); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 || lines[0] != QueryPathColumns {
		t.Fatal("WriteQueryPaths lines failed", lines)
	}
	fields := strings.Split(lines[1], "\t")
	if len(fields) != 12 || fields[0] != "q" || fields[1] != "1" || fields[2] != "A+, B+, C+" || fields[3] != "24" {
		t.Error("WriteQueryPaths row failed", fields)
	}
	if fields[4] != "1.0000" || fields[6] != "100.00" || fields[9] != "0" {
		t.Error("WriteQueryPaths metrics failed", fields)
	}
}
