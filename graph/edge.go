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

// EdgeID is a handle for an Edge in the arena of an AssemblyGraph.
type EdgeID int32

// OverlapType tells how the overlap of an edge was established.
type OverlapType int8

// Edge overlap types.
const (
	UnknownOverlap OverlapType = iota
	ExactOverlap
	AutoDeterminedExactOverlap
	JumpOverlap
	ExtraLinkOverlap
)

// Overlaps are stored in a signed 29-bit range.
const (
	OverlapBits = 29
	MaxOverlap  = 1<<(OverlapBits-1) - 1
	MinOverlap  = -(1 << (OverlapBits - 1))
)

// ValidOverlap returns true if the given overlap can be represented.
func ValidOverlap(overlap int) bool {
	return overlap >= MinOverlap && overlap <= MaxOverlap
}

// An Edge is a directed, strand-specific connection between two
// nodes. Every edge has a reverse complement edge, which may be the
// edge itself.
type Edge struct {
	graph       *AssemblyGraph
	id, rc      EdgeID
	start, end  NodeID
	overlap     int
	overlapType OverlapType
	drawn       bool
}

// ID returns the arena handle of the edge.
func (e *Edge) ID() EdgeID { return e.id }

// Start returns the node the edge leaves from.
func (e *Edge) Start() *Node { return e.graph.nodes[e.start] }

// End returns the node the edge goes to.
func (e *Edge) End() *Node { return e.graph.nodes[e.end] }

// ReverseComplement returns the complementary edge.
func (e *Edge) ReverseComplement() *Edge { return e.graph.edges[e.rc] }

// IsOwnReverseComplement returns true for edges that connect a node
// to its own reverse complement.
func (e *Edge) IsOwnReverseComplement() bool { return e.rc == e.id }

// Overlap returns the number of bases shared by the end of the
// starting node and the beginning of the ending node.
func (e *Edge) Overlap() int { return e.overlap }

// OverlapType returns how the overlap was established.
func (e *Edge) OverlapType() OverlapType { return e.overlapType }

// IsDrawn returns the drawn status determined by the last
// MarkNodesToDraw.
func (e *Edge) IsDrawn() bool { return e.drawn }

func (e *Edge) setOverlapPair(overlap int, overlapType OverlapType) {
	e.overlap, e.overlapType = overlap, overlapType
	rc := e.ReverseComplement()
	rc.overlap, rc.overlapType = overlap, overlapType
}

// OtherNode returns the end node if n is the start node, and the
// start node otherwise.
func (e *Edge) OtherNode(n *Node) *Node {
	if e.start == n.id {
		return e.End()
	}
	return e.Start()
}

// IsPositive deterministically selects one edge of each
// complementary pair. Edges with more positive nodes win, ties are
// broken on the edge handle.
func (e *Edge) IsPositive() bool {
	rc := e.ReverseComplement()
	if rc == e {
		return true
	}
	count := e.positiveNodeCount()
	rcCount := rc.positiveNodeCount()
	if count != rcCount {
		return count > rcCount
	}
	return e.id < rc.id
}

func (e *Edge) positiveNodeCount() (count int) {
	if e.Start().IsPositive() {
		count++
	}
	if e.End().IsPositive() {
		count++
	}
	return
}

// TestExactOverlap returns true if the last overlap bases of the
// starting node equal the first overlap bases of the ending node.
func (e *Edge) TestExactOverlap(overlap int) bool {
	start, end := e.Start().Sequence(), e.End().Sequence()
	if start.IsMissing() || end.IsMissing() || overlap < 0 ||
		overlap > start.Len() || overlap > end.Len() {
		return false
	}
	offset := start.Len() - overlap
	for i := 0; i < overlap; i++ {
		if start.At(offset+i) != end.At(i) {
			return false
		}
	}
	return true
}

// AutoDetermineExactOverlap sets the overlap of the edge to the
// largest overlap in [minOverlap, maxOverlap] that matches exactly,
// or to 0 if none does.
func (e *Edge) AutoDetermineExactOverlap(minOverlap, maxOverlap int) {
	e.overlap = 0
	e.overlapType = AutoDeterminedExactOverlap
	if l := e.Start().Length(); l < maxOverlap {
		maxOverlap = l
	}
	if l := e.End().Length(); l < maxOverlap {
		maxOverlap = l
	}
	for overlap := maxOverlap; overlap >= minOverlap; overlap-- {
		if e.TestExactOverlap(overlap) {
			e.overlap = overlap
			return
		}
	}
}

// determineIfDrawn requires the node drawn flags to be final.
func (e *Edge) determineIfDrawn(doubleMode bool) {
	start, end := e.Start(), e.End()
	if doubleMode {
		e.drawn = start.drawn && end.drawn
		return
	}
	e.drawn = (start.drawn || start.ReverseComplement().drawn) &&
		(end.drawn || end.ReverseComplement().drawn) &&
		e.IsPositive()
}
