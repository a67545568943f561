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
	"github.com/exascience/elgraph/sequence"
)

// NodeID is a handle for a Node in the arena of an AssemblyGraph.
type NodeID int32

// Strand tells whether a Node is the positive or the negative strand
// of a logical node.
type Strand int8

// The strands of a node pair.
const (
	Positive Strand = iota
	Negative
)

// Sign returns '+' for the positive strand, and '-' otherwise.
func (s Strand) Sign() byte {
	if s == Positive {
		return '+'
	}
	return '-'
}

// Opposite returns the other strand.
func (s Strand) Opposite() Strand {
	return 1 - s
}

// ContiguityStatus is the inferred relation of a node to the node on
// which DetermineContiguity was last called. Lower values are
// stronger statements.
type ContiguityStatus int8

// Contiguity statuses, from strongest to weakest.
const (
	Starting ContiguityStatus = iota
	ContiguousStrandSpecific
	ContiguousEitherStrand
	MaybeContiguous
	NotContiguous
)

func (status ContiguityStatus) String() string {
	switch status {
	case Starting:
		return "starting"
	case ContiguousStrandSpecific:
		return "contiguous (strand specific)"
	case ContiguousEitherStrand:
		return "contiguous (either strand)"
	case MaybeContiguous:
		return "maybe contiguous"
	default:
		return "not contiguous"
	}
}

// A Node is one strand of a node pair in an assembly graph. Nodes are
// owned by their AssemblyGraph and must not be used after they have
// been deleted from it.
type Node struct {
	graph      *AssemblyGraph
	id, rc     NodeID
	baseName   string
	strand     Strand
	seq        *sequence.Sequence
	length     int // < 0 => length of seq
	depth      float64
	edges      []EdgeID
	contiguity ContiguityStatus
	drawn      bool
	special    bool
}

// ID returns the arena handle of the node.
func (n *Node) ID() NodeID { return n.id }

// Graph returns the AssemblyGraph that owns the node.
func (n *Node) Graph() *AssemblyGraph { return n.graph }

// BaseName returns the name of the node without strand sign.
func (n *Node) BaseName() string { return n.baseName }

// Name returns the display name of the node, which is the base name
// followed by '+' or '-'.
func (n *Node) Name() string { return n.baseName + string(n.strand.Sign()) }

// Strand returns the strand of the node.
func (n *Node) Strand() Strand { return n.strand }

// IsPositive returns true for nodes on the positive strand.
func (n *Node) IsPositive() bool { return n.strand == Positive }

// IsNegative returns true for nodes on the negative strand.
func (n *Node) IsNegative() bool { return n.strand == Negative }

// ReverseComplement returns the other strand of this node.
func (n *Node) ReverseComplement() *Node { return n.graph.nodes[n.rc] }

// Positive returns this node or its reverse complement, whichever is
// on the positive strand.
func (n *Node) Positive() *Node {
	if n.strand == Positive {
		return n
	}
	return n.ReverseComplement()
}

// Sequence returns the bases of the node.
func (n *Node) Sequence() *sequence.Sequence { return n.seq }

// Length returns the length of the node. This is the length of its
// sequence, unless it was overridden with SetLength.
func (n *Node) Length() int {
	if n.length >= 0 {
		return n.length
	}
	return n.seq.Len()
}

// SetLength overrides the length of the node and its reverse
// complement, for example when the sequence is not known.
func (n *Node) SetLength(length int) {
	n.length = length
	n.ReverseComplement().length = length
}

// Depth returns the read depth (coverage) of the node.
func (n *Node) Depth() float64 { return n.depth }

func (n *Node) setDepthPair(depth float64) {
	n.depth = depth
	n.ReverseComplement().depth = depth
}

// IsDrawn returns true if the node was marked to be drawn.
func (n *Node) IsDrawn() bool { return n.drawn }

// SetAsDrawn marks the node to be drawn.
func (n *Node) SetAsDrawn() { n.drawn = true }

// IsSpecial returns true if the node was one of the starting nodes
// of the last scope marking.
func (n *Node) IsSpecial() bool { return n.special }

// ContiguityStatus returns the status determined by the last
// DetermineContiguity.
func (n *Node) ContiguityStatus() ContiguityStatus { return n.contiguity }

func (n *Node) upgradeContiguityStatus(status ContiguityStatus) {
	if status < n.contiguity {
		n.contiguity = status
	}
}

func (n *Node) addEdge(id EdgeID) {
	for _, e := range n.edges {
		if e == id {
			return
		}
	}
	n.edges = append(n.edges, id)
}

func (n *Node) removeEdge(id EdgeID) {
	for i, e := range n.edges {
		if e == id {
			n.edges = append(n.edges[:i], n.edges[i+1:]...)
			return
		}
	}
}

// Edges returns all edges that start or end at this node, in the
// order in which they were added.
func (n *Node) Edges() []*Edge {
	result := make([]*Edge, len(n.edges))
	for i, id := range n.edges {
		result[i] = n.graph.edges[id]
	}
	return result
}

// EnteringEdges returns the edges that end at this node.
func (n *Node) EnteringEdges() (result []*Edge) {
	for _, id := range n.edges {
		if e := n.graph.edges[id]; e.end == n.id {
			result = append(result, e)
		}
	}
	return
}

// LeavingEdges returns the edges that start at this node.
func (n *Node) LeavingEdges() (result []*Edge) {
	for _, id := range n.edges {
		if e := n.graph.edges[id]; e.start == n.id {
			result = append(result, e)
		}
	}
	return
}

// EdgeTo returns the edge from this node to the given node, or nil.
func (n *Node) EdgeTo(other *Node) *Edge {
	for _, id := range n.edges {
		if e := n.graph.edges[id]; e.start == n.id && e.end == other.id {
			return e
		}
	}
	return nil
}

// EdgeFrom returns the edge from the given node to this node, or nil.
func (n *Node) EdgeFrom(other *Node) *Edge {
	for _, id := range n.edges {
		if e := n.graph.edges[id]; e.start == other.id && e.end == n.id {
			return e
		}
	}
	return nil
}

// DownstreamNodes returns the end nodes of the leaving edges.
func (n *Node) DownstreamNodes() (result []*Node) {
	for _, e := range n.LeavingEdges() {
		result = append(result, e.End())
	}
	return
}

// UpstreamNodes returns the start nodes of the entering edges.
func (n *Node) UpstreamNodes() (result []*Node) {
	for _, e := range n.EnteringEdges() {
		result = append(result, e.Start())
	}
	return
}

// DeadEndCount returns the number of ends of this node (0, 1 or 2)
// that have no edges.
func (n *Node) DeadEndCount() (count int) {
	entering, leaving := false, false
	for _, id := range n.edges {
		e := n.graph.edges[id]
		if e.end == n.id {
			entering = true
		}
		if e.start == n.id {
			leaving = true
		}
	}
	if !entering {
		count++
	}
	if !leaving {
		count++
	}
	return
}

// LengthWithoutTrailingOverlap returns the length of the node minus
// the largest overlap of its leaving edges.
func (n *Node) LengthWithoutTrailingOverlap() int {
	length := n.Length()
	maxOverlap := 0
	for _, e := range n.LeavingEdges() {
		if e.overlap > maxOverlap {
			maxOverlap = e.overlap
		}
	}
	if length -= maxOverlap; length < 0 {
		return 0
	}
	return length
}

// AllConnectedPositiveNodes returns the positive strand of every
// node that shares an edge with this node, without duplicates.
func (n *Node) AllConnectedPositiveNodes() (result []*Node) {
	seen := make(map[NodeID]bool)
	for _, e := range n.Edges() {
		other := e.OtherNode(n).Positive()
		if !seen[other.id] {
			seen[other.id] = true
			result = append(result, other)
		}
	}
	return
}
