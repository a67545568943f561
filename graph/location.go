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

// A Location is a 1-based position on a node. The zero Location is
// the null location.
type Location struct {
	node     *Node
	position int
}

// NewLocation returns the location at the given 1-based position of
// a node.
func NewLocation(node *Node, position int) Location {
	return Location{node: node, position: position}
}

// StartOf returns the location of the first base of a node.
func StartOf(node *Node) Location {
	return Location{node: node, position: 1}
}

// EndOf returns the location of the last base of a node.
func EndOf(node *Node) Location {
	return Location{node: node, position: node.Length()}
}

// Node returns the node of the location, or nil for the null
// location.
func (l Location) Node() *Node { return l.node }

// Position returns the 1-based position of the location.
func (l Location) Position() int { return l.position }

// IsNull returns true if the location does not refer to a node.
func (l Location) IsNull() bool { return l.node == nil }

// IsValid returns true if the location refers to a position within
// its node.
func (l Location) IsValid() bool {
	return l.node != nil && l.position >= 1 && l.position <= l.node.Length()
}

// IsAtStartOfNode returns true for the first base of a node.
func (l Location) IsAtStartOfNode() bool {
	return l.node != nil && l.position == 1
}

// IsAtEndOfNode returns true for the last base of a node.
func (l Location) IsAtEndOfNode() bool {
	return l.node != nil && l.position == l.node.Length()
}

// ReverseComplement returns the equivalent location on the other
// strand.
func (l Location) ReverseComplement() Location {
	if l.node == nil {
		return l
	}
	return Location{
		node:     l.node.ReverseComplement(),
		position: l.node.Length() - l.position + 1,
	}
}

// Base returns the base at the location, or 0 if the location is not
// valid or the sequence is missing.
func (l Location) Base() byte {
	if !l.IsValid() || l.node.Sequence().IsMissing() || l.position > l.node.Sequence().Len() {
		return 0
	}
	return l.node.Sequence().At(l.position - 1)
}

// Equal returns true if both locations refer to the same position on
// the same node.
func (l Location) Equal(other Location) bool {
	return l.node == other.node && l.position == other.position
}
