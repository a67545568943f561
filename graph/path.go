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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/exascience/elgraph/sequence"
)

// A Path is a walk through the graph. Consecutive nodes are
// connected by the edge at the same index. A circular path has one
// more edge, from the last node back to the first, and always starts
// and ends at node boundaries. The zero Path is the empty path.
type Path struct {
	nodes      []*Node
	edges      []*Edge
	start, end Location
}

// IsEmpty returns true for the path without nodes.
func (p Path) IsEmpty() bool { return len(p.nodes) == 0 }

// IsCircular returns true if the last node of the path connects back
// to the first.
func (p Path) IsCircular() bool {
	return len(p.nodes) > 0 && len(p.edges) == len(p.nodes)
}

// Nodes returns the nodes of the path. The slice must not be
// modified.
func (p Path) Nodes() []*Node { return p.nodes }

// Edges returns the edges of the path. The slice must not be
// modified.
func (p Path) Edges() []*Edge { return p.edges }

// StartLocation returns where the path begins on its first node.
func (p Path) StartLocation() Location { return p.start }

// EndLocation returns where the path ends on its last node.
func (p Path) EndLocation() Location { return p.end }

func (p Path) clone() Path {
	return Path{
		nodes: append([]*Node(nil), p.nodes...),
		edges: append([]*Edge(nil), p.edges...),
		start: p.start,
		end:   p.end,
	}
}

// PathFromOrderedNodes returns the path through the given nodes in
// order. Consecutive nodes must be connected by an edge, and for a
// circular path the last node must be connected to the first.
// Otherwise the empty path is returned.
func PathFromOrderedNodes(nodes []*Node, circular bool) Path {
	if len(nodes) == 0 {
		return Path{}
	}
	p := Path{nodes: append([]*Node(nil), nodes...)}
	for i := 0; i < len(nodes)-1; i++ {
		e := nodes[i].EdgeTo(nodes[i+1])
		if e == nil {
			return Path{}
		}
		p.edges = append(p.edges, e)
	}
	if circular {
		e := nodes[len(nodes)-1].EdgeTo(nodes[0])
		if e == nil {
			return Path{}
		}
		p.edges = append(p.edges, e)
	}
	p.start = StartOf(nodes[0])
	p.end = EndOf(nodes[len(nodes)-1])
	return p
}

// PathFromUnorderedNodes tries to find the one order of the given
// nodes that forms a path. Unless strandSpecific is true, nodes may
// be replaced by their reverse complement. The empty path is returned
// if the nodes do not form an unambiguous path, or if the nodes are
// connected by edges that the path does not use.
func PathFromUnorderedNodes(nodes []*Node, strandSpecific bool) Path {
	if len(nodes) == 0 {
		return Path{}
	}
	var p Path
	p.AddNode(nodes[0], strandSpecific, true)
	remaining := append([]*Node(nil), nodes[1:]...)
	for len(remaining) > 0 {
		var left []*Node
		for _, n := range remaining {
			if !p.AddNode(n, strandSpecific, true) {
				left = append(left, n)
			}
		}
		if len(left) == len(remaining) {
			return Path{}
		}
		remaining = left
	}

	inPath := make(map[NodeID]bool, len(p.nodes))
	for _, n := range p.nodes {
		inPath[n.id] = true
	}
	connecting := make(map[EdgeID]bool)
	for _, n := range p.nodes {
		for _, e := range n.Edges() {
			if inPath[e.start] && inPath[e.end] {
				connecting[e.id] = true
			}
		}
	}
	if len(connecting) > len(p.edges) {
		return Path{}
	}
	return p
}

var pathRegexp = regexp.MustCompile(`^(?:\(([0-9]+)\) ?)*((?:[^,]+[-\+], ?)*[^,]+[-\+])(?: ?\(([0-9]+)\))*$`)

// PathFromString parses a path in the format produced by Path.String,
// for example "(5) 1+, 2-, 3+ (10)". The optional numbers give the
// start position on the first node and the end position on the last
// node.
func PathFromString(text string, g *AssemblyGraph, circular bool) (Path, error) {
	m := pathRegexp.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Path{}, errors.New("the text is not formatted correctly")
	}
	startText, namesText, endText := m[1], m[2], m[3]
	if circular && (startText != "" || endText != "") {
		return Path{}, errors.New("circular paths cannot contain start or end positions")
	}

	var nodes []*Node
	var missing []string
	for _, name := range strings.Split(namesText, ",") {
		name = strings.TrimSpace(name)
		if n := g.NodeByName(name); n != nil {
			nodes = append(nodes, n)
		} else {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return Path{}, fmt.Errorf("the following nodes are not in the graph: %v", strings.Join(missing, ", "))
	}

	p := PathFromOrderedNodes(nodes, circular)
	if p.IsEmpty() {
		if circular {
			return Path{}, errors.New("the nodes do not form a circular path")
		}
		return Path{}, errors.New("the nodes do not form a path")
	}

	if startText != "" {
		first := nodes[0]
		position, err := strconv.Atoi(startText)
		if err != nil || position < 1 || position > first.Length() {
			return Path{}, fmt.Errorf("the start position must be between 1 and %v, the length of node %v", first.Length(), first.Name())
		}
		p.start = NewLocation(first, position)
	}
	if endText != "" {
		last := nodes[len(nodes)-1]
		position, err := strconv.Atoi(endText)
		if err != nil || position < 1 || position > last.Length() {
			return Path{}, fmt.Errorf("the end position must be between 1 and %v, the length of node %v", last.Length(), last.Name())
		}
		p.end = NewLocation(last, position)
	}
	if len(nodes) == 1 && p.end.position < p.start.position {
		return Path{}, errors.New("the end position must be greater than or equal to the start position")
	}
	return p, nil
}

// AddNode tries to extend the path with the given node at either end.
// Unless strandSpecific is true, the reverse complement of the node
// may be added instead. If makeCircular is true and the node closes
// the path into a cycle, it is added in between the current end and
// start. The node is only added if there is exactly one way to do so.
func (p *Path) AddNode(node *Node, strandSpecific, makeCircular bool) bool {
	if p.IsEmpty() {
		p.nodes = []*Node{node}
		p.start, p.end = StartOf(node), EndOf(node)
		if makeCircular {
			if loop := node.EdgeTo(node); loop != nil {
				p.edges = []*Edge{loop}
			}
		}
		return true
	}
	if p.IsCircular() {
		return false
	}

	first, last := p.nodes[0], p.nodes[len(p.nodes)-1]
	rc := node.ReverseComplement()
	edgeIntoFront := node.EdgeTo(first)
	edgeAwayFromEnd := last.EdgeTo(node)
	var rcEdgeIntoFront, rcEdgeAwayFromEnd *Edge
	if !strandSpecific {
		rcEdgeIntoFront = rc.EdgeTo(first)
		rcEdgeAwayFromEnd = last.EdgeTo(rc)
	}

	// Closing requires both edges of one strand and no edge at all of
	// the other strand.
	if makeCircular {
		forwardCloses := edgeIntoFront != nil && edgeAwayFromEnd != nil &&
			rcEdgeIntoFront == nil && rcEdgeAwayFromEnd == nil
		rcCloses := rcEdgeIntoFront != nil && rcEdgeAwayFromEnd != nil &&
			edgeIntoFront == nil && edgeAwayFromEnd == nil
		switch {
		case forwardCloses:
			p.nodes = append(p.nodes, node)
			p.edges = append(p.edges, edgeAwayFromEnd, edgeIntoFront)
			p.end = EndOf(node)
			return true
		case rcCloses:
			p.nodes = append(p.nodes, rc)
			p.edges = append(p.edges, rcEdgeAwayFromEnd, rcEdgeIntoFront)
			p.end = EndOf(rc)
			return true
		}
	}

	count := 0
	for _, e := range [...]*Edge{edgeIntoFront, edgeAwayFromEnd, rcEdgeIntoFront, rcEdgeAwayFromEnd} {
		if e != nil {
			count++
		}
	}
	if count != 1 {
		return false
	}
	switch {
	case edgeIntoFront != nil:
		p.prepend(node, edgeIntoFront)
	case rcEdgeIntoFront != nil:
		p.prepend(rc, rcEdgeIntoFront)
	case edgeAwayFromEnd != nil:
		p.append(node, edgeAwayFromEnd)
	default:
		p.append(rc, rcEdgeAwayFromEnd)
	}
	return true
}

func (p *Path) prepend(node *Node, e *Edge) {
	p.nodes = append([]*Node{node}, p.nodes...)
	p.edges = append([]*Edge{e}, p.edges...)
	p.start = StartOf(node)
}

func (p *Path) append(node *Node, e *Edge) {
	p.nodes = append(p.nodes, node)
	p.edges = append(p.edges, e)
	p.end = EndOf(node)
}

// Sequence returns the bases spelled by the path, from the start
// location up to and including the end location. Edge overlaps are
// counted once, and negative overlaps are filled with N. The result
// is missing if the sequence of any node on the path is missing.
func (p Path) Sequence() *sequence.Sequence {
	if p.IsEmpty() {
		return sequence.New(nil)
	}
	for _, n := range p.nodes {
		if n.Sequence().IsMissing() {
			return sequence.Missing()
		}
	}

	var buf []byte
	first := p.nodes[0].Sequence().Bytes()
	if p.IsCircular() {
		buf = appendTrimmed(buf, first, p.edges[len(p.edges)-1].overlap)
	} else {
		from := p.start.position - 1
		if from < 0 {
			from = 0
		} else if from > len(first) {
			from = len(first)
		}
		buf = append(buf, first[from:]...)
	}
	for i := 1; i < len(p.nodes); i++ {
		buf = appendTrimmed(buf, p.nodes[i].Sequence().Bytes(), p.edges[i-1].overlap)
	}

	last := p.nodes[len(p.nodes)-1]
	if chop := last.Sequence().Len() - p.end.position; chop > 0 {
		if chop > len(buf) {
			chop = len(buf)
		}
		buf = buf[:len(buf)-chop]
	}
	return sequence.New(buf)
}

func appendTrimmed(buf, bases []byte, overlap int) []byte {
	if overlap < 0 {
		for i := overlap; i < 0; i++ {
			buf = append(buf, 'N')
		}
		return append(buf, bases...)
	}
	if overlap > len(bases) {
		overlap = len(bases)
	}
	return append(buf, bases[overlap:]...)
}

// Length returns the number of bases spelled by the path.
func (p Path) Length() int {
	if p.IsEmpty() {
		return 0
	}
	length := 0
	for _, n := range p.nodes {
		length += n.Length()
	}
	for _, e := range p.edges {
		length -= e.overlap
	}
	length -= p.start.position - 1
	length -= p.nodes[len(p.nodes)-1].Length() - p.end.position
	return length
}

// ContainsNode returns true if the node occurs on the path.
func (p Path) ContainsNode(node *Node) bool {
	for _, n := range p.nodes {
		if n == node {
			return true
		}
	}
	return false
}

// HasNodeSubset returns true if the nodes of this path occur in the
// same order, without interruption, in the longer path other.
func (p Path) HasNodeSubset(other Path) bool {
	if len(p.nodes) >= len(other.nodes) {
		return false
	}
	if len(p.nodes) == 0 {
		return true
	}
outer:
	for offset := 0; offset+len(p.nodes) <= len(other.nodes); offset++ {
		for i, n := range p.nodes {
			if other.nodes[offset+i] != n {
				continue outer
			}
		}
		return true
	}
	return false
}

// Equal returns true if both paths visit the same nodes over the same
// edges, and start and end at the same locations.
func (p Path) Equal(other Path) bool {
	if len(p.nodes) != len(other.nodes) || len(p.edges) != len(other.edges) {
		return false
	}
	for i, n := range p.nodes {
		if other.nodes[i] != n {
			return false
		}
	}
	for i, e := range p.edges {
		if other.edges[i] != e {
			return false
		}
	}
	return p.start.Equal(other.start) && p.end.Equal(other.end)
}

// String returns the node names of the path, separated by ", ". A
// start position other than 1 is prefixed in parentheses, and an end
// position other than the end of the last node is appended in
// parentheses.
func (p Path) String() string {
	if p.IsEmpty() {
		return ""
	}
	var b strings.Builder
	if !p.start.IsAtStartOfNode() {
		b.WriteString("(")
		b.WriteString(strconv.Itoa(p.start.position))
		b.WriteString(") ")
	}
	for i, n := range p.nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n.Name())
	}
	if !p.end.IsAtEndOfNode() {
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(p.end.position))
		b.WriteString(")")
	}
	return b.String()
}
