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

// Package graph implements the bidirected assembly graph: node and
// edge pairs, graph locations and paths through the graph, scope
// marking, graph editing, and derived statistics.
//
// The graph assumes exclusive access during every mutating call. It
// provides no internal locking.
package graph

import (
	"sort"
	"strconv"
	"strings"

	"github.com/exascience/elgraph/sequence"
	"github.com/google/uuid"
)

// An AssemblyGraph owns all nodes, edges and named paths of an
// assembly graph. Nodes and edges are stored in arenas and always
// come in reverse-complement pairs.
type AssemblyGraph struct {
	nodes      []*Node // nil => deleted
	edges      []*Edge // nil => deleted
	names      map[string]NodeID
	edgeIndex  map[[2]NodeID]EdgeID
	paths      map[string]Path
	generation uuid.UUID
}

// New returns an empty AssemblyGraph.
func New() *AssemblyGraph {
	g := new(AssemblyGraph)
	g.CleanUp()
	return g
}

// CleanUp removes all nodes, edges and paths from the graph.
func (g *AssemblyGraph) CleanUp() {
	for _, n := range g.nodes {
		if n != nil {
			n.graph = nil
		}
	}
	g.nodes = nil
	g.edges = nil
	g.names = make(map[string]NodeID)
	g.edgeIndex = make(map[[2]NodeID]EdgeID)
	g.paths = make(map[string]Path)
	g.touch()
}

// Generation identifies the current state of the graph. It changes
// whenever nodes or edges are added, removed or modified, so that
// search results computed against an older state can be recognized.
func (g *AssemblyGraph) Generation() uuid.UUID {
	return g.generation
}

func (g *AssemblyGraph) touch() {
	g.generation = uuid.New()
}

// OppositeNodeName flips the trailing sign of a node name.
func OppositeNodeName(name string) string {
	if name == "" {
		return name
	}
	last := len(name) - 1
	switch name[last] {
	case '+':
		return name[:last] + "-"
	case '-':
		return name[:last] + "+"
	default:
		return name
	}
}

// SplitNodeName splits a display name into its base name and strand.
// It returns false if the name does not end in '+' or '-'.
func SplitNodeName(name string) (baseName string, strand Strand, ok bool) {
	if name == "" {
		return "", Positive, false
	}
	last := len(name) - 1
	switch name[last] {
	case '+':
		return name[:last], Positive, true
	case '-':
		return name[:last], Negative, true
	default:
		return name, Positive, false
	}
}

// AddNodePair creates the positive and negative strand of a new
// logical node. The negative node receives the reverse complement of
// seq. A nil seq is treated as missing. It returns false if the base
// name is invalid or already taken.
func (g *AssemblyGraph) AddNodePair(baseName string, depth float64, seq *sequence.Sequence) (pos, neg *Node, ok bool) {
	if g.CheckNodeNameValidity(baseName) != NodeNameOkay {
		return nil, nil, false
	}
	if seq == nil {
		seq = sequence.Missing()
	}
	posID := NodeID(len(g.nodes))
	negID := posID + 1
	pos = &Node{
		graph:      g,
		id:         posID,
		rc:         negID,
		baseName:   baseName,
		strand:     Positive,
		seq:        seq,
		length:     -1,
		depth:      depth,
		contiguity: NotContiguous,
	}
	neg = &Node{
		graph:      g,
		id:         negID,
		rc:         posID,
		baseName:   baseName,
		strand:     Negative,
		seq:        seq.ReverseComplement(),
		length:     -1,
		depth:      depth,
		contiguity: NotContiguous,
	}
	g.nodes = append(g.nodes, pos, neg)
	g.names[pos.Name()] = posID
	g.names[neg.Name()] = negID
	g.touch()
	return pos, neg, true
}

// CreateEdge creates an edge from the node named name1 to the node
// named name2, together with its reverse complement edge. It does
// nothing if any of the four nodes involved does not exist, if the
// edge already exists, or if the overlap cannot be represented. It
// returns true if an edge was created.
func (g *AssemblyGraph) CreateEdge(name1, name2 string, overlap int, overlapType OverlapType) bool {
	node1, node2 := g.NodeByName(name1), g.NodeByName(name2)
	negNode1, negNode2 := g.NodeByName(OppositeNodeName(name1)), g.NodeByName(OppositeNodeName(name2))
	if node1 == nil || node2 == nil || negNode1 == nil || negNode2 == nil {
		return false
	}
	if !ValidOverlap(overlap) {
		return false
	}
	for _, id := range node1.edges {
		if e := g.edges[id]; e.start == node1.id && e.end == node2.id {
			return false
		}
	}

	isOwnPair := node1 == negNode2 && node2 == negNode1

	forward := &Edge{
		graph:       g,
		id:          EdgeID(len(g.edges)),
		start:       node1.id,
		end:         node2.id,
		overlap:     overlap,
		overlapType: overlapType,
	}
	g.edges = append(g.edges, forward)
	backward := forward
	if !isOwnPair {
		backward = &Edge{
			graph:       g,
			id:          EdgeID(len(g.edges)),
			start:       negNode2.id,
			end:         negNode1.id,
			overlap:     overlap,
			overlapType: overlapType,
		}
		g.edges = append(g.edges, backward)
	}
	forward.rc = backward.id
	backward.rc = forward.id

	g.edgeIndex[[2]NodeID{forward.start, forward.end}] = forward.id
	g.edgeIndex[[2]NodeID{backward.start, backward.end}] = backward.id

	node1.addEdge(forward.id)
	node2.addEdge(forward.id)
	negNode1.addEdge(backward.id)
	negNode2.addEdge(backward.id)
	g.touch()
	return true
}

// Node returns the node with the given handle, or nil if it was
// deleted.
func (g *AssemblyGraph) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// NodeByName returns the node with the given display name (including
// the trailing sign), or nil.
func (g *AssemblyGraph) NodeByName(name string) *Node {
	if id, ok := g.names[name]; ok {
		return g.nodes[id]
	}
	return nil
}

// Nodes returns all nodes of both strands in creation order.
func (g *AssemblyGraph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.names))
	for _, n := range g.nodes {
		if n != nil {
			result = append(result, n)
		}
	}
	return result
}

// PositiveNodes returns all positive nodes in creation order.
func (g *AssemblyGraph) PositiveNodes() []*Node {
	result := make([]*Node, 0, len(g.names)/2)
	for _, n := range g.nodes {
		if n != nil && n.strand == Positive {
			result = append(result, n)
		}
	}
	return result
}

// NodeCount returns the number of logical nodes, that is the number
// of node pairs.
func (g *AssemblyGraph) NodeCount() int {
	return len(g.names) / 2
}

// Edges returns all edges of both strands in creation order.
func (g *AssemblyGraph) Edges() []*Edge {
	result := make([]*Edge, 0, len(g.edgeIndex))
	for _, e := range g.edges {
		if e != nil {
			result = append(result, e)
		}
	}
	return result
}

// EdgeCount returns the number of logical edges, counting each
// complementary pair once.
func (g *AssemblyGraph) EdgeCount() (count int) {
	for _, e := range g.edges {
		if e != nil && e.IsPositive() {
			count++
		}
	}
	return
}

// Edge returns the edge from start to end, or nil.
func (g *AssemblyGraph) Edge(start, end *Node) *Edge {
	if id, ok := g.edgeIndex[[2]NodeID{start.id, end.id}]; ok {
		return g.edges[id]
	}
	return nil
}

// AddPath stores a named path in the graph, replacing any path with
// the same name.
func (g *AssemblyGraph) AddPath(name string, path Path) {
	g.paths[name] = path
}

// Path returns the named path.
func (g *AssemblyGraph) Path(name string) (Path, bool) {
	path, ok := g.paths[name]
	return path, ok
}

// PathNames returns the names of all stored paths in sorted order.
func (g *AssemblyGraph) PathNames() []string {
	names := make([]string, 0, len(g.paths))
	for name := range g.paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NodeNameStatus is the result of checking a proposed node name.
type NodeNameStatus int

// Node name statuses.
const (
	NodeNameOkay NodeNameStatus = iota
	NodeNameTaken
	NodeNameContainsTab
	NodeNameContainsNewline
	NodeNameContainsComma
	NodeNameContainsSpace
	NodeNameEmpty
)

func (status NodeNameStatus) String() string {
	switch status {
	case NodeNameOkay:
		return "okay"
	case NodeNameTaken:
		return "name already in use"
	case NodeNameContainsTab:
		return "name contains a tab"
	case NodeNameContainsNewline:
		return "name contains a newline"
	case NodeNameContainsComma:
		return "name contains a comma"
	case NodeNameContainsSpace:
		return "name contains a space"
	default:
		return "name is empty"
	}
}

// CheckNodeNameValidity checks whether a base name can be used for a
// new node pair.
func (g *AssemblyGraph) CheckNodeNameValidity(baseName string) NodeNameStatus {
	switch {
	case baseName == "":
		return NodeNameEmpty
	case strings.ContainsRune(baseName, '\t'):
		return NodeNameContainsTab
	case strings.ContainsRune(baseName, '\n'):
		return NodeNameContainsNewline
	case strings.ContainsRune(baseName, ','):
		return NodeNameContainsComma
	case strings.ContainsRune(baseName, ' '):
		return NodeNameContainsSpace
	}
	if _, taken := g.names[baseName+"+"]; taken {
		return NodeNameTaken
	}
	return NodeNameOkay
}

// UniqueNodeName returns baseName if it is not yet used, and
// otherwise baseName followed by "_2", "_3", and so on.
func (g *AssemblyGraph) UniqueNodeName(baseName string) string {
	if _, taken := g.names[baseName+"+"]; !taken {
		return baseName
	}
	for suffix := 2; ; suffix++ {
		candidate := baseName + "_" + strconv.Itoa(suffix)
		if _, taken := g.names[candidate+"+"]; !taken {
			return candidate
		}
	}
}
