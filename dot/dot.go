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

// Package dot exports the drawn part of an assembly graph in
// Graphviz DOT format.
package dot

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"

	"github.com/exascience/elgraph/graph"
)

// GraphName is the name of the exported graph.
const GraphName = "elgraph"

// Options control the export.
type Options struct {
	// DoubleMode draws both strands as separate, directed nodes. In
	// single mode, each node pair is one undirected node named after
	// its base name.
	DoubleMode bool

	// Highlight lists nodes that are filled, for example the nodes
	// of a query path.
	Highlight []*graph.Node
}

func quote(s string) string {
	return strconv.Quote(s)
}

func (opts Options) nodeID(n *graph.Node) string {
	if opts.DoubleMode {
		return quote(n.Name())
	}
	return quote(n.BaseName())
}

func nodeLabel(n *graph.Node, name string) string {
	return quote(fmt.Sprintf("%v\n%v bp\n%.1fx", name, n.Length(), n.Depth()))
}

func edgeStyle(e *graph.Edge) string {
	switch e.OverlapType() {
	case graph.JumpOverlap:
		return "dotted"
	case graph.UnknownOverlap, graph.ExtraLinkOverlap:
		return "dashed"
	default:
		return "solid"
	}
}

// Graph builds a Graphviz graph of the nodes and edges that are
// marked drawn. Special nodes get a bold outline.
func Graph(g *graph.AssemblyGraph, opts Options) (*gographviz.Graph, error) {
	highlight := make(map[graph.NodeID]bool)
	for _, n := range opts.Highlight {
		highlight[n.ID()] = true
		if !opts.DoubleMode {
			highlight[n.ReverseComplement().ID()] = true
		}
	}

	gv := gographviz.NewGraph()
	if err := gv.SetName(GraphName); err != nil {
		return nil, err
	}
	if err := gv.SetDir(opts.DoubleMode); err != nil {
		return nil, err
	}
	for _, n := range g.DrawnNodes() {
		name := n.Name()
		if !opts.DoubleMode {
			name = n.BaseName()
		}
		attrs := map[string]string{
			"label": nodeLabel(n, name),
			"shape": "box",
		}
		var styles []string
		if n.IsSpecial() {
			styles = append(styles, "bold")
		}
		if highlight[n.ID()] {
			styles = append(styles, "filled")
			attrs["fillcolor"] = "gold"
		}
		if len(styles) == 1 {
			attrs["style"] = styles[0]
		} else if len(styles) == 2 {
			attrs["style"] = quote(styles[0] + "," + styles[1])
		}
		if err := gv.AddNode(GraphName, opts.nodeID(n), attrs); err != nil {
			return nil, err
		}
	}
	for _, e := range g.DrawnEdges() {
		attrs := map[string]string{
			"label": quote(strconv.Itoa(e.Overlap())),
			"style": edgeStyle(e),
		}
		if err := gv.AddEdge(opts.nodeID(e.Start()), opts.nodeID(e.End()), opts.DoubleMode, attrs); err != nil {
			return nil, err
		}
	}
	return gv, nil
}

// Write writes the drawn part of the graph in DOT format.
func Write(w io.Writer, g *graph.AssemblyGraph, opts Options) error {
	gv, err := Graph(g, opts)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, gv.String())
	return err
}
