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

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/exascience/elgraph/dot"
	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/internal"
	"github.com/exascience/elgraph/search"
)

// DotHelp is the help string for this command.
const DotHelp = "\ndot parameters:\n" +
	"elgraph dot graph.gfa output.dot\n" +
	"[--scope whole-graph | around-nodes | around-hits | depth-range]\n" +
	"[--nodes list]\n" +
	"[--partial]\n" +
	"[--distance n]\n" +
	"[--min-depth x]\n" +
	"[--max-depth x]\n" +
	"[--queries queries.fasta --hits hits.tsv]\n" +
	"[--highlight-path path]\n" +
	"[--double]\n" +
	"[--log-path path]\n"

func parseScope(s string) (graph.Scope, bool) {
	for _, scope := range []graph.Scope{graph.WholeGraph, graph.AroundNodes, graph.AroundHits, graph.DepthRange} {
		if strings.EqualFold(s, scope.String()) {
			return scope, true
		}
	}
	return graph.WholeGraph, false
}

// Dot implements the elgraph dot command.
func Dot() error {
	var (
		scopeName, nodes, highlightPath string
		queriesFile, hitsFile, logPath  string
		partial, double                 bool
		distance                        int
		minDepth, maxDepth              float64
	)

	var flags flag.FlagSet

	flags.StringVar(&scopeName, "scope", graph.WholeGraph.String(), "part of the graph to export")
	flags.StringVar(&nodes, "nodes", "", "comma-separated list of nodes for the around-nodes scope")
	flags.BoolVar(&partial, "partial", false, "select every node whose name contains one of the given names")
	flags.IntVar(&distance, "distance", 0, "number of edges to extend the scope around the selected nodes")
	flags.Float64Var(&minDepth, "min-depth", 0, "smallest node depth for the depth-range scope")
	flags.Float64Var(&maxDepth, "max-depth", math.Inf(1), "largest node depth for the depth-range scope")
	flags.StringVar(&queriesFile, "queries", "", "FASTA file with queries for the around-hits scope")
	flags.StringVar(&hitsFile, "hits", "", "BLAST hits of the queries for the around-hits scope")
	flags.StringVar(&highlightPath, "highlight-path", "", "path whose nodes are filled, for example \"1+, 2-\"")
	flags.BoolVar(&double, "double", false, "draw both strands")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, DotHelp)

	input := getFilename(os.Args[2], DotHelp)
	output := getFilename(os.Args[3], DotHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}

	scope, ok := parseScope(scopeName)
	if !ok {
		log.Printf("Error: Invalid scope %v.\n", scopeName)
		sanityChecksFailed = true
	}
	switch scope {
	case graph.AroundNodes:
		if nodes == "" {
			log.Println("Error: The around-nodes scope needs the --nodes option.")
			sanityChecksFailed = true
		}
	case graph.AroundHits:
		if !checkExist("--queries", queriesFile) || !checkExist("--hits", hitsFile) {
			sanityChecksFailed = true
		}
	case graph.DepthRange:
		if minDepth > maxDepth {
			log.Printf("Error: Invalid depth range %v-%v.\n", minDepth, maxDepth)
			sanityChecksFailed = true
		}
	}
	if distance < 0 {
		log.Println("Error: Invalid distance: ", distance)
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, DotHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " dot ", input, " ", output, " --scope ", scope)
	if nodes != "" {
		fmt.Fprint(&command, " --nodes ", nodes)
	}
	if partial {
		fmt.Fprint(&command, " --partial")
	}
	fmt.Fprint(&command, " --distance ", distance)
	if scope == graph.DepthRange {
		fmt.Fprint(&command, " --min-depth ", minDepth, " --max-depth ", maxDepth)
	}
	if scope == graph.AroundHits {
		fmt.Fprint(&command, " --queries ", queriesFile, " --hits ", hitsFile)
	}
	if highlightPath != "" {
		fmt.Fprint(&command, " --highlight-path ", highlightPath)
	}
	if double {
		fmt.Fprint(&command, " --double")
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	g, err := loadGraph(input, false, 0, 0)
	if err != nil {
		return err
	}

	var startingNodes []*graph.Node
	switch scope {
	case graph.AroundNodes:
		var missing []string
		startingNodes, missing = g.NodesFromString(nodes, !partial)
		for _, name := range missing {
			log.Printf("Warning: Node %v is not in the graph.\n", name)
		}
		if len(startingNodes) == 0 {
			return fmt.Errorf("none of the nodes %v are in the graph", nodes)
		}
	case graph.AroundHits:
		queries, err := loadQueries(queriesFile, hitsFile, g, search.DefaultSettings().HitFilters)
		if err != nil {
			return err
		}
		startingNodes = queries.NodesWithHits()
	case graph.DepthRange:
		startingNodes = g.NodesInDepthRange(minDepth, maxDepth)
	}

	var opts dot.Options
	opts.DoubleMode = double
	if highlightPath != "" {
		path, err := graph.PathFromString(highlightPath, g, false)
		if err != nil {
			return fmt.Errorf("%v, while parsing --highlight-path", err)
		}
		opts.Highlight = path.Nodes()
	}

	g.MarkNodesToDraw(scope, startingNodes, distance, double)
	log.Printf("Drawing %v nodes and %v edges.\n", len(g.DrawnNodes()), len(g.DrawnEdges()))

	f := internal.FileCreate(output)
	defer internal.Close(f)
	return dot.Write(f, g, opts)
}
