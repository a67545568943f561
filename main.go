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

// elGraph is a tool for querying assembly graphs in GFA format:
// graph statistics, merging of simple node chains, reconstruction of
// query paths from BLAST hits, contiguity analysis and export of
// parts of the graph to Graphviz.
//
// Please see https://github.com/exascience/elgraph for a documentation
// of the tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/elgraph/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: stats, merge, query-paths, dot, contiguity")
	fmt.Fprint(os.Stderr, "\n", cmd.StatsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.MergeHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.QueryPathsHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.DotHelp)
	fmt.Fprint(os.Stderr, "\n", cmd.ContiguityHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, cmd.HelpMessage, "\n")
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "stats":
		err = cmd.Stats()
	case "merge":
		err = cmd.Merge()
	case "query-paths":
		err = cmd.QueryPaths()
	case "dot":
		err = cmd.Dot()
	case "contiguity":
		err = cmd.Contiguity()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Printf("Unknown command %v.\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
