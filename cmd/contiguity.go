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
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/exascience/elgraph/graph"
)

// ContiguityHelp is the help string for this command.
const ContiguityHelp = "\ncontiguity parameters:\n" +
	"elgraph contiguity graph.gfa nodes\n" +
	"[--steps n]\n" +
	"[--auto-overlap]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

// Contiguity implements the elgraph contiguity command. It prints the
// contiguity status of every node relative to the given nodes.
func Contiguity() error {
	var (
		steps              int
		autoOverlap, timed bool
		logPath            string
	)

	var flags flag.FlagSet

	flags.IntVar(&steps, "steps", graph.DefaultContiguitySteps, "maximum number of nodes in a traced path")
	flags.BoolVar(&autoOverlap, "auto-overlap", false, "determine exact edge overlaps from the node sequences")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, ContiguityHelp)

	input := getFilename(os.Args[2], ContiguityHelp)
	nodes := os.Args[3]

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if steps < 1 {
		log.Println("Error: Invalid steps: ", steps)
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, ContiguityHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " contiguity ", input, " ", nodes, " --steps ", steps)
	if autoOverlap {
		fmt.Fprint(&command, " --auto-overlap")
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	g, err := loadGraph(input, autoOverlap, graph.DefaultMinAutoOverlap, graph.DefaultMaxAutoOverlap)
	if err != nil {
		return err
	}
	startingNodes, missing := g.NodesFromString(nodes, true)
	for _, name := range missing {
		log.Printf("Warning: Node %v is not in the graph.\n", name)
	}
	if len(startingNodes) == 0 {
		return fmt.Errorf("none of the nodes %v are in the graph", nodes)
	}

	ctx, cancel := interruptible()
	defer cancel()

	if err := timedRun(timed, "", "Determining contiguity.", 1, func() error {
		return g.DetermineContiguity(ctx, startingNodes, steps)
	}); err != nil {
		return err
	}

	out := bufio.NewWriter(os.Stdout)
	for _, n := range g.Nodes() {
		if status := n.ContiguityStatus(); status != graph.NotContiguous {
			fmt.Fprintf(out, "%v\t%v\n", n.Name(), status)
		}
	}
	return out.Flush()
}
