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
	"os"

	"github.com/exascience/elgraph/graph"
)

// MergeHelp is the help string for this command.
const MergeHelp = "\nmerge parameters:\n" +
	"elgraph merge graph.gfa output.gfa\n" +
	"[--delete-nodes list]\n" +
	"[--auto-overlap]\n" +
	"[--min-overlap n]\n" +
	"[--max-overlap n]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

// Merge implements the elgraph merge command. It optionally deletes
// nodes first, and then merges every simple chain of nodes into a
// single node.
func Merge() error {
	var (
		autoOverlap, timed     bool
		minOverlap, maxOverlap int
		deleteNodes, logPath   string
	)

	var flags flag.FlagSet

	flags.StringVar(&deleteNodes, "delete-nodes", "", "comma-separated list of nodes to delete before merging")
	flags.BoolVar(&autoOverlap, "auto-overlap", false, "determine exact edge overlaps from the node sequences")
	flags.IntVar(&minOverlap, "min-overlap", graph.DefaultMinAutoOverlap, "smallest overlap tried by --auto-overlap")
	flags.IntVar(&maxOverlap, "max-overlap", graph.DefaultMaxAutoOverlap, "largest overlap tried by --auto-overlap")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 4, MergeHelp)

	input := getFilename(os.Args[2], MergeHelp)
	output := getFilename(os.Args[3], MergeHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if autoOverlap && !checkOverlapRange(minOverlap, maxOverlap) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, MergeHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " merge ", input, " ", output)
	if deleteNodes != "" {
		fmt.Fprint(&command, " --delete-nodes ", deleteNodes)
	}
	if autoOverlap {
		fmt.Fprint(&command, " --auto-overlap --min-overlap ", minOverlap, " --max-overlap ", maxOverlap)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	g, err := loadGraph(input, autoOverlap, minOverlap, maxOverlap)
	if err != nil {
		return err
	}

	if deleteNodes != "" {
		nodes, missing := g.NodesFromString(deleteNodes, true)
		for _, name := range missing {
			log.Printf("Warning: Node %v to delete is not in the graph.\n", name)
		}
		before := g.NodeCount()
		g.DeleteNodes(nodes)
		log.Printf("Deleted %v nodes.\n", before-g.NodeCount())
	}

	if err := timedRun(timed, "", "Merging nodes.", 1, func() error {
		merged := g.MergeAllPossible()
		log.Printf("Merged %v chains, %v nodes remain.\n", merged, g.NodeCount())
		return nil
	}); err != nil {
		return err
	}

	return timedRun(timed, "", "Writing merged graph.", 2, func() error {
		return writeGFA(output, g)
	})
}
