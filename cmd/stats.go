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
	"io"
	"log"
	"os"

	"github.com/exascience/elgraph/graph"
)

// StatsHelp is the help string for this command.
const StatsHelp = "\nstats parameters:\n" +
	"elgraph stats graph.gfa\n" +
	"[--auto-overlap]\n" +
	"[--min-overlap n]\n" +
	"[--max-overlap n]\n" +
	"[--timed]\n" +
	"[--log-path path]\n"

func writeStats(w io.Writer, g *graph.AssemblyGraph) error {
	out := bufio.NewWriter(w)
	stats := g.NodeStats()
	components, largest := g.ComponentCountAndLargestComponentSize()
	firstDepth, medianDepth, thirdDepth := g.DepthQuartiles()
	smallestOverlap, largestOverlap := g.OverlapRange()
	row := func(key string, value interface{}) {
		fmt.Fprintf(out, "%v\t%v\n", key, value)
	}
	row("nodes", g.NodeCount())
	row("edges", g.EdgeCount())
	row("paths", len(g.PathNames()))
	row("total-length", g.TotalLength())
	row("total-length-minus-overlaps", g.TotalLengthMinusEdgeOverlaps())
	row("dead-ends", g.DeadEndCount())
	row("connected-components", components)
	row("largest-component-length", largest)
	row("n50", stats.N50)
	row("shortest-node", stats.Shortest)
	row("first-quartile-node", stats.FirstQuartile)
	row("median-node", stats.Median)
	row("third-quartile-node", stats.ThirdQuartile)
	row("longest-node", stats.Longest)
	row("mean-depth", fmt.Sprintf("%.2f", g.MeanDepth()))
	row("median-depth-by-base", fmt.Sprintf("%.2f", g.MedianDepthByBase()))
	row("first-quartile-depth", fmt.Sprintf("%.2f", firstDepth))
	row("median-depth", fmt.Sprintf("%.2f", medianDepth))
	row("third-quartile-depth", fmt.Sprintf("%.2f", thirdDepth))
	row("smallest-overlap", smallestOverlap)
	row("largest-overlap", largestOverlap)
	row("estimated-sequence-length", g.EstimatedSequenceLength())
	return out.Flush()
}

// Stats implements the elgraph stats command.
func Stats() error {
	var (
		autoOverlap, timed     bool
		minOverlap, maxOverlap int
		logPath                string
	)

	var flags flag.FlagSet

	flags.BoolVar(&autoOverlap, "auto-overlap", false, "determine exact edge overlaps from the node sequences")
	flags.IntVar(&minOverlap, "min-overlap", graph.DefaultMinAutoOverlap, "smallest overlap tried by --auto-overlap")
	flags.IntVar(&maxOverlap, "max-overlap", graph.DefaultMaxAutoOverlap, "largest overlap tried by --auto-overlap")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 3, StatsHelp)

	input := getFilename(os.Args[2], StatsHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if autoOverlap && !checkOverlapRange(minOverlap, maxOverlap) {
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, StatsHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " stats ", input)
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

	return timedRun(timed, "", "Computing graph statistics.", 1, func() error {
		g, err := loadGraph(input, autoOverlap, minOverlap, maxOverlap)
		if err != nil {
			return err
		}
		return writeStats(os.Stdout, g)
	})
}
