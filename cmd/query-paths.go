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
	"runtime"
	"strconv"

	"github.com/exascience/elgraph/fasta"
	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/internal"
	"github.com/exascience/elgraph/search"
)

// QueryPathsHelp is the help string for this command.
const QueryPathsHelp = "\nquery-paths parameters:\n" +
	"elgraph query-paths graph.gfa queries.fasta hits.tsv output.tsv\n" +
	"[--settings settings.yaml]\n" +
	"[--path-sequences output.fasta]\n" +
	"[--auto-overlap]\n" +
	"[--nr-of-threads n]\n" +
	"[--timed]\n" +
	"[--profile file]\n" +
	"[--log-path path]\n" +
	"The hits file is BLAST tabular output with -outfmt \"" + search.BlastColumns + "\".\n"

func loadQueries(queriesFile, hitsFile string, g *graph.AssemblyGraph, filters search.HitFilters) (*search.Queries, error) {
	queries := search.NewQueries()
	added, err := fasta.LoadQueries(queriesFile, queries)
	if err != nil {
		return nil, fmt.Errorf("%v, while loading %v", err, queriesFile)
	}
	log.Printf("Loaded %v queries from %v.\n", len(added), queriesFile)
	hits := internal.InputFile(hitsFile)
	defer internal.Close(hits)
	kept, err := search.ParseBlastHits(hits, g, queries, filters)
	if err != nil {
		return nil, fmt.Errorf("%v, while loading %v", err, hitsFile)
	}
	log.Printf("Kept %v hits from %v.\n", kept, hitsFile)
	return queries, nil
}

func writePathSequences(filename string, queries *search.Queries) (err error) {
	f := internal.FileCreate(filename)
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	w := fasta.NewWriter(f)
	for _, q := range queries.All() {
		for i, qp := range q.Paths() {
			if err := w.Write(q.Name()+"_path"+strconv.Itoa(i+1), qp.Path().Sequence()); err != nil {
				return err
			}
		}
	}
	return nil
}

// QueryPaths implements the elgraph query-paths command.
func QueryPaths() error {
	var (
		settingsFile, pathSequences string
		profile, logPath            string
		autoOverlap, timed          bool
		nrOfThreads                 int
	)

	var flags flag.FlagSet

	flags.StringVar(&settingsFile, "settings", "", "YAML file with query path settings")
	flags.StringVar(&pathSequences, "path-sequences", "", "write the sequences of all query paths to a FASTA file")
	flags.BoolVar(&autoOverlap, "auto-overlap", false, "determine exact edge overlaps from the node sequences")
	flags.IntVar(&nrOfThreads, "nr-of-threads", 0, "number of worker threads")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")

	parseFlags(&flags, 6, QueryPathsHelp)

	input := getFilename(os.Args[2], QueryPathsHelp)
	queriesFile := getFilename(os.Args[3], QueryPathsHelp)
	hitsFile := getFilename(os.Args[4], QueryPathsHelp)
	output := getFilename(os.Args[5], QueryPathsHelp)

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	for _, file := range []string{input, queriesFile, hitsFile} {
		if !checkExist("", file) {
			sanityChecksFailed = true
		}
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	if pathSequences != "" && !checkCreate("--path-sequences", pathSequences) {
		sanityChecksFailed = true
	}
	if profile != "" && !checkCreate("--profile", profile) {
		sanityChecksFailed = true
	}

	settings := search.DefaultSettings()
	if settingsFile != "" {
		if !checkExist("--settings", settingsFile) {
			sanityChecksFailed = true
		} else if s, err := search.LoadSettings(settingsFile); err != nil {
			log.Println("Error:", err)
			sanityChecksFailed = true
		} else {
			settings = s
		}
	}

	if nrOfThreads < 0 {
		sanityChecksFailed = true
		log.Println("Error: Invalid nr-of-threads: ", nrOfThreads)
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, QueryPathsHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " query-paths ", input, " ", queriesFile, " ", hitsFile, " ", output)
	if settingsFile != "" {
		fmt.Fprint(&command, " --settings ", settingsFile)
	}
	if pathSequences != "" {
		fmt.Fprint(&command, " --path-sequences ", pathSequences)
	}
	if autoOverlap {
		fmt.Fprint(&command, " --auto-overlap")
	}
	if nrOfThreads > 0 {
		runtime.GOMAXPROCS(nrOfThreads)
		fmt.Fprint(&command, " --nr-of-threads ", nrOfThreads)
	}
	if timed {
		fmt.Fprint(&command, " --timed")
	}
	if profile != "" {
		fmt.Fprint(&command, " --profile ", profile)
	}
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}

	// executing command

	log.Println("Executing command:\n", command.String())

	var (
		g       *graph.AssemblyGraph
		queries *search.Queries
	)

	if err := timedRun(timed, profile, "Loading graph, queries and hits.", 1, func() (err error) {
		if g, err = loadGraph(input, autoOverlap, graph.DefaultMinAutoOverlap, graph.DefaultMaxAutoOverlap); err != nil {
			return err
		}
		queries, err = loadQueries(queriesFile, hitsFile, g, settings.HitFilters)
		return err
	}); err != nil {
		return err
	}

	ctx, cancel := interruptible()
	defer cancel()

	if err := timedRun(timed, profile, "Reconstructing query paths.", 2, func() error {
		return queries.FindAllQueryPaths(ctx, g, settings)
	}); err != nil {
		return err
	}

	for _, q := range queries.All() {
		log.Printf("Query %v: %v hits covering %.1f%%, %v paths.\n",
			q.Name(), len(q.Hits()), 100*q.FractionCoveredByHits(nil), len(q.Paths()))
	}

	return timedRun(timed, profile, "Writing query paths.", 3, func() (err error) {
		f := internal.FileCreate(output)
		defer func() {
			if nerr := f.Close(); err == nil {
				err = nerr
			}
		}()
		if err = search.WriteQueryPaths(f, queries); err != nil {
			return err
		}
		if pathSequences != "" {
			return writePathSequences(pathSequences, queries)
		}
		return nil
	})
}
