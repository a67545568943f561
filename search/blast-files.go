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

package search

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/exascience/elgraph/graph"
)

// BlastColumns is the tabular output format expected by
// ParseBlastHits, as passed to blastn or tblastn with -outfmt.
const BlastColumns = "6 qseqid sseqid pident length mismatch gapopen qstart qend sstart send evalue bitscore"

// ParseBlastHits reads alignment hits in BLAST tabular format and
// attaches those that pass the filters to their queries. The subject
// of a hit is a node name. A name without a trailing sign refers to
// the positive node, and a hit on the reverse strand of the subject
// is stored on the negative node. It returns the number of hits
// kept. An unknown query or node is an error.
func ParseBlastHits(r io.Reader, g *graph.AssemblyGraph, queries *Queries, filters HitFilters) (kept int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 || line[0] == '#' {
			continue
		}
		hit, err := parseBlastHit(line, g, queries)
		if err != nil {
			return kept, fmt.Errorf("%v, while parsing BLAST hit on line %v", err, lineNumber)
		}
		if filters.Passes(hit) {
			hit.Query.AddHit(hit)
			kept++
		}
	}
	return kept, scanner.Err()
}

func parseBlastHit(line []byte, g *graph.AssemblyGraph, queries *Queries) (*Hit, error) {
	fields := bytes.Split(line, []byte("\t"))
	if len(fields) < 12 {
		return nil, fmt.Errorf("expected 12 columns, found %v", len(fields))
	}

	hit := &Hit{}
	queryName := string(fields[0])
	if hit.Query = queries.Query(queryName); hit.Query == nil {
		return nil, fmt.Errorf("unknown query %v", queryName)
	}

	nodeName := string(fields[1])
	if _, _, signed := graph.SplitNodeName(nodeName); !signed {
		nodeName += "+"
	}
	node := g.NodeByName(nodeName)
	if node == nil {
		return nil, fmt.Errorf("unknown node %v", nodeName)
	}

	var err error
	parseInt := func(field []byte) (value int) {
		if err == nil {
			value, err = strconv.Atoi(string(field))
		}
		return
	}
	parseFloat := func(field []byte) (value float64) {
		if err == nil {
			value, err = strconv.ParseFloat(string(field), 64)
		}
		return
	}
	hit.PercentIdentity = parseFloat(fields[2])
	hit.AlignmentLength = parseInt(fields[3])
	hit.Mismatches = parseInt(fields[4])
	hit.GapOpens = parseInt(fields[5])
	hit.QueryStart = parseInt(fields[6])
	hit.QueryEnd = parseInt(fields[7])
	subjectStart := parseInt(fields[8])
	subjectEnd := parseInt(fields[9])
	hit.BitScore = parseFloat(bytes.TrimSpace(fields[11]))
	if err != nil {
		return nil, err
	}
	if hit.EValue, err = ParseSciNot(string(fields[10])); err != nil {
		return nil, err
	}

	if subjectStart <= subjectEnd {
		hit.Node, hit.NodeStart, hit.NodeEnd = node, subjectStart, subjectEnd
	} else {
		length := node.Length()
		hit.Node = node.ReverseComplement()
		hit.NodeStart = length - subjectStart + 1
		hit.NodeEnd = length - subjectEnd + 1
	}

	queryLength := hit.Query.Length()
	switch {
	case hit.QueryStart < 1 || hit.QueryEnd < hit.QueryStart || hit.QueryEnd > queryLength:
		return nil, fmt.Errorf("query range %v-%v is outside query %v of length %v", hit.QueryStart, hit.QueryEnd, queryName, queryLength)
	case hit.NodeStart < 1 || hit.NodeEnd > hit.Node.Length():
		return nil, fmt.Errorf("subject range %v-%v is outside node %v of length %v", subjectStart, subjectEnd, nodeName, node.Length())
	}
	return hit, nil
}
