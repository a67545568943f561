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

// Package gfa reads and writes assembly graphs in GFA 1 format.
//
// Only segment (S), link (L) and path (P) records are interpreted.
// Header, containment and comment lines, as well as records of
// unknown type, are skipped.
package gfa

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/sequence"
	"github.com/exascience/elgraph/utils"
)

// DefaultDepth is the depth of segments that carry no depth tag.
const DefaultDepth = 1.0

type segment struct {
	name   string
	seq    []byte
	length int
	depth  float64
	count  int
	counts bool
	dp     bool
}

type link struct {
	from, to    string
	overlap     int
	overlapType graph.OverlapType
}

type pathRecord struct {
	name  string
	nodes string
}

type records struct {
	segments []segment
	links    []link
	paths    []pathRecord
}

// ParseError reports a GFA line that could not be interpreted.
type ParseError struct {
	Line string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v, while parsing GFA line %q", e.Err, e.Line)
}

func (e *ParseError) Unwrap() error { return e.Err }

func lineError(line string, err error) error {
	return &ParseError{Line: line, Err: err}
}

func parseSegment(fields []string) (s segment, err error) {
	if len(fields) < 3 {
		return s, errors.New("segment record needs a name and a sequence")
	}
	s.name = fields[1]
	s.length = -1
	if fields[2] != "*" {
		s.seq = []byte(fields[2])
		s.length = len(s.seq)
	}
	for _, tag := range fields[3:] {
		switch {
		case strings.HasPrefix(tag, "DP:f:"):
			if s.depth, err = strconv.ParseFloat(tag[5:], 64); err != nil {
				return s, err
			}
			s.dp = true
		case strings.HasPrefix(tag, "KC:i:"), strings.HasPrefix(tag, "RC:i:"), strings.HasPrefix(tag, "FC:i:"):
			if s.count, err = strconv.Atoi(tag[5:]); err != nil {
				return s, err
			}
			s.counts = true
		case strings.HasPrefix(tag, "LN:i:"):
			length, err := strconv.Atoi(tag[5:])
			if err != nil {
				return s, err
			}
			if s.seq == nil {
				s.length = length
			}
		}
	}
	return s, nil
}

// The depth tag takes precedence over read and k-mer counts, which
// are divided by the segment length.
func (s segment) nodeDepth() float64 {
	switch {
	case s.dp:
		return s.depth
	case s.counts && s.length > 0:
		return float64(s.count) / float64(s.length)
	default:
		return DefaultDepth
	}
}

func parseOrientation(field string) (byte, error) {
	if field == "+" || field == "-" {
		return field[0], nil
	}
	return 0, fmt.Errorf("invalid orientation %q", field)
}

// ParseOverlap returns the overlap length of a GFA 1 overlap field. A
// "*" stands for an unknown overlap of zero. Otherwise, the overlap
// is the number of bases the CIGAR string consumes on the first
// segment.
func ParseOverlap(cigar string) (int, graph.OverlapType, error) {
	if cigar == "*" || cigar == "" {
		return 0, graph.UnknownOverlap, nil
	}
	overlap, n := 0, 0
	digits := false
	for i := 0; i < len(cigar); i++ {
		c := cigar[i]
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			digits = true
			if n > graph.MaxOverlap {
				return 0, graph.UnknownOverlap, fmt.Errorf("overlap %v out of range", cigar)
			}
			continue
		}
		if !digits {
			return 0, graph.UnknownOverlap, fmt.Errorf("invalid overlap %q", cigar)
		}
		switch c {
		case 'M', '=', 'X', 'D', 'N':
			overlap += n
		case 'I', 'S', 'H', 'P':
		default:
			return 0, graph.UnknownOverlap, fmt.Errorf("invalid overlap %q", cigar)
		}
		n, digits = 0, false
	}
	if digits {
		return 0, graph.UnknownOverlap, fmt.Errorf("invalid overlap %q", cigar)
	}
	if !graph.ValidOverlap(overlap) {
		return 0, graph.UnknownOverlap, fmt.Errorf("overlap %v out of range", cigar)
	}
	return overlap, graph.ExactOverlap, nil
}

func parseLink(fields []string) (l link, err error) {
	if len(fields) < 5 {
		return l, errors.New("link record needs two segments with orientations")
	}
	fromSign, err := parseOrientation(fields[2])
	if err != nil {
		return l, err
	}
	toSign, err := parseOrientation(fields[4])
	if err != nil {
		return l, err
	}
	l.from = fields[1] + string(fromSign)
	l.to = fields[3] + string(toSign)
	cigar := "*"
	if len(fields) > 5 {
		cigar = fields[5]
	}
	l.overlap, l.overlapType, err = ParseOverlap(cigar)
	return l, err
}

func parsePath(fields []string) (p pathRecord, err error) {
	if len(fields) < 3 {
		return p, errors.New("path record needs a name and a segment list")
	}
	return pathRecord{name: fields[1], nodes: fields[2]}, nil
}

func parseLines(lines []string) (recs records, err error) {
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "S":
			s, err := parseSegment(fields)
			if err != nil {
				return recs, lineError(line, err)
			}
			recs.segments = append(recs.segments, s)
		case "L":
			l, err := parseLink(fields)
			if err != nil {
				return recs, lineError(line, err)
			}
			recs.links = append(recs.links, l)
		case "P":
			p, err := parsePath(fields)
			if err != nil {
				return recs, lineError(line, err)
			}
			recs.paths = append(recs.paths, p)
		}
	}
	return recs, nil
}

// Read parses a GFA 1 stream into a new assembly graph. Lines are
// parsed in parallel. The graph is then built in file order:
// segments first, links second and paths last, so that links and
// paths may refer to segments defined later in the file.
func Read(r io.Reader) (*graph.AssemblyGraph, error) {
	var all records
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(r))
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		recs, err := parseLines(data.([]string))
		if err != nil {
			p.SetErr(err)
		}
		return recs
	})))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		recs := data.(records)
		all.segments = append(all.segments, recs.segments...)
		all.links = append(all.links, recs.links...)
		all.paths = append(all.paths, recs.paths...)
		return data
	})))
	p.Run()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return build(all)
}

func build(recs records) (*graph.AssemblyGraph, error) {
	g := graph.New()
	for _, s := range recs.segments {
		var seq *sequence.Sequence
		if s.seq != nil {
			seq = sequence.New(s.seq)
		}
		pos, _, ok := g.AddNodePair(s.name, s.nodeDepth(), seq)
		if !ok {
			if g.NodeByName(s.name+"+") != nil {
				return nil, fmt.Errorf("duplicate segment %v", s.name)
			}
			return nil, fmt.Errorf("invalid segment name %q: %v", s.name, g.CheckNodeNameValidity(s.name))
		}
		if s.seq == nil && s.length >= 0 {
			pos.SetLength(s.length)
		}
	}
	for _, l := range recs.links {
		if g.NodeByName(l.from) == nil {
			return nil, fmt.Errorf("link refers to unknown segment %v", l.from[:len(l.from)-1])
		}
		if g.NodeByName(l.to) == nil {
			return nil, fmt.Errorf("link refers to unknown segment %v", l.to[:len(l.to)-1])
		}
		g.CreateEdge(l.from, l.to, l.overlap, l.overlapType)
	}
	for _, rec := range recs.paths {
		path, err := graph.PathFromString(rec.nodes, g, false)
		if err != nil {
			return nil, fmt.Errorf("invalid path %v: %w", rec.name, err)
		}
		g.AddPath(rec.name, path)
	}
	return g, nil
}

// Load reads the named GFA file, which may be gzip or zstd
// compressed.
func Load(filename string) (g *graph.AssemblyGraph, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := f.Close(); err == nil {
			err = nerr
		}
	}()
	r, err := utils.HandleCompression(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	defer func() {
		if nerr := r.Close(); err == nil {
			err = nerr
		}
	}()
	return Read(r)
}

func formatOverlap(e *graph.Edge) string {
	if e.Overlap() < 0 || (e.Overlap() == 0 && e.OverlapType() == graph.UnknownOverlap) {
		return "*"
	}
	return strconv.Itoa(e.Overlap()) + "M"
}

func formatSign(n *graph.Node) string {
	return string(n.Strand().Sign())
}

// Write writes the graph in GFA 1 format. Each complementary edge
// pair is written once, as one L record.
func Write(w io.Writer, g *graph.AssemblyGraph) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "H\tVN:Z:1.0\tPG:Z:%v %v\n", utils.ProgramName, utils.ProgramVersion)
	for _, n := range g.PositiveNodes() {
		fmt.Fprintf(out, "S\t%v\t%v\tLN:i:%v\tDP:f:%v\n", n.BaseName(), n.Sequence(), n.Length(),
			strconv.FormatFloat(n.Depth(), 'g', -1, 64))
	}
	for _, e := range g.Edges() {
		if !e.IsPositive() {
			continue
		}
		fmt.Fprintf(out, "L\t%v\t%v\t%v\t%v\t%v\n",
			e.Start().BaseName(), formatSign(e.Start()),
			e.End().BaseName(), formatSign(e.End()),
			formatOverlap(e))
	}
	for _, name := range g.PathNames() {
		path, _ := g.Path(name)
		names := make([]string, 0, len(path.Nodes()))
		for _, n := range path.Nodes() {
			names = append(names, n.Name())
		}
		overlaps := "*"
		if edges := path.Edges(); len(edges) > 0 {
			strs := make([]string, 0, len(edges))
			for _, e := range edges {
				strs = append(strs, formatOverlap(e))
			}
			overlaps = strings.Join(strs, ",")
		}
		fmt.Fprintf(out, "P\t%v\t%v\t%v\n", name, strings.Join(names, ","), overlaps)
	}
	return out.Flush()
}
