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

// Package search reconstructs the paths through an assembly graph
// that best explain the alignment hits of query sequences.
package search

import (
	"context"
	"math"
	"sort"

	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/intervals"
	"github.com/exascience/elgraph/sequence"
	"github.com/google/uuid"
)

// SequenceType tells whether a query is made of nucleotides or amino
// acids.
type SequenceType int

// Sequence types.
const (
	Nucleotide SequenceType = iota
	Protein
)

func (t SequenceType) String() string {
	if t == Nucleotide {
		return "nucleotide"
	}
	return "protein"
}

// DetectSequenceType classifies a sequence as protein if it contains
// any of the letters E, F, I, L, P or Q, and otherwise as nucleotide
// if at least 75% of it consists of A, C, G, T or N. Case is ignored.
// An empty sequence is protein.
func DetectSequenceType(bases []byte) SequenceType {
	if len(bases) == 0 {
		return Protein
	}
	nucleotides := 0
	for _, b := range bases {
		switch b {
		case 'E', 'F', 'I', 'L', 'P', 'Q', 'e', 'f', 'i', 'l', 'p', 'q':
			return Protein
		case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
			nucleotides++
		}
	}
	if float64(nucleotides)/float64(len(bases)) >= 0.75 {
		return Nucleotide
	}
	return Protein
}

// State is the search progress of a query.
type State int

// Query states.
const (
	Unsearched State = iota
	HitsCollected
	PathsReconstructed
)

// A Query is a sequence searched for in the graph, together with its
// hits and the query paths reconstructed from them.
type Query struct {
	name       string
	seq        *sequence.Sequence
	seqType    SequenceType
	state      State
	hits       []*Hit
	paths      []QueryPath
	generation uuid.UUID
}

// NewQuery returns an unsearched query. The sequence type is detected
// from the bases.
func NewQuery(name string, seq *sequence.Sequence) *Query {
	return &Query{name: name, seq: seq, seqType: DetectSequenceType(seq.Bytes())}
}

// Name returns the name of the query.
func (q *Query) Name() string { return q.name }

// Sequence returns the query sequence.
func (q *Query) Sequence() *sequence.Sequence { return q.seq }

// Type returns the sequence type of the query.
func (q *Query) Type() SequenceType { return q.seqType }

// Length returns the length of the query in its own units.
func (q *Query) Length() int { return q.seq.Len() }

// nucleotideFactor is the number of graph bases per query unit.
func (q *Query) nucleotideFactor() int {
	if q.seqType == Protein {
		return 3
	}
	return 1
}

// NucleotideLength returns the length of the query in bases. Amino
// acids count as three bases each.
func (q *Query) NucleotideLength() int {
	return q.Length() * q.nucleotideFactor()
}

// State returns the search progress of the query.
func (q *Query) State() State { return q.state }

// Hits returns the hits of the query.
func (q *Query) Hits() []*Hit { return q.hits }

// AddHit attaches a hit to the query.
func (q *Query) AddHit(hit *Hit) {
	hit.Query = q
	q.hits = append(q.hits, hit)
	if q.state == Unsearched {
		q.state = HitsCollected
	}
}

// Paths returns the reconstructed query paths, best first.
func (q *Query) Paths() []QueryPath { return q.paths }

// ClearSearchResults removes all hits and paths.
func (q *Query) ClearSearchResults() {
	q.hits, q.paths = nil, nil
	q.state = Unsearched
	q.generation = uuid.Nil
}

// IsStale returns true if the query paths were reconstructed against
// a different state of the graph than the current one.
func (q *Query) IsStale(g *graph.AssemblyGraph) bool {
	return q.state == PathsReconstructed && q.generation != g.Generation()
}

// FractionCoveredByHits returns the fraction of the query covered by
// the union of the given hits, or by all hits of the query if hits is
// nil.
func (q *Query) FractionCoveredByHits(hits []*Hit) float64 {
	if hits == nil {
		hits = q.hits
	}
	ranges := make([]intervals.Interval, len(hits))
	for i, hit := range hits {
		ranges[i] = intervals.Interval{Start: hit.QueryStart - 1, End: hit.QueryEnd}
	}
	return intervals.Coverage(ranges, q.Length())
}

func roundedProduct(ideal int, fraction float64) int {
	return int(float64(ideal)*fraction + 0.5)
}

// lengthBounds returns the allowed path lengths for a query path
// whose hits span the given ideal length.
func lengthBounds(ideal int, settings Settings) (minLength, maxLength int) {
	minPercentage, maxPercentage := settings.MinLengthPercentage, settings.MaxLengthPercentage
	minBases, maxBases := settings.MinLengthBaseDiscrepancy, settings.MaxLengthBaseDiscrepancy

	switch {
	case minPercentage.On && minBases.On:
		minLength = roundedProduct(ideal, minPercentage.Value)
		if bases := ideal + minBases.Value; bases > minLength {
			minLength = bases
		}
	case minPercentage.On:
		minLength = roundedProduct(ideal, minPercentage.Value)
	case minBases.On:
		minLength = ideal + minBases.Value
	default:
		minLength = 1
	}

	switch {
	case maxPercentage.On && maxBases.On:
		maxLength = roundedProduct(ideal, maxPercentage.Value)
		if bases := ideal + maxBases.Value; bases < maxLength {
			maxLength = bases
		}
	case maxPercentage.On:
		maxLength = roundedProduct(ideal, maxPercentage.Value)
	case maxBases.On:
		maxLength = ideal + maxBases.Value
	default:
		maxLength = math.MaxInt
	}
	return
}

// FindQueryPaths reconstructs the paths through g that connect hits
// of the query from its start to its end, and keeps those that pass
// the thresholds in settings. The result is also stored in the query.
func (q *Query) FindQueryPaths(ctx context.Context, g *graph.AssemblyGraph, settings Settings) ([]QueryPath, error) {
	q.paths = nil
	q.generation = g.Generation()
	if len(q.hits) > 0 {
		q.state = PathsReconstructed
	}
	if len(q.hits) == 0 || len(q.hits) > settings.MaxHitsForQueryPath || q.Length() == 0 {
		return nil, nil
	}

	k := q.nucleotideFactor()
	queryLength := q.NucleotideLength()

	var startHits, endHits []*Hit
	for _, hit := range q.hits {
		if hit.QueryStartFraction() <= 1-settings.MinQueryCoveredByPath {
			startHits = append(startHits, hit)
		}
		if hit.QueryEndFraction() >= settings.MinQueryCoveredByPath {
			endHits = append(endHits, hit)
		}
	}

	var candidates []QueryPath
	for _, start := range startHits {
		for _, end := range endHits {
			ideal := queryLength - (start.QueryStart-1)*k - (q.Length()-end.QueryEnd)*k
			minLength, maxLength := lengthBounds(ideal, settings)
			paths, err := graph.AllPossiblePaths(ctx, start.StartLocation(), end.EndLocation(),
				settings.MaxQueryPathNodes-1, minLength, maxLength)
			if err != nil {
				return nil, err
			}
			for _, path := range paths {
				candidates = append(candidates, NewQueryPath(path, q))
			}
		}
	}

	var passing []QueryPath
	for _, candidate := range candidates {
		if candidate.passes(settings) {
			passing = append(passing, candidate)
		}
	}

	var unique []QueryPath
	for _, candidate := range passing {
		duplicate := false
		for _, kept := range unique {
			if kept.path.Equal(candidate.path) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			unique = append(unique, candidate)
		}
	}

	var result []QueryPath
	for i, candidate := range unique {
		subset := false
		for j, other := range unique {
			if i != j && candidate.path.HasNodeSubset(other.path) {
				subset = true
				break
			}
		}
		if !subset {
			result = append(result, candidate)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Less(result[j])
	})
	q.paths = result
	return result, nil
}
