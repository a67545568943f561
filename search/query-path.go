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
	"sort"

	"github.com/exascience/elgraph/graph"
)

// A QueryPath is a path through the graph together with the hits of
// one query that it explains, in order along both the path and the
// query.
type QueryPath struct {
	query *Query
	path  graph.Path
	hits  []*Hit
}

// NewQueryPath collects the hits of the query that lie on the path.
// On the first and last node only hits within the path's start and
// end positions count, and every hit must start later in the query
// than the one before it.
func NewQueryPath(path graph.Path, query *Query) QueryPath {
	qp := QueryPath{query: query, path: path}
	nodes := path.Nodes()
	var previous *Hit
	for i, node := range nodes {
		var onNode []*Hit
		for _, hit := range query.hits {
			if hit.Node != node {
				continue
			}
			if i == 0 && hit.NodeStart < path.StartLocation().Position() {
				continue
			}
			if i == len(nodes)-1 && hit.NodeEnd > path.EndLocation().Position() {
				continue
			}
			onNode = append(onNode, hit)
		}
		sort.SliceStable(onNode, func(i, j int) bool {
			return onNode[i].QueryStart < onNode[j].QueryStart
		})
		for _, hit := range onNode {
			if previous == nil || hit.QueryStart > previous.QueryStart {
				qp.hits = append(qp.hits, hit)
				previous = hit
			}
		}
	}
	return qp
}

// Query returns the query the path belongs to.
func (qp QueryPath) Query() *Query { return qp.query }

// Path returns the graph path.
func (qp QueryPath) Path() graph.Path { return qp.path }

// Hits returns the hits explained by the path.
func (qp QueryPath) Hits() []*Hit { return qp.hits }

// PathQueryCoverage returns the fraction of the query between the
// start of the first hit and the end of the last hit.
func (qp QueryPath) PathQueryCoverage() float64 {
	if len(qp.hits) == 0 {
		return 0
	}
	length := qp.query.Length()
	notIncluded := qp.hits[0].QueryStart - 1 + length - qp.hits[len(qp.hits)-1].QueryEnd
	return 1 - float64(notIncluded)/float64(length)
}

// HitsQueryCoverage returns the fraction of the query covered by the
// union of the path's hits.
func (qp QueryPath) HitsQueryCoverage() float64 {
	if len(qp.hits) == 0 {
		return 0
	}
	return qp.query.FractionCoveredByHits(qp.hits)
}

// MeanHitIdentity returns the percent identity of the hits, weighted
// by alignment length.
func (qp QueryPath) MeanHitIdentity() float64 {
	totalLength, weighted := 0, 0.0
	for _, hit := range qp.hits {
		totalLength += hit.AlignmentLength
		weighted += float64(hit.AlignmentLength) * hit.PercentIdentity
	}
	if totalLength == 0 {
		return 0
	}
	return weighted / float64(totalLength)
}

// EValueProduct returns the product of the e-values of the hits.
func (qp QueryPath) EValueProduct() SciNot {
	if len(qp.hits) == 0 {
		return SciNot{}
	}
	product := NewSciNot(1)
	for _, hit := range qp.hits {
		product = product.Mul(hit.EValue)
	}
	return product
}

// HitQueryLength returns the length in bases of the part of the query
// from the start of the first hit to the end of the last hit.
func (qp QueryPath) HitQueryLength() int {
	if len(qp.hits) == 0 {
		return 0
	}
	length := qp.hits[len(qp.hits)-1].QueryEnd - qp.hits[0].QueryStart + 1
	return length * qp.query.nucleotideFactor()
}

// RelativePathLength returns the path length divided by the hit query
// length.
func (qp QueryPath) RelativePathLength() float64 {
	hitLength := qp.HitQueryLength()
	if hitLength == 0 {
		return 0
	}
	return float64(qp.path.Length()) / float64(hitLength)
}

// AbsolutePathLengthDifference returns the path length minus the hit
// query length.
func (qp QueryPath) AbsolutePathLengthDifference() int {
	return qp.path.Length() - qp.HitQueryLength()
}

// TotalMismatches sums the mismatches of the hits.
func (qp QueryPath) TotalMismatches() (total int) {
	for _, hit := range qp.hits {
		total += hit.Mismatches
	}
	return
}

// TotalGapOpens sums the gap openings of the hits.
func (qp QueryPath) TotalGapOpens() (total int) {
	for _, hit := range qp.hits {
		total += hit.GapOpens
	}
	return
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Less orders query paths from best to worst: by e-value product,
// then query coverage, length discrepancy, mismatches, gap openings
// and finally mean identity.
func (qp QueryPath) Less(other QueryPath) bool {
	if e1, e2 := qp.EValueProduct(), other.EValueProduct(); e1 != e2 {
		return e1.Less(e2)
	}
	if c1, c2 := qp.PathQueryCoverage(), other.PathQueryCoverage(); c1 != c2 {
		return c1 > c2
	}
	if d1, d2 := abs(qp.AbsolutePathLengthDifference()), abs(other.AbsolutePathLengthDifference()); d1 != d2 {
		return d1 < d2
	}
	if m1, m2 := qp.TotalMismatches(), other.TotalMismatches(); m1 != m2 {
		return m1 < m2
	}
	if g1, g2 := qp.TotalGapOpens(), other.TotalGapOpens(); g1 != g2 {
		return g1 < g2
	}
	return qp.MeanHitIdentity() > other.MeanHitIdentity()
}

func (qp QueryPath) passes(settings Settings) bool {
	if qp.PathQueryCoverage() < settings.MinQueryCoveredByPath {
		return false
	}
	if s := settings.MinQueryCoveredByHits; s.On && qp.HitsQueryCoverage() < s.Value {
		return false
	}
	if s := settings.MaxEValueProduct; s.On && NewSciNot(s.Value).Less(qp.EValueProduct()) {
		return false
	}
	if s := settings.MinMeanHitIdentity; s.On && qp.MeanHitIdentity() < 100*s.Value {
		return false
	}
	relative := qp.RelativePathLength()
	if s := settings.MinLengthPercentage; s.On && relative < s.Value {
		return false
	}
	if s := settings.MaxLengthPercentage; s.On && relative > s.Value {
		return false
	}
	difference := qp.AbsolutePathLengthDifference()
	if s := settings.MinLengthBaseDiscrepancy; s.On && difference < s.Value {
		return false
	}
	if s := settings.MaxLengthBaseDiscrepancy; s.On && difference > s.Value {
		return false
	}
	return true
}
