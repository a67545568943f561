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

import "github.com/exascience/elgraph/graph"

// A Hit is one local alignment of a query against a node. Query and
// node coordinates are 1-based and inclusive. Node coordinates always
// refer to the strand stored in Node.
type Hit struct {
	Query           *Query
	Node            *graph.Node
	PercentIdentity float64
	AlignmentLength int
	Mismatches      int
	GapOpens        int
	QueryStart      int
	QueryEnd        int
	NodeStart       int
	NodeEnd         int
	EValue          SciNot
	BitScore        float64
}

// StartLocation returns where the hit begins on its node.
func (hit *Hit) StartLocation() graph.Location {
	return graph.NewLocation(hit.Node, hit.NodeStart)
}

// EndLocation returns where the hit ends on its node.
func (hit *Hit) EndLocation() graph.Location {
	return graph.NewLocation(hit.Node, hit.NodeEnd)
}

// QueryStartFraction returns the part of the query before the hit, as
// a fraction of the query length.
func (hit *Hit) QueryStartFraction() float64 {
	return float64(hit.QueryStart-1) / float64(hit.Query.Length())
}

// QueryEndFraction returns the part of the query up to and including
// the end of the hit, as a fraction of the query length.
func (hit *Hit) QueryEndFraction() float64 {
	return float64(hit.QueryEnd) / float64(hit.Query.Length())
}

// QueryCoverage returns the fraction of the query aligned by the hit.
func (hit *Hit) QueryCoverage() float64 {
	return float64(hit.QueryEnd-hit.QueryStart+1) / float64(hit.Query.Length())
}

// Passes returns true if the hit meets all enabled filters.
func (filters HitFilters) Passes(hit *Hit) bool {
	switch {
	case filters.MinAlignmentLength.On && hit.AlignmentLength < filters.MinAlignmentLength.Value:
		return false
	case filters.MinQueryCoverage.On && hit.QueryCoverage() < filters.MinQueryCoverage.Value:
		return false
	case filters.MinIdentity.On && hit.PercentIdentity < 100*filters.MinIdentity.Value:
		return false
	case filters.MaxEValue.On && NewSciNot(filters.MaxEValue.Value).Less(hit.EValue):
		return false
	case filters.MinBitScore.On && hit.BitScore < filters.MinBitScore.Value:
		return false
	}
	return true
}
