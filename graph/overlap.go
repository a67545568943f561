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

package graph

import "github.com/exascience/pargo/parallel"

// Default bounds for AutoDetermineAllEdgesExactOverlap.
const (
	DefaultMinAutoOverlap = 10
	DefaultMaxAutoOverlap = 200
)

// AutoDetermineAllEdgesExactOverlap determines the overlap of every
// edge from the node sequences. Each edge first gets the largest
// exact overlap in [minOverlap, maxOverlap]. Then the overlaps found
// are ranked by how often they occur, and every edge switches to the
// most common overlap that also fits it exactly, if that one ranks
// higher than its own.
//
// The re-ranking is greedy, so graphs with genuinely different
// overlaps on different edges may end up with a common overlap where
// a longer one would also fit.
func (g *AssemblyGraph) AutoDetermineAllEdgesExactOverlap(minOverlap, maxOverlap int) {
	edges := g.Edges()
	if len(edges) == 0 {
		return
	}
	if minOverlap < 0 {
		minOverlap = 0
	}
	if maxOverlap < minOverlap {
		maxOverlap = minOverlap
	}
	longest := 0
	for _, n := range g.nodes {
		if n != nil && n.Length() > longest {
			longest = n.Length()
		}
	}
	if maxOverlap > longest {
		maxOverlap = longest
	}

	parallel.Range(0, len(edges), 0, func(low, high int) {
		for _, e := range edges[low:high] {
			e.AutoDetermineExactOverlap(minOverlap, maxOverlap)
		}
	})

	counts := make([]int, maxOverlap+1)
	for _, e := range edges {
		counts[e.overlap]++
	}
	var ranked []int
	for {
		mode, modeCount := 0, 0
		for overlap, count := range counts {
			if count > modeCount {
				mode, modeCount = overlap, count
			}
		}
		if modeCount == 0 {
			break
		}
		ranked = append(ranked, mode)
		counts[mode] = 0
	}

	for _, e := range edges {
		for _, overlap := range ranked {
			if e.overlap == overlap {
				break
			}
			if e.TestExactOverlap(overlap) {
				e.setOverlapPair(overlap, AutoDeterminedExactOverlap)
				break
			}
		}
	}
	g.touch()
}
