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

import "context"

// AllPossiblePaths enumerates the paths from start to end whose
// length lies in [minLength, maxLength]. Paths are extended for at
// most maxSteps edges. A path that reaches the end node is recorded
// and still extended, so paths that pass through the end node more
// than once are found as well. The context is checked once per
// extension round.
func AllPossiblePaths(ctx context.Context, start, end Location, maxSteps, minLength, maxLength int) ([]Path, error) {
	if start.IsNull() || end.IsNull() {
		return nil, nil
	}
	unfinished := []Path{{
		nodes: []*Node{start.node},
		start: start,
		end:   EndOf(start.node),
	}}
	var finished []Path

	for step := 0; step <= maxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		surviving := unfinished[:0]
		for _, p := range unfinished {
			if p.nodes[len(p.nodes)-1] == end.node {
				candidate := p.clone()
				candidate.end = end
				if length := candidate.Length(); length >= minLength && length <= maxLength {
					finished = append(finished, candidate)
				}
				surviving = append(surviving, p)
			} else if p.Length() <= maxLength {
				surviving = append(surviving, p)
			}
		}

		if step == maxSteps {
			break
		}

		var extended []Path
		for _, p := range surviving {
			for _, e := range p.nodes[len(p.nodes)-1].LeavingEdges() {
				next := p.clone()
				next.nodes = append(next.nodes, e.End())
				next.edges = append(next.edges, e)
				next.end = EndOf(e.End())
				extended = append(extended, next)
			}
		}
		unfinished = extended
	}
	return finished, nil
}
