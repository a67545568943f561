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
	"context"
	"strconv"
	"strings"

	"github.com/exascience/elgraph/graph"
	"github.com/exascience/elgraph/sequence"
	"github.com/exascience/pargo/parallel"
)

// Queries is an ordered collection of queries with unique names.
type Queries struct {
	queries []*Query
	byName  map[string]*Query
}

// NewQueries returns an empty collection.
func NewQueries() *Queries {
	return &Queries{byName: make(map[string]*Query)}
}

// uniqueName replaces whitespace with underscores, and appends "_2",
// "_3", and so on if the name is already used. Empty names become
// "Query_" followed by the query number.
func (qs *Queries) uniqueName(name string) string {
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		name = "Query_" + strconv.Itoa(len(qs.queries)+1)
	}
	if _, taken := qs.byName[name]; !taken {
		return name
	}
	for suffix := 2; ; suffix++ {
		candidate := name + "_" + strconv.Itoa(suffix)
		if _, taken := qs.byName[candidate]; !taken {
			return candidate
		}
	}
}

// AddQuery creates a query and adds it to the collection. The name is
// made unique if necessary.
func (qs *Queries) AddQuery(name string, seq *sequence.Sequence) *Query {
	q := NewQuery(qs.uniqueName(name), seq)
	qs.queries = append(qs.queries, q)
	qs.byName[q.name] = q
	return q
}

// Query returns the query with the given name, or nil.
func (qs *Queries) Query(name string) *Query {
	return qs.byName[name]
}

// All returns the queries in the order they were added.
func (qs *Queries) All() []*Query { return qs.queries }

// Len returns the number of queries.
func (qs *Queries) Len() int { return len(qs.queries) }

// HitCount returns the total number of hits of all queries.
func (qs *Queries) HitCount() (count int) {
	for _, q := range qs.queries {
		count += len(q.hits)
	}
	return
}

// ClearSearchResults removes the hits and paths of all queries.
func (qs *Queries) ClearSearchResults() {
	for _, q := range qs.queries {
		q.ClearSearchResults()
	}
}

// FindAllQueryPaths reconstructs the query paths of all queries in
// parallel. The graph must not be modified while this runs.
func (qs *Queries) FindAllQueryPaths(ctx context.Context, g *graph.AssemblyGraph, settings Settings) error {
	if len(qs.queries) == 0 {
		return nil
	}
	errs := make([]error, len(qs.queries))
	parallel.Range(0, len(qs.queries), 0, func(low, high int) {
		for i := low; i < high; i++ {
			_, errs[i] = qs.queries[i].FindQueryPaths(ctx, g, settings)
		}
	})
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// NodesWithHits returns the nodes that have at least one hit, in the
// order in which they are first hit.
func (qs *Queries) NodesWithHits() (nodes []*graph.Node) {
	seen := make(map[*graph.Node]bool)
	for _, q := range qs.queries {
		for _, hit := range q.hits {
			if !seen[hit.Node] {
				seen[hit.Node] = true
				nodes = append(nodes, hit.Node)
			}
		}
	}
	return
}
