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
	"strings"
	"testing"

	"github.com/exascience/elgraph/sequence"
)

const chainHits = `# BLASTN
q1	A	100.00	10	0	0	1	10	1	10	1e-05	20.0
q1	B+	100.00	10	0	0	8	17	1	10	1e-05	20.0
q1	C	100.00	10	0	0	15	24	1	10	1e-05	20.0
q1	C	90.00	10	1	0	15	24	10	1	3.5e-2	12.5
`

func TestParseBlastHits(t *testing.T) {
	g := chainGraph(t)
	queries := NewQueries()
	q := queries.AddQuery("q1", sequence.FromString(chainSequence))
	kept, err := ParseBlastHits(strings.NewReader(chainHits), g, queries, DefaultSettings().HitFilters)
	if err != nil {
		t.Fatal(err)
	}
	if kept != 4 || len(q.Hits()) != 4 || q.State() != HitsCollected {
		t.Fatal("ParseBlastHits failed", kept)
	}
	reverse := q.Hits()[3]
	if reverse.Node.Name() != "C-" || reverse.NodeStart != 1 || reverse.NodeEnd != 10 {
		t.Error("reverse strand hit failed", reverse.Node.Name(), reverse.NodeStart, reverse.NodeEnd)
	}
	if reverse.EValue.Exponent != -2 || reverse.BitScore != 12.5 || reverse.Mismatches != 1 {
		t.Error("hit fields failed")
	}
	if nodes := queries.NodesWithHits(); len(nodes) != 4 {
		t.Error("NodesWithHits failed", len(nodes))
	}

	if err := queries.FindAllQueryPaths(context.Background(), g, DefaultSettings()); err != nil {
		t.Fatal(err)
	}
	if len(q.Paths()) != 1 || q.Paths()[0].Path().String() != "A+, B+, C+" {
		t.Error("FindAllQueryPaths failed")
	}

	queries.ClearSearchResults()
	filters := DefaultSettings().HitFilters
	filters.MinBitScore.On = true
	filters.MinBitScore.Value = 15
	if kept, _ := ParseBlastHits(strings.NewReader(chainHits), g, queries, filters); kept != 3 {
		t.Error("bit score filter failed", kept)
	}
	queries.ClearSearchResults()
	filters = DefaultSettings().HitFilters
	filters.MinIdentity.On = true
	filters.MaxEValue.On = true
	filters.MaxEValue.Value = 1e-3
	if kept, _ := ParseBlastHits(strings.NewReader(chainHits), g, queries, filters); kept != 3 {
		t.Error("identity and e-value filters failed", kept)
	}

	failures := []string{
		"q2\tA\t100\t10\t0\t0\t1\t10\t1\t10\t1e-5\t20\n",
		"q1\tZ\t100\t10\t0\t0\t1\t10\t1\t10\t1e-5\t20\n",
		"q1\tA\t100\t10\t0\t0\t1\t10\t1\t10\t1e-5\n",
		"q1\tA\t100\tten\t0\t0\t1\t10\t1\t10\t1e-5\t20\n",
		"q1\tA\t100\t10\t0\t0\t1\t30\t1\t10\t1e-5\t20\n",
		"q1\tA\t100\t10\t0\t0\t1\t10\t1\t11\t1e-5\t20\n",
	}
	for _, failure := range failures {
		if _, err := ParseBlastHits(strings.NewReader(failure), g, queries, filters); err == nil {
			t.Errorf("invalid hit %q accepted", failure)
		}
	}
}

func TestQueries(t *testing.T) {
	queries := NewQueries()
	seq := sequence.FromString("ACGT")
	if queries.AddQuery("my query", seq).Name() != "my_query" {
		t.Error("AddQuery 1 failed")
	}
	if queries.AddQuery("my  query", seq).Name() != "my_query_2" {
		t.Error("AddQuery 2 failed")
	}
	if queries.AddQuery(" ", seq).Name() != "Query_3" {
		t.Error("AddQuery 3 failed")
	}
	if queries.Len() != 3 || queries.Query("my_query_2") == nil || queries.Query("my query") != nil {
		t.Error("query lookup failed")
	}
	if err := queries.FindAllQueryPaths(context.Background(), chainGraph(t), DefaultSettings()); err != nil {
		t.Error("FindAllQueryPaths without hits failed", err)
	}
}

func TestSettings(t *testing.T) {
	settings, err := ParseSettings([]byte("max-query-path-nodes: 8\nmin-query-covered-by-hits:\n  enabled: false\n"))
	if err != nil {
		t.Fatal(err)
	}
	if settings.MaxQueryPathNodes != 8 || settings.MinQueryCoveredByHits.On {
		t.Error("ParseSettings failed")
	}
	if settings.MaxHitsForQueryPath != 100 || settings.MinQueryCoveredByPath != 0.9 || !settings.MaxEValueProduct.On {
		t.Error("defaults not kept")
	}
	if _, err := ParseSettings([]byte("max-query-path-nodes: 0\n")); err == nil {
		t.Error("invalid settings accepted")
	}
	if _, err := ParseSettings([]byte("min-length-percentage: {value: 2, enabled: true}\n")); err == nil {
		t.Error("inconsistent length percentages accepted")
	}
	if _, err := ParseSettings([]byte("max-hits-for-query-path: [1\n")); err == nil {
		t.Error("malformed settings accepted")
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Error("default settings invalid", err)
	}
}
