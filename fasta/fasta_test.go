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

package fasta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/exascience/elgraph/search"
	"github.com/exascience/elgraph/sequence"
)

const testQueries = `>q1 first query
ACGTACGT
ACGT
>q2
MKVLAAGIVGLLL
>q1
TTTT
>empty
`

func TestReadQueries(t *testing.T) {
	queries := search.NewQueries()
	added, err := ReadQueries(strings.NewReader(testQueries), queries)
	if err != nil {
		t.Fatal(err)
	}
	if len(added) != 3 || queries.Len() != 3 {
		t.Fatal("ReadQueries count failed", len(added))
	}
	if added[0].Name() != "q1" || added[0].Sequence().String() != "ACGTACGTACGT" {
		t.Error("ReadQueries 1 failed", added[0].Name(), added[0].Sequence())
	}
	if added[0].Type() != search.Nucleotide {
		t.Error("ReadQueries 1 type failed")
	}
	if added[1].Name() != "q2" || added[1].Type() != search.Protein {
		t.Error("ReadQueries 2 failed")
	}
	if added[2].Name() == "q1" || queries.Query(added[2].Name()) != added[2] {
		t.Error("ReadQueries unique name failed", added[2].Name())
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write("path1", sequence.FromString(strings.Repeat("ACGT", 20))); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || lines[0] != ">path1" || len(lines[1]) != LineWidth || len(lines[2]) != 80-LineWidth {
		t.Error("Writer failed", lines)
	}

	queries := search.NewQueries()
	added, err := ReadQueries(&buf, queries)
	if err != nil || len(added) != 1 || added[0].Sequence().String() != strings.Repeat("ACGT", 20) {
		t.Error("Writer round trip failed")
	}
}
