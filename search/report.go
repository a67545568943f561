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
	"fmt"
	"io"
)

// QueryPathColumns is the header of the table written by
// WriteQueryPaths.
const QueryPathColumns = "query\tpath-number\tpath\tlength\tquery-covered-by-path\tquery-covered-by-hits\tmean-hit-identity\te-value-product\trelative-length\tlength-discrepancy\tmismatches\tgap-opens"

// WriteQueryPaths writes one tab-separated row per query path, in the
// order of the queries and, per query, from best to worst path.
func WriteQueryPaths(w io.Writer, queries *Queries) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, QueryPathColumns)
	for _, q := range queries.All() {
		for i, qp := range q.Paths() {
			fmt.Fprintf(out, "%v\t%v\t%v\t%v\t%.4f\t%.4f\t%.2f\t%v\t%.4f\t%v\t%v\t%v\n",
				q.Name(), i+1, qp.Path(), qp.Path().Length(),
				qp.PathQueryCoverage(), qp.HitsQueryCoverage(), qp.MeanHitIdentity(),
				qp.EValueProduct(), qp.RelativePathLength(), qp.AbsolutePathLengthDifference(),
				qp.TotalMismatches(), qp.TotalGapOpens())
		}
	}
	return out.Flush()
}
