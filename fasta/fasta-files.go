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

// Package fasta reads query sequences and writes path sequences in
// FASTA format.
package fasta

import (
	"bufio"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/exascience/elgraph/search"
	"github.com/exascience/elgraph/sequence"
	"github.com/exascience/elgraph/utils"
)

// LineWidth is the number of bases per line in written FASTA records.
const LineWidth = 70

// ReadQueries adds every record of a FASTA stream as a query. The
// query name is the first word of the header line. Records without
// bases are skipped.
func ReadQueries(r io.Reader, queries *search.Queries) (added []*search.Query, err error) {
	reader := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	for {
		s, err := reader.Read()
		if err == io.EOF {
			return added, nil
		} else if err != nil {
			return added, err
		}
		l := s.(*linear.Seq)
		if len(l.Seq) == 0 {
			continue
		}
		bases := make([]byte, len(l.Seq))
		for i, letter := range l.Seq {
			bases[i] = byte(letter)
		}
		added = append(added, queries.AddQuery(l.Name(), sequence.New(bases)))
	}
}

// LoadQueries reads the named FASTA file, which may be gzip or zstd
// compressed, and adds its records as queries.
func LoadQueries(filename string, queries *search.Queries) (added []*search.Query, err error) {
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
	return ReadQueries(r, queries)
}

// A Writer writes named sequences as FASTA records.
type Writer struct {
	w *fasta.Writer
}

// NewWriter returns a Writer that wraps lines at LineWidth.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: fasta.NewWriter(w, LineWidth)}
}

// Write writes one record. Missing sequences are written as a single
// "*" placeholder.
func (w *Writer) Write(name string, seq *sequence.Sequence) error {
	s := linear.NewSeq(name, alphabet.BytesToLetters([]byte(seq.String())), alphabet.DNAredundant)
	_, err := w.w.Write(s)
	return err
}
