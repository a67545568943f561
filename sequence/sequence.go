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

// Package sequence implements immutable nucleotide and protein
// sequences as they are stored in assembly graph nodes.
package sequence

import (
	"bytes"
	"sync"
)

// A Sequence is an immutable byte sequence. A Sequence is either
// present (possibly empty) or missing, which represents a node whose
// bases are not known.
//
// The reverse complement of a Sequence is computed lazily, and is
// linked back to the original, so that taking the reverse complement
// twice yields the very same Sequence.
type Sequence struct {
	bases   []byte
	missing bool
	once    sync.Once
	rc      *Sequence
}

var complementTable [256]byte

func init() {
	for i := range complementTable {
		complementTable[i] = byte(i)
	}
	for _, pair := range []string{"AT", "CG", "RY", "KM", "BV", "DH"} {
		a, b := pair[0], pair[1]
		complementTable[a], complementTable[b] = b, a
		la, lb := a+'a'-'A', b+'a'-'A'
		complementTable[la], complementTable[lb] = lb, la
	}
}

// Complement returns the complement of a single IUPAC nucleotide
// code, preserving case. Bytes that are not nucleotide codes are
// returned unchanged.
func Complement(base byte) byte {
	return complementTable[base]
}

// New returns a Sequence holding a copy of the given bases.
func New(bases []byte) *Sequence {
	return &Sequence{bases: append([]byte(nil), bases...)}
}

// FromString returns a Sequence for the given string.
func FromString(s string) *Sequence {
	return &Sequence{bases: []byte(s)}
}

// Missing returns a Sequence that represents unknown bases.
func Missing() *Sequence {
	return &Sequence{missing: true}
}

// IsMissing returns true if the bases of this Sequence are unknown.
func (s *Sequence) IsMissing() bool {
	return s == nil || s.missing
}

// Len returns the number of bases. A missing Sequence has length 0.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bases)
}

// At returns the base at the given 0-based index.
func (s *Sequence) At(i int) byte {
	return s.bases[i]
}

// Bytes returns the bases of the Sequence. The result must not be
// modified.
func (s *Sequence) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.bases
}

func (s *Sequence) String() string {
	if s.IsMissing() {
		return "*"
	}
	return string(s.bases)
}

// Subseq returns the half-open range [start, end) of the Sequence.
// The subsequence of a missing Sequence is missing.
func (s *Sequence) Subseq(start, end int) *Sequence {
	if s.IsMissing() {
		return Missing()
	}
	return New(s.bases[start:end])
}

// Equal returns true if both sequences are missing, or if both are
// present and have the same bases.
func (s *Sequence) Equal(other *Sequence) bool {
	if s.IsMissing() || other.IsMissing() {
		return s.IsMissing() && other.IsMissing()
	}
	return bytes.Equal(s.bases, other.bases)
}

// ReverseComplement returns the reverse complement of the Sequence.
// It is safe to call ReverseComplement concurrently.
func (s *Sequence) ReverseComplement() *Sequence {
	s.once.Do(func() {
		rc := &Sequence{missing: s.missing, rc: s}
		if !s.missing {
			rc.bases = ReverseComplementBytes(s.bases)
		}
		rc.once.Do(func() {})
		s.rc = rc
	})
	return s.rc
}

// ReverseComplementBytes returns a freshly allocated reverse
// complement of the given bases.
func ReverseComplementBytes(bases []byte) []byte {
	n := len(bases)
	result := make([]byte, n)
	for i, b := range bases {
		result[n-1-i] = complementTable[b]
	}
	return result
}
