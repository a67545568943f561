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
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SciNot is a non-negative number in scientific notation. It keeps
// the exponent separately so that products of many small e-values do
// not underflow.
type SciNot struct {
	Mantissa float64
	Exponent int
}

func normalize(mantissa float64, exponent int) SciNot {
	if mantissa == 0 || math.IsNaN(mantissa) || math.IsInf(mantissa, 0) {
		return SciNot{}
	}
	text := strconv.FormatFloat(mantissa, 'e', -1, 64)
	i := strings.IndexByte(text, 'e')
	m, _ := strconv.ParseFloat(text[:i], 64)
	e, _ := strconv.Atoi(text[i+1:])
	return SciNot{Mantissa: m, Exponent: exponent + e}
}

// NewSciNot converts a float64.
func NewSciNot(f float64) SciNot {
	return normalize(f, 0)
}

// ParseSciNot parses a number such as "3.2e-150" or "0.004". The
// exponent is parsed separately, so values below the float64 range
// are represented exactly.
func ParseSciNot(text string) (SciNot, error) {
	text = strings.TrimSpace(text)
	mantissaText, exponentText := text, ""
	if i := strings.IndexAny(text, "eE"); i >= 0 {
		mantissaText, exponentText = text[:i], text[i+1:]
	}
	mantissa, err := strconv.ParseFloat(mantissaText, 64)
	if err != nil {
		return SciNot{}, fmt.Errorf("invalid number %q: %w", text, err)
	}
	exponent := 0
	if exponentText != "" {
		if exponent, err = strconv.Atoi(exponentText); err != nil {
			return SciNot{}, fmt.Errorf("invalid exponent in %q: %w", text, err)
		}
	}
	return normalize(mantissa, exponent), nil
}

// IsZero returns true for 0.
func (a SciNot) IsZero() bool { return a.Mantissa == 0 }

// Mul returns the product a * b.
func (a SciNot) Mul(b SciNot) SciNot {
	return normalize(a.Mantissa*b.Mantissa, a.Exponent+b.Exponent)
}

// Less returns true if a < b.
func (a SciNot) Less(b SciNot) bool {
	switch {
	case a.IsZero():
		return !b.IsZero()
	case b.IsZero():
		return false
	case a.Exponent != b.Exponent:
		return a.Exponent < b.Exponent
	default:
		return a.Mantissa < b.Mantissa
	}
}

// Float64 converts to float64, which may underflow to 0.
func (a SciNot) Float64() float64 {
	return a.Mantissa * math.Pow10(a.Exponent)
}

func (a SciNot) String() string {
	if a.IsZero() {
		return "0"
	}
	return strconv.FormatFloat(a.Mantissa, 'g', 3, 64) + "e" + strconv.Itoa(a.Exponent)
}
