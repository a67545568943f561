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

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// ValueUsingFractionalIndex returns the value at a fractional index
// of a sorted slice, interpolating linearly between the two closest
// elements.
func ValueUsingFractionalIndex(sorted []float64, index float64) float64 {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}
	whole := int(index)
	if index < 0 || whole < 0 {
		return sorted[0]
	}
	if whole >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	fraction := index - float64(whole)
	return sorted[whole]*(1-fraction) + sorted[whole+1]*fraction
}

// NodeStats summarizes the lengths of the positive nodes.
type NodeStats struct {
	N50, Shortest, FirstQuartile, Median, ThirdQuartile, Longest int
}

// NodeStats computes length statistics over the positive nodes.
func (g *AssemblyGraph) NodeStats() (stats NodeStats) {
	var lengths []float64
	total := 0
	for _, n := range g.PositiveNodes() {
		lengths = append(lengths, float64(n.Length()))
		total += n.Length()
	}
	if len(lengths) == 0 {
		return
	}
	sort.Float64s(lengths)

	last := float64(len(lengths) - 1)
	stats.Shortest = int(lengths[0])
	stats.Longest = int(lengths[len(lengths)-1])
	stats.FirstQuartile = int(math.Round(ValueUsingFractionalIndex(lengths, last/4)))
	stats.Median = int(math.Round(ValueUsingFractionalIndex(lengths, last/2)))
	stats.ThirdQuartile = int(math.Round(ValueUsingFractionalIndex(lengths, 3*last/4)))

	half := float64(total) / 2
	sum := 0.0
	for i := len(lengths) - 1; i >= 0; i-- {
		sum += lengths[i]
		if sum >= half {
			stats.N50 = int(lengths[i])
			break
		}
	}
	return
}

// TotalLength returns the sum of the lengths of the positive nodes.
func (g *AssemblyGraph) TotalLength() (total int) {
	for _, n := range g.PositiveNodes() {
		total += n.Length()
	}
	return
}

// TotalLengthMinusEdgeOverlaps returns the total length of the
// positive nodes, where each node is shortened by the largest overlap
// of its entering edges.
func (g *AssemblyGraph) TotalLengthMinusEdgeOverlaps() (total int) {
	for _, n := range g.PositiveNodes() {
		maxOverlap := 0
		for _, e := range n.EnteringEdges() {
			if e.overlap > maxOverlap {
				maxOverlap = e.overlap
			}
		}
		total += n.Length() - maxOverlap
	}
	return
}

// MeanDepth returns the length-weighted mean depth of the positive
// nodes.
func (g *AssemblyGraph) MeanDepth() float64 {
	return meanDepth(g.PositiveNodes())
}

func meanDepth(nodes []*Node) float64 {
	totalLength, weighted := 0, 0.0
	for _, n := range nodes {
		totalLength += n.Length()
		weighted += float64(n.Length()) * n.depth
	}
	if totalLength == 0 {
		return 0
	}
	return weighted / float64(totalLength)
}

// MedianDepthByBase returns the median depth over all bases of the
// positive nodes.
func (g *AssemblyGraph) MedianDepthByBase() float64 {
	nodes := g.PositiveNodes()
	if len(nodes) == 0 {
		return 0
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].depth < nodes[j].depth
	})
	total := 0
	for _, n := range nodes {
		total += n.Length()
	}
	if total == 0 {
		return 0
	}
	if total%2 == 1 {
		return depthAtBase(nodes, (total+1)/2)
	}
	return (depthAtBase(nodes, total/2) + depthAtBase(nodes, total/2+1)) / 2
}

// depthAtBase returns the depth of the node that contains the given
// 1-based base, counting over the nodes in order.
func depthAtBase(nodes []*Node, base int) float64 {
	sum := 0
	for _, n := range nodes {
		sum += n.Length()
		if sum >= base {
			return n.depth
		}
	}
	return nodes[len(nodes)-1].depth
}

// DepthQuartiles returns the first quartile, median and third
// quartile of the depths of the positive nodes.
func (g *AssemblyGraph) DepthQuartiles() (first, median, third float64) {
	var depths []float64
	for _, n := range g.PositiveNodes() {
		depths = append(depths, n.depth)
	}
	sort.Float64s(depths)
	last := float64(len(depths) - 1)
	return ValueUsingFractionalIndex(depths, last/4),
		ValueUsingFractionalIndex(depths, last/2),
		ValueUsingFractionalIndex(depths, 3*last/4)
}

// ComponentCountAndLargestComponentSize returns the number of
// connected components, and the total length of the positive nodes
// in the largest one.
func (g *AssemblyGraph) ComponentCountAndLargestComponentSize() (count, largest int) {
	visited := bitset.New(uint(len(g.nodes)))
	for _, n := range g.PositiveNodes() {
		if visited.Test(uint(n.id)) {
			continue
		}
		count++
		size := 0
		visited.Set(uint(n.id))
		queue := []*Node{n}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			size += current.Length()
			for _, other := range current.AllConnectedPositiveNodes() {
				if !visited.Test(uint(other.id)) {
					visited.Set(uint(other.id))
					queue = append(queue, other)
				}
			}
		}
		if size > largest {
			largest = size
		}
	}
	return
}

// DeadEndCount returns the number of node ends without edges over all
// positive nodes.
func (g *AssemblyGraph) DeadEndCount() (count int) {
	for _, n := range g.PositiveNodes() {
		count += n.DeadEndCount()
	}
	return
}

// OverlapRange returns the smallest and largest edge overlap. Both
// are 0 for a graph without edges.
func (g *AssemblyGraph) OverlapRange() (smallest, largest int) {
	smallest = math.MaxInt
	for _, e := range g.edges {
		if e == nil {
			continue
		}
		if e.overlap < smallest {
			smallest = e.overlap
		}
		if e.overlap > largest {
			largest = e.overlap
		}
	}
	if smallest == math.MaxInt {
		smallest = 0
	}
	return
}

// EstimatedSequenceLength estimates the length of the underlying
// sequence, counting each node as many times as its depth relative to
// the median depth suggests. It returns 0 if the median depth is 0.
func (g *AssemblyGraph) EstimatedSequenceLength() int {
	median := g.MedianDepthByBase()
	if median == 0 {
		return 0
	}
	total := 0
	for _, n := range g.PositiveNodes() {
		copies := int(math.Round(n.depth / median))
		total += copies * n.LengthWithoutTrailingOverlap()
	}
	return total
}
