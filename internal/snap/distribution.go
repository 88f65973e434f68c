/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"

	"snapguide/internal/geom"
)

// GapEpsilon is how far two gaps may differ and still count as equal.
const GapEpsilon = 1e-3

// ProjectionKind says which agent feature a projection targets.
type ProjectionKind int

const (
	// Forward continues a pattern after its last range; the agent start lands on P.
	Forward ProjectionKind = iota
	// Backward continues a pattern before its first range; the agent end lands on P.
	Backward
	// Bisect centers the agent inside a gap; the agent center lands on P.
	Bisect
)

func (k ProjectionKind) String() string {
	switch k {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Bisect:
		return "bisect"
	default:
		return "unknown"
	}
}

func (k ProjectionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// ProjectionPoint is a candidate position derived from an observed gap.
// O is the range edge it was projected from. Fwd is the index of the loop it
// extends, or -1 for an isolated pair or a bisection. Lo and Hi are the
// ranges bounding the gap the projection repeats.
type ProjectionPoint struct {
	P    float64        `json:"p"`
	O    float64        `json:"o"`
	Fwd  int            `json:"fwd"`
	Kind ProjectionKind `json:"kind"`
	Lo   int            `json:"lo"`
	Hi   int            `json:"hi"`
	Gap  float64        `json:"gap"`
}

// Gap is the free space between two adjacent, non-overlapping ranges.
type Gap struct {
	Lo   int     `json:"lo"`
	Hi   int     `json:"hi"`
	Size float64 `json:"size"`
}

// Loop is a maximal run of ranges, in position order, whose consecutive gaps are equal.
type Loop struct {
	Members []int   `json:"members"`
	Gap     float64 `json:"gap"`
}

// Distribution groups projections per loop or isolated pair.
type Distribution struct {
	Loops []Loop              `json:"loops"`
	Gaps  []Gap               `json:"gaps"`
	A     [][]ProjectionPoint `json:"a"`
	B     [][]ProjectionPoint `json:"b"`
	C     [][]ProjectionPoint `json:"c"`
}

// ResolveDistribution finds the equal-gap patterns among ranges.
//
// Only adjacent pairs are considered: a pair is skipped when it overlaps or
// when another range sits entirely inside its gap. Gaps are clustered by size
// and, per cluster, chained lo->hi into runs. A run of three or more ranges
// becomes a Loop with one forward and one backward projection at its open
// ends; a run of two is an isolated pair projected like RepeatedPoints.
// Every adjacent gap also yields a bisection point. Indices refer to ranges.
func ResolveDistribution(ranges []geom.Range) Distribution {
	var d Distribution
	order := make([]int, len(ranges))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := ranges[order[a]], ranges[order[b]]
		if ra.Start != rb.Start {
			return ra.Start < rb.Start
		}
		return ra.End < rb.End
	})

	d.Gaps = adjacentGaps(ranges, order)

	for _, cluster := range clusterGaps(d.Gaps) {
		for _, run := range chainRuns(d.Gaps, cluster) {
			first, last := d.Gaps[run[0]], d.Gaps[run[len(run)-1]]
			if len(run) == 1 {
				d.A = append(d.A, []ProjectionPoint{{
					P: ranges[first.Hi].End + first.Size, O: ranges[first.Hi].End, Fwd: -1,
					Kind: Forward, Lo: first.Lo, Hi: first.Hi, Gap: first.Size,
				}})
				d.B = append(d.B, []ProjectionPoint{{
					P: ranges[first.Lo].Start - first.Size, O: ranges[first.Lo].Start, Fwd: -1,
					Kind: Backward, Lo: first.Lo, Hi: first.Hi, Gap: first.Size,
				}})
				continue
			}
			loop := Loop{Members: []int{first.Lo}}
			sum := 0.0
			for _, gi := range run {
				loop.Members = append(loop.Members, d.Gaps[gi].Hi)
				sum += d.Gaps[gi].Size
			}
			loop.Gap = sum / float64(len(run))
			idx := len(d.Loops)
			d.Loops = append(d.Loops, loop)
			d.A = append(d.A, []ProjectionPoint{{
				P: ranges[last.Hi].End + loop.Gap, O: ranges[last.Hi].End, Fwd: idx,
				Kind: Forward, Lo: last.Lo, Hi: last.Hi, Gap: loop.Gap,
			}})
			d.B = append(d.B, []ProjectionPoint{{
				P: ranges[first.Lo].Start - loop.Gap, O: ranges[first.Lo].Start, Fwd: idx,
				Kind: Backward, Lo: first.Lo, Hi: first.Hi, Gap: loop.Gap,
			}})
		}
	}

	for _, g := range d.Gaps {
		d.C = append(d.C, []ProjectionPoint{{
			P: ranges[g.Lo].End + g.Size/2, O: ranges[g.Lo].End, Fwd: -1,
			Kind: Bisect, Lo: g.Lo, Hi: g.Hi, Gap: g.Size,
		}})
	}
	return d
}

// adjacentGaps sweeps the ranges in position order and returns every
// non-overlapping pair with no third range inside its gap. For a fixed lo,
// minEnd is the smallest end among the ranges passed so far that start
// after lo; once it is at or before the next start every later pair is
// blocked as well.
func adjacentGaps(ranges []geom.Range, order []int) []Gap {
	var gaps []Gap
	for a, lo := range order {
		minEnd := math.Inf(1)
		for _, hi := range order[a+1:] {
			if minEnd <= ranges[hi].Start {
				break
			}
			if size := ranges[hi].Start - ranges[lo].End; size >= 0 {
				gaps = append(gaps, Gap{Lo: lo, Hi: hi, Size: size})
			}
			if ranges[hi].Start >= ranges[lo].End {
				minEnd = math.Min(minEnd, ranges[hi].End)
			}
		}
	}
	return gaps
}

// clusterGaps groups gap indices whose sizes are within GapEpsilon of the
// smallest size in the group. Groups and members keep a stable order.
func clusterGaps(gaps []Gap) [][]int {
	idx := make([]int, len(gaps))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return gaps[idx[a]].Size < gaps[idx[b]].Size })

	var out [][]int
	for _, gi := range idx {
		n := len(out)
		if n > 0 && scalar.EqualWithinAbs(gaps[out[n-1][0]].Size, gaps[gi].Size, GapEpsilon) {
			out[n-1] = append(out[n-1], gi)
			continue
		}
		out = append(out, []int{gi})
	}
	for _, c := range out {
		sort.Ints(c)
	}
	return out
}

// chainRuns links the gaps of one cluster into maximal chains where each
// gap's hi range is the next gap's lo range. Each range takes at most one
// successor and one predecessor. Chains are grown longest first, following
// the successor with the longest continuation, so a branching range keeps
// the branch that extends the pattern. Gaps left out of every chain are
// returned as runs of one. Runs are ordered by their first gap.
func chainRuns(gaps []Gap, cluster []int) [][]int {
	succ := map[int][]int{} // lo range -> gaps starting there
	for _, gi := range cluster {
		succ[gaps[gi].Lo] = append(succ[gaps[gi].Lo], gi)
	}
	depth := map[int]int{}
	var chainLen func(gi int) int
	chainLen = func(gi int) int {
		if n, ok := depth[gi]; ok {
			return n
		}
		n := 1
		for _, s := range succ[gaps[gi].Hi] {
			n = max(n, 1+chainLen(s))
		}
		depth[gi] = n
		return n
	}
	byLen := append([]int(nil), cluster...)
	sort.SliceStable(byLen, func(a, b int) bool { return chainLen(byLen[a]) > chainLen(byLen[b]) })

	taken := map[int]bool{}
	hasNext := map[int]bool{}
	hasPrev := map[int]bool{}
	free := func(gi int) bool {
		return !taken[gi] && !hasNext[gaps[gi].Lo] && !hasPrev[gaps[gi].Hi]
	}
	take := func(gi int) {
		taken[gi] = true
		hasNext[gaps[gi].Lo] = true
		hasPrev[gaps[gi].Hi] = true
	}

	var runs [][]int
	for _, gi := range byLen {
		if !free(gi) {
			continue
		}
		run := []int{gi}
		take(gi)
		for {
			best := -1
			for _, s := range succ[gaps[run[len(run)-1]].Hi] {
				if free(s) && (best < 0 || chainLen(s) > chainLen(best)) {
					best = s
				}
			}
			if best < 0 {
				break
			}
			run = append(run, best)
			take(best)
		}
		runs = append(runs, run)
	}
	for _, gi := range cluster {
		if !taken[gi] {
			runs = append(runs, []int{gi})
		}
	}
	sort.SliceStable(runs, func(a, b int) bool { return runs[a][0] < runs[b][0] })
	return runs
}
