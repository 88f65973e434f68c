/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"sort"
)

// Snap1DResult is the winning candidate on one axis.
// Distance is signed: adding it to the agent coordinate lands on the anchor.
// HitAgent and HitAnchor list (sorted, unique) every agent point and anchor
// whose distance is within tolerance of the winning one.
type Snap1DResult struct {
	Distance  float64 `json:"distance"`
	HitAgent  []int   `json:"hit_agent_indices"`
	HitAnchor []int   `json:"hit_anchor_indices"`
}

// Abs returns the magnitude of the winning distance.
func (r *Snap1DResult) Abs() float64 {
	if r == nil {
		return math.Inf(1)
	}
	return math.Abs(r.Distance)
}

// Snap1D finds the anchor closest to any of the agent points. A candidate is
// accepted when |distance| <= threshold+tolerance; among accepted candidates
// the smallest magnitude wins and the first enumerated (points outer, anchors
// inner) wins ties. A negative threshold disables matching. Returns nil when
// nothing is accepted.
func Snap1D(points, anchors []float64, threshold, tolerance float64) *Snap1DResult {
	if threshold < 0 || len(points) == 0 || len(anchors) == 0 {
		return nil
	}
	tolerance = math.Max(0, tolerance)
	limit := threshold + tolerance

	best, bestAbs := 0.0, math.Inf(1)
	for _, p := range points {
		for _, a := range anchors {
			d := a - p
			ad := math.Abs(d)
			if ad > limit {
				continue
			}
			if ad < bestAbs {
				best, bestAbs = d, ad
			}
		}
	}
	if math.IsInf(bestAbs, 1) {
		return nil
	}

	agentHits := map[int]struct{}{}
	anchorHits := map[int]struct{}{}
	for i, p := range points {
		for j, a := range anchors {
			if math.Abs((a-p)-best) <= tolerance {
				agentHits[i] = struct{}{}
				anchorHits[j] = struct{}{}
			}
		}
	}
	return &Snap1DResult{Distance: best, HitAgent: sortedKeys(agentHits), HitAnchor: sortedKeys(anchorHits)}
}

// Snap2DAxisAligned resolves x and y independently with Snap1D using the
// matching coordinate of every point. threshold is per axis; a negative
// component disables that axis.
func Snap2DAxisAligned(agent, anchors []Pt, threshold Vector2, tolerance float64) [2]*Snap1DResult {
	var out [2]*Snap1DResult
	for _, axis := range Axes {
		out[axis] = Snap1D(coords(agent, axis), coords(anchors, axis), threshold[axis], tolerance)
	}
	return out
}

func coords(pts []Pt, axis Axis) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Coord(axis)
	}
	return out
}

func sortedKeys(m map[int]struct{}) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
