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

	"snapguide/internal/geom"
)

// SpacingMatch is the equal-spacing snap of one axis. Objects maps the
// distribution's range indices back to the input objects. HitAnchor indexes
// the concatenation of the flattened A, B and C projections; Hits holds the
// projection points themselves.
type SpacingMatch struct {
	Match
	Objects      []int             `json:"objects"`
	Distribution Distribution      `json:"distribution"`
	Hits         []ProjectionPoint `json:"hits"`
}

func (s *SpacingMatch) match() *Match {
	if s == nil {
		return nil
	}
	return &s.Match
}

// MatchSpacing snaps the agent to continue or bisect equal gaps between
// objects. On each axis only objects whose cross-axis range overlaps the
// cross-axis range of nudged are paired; distances are measured from agent.
// Agent start, end and center are the points for forward, backward and
// bisection projections respectively.
func MatchSpacing(agent, nudged geom.Rect, objects []geom.Rect, cfg Config, tolerance float64) [2]*SpacingMatch {
	var out [2]*SpacingMatch
	for _, axis := range geom.Axes {
		limit := cfg.Axis(axis).Spacing.limit()
		if limit < 0 {
			continue
		}
		cross := nudged.Range(axis.Other())
		var ranges []geom.Range
		var index []int
		for i, o := range objects {
			if o.Range(axis.Other()).Overlaps(cross) {
				ranges = append(ranges, o.Range(axis))
				index = append(index, i)
			}
		}
		if len(ranges) < 2 {
			continue
		}
		dist := ResolveDistribution(ranges)
		out[axis] = matchProjections(agent.Range(axis), dist, index, limit, tolerance)
	}
	return out
}

func matchProjections(agent geom.Range, dist Distribution, index []int, limit, tolerance float64) *SpacingMatch {
	groups := [3][]ProjectionPoint{flatten(dist.A), flatten(dist.B), flatten(dist.C)}
	// agent point per kind, as an index into agent.Points()
	feature := [3]int{0, 2, 1}
	pts := agent.Points()

	var results [3]*geom.Snap1DResult
	var best *geom.Snap1DResult
	for k, g := range groups {
		targets := make([]float64, len(g))
		for i, p := range g {
			targets[i] = p.P
		}
		results[k] = geom.Snap1D([]float64{pts[feature[k]]}, targets, limit, tolerance)
		if results[k] != nil && results[k].Abs() < best.Abs() {
			best = results[k]
		}
	}
	if best == nil {
		return nil
	}

	m := &SpacingMatch{
		Match:        Match{Source: SourceSpacing, Snap1DResult: geom.Snap1DResult{Distance: best.Distance}},
		Objects:      index,
		Distribution: dist,
	}
	offset := 0
	for k, r := range results {
		if r != nil && math.Abs(r.Distance-best.Distance) <= math.Max(0, tolerance) {
			m.HitAgent = append(m.HitAgent, feature[k])
			for _, j := range r.HitAnchor {
				m.HitAnchor = append(m.HitAnchor, offset+j)
				m.Hits = append(m.Hits, groups[k][j])
			}
		}
		offset += len(groups[k])
	}
	return m
}

func flatten(groups [][]ProjectionPoint) []ProjectionPoint {
	var out []ProjectionPoint
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
