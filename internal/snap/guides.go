/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "snapguide/internal/geom"

// Guide is an explicit alignment line at Offset, perpendicular to Axis
// (an x guide is a vertical line).
type Guide struct {
	Axis   geom.Axis `yaml:"axis" json:"axis"`
	Offset float64   `yaml:"offset" json:"offset"`
}

// GuideMatch is the guide snap of one axis. HitAnchor indexes the guides of
// that axis only; Guides maps those hits back to the input slice.
type GuideMatch struct {
	Match
	Filtered []int `json:"filtered"`
	Guides   []int `json:"guides"`
}

func (g *GuideMatch) match() *Match {
	if g == nil {
		return nil
	}
	return &g.Match
}

// MatchGuides snaps the agent's start, center and end on each axis to the
// guides of that axis.
func MatchGuides(agent geom.Rect, guides []Guide, cfg Config, tolerance float64) [2]*GuideMatch {
	var out [2]*GuideMatch
	for _, axis := range geom.Axes {
		var offsets []float64
		var filtered []int
		for i, g := range guides {
			if g.Axis == axis {
				offsets = append(offsets, g.Offset)
				filtered = append(filtered, i)
			}
		}
		res := geom.Snap1D(agent.Range(axis).Points(), offsets, cfg.Axis(axis).Guides.limit(), tolerance)
		if res == nil {
			continue
		}
		hits := make([]int, len(res.HitAnchor))
		for k, j := range res.HitAnchor {
			hits[k] = filtered[j]
		}
		out[axis] = &GuideMatch{Match: Match{Source: SourceGuide, Snap1DResult: *res}, Filtered: filtered, Guides: hits}
	}
	return out
}
