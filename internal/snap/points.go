/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "snapguide/internal/geom"

// GeometryMatch is the 9-point snap of one axis. AgentSlots are the agent's
// hit slots; AnchorSlots has one entry per object with its hit slots.
type GeometryMatch struct {
	Match
	AgentSlots  []int   `json:"agent_slots"`
	AnchorSlots [][]int `json:"anchor_slots"`
}

func (g *GeometryMatch) match() *Match {
	if g == nil {
		return nil
	}
	return &g.Match
}

// MatchGeometry snaps the agent's 9 points to the 9 points of every object.
func MatchGeometry(agent geom.Rect, objects []geom.Rect, cfg Config, tolerance float64) [2]*GeometryMatch {
	var out [2]*GeometryMatch
	if len(objects) == 0 {
		return out
	}
	ap := agent.NinePoints()
	anchors := make([]geom.Pt, 0, 9*len(objects))
	for _, o := range objects {
		np := o.NinePoints()
		anchors = append(anchors, np[:]...)
	}
	threshold := geom.Vector2{cfg.X.Geometry.limit(), cfg.Y.Geometry.limit()}
	res := geom.Snap2DAxisAligned(ap[:], anchors, threshold, tolerance)
	for _, axis := range geom.Axes {
		r := res[axis]
		if r == nil {
			continue
		}
		chunks := make([][]int, len(objects))
		for _, j := range r.HitAnchor {
			chunks[j/9] = append(chunks[j/9], j%9)
		}
		out[axis] = &GeometryMatch{
			Match:       Match{Source: SourceGeometry, Snap1DResult: *r},
			AgentSlots:  r.HitAgent,
			AnchorSlots: chunks,
		}
	}
	return out
}
