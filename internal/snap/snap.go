/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap resolves how a dragged rectangle (the agent) is nudged into
// alignment with other rectangles, explicit guides, and repeated equal
// spacing, and describes the guides to draw while dragging.
//
// Every call is independent: inputs are values, nothing is cached and no
// package state is touched beyond the optional logger.
package snap

import (
	"context"
	"fmt"
	"log/slog"

	"snapguide/internal/geom"
)

// Anchors are what the agent can snap to.
type Anchors struct {
	Objects []geom.Rect `yaml:"objects" json:"objects"`
	Guides  []Guide     `yaml:"guides" json:"guides"`
}

// Result is the outcome of one snap query.
// Winner holds, per axis, the merged match (nil when the axis did not snap);
// its Source tells which of Guides, Geometry or Spacing it came from.
type Result struct {
	Agent      geom.Rect         `json:"agent"`
	Translated geom.Rect         `json:"translated"`
	Delta      geom.Vector2      `json:"delta"`
	Winner     [2]*Match         `json:"winner"`
	Guides     [2]*GuideMatch    `json:"by_guide"`
	Geometry   [2]*GeometryMatch `json:"by_geometry"`
	Spacing    [2]*SpacingMatch  `json:"by_spacing"`
	Anchors    Anchors           `json:"anchors"`
}

// Source returns the strategy that won on axis.
func (r Result) Source(axis geom.Axis) Source {
	if r.Winner[axis] == nil {
		return SourceNone
	}
	return r.Winner[axis].Source
}

// SnapToCanvasGeometry snaps agent against anchors.
//
// Guides and 9-point geometry are matched at the agent's original position.
// The better of the two per axis nudges the agent provisionally, and spacing
// is matched with the cross-axis pairing taken from that nudged position.
// The three matches are then merged per axis in the order guide, geometry,
// spacing, and the agent is translated by the winners. An axis without a
// winner is not moved.
//
// It panics if agent has non-finite coordinates or a negative size.
func SnapToCanvasGeometry(agent geom.Rect, anchors Anchors, cfg Config, tolerance float64) Result {
	if !agent.Valid() {
		panic(fmt.Sprintf("snap: invalid agent rectangle %+v", agent))
	}

	res := Result{Agent: agent, Anchors: anchors}
	res.Guides = MatchGuides(agent, anchors.Guides, cfg, tolerance)
	res.Geometry = MatchGeometry(agent, anchors.Objects, cfg, tolerance)

	var provisional geom.Vector2
	for _, axis := range geom.Axes {
		provisional[axis] = BestAxisAlignedDistance(res.Guides[axis].match(), res.Geometry[axis].match()).delta()
	}
	res.Spacing = MatchSpacing(agent, agent.Translate(provisional), anchors.Objects, cfg, tolerance)

	for _, axis := range geom.Axes {
		w := BestAxisAlignedDistance(res.Guides[axis].match(), res.Geometry[axis].match(), res.Spacing[axis].match())
		res.Winner[axis] = w
		res.Delta[axis] = w.delta()
	}
	res.Translated = agent.Translate(res.Delta)

	if l := logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("snap resolved",
			slog.Int("objects", len(anchors.Objects)),
			slog.Int("guides", len(anchors.Guides)),
			slog.String("x", res.Source(geom.AxisX).String()),
			slog.String("y", res.Source(geom.AxisY).String()),
			slog.Float64("dx", res.Delta[geom.AxisX]),
			slog.Float64("dy", res.Delta[geom.AxisY]),
		)
	}
	return res
}
