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

// LineKind classifies plotted lines.
type LineKind int

const (
	// LineAlignment connects co-linear hit points of a geometry snap.
	LineAlignment LineKind = iota
	// LineGap measures one repeated gap of a spacing snap.
	LineGap
	// LineLoop spans a whole run of equally spaced objects.
	LineLoop
)

func (k LineKind) String() string {
	switch k {
	case LineAlignment:
		return "alignment"
	case LineGap:
		return "gap"
	case LineLoop:
		return "loop"
	default:
		return "unknown"
	}
}

func (k LineKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Rule marks a hit guide: an infinite line at Offset perpendicular to Axis.
type Rule struct {
	Axis   geom.Axis `json:"axis"`
	Offset float64   `json:"offset"`
	Guide  int       `json:"guide"`
}

// Line is an axis-aligned segment; Axis is the axis the snap happened on.
// Length is the label value: the covered distance, or the repeated gap for loop lines.
type Line struct {
	Kind   LineKind     `json:"kind"`
	Axis   geom.Axis    `json:"axis"`
	From   geom.Vector2 `json:"from"`
	To     geom.Vector2 `json:"to"`
	Length float64      `json:"length"`
}

// Plot is what a host renders for a snap result.
type Plot struct {
	Points []geom.Vector2 `json:"points"`
	Rules  []Rule         `json:"rules"`
	Lines  []Line         `json:"lines"`
}

// Plot converts the winning match of each axis into renderable guides.
func (r Result) Plot() Plot {
	var p Plot
	for _, axis := range geom.Axes {
		switch r.Source(axis) {
		case SourceGuide:
			r.plotGuides(&p, axis)
		case SourceGeometry:
			r.plotGeometry(&p, axis)
		case SourceSpacing:
			r.plotSpacing(&p, axis)
		}
	}
	return p
}

func (r Result) plotGuides(p *Plot, axis geom.Axis) {
	for _, gi := range r.Guides[axis].Guides {
		g := r.Anchors.Guides[gi]
		p.Rules = append(p.Rules, Rule{Axis: g.Axis, Offset: g.Offset, Guide: gi})
	}
}

func (r Result) plotGeometry(p *Plot, axis geom.Axis) {
	m := r.Geometry[axis]
	var hit []geom.Pt
	agent := r.Translated.NinePoints()
	for _, s := range m.AgentSlots {
		hit = append(hit, agent[s])
	}
	for oi, slots := range m.AnchorSlots {
		np := r.Anchors.Objects[oi].NinePoints()
		for _, s := range slots {
			hit = append(hit, np[s])
		}
	}

	type span struct{ at, from, to float64 }
	var spans []span
	seen := map[float64]int{}
	for _, pt := range hit {
		p.Points = append(p.Points, pt.Vector())
		at := geom.FloatRound(pt.Coord(axis), 3)
		c := pt.Coord(axis.Other())
		if i, ok := seen[at]; ok {
			spans[i].from = math.Min(spans[i].from, c)
			spans[i].to = math.Max(spans[i].to, c)
			continue
		}
		seen[at] = len(spans)
		spans = append(spans, span{at: at, from: c, to: c})
	}
	for _, s := range spans {
		if s.to == s.from {
			continue
		}
		p.Lines = append(p.Lines, Line{
			Kind:   LineAlignment,
			Axis:   axis,
			From:   geom.Vec(axis, s.at, s.from),
			To:     geom.Vec(axis, s.at, s.to),
			Length: s.to - s.from,
		})
	}
}

func (r Result) plotSpacing(p *Plot, axis geom.Axis) {
	m := r.Spacing[axis]
	agent := r.Translated.Range(axis)
	cross := r.Translated.Range(axis.Other()).Center()
	gap := func(from, to float64) {
		p.Lines = append(p.Lines, Line{
			Kind:   LineGap,
			Axis:   axis,
			From:   geom.Vec(axis, from, cross),
			To:     geom.Vec(axis, to, cross),
			Length: to - from,
		})
	}

	loops := map[int]bool{}
	for _, h := range m.Hits {
		switch h.Kind {
		case Forward:
			gap(h.O, agent.Start)
		case Backward:
			gap(agent.End, h.O)
		case Bisect:
			gap(h.O, agent.Start)
			gap(agent.End, r.object(m, h.Hi).Range(axis).Start)
		}
		if h.Fwd < 0 || loops[h.Fwd] {
			continue
		}
		loops[h.Fwd] = true
		p.Lines = append(p.Lines, r.loopLine(m, axis, m.Distribution.Loops[h.Fwd]))
	}
}

// loopLine spans a loop below all of its members.
func (r Result) loopLine(m *SpacingMatch, axis geom.Axis, l Loop) Line {
	first := r.object(m, l.Members[0]).Range(axis)
	last := r.object(m, l.Members[len(l.Members)-1]).Range(axis)
	below := math.Inf(-1)
	for _, mi := range l.Members {
		below = math.Max(below, r.object(m, mi).Range(axis.Other()).End)
	}
	return Line{
		Kind:   LineLoop,
		Axis:   axis,
		From:   geom.Vec(axis, first.Start, below),
		To:     geom.Vec(axis, last.End, below),
		Length: l.Gap,
	}
}

func (r Result) object(m *SpacingMatch, rangeIndex int) geom.Rect {
	return r.Anchors.Objects[m.Objects[rangeIndex]]
}
