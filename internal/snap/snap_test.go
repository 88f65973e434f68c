/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"bytes"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapguide/internal/geom"
)

func TestSnap_GeometryToPanelEdges(t *testing.T) {
	panel := geom.R(0, 0, 200, 100)
	agent := geom.R(3, 4, 80, 40)

	res := SnapToCanvasGeometry(agent, Anchors{Objects: []geom.Rect{panel}}, DefaultConfig(), 0)
	assert.Equal(t, geom.Vector2{-3, -4}, res.Delta)
	assert.Equal(t, geom.R(0, 0, 80, 40), res.Translated)
	assert.Equal(t, SourceGeometry, res.Source(geom.AxisX))
	assert.Equal(t, SourceGeometry, res.Source(geom.AxisY))
	assert.Equal(t, []int{0, 3, 6}, res.Geometry[geom.AxisX].AgentSlots)
	assert.Equal(t, [][]int{{0, 3, 6}}, res.Geometry[geom.AxisX].AnchorSlots)
	assert.Equal(t, [][]int{{0, 1, 2}}, res.Geometry[geom.AxisY].AnchorSlots)
}

func TestSnap_NoCandidatesLeavesAgent(t *testing.T) {
	agent := geom.R(500, 500, 10, 10)
	anchors := Anchors{
		Objects: []geom.Rect{geom.R(0, 0, 10, 10), geom.R(20, 0, 10, 10)},
		Guides:  []Guide{{Axis: geom.AxisX, Offset: 0}},
	}
	res := SnapToCanvasGeometry(agent, anchors, DefaultConfig(), 1)
	assert.Equal(t, geom.Vector2{0, 0}, res.Delta)
	assert.Equal(t, agent, res.Translated)
	assert.Nil(t, res.Winner[geom.AxisX])
	assert.Nil(t, res.Winner[geom.AxisY])
	assert.Equal(t, Plot{}, res.Plot())
}

func TestSnap_GuideBeatsGeometryOnTie(t *testing.T) {
	agent := geom.R(3, 200, 20, 10)
	anchors := Anchors{
		Objects: []geom.Rect{geom.R(0, 0, 100, 10)},
		Guides:  []Guide{{Axis: geom.AxisY, Offset: 1000}, {Axis: geom.AxisX, Offset: 0}},
	}
	res := SnapToCanvasGeometry(agent, anchors, DefaultConfig(), 0)
	require.NotNil(t, res.Geometry[geom.AxisX])
	require.NotNil(t, res.Guides[geom.AxisX])
	assert.Equal(t, -3.0, res.Geometry[geom.AxisX].Distance)
	assert.Equal(t, SourceGuide, res.Source(geom.AxisX))
	assert.Equal(t, []int{1}, res.Guides[geom.AxisX].Guides)
	assert.Equal(t, []int{1}, res.Guides[geom.AxisX].Filtered)
	assert.Equal(t, SourceNone, res.Source(geom.AxisY))
	assert.Equal(t, geom.Vector2{-3, 0}, res.Delta)

	p := res.Plot()
	assert.Equal(t, []Rule{{Axis: geom.AxisX, Offset: 0, Guide: 1}}, p.Rules)
}

func TestSnap_GeometryBeatsSpacingOnTie(t *testing.T) {
	objects := []geom.Rect{
		geom.R(0, 0, 10, 10),
		geom.R(20, 0, 10, 10),
		geom.R(40, 100, 100, 10), // out of the spacing row, still a geometry anchor
	}
	agent := geom.R(43, 0, 10, 10)
	res := SnapToCanvasGeometry(agent, Anchors{Objects: objects}, DefaultConfig(), 0)
	require.NotNil(t, res.Spacing[geom.AxisX])
	assert.Equal(t, -3.0, res.Spacing[geom.AxisX].Distance)
	assert.Equal(t, []int{0, 1}, res.Spacing[geom.AxisX].Objects)
	assert.Equal(t, SourceGeometry, res.Source(geom.AxisX))
	assert.Equal(t, geom.Vector2{-3, 0}, res.Delta)
}

func TestSnap_SpacingContinuesPair(t *testing.T) {
	objects := []geom.Rect{geom.R(0, 0, 10, 10), geom.R(20, 0, 10, 10)}
	agent := geom.R(43, 0, 10, 10)
	res := SnapToCanvasGeometry(agent, Anchors{Objects: objects}, DefaultConfig(), 0)
	assert.Nil(t, res.Geometry[geom.AxisX])
	assert.Equal(t, SourceSpacing, res.Source(geom.AxisX))
	assert.Equal(t, geom.R(40, 0, 10, 10), res.Translated)

	s := res.Spacing[geom.AxisX]
	require.Len(t, s.Hits, 1)
	assert.Equal(t, Forward, s.Hits[0].Kind)
	assert.Equal(t, []int{0}, s.HitAgent)

	var gaps []Line
	for _, l := range res.Plot().Lines {
		if l.Kind == LineGap {
			gaps = append(gaps, l)
		}
	}
	require.Len(t, gaps, 1)
	assert.Equal(t, Line{Kind: LineGap, Axis: geom.AxisX, From: geom.Vector2{30, 5}, To: geom.Vector2{40, 5}, Length: 10}, gaps[0])
}

func TestSnap_SpacingBisectsGap(t *testing.T) {
	objects := []geom.Rect{geom.R(0, 0, 10, 10), geom.R(40, 0, 10, 10)}
	agent := geom.R(16, 0, 10, 10) // center 21, gap midpoint 25
	res := SnapToCanvasGeometry(agent, Anchors{Objects: objects}, DefaultConfig(), 0)
	require.Equal(t, SourceSpacing, res.Source(geom.AxisX))
	assert.Equal(t, 4.0, res.Delta[geom.AxisX])
	assert.Equal(t, []int{1}, res.Spacing[geom.AxisX].HitAgent)

	var gaps []Line
	for _, l := range res.Plot().Lines {
		if l.Kind == LineGap {
			gaps = append(gaps, l)
		}
	}
	require.Len(t, gaps, 2)
	assert.Equal(t, 10.0, gaps[0].Length)
	assert.Equal(t, 10.0, gaps[1].Length)
}

func TestSnap_SpacingExtendsLoop(t *testing.T) {
	objects := []geom.Rect{geom.R(0, 0, 10, 10), geom.R(20, 0, 10, 10), geom.R(40, 0, 10, 10)}
	agent := geom.R(62, 0, 10, 10)
	res := SnapToCanvasGeometry(agent, Anchors{Objects: objects}, DefaultConfig(), 0)
	require.Equal(t, SourceSpacing, res.Source(geom.AxisX))
	assert.Equal(t, -2.0, res.Delta[geom.AxisX])
	assert.Equal(t, 0, res.Spacing[geom.AxisX].Hits[0].Fwd)

	count := map[LineKind]int{}
	var loop Line
	for _, l := range res.Plot().Lines {
		count[l.Kind]++
		if l.Kind == LineLoop {
			loop = l
		}
	}
	assert.Equal(t, 1, count[LineGap])
	assert.Equal(t, 1, count[LineLoop])
	assert.Equal(t, 3, count[LineAlignment], "y snaps to tops, centers and bottoms")
	assert.Equal(t, Line{Kind: LineLoop, Axis: geom.AxisX, From: geom.Vector2{0, 10}, To: geom.Vector2{50, 10}, Length: 10}, loop)
}

func TestSnap_SpacingPairsFromNudgedPosition(t *testing.T) {
	objects := []geom.Rect{geom.R(0, 0, 10, 20), geom.R(20, 0, 10, 20)}
	agent := geom.R(42, 21, 10, 10) // below the row until the guide pulls it up
	cfg := DefaultConfig()
	cfg.Y.Geometry.Enabled = false
	anchors := Anchors{Objects: objects, Guides: []Guide{{Axis: geom.AxisY, Offset: 13}}}

	res := SnapToCanvasGeometry(agent, anchors, cfg, 0)
	require.NotNil(t, res.Spacing[geom.AxisX])
	assert.Equal(t, SourceSpacing, res.Source(geom.AxisX))
	assert.Equal(t, SourceGuide, res.Source(geom.AxisY))
	assert.Equal(t, geom.Vector2{-2, -8}, res.Delta)
}

func TestSnap_SpacingDistanceIgnoresSameAxisNudge(t *testing.T) {
	objects := []geom.Rect{geom.R(0, 0, 10, 10), geom.R(20, 0, 10, 10)}
	agent := geom.R(43, 0, 10, 10)
	anchors := Anchors{Objects: objects, Guides: []Guide{{Axis: geom.AxisX, Offset: 42}}}

	res := SnapToCanvasGeometry(agent, anchors, DefaultConfig(), 0)
	require.NotNil(t, res.Spacing[geom.AxisX])
	// measured from x=43, not from the guide-nudged x=42
	assert.Equal(t, -3.0, res.Spacing[geom.AxisX].Distance)
	assert.Equal(t, SourceGuide, res.Source(geom.AxisX))
	assert.Equal(t, -1.0, res.Delta[geom.AxisX])

	direct := MatchSpacing(agent, agent.Translate(geom.Vector2{-1, 0}), objects, DefaultConfig(), 0)
	require.NotNil(t, direct[geom.AxisX])
	assert.Equal(t, -3.0, direct[geom.AxisX].Distance)
}

func TestSnap_DisabledAxisDoesNotMove(t *testing.T) {
	cfg := DefaultConfig()
	cfg.X = AxisConfig{}
	res := SnapToCanvasGeometry(geom.R(3, 4, 80, 40), Anchors{Objects: []geom.Rect{geom.R(0, 0, 200, 100)}}, cfg, 0)
	assert.Equal(t, geom.Vector2{0, -4}, res.Delta)
	assert.Nil(t, res.Geometry[geom.AxisX])
}

func TestSnap_PanicsOnInvalidAgent(t *testing.T) {
	assert.Panics(t, func() {
		SnapToCanvasGeometry(geom.R(math.NaN(), 0, 1, 1), Anchors{}, DefaultConfig(), 0)
	})
}

func TestSnap_LogsWhenLoggerInstalled(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	SnapToCanvasGeometry(geom.R(3, 4, 80, 40), Anchors{Objects: []geom.Rect{geom.R(0, 0, 200, 100)}}, DefaultConfig(), 0)
	out := buf.String()
	assert.True(t, strings.Contains(out, "snap resolved"), out)
	assert.True(t, strings.Contains(out, "x=by_geometry"), out)
}

func BenchmarkSnapToCanvasGeometryRow(b *testing.B) {
	for _, n := range []int{50, 100, 200, 400} {
		objects := make([]geom.Rect, n)
		for i := range objects {
			objects[i] = geom.R(float64(i*20), 0, 10, 10)
		}
		agent := geom.R(float64(n*20)+3, 0, 10, 10)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				SnapToCanvasGeometry(agent, Anchors{Objects: objects}, DefaultConfig(), 0)
			}
		})
	}
}
