/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapguide/internal/geom"
	"snapguide/internal/snap"
)

const panelScenario = `
agent: {x: 43, y: 2, width: 10, height: 10}
objects:
  - {x: 0, y: 0, width: 10, height: 10}
  - {x: 20, y: 0, width: 10, height: 10}
guides:
  - {axis: y, offset: 0}
`

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(panelScenario))
	require.NoError(t, err)
	assert.Equal(t, geom.R(43, 2, 10, 10), doc.Agent.Rect())
	require.Len(t, doc.Objects, 2)
	require.Len(t, doc.Guides, 1)
	assert.Equal(t, geom.AxisY, doc.Guides[0].Axis)
	assert.Nil(t, doc.Tolerance)
	assert.Nil(t, doc.Snap)
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(`{"agent":{"x":1,"y":2,"width":3,"height":4},"tolerance":0.25}`))
	require.NoError(t, err)
	assert.Equal(t, geom.R(1, 2, 3, 4), doc.Agent.Rect())
	require.NotNil(t, doc.Tolerance)
	assert.Equal(t, 0.25, *doc.Tolerance)
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing agent":   `objects: []`,
		"negative width":  `agent: {x: 0, y: 0, width: -1, height: 1}`,
		"bad axis":        "agent: {x: 0, y: 0, width: 1, height: 1}\nguides: [{axis: z, offset: 1}]",
		"unknown key":     "agent: {x: 0, y: 0, width: 1, height: 1}\ncolour: red",
		"partial snap":    "agent: {x: 0, y: 0, width: 1, height: 1}\nsnap: {x: {}}",
		"empty document":  ``,
		"string for size": `agent: {x: 0, y: 0, width: wide, height: 1}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("agent: [unclosed"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(panelScenario), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Objects, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRunContinuesSpacing(t *testing.T) {
	doc, err := Parse([]byte(panelScenario))
	require.NoError(t, err)

	res := doc.Run(snap.DefaultConfig(), 0)
	assert.Equal(t, snap.SourceSpacing, res.Source(geom.AxisX))
	assert.Equal(t, geom.Vector2{-3, -2}, res.Delta)
	assert.Equal(t, geom.R(40, 0, 10, 10), res.Translated)
}

func TestRunDocumentOverridesConfig(t *testing.T) {
	doc, err := Parse([]byte(panelScenario + `
tolerance: 0
snap:
  x: {guides: {enabled: true, threshold: 8}}
  y: {guides: {enabled: true, threshold: 8}}
`))
	require.NoError(t, err)

	res := doc.Run(snap.DefaultConfig(), 0.5)
	assert.Nil(t, res.Winner[geom.AxisX], "geometry and spacing are off in the document config")
	assert.Equal(t, snap.SourceGuide, res.Source(geom.AxisY))
	assert.Equal(t, geom.Vector2{0, -2}, res.Delta)
}
