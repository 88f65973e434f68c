/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scenario reads snap scenarios: an agent rectangle, the objects and
// guides it may snap to, and optionally the tolerance and snap configuration.
// Documents are YAML or JSON and are checked against an embedded JSON Schema
// before decoding.
package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"snapguide/internal/geom"
	"snapguide/internal/snap"
)

//go:embed schema.json
var schemaJSON string

var schema = gojsonschema.NewStringLoader(schemaJSON)

// ErrInvalid wraps schema violations.
var ErrInvalid = errors.New("invalid scenario")

// Box is a rectangle as written in scenario files.
type Box struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (b Box) Rect() geom.Rect { return geom.R(b.X, b.Y, b.Width, b.Height) }

// Document is one scenario. A snap block, when present, replaces the
// configuration entirely; strategies it omits are disabled.
type Document struct {
	Agent     Box          `yaml:"agent" json:"agent"`
	Objects   []Box        `yaml:"objects" json:"objects"`
	Guides    []snap.Guide `yaml:"guides" json:"guides"`
	Tolerance *float64     `yaml:"tolerance" json:"tolerance,omitempty"`
	Snap      *snap.Config `yaml:"snap" json:"snap,omitempty"`
}

// Load reads and validates the scenario at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse validates and decodes a YAML or JSON document (JSON is decoded as YAML).
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	res, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &doc, nil
}

// Anchors converts the document's objects and guides for the engine.
func (d *Document) Anchors() snap.Anchors {
	objects := make([]geom.Rect, len(d.Objects))
	for i, o := range d.Objects {
		objects[i] = o.Rect()
	}
	return snap.Anchors{Objects: objects, Guides: d.Guides}
}

// Run snaps the agent. cfg and tolerance apply unless the document sets its own.
func (d *Document) Run(cfg snap.Config, tolerance float64) snap.Result {
	if d.Snap != nil {
		cfg = *d.Snap
	}
	if d.Tolerance != nil {
		tolerance = *d.Tolerance
	}
	return snap.SnapToCanvasGeometry(d.Agent.Rect(), d.Anchors(), cfg, tolerance)
}
