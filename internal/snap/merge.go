/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "snapguide/internal/geom"

// Source tells which strategy produced a match.
type Source int

const (
	SourceNone Source = iota
	SourceGuide
	SourceGeometry
	SourceSpacing
)

func (s Source) String() string {
	switch s {
	case SourceGuide:
		return "by_guide"
	case SourceGeometry:
		return "by_geometry"
	case SourceSpacing:
		return "by_spacing"
	default:
		return "none"
	}
}

// MarshalText lets results carry the provenance as a readable tag.
func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Match is one strategy's winning candidate on one axis, tagged with its source.
type Match struct {
	Source Source `json:"source"`
	geom.Snap1DResult
}

// BestAxisAlignedDistance returns the candidate with the smallest absolute
// distance. Ties go to the earliest candidate, so callers pass them in
// priority order: guide, geometry, spacing. Nil candidates are skipped; when
// all are nil the first element is returned.
func BestAxisAlignedDistance(candidates ...*Match) *Match {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c == nil {
			continue
		}
		if best == nil || c.Abs() < best.Abs() {
			best = c
		}
	}
	return best
}

// delta is the translation a match asks for; zero when there is none.
func (m *Match) delta() float64 {
	if m == nil {
		return 0
	}
	return m.Distance
}
