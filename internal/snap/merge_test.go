/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snapguide/internal/geom"
)

func match(src Source, d float64) *Match {
	return &Match{Source: src, Snap1DResult: geom.Snap1DResult{Distance: d}}
}

func TestBestAxisAlignedDistance(t *testing.T) {
	guide := match(SourceGuide, -3)
	geometry := match(SourceGeometry, 3)
	spacing := match(SourceSpacing, 1.5)

	assert.Same(t, spacing, BestAxisAlignedDistance(guide, geometry, spacing))
	assert.Same(t, guide, BestAxisAlignedDistance(guide, geometry), "ties go to the earliest candidate")
	assert.Same(t, geometry, BestAxisAlignedDistance(nil, geometry, nil))
	assert.Nil(t, BestAxisAlignedDistance(nil, nil, nil))
	assert.Nil(t, BestAxisAlignedDistance())
}

func TestBestAxisAlignedDistance_Idempotent(t *testing.T) {
	in := []*Match{match(SourceGuide, 2), match(SourceGeometry, -2), match(SourceSpacing, 2)}
	first := BestAxisAlignedDistance(in...)
	assert.Same(t, first, BestAxisAlignedDistance(in...))
	assert.Equal(t, SourceGuide, first.Source)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "by_guide", SourceGuide.String())
	assert.Equal(t, "by_geometry", SourceGeometry.String())
	assert.Equal(t, "by_spacing", SourceSpacing.String())
	assert.Equal(t, "none", SourceNone.String())
}
