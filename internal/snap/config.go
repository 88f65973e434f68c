/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "snapguide/internal/geom"

// Strategy enables one snapping strategy on one axis. Threshold is the
// maximum distance (in canvas units) a candidate may be away from the agent.
type Strategy struct {
	Enabled   bool    `yaml:"enabled" json:"enabled"`
	Threshold float64 `yaml:"threshold" json:"threshold" validate:"gte=0"`
}

// limit is the threshold handed to the matcher; negative disables it.
func (s Strategy) limit() float64 {
	if !s.Enabled {
		return -1
	}
	return s.Threshold
}

// AxisConfig holds the strategies for one axis.
type AxisConfig struct {
	Guides   Strategy `yaml:"guides" json:"guides"`
	Geometry Strategy `yaml:"geometry" json:"geometry"`
	Spacing  Strategy `yaml:"spacing" json:"spacing"`
}

// Config is passed by value into every matcher; there is no package state.
type Config struct {
	X AxisConfig `yaml:"x" json:"x"`
	Y AxisConfig `yaml:"y" json:"y"`
}

// DefaultThreshold is the snapping distance used by DefaultConfig.
const DefaultThreshold = 8

// DefaultConfig enables every strategy on both axes.
func DefaultConfig() Config {
	s := Strategy{Enabled: true, Threshold: DefaultThreshold}
	ax := AxisConfig{Guides: s, Geometry: s, Spacing: s}
	return Config{X: ax, Y: ax}
}

// Axis returns the configuration of axis.
func (c Config) Axis(a geom.Axis) AxisConfig {
	if a == geom.AxisX {
		return c.X
	}
	return c.Y
}
