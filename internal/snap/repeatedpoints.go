/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "snapguide/internal/geom"

// PairPoint is one projected position, attributed to the pair of ranges
// (indices into the input) that implied it.
type PairPoint struct {
	Value float64 `json:"value"`
	Lo    int     `json:"lo"`
	Hi    int     `json:"hi"`
}

// Repeated holds the spacing projections of every non-overlapping pair.
// A continues the gap after the later range, B before the earlier one and
// C bisects the gap. Entry k of each slice belongs to the same pair.
type Repeated struct {
	A []PairPoint `json:"a"`
	B []PairPoint `json:"b"`
	C []PairPoint `json:"c"`
}

// RepeatedPoints projects the equal-gap pattern implied by every pair of
// ranges. Overlapping pairs contribute nothing.
func RepeatedPoints(ranges []geom.Range) Repeated {
	var out Repeated
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			lo, hi := i, j
			if ranges[hi].Start < ranges[lo].Start {
				lo, hi = hi, lo
			}
			gap := ranges[hi].Start - ranges[lo].End
			if gap < 0 {
				continue
			}
			out.A = append(out.A, PairPoint{Value: ranges[hi].End + gap, Lo: lo, Hi: hi})
			out.B = append(out.B, PairPoint{Value: ranges[lo].Start - gap, Lo: lo, Hi: hi})
			out.C = append(out.C, PairPoint{Value: ranges[lo].End + gap/2, Lo: lo, Hi: hi})
		}
	}
	return out
}

// Values flattens pair points to their positions.
func Values(ps []PairPoint) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}
	return out
}
