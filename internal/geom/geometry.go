/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom holds the axis-aligned primitives the snapping engine works on:
// 1D ranges, rectangles with their 9 characteristic points, and the nearest
// candidate matcher used by every snapping strategy.
package geom

import (
	"fmt"
	"math"
	"strings"
)

// Axis selects one of the two independent dimensions.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Axes lists both axes in evaluation order.
var Axes = [2]Axis{AxisX, AxisY}

func (a Axis) Other() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

// MarshalText encodes the axis as "x" or "y".
func (a Axis) MarshalText() ([]byte, error) {
	if a != AxisX && a != AxisY {
		return nil, fmt.Errorf("invalid axis %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "x":
		*a = AxisX
	case "y":
		*a = AxisY
	default:
		return fmt.Errorf("invalid axis %q", string(b))
	}
	return nil
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// Vector2 is a 2D value indexed by Axis, used for deltas and guide points.
type Vector2 [2]float64

// Vec builds a vector whose component on axis is along and on the other axis is cross.
func Vec(axis Axis, along, cross float64) Vector2 {
	var v Vector2
	v[axis] = along
	v[axis.Other()] = cross
	return v
}

// Pt is a 2D point.
type Pt struct{ X, Y float64 }

// Coord returns the component of p on axis.
func (p Pt) Coord(axis Axis) float64 {
	if axis == AxisX {
		return p.X
	}
	return p.Y
}

func (p Pt) Vector() Vector2 { return Vector2{p.X, p.Y} }

// Range is a closed 1D interval with Start <= End.
type Range struct{ Start, End float64 }

func (r Range) Len() float64    { return r.End - r.Start }
func (r Range) Center() float64 { return r.Start + (r.End-r.Start)/2 }

// Points returns the range reduced to its characteristic points: start, center, end.
func (r Range) Points() []float64 { return []float64{r.Start, r.Center(), r.End} }

// Overlaps reports whether both ranges share an interior.
func (r Range) Overlaps(o Range) bool { return r.Start < o.End && o.Start < r.End }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Range projects the rectangle onto axis.
func (r Rect) Range(axis Axis) Range {
	if axis == AxisX {
		return Range{Start: r.X, End: r.X + r.W}
	}
	return Range{Start: r.Y, End: r.Y + r.H}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vector2) Rect {
	return Rect{X: r.X + d[AxisX], Y: r.Y + d[AxisY], W: r.W, H: r.H}
}

// Valid reports whether all coordinates are finite and the size is not negative.
func (r Rect) Valid() bool {
	for _, v := range [4]float64{r.X, r.Y, r.W, r.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return r.W >= 0 && r.H >= 0
}

// NinePoints decomposes r into corners, edge midpoints and center, row-major
// from the top-left corner. Slot%3 is the column (x) and slot/3 the row (y).
func (r Rect) NinePoints() [9]Pt {
	xs := r.Range(AxisX).Points()
	ys := r.Range(AxisY).Points()
	var out [9]Pt
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out[row*3+col] = Pt{X: xs[col], Y: ys[row]}
		}
	}
	return out
}

// FloatRound rounds v to n decimal places deterministically.
func FloatRound(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
