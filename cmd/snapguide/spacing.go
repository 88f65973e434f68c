/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"snapguide/internal/geom"
	"snapguide/internal/snap"
)

type spacingOutput struct {
	Ranges       []geom.Range      `json:"ranges"`
	Repeated     snap.Repeated     `json:"repeated"`
	Distribution snap.Distribution `json:"distribution"`
}

func newSpacingCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "spacing <start:end>...",
		Short: "Show the equal-spacing projections of 1D ranges",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranges := make([]geom.Range, 0, len(args))
			for _, s := range args {
				r, err := parseRange(s)
				if err != nil {
					return err
				}
				ranges = append(ranges, r)
			}
			out := spacingOutput{
				Ranges:       ranges,
				Repeated:     snap.RepeatedPoints(ranges),
				Distribution: snap.ResolveDistribution(ranges),
			}
			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "text":
				writeSpacingText(cmd.OutOrStdout(), out)
				return nil
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

// parseRange reads "start:end".
func parseRange(s string) (geom.Range, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return geom.Range{}, fmt.Errorf("range %q: want start:end", s)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return geom.Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return geom.Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	if end < start {
		return geom.Range{}, fmt.Errorf("range %q: end before start", s)
	}
	return geom.Range{Start: start, End: end}, nil
}

func writeSpacingText(w io.Writer, out spacingOutput) {
	fmt.Fprintln(w, "Pairs:")
	for k := range out.Repeated.A {
		a, b, c := out.Repeated.A[k], out.Repeated.B[k], out.Repeated.C[k]
		fmt.Fprintf(w, "  %d-%d: after %g, before %g, between %g\n", a.Lo, a.Hi, a.Value, b.Value, c.Value)
	}
	d := out.Distribution
	fmt.Fprintln(w, "Loops:")
	for i, l := range d.Loops {
		fmt.Fprintf(w, "  #%d members %v gap %g\n", i, l.Members, l.Gap)
	}
	fmt.Fprintln(w, "Projections:")
	for _, set := range [][][]snap.ProjectionPoint{d.A, d.B, d.C} {
		for _, group := range set {
			for _, p := range group {
				fmt.Fprintf(w, "  %s %g from %g (ranges %d-%d, gap %g)\n", p.Kind, p.P, p.O, p.Lo, p.Hi, p.Gap)
			}
		}
	}
}
