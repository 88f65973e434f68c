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
	"log/slog"

	"github.com/spf13/cobra"

	"snapguide/internal/geom"
	applog "snapguide/internal/log"
	"snapguide/internal/scenario"
	"snapguide/internal/snap"
)

type resolveOptions struct {
	tolerance float64
	format    string
	plot      bool
}

// resolveOutput is the JSON document printed by resolve.
type resolveOutput struct {
	Scenario string      `json:"scenario"`
	Result   snap.Result `json:"result"`
	Plot     *snap.Plot  `json:"plot,omitempty"`
}

func newResolveCmd(a *app) *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve <scenario>",
		Short: "Snap the agent of a scenario file",
		Long:  "Load a YAML or JSON scenario, snap its agent against the objects and guides and print the result.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd, args[0], opts)
		},
	}
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", -1, "override the configured tolerance")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or json")
	cmd.Flags().BoolVar(&opts.plot, "plot", false, "include the guide plot")
	return cmd
}

func (a *app) resolve(cmd *cobra.Command, path string, opts resolveOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	a.scenario = path
	l := applog.WithOperation(applog.WithComponent("cli"), "resolve")

	doc, err := scenario.Load(path)
	if err != nil {
		return err
	}
	tol := a.cfg.Tolerance
	if opts.tolerance >= 0 {
		tol = opts.tolerance
	}
	res := doc.Run(a.cfg.Snap, tol)
	l.Info("resolved",
		slog.String("scenario", path),
		slog.String("x", res.Source(geom.AxisX).String()),
		slog.String("y", res.Source(geom.AxisY).String()))

	out := resolveOutput{Scenario: path, Result: res}
	if opts.plot {
		p := res.Plot()
		out.Plot = &p
	}
	if opts.format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	writeResolveText(cmd.OutOrStdout(), out)
	return nil
}

func writeResolveText(w io.Writer, out resolveOutput) {
	res := out.Result
	fmt.Fprintf(w, "Scenario: %s\n", out.Scenario)
	for _, axis := range geom.Axes {
		m := res.Winner[axis]
		if m == nil {
			fmt.Fprintf(w, "  %s: no snap\n", axis)
			continue
		}
		fmt.Fprintf(w, "  %s: %s %+g (agent %v, anchors %v)\n", axis, m.Source, m.Distance, m.HitAgent, m.HitAnchor)
	}
	fmt.Fprintf(w, "Delta: %g, %g\n", res.Delta[geom.AxisX], res.Delta[geom.AxisY])
	t := res.Translated
	fmt.Fprintf(w, "Snapped: x=%g y=%g w=%g h=%g\n", t.X, t.Y, t.W, t.H)
	if out.Plot == nil {
		return
	}
	for _, r := range out.Plot.Rules {
		fmt.Fprintf(w, "  rule %s=%g (guide %d)\n", r.Axis, r.Offset, r.Guide)
	}
	for _, ln := range out.Plot.Lines {
		fmt.Fprintf(w, "  %s %s (%g,%g)-(%g,%g) %g\n", ln.Kind, ln.Axis,
			ln.From[0], ln.From[1], ln.To[0], ln.To[1], ln.Length)
	}
}
