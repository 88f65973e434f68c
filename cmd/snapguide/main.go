/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command snapguide resolves snap scenarios from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"snapguide/internal/config"
	"snapguide/internal/crash"
	applog "snapguide/internal/log"
	"snapguide/internal/snap"
	"snapguide/internal/version"
)

// app carries state shared by the subcommands.
type app struct {
	configPath string
	cfg        config.AppConfig
	// scenario is the document being resolved, named in crash reports.
	scenario string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "snapguide",
		Short:         "Axis-aligned snapping and alignment guides",
		Long:          `snapguide resolves where a dragged rectangle snaps to among guides, other objects and equal spacing patterns.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: per-user config path)")
	root.AddCommand(newResolveCmd(a), newSpacingCmd(), newVersionCmd())
	return root
}

// setup loads the configuration and initializes logging from it.
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	applog.Init(a.cfg.Logging.Options())
	snap.SetLogger(applog.WithComponent("snap"))
	applog.WithComponent("cli").Debug("config loaded",
		slog.String("path", a.configPath),
		slog.Float64("tolerance", a.cfg.Tolerance))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func main() {
	a := &app{}
	defer func() { crash.Handle(recover(), a.scenario) }()

	if err := newRootCmd(a).Execute(); err != nil {
		applog.WithComponent("cli").Error("command failed", slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
