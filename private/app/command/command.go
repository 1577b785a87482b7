// Copyright 2026 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package command contains subcommands shared by the lpmsim applications.
package command

import (
	"github.com/spf13/cobra"

	"github.com/scionproto/lpmsim/private/config"
)

// Pather returns the path to a command.
type Pather interface {
	CommandPath() string
}

// NewSample creates a command that prints a sample of cfg.
func NewSample(pather Pather, cfg config.Sampler) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Display a sample configuration file",
		Example: "  " + pather.CommandPath() + " sample > lpmsim.toml\n" +
			"  " + pather.CommandPath() + " --config lpmsim.toml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Sample(cmd.OutOrStdout(), nil, nil)
			return nil
		},
	}
	return cmd
}
