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

package main

import (
	"github.com/spf13/pflag"

	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/private/sim"
	"github.com/scionproto/lpmsim/private/topology"
)

// loadTopology loads the topology from file. An empty file name selects the
// builtin example.
func loadTopology(file string) (*topology.Topology, error) {
	if file == "" {
		return topology.LongestPrefixExample(), nil
	}
	topo, err := topology.Load(file)
	if err != nil {
		return nil, serrors.Wrap("loading topology", err)
	}
	return topo, nil
}

func loadNetwork(file string, opts ...sim.Option) (*sim.Network, error) {
	topo, err := loadTopology(file)
	if err != nil {
		return nil, err
	}
	return sim.New(topo, opts...)
}

func registerTopologyFlag(flags *pflag.FlagSet, file *string) {
	flags.StringVar(file, "topology", "",
		"Topology file (.toml, .yaml or .yml), the builtin example if empty")
}
