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
	"bytes"
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/scionproto/lpmsim/lpmsim/config"
	"github.com/scionproto/lpmsim/pkg/log"
	"github.com/scionproto/lpmsim/pkg/metrics"
	"github.com/scionproto/lpmsim/pkg/private/serrors"
	"github.com/scionproto/lpmsim/private/app/command"
	"github.com/scionproto/lpmsim/private/app/launcher"
	"github.com/scionproto/lpmsim/private/sim"
)

var globalCfg config.Config

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "LPM Routing Simulator",
		Commands: []func(command.Pather) *cobra.Command{
			newRoutes,
			newLookup,
			newTrace,
			newTopology,
		},
		Main: realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	return run(ctx, &globalCfg, metrics.NewFactory())
}

func run(ctx context.Context, cfg *config.Config, factory metrics.Factory) error {
	topo, err := loadTopology(cfg.Simulation.TopologyFile)
	if err != nil {
		return err
	}
	network, err := sim.New(topo,
		sim.WithHopLimit(cfg.Simulation.HopLimit),
		sim.WithCacheSize(cfg.Simulation.CacheSize),
		sim.WithFeatures(cfg.Simulation.FeatureSet()),
		sim.WithMetrics(sim.NewMetrics(factory)),
		sim.WithObserver(sim.LogObserver{}),
	)
	if err != nil {
		return serrors.Wrap("building network", err)
	}
	var tables bytes.Buffer
	network.WriteTables(&tables)
	log.Info("Routing tables", "tables", "\n"+tables.String())

	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return cfg.Metrics.ServePrometheus(errCtx)
	})
	g.Go(func() error {
		defer log.HandlePanic()
		return runRounds(errCtx, network, cfg.Simulation)
	})
	return g.Wait()
}

func runRounds(ctx context.Context, network *sim.Network, cfg config.Simulation) error {
	for round := 1; round <= cfg.ProbeCount; round++ {
		if round > 1 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(cfg.ProbeInterval.Duration):
			}
		}
		results, err := network.RunApps(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return serrors.Wrap("running echo applications", err, "round", round)
		}
		for _, res := range results {
			log.Info("Echo round finished", "round", round, "client", res.Client,
				"server", res.Server, "remote", res.Remote, "port", res.Port,
				"sent", res.Sent, "received", res.Received)
		}
	}
	return nil
}
