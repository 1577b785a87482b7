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

package routing

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/scionproto/lpmsim/pkg/metrics"
	"github.com/scionproto/lpmsim/pkg/private/prom"
)

// Metrics are the routing table metrics. A single Metrics value can be shared
// by several tables, they are distinguished by the table label.
type Metrics struct {
	// Lookups counts lookups per table and result (hit or miss).
	Lookups *prometheus.CounterVec
	// Routes is the number of routes installed per table.
	Routes *prometheus.GaugeVec
}

// NewMetrics creates and registers the routing metrics.
func NewMetrics(f metrics.Factory) *Metrics {
	return &Metrics{
		Lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lpm_route_lookups_total",
				Help: "Total number of route lookups.",
			},
			[]string{prom.LabelTable, prom.LabelResult},
		),
		Routes: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lpm_routes",
				Help: "Number of routes installed in the table.",
			},
			[]string{prom.LabelTable},
		),
	}
}
